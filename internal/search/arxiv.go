// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/pdiddy/research-harvest/internal/httputil"
	"github.com/pdiddy/research-harvest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivBackend pages through the arXiv Atom API.
type ArxivBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Source returns types.SourceArxiv.
func (b *ArxivBackend) Source() types.Source { return types.SourceArxiv }

// Search requests pages of cfg.ArxivPageSize entries until a page comes back
// empty, the budget is reached, or cfg.MaxPages pages have been fetched.
func (b *ArxivBackend) Search(ctx context.Context, query string, cfg types.HarvestConfig) ([]types.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	cfg = cfg.WithDefaults()

	budget := cfg.MaxResults
	var records []types.Record
	start := 0
	for page := 0; len(records) < budget; page++ {
		if page >= cfg.MaxPages {
			return records, &PageLimitError{Provider: b.Name(), Pages: page}
		}

		size := min(cfg.ArxivPageSize, budget-len(records))
		params := url.Values{
			"search_query": {"all:" + query},
			"start":        {strconv.Itoa(start)},
			"max_results":  {strconv.Itoa(size)},
		}

		body, err := httputil.Get(ctx, b.Client, arxivAPIBase, params, cfg.UserAgent)
		if err != nil {
			return records, fmt.Errorf("arXiv API request: %w", err)
		}

		fp := &atom.Parser{}
		feed, err := fp.Parse(bytes.NewReader(body))
		if err != nil {
			return records, fmt.Errorf("parsing arXiv response: %w", err)
		}
		if len(feed.Entries) == 0 {
			break
		}

		for _, entry := range feed.Entries {
			if entry == nil {
				continue
			}
			records = append(records, arxivRecord(entry))
		}
		start += size
	}

	if len(records) > budget {
		records = records[:budget]
	}
	return records, nil
}

// arxivRecord maps an Atom entry into the common schema.
func arxivRecord(entry *atom.Entry) types.Record {
	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		authors = append(authors, strings.TrimSpace(a.Name))
	}

	// "2017-06-12T17:57:34Z" -> "2017"
	year, _, _ := strings.Cut(strings.TrimSpace(entry.Published), "-")

	return types.Record{
		Source:   types.SourceArxiv,
		Title:    strings.TrimSpace(entry.Title),
		Authors:  authors,
		Year:     year,
		Abstract: strings.TrimSpace(entry.Summary),
		DOI:      arxivDOI(entry.Extensions),
		URL:      strings.TrimSpace(entry.ID),
	}
}

// arxivDOI returns the <arxiv:doi> value the author registered, if any.
func arxivDOI(exts ext.Extensions) string {
	return firstExtensionValue(exts["arxiv"], "doi")
}

func firstExtensionValue(byName map[string][]ext.Extension, name string) string {
	for _, e := range byName[name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}
