// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/research-harvest/internal/httputil"
	"github.com/pdiddy/research-harvest/pkg/types"
)

// europePMCAPIBase is the Europe PMC REST search endpoint. Declared as a
// var so tests can substitute an httptest server.
var europePMCAPIBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

const europePMCRecordURL = "https://europepmc.org/article/%s/%s"

// EuropePMCBackend pages through the Europe PMC REST search API.
type EuropePMCBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *EuropePMCBackend) Name() string { return "europepmc" }

// Source returns types.SourceEuropePMC.
func (b *EuropePMCBackend) Source() types.Source { return types.SourceEuropePMC }

// Search requests pages of cfg.EuropePMCPageSize hits until a page comes
// back empty, the budget is reached, or cfg.MaxPages pages have been
// fetched. Both the page number and the cursor mark are sent; the cursor
// returned by the server is followed when present. The page size stays
// fixed so page numbers keep addressing the same offsets; the last page is
// trimmed to the budget instead.
func (b *EuropePMCBackend) Search(ctx context.Context, query string, cfg types.HarvestConfig) ([]types.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Europe PMC query")
	}
	cfg = cfg.WithDefaults()

	budget := cfg.MaxResults
	var records []types.Record
	cursor := "*"
	for page := 1; len(records) < budget; page++ {
		if page > cfg.MaxPages {
			return records, &PageLimitError{Provider: b.Name(), Pages: page - 1}
		}

		params := url.Values{
			"query":      {query},
			"format":     {"json"},
			"resultType": {"core"},
			"pageSize":   {strconv.Itoa(cfg.EuropePMCPageSize)},
			"page":       {strconv.Itoa(page)},
			"cursorMark": {cursor},
		}

		body, err := httputil.Get(ctx, b.Client, europePMCAPIBase, params, cfg.UserAgent)
		if err != nil {
			return records, fmt.Errorf("Europe PMC API request: %w", err)
		}

		var er europePMCResponse
		if err := json.Unmarshal(body, &er); err != nil {
			return records, fmt.Errorf("parsing Europe PMC response: %w", err)
		}

		hits := er.ResultList.Result
		if len(hits) == 0 {
			break
		}
		for _, hit := range hits {
			records = append(records, europePMCRecord(hit))
		}

		if er.NextCursorMark != "" {
			if er.NextCursorMark == cursor {
				break
			}
			cursor = er.NextCursorMark
		}
	}

	if len(records) > budget {
		records = records[:budget]
	}
	return records, nil
}

// europePMCRecord maps one search hit into the common schema.
func europePMCRecord(hit europePMCHit) types.Record {
	authors := make([]string, 0, len(hit.AuthorList.Author))
	for _, a := range hit.AuthorList.Author {
		authors = append(authors, a.FullName)
	}
	if len(authors) == 0 {
		authors = splitAuthorString(hit.AuthorString)
	}

	return types.Record{
		Source:   types.SourceEuropePMC,
		Title:    strings.TrimSpace(hit.Title),
		Authors:  authors,
		Year:     jsonText(hit.PubYear),
		Abstract: plainText(hit.AbstractText),
		DOI:      hit.DOI,
		URL:      fmt.Sprintf(europePMCRecordURL, hit.Source, hit.ID),
	}
}

// splitAuthorString splits the "Smith J, Doe A." summary string that
// lite results carry instead of an author list.
func splitAuthorString(s string) []string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}

// jsonText renders a JSON string or number as text; null and absent values
// become "".
func jsonText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Europe PMC API JSON structures.
type europePMCResponse struct {
	HitCount       int                 `json:"hitCount"`
	NextCursorMark string              `json:"nextCursorMark"`
	ResultList     europePMCResultList `json:"resultList"`
}

type europePMCResultList struct {
	Result []europePMCHit `json:"result"`
}

type europePMCHit struct {
	ID           string              `json:"id"`
	Source       string              `json:"source"`
	Title        string              `json:"title"`
	PubYear      json.RawMessage     `json:"pubYear"`
	AbstractText string              `json:"abstractText"`
	DOI          string              `json:"doi"`
	AuthorString string              `json:"authorString"`
	AuthorList   europePMCAuthorList `json:"authorList"`
}

type europePMCAuthorList struct {
	Author []europePMCAuthor `json:"author"`
}

type europePMCAuthor struct {
	FullName string `json:"fullName"`
}
