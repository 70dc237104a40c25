// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
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

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossRefBackend queries the CrossRef works API. It issues one request
// for cfg.CrossRefRows items; the row count does not follow the budget.
type CrossRefBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *CrossRefBackend) Name() string { return "crossref" }

// Source returns types.SourceCrossRef.
func (b *CrossRefBackend) Source() types.Source { return types.SourceCrossRef }

// Search fetches a single page of works and maps them.
func (b *CrossRefBackend) Search(ctx context.Context, query string, cfg types.HarvestConfig) ([]types.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty CrossRef query")
	}
	cfg = cfg.WithDefaults()

	params := url.Values{
		"query": {query},
		"rows":  {strconv.Itoa(cfg.CrossRefRows)},
	}
	if cfg.Email != "" {
		params.Set("mailto", cfg.Email)
	}

	body, err := httputil.Get(ctx, b.Client, crossrefAPIBase, params, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", err)
	}

	var cr crossrefResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	records := make([]types.Record, 0, len(cr.Message.Items))
	for _, item := range cr.Message.Items {
		records = append(records, crossrefRecord(item))
	}
	return records, nil
}

// crossrefRecord maps one work into the common schema. CrossRef carries no
// usable abstract, so Abstract stays empty.
func crossrefRecord(item crossrefItem) types.Record {
	title := ""
	if len(item.Title) > 0 {
		title = item.Title[0]
	}

	authors := make([]string, 0, len(item.Author))
	for _, a := range item.Author {
		authors = append(authors, a.displayName())
	}

	return types.Record{
		Source:  types.SourceCrossRef,
		Title:   strings.TrimSpace(title),
		Authors: authors,
		Year:    item.Issued.year(),
		DOI:     item.DOI,
		URL:     item.URL,
	}
}

// CrossRef API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefItem `json:"items"`
}

type crossrefItem struct {
	Title  []string         `json:"title"`
	Author []crossrefAuthor `json:"author"`
	Issued crossrefDate     `json:"issued"`
	DOI    string           `json:"DOI"`
	URL    string           `json:"URL"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	// Name is set instead of Given/Family for organizational authors.
	Name string `json:"name"`
}

// displayName joins the given and family parts with a space, skipping
// absent parts.
func (a crossrefAuthor) displayName() string {
	var parts []string
	if a.Given != "" {
		parts = append(parts, a.Given)
	}
	if a.Family != "" {
		parts = append(parts, a.Family)
	}
	if len(parts) == 0 && a.Name != "" {
		return a.Name
	}
	return strings.Join(parts, " ")
}

// crossrefDate is CrossRef's partial date, e.g. {"date-parts": [[2021, 3, 4]]}.
// Parts may be null when the date is unknown.
type crossrefDate struct {
	DateParts [][]json.Number `json:"date-parts"`
}

// year returns the first date part, or "" when it is missing or null.
func (d crossrefDate) year() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	return d.DateParts[0][0].String()
}
