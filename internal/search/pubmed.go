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

// pubmedAPIBase is the NCBI E-utilities root. Declared as a var so tests
// can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const pubmedRecordURL = "https://pubmed.ncbi.nlm.nih.gov/%s/"

// PubMedBackend queries PubMed through E-utilities: esearch for the id
// list, then a single efetch for the MEDLINE records.
type PubMedBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *PubMedBackend) Name() string { return "pubmed" }

// Source returns types.SourcePubMed.
func (b *PubMedBackend) Source() types.Source { return types.SourcePubMed }

// Search runs the esearch/efetch exchange and maps MEDLINE records.
func (b *PubMedBackend) Search(ctx context.Context, query string, cfg types.HarvestConfig) ([]types.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}
	cfg = cfg.WithDefaults()

	ids, err := b.searchIDs(ctx, query, cfg)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	form := b.contactParams(cfg)
	form.Set("db", "pubmed")
	form.Set("id", strings.Join(ids, ","))
	form.Set("rettype", "medline")
	form.Set("retmode", "text")

	body, err := httputil.PostForm(ctx, b.Client, pubmedAPIBase+"/efetch.fcgi", form, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("PubMed efetch request: %w", err)
	}

	medline, err := parseMedline(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing PubMed records: %w", err)
	}

	records := make([]types.Record, 0, len(medline))
	for _, m := range medline {
		records = append(records, pubmedRecord(m))
	}
	return records, nil
}

// searchIDs returns at most cfg.MaxResults PMIDs matching query.
func (b *PubMedBackend) searchIDs(ctx context.Context, query string, cfg types.HarvestConfig) ([]string, error) {
	params := b.contactParams(cfg)
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(cfg.MaxResults))
	params.Set("retmode", "json")

	body, err := httputil.Get(ctx, b.Client, pubmedAPIBase+"/esearch.fcgi", params, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("PubMed esearch request: %w", err)
	}

	var sr esearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing PubMed esearch response: %w", err)
	}
	if sr.Result.Error != "" {
		return nil, fmt.Errorf("PubMed esearch: %s", sr.Result.Error)
	}

	ids := sr.Result.IDList
	if cfg.MaxResults > 0 && len(ids) > cfg.MaxResults {
		ids = ids[:cfg.MaxResults]
	}
	return ids, nil
}

// contactParams returns the tool/email/api_key identification NCBI asks
// every E-utilities caller to send.
func (b *PubMedBackend) contactParams(cfg types.HarvestConfig) url.Values {
	params := url.Values{}
	if cfg.Tool != "" {
		params.Set("tool", cfg.Tool)
	}
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
	if cfg.NCBIAPIKey != "" {
		params.Set("api_key", cfg.NCBIAPIKey)
	}
	return params
}

// pubmedRecord maps one MEDLINE record into the common schema.
func pubmedRecord(m medlineRecord) types.Record {
	authors := m.all("AU")
	if len(authors) == 0 {
		authors = m.all("FAU")
	}

	year := ""
	if fields := strings.Fields(m.text("DP")); len(fields) > 0 {
		year = fields[0]
	}

	return types.Record{
		Source:   types.SourcePubMed,
		Title:    strings.TrimSpace(m.text("TI")),
		Authors:  append([]string{}, authors...),
		Year:     year,
		Abstract: m.text("AB"),
		DOI:      medlineDOI(m),
		URL:      fmt.Sprintf(pubmedRecordURL, strings.TrimSpace(m.text("PMID"))),
	}
}

// medlineDOI returns the first LID or AID value tagged "[doi]", without the
// tag. PII and other identifier kinds are not DOIs and yield "".
func medlineDOI(m medlineRecord) string {
	for _, tag := range []string{"LID", "AID"} {
		for _, v := range m.all(tag) {
			v = strings.TrimSpace(v)
			if strings.HasSuffix(v, "[doi]") {
				return strings.TrimSpace(strings.TrimSuffix(v, "[doi]"))
			}
		}
	}
	return ""
}

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}
