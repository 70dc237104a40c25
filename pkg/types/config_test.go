// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
		ok   bool
	}{
		{"PubMed", SourcePubMed, true},
		{"pubmed", SourcePubMed, true},
		{"arxiv", SourceArxiv, true},
		{"crossref", SourceCrossRef, true},
		{"Europe PMC", SourceEuropePMC, true},
		{"europepmc", SourceEuropePMC, true},
		{"europe-pmc", SourceEuropePMC, true},
		{"biorxiv", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSource(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceValid(t *testing.T) {
	for _, s := range Sources() {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, Source("bioRxiv").Valid())
}

func TestDefaultPriorityMatchesSources(t *testing.T) {
	got, err := DefaultHarvestConfig().PrioritySources()
	require.NoError(t, err)
	assert.Equal(t, Sources(), got)
}

func TestPrioritySourcesRejectsUnknown(t *testing.T) {
	cfg := HarvestConfig{Priority: []string{"pubmed", "scopus"}}
	_, err := cfg.PrioritySources()
	var unknown *UnknownSourceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "scopus", unknown.Name)
}

func TestPrioritySourcesRejectsRepeats(t *testing.T) {
	cfg := HarvestConfig{Priority: []string{"arxiv", "PubMed", "arXiv"}}
	_, err := cfg.PrioritySources()
	var dup *DuplicateSourceError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, SourceArxiv, dup.Source)
}

func TestWithDefaults(t *testing.T) {
	cfg := HarvestConfig{Query: "custom", MaxResults: 10}.WithDefaults()

	assert.Equal(t, "custom", cfg.Query)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultArxivPageSize, cfg.ArxivPageSize)
	assert.Equal(t, DefaultEuropePMCPageSize, cfg.EuropePMCPageSize)
	assert.Equal(t, DefaultCrossRefRows, cfg.CrossRefRows)
	assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Len(t, cfg.Priority, 4)
}

func TestWithDefaultsTimeout(t *testing.T) {
	assert.Zero(t, DefaultHarvestConfig().Timeout, "no HTTP timeout unless configured")
	assert.Zero(t, HarvestConfig{}.WithDefaults().Timeout)
	assert.Zero(t, HarvestConfig{HTTPConfig: HTTPConfig{Timeout: -time.Second}}.WithDefaults().Timeout)

	cfg := HarvestConfig{HTTPConfig: HTTPConfig{Timeout: 90 * time.Second}}.WithDefaults()
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestJoinedAuthors(t *testing.T) {
	r := Record{Authors: []string{"Ada Lovelace", "Charles Babbage"}}
	assert.Equal(t, "Ada Lovelace; Charles Babbage", r.JoinedAuthors())
	assert.Equal(t, "", Record{}.JoinedAuthors())
}
