// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-harvest pipeline:
// the common bibliographic Record every provider maps into, the Source
// enumeration, and the run configuration.
package types

import "strings"

// Source identifies the literature API a record came from.
type Source string

const (
	SourcePubMed    Source = "PubMed"
	SourceArxiv     Source = "arXiv"
	SourceCrossRef  Source = "CrossRef"
	SourceEuropePMC Source = "Europe PMC"
)

// Sources returns the known sources in default priority order. The order
// decides which provider's copy of a duplicate is kept.
func Sources() []Source {
	return []Source{SourcePubMed, SourceArxiv, SourceCrossRef, SourceEuropePMC}
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	for _, known := range Sources() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSource maps a source name to a Source, ignoring case, spaces and
// dashes ("europepmc", "Europe PMC" and "europe-pmc" all match).
func ParseSource(name string) (Source, bool) {
	want := squash(name)
	for _, s := range Sources() {
		if squash(string(s)) == want {
			return s, true
		}
	}
	return "", false
}

func squash(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// AuthorSeparator joins author names in flat exports.
const AuthorSeparator = "; "

// Record is one bibliographic entry in the common schema. Adapters leave a
// field as the empty string when the provider does not supply it; records
// are not modified after they are created.
type Record struct {
	// Source is the provider that returned the record.
	Source Source `json:"source" yaml:"source"`

	// Title is the title as returned by the provider, whitespace-trimmed.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names in provider order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year as text, or empty when unknown. It is
	// compared byte for byte during deduplication.
	Year string `json:"year" yaml:"year"`

	// Abstract is the abstract text, empty when the provider has none.
	Abstract string `json:"abstract" yaml:"abstract"`

	// DOI is the bare DOI, empty when unknown.
	DOI string `json:"doi" yaml:"doi"`

	// URL links to the record on the provider's platform.
	URL string `json:"url" yaml:"url"`
}

// JoinedAuthors returns the authors joined with AuthorSeparator.
func (r Record) JoinedAuthors() string {
	return strings.Join(r.Authors, AuthorSeparator)
}
