// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-harvest/pkg/types"
)

func rec(src types.Source, title, year string) types.Record {
	return types.Record{Source: src, Title: title, Year: year, Authors: []string{}}
}

func TestDeduplicateCaseInsensitiveTitle(t *testing.T) {
	in := []types.Record{
		rec(types.SourcePubMed, "Digital Twins in Medicine", "2022"),
		rec(types.SourceCrossRef, "digital twins in medicine", "2022"),
	}
	res := Deduplicate(in)
	require.Len(t, res.Unique, 1)
	assert.Equal(t, types.SourcePubMed, res.Unique[0].Source, "first occurrence wins")
	assert.Equal(t, 1, res.Removed)
}

func TestDeduplicateYearIsExact(t *testing.T) {
	in := []types.Record{
		rec(types.SourcePubMed, "Same Title", "2022"),
		rec(types.SourceArxiv, "Same Title", "2022 "),
		rec(types.SourceEuropePMC, "Same Title", "2023"),
		rec(types.SourceCrossRef, "Same Title", ""),
	}
	res := Deduplicate(in)
	assert.Len(t, res.Unique, 4)
	assert.Equal(t, 0, res.Removed)
}

func TestDeduplicateDoesNotTrimTitles(t *testing.T) {
	in := []types.Record{
		rec(types.SourcePubMed, "Title", "2020"),
		rec(types.SourceArxiv, "Title ", "2020"),
	}
	assert.Len(t, Deduplicate(in).Unique, 2)
}

func TestDeduplicateEmptyTitlesCollide(t *testing.T) {
	in := []types.Record{
		rec(types.SourceCrossRef, "", ""),
		rec(types.SourceCrossRef, "", ""),
		rec(types.SourceCrossRef, "", "2021"),
	}
	res := Deduplicate(in)
	assert.Len(t, res.Unique, 2)
	assert.Equal(t, 1, res.Removed)
}

func TestDeduplicateNoFieldMerging(t *testing.T) {
	first := rec(types.SourcePubMed, "Paper", "2020")
	later := rec(types.SourceEuropePMC, "PAPER", "2020")
	later.Abstract = "A richer abstract"
	later.DOI = "10.1/x"

	res := Deduplicate([]types.Record{first, later})
	require.Len(t, res.Unique, 1)
	assert.Equal(t, "", res.Unique[0].Abstract)
	assert.Equal(t, "", res.Unique[0].DOI)
}

func TestDeduplicateEmptyInput(t *testing.T) {
	res := Deduplicate(nil)
	assert.Empty(t, res.Unique)
	assert.Equal(t, 0, res.Removed)
}

func TestDeduplicateProperties(t *testing.T) {
	titles := []string{"Alpha", "ALPHA", "Beta", "beta", "Gamma", "Ünïcode Title", "ÜNÏCODE TITLE"}
	years := []string{"2020", "2021", "2020 "}
	sources := types.Sources()

	var in []types.Record
	for i := 0; i < 60; i++ {
		in = append(in, rec(sources[i%len(sources)], titles[(i*3)%len(titles)], years[(i*7)%len(years)]))
	}

	res := Deduplicate(in)

	// Length never grows, and removed accounts for the difference.
	assert.LessOrEqual(t, len(res.Unique), len(in))
	assert.Equal(t, len(in)-len(res.Unique), res.Removed)

	// Every output key is unique and is the first occurrence in the input.
	firstIndex := map[Key]int{}
	for i, r := range in {
		if _, ok := firstIndex[KeyOf(r)]; !ok {
			firstIndex[KeyOf(r)] = i
		}
	}
	assert.Len(t, res.Unique, len(firstIndex))
	prev := -1
	for _, r := range res.Unique {
		idx := firstIndex[KeyOf(r)]
		assert.Equal(t, in[idx], r)
		assert.Greater(t, idx, prev, "first-seen order is preserved")
		prev = idx
	}

	// Idempotence.
	again := Deduplicate(res.Unique)
	assert.Equal(t, res.Unique, again.Unique)
	assert.Equal(t, 0, again.Removed)
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		title, year string
		want        Key
	}{
		{"Digital Twins", "2022", Key{Title: "digital twins", Year: "2022"}},
		{"ÉTUDE", "1999", Key{Title: "étude", Year: "1999"}},
		{"Mixed Case ", " 2023", Key{Title: "mixed case ", Year: " 2023"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%q", tt.title, tt.year), func(t *testing.T) {
			assert.Equal(t, tt.want, KeyOf(rec(types.SourceArxiv, tt.title, tt.year)))
		})
	}
}
