// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes cross-provider duplicates from an aggregated record
// list. Two records are duplicates when their titles match case-insensitively
// and their year strings are byte-identical. The first occurrence wins, so
// the aggregation order decides which provider's metadata survives.
package dedup

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/research-harvest/pkg/types"
)

// Key identifies a record for deduplication.
type Key struct {
	Title string
	Year  string
}

// Result is the outcome of Deduplicate.
type Result struct {
	// Unique holds the first record seen for each key, in input order.
	Unique []types.Record

	// Removed is the number of records dropped.
	Removed int
}

// KeyOf returns the dedup key of r. The title is lowercased and otherwise
// untouched; the year is used verbatim, so "2022" and "2022 " differ.
func KeyOf(r types.Record) Key {
	return keyer{lower: cases.Lower(language.Und)}.key(r)
}

// Deduplicate scans records once and keeps the first record for each key.
// Fields are never merged across duplicates.
func Deduplicate(records []types.Record) Result {
	k := keyer{lower: cases.Lower(language.Und)}
	seen := make(map[Key]struct{}, len(records))
	unique := make([]types.Record, 0, len(records))

	for _, r := range records {
		key := k.key(r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return Result{Unique: unique, Removed: len(records) - len(unique)}
}

// keyer holds a Caser, which is stateful and must not be shared across
// goroutines.
type keyer struct {
	lower cases.Caser
}

func (k keyer) key(r types.Record) Key {
	return Key{Title: k.lower.String(r.Title), Year: r.Year}
}
