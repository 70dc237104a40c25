// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report computes per-source record counts before and after
// deduplication and presents them as a console summary, a YAML run summary
// and a chart.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-harvest/internal/httputil"
	"github.com/pdiddy/research-harvest/internal/search"
	"github.com/pdiddy/research-harvest/pkg/types"
)

// SourceCount is the number of records attributed to one source.
type SourceCount struct {
	Source types.Source `json:"source" yaml:"source"`
	Count  int          `json:"count" yaml:"count"`
}

// SourceCounts lists counts in the order each source first appears in the
// counted sequence. Sources with no records are absent.
type SourceCounts []SourceCount

// Count tallies records by source.
func Count(records []types.Record) SourceCounts {
	index := make(map[types.Source]int)
	var counts SourceCounts
	for _, r := range records {
		i, ok := index[r.Source]
		if !ok {
			i = len(counts)
			index[r.Source] = i
			counts = append(counts, SourceCount{Source: r.Source})
		}
		counts[i].Count++
	}
	return counts
}

// Total returns the sum of all counts.
func (c SourceCounts) Total() int {
	total := 0
	for _, sc := range c {
		total += sc.Count
	}
	return total
}

// Get returns the count for src, or 0.
func (c SourceCounts) Get(src types.Source) int {
	for _, sc := range c {
		if sc.Source == src {
			return sc.Count
		}
	}
	return 0
}

// Failure describes a provider that did not finish cleanly.
type Failure struct {
	Source types.Source `json:"source" yaml:"source"`
	Status int          `json:"status,omitempty" yaml:"status,omitempty"`
	Kept   int          `json:"kept" yaml:"kept"`
	Error  string       `json:"error" yaml:"error"`
}

// FailuresFrom converts aggregator failures for reporting.
func FailuresFrom(fs []search.ProviderFailure) []Failure {
	out := make([]Failure, 0, len(fs))
	for _, f := range fs {
		out = append(out, Failure{
			Source: f.Source,
			Status: httputil.StatusCode(f.Err),
			Kept:   f.Kept,
			Error:  f.Err.Error(),
		})
	}
	return out
}

// Summary describes one harvest run.
type Summary struct {
	RunID       string       `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Query       string       `json:"query" yaml:"query"`
	Before      SourceCounts `json:"before" yaml:"before"`
	After       SourceCounts `json:"after" yaml:"after"`
	Raw         int          `json:"raw" yaml:"raw"`
	Unique      int          `json:"unique" yaml:"unique"`
	Removed     int          `json:"removed" yaml:"removed"`
	Failures    []Failure    `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Summarize counts raw and unique records. Query and Failures are left for
// the caller to fill in.
func Summarize(raw, unique []types.Record) Summary {
	return Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Before:      Count(raw),
		After:       Count(unique),
		Raw:         len(raw),
		Unique:      len(unique),
		Removed:     len(raw) - len(unique),
	}
}

// WriteText prints the per-source tables before and after deduplication.
func (s Summary) WriteText(w io.Writer) error {
	if err := writeCounts(w, "Before Deduplication", s.Before); err != nil {
		return err
	}
	return writeCounts(w, "After Deduplication", s.After)
}

func writeCounts(w io.Writer, title string, counts SourceCounts) error {
	if _, err := fmt.Fprintf(w, "\n=== Results per Source (%s) ===\n", title); err != nil {
		return err
	}
	for _, sc := range counts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", sc.Source, sc.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d\n", counts.Total())
	return err
}

// WriteYAML writes the summary to path, creating the parent directory.
func (s Summary) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}

// ChartRenderer draws the before and after counts to an image at path.
type ChartRenderer interface {
	Render(path string, before, after SourceCounts) error
}

// Render hands the summary's counts to r.
func (s Summary) Render(r ChartRenderer, path string) error {
	if err := r.Render(path, s.Before, s.After); err != nil {
		return fmt.Errorf("rendering chart %s: %w", path, err)
	}
	return nil
}
