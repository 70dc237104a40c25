// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one harvest: fetch every provider, deduplicate,
// report, export and chart.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/pdiddy/research-harvest/internal/dedup"
	"github.com/pdiddy/research-harvest/internal/export"
	"github.com/pdiddy/research-harvest/internal/report"
	"github.com/pdiddy/research-harvest/internal/search"
	"github.com/pdiddy/research-harvest/internal/workspace"
	"github.com/pdiddy/research-harvest/pkg/types"
)

// Output file names inside cfg.OutputDir.
const (
	CSVFile     = "combined_results.csv"
	ChartFile   = "results_summary.png"
	SummaryFile = "results_summary.yaml"
)

// Result holds the outcome of a run.
type Result struct {
	Summary report.Summary

	CSVPath     string
	SummaryPath string
	// ChartPath is empty when no chart was rendered.
	ChartPath string

	// IgnoreUpdated reports whether the ignore file gained an entry.
	IgnoreUpdated bool
}

// Run executes one harvest. Provider failures are logged and never abort
// the run; filesystem failures and a cancelled context do. The console
// summary is written to out. A nil renderer, or cfg.SkipChart, skips the
// chart.
func Run(ctx context.Context, cfg types.HarvestConfig, backends []search.Backend, renderer report.ChartRenderer, out io.Writer, log *slog.Logger) (Result, error) {
	cfg = cfg.WithDefaults()
	var res Result

	if err := workspace.EnsureDir(cfg.OutputDir); err != nil {
		return res, err
	}
	if cfg.IgnoreFile != "" {
		if pattern, ok := workspace.IgnorePattern(cfg.IgnoreFile, cfg.OutputDir); ok {
			changed, err := workspace.EnsureIgnored(cfg.IgnoreFile, pattern)
			if err != nil {
				return res, err
			}
			res.IgnoreUpdated = changed
			if changed {
				log.Info("added output directory to ignore file", "file", cfg.IgnoreFile, "pattern", pattern)
			}
		} else {
			log.Debug("output directory outside ignore file root", "file", cfg.IgnoreFile, "dir", cfg.OutputDir)
		}
	}

	agg, err := search.Aggregate(ctx, backends, cfg, log)
	if err != nil {
		return res, fmt.Errorf("aggregating providers: %w", err)
	}

	deduped := dedup.Deduplicate(agg.Records)
	log.Info("deduplicated", "raw", len(agg.Records), "unique", len(deduped.Unique), "removed", deduped.Removed)

	summary := report.Summarize(agg.Records, deduped.Unique)
	summary.Query = cfg.Query
	summary.Failures = report.FailuresFrom(agg.Failures)
	res.Summary = summary

	if err := summary.WriteText(out); err != nil {
		return res, fmt.Errorf("writing console summary: %w", err)
	}

	res.CSVPath = filepath.Join(cfg.OutputDir, CSVFile)
	if err := export.WriteCSV(res.CSVPath, deduped.Unique); err != nil {
		return res, err
	}
	fmt.Fprintf(out, "\nSaved %d unique records to %s\n", len(deduped.Unique), res.CSVPath)

	res.SummaryPath = filepath.Join(cfg.OutputDir, SummaryFile)
	if err := summary.WriteYAML(res.SummaryPath); err != nil {
		return res, err
	}

	if cfg.SkipChart || renderer == nil {
		log.Debug("chart skipped")
		return res, nil
	}
	chartPath := filepath.Join(cfg.OutputDir, ChartFile)
	if err := summary.Render(renderer, chartPath); err != nil {
		return res, err
	}
	res.ChartPath = chartPath
	log.Info("chart written", "path", chartPath)
	return res, nil
}
