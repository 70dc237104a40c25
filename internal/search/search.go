// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the literature APIs and maps every response into
// the common types.Record schema. Each API is a Backend; Aggregate runs them
// one after another in priority order and concatenates their records.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pdiddy/research-harvest/internal/httputil"
	"github.com/pdiddy/research-harvest/pkg/types"
)

// Backend searches a single literature API.
//
// Search returns the records it collected before any failure together with
// the error, so a provider that fails halfway still contributes its partial
// results.
type Backend interface {
	Name() string
	Source() types.Source
	Search(ctx context.Context, query string, cfg types.HarvestConfig) ([]types.Record, error)
}

// NewBackends returns one backend per known source, sharing client.
func NewBackends(client *http.Client) []Backend {
	return []Backend{
		&PubMedBackend{Client: client},
		&ArxivBackend{Client: client},
		&CrossRefBackend{Client: client},
		&EuropePMCBackend{Client: client},
	}
}

// PageLimitError reports a pagination loop stopped by cfg.MaxPages before
// the provider ran out of results or the budget was reached.
type PageLimitError struct {
	Provider string
	Pages    int
}

func (e *PageLimitError) Error() string {
	return fmt.Sprintf("%s: stopped after %d pages", e.Provider, e.Pages)
}

// ProviderFailure records a backend that returned an error.
type ProviderFailure struct {
	Source types.Source
	Kept   int
	Err    error
}

// StatusCode returns the HTTP status behind the failure, or 0.
func (f ProviderFailure) StatusCode() int {
	return httputil.StatusCode(f.Err)
}

// Output holds the concatenated records of one aggregation run.
type Output struct {
	// Records are grouped by source in priority order.
	Records []types.Record

	// Failures lists providers that stopped early, in run order.
	Failures []ProviderFailure
}

// Aggregate runs the backends sequentially in the order given by
// cfg.Priority and concatenates their records. Backends whose source is not
// in the priority list are skipped. A failing backend is logged and its
// partial records are kept; only a priority entry without a backend, or a
// cancelled context, is returned as an error.
func Aggregate(ctx context.Context, backends []Backend, cfg types.HarvestConfig, log *slog.Logger) (Output, error) {
	if len(backends) == 0 {
		return Output{}, fmt.Errorf("no search backends configured")
	}
	cfg = cfg.WithDefaults()

	ordered, err := orderByPriority(backends, cfg)
	if err != nil {
		return Output{}, err
	}
	for _, b := range backends {
		if !contains(ordered, b) {
			log.Debug("provider disabled", "provider", b.Source())
		}
	}

	var out Output
	for _, b := range ordered {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		log.Info("querying provider", "provider", b.Source(), "budget", cfg.MaxResults)
		records, err := b.Search(ctx, cfg.Query, cfg)
		if err != nil {
			f := ProviderFailure{Source: b.Source(), Kept: len(records), Err: err}
			out.Failures = append(out.Failures, f)
			attrs := []any{"provider", b.Source(), "kept", f.Kept, "err", err}
			if code := f.StatusCode(); code != 0 {
				attrs = append(attrs, "status", code)
			}
			log.Warn("provider failed", attrs...)
		} else {
			log.Info("provider done", "provider", b.Source(), "records", len(records))
		}
		out.Records = append(out.Records, records...)
	}
	return out, nil
}

// orderByPriority returns the backends listed in cfg.Priority, in that
// order.
func orderByPriority(backends []Backend, cfg types.HarvestConfig) ([]Backend, error) {
	priority, err := cfg.PrioritySources()
	if err != nil {
		return nil, fmt.Errorf("resolving provider priority: %w", err)
	}

	bySource := make(map[types.Source]Backend, len(backends))
	for _, b := range backends {
		bySource[b.Source()] = b
	}

	ordered := make([]Backend, 0, len(priority))
	for _, s := range priority {
		b, ok := bySource[s]
		if !ok {
			return nil, fmt.Errorf("no backend for provider %q", s)
		}
		ordered = append(ordered, b)
	}
	return ordered, nil
}

func contains(bs []Backend, b Backend) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}
