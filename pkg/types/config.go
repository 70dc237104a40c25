// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by every provider adapter.
type HTTPConfig struct {
	// Timeout bounds each HTTP request, including reading the body. Zero
	// means no timeout; cancellation still applies.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ContactConfig carries the identification some providers ask for in their
// usage policies.
type ContactConfig struct {
	// Email is sent to NCBI E-utilities (required) and to CrossRef as mailto.
	Email string `json:"email" yaml:"email" mapstructure:"email"`

	// NCBIAPIKey raises the E-utilities rate limit when set.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty" mapstructure:"ncbi_api_key"`

	// Tool is the application name reported to NCBI.
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`
}

// HarvestConfig holds settings for one harvest run.
type HarvestConfig struct {
	HTTPConfig    `yaml:",inline" mapstructure:",squash"`
	ContactConfig `yaml:",inline" mapstructure:",squash"`

	// Query is the provider-independent search expression.
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// MaxResults is the per-provider budget.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// OutputDir receives the CSV export, the chart and the run summary.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// IgnoreFile is the version-control ignore file that gets an entry for
	// OutputDir. Empty disables the update.
	IgnoreFile string `json:"ignore_file" yaml:"ignore_file" mapstructure:"ignore_file"`

	// Priority lists provider names in the order they run. Earlier
	// providers win duplicate ties.
	Priority []string `json:"priority" yaml:"priority" mapstructure:"priority"`

	// ArxivPageSize is the arXiv batch size (default 200).
	ArxivPageSize int `json:"arxiv_page_size" yaml:"arxiv_page_size" mapstructure:"arxiv_page_size"`

	// EuropePMCPageSize is the Europe PMC page size (default 100).
	EuropePMCPageSize int `json:"europepmc_page_size" yaml:"europepmc_page_size" mapstructure:"europepmc_page_size"`

	// CrossRefRows is the fixed CrossRef row count (default 50). It does not
	// follow MaxResults.
	CrossRefRows int `json:"crossref_rows" yaml:"crossref_rows" mapstructure:"crossref_rows"`

	// MaxPages bounds every pagination loop (default 1000).
	MaxPages int `json:"max_pages" yaml:"max_pages" mapstructure:"max_pages"`

	// SkipChart disables chart rendering.
	SkipChart bool `json:"skip_chart" yaml:"skip_chart" mapstructure:"skip_chart"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// Defaults used when a HarvestConfig field is zero.
const (
	DefaultQuery             = `("digital twin" OR "virtual patient" OR "in silico patient" OR "surrogate model" OR "physics-informed neural network") AND (multiscale OR multiphysics OR hybrid modeling OR "precision medicine" OR workflow OR "model validation" OR "uncertainty quantification")`
	DefaultMaxResults        = 100000
	DefaultOutputDir         = "oos"
	DefaultIgnoreFile        = ".gitignore"
	DefaultArxivPageSize     = 200
	DefaultEuropePMCPageSize = 100
	DefaultCrossRefRows      = 50
	DefaultMaxPages          = 1000
	DefaultTimeout           = time.Duration(0)
	DefaultUserAgent         = "research-harvest/0.1"
	DefaultEmail             = "your_email@example.com"
	DefaultTool              = "research-harvest"
)

// DefaultHarvestConfig returns the configuration used when nothing is
// overridden.
func DefaultHarvestConfig() HarvestConfig {
	priority := make([]string, 0, len(Sources()))
	for _, s := range Sources() {
		priority = append(priority, string(s))
	}
	return HarvestConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		ContactConfig: ContactConfig{
			Email: DefaultEmail,
			Tool:  DefaultTool,
		},
		Query:             DefaultQuery,
		MaxResults:        DefaultMaxResults,
		OutputDir:         DefaultOutputDir,
		IgnoreFile:        DefaultIgnoreFile,
		Priority:          priority,
		ArxivPageSize:     DefaultArxivPageSize,
		EuropePMCPageSize: DefaultEuropePMCPageSize,
		CrossRefRows:      DefaultCrossRefRows,
		MaxPages:          DefaultMaxPages,
		LogLevel:          "info",
	}
}

// WithDefaults returns a copy of c with zero numeric and string settings
// replaced by their defaults. Query and Priority are left alone when set.
func (c HarvestConfig) WithDefaults() HarvestConfig {
	d := DefaultHarvestConfig()
	if c.Timeout < 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.Tool == "" {
		c.Tool = d.Tool
	}
	if c.Query == "" {
		c.Query = d.Query
	}
	if c.MaxResults <= 0 {
		c.MaxResults = d.MaxResults
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if len(c.Priority) == 0 {
		c.Priority = d.Priority
	}
	if c.ArxivPageSize <= 0 {
		c.ArxivPageSize = d.ArxivPageSize
	}
	if c.EuropePMCPageSize <= 0 {
		c.EuropePMCPageSize = d.EuropePMCPageSize
	}
	if c.CrossRefRows <= 0 {
		c.CrossRefRows = d.CrossRefRows
	}
	if c.MaxPages <= 0 {
		c.MaxPages = d.MaxPages
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// PrioritySources resolves Priority into Sources, rejecting unknown or
// repeated names.
func (c HarvestConfig) PrioritySources() ([]Source, error) {
	seen := make(map[Source]bool, len(c.Priority))
	out := make([]Source, 0, len(c.Priority))
	for _, name := range c.Priority {
		s, ok := ParseSource(name)
		if !ok {
			return nil, &UnknownSourceError{Name: name}
		}
		if seen[s] {
			return nil, &DuplicateSourceError{Source: s}
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

// UnknownSourceError reports a provider name that matches no Source.
type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}

// DuplicateSourceError reports a provider listed twice in a priority list.
type DuplicateSourceError struct {
	Source Source
}

func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("provider %q listed more than once", e.Source)
}
