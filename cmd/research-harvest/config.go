// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-harvest/pkg/types"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"query":       "query",
	"max-results": "max_results",
	"output-dir":  "output_dir",
	"priority":    "priority",
	"no-chart":    "skip_chart",
	"log-level":   "log_level",
}

// addHarvestFlags defines the override flags on cmd. Zero values mean "not
// set"; defaults live in configure.
func addHarvestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("query", "", "search expression sent to every provider")
	f.Int("max-results", 0, "per-provider record budget")
	f.String("output-dir", "", "directory for the export, summary and chart")
	f.StringSlice("priority", nil, "provider order; earlier providers win duplicates")
	f.Bool("no-chart", false, "skip chart rendering")
	f.String("log-level", "", "debug, info, warn or error")
}

// configure registers defaults, environment lookup and flag bindings on v.
// Precedence is flag, env, config file, default.
func configure(v *viper.Viper, cmd *cobra.Command) error {
	d := types.DefaultHarvestConfig()
	v.SetDefault("query", d.Query)
	v.SetDefault("max_results", d.MaxResults)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("ignore_file", d.IgnoreFile)
	v.SetDefault("priority", d.Priority)
	v.SetDefault("arxiv_page_size", d.ArxivPageSize)
	v.SetDefault("europepmc_page_size", d.EuropePMCPageSize)
	v.SetDefault("crossref_rows", d.CrossRefRows)
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("skip_chart", d.SkipChart)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("email", d.Email)
	v.SetDefault("ncbi_api_key", d.NCBIAPIKey)
	v.SetDefault("tool", d.Tool)

	v.SetEnvPrefix("RESEARCH_HARVEST")
	v.AutomaticEnv()

	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig decodes v into a HarvestConfig.
func loadConfig(v *viper.Viper) (types.HarvestConfig, error) {
	var cfg types.HarvestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if _, err := cfg.PrioritySources(); err != nil {
		return cfg, fmt.Errorf("invalid priority: %w", err)
	}
	return cfg.WithDefaults(), nil
}
