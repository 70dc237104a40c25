// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-harvest CLI. Run with no
// arguments it queries PubMed, arXiv, CrossRef and Europe PMC, removes
// duplicates, and writes the CSV export, run summary and chart to oos/.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-harvest/internal/chart"
	"github.com/pdiddy/research-harvest/internal/logger"
	"github.com/pdiddy/research-harvest/internal/pipeline"
	"github.com/pdiddy/research-harvest/internal/search"
	"github.com/pdiddy/research-harvest/internal/secrets"
	"github.com/pdiddy/research-harvest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the research-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "research-harvest",
	Short: "Harvest and deduplicate bibliographic records from literature APIs",
	Long: `research-harvest runs one fixed query against PubMed, arXiv, CrossRef and
Europe PMC, maps every result into a common record, removes duplicates by
title and year, and writes oos/combined_results.csv, a YAML run summary and
a before/after bar chart.

Every setting has a default; flags, a research-harvest.yaml config file and
RESEARCH_HARVEST_* environment variables override them. Contact details are
read from .secrets/ (ncbi-email, ncbi-api-key, crossref-mailto).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHarvest,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-harvest.yaml or ~/.config/research-harvest/config.yaml)")

	addHarvestFlags(rootCmd)
	if err := configure(viper.GetViper(), rootCmd); err != nil {
		panic(err)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-harvest"))
		}
	}

	// A missing config file is fine; every setting has a default.
	_ = viper.ReadInConfig()
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), "research-harvest", cfg.LogLevel)
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			log.Info("using config file", "path", used)
		}
	}

	s, err := secrets.Load(secrets.DefaultDir, log)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		log.Info("loaded secrets", "keys", keys)
	}
	cfg = secrets.Apply(cfg, s)
	if cfg.Email == types.DefaultEmail {
		log.Warn("no contact email configured; NCBI and CrossRef ask for one", "secret", secrets.NCBIEmail)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	res, err := pipeline.Run(ctx, cfg, search.NewBackends(client), chart.NewBarRenderer(), cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	if res.ChartPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved chart to %s\n", res.ChartPath)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
