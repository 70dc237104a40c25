// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-harvest/pkg/types"
)

func newTestConfig(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addHarvestFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))

	v := viper.New()
	require.NoError(t, configure(v, cmd))
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newTestConfig(t))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultHarvestConfig(), cfg)
	assert.Zero(t, cfg.Timeout, "HTTP timeout is opt-in")
}

func TestLoadConfigFlags(t *testing.T) {
	v := newTestConfig(t,
		"--query", "digital twin",
		"--max-results", "25",
		"--output-dir", "out",
		"--priority", "crossref,pubmed",
		"--no-chart",
		"--log-level", "debug",
	)
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "digital twin", cfg.Query)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []string{"crossref", "pubmed"}, cfg.Priority)
	assert.True(t, cfg.SkipChart)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, types.DefaultArxivPageSize, cfg.ArxivPageSize)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("RESEARCH_HARVEST_MAX_RESULTS", "42")
	t.Setenv("RESEARCH_HARVEST_EMAIL", "me@example.org")
	t.Setenv("RESEARCH_HARVEST_TIMEOUT", "5s")

	cfg, err := loadConfig(newTestConfig(t))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxResults)
	assert.Equal(t, "me@example.org", cfg.Email)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv("RESEARCH_HARVEST_MAX_RESULTS", "42")

	cfg, err := loadConfig(newTestConfig(t, "--max-results", "7"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxResults)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "research-harvest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
query: surrogate model
crossref_rows: 10
user_agent: harvest-test/1.0
`), 0o644))

	v := newTestConfig(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "surrogate model", cfg.Query)
	assert.Equal(t, 10, cfg.CrossRefRows)
	assert.Equal(t, "harvest-test/1.0", cfg.UserAgent)
	assert.Equal(t, types.DefaultMaxResults, cfg.MaxResults)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	_, err := loadConfig(newTestConfig(t, "--priority", "pubmed,scopus"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scopus")
}
