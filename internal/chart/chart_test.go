// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/research-harvest/internal/report"
	"github.com/pdiddy/research-harvest/pkg/types"
)

func smallRenderer() *BarRenderer {
	return &BarRenderer{Width: 4 * vg.Inch, Height: 2 * vg.Inch, DPI: 72}
}

func TestRenderWritesPNG(t *testing.T) {
	before := report.SourceCounts{
		{Source: types.SourcePubMed, Count: 3},
		{Source: types.SourceArxiv, Count: 2},
		{Source: types.SourceCrossRef, Count: 1},
	}
	after := before[:2]

	path := filepath.Join(t.TempDir(), "oos", "results_summary.png")
	require.NoError(t, smallRenderer().Render(path, before, after))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4*72, cfg.Width)
	assert.Equal(t, 2*72, cfg.Height)
}

func TestRenderEmptyCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, smallRenderer().Render(path, nil, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestNewBarRendererDefaults(t *testing.T) {
	r := NewBarRenderer()
	assert.Equal(t, 10*vg.Inch, r.Width)
	assert.Equal(t, 5*vg.Inch, r.Height)
	assert.Equal(t, 300, r.DPI)
}
