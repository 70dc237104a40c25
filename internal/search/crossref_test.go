// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-harvest/internal/httputil"
)

const crossrefSample = `{
  "status": "ok",
  "message-type": "work-list",
  "message": {
    "total-results": 3,
    "items": [
      {
        "title": ["Digital Twins in Medicine"],
        "author": [
          {"given": "Jane", "family": "Smith"},
          {"family": "Doe"},
          {"name": "Virtual Physiological Human Consortium"}
        ],
        "issued": {"date-parts": [[2022, 8, 15]]},
        "DOI": "10.1000/dt.2022.001",
        "URL": "https://doi.org/10.1000/dt.2022.001"
      },
      {
        "title": [],
        "issued": {"date-parts": [[null]]},
        "DOI": "10.1000/untitled",
        "URL": "https://doi.org/10.1000/untitled"
      },
      {
        "title": ["  Surrogate models  ", "Subtitle ignored"],
        "issued": {}
      }
    ]
  }
}`

func startCrossRef(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	old := crossrefAPIBase
	crossrefAPIBase = ts.URL
	t.Cleanup(func() {
		crossrefAPIBase = old
		ts.Close()
	})
	return ts
}

func TestCrossRefBackendSearch(t *testing.T) {
	var seen url.Values
	ts := startCrossRef(t, http.StatusOK, crossrefSample, &seen)

	cfg := testCfg()
	cfg.MaxResults = 100000
	b := &CrossRefBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), "digital twin", cfg)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "digital twin", seen.Get("query"))
	assert.Equal(t, "50", seen.Get("rows"), "row count is fixed regardless of the budget")
	assert.Equal(t, "test@example.com", seen.Get("mailto"))

	first := records[0]
	assert.Equal(t, "CrossRef", string(first.Source))
	assert.Equal(t, "Digital Twins in Medicine", first.Title)
	assert.Equal(t, []string{"Jane Smith", "Doe", "Virtual Physiological Human Consortium"}, first.Authors)
	assert.Equal(t, "2022", first.Year)
	assert.Equal(t, "", first.Abstract)
	assert.Equal(t, "10.1000/dt.2022.001", first.DOI)
	assert.Equal(t, "https://doi.org/10.1000/dt.2022.001", first.URL)

	untitled := records[1]
	assert.Equal(t, "", untitled.Title)
	assert.Equal(t, "", untitled.Year, "null date part yields an empty year")
	assert.NotNil(t, untitled.Authors)
	assert.Empty(t, untitled.Authors)

	sparse := records[2]
	assert.Equal(t, "Surrogate models", sparse.Title)
	assert.Equal(t, "", sparse.Year)
	assert.Equal(t, "", sparse.DOI)
	assert.Equal(t, "", sparse.URL)
}

func TestCrossRefBackendCustomRowsNoMailto(t *testing.T) {
	var seen url.Values
	ts := startCrossRef(t, http.StatusOK, `{"status":"ok","message":{"items":[]}}`, &seen)

	cfg := testCfg()
	cfg.CrossRefRows = 7
	cfg.Email = ""
	b := &CrossRefBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), "q", cfg)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "7", seen.Get("rows"))
	assert.False(t, seen.Has("mailto"))
}

func TestCrossRefBackendHTTPError(t *testing.T) {
	ts := startCrossRef(t, http.StatusBadRequest, `{"status":"failed"}`, nil)

	b := &CrossRefBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), "q", testCfg())
	require.Error(t, err)
	assert.Empty(t, records)
	assert.Equal(t, http.StatusBadRequest, httputil.StatusCode(err))
	assert.Contains(t, err.Error(), "CrossRef API request")
}

func TestCrossRefBackendMalformedJSON(t *testing.T) {
	ts := startCrossRef(t, http.StatusOK, `{"message": {"items": [`, nil)

	b := &CrossRefBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", testCfg())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing CrossRef response")
}

func TestCrossRefAuthorDisplayName(t *testing.T) {
	tests := []struct {
		author crossrefAuthor
		want   string
	}{
		{crossrefAuthor{Given: "Jane", Family: "Smith"}, "Jane Smith"},
		{crossrefAuthor{Given: "Jane"}, "Jane"},
		{crossrefAuthor{Family: "Smith"}, "Smith"},
		{crossrefAuthor{Name: "Consortium"}, "Consortium"},
		{crossrefAuthor{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.author.displayName())
	}
}
