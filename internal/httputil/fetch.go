// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-shot HTTP helpers shared by the
// provider adapters.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError reports a non-2xx response. Adapters return it so the caller
// can log the provider's status code.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// (and does not wrap) a *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Get issues a GET for rawURL with params appended and returns the body.
// A non-2xx response is drained and reported as *StatusError.
func Get(ctx context.Context, client *http.Client, rawURL string, params url.Values, userAgent string) ([]byte, error) {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return do(client, req, userAgent)
}

// PostForm issues a form-encoded POST and returns the body. It is used for
// requests whose parameter list can exceed URL length limits.
func PostForm(ctx context.Context, client *http.Client, rawURL string, form url.Values, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(client, req, userAgent)
}

func do(client *http.Client, req *http.Request, userAgent string) ([]byte, error) {
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		// Error URLs never carry the query string.
		endpoint := *req.URL
		endpoint.RawQuery = ""
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: endpoint.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
