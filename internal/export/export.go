// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes deduplicated records to a flat CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/research-harvest/pkg/types"
)

// Header is the fixed column schema of the export.
var Header = []string{"Source", "Title", "Authors", "Year", "Abstract", "DOI", "URL"}

// WriteCSV writes records to path, replacing any existing file. The parent
// directory is created when missing. Rows end in CRLF and fields are quoted
// only when they contain a delimiter, quote or line break.
func WriteCSV(path string, records []types.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			f.Close()
			return fmt.Errorf("writing record %q: %w", r.Title, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

func row(r types.Record) []string {
	return []string{
		string(r.Source),
		r.Title,
		r.JoinedAuthors(),
		r.Year,
		r.Abstract,
		r.DOI,
		r.URL,
	}
}
