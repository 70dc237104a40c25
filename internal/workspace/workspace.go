// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace prepares the output directory and keeps it out of
// version control.
package workspace

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// IgnorePattern returns the ignore-file entry for outputDir, relative to
// the directory holding ignoreFile: (".gitignore", "oos") gives "oos/". It
// reports false when outputDir is not below that directory.
func IgnorePattern(ignoreFile, outputDir string) (string, bool) {
	base, err := filepath.Abs(filepath.Dir(ignoreFile))
	if err != nil {
		return "", false
	}
	target, err := filepath.Abs(outputDir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel) + "/", true
}

// EnsureIgnored appends pattern to the ignore file at path unless a line
// already equals it, creating the file when absent. It reports whether the
// file was changed.
func EnsureIgnored(path, pattern string) (bool, error) {
	found, err := hasLine(path, pattern)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, "\n%s\n", pattern); err != nil {
		f.Close()
		return false, fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}

func hasLine(path, want string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimRight(scanner.Text(), "\r") == want {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return false, nil
}
