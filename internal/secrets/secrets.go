// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads contact details and API keys from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Recognized key files: ncbi-email, ncbi-api-key, crossref-mailto.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/research-harvest/pkg/types"
)

// Key file names.
const (
	NCBIEmail      = "ncbi-email"
	NCBIAPIKey     = "ncbi-api-key"
	CrossRefMailto = "crossref-mailto"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, log *slog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", "name", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills contact details in cfg from recognized secrets. Explicitly
// configured values win; the placeholder email counts as unset. ncbi-email
// is preferred over crossref-mailto since both providers share one contact
// address.
func Apply(cfg types.HarvestConfig, s map[string]string) types.HarvestConfig {
	if cfg.Email == "" || cfg.Email == types.DefaultEmail {
		if v := s[NCBIEmail]; v != "" {
			cfg.Email = v
		} else if v := s[CrossRefMailto]; v != "" {
			cfg.Email = v
		}
	}
	if cfg.NCBIAPIKey == "" {
		cfg.NCBIAPIKey = s[NCBIAPIKey]
	}
	return cfg
}
