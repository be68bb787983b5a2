// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source is one group of bulk files destined for a single table.
type Source struct {
	Table  string   `yaml:"table"`
	Header string   `yaml:"header,omitempty"`
	Cycle  int      `yaml:"cycle,omitempty"`
	Files  []string `yaml:"files"`
}

// Manifest lists the bulk files to load, e.g.
//
//	sources:
//	  - table: candidates_master
//	    cycle: 2024
//	    header: cn_header_file.csv
//	    files: [cn24.txt, cn22.txt]
type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// LoadManifest reads a manifest and resolves relative paths against the
// manifest's own directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Sources {
		s := &m.Sources[i]
		if _, ok := TableByName(s.Table); !ok {
			return Manifest{}, fmt.Errorf("manifest source %d: unknown table %q", i, s.Table)
		}
		if s.Header != "" {
			s.Header = resolvePath(base, s.Header)
		}
		for j := range s.Files {
			s.Files[j] = resolvePath(base, s.Files[j])
		}
	}
	return m, nil
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
