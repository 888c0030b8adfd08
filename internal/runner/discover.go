// Package runner executes the external MATSim engine over generated
// scenario configs and records the outcome of every run.
package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsConfigFile reports whether a file name is a scenario config
// (config*.xml).
func IsConfigFile(name string) bool {
	ok, _ := filepath.Match("config*.xml", name)
	return ok
}

// isOutputDir reports whether a directory holds simulation output.
// MATSim writes into output* directories next to the config files; they
// must never be scanned for configs.
func isOutputDir(name string) bool {
	return strings.HasPrefix(name, "output")
}

// DiscoverConfigs walks root and returns all config*.xml paths, sorted,
// skipping output directories.
func DiscoverConfigs(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scenarios directory: %w", err)
	}

	var configs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && isOutputDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsConfigFile(d.Name()) {
			configs = append(configs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(configs)
	return configs, nil
}

// FilterConfigs keeps the configs whose path relative to root matches
// the glob pattern (matched against both the full relative path and the
// base name).
func FilterConfigs(root string, configs []string, pattern string) ([]string, error) {
	if pattern == "" {
		return configs, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}

	var out []string
	for _, cfg := range configs {
		rel, err := filepath.Rel(root, cfg)
		if err != nil {
			rel = cfg
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := filepath.Match(pattern, rel); ok {
			out = append(out, cfg)
			continue
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(cfg)); ok {
			out = append(out, cfg)
		}
	}
	return out, nil
}
