package results

// collect.go - Result collection across a scenarios tree. Every
// output*/scorestats.txt below the root contributes one entry, grouped
// by the scenario directory the output dir lives in.

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is the summarized result of one simulation variant.
type Entry struct {
	Group      string   `json:"group"`   // scenario dir relative to the root
	Variant    string   `json:"variant"` // output dir name, e.g. "output_trial_1"
	Iterations int      `json:"iterations"`
	Final      ScoreRow `json:"final"`
}

// Collect walks root and parses every scorestats.txt found inside an
// output directory. Unreadable or malformed files fail the collection;
// a missing root is an error, an empty tree is not.
func Collect(root string) ([]Entry, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scenarios directory: %w", err)
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "scorestats.txt" {
			return nil
		}

		outDir := filepath.Dir(path)
		if !strings.HasPrefix(filepath.Base(outDir), "output") {
			return nil
		}

		stats, err := ParseScoreStatsFile(path)
		if err != nil {
			return err
		}

		group, err := filepath.Rel(root, filepath.Dir(outDir))
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Group:      filepath.ToSlash(group),
			Variant:    filepath.Base(outDir),
			Iterations: len(stats.Rows),
			Final:      stats.Final(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Group != entries[j].Group {
			return entries[i].Group < entries[j].Group
		}
		return entries[i].Variant < entries[j].Variant
	})
	return entries, nil
}
