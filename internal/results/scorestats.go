// Package results extracts score statistics from MATSim simulation
// output. The engine writes a tab-separated scorestats.txt into every
// output directory; the final iteration's averages are the study's
// primary measurement.
package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ScoreRow is one iteration's population score averages.
type ScoreRow struct {
	Iteration int     `json:"iteration"`
	Executed  float64 `json:"avg_executed"`
	Worst     float64 `json:"avg_worst"`
	Avg       float64 `json:"avg_avg"`
	Best      float64 `json:"avg_best"`
}

// ScoreStats is a parsed scorestats.txt.
type ScoreStats struct {
	Rows []ScoreRow
}

// Final returns the last iteration's row.
func (s *ScoreStats) Final() ScoreRow {
	return s.Rows[len(s.Rows)-1]
}

// ParseScoreStats reads a scorestats.txt. The header line is detected by
// its non-numeric first field; blank lines are ignored.
func ParseScoreStats(r io.Reader) (*ScoreStats, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	stats := &ScoreStats{}
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read score stats: %w", err)
		}
		line++

		if isBlank(record) {
			continue
		}
		if _, err := strconv.Atoi(record[0]); err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: invalid iteration %q", line, record[0])
		}
		if len(record) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", line, len(record))
		}

		row := ScoreRow{}
		row.Iteration, _ = strconv.Atoi(record[0])
		values := make([]float64, 4)
		for i, field := range record[1:5] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid score %q", line, field)
			}
			values[i] = v
		}
		row.Executed, row.Worst, row.Avg, row.Best = values[0], values[1], values[2], values[3]
		stats.Rows = append(stats.Rows, row)
	}

	if len(stats.Rows) == 0 {
		return nil, fmt.Errorf("score stats contain no iterations")
	}
	return stats, nil
}

// ParseScoreStatsFile reads a scorestats.txt from disk.
func ParseScoreStatsFile(path string) (*ScoreStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score stats: %w", err)
	}
	defer func() { _ = f.Close() }()

	stats, err := ParseScoreStats(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
