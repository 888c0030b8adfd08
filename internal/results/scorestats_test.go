package results

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScoreStats = "ITERATION\tavg. EXECUTED\tavg. WORST\tavg. AVG\tavg. BEST\n" +
	"0\t98.1\t95.2\t97.4\t99.0\n" +
	"1\t101.3\t96.8\t99.1\t103.5\n" +
	"2\t104.25\t98.0\t101.7\t106.9\n"

func TestParseScoreStats(t *testing.T) {
	stats, err := ParseScoreStats(strings.NewReader(sampleScoreStats))
	require.NoError(t, err)
	require.Len(t, stats.Rows, 3)

	assert.Equal(t, 0, stats.Rows[0].Iteration)
	assert.Equal(t, 98.1, stats.Rows[0].Executed)
	assert.Equal(t, 99.0, stats.Rows[0].Best)

	final := stats.Final()
	assert.Equal(t, 2, final.Iteration)
	assert.Equal(t, 104.25, final.Executed)
	assert.Equal(t, 101.7, final.Avg)
}

func TestParseScoreStatsTrailingBlankLines(t *testing.T) {
	stats, err := ParseScoreStats(strings.NewReader(sampleScoreStats + "\n\n"))
	require.NoError(t, err)
	assert.Len(t, stats.Rows, 3)
}

func TestParseScoreStatsNoHeader(t *testing.T) {
	stats, err := ParseScoreStats(strings.NewReader("0\t1.0\t2.0\t3.0\t4.0\n"))
	require.NoError(t, err)
	require.Len(t, stats.Rows, 1)
	assert.Equal(t, 4.0, stats.Rows[0].Best)
}

func TestParseScoreStatsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "no iterations"},
		{"header only", "ITERATION\tavg. EXECUTED\tavg. WORST\tavg. AVG\tavg. BEST\n", "no iterations"},
		{"bad score", "0\t1.0\toops\t3.0\t4.0\n", "invalid score"},
		{"short row", "0\t1.0\t2.0\n", "expected 5 columns"},
		{"bad iteration mid-file", sampleScoreStats + "x\t1\t2\t3\t4\n", "invalid iteration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScoreStats(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
