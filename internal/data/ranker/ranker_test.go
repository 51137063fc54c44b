package ranker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/core/timeline"
)

func qwertyRanker(t *testing.T) *Ranker {
	t.Helper()
	lay, err := layout.LoadDefault()
	require.NoError(t, err)
	return New(timeline.NewBuilder(lay, timeline.DefaultTunables()))
}

func TestRankLinesOrdering(t *testing.T) {
	r := qwertyRanker(t)

	ranked := r.RankLines("hh\nqqqqqqqq\n\nv")
	require.Len(t, ranked, 4)

	assert.Equal(t, "qqqqqqqq", ranked[0].Line)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i].Timeline.TotalDist, ranked[i-1].Timeline.TotalDist,
			"distance must be non-increasing")
	}
	assert.Zero(t, ranked[len(ranked)-1].Timeline.TotalDist, "empty line ranks last")
}

func TestRankLinesStatsMatchDirectBuild(t *testing.T) {
	r := qwertyRanker(t)
	line := "pack my box with five dozen liquor jugs"

	ranked := r.RankLines(line)
	require.Len(t, ranked, 1)

	direct := r.builder.Build(line, false)
	assert.Equal(t, direct.TotalDist, ranked[0].Timeline.TotalDist)
	assert.Equal(t, direct.TotalTimeMs, ranked[0].Timeline.TotalTimeMs)
	assert.Equal(t, direct.TotalChars, ranked[0].Timeline.TotalChars)
}

func TestRankLinesRetainsLimit(t *testing.T) {
	r := qwertyRanker(t).WithLimit(3)

	var sb strings.Builder
	for i := 1; i <= 10; i++ {
		// Line i costs i q round trips, so the longest lines win.
		sb.WriteString(strings.Repeat("q", i))
		sb.WriteString("\n")
	}
	ranked := r.RankLines(strings.TrimSuffix(sb.String(), "\n"))

	require.Len(t, ranked, 3)
	assert.Equal(t, strings.Repeat("q", 10), ranked[0].Line)
	assert.Equal(t, strings.Repeat("q", 9), ranked[1].Line)
	assert.Equal(t, strings.Repeat("q", 8), ranked[2].Line)
}

func TestRankLinesFewerThanLimit(t *testing.T) {
	r := qwertyRanker(t)

	ranked := r.RankLines("one\ntwo")
	assert.Len(t, ranked, 2)
}

func TestWithLimitIgnoresNonPositive(t *testing.T) {
	r := qwertyRanker(t).WithLimit(0).WithLimit(-5)
	assert.Equal(t, DefaultLimit, r.limit)
}

func TestRankFile(t *testing.T) {
	r := qwertyRanker(t)
	path := filepath.Join(t.TempDir(), "lines.txt")

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "line %d with some typing in it\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))

	ranked, err := r.RankFile(path)
	require.NoError(t, err)
	assert.Len(t, ranked, 20)
}

func TestRankFileTrailingNewlineIsNotALine(t *testing.T) {
	r := qwertyRanker(t)
	path := filepath.Join(t.TempDir(), "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	ranked, err := r.RankFile(path)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	for _, entry := range ranked {
		assert.NotEmpty(t, entry.Line)
	}
}

func TestRankLinesEdgeInputs(t *testing.T) {
	r := qwertyRanker(t)

	assert.Empty(t, r.RankLines(""))
	// A lone newline terminates one empty line.
	assert.Len(t, r.RankLines("\n"), 1)
	// An interior blank line is a real (zero-cost) line.
	assert.Len(t, r.RankLines("a\n\nb\n"), 3)
}

func TestRankFileMissing(t *testing.T) {
	r := qwertyRanker(t)

	ranked, err := r.RankFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Nil(t, ranked)
}
