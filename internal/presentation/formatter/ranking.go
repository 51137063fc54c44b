package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/sam-masaki/layout-speed/internal/util"
)

// RankedRow is one line of a ranking listing.
type RankedRow struct {
	Rank      int     `json:"rank"`
	DistUnits float64 `json:"distUnits"`
	DistMm    float64 `json:"distMm"`
	TimeMs    int64   `json:"timeMs"`
	Line      string  `json:"line"`
}

// RankingFormatter renders the most expensive lines of a file.
type RankingFormatter struct {
	out       io.Writer
	lineWidth int
}

// NewRankingFormatter creates a ranking formatter writing to stdout.
func NewRankingFormatter() *RankingFormatter {
	return &RankingFormatter{out: os.Stdout, lineWidth: 60}
}

// Format writes the ranked rows, hardest line first.
func (f *RankingFormatter) Format(rows []RankedRow) error {
	for _, row := range rows {
		line := util.TruncateToWidth(row.Line, f.lineWidth)
		fmt.Fprintf(f.out, "%3d. %10s  %8s  %q\n",
			row.Rank, util.FormatMillimeters(row.DistMm), util.FormatMillis(row.TimeMs), line)
	}
	return nil
}
