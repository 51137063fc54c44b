package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sam-masaki/layout-speed/internal/data/ranker"
	"github.com/sam-masaki/layout-speed/internal/presentation/formatter"
)

var rankLimit int

var rankCmd = &cobra.Command{
	Use:   "rank <file>",
	Short: "Rank a file's lines by finger travel distance",
	Long: `Analyzes every line of a file independently and prints the lines that
cost the most finger travel on the chosen layout, most expensive first.

Useful for finding the worst passages in a text or comparing test
corpora across layouts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVar(&rankLimit, "limit", ranker.DefaultLimit,
		"Maximum number of lines to report")
}

func runRank(cmd *cobra.Command, args []string) error {
	initLogging()

	builder, err := newBuilder()
	if err != nil {
		return err
	}

	r := ranker.New(builder).WithLimit(rankLimit)

	ranked, err := r.RankFile(expandPath(args[0]))
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	rows := make([]formatter.RankedRow, 0, len(ranked))
	for i, entry := range ranked {
		rows = append(rows, formatter.RankedRow{
			Rank:      i + 1,
			DistUnits: entry.Timeline.TotalDist,
			DistMm:    entry.Timeline.DistMillimeters(),
			TimeMs:    entry.Timeline.TotalTimeMs,
			Line:      entry.Line,
		})
	}
	return formatter.NewRankingFormatter().Format(rows)
}
