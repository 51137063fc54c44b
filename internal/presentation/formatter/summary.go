package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/sam-masaki/layout-speed/internal/util"
)

// SummaryFormatter renders the human-readable stats block.
type SummaryFormatter struct {
	out io.Writer
}

// NewSummaryFormatter creates a summary formatter writing to stdout.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{out: os.Stdout}
}

// Format writes the summary report.
func (f *SummaryFormatter) Format(report Report) error {
	if report.Source != "" {
		fmt.Fprintf(f.out, "%s%s%s\n", util.ColorBold, report.Source, util.ColorReset)
	}
	fmt.Fprintf(f.out, "Total distance: %s (%s)\n",
		util.FormatKeyUnits(report.TotalDistUnits), util.FormatMillimeters(report.TotalDistMm))
	fmt.Fprintf(f.out, "Total time:     %s\n", util.FormatMillis(report.TotalTimeMs))
	fmt.Fprintf(f.out, "Characters:     %s\n", util.FormatCount(report.TotalChars))
	fmt.Fprintf(f.out, "Words:          %s\n", util.FormatCount(report.TotalWords))
	fmt.Fprintf(f.out, "WPM:            %.1f\n", report.WPM)
	fmt.Fprintf(f.out, "Alternation:    %.1f%% (%d hand switches)\n",
		report.AlternatingPercent, report.HandSwitches)

	for _, usage := range report.Fingers {
		fmt.Fprintf(f.out, "  Finger %d: %5.1f%% (%s presses)\n",
			usage.Finger, usage.UsagePercent, util.FormatCount(usage.Presses))
	}
	return nil
}
