package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sam-masaki/layout-speed/internal/util"
)

// TableFormatter renders per-finger usage as an aligned table followed by
// the aggregate totals.
type TableFormatter struct {
	out     io.Writer
	headers []string
}

// NewTableFormatter creates a table formatter writing to stdout.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		out:     os.Stdout,
		headers: []string{"Finger", "Presses", "Usage %"},
	}
}

// Format writes the usage table and totals.
func (f *TableFormatter) Format(report Report) error {
	rows := make([][]string, 0, len(report.Fingers))
	for _, usage := range report.Fingers {
		rows = append(rows, []string{
			fmt.Sprintf("%d", usage.Finger),
			util.FormatCount(usage.Presses),
			fmt.Sprintf("%.1f", usage.UsagePercent),
		})
	}

	widths := f.columnWidths(rows)
	f.printRow(f.headers, widths)
	f.printSeparator(widths)
	for _, row := range rows {
		f.printRow(row, widths)
	}

	fmt.Fprintf(f.out, "\nDistance %s, time %s, %d words, %.1f WPM, %.1f%% alternation\n",
		util.FormatMillimeters(report.TotalDistMm), util.FormatMillis(report.TotalTimeMs),
		report.TotalWords, report.WPM, report.AlternatingPercent)
	return nil
}

func (f *TableFormatter) columnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := util.GetDisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = cell + strings.Repeat(" ", widths[i]-util.GetDisplayWidth(cell))
	}
	fmt.Fprintln(f.out, strings.Join(parts, "  "))
}

func (f *TableFormatter) printSeparator(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(f.out, strings.Join(parts, "  "))
}
