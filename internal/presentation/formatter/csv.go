package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVFormatter renders per-finger usage rows plus a totals row.
type CSVFormatter struct {
	out io.Writer
}

// NewCSVFormatter creates a CSV formatter writing to stdout.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{out: os.Stdout}
}

// Format writes the report as CSV.
func (f *CSVFormatter) Format(report Report) error {
	w := csv.NewWriter(f.out)
	defer w.Flush()

	headers := []string{"Finger", "Presses", "Usage %"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, usage := range report.Fingers {
		record := []string{
			fmt.Sprintf("%d", usage.Finger),
			fmt.Sprintf("%d", usage.Presses),
			fmt.Sprintf("%.2f", usage.UsagePercent),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	totals := []string{
		"total",
		fmt.Sprintf("%d", report.TotalChars),
		"100.00",
	}
	if err := w.Write(totals); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
