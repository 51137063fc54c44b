package util

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorBold   = "\033[1m"

	ClearScreen        = "\033[2J"    // Clear entire screen
	ClearLine          = "\033[2K"    // Clear entire line
	MoveCursorHome     = "\033[H"     // Move cursor to home position
	HideCursor         = "\033[?25l"  // Hide cursor
	ShowCursor         = "\033[?25h"  // Show cursor
	EnterAltScreenSeq  = "\033[?1049h"
	ExitAltScreenSeq   = "\033[?1049l"
)

// GetDisplayWidth calculates the actual display width of a string
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts text to at most width terminal cells
func TruncateToWidth(text string, width int) string {
	return runewidth.Truncate(text, width, "")
}

// MoveCursor returns the ANSI sequence to move the cursor to a position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}
