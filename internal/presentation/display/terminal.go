// Package display renders the keyboard and finger positions to the
// terminal during playback.
package display

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/core/playback"
	"github.com/sam-masaki/layout-speed/internal/util"
)

// Cells per key unit on screen. Keys are wider than tall in a terminal.
const (
	cellW = 5
	cellH = 2
)

// cellRef addresses one character cell of the frame grid.
type cellRef struct {
	row int
	col int
}

// KeyboardView draws the key grid once per frame with finger markers
// overlaid from sampler output. The grid holds plain runes only; color
// is tracked per cell and applied while the frame is emitted, so escape
// sequences never shift a column.
type KeyboardView struct {
	lay         *layout.Layout
	inAltScreen bool
	cols        int
	rows        int
}

// NewKeyboardView creates a view sized to the layout's extents.
func NewKeyboardView(lay *layout.Layout) *KeyboardView {
	maxX, maxY := 0.0, 0.0
	for _, key := range lay.Keys {
		if x := key.Pos.X + key.Visual.Width; x > maxX {
			maxX = x
		}
		if y := key.Pos.Y + key.Visual.Height; y > maxY {
			maxY = y
		}
	}
	return &KeyboardView{
		lay:  lay,
		cols: int(maxX*cellW) + 1,
		rows: int(maxY*cellH) + 1,
	}
}

// EnterAltScreen switches to the alternate screen buffer and hides the
// cursor.
func (v *KeyboardView) EnterAltScreen() {
	if !v.inAltScreen {
		fmt.Print(util.EnterAltScreenSeq)
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.HideCursor)
		v.inAltScreen = true
	}
}

// ExitAltScreen restores the normal screen buffer.
func (v *KeyboardView) ExitAltScreen() {
	if v.inAltScreen {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.ShowCursor)
		fmt.Print(util.ExitAltScreenSeq)
		v.inAltScreen = false
	}
}

// Render draws one frame: the key grid, finger markers, and a status line.
func (v *KeyboardView) Render(states [layout.NumFingers]playback.FingerState, clockMs int64) {
	grid := v.blankGrid()
	colors := make(map[cellRef]string)

	for _, key := range v.lay.Keys {
		v.drawKey(grid, key)
	}
	for finger := range states {
		v.drawFinger(grid, colors, finger, states[finger])
	}

	var sb strings.Builder
	sb.WriteString(util.MoveCursorHome)

	maxRows, maxCols := v.clampToTerminal()
	for r := 0; r < maxRows && r < len(grid); r++ {
		sb.WriteString(util.ClearLine)
		for c := 0; c < maxCols && c < len(grid[r]); c++ {
			if color, ok := colors[cellRef{row: r, col: c}]; ok {
				sb.WriteString(color)
				sb.WriteRune(grid[r][c])
				sb.WriteString(util.ColorReset)
			} else {
				sb.WriteRune(grid[r][c])
			}
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%s t=%s  (ctrl-c to quit)", util.ClearLine, util.FormatMillis(clockMs))

	fmt.Print(sb.String())
}

func (v *KeyboardView) blankGrid() [][]rune {
	grid := make([][]rune, v.rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", v.cols))
	}
	return grid
}

func (v *KeyboardView) drawKey(grid [][]rune, key layout.Key) {
	row := int(key.Pos.Y * cellH)
	col := int(key.Pos.X * cellW)
	width := int(key.Visual.Width * cellW)
	if width < 3 {
		width = 3
	}

	label := key.Visual.Name
	if key.Pressed != 0 {
		label = string(key.Pressed)
	}
	label = util.TruncateToWidth(label, width-2)

	cell := "[" + label + strings.Repeat(" ", width-2-util.GetDisplayWidth(label)) + "]"
	v.blit(grid, row, col, cell)
}

func (v *KeyboardView) drawFinger(grid [][]rune, colors map[cellRef]string, finger int, state playback.FingerState) {
	if v.lay.HomeIndex(finger) < 0 && state.Pos.X == 0 && state.Pos.Y == 0 {
		return // inert sentinel finger, nothing to draw
	}
	row := int(state.Pos.Y*cellH) + 1
	col := int(state.Pos.X*cellW) + 1
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}

	grid[row][col] = rune('0' + finger)
	if state.Pressing {
		colors[cellRef{row: row, col: col}] = util.ColorRed + util.ColorBold
	} else {
		colors[cellRef{row: row, col: col}] = util.ColorGreen
	}
}

// blit writes plain text into the grid, clipped to bounds.
func (v *KeyboardView) blit(grid [][]rune, row, col int, text string) {
	if row < 0 || row >= len(grid) {
		return
	}
	for i, r := range []rune(text) {
		c := col + i
		if c < 0 || c >= len(grid[row]) {
			continue
		}
		grid[row][c] = r
	}
}

func (v *KeyboardView) clampToTerminal() (rows, cols int) {
	rows, cols = v.rows, v.cols
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if h-1 < rows {
			rows = h - 1
		}
		if w < cols {
			cols = w
		}
	}
	return rows, cols
}
