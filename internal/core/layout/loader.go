package layout

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sam-masaki/layout-speed/internal/util"
)

//go:embed qwerty.layout
var qwertyLayout string

// Load reads a .layout file from disk and builds the immutable Layout.
func Load(path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout file %s: %w", path, err)
	}
	defer file.Close()

	lay, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}
	return lay, nil
}

// LoadDefault builds the builtin QWERTY layout.
func LoadDefault() (*Layout, error) {
	return Parse(strings.NewReader(qwertyLayout))
}

// Parse reads layout records from r. The format is CSV with a header row:
// name,unshifted,shifted,finger,home,x,y,w,h. Position and size fields are
// optional; a key without them continues to the right of the previous key.
func Parse(r io.Reader) (*Layout, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed layout csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("layout has no key records")
	}

	lay := &Layout{Keys: make([]Key, 0, len(records)-1)}

	prevX, prevY, prevW := 0.0, 0.0, 0.0
	for n, record := range records[1:] {
		if len(record) < 5 {
			util.LogDebugf("Skip short layout record %d: %v", n+2, record)
			continue
		}

		key := Key{
			Pressed: firstRune(field(record, 1)),
			Shifted: firstRune(field(record, 2)),
			Finger:  parseInt(field(record, 3), -1),
			IsHome:  field(record, 4) != "",
			Visual: VisKey{
				Name:   field(record, 0),
				Width:  parseFloat(field(record, 7), 1.0),
				Height: parseFloat(field(record, 8), 1.0),
			},
		}
		key.Pos = Pos{
			X: parseFloat(field(record, 5), prevX+prevW),
			Y: parseFloat(field(record, 6), prevY),
		}

		prevX = key.Pos.X
		prevY = key.Pos.Y
		prevW = key.Visual.Width

		lay.Keys = append(lay.Keys, key)
	}

	if err := lay.finalize(); err != nil {
		return nil, err
	}

	util.LogDebugf("Loaded layout with %d keys, %d mapped characters", len(lay.Keys), len(lay.combos))
	return lay, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func parseInt(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}
