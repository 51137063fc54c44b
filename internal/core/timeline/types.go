package timeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/util"
)

// Keyframe is one timestamped position/press sample for a single finger.
// Frames are owned by their finger's sequence and never shared.
type Keyframe struct {
	Pos        layout.Pos `json:"pos"`
	TimeMs     int64      `json:"timeMs"`
	StartPress bool       `json:"startPress"`
	// OnChar is the character the finger was working for, kept for
	// diagnostics and playback labels. 0 for modifier and rest frames.
	OnChar rune `json:"-"`
}

// Timeline is the complete schedule for one piece of text: per-finger
// keyframe sequences plus aggregate counters. A Timeline is populated by a
// single Builder invocation and read-only afterwards.
type Timeline struct {
	Fingers       [layout.NumFingers][]Keyframe `json:"-"`
	FingerPresses [layout.NumFingers]int        `json:"fingerPresses"`
	TotalTimeMs   int64                         `json:"totalTimeMs"`
	TotalDist     float64                       `json:"totalDist"`
	TotalWords    int                           `json:"totalWords"`
	TotalChars    int                           `json:"totalChars"`
	HandSwitches  int                           `json:"handSwitches"`

	keyPitchMm float64
}

// WPM is words per minute over the whole schedule.
func (tl *Timeline) WPM() float64 {
	if tl.TotalTimeMs <= 0 {
		return 0
	}
	return 60000.0 * float64(tl.TotalWords) / float64(tl.TotalTimeMs)
}

// UsagePercent is the share of presses done by one finger. Returns -1 for
// an out-of-range finger.
func (tl *Timeline) UsagePercent(finger int) float64 {
	if finger < 0 || finger >= layout.NumFingers {
		return -1
	}
	if tl.TotalChars == 0 {
		return 0
	}
	return 100.0 * float64(tl.FingerPresses[finger]) / float64(tl.TotalChars)
}

// AlternatingPercent is the share of character transitions that switched
// hands. Defined as 0 for schedules of 0 or 1 characters.
func (tl *Timeline) AlternatingPercent() float64 {
	if tl.TotalChars <= 1 {
		return 0
	}
	return 100.0 * float64(tl.HandSwitches) / float64(tl.TotalChars-1)
}

// DistMillimeters converts the total distance to millimeters.
func (tl *Timeline) DistMillimeters() float64 {
	return tl.TotalDist * tl.keyPitchMm
}

// DistMeters converts the total distance to meters.
func (tl *Timeline) DistMeters() float64 {
	return tl.DistMillimeters() / 1000.0
}

// DistKilometers converts the total distance to kilometers.
func (tl *Timeline) DistKilometers() float64 {
	return tl.DistMeters() / 1000.0
}

// Flatten merges every finger's frames into one slice in global time order.
// Ties keep finger order, so simultaneous modifier and main presses come
// out modifier-first.
func (tl *Timeline) Flatten() []Keyframe {
	total := 0
	for i := range tl.Fingers {
		total += len(tl.Fingers[i])
	}

	type tagged struct {
		frame  Keyframe
		finger int
		seq    int
	}
	flat := make([]tagged, 0, total)
	for finger := range tl.Fingers {
		for seq, frame := range tl.Fingers[finger] {
			flat = append(flat, tagged{frame: frame, finger: finger, seq: seq})
		}
	}

	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].frame.TimeMs != flat[j].frame.TimeMs {
			return flat[i].frame.TimeMs < flat[j].frame.TimeMs
		}
		if flat[i].finger != flat[j].finger {
			return flat[i].finger < flat[j].finger
		}
		return flat[i].seq < flat[j].seq
	})

	out := make([]Keyframe, len(flat))
	for i, t := range flat {
		out[i] = t.frame
	}
	return out
}

// Summary renders the human-readable stats block.
func (tl *Timeline) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Total distance: %s (%s)\n",
		util.FormatKeyUnits(tl.TotalDist), util.FormatMillimeters(tl.DistMillimeters()))
	fmt.Fprintf(&sb, "Total time:     %s\n", util.FormatMillis(tl.TotalTimeMs))
	fmt.Fprintf(&sb, "Characters:     %s\n", util.FormatCount(tl.TotalChars))
	fmt.Fprintf(&sb, "Words:          %s\n", util.FormatCount(tl.TotalWords))
	fmt.Fprintf(&sb, "WPM:            %.1f\n", tl.WPM())
	fmt.Fprintf(&sb, "Alternation:    %.1f%%\n", tl.AlternatingPercent())

	for finger := 0; finger < layout.NumFingers; finger++ {
		fmt.Fprintf(&sb, "  Finger %d usage: %5.1f%% (%d presses)\n",
			finger, tl.UsagePercent(finger), tl.FingerPresses[finger])
	}

	return sb.String()
}

// Merge adds another timeline's counters into this one. Keyframe sequences
// are not stitched; this is the approximate reduction used by the parallel
// builders.
func (tl *Timeline) Merge(other *Timeline) {
	for i := range tl.FingerPresses {
		tl.FingerPresses[i] += other.FingerPresses[i]
	}
	tl.TotalTimeMs += other.TotalTimeMs
	tl.TotalDist += other.TotalDist
	tl.TotalWords += other.TotalWords
	tl.TotalChars += other.TotalChars
	tl.HandSwitches += other.HandSwitches
	if tl.keyPitchMm == 0 {
		tl.keyPitchMm = other.keyPitchMm
	}
}
