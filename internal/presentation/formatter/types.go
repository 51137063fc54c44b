package formatter

import (
	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/core/timeline"
)

// Report is the flattened, output-ready view of one timeline's stats.
type Report struct {
	Source             string        `json:"source,omitempty"`
	TotalDistUnits     float64       `json:"totalDistUnits"`
	TotalDistMm        float64       `json:"totalDistMm"`
	TotalDistMeters    float64       `json:"totalDistMeters"`
	TotalTimeMs        int64         `json:"totalTimeMs"`
	TotalWords         int           `json:"totalWords"`
	TotalChars         int           `json:"totalChars"`
	WPM                float64       `json:"wpm"`
	AlternatingPercent float64       `json:"alternatingPercent"`
	HandSwitches       int           `json:"handSwitches"`
	Fingers            []FingerUsage `json:"fingers"`
}

// FingerUsage is one finger's share of the work.
type FingerUsage struct {
	Finger       int     `json:"finger"`
	Presses      int     `json:"presses"`
	UsagePercent float64 `json:"usagePercent"`
}

// BuildReport converts a timeline into a Report.
func BuildReport(tl *timeline.Timeline, source string) Report {
	report := Report{
		Source:             source,
		TotalDistUnits:     tl.TotalDist,
		TotalDistMm:        tl.DistMillimeters(),
		TotalDistMeters:    tl.DistMeters(),
		TotalTimeMs:        tl.TotalTimeMs,
		TotalWords:         tl.TotalWords,
		TotalChars:         tl.TotalChars,
		WPM:                tl.WPM(),
		AlternatingPercent: tl.AlternatingPercent(),
		HandSwitches:       tl.HandSwitches,
		Fingers:            make([]FingerUsage, 0, layout.NumFingers),
	}
	for finger := 0; finger < layout.NumFingers; finger++ {
		report.Fingers = append(report.Fingers, FingerUsage{
			Finger:       finger,
			Presses:      tl.FingerPresses[finger],
			UsagePercent: tl.UsagePercent(finger),
		})
	}
	return report
}
