package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables is the immutable timing/geometry configuration a Builder is
// constructed with. There are no process-wide mutable knobs; callers that
// want different timing build another Builder.
type Tunables struct {
	// PressDurationMs is how long a key stays pressed.
	PressDurationMs int64 `yaml:"press_duration_ms"`
	// InterPressGapMs separates consecutive press starts so presses from
	// distinct fingers never land on the same millisecond.
	InterPressGapMs int64 `yaml:"inter_press_gap_ms"`
	// SpeedMsPerUnit converts movement distance (key units) to duration.
	SpeedMsPerUnit float64 `yaml:"speed_ms_per_unit"`
	// KeyPitchMm converts key units to physical distance.
	KeyPitchMm float64 `yaml:"key_pitch_mm"`
}

// DefaultTunables returns the stock timing model: 250ms presses, 10ms
// inter-press gap, 250ms per key unit of travel, 19.05mm key pitch.
func DefaultTunables() Tunables {
	return Tunables{
		PressDurationMs: 250,
		InterPressGapMs: 10,
		SpeedMsPerUnit:  250,
		KeyPitchMm:      19.05,
	}
}

// LoadTunables overlays the defaults with values from a YAML file.
func LoadTunables(path string) (Tunables, error) {
	tun := DefaultTunables()

	data, err := os.ReadFile(path)
	if err != nil {
		return tun, fmt.Errorf("failed to read tunables file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tun); err != nil {
		return tun, fmt.Errorf("failed to parse tunables file %s: %w", path, err)
	}
	if err := tun.validate(); err != nil {
		return tun, fmt.Errorf("invalid tunables in %s: %w", path, err)
	}
	return tun, nil
}

func (t Tunables) validate() error {
	if t.PressDurationMs <= 0 {
		return fmt.Errorf("press_duration_ms must be positive, got %d", t.PressDurationMs)
	}
	if t.InterPressGapMs < 0 {
		return fmt.Errorf("inter_press_gap_ms must not be negative, got %d", t.InterPressGapMs)
	}
	if t.SpeedMsPerUnit <= 0 {
		return fmt.Errorf("speed_ms_per_unit must be positive, got %v", t.SpeedMsPerUnit)
	}
	if t.KeyPitchMm <= 0 {
		return fmt.Errorf("key_pitch_mm must be positive, got %v", t.KeyPitchMm)
	}
	return nil
}
