package timeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTunables(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefaultTunables(t *testing.T) {
	tun := DefaultTunables()
	assert.Equal(t, int64(250), tun.PressDurationMs)
	assert.Equal(t, int64(10), tun.InterPressGapMs)
	assert.Equal(t, 250.0, tun.SpeedMsPerUnit)
	assert.Equal(t, 19.05, tun.KeyPitchMm)
}

func TestLoadTunablesOverlaysDefaults(t *testing.T) {
	path := writeTunables(t, "press_duration_ms: 100\nspeed_ms_per_unit: 80\n")

	tun, err := LoadTunables(path)
	require.NoError(t, err)
	assert.Equal(t, int64(100), tun.PressDurationMs)
	assert.Equal(t, 80.0, tun.SpeedMsPerUnit)
	// Untouched fields keep their defaults.
	assert.Equal(t, int64(10), tun.InterPressGapMs)
	assert.Equal(t, 19.05, tun.KeyPitchMm)
}

func TestLoadTunablesMissingFile(t *testing.T) {
	_, err := LoadTunables(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTunablesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "zero press duration", contents: "press_duration_ms: 0\n"},
		{name: "negative gap", contents: "inter_press_gap_ms: -1\n"},
		{name: "zero speed", contents: "speed_ms_per_unit: 0\n"},
		{name: "negative pitch", contents: "key_pitch_mm: -19\n"},
		{name: "not yaml", contents: "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTunables(t, tt.contents)
			_, err := LoadTunables(path)
			assert.Error(t, err)
		})
	}
}
