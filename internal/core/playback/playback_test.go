package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/core/timeline"
)

func buildTimeline(t *testing.T, text string) (*layout.Layout, *timeline.Timeline) {
	t.Helper()
	lay, err := layout.LoadDefault()
	require.NoError(t, err)
	tl := timeline.NewBuilder(lay, timeline.DefaultTunables()).Build(text, true)
	return lay, tl
}

func TestSamplerStartsAtRest(t *testing.T) {
	lay, tl := buildTimeline(t, "q")
	s := NewSampler(tl)

	states := s.Sample()
	for finger := 0; finger < layout.NumFingers; finger++ {
		home := lay.HomeKey(finger)
		assert.Equal(t, home.Pos, states[finger].Pos, "finger %d", finger)
		assert.False(t, states[finger].Pressing)
	}
	assert.Zero(t, s.TimeMs())
}

func TestSamplerInterpolatesTravel(t *testing.T) {
	lay, tl := buildTimeline(t, "q")
	s := NewSampler(tl)

	// Finger 0 leaves a at t=0 and reaches q at t=257.
	home := lay.HomeKey(0).Pos
	q, ok := lay.ComboFor('q')
	require.True(t, ok)
	target := lay.Keys[q.Key].Pos

	s.Advance(100)
	state := s.Sample()[0]

	frac := 100.0 / 257.0
	assert.InDelta(t, home.X+(target.X-home.X)*frac, state.Pos.X, 1e-9)
	assert.InDelta(t, home.Y+(target.Y-home.Y)*frac, state.Pos.Y, 1e-9)
	assert.False(t, state.Pressing)
}

func TestSamplerPressIsStepFunction(t *testing.T) {
	_, tl := buildTimeline(t, "q")
	s := NewSampler(tl)

	// Press runs from t=267 to t=517.
	s.Advance(266)
	assert.False(t, s.Sample()[0].Pressing)

	s.Advance(1)
	state := s.Sample()[0]
	assert.True(t, state.Pressing)
	assert.Equal(t, 'q', state.OnChar)

	s.Advance(250)
	assert.False(t, s.Sample()[0].Pressing)
}

func TestSamplerFrontierNeverRewinds(t *testing.T) {
	_, tl := buildTimeline(t, "qhv")
	s := NewSampler(tl)

	var prev [layout.NumFingers]int
	for i := 0; i < 50; i++ {
		s.Advance(25)
		s.Advance(-1000) // ignored
		for finger, idx := range s.head.Frontier {
			assert.GreaterOrEqual(t, idx, prev[finger])
			prev[finger] = idx
		}
	}
}

func TestSamplerNegativeDeltaIgnored(t *testing.T) {
	_, tl := buildTimeline(t, "q")
	s := NewSampler(tl)

	s.Advance(300)
	clock := s.TimeMs()
	s.Advance(-100)
	assert.Equal(t, clock, s.TimeMs())
}

func TestSamplerHoldsFinalFrame(t *testing.T) {
	lay, tl := buildTimeline(t, "q")
	s := NewSampler(tl)

	s.Advance(tl.TotalTimeMs + 10_000)
	states := s.Sample()
	for finger := 0; finger < layout.NumFingers; finger++ {
		home := lay.HomeKey(finger)
		assert.Equal(t, home.Pos, states[finger].Pos, "finger %d", finger)
		assert.False(t, states[finger].Pressing)
	}
	assert.True(t, s.Done())
}

func TestSamplerDoneProgression(t *testing.T) {
	_, tl := buildTimeline(t, "qhv")
	s := NewSampler(tl)

	assert.False(t, s.Done())
	s.Advance(tl.TotalTimeMs - 1)
	assert.False(t, s.Done())
	s.Advance(1)
	assert.True(t, s.Done())
}

func TestSamplerEmptyTimeline(t *testing.T) {
	s := NewSampler(&timeline.Timeline{})

	assert.True(t, s.Done())
	s.Advance(1000)
	states := s.Sample()
	assert.Equal(t, layout.Pos{}, states[0].Pos)
}
