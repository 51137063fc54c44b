// Package playback reconstructs continuous finger state from a completed
// timeline. A Sampler is pull-based: the render loop advances the playhead
// and samples whenever it wants a frame; nothing here blocks.
package playback

import (
	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/core/timeline"
)

// Playhead is the continuous-time cursor: a global clock plus, per finger,
// the index of the latest keyframe at or before the clock. Frontiers only
// ever move forward.
type Playhead struct {
	TimeMs   int64
	Frontier [layout.NumFingers]int
}

// FingerState is one finger's interpolated state at the playhead.
type FingerState struct {
	Pos      layout.Pos
	Pressing bool
	OnChar   rune
}

// Sampler walks a timeline's keyframes against a monotonic clock.
type Sampler struct {
	tl   *timeline.Timeline
	head Playhead
}

// NewSampler creates a sampler positioned at time 0.
func NewSampler(tl *timeline.Timeline) *Sampler {
	return &Sampler{tl: tl}
}

// TimeMs returns the playhead clock.
func (s *Sampler) TimeMs() int64 {
	return s.head.TimeMs
}

// Advance moves the clock forward by deltaMs and catches every finger's
// frontier up to it. Negative deltas are ignored; the playhead never
// rewinds.
func (s *Sampler) Advance(deltaMs int64) {
	if deltaMs < 0 {
		return
	}
	s.head.TimeMs += deltaMs

	for finger := range s.tl.Fingers {
		frames := s.tl.Fingers[finger]
		for s.head.Frontier[finger]+1 < len(frames) &&
			frames[s.head.Frontier[finger]+1].TimeMs <= s.head.TimeMs {
			s.head.Frontier[finger]++
		}
	}
}

// Sample reports every finger's state at the current clock. Position is
// linearly interpolated between the frontier keyframe and its successor;
// pressing state is a step function taken from the frontier keyframe.
func (s *Sampler) Sample() [layout.NumFingers]FingerState {
	var out [layout.NumFingers]FingerState

	for finger := range s.tl.Fingers {
		frames := s.tl.Fingers[finger]
		idx := s.head.Frontier[finger]

		if len(frames) == 0 {
			continue
		}
		if idx >= len(frames)-1 {
			last := frames[len(frames)-1]
			out[finger] = FingerState{Pos: last.Pos, Pressing: last.StartPress, OnChar: last.OnChar}
			continue
		}

		cur := frames[idx]
		next := frames[idx+1]
		span := next.TimeMs - cur.TimeMs

		frac := 0.0
		if span > 0 {
			frac = float64(s.head.TimeMs-cur.TimeMs) / float64(span)
		}
		out[finger] = FingerState{
			Pos: layout.Pos{
				X: cur.Pos.X + (next.Pos.X-cur.Pos.X)*frac,
				Y: cur.Pos.Y + (next.Pos.Y-cur.Pos.Y)*frac,
			},
			Pressing: cur.StartPress,
			OnChar:   cur.OnChar,
		}
	}

	return out
}

// Done reports whether every finger is past its final keyframe.
func (s *Sampler) Done() bool {
	for finger := range s.tl.Fingers {
		frames := s.tl.Fingers[finger]
		if len(frames) == 0 {
			continue
		}
		if s.head.Frontier[finger] < len(frames)-1 {
			return false
		}
		if s.head.TimeMs < frames[len(frames)-1].TimeMs {
			return false
		}
	}
	return true
}
