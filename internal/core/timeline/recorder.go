package timeline

import (
	"github.com/sam-masaki/layout-speed/internal/core/layout"
)

// frameRecorder is the reporting strategy for a build: the trace recorder
// keeps the full keyframe history for playback, the summary recorder keeps
// one terminal frame per finger. Both see the same scheduling arithmetic,
// so every counter comes out identical between the two.
type frameRecorder interface {
	// last returns the most recent frame for a finger; scheduling reads
	// position and availability time from it.
	last(finger int) Keyframe
	// push records an intermediate or press frame.
	push(finger int, frame Keyframe)
	// settle records the resting state a finger ends a move in.
	settle(finger int, frame Keyframe)
	// frames hands the recorded sequences to the finished Timeline.
	frames() [layout.NumFingers][]Keyframe
}

func homeFrame(lay *layout.Layout, finger int) Keyframe {
	home := lay.HomeKey(finger)
	return Keyframe{Pos: home.Pos, TimeMs: 0, StartPress: false, OnChar: home.Pressed}
}

// traceRecorder appends every frame, producing the sequences playback
// needs. Each finger starts with its home frame at time 0.
type traceRecorder struct {
	fingers [layout.NumFingers][]Keyframe
}

func newTraceRecorder(lay *layout.Layout) *traceRecorder {
	r := &traceRecorder{}
	for finger := range r.fingers {
		r.fingers[finger] = append(r.fingers[finger], homeFrame(lay, finger))
	}
	return r
}

func (r *traceRecorder) last(finger int) Keyframe {
	seq := r.fingers[finger]
	return seq[len(seq)-1]
}

func (r *traceRecorder) push(finger int, frame Keyframe) {
	r.fingers[finger] = append(r.fingers[finger], frame)
}

func (r *traceRecorder) settle(int, Keyframe) {
	// The terminal frame was already pushed when the move produced one.
}

func (r *traceRecorder) frames() [layout.NumFingers][]Keyframe {
	return r.fingers
}

// summaryRecorder retains a single frame per finger: where the finger came
// to rest after its latest move. Intermediate frames are dropped.
type summaryRecorder struct {
	slots [layout.NumFingers]Keyframe
}

func newSummaryRecorder(lay *layout.Layout) *summaryRecorder {
	r := &summaryRecorder{}
	for finger := range r.slots {
		r.slots[finger] = homeFrame(lay, finger)
	}
	return r
}

func (r *summaryRecorder) last(finger int) Keyframe {
	return r.slots[finger]
}

func (r *summaryRecorder) push(int, Keyframe) {}

func (r *summaryRecorder) settle(finger int, frame Keyframe) {
	r.slots[finger] = frame
}

func (r *summaryRecorder) frames() [layout.NumFingers][]Keyframe {
	var out [layout.NumFingers][]Keyframe
	for finger, slot := range r.slots {
		out[finger] = []Keyframe{slot}
	}
	return out
}
