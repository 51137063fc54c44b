package timeline

import (
	"strings"

	"github.com/sam-masaki/layout-speed/internal/core/layout"
)

// posEpsilon is the distance below which a return-to-home move is not worth
// a keyframe.
const posEpsilon = 1e-6

// modTarget pairs a modifier's finger with the key it must hold down.
type modTarget struct {
	finger int
	key    layout.Key
}

// Builder folds a character stream into a Timeline. Building is inherently
// sequential: each character's schedule depends on the positions and
// availability times every finger was left with. A Builder itself carries
// no per-build state and may be shared across goroutines.
type Builder struct {
	lay *layout.Layout
	tun Tunables
}

// NewBuilder creates a builder for one layout and timing configuration.
func NewBuilder(lay *layout.Layout, tun Tunables) *Builder {
	return &Builder{lay: lay, tun: tun}
}

// Layout returns the layout this builder schedules against.
func (b *Builder) Layout() *layout.Layout {
	return b.lay
}

// Tunables returns the timing configuration.
func (b *Builder) Tunables() Tunables {
	return b.tun
}

// Build schedules text into a new Timeline. With animate set, the full
// keyframe trace is recorded for playback; without it only per-finger
// terminal frames are kept. Counters are identical either way.
// Characters the layout does not map are skipped and counted nowhere.
func (b *Builder) Build(text string, animate bool) *Timeline {
	var rec frameRecorder
	if animate {
		rec = newTraceRecorder(b.lay)
	} else {
		rec = newSummaryRecorder(b.lay)
	}

	tl := &Timeline{keyPitchMm: b.tun.KeyPitchMm}

	var minStart int64      // earliest the next move may begin
	var prevPressEnd int64  // when the previous character's press ended
	var prevPressStart int64
	var prevHands []layout.Hand
	var totalTime int64

	for _, c := range text {
		combo, ok := b.lay.ComboFor(c)
		if !ok {
			continue
		}
		mainKey := b.lay.Keys[combo.Key]
		if mainKey.Finger < 0 {
			continue
		}

		mods := make([]modTarget, 0, len(combo.Mods))
		modFingers := make([]int, 0, len(combo.Mods))
		for _, modIdx := range combo.Mods {
			key := b.lay.Keys[modIdx]
			if key.Finger >= 0 {
				mods = append(mods, modTarget{finger: key.Finger, key: key})
				modFingers = append(modFingers, key.Finger)
			}
		}

		// A key whose finger is claimed by its own modifier gets pressed
		// by the nearest free finger instead. Single-modifier workaround.
		pressFinger := reassignClaimed(mainKey.Finger, modFingers)
		if pressFinger < 0 {
			continue
		}

		hands := b.handSet(pressFinger, modFingers)
		if tl.TotalChars > 0 {
			if handsOverlap(hands, prevHands) {
				// Same hand is still busy: wait out the previous press.
				if prevPressEnd > minStart {
					minStart = prevPressEnd
				}
			} else {
				tl.HandSwitches++
			}
		}

		// The earliest moment every involved finger is on its key.
		pressAt := b.arrival(rec, pressFinger, mainKey, minStart)
		for _, mod := range mods {
			if t := b.arrival(rec, mod.finger, mod.key, minStart); t > pressAt {
				pressAt = t
			}
		}
		// Presses stay globally ordered even across hand switches.
		if prevPressStart > pressAt {
			pressAt = prevPressStart
		}
		pressAt += b.tun.InterPressGapMs

		var endPress, endMove int64
		for _, mod := range mods {
			ep, em := b.emitFinger(rec, mod.finger, mod.key, minStart, pressAt)
			endPress = max64(endPress, ep)
			endMove = max64(endMove, em)
		}

		mainPrev := rec.last(pressFinger)
		mainHome := b.lay.HomeKey(pressFinger)
		ep, em := b.emitFinger(rec, pressFinger, mainKey, minStart, pressAt)
		endPress = max64(endPress, ep)
		endMove = max64(endMove, em)

		// Only the pressing finger's round trip counts toward distance;
		// modifier travel is free, matching usage accounting.
		tl.FingerPresses[pressFinger]++
		tl.TotalDist += mainPrev.Pos.Dist(mainKey.Pos)
		tl.TotalDist += mainKey.Pos.Dist(mainHome.Pos)
		tl.TotalChars++

		prevPressEnd = endPress
		prevPressStart = pressAt
		prevHands = hands
		totalTime = max64(totalTime, endMove)
	}

	tl.Fingers = rec.frames()
	tl.TotalTimeMs = totalTime
	tl.TotalWords = len(strings.Fields(text))
	return tl
}

// arrival is when a finger can be on pressKey: it starts moving once both
// it and the global schedule allow, then travels.
func (b *Builder) arrival(rec frameRecorder, finger int, pressKey layout.Key, minStart int64) int64 {
	prev := rec.last(finger)
	startMove := max64(minStart, prev.TimeMs)
	return startMove + b.moveDur(prev.Pos, pressKey.Pos)
}

// emitFinger records one finger's whole move: optional resume-from-rest
// frame, optional arrived-and-waiting frame, press start, press end, and
// the return home. Returns when the press ends and when the move ends.
func (b *Builder) emitFinger(rec frameRecorder, finger int, pressKey layout.Key, minStart, pressStart int64) (int64, int64) {
	prev := rec.last(finger)
	home := b.lay.HomeKey(finger)

	startMove := max64(minStart, prev.TimeMs)
	arriveAt := startMove + b.moveDur(prev.Pos, pressKey.Pos)
	endPress := pressStart + b.tun.PressDurationMs
	distHome := pressKey.Pos.Dist(home.Pos)
	endMove := endPress + int64(distHome*b.tun.SpeedMsPerUnit)

	// Waiting at rest before the move; skipped when it would duplicate
	// the previous frame.
	if startMove != prev.TimeMs {
		rec.push(finger, Keyframe{Pos: prev.Pos, TimeMs: startMove, OnChar: prev.OnChar})
	}
	// On the key, waiting for the other fingers of the combo.
	if arriveAt != pressStart {
		rec.push(finger, Keyframe{Pos: pressKey.Pos, TimeMs: arriveAt, OnChar: pressKey.Pressed})
	}

	rec.push(finger, Keyframe{Pos: pressKey.Pos, TimeMs: pressStart, StartPress: true, OnChar: pressKey.Pressed})
	rec.push(finger, Keyframe{Pos: pressKey.Pos, TimeMs: endPress, OnChar: pressKey.Pressed})

	terminal := Keyframe{Pos: pressKey.Pos, TimeMs: endPress, OnChar: pressKey.Pressed}
	if distHome > posEpsilon {
		terminal = Keyframe{Pos: home.Pos, TimeMs: endMove, OnChar: home.Pressed}
		rec.push(finger, terminal)
	}
	rec.settle(finger, terminal)

	return endPress, endMove
}

func (b *Builder) moveDur(from, to layout.Pos) int64 {
	// Whole milliseconds, truncated.
	return int64(from.Dist(to) * b.tun.SpeedMsPerUnit)
}

func (b *Builder) handSet(pressFinger int, modFingers []int) []layout.Hand {
	hands := make([]layout.Hand, 0, 1+len(modFingers))
	hands = append(hands, b.lay.HandOf(pressFinger))
	for _, f := range modFingers {
		hands = append(hands, b.lay.HandOf(f))
	}
	return hands
}

func handsOverlap(a, b []layout.Hand) bool {
	for _, ha := range a {
		for _, hb := range b {
			if layout.Overlaps(ha, hb) {
				return true
			}
		}
	}
	return false
}

// reassignClaimed picks the pressing finger for a combo. When the main
// key's finger doubles as a modifier finger the press shifts to the
// nearest unclaimed finger index.
func reassignClaimed(finger int, modFingers []int) int {
	claimed := func(f int) bool {
		for _, m := range modFingers {
			if m == f {
				return true
			}
		}
		return false
	}

	if !claimed(finger) {
		return finger
	}
	for offset := 1; offset < layout.NumFingers; offset++ {
		if f := finger + offset; f < layout.NumFingers && !claimed(f) {
			return f
		}
		if f := finger - offset; f >= 0 && !claimed(f) {
			return f
		}
	}
	return -1
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
