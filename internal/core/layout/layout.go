package layout

import (
	"fmt"
	"math"
)

// NumFingers is the number of independently scheduled fingers.
const NumFingers = 10

// Hand tags a finger as belonging to the left or right hand. The finger
// homed on the space key serves both hands and overlaps with either.
type Hand int

const (
	HandLeft Hand = iota
	HandRight
	HandBoth
)

// Pos is a continuous 2D coordinate in key units (1u = one key pitch).
type Pos struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two positions.
func (p Pos) Dist(o Pos) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// VisKey holds metadata used only for drawing a key.
type VisKey struct {
	Width  float64
	Height float64
	Name   string
}

// Key is one physical key. Keys live in the layout's flat arena and are
// referenced everywhere else by index.
type Key struct {
	Pressed rune // character produced without modifiers, 0 for none
	Shifted rune // character produced with shift, 0 for none
	Finger  int  // finger assigned to this key, -1 if unassigned
	IsHome  bool
	Pos     Pos
	Visual  VisKey
}

// Combo is the key sequence needed to produce one character: the main key
// plus any modifier keys, all as arena indices.
type Combo struct {
	Key  int
	Mods []int
}

// Layout maps characters to key combos and fingers to home keys. It is
// immutable once built and safe for concurrent readers.
type Layout struct {
	Keys []Key

	combos map[rune]Combo
	homes  [NumFingers]int // arena index per finger, -1 when the layout has no home
	hands  [NumFingers]Hand
}

// sentinelKey is the inert home reported for fingers the layout never
// assigns. It sits at the origin and accumulates nothing.
var sentinelKey = Key{Pressed: 0, Finger: -1, Pos: Pos{}}

// NumFingersOf reports the finger count of this layout.
func (l *Layout) NumFingersOf() int {
	return NumFingers
}

// HomeKey returns the rest key for a finger.
func (l *Layout) HomeKey(finger int) Key {
	if finger < 0 || finger >= NumFingers || l.homes[finger] < 0 {
		return sentinelKey
	}
	return l.Keys[l.homes[finger]]
}

// HomeIndex returns the arena index of a finger's home key, or -1.
func (l *Layout) HomeIndex(finger int) int {
	if finger < 0 || finger >= NumFingers {
		return -1
	}
	return l.homes[finger]
}

// ComboFor resolves the combo that produces c, if the layout maps it.
func (l *Layout) ComboFor(c rune) (Combo, bool) {
	combo, ok := l.combos[c]
	return combo, ok
}

// HandOf returns the static hand tag for a finger.
func (l *Layout) HandOf(finger int) Hand {
	if finger < 0 || finger >= NumFingers {
		return HandBoth
	}
	return l.hands[finger]
}

// Overlaps reports whether two hand tags can collide on the same hand.
func Overlaps(a, b Hand) bool {
	if a == HandBoth || b == HandBoth {
		return true
	}
	return a == b
}

// finalize builds the combo table, home assignments and hand partition from
// the populated arena. Called once by the loader.
func (l *Layout) finalize() error {
	l.combos = make(map[rune]Combo)
	for i := range l.homes {
		l.homes[i] = -1
	}

	lshift := -1
	rshift := -1
	for i, key := range l.Keys {
		switch key.Visual.Name {
		case "lshift":
			lshift = i
		case "rshift":
			rshift = i
		}
		if key.IsHome && key.Finger >= 0 && key.Finger < NumFingers {
			l.homes[key.Finger] = i
		}
	}

	spaceFinger := -1
	for _, idx := range l.homes {
		if idx >= 0 && l.Keys[idx].Pressed == ' ' {
			spaceFinger = l.Keys[idx].Finger
		}
	}
	if spaceFinger == 0 || spaceFinger == NumFingers-1 {
		return fmt.Errorf("invalid layout: space-homed finger %d sits at the layout edge, cannot split hands", spaceFinger)
	}

	split := NumFingers / 2
	if spaceFinger >= 0 {
		split = spaceFinger
	}
	for i := range l.hands {
		switch {
		case spaceFinger >= 0 && i == spaceFinger:
			l.hands[i] = HandBoth
		case i < split:
			l.hands[i] = HandLeft
		default:
			l.hands[i] = HandRight
		}
	}

	for i, key := range l.Keys {
		if key.Pressed != 0 {
			l.combos[key.Pressed] = Combo{Key: i}
		}
		if key.Shifted == 0 || key.Finger < 0 {
			continue
		}
		// Shift comes from the opposite hand's pinky
		shift := rshift
		if l.hands[key.Finger] == HandRight {
			shift = lshift
		}
		if shift < 0 {
			continue
		}
		l.combos[key.Shifted] = Combo{Key: i, Mods: []int{shift}}
	}

	return nil
}
