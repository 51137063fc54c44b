package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultHomes(t *testing.T) {
	lay, err := LoadDefault()
	require.NoError(t, err)

	tests := []struct {
		name    string
		finger  int
		pressed rune
		x       float64
		y       float64
	}{
		{name: "left pinky on a", finger: 0, pressed: 'a', x: 1.75, y: 2},
		{name: "left ring on s", finger: 1, pressed: 's', x: 2.75, y: 2},
		{name: "left middle on d", finger: 2, pressed: 'd', x: 3.75, y: 2},
		{name: "left index on f", finger: 3, pressed: 'f', x: 4.75, y: 2},
		{name: "thumb on space", finger: 4, pressed: ' ', x: 3.75, y: 4},
		{name: "right index on j", finger: 6, pressed: 'j', x: 7.75, y: 2},
		{name: "right middle on k", finger: 7, pressed: 'k', x: 8.75, y: 2},
		{name: "right ring on l", finger: 8, pressed: 'l', x: 9.75, y: 2},
		{name: "right pinky on semicolon", finger: 9, pressed: ';', x: 10.75, y: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := lay.HomeKey(tt.finger)
			assert.Equal(t, tt.pressed, home.Pressed)
			assert.Equal(t, tt.x, home.Pos.X)
			assert.Equal(t, tt.y, home.Pos.Y)
		})
	}
}

func TestLoadDefaultSentinelFinger(t *testing.T) {
	lay, err := LoadDefault()
	require.NoError(t, err)

	// The second thumb has no home key on a standard board.
	assert.Equal(t, -1, lay.HomeIndex(5))
	sentinel := lay.HomeKey(5)
	assert.Equal(t, rune(0), sentinel.Pressed)
	assert.Equal(t, -1, sentinel.Finger)
	assert.Equal(t, Pos{}, sentinel.Pos)

	// Out of range fingers get the same inert key.
	assert.Equal(t, sentinel, lay.HomeKey(-1))
	assert.Equal(t, sentinel, lay.HomeKey(NumFingers))
}

func TestLoadDefaultHandPartition(t *testing.T) {
	lay, err := LoadDefault()
	require.NoError(t, err)

	for finger := 0; finger < 4; finger++ {
		assert.Equal(t, HandLeft, lay.HandOf(finger), "finger %d", finger)
	}
	assert.Equal(t, HandBoth, lay.HandOf(4), "space finger serves both hands")
	for finger := 5; finger < NumFingers; finger++ {
		assert.Equal(t, HandRight, lay.HandOf(finger), "finger %d", finger)
	}
}

func TestComboLookup(t *testing.T) {
	lay, err := LoadDefault()
	require.NoError(t, err)

	t.Run("plain character", func(t *testing.T) {
		combo, ok := lay.ComboFor('a')
		require.True(t, ok)
		assert.Empty(t, combo.Mods)
		assert.Equal(t, 'a', lay.Keys[combo.Key].Pressed)
	})

	t.Run("shifted left-hand character uses right shift", func(t *testing.T) {
		combo, ok := lay.ComboFor('A')
		require.True(t, ok)
		require.Len(t, combo.Mods, 1)
		assert.Equal(t, 'a', lay.Keys[combo.Key].Pressed)
		assert.Equal(t, "rshift", lay.Keys[combo.Mods[0]].Visual.Name)
	})

	t.Run("shifted right-hand character uses left shift", func(t *testing.T) {
		combo, ok := lay.ComboFor('?')
		require.True(t, ok)
		require.Len(t, combo.Mods, 1)
		assert.Equal(t, '/', lay.Keys[combo.Key].Pressed)
		assert.Equal(t, "lshift", lay.Keys[combo.Mods[0]].Visual.Name)
	})

	t.Run("quoted csv specials survive", func(t *testing.T) {
		for _, c := range []rune{'"', ',', ' ', '\''} {
			_, ok := lay.ComboFor(c)
			assert.True(t, ok, "expected mapping for %q", c)
		}
	})

	t.Run("unmapped character", func(t *testing.T) {
		_, ok := lay.ComboFor('€')
		assert.False(t, ok)
	})
}

func TestParsePositionContinuation(t *testing.T) {
	lay, err := LoadDefault()
	require.NoError(t, err)

	// q sits right of the 1.5u tab key; w continues right of q.
	q, ok := lay.ComboFor('q')
	require.True(t, ok)
	assert.Equal(t, Pos{X: 1.5, Y: 1}, lay.Keys[q.Key].Pos)

	w, ok := lay.ComboFor('w')
	require.True(t, ok)
	assert.Equal(t, Pos{X: 2.5, Y: 1}, lay.Keys[w.Key].Pos)
}

func TestParseRejectsEdgeSpaceFinger(t *testing.T) {
	src := strings.Join([]string{
		"name,unshifted,shifted,finger,home,x,y,w,h",
		`space," ",,0,1,0,0,6.25,`,
		"j,j,J,6,1,7,0,,",
	}, "\n")

	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout edge")
}

func TestParseWithoutSpaceSplitsDownTheMiddle(t *testing.T) {
	src := strings.Join([]string{
		"name,unshifted,shifted,finger,home,x,y,w,h",
		"a,a,A,0,1,0,0,,",
		"j,j,J,6,1,7,0,,",
	}, "\n")

	lay, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, HandLeft, lay.HandOf(4))
	assert.Equal(t, HandRight, lay.HandOf(5))
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader("name,unshifted,shifted,finger,home,x,y,w,h\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no key records")
}

func TestPosDist(t *testing.T) {
	assert.InDelta(t, 5.0, Pos{X: 0, Y: 0}.Dist(Pos{X: 3, Y: 4}), 1e-12)
	assert.Zero(t, Pos{X: 2, Y: 2}.Dist(Pos{X: 2, Y: 2}))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(HandLeft, HandLeft))
	assert.True(t, Overlaps(HandRight, HandRight))
	assert.True(t, Overlaps(HandBoth, HandLeft))
	assert.True(t, Overlaps(HandRight, HandBoth))
	assert.False(t, Overlaps(HandLeft, HandRight))
}
