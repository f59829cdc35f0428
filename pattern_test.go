package sunvox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sunvox "github.com/aspect-build/sunvox-go"
)

func TestPatterns(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	pats := slot.Patterns()
	require.Len(t, pats, 2)
	assert.Equal(t, 2, slot.NumPatterns())

	intro := pats[0]
	assert.True(t, intro.Exists())
	assert.Equal(t, "Intro", intro.Name())
	assert.Equal(t, 4, intro.Tracks())
	assert.Equal(t, 32, intro.Lines())
	assert.Equal(t, `Pattern(0, name="Intro", tracks=4, lines=32)`, intro.String())

	verse, err := slot.FindPattern("Verse")
	require.NoError(t, err)
	x, y := verse.Position()
	assert.Equal(t, 32, x)
	assert.Equal(t, 32, y)
	assert.Equal(t, 8, verse.Tracks())

	_, err = slot.FindPattern("Chorus")
	assert.ErrorIs(t, err, sunvox.ErrNotFound)
	assert.False(t, slot.Pattern(9).Exists())
}

func TestPatternEvents(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	intro := slot.Pattern(0)

	n, err := intro.Event(0, 0)
	require.NoError(t, err)
	assert.Equal(t, sunvox.Note{Note: 49, Vel: 129, Module: 2}, n)

	n, err = intro.Event(2, 24)
	require.NoError(t, err)
	assert.Equal(t, "Note(note=0, vel=0, module=3, ctl=0x0100, ctl_val=0x4000)", n.String())

	// Negative fields leave the column unchanged.
	require.NoError(t, intro.SetEvent(0, 0, 50, -1, -1, -1, -1))
	n, err = intro.Event(0, 0)
	require.NoError(t, err)
	assert.Equal(t, sunvox.Note{Note: 50, Vel: 129, Module: 2}, n)

	require.NoError(t, intro.SetNote(3, 31, sunvox.Note{Note: 60, Vel: 64, Module: 2}))
	data := intro.Data()
	require.Len(t, data, 4*32)
	assert.Equal(t, uint8(60), data[31*4+3].Note)

	// Data is a live view of the pattern.
	data[1].Note = 72
	n, err = intro.Event(1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(72), n.Note)

	_, err = intro.Event(4, 0)
	assert.True(t, sunvox.IsEngineError(err), "track out of range")
	assert.Error(t, intro.SetEvent(0, 32, 1, 1, 1, 1, 1))
}

func TestNewPattern(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	var pat, clone *sunvox.Pattern
	require.NoError(t, slot.WithLock(func() error {
		var err error
		if pat, err = slot.NewPattern(sunvox.PatternSpec{Name: "Outro", X: 96}); err != nil {
			return err
		}
		clone, err = slot.ClonePattern(pat, sunvox.PatternSpec{Name: "Outro 2", X: 128})
		return err
	}))

	assert.Equal(t, 4, pat.Tracks())
	assert.Equal(t, 32, pat.Lines())
	assert.Equal(t, 96, pat.X())
	assert.Equal(t, uint32(160), slot.LengthLines())

	// Clones share their data.
	require.NoError(t, pat.SetEvent(0, 0, 60, 0, 2, 0, 0))
	n, err := clone.Event(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(60), n.Note)
	assert.Equal(t, "Outro 2", clone.Name())

	require.NoError(t, pat.SetSize(8, -1))
	assert.Equal(t, 8, pat.Tracks())
	assert.Equal(t, 32, pat.Lines())
	n, err = pat.Event(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(60), n.Note, "resize keeps events")

	require.NoError(t, pat.SetPosition(10, 20))
	require.NoError(t, pat.SetName("Ending"))
	assert.Equal(t, "Ending", pat.Name())
	assert.Equal(t, 20, pat.Y())

	require.NoError(t, slot.WithLock(clone.Remove))
	assert.False(t, clone.Exists())
	assert.Len(t, slot.Patterns(), 3)
}

func TestPatternMute(t *testing.T) {
	e, fake := newTestEngine(t, 0)
	slot := openDemo(t, e)
	intro := slot.Pattern(0)

	require.NoError(t, intro.Mute())
	p, ok := fake.Project(0)
	require.True(t, ok)
	assert.True(t, p.Patterns[0].Muted)

	require.NoError(t, intro.Unmute())
	p, _ = fake.Project(0)
	assert.False(t, p.Patterns[0].Muted)
}
