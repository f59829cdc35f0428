package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/sunvoxtest"
)

type sent struct {
	track int
	note  sunvox.Note
}

type recorder struct {
	events []sent
	err    error
}

func (r *recorder) SendEvent(track int, n sunvox.Note) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, sent{track, n})
	return nil
}

func TestConversions(t *testing.T) {
	n, ok := Note(60, 0)
	assert.True(t, ok)
	assert.Equal(t, uint8(61), n)

	n, ok = Note(60, -12)
	assert.True(t, ok)
	assert.Equal(t, uint8(49), n)

	_, ok = Note(127, 1)
	assert.False(t, ok)
	_, ok = Note(0, -1)
	assert.False(t, ok)

	assert.Equal(t, uint8(129), Velocity(127))
	assert.Equal(t, uint8(2), Velocity(1))
	assert.Equal(t, uint8(65), Velocity(64))
}

func TestNoteOnOff(t *testing.T) {
	rec := &recorder{}
	b := NewBridge(rec, Mapping{Module: 1, Channel: -1}, nil)

	require.NoError(t, b.Handle(gomidi.NoteOn(0, 60, 127)))
	require.NoError(t, b.Handle(gomidi.NoteOn(3, 64, 100)))
	assert.Equal(t, 2, b.Active())
	require.NoError(t, b.Handle(gomidi.NoteOff(0, 60)))
	// Note on with zero velocity releases too.
	require.NoError(t, b.Handle(gomidi.NoteOn(3, 64, 0)))
	assert.Zero(t, b.Active())

	assert.Equal(t, []sent{
		{0, sunvox.Note{Note: 61, Vel: 129, Module: 2}},
		{1, sunvox.Note{Note: 65, Vel: 101, Module: 2}},
		{0, sunvox.Note{Note: sunvox.NoteOff, Module: 2}},
		{1, sunvox.Note{Note: sunvox.NoteOff, Module: 2}},
	}, rec.events)

	// Releasing an unknown key sends nothing.
	require.NoError(t, b.Handle(gomidi.NoteOff(0, 10)))
	assert.Len(t, rec.events, 4)
}

func TestChannelFilter(t *testing.T) {
	rec := &recorder{}
	b := NewBridge(rec, Mapping{Channel: 2}, nil)

	require.NoError(t, b.Handle(gomidi.NoteOn(0, 60, 100)))
	require.NoError(t, b.Handle(gomidi.ControlChange(1, 7, 100)))
	assert.Empty(t, rec.events)

	require.NoError(t, b.Handle(gomidi.NoteOn(2, 60, 100)))
	assert.Len(t, rec.events, 1)
}

func TestVoiceStealing(t *testing.T) {
	rec := &recorder{}
	b := NewBridge(rec, Mapping{Channel: -1}, nil)

	for key := uint8(40); key < 40+Tracks; key++ {
		require.NoError(t, b.Handle(gomidi.NoteOn(0, key, 100)))
	}
	assert.Equal(t, Tracks, b.Active())
	for i, e := range rec.events {
		assert.Equal(t, i, e.track)
	}

	// Track 0 holds the oldest key.
	require.NoError(t, b.Handle(gomidi.NoteOn(0, 90, 100)))
	assert.Equal(t, 0, rec.events[len(rec.events)-1].track)

	// Retriggering a held key reuses its track.
	require.NoError(t, b.Handle(gomidi.NoteOn(0, 45, 100)))
	assert.Equal(t, 5, rec.events[len(rec.events)-1].track)

	rec.events = nil
	require.NoError(t, b.Release())
	assert.Len(t, rec.events, Tracks)
	assert.Zero(t, b.Active())
}

func TestControlChange(t *testing.T) {
	rec := &recorder{}
	b := NewBridge(rec, Mapping{Module: 1, Channel: -1}, nil)

	require.NoError(t, b.Handle(gomidi.ControlChange(0, 2, 127)))
	assert.Equal(t, sunvox.Note{Module: 2, Ctl: 0x0300, CtlVal: 0x8000}, rec.events[0].note)

	rec.events = nil
	b = NewBridge(rec, Mapping{Module: 1, Channel: -1, Controllers: map[uint8]int{1: 0}}, nil)
	require.NoError(t, b.Handle(gomidi.ControlChange(0, 1, 0)))
	require.NoError(t, b.Handle(gomidi.ControlChange(0, 7, 64)))
	require.Len(t, rec.events, 1, "unmapped CC ignored")
	assert.Equal(t, sunvox.Note{Module: 2, Ctl: 0x0100}, rec.events[0].note)
}

func TestSinkError(t *testing.T) {
	boom := errors.New("boom")
	b := NewBridge(&recorder{err: boom}, Mapping{Channel: -1}, nil)
	assert.ErrorIs(t, b.Handle(gomidi.NoteOn(0, 60, 100)), boom)
}

func TestBridgeDrivesSlot(t *testing.T) {
	fake := sunvoxtest.New()
	e, err := sunvox.New(sunvox.Options{Backend: fake})
	require.NoError(t, err)
	defer e.Close()

	slot, err := e.OpenSlot(0)
	require.NoError(t, err)
	data, err := sunvoxtest.DemoProject().Marshal()
	require.NoError(t, err)
	require.NoError(t, slot.LoadFromMemory(data))

	b := NewBridge(slot, Mapping{Module: 1, Channel: -1, Transpose: 12}, nil)
	require.NoError(t, b.Handle(gomidi.NoteOn(0, 48, 127)))
	require.NoError(t, b.Handle(gomidi.NoteOff(0, 48)))

	events := fake.Events(0)
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].Track)
	assert.Equal(t, sunvox.Note{Note: 61, Vel: 129, Module: 2}, events[0].Note)
	assert.Equal(t, uint8(sunvox.NoteOff), events[1].Note.Note)
}
