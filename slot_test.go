package sunvox_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/sunvoxtest"
)

func TestSlotSongInfo(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	assert.Equal(t, "Demo Song", slot.Name())
	assert.Equal(t, 125, slot.BPM())
	assert.Equal(t, 6, slot.TPL())
	assert.Equal(t, uint32(96), slot.LengthLines())
	// 6 ticks * 44100 * 2.5 / 125 = 5292 frames per line.
	assert.Equal(t, uint32(96*5292), slot.LengthFrames())
	assert.InDelta(t, 11.52, slot.Duration().Seconds(), 0.001)

	require.NoError(t, slot.SetName("Renamed"))
	assert.Equal(t, "Renamed", slot.Name())
}

func TestSlotLoadMissing(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot, err := e.OpenSlot(0)
	require.NoError(t, err)

	err = slot.Load(filepath.Join(t.TempDir(), "missing.sunvox"))
	require.Error(t, err)
	assert.True(t, sunvox.IsEngineError(err))

	var engErr *sunvox.Error
	require.True(t, errors.As(err, &engErr))
	assert.Equal(t, "load", engErr.Op)
}

func TestSlotPlayback(t *testing.T) {
	e, fake := newTestEngine(t, 0)
	slot := openDemo(t, e)

	assert.False(t, slot.IsPlaying())
	require.NoError(t, slot.PlayFromBeginning())
	assert.True(t, slot.IsPlaying())

	fake.Advance(5292 * 10)
	assert.Equal(t, 10, slot.CurrentLine())
	assert.InDelta(t, 10.0, slot.CurrentLineFraction(), 0.001)
	assert.Greater(t, slot.SignalLevel(0), 0)

	require.NoError(t, slot.Pause())
	fake.Advance(5292)
	assert.Equal(t, 10, slot.CurrentLine(), "paused slots do not advance")
	require.NoError(t, slot.Resume())

	// First stop keeps the position, second resets it.
	require.NoError(t, slot.Stop())
	assert.False(t, slot.IsPlaying())
	assert.Equal(t, 10, slot.CurrentLine())
	require.NoError(t, slot.Stop())
	assert.Equal(t, 0, slot.CurrentLine())

	require.NoError(t, slot.Rewind(32))
	assert.Equal(t, 32, slot.CurrentLine())
	require.NoError(t, slot.Play())
	assert.True(t, slot.IsPlaying())
}

func TestSlotAutostop(t *testing.T) {
	e, fake := newTestEngine(t, 0)
	slot := openDemo(t, e)

	assert.False(t, slot.Autostop())
	require.NoError(t, slot.PlayFromBeginning())
	fake.Advance(int(slot.LengthFrames()) + 100)
	assert.True(t, slot.IsPlaying(), "without autostop the song loops")

	require.NoError(t, slot.SetAutostop(true))
	assert.True(t, slot.Autostop())
	fake.Advance(int(slot.LengthFrames()))
	assert.False(t, slot.IsPlaying())
}

func TestSlotVolume(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	assert.Equal(t, 256, slot.Volume())
	require.NoError(t, slot.SetVolume(128))
	assert.Equal(t, 128, slot.Volume())
	require.NoError(t, slot.SetVolume(-5))
	assert.Equal(t, 0, slot.Volume())
}

func TestSlotSaveRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	require.NoError(t, slot.SetName("Copy"))

	data, err := slot.SaveToMemory()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	other, err := e.OpenSlot(1)
	require.NoError(t, err)
	require.NoError(t, other.LoadFromMemory(data))
	assert.Equal(t, "Copy", other.Name())
	assert.Equal(t, slot.LengthLines(), other.LengthLines())
	assert.Len(t, other.Modules(), 3)

	path := filepath.Join(t.TempDir(), "saved.sunvox")
	require.NoError(t, slot.Save(path))
	require.NoError(t, other.Load(path))
	assert.Equal(t, "Copy", other.Name())

	assert.Error(t, other.LoadFromMemory([]byte("not a project: [")))
}

func TestWithLock(t *testing.T) {
	e, fake := newTestEngine(t, 0)
	slot := openDemo(t, e)

	err := slot.WithLock(func() error {
		assert.Equal(t, 1, fake.LockDepth(0))
		_, err := slot.NewModule("Generator", "Pad")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 0, fake.LockDepth(0))

	boom := errors.New("boom")
	err = slot.WithLock(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, fake.LockDepth(0))

	assert.Panics(t, func() {
		_ = slot.WithLock(func() error { panic("edit failed") })
	})
	assert.Equal(t, 0, fake.LockDepth(0))

	// Unlock without Lock is an engine error.
	assert.True(t, sunvox.IsEngineError(slot.Unlock()))
}

func TestSendEvent(t *testing.T) {
	e, fake := newTestEngine(t, 0)
	slot := openDemo(t, e)
	lead := slot.Module(1)

	require.NoError(t, lead.NoteOn(0, 60, 100))
	require.NoError(t, slot.SetEventTime(1234))
	require.NoError(t, lead.NoteOff(0))
	require.NoError(t, slot.ResetEventTime())
	require.NoError(t, slot.SendEvent(1, lead.Controller(0).Event(0x4000)))

	events := fake.Events(0)
	require.Len(t, events, 3)
	assert.Equal(t, sunvoxtest.Event{Track: 0, Note: sunvox.Note{Note: 60, Vel: 100, Module: 2}}, events[0])
	assert.Equal(t, sunvoxtest.Event{Track: 0, Note: sunvox.Note{Note: sunvox.NoteOff, Module: 2}, Time: 1234}, events[1])
	assert.Equal(t, sunvox.Note{Module: 2, Ctl: 0x0100, CtlVal: 0x4000}, events[2].Note)
	assert.Zero(t, events[2].Time)

	assert.Error(t, slot.SendEvent(16, sunvox.Note{Note: 60}), "track out of range")
	assert.Error(t, slot.Module(40).NoteOn(0, 60, 0), "unknown module")
}

func TestTimeMap(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	frames, err := slot.TimeMap(2, 3, sunvox.TimeMapFrameCount)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2 * 5292, 3 * 5292, 4 * 5292}, frames)

	speeds, err := slot.Speeds(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []sunvox.LineSpeed{{BPM: 125, TPL: 6}, {BPM: 125, TPL: 6}}, speeds)

	none, err := slot.TimeMap(0, 0, sunvox.TimeMapSpeed)
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestClosedSlot(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	require.NoError(t, slot.Close())

	assert.ErrorIs(t, slot.Play(), sunvox.ErrSlotClosed)
	assert.ErrorIs(t, slot.Load("x"), sunvox.ErrSlotClosed)
	assert.ErrorIs(t, slot.WithLock(func() error { return nil }), sunvox.ErrSlotClosed)
	_, err := slot.SaveToMemory()
	assert.ErrorIs(t, err, sunvox.ErrSlotClosed)
	_, err = slot.FindModule("Lead")
	assert.ErrorIs(t, err, sunvox.ErrSlotClosed)
	_, err = slot.NewPattern(sunvox.PatternSpec{})
	assert.ErrorIs(t, err, sunvox.ErrSlotClosed)

	// Counts read as -1 once the slot is closed.
	assert.Empty(t, slot.Modules())
	assert.Empty(t, slot.Patterns())

	lead := slot.Module(1)
	assert.Empty(t, lead.Controllers())
	_, err = lead.FindController("Volume")
	assert.ErrorIs(t, err, sunvox.ErrNotFound)
	_, err = lead.ReadCurve(0, 16)
	assert.ErrorIs(t, err, sunvox.ErrSlotClosed)
	assert.ErrorIs(t, lead.NoteOn(0, 60, 100), sunvox.ErrSlotClosed)
	assert.ErrorIs(t, slot.SendEvent(0, lead.Controller(0).Event(0x4000)), sunvox.ErrSlotClosed)
}
