package sunvox_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/core"
	"github.com/aspect-build/sunvox-go/sunvoxtest"
)

func newTestEngine(t *testing.T, flags sunvox.InitFlags) (*sunvox.Engine, *sunvoxtest.Fake) {
	t.Helper()
	fake := sunvoxtest.New()
	e, err := sunvox.New(sunvox.Options{Backend: fake, Flags: flags})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e, fake
}

// openDemo opens slot 0 with the demo project loaded.
func openDemo(t *testing.T, e *sunvox.Engine) *sunvox.Slot {
	t.Helper()
	path := sunvoxtest.WriteProject(t, t.TempDir(), "demo.sunvox", sunvoxtest.DemoProject())
	slot, err := e.OpenSlot(0)
	require.NoError(t, err)
	require.NoError(t, slot.Load(path))
	return slot
}

func TestNewAndClose(t *testing.T) {
	fake := sunvoxtest.New()
	e, err := sunvox.New(sunvox.Options{Backend: fake, Config: "buffer=1024"})
	require.NoError(t, err)

	assert.Equal(t, "2.1.2", e.Version().String())
	assert.Equal(t, 44100, e.SampleRate())
	assert.Equal(t, 2, e.Channels())
	assert.True(t, fake.Initialized())
	assert.Contains(t, e.Log(0), "buffer=1024")
	assert.Equal(t, uint32(1000000), e.TicksPerSecond())

	require.NoError(t, e.Close())
	assert.False(t, fake.Initialized())

	// Close is idempotent.
	assert.NoError(t, e.Close())
}

func TestSecondEngineFails(t *testing.T) {
	e, _ := newTestEngine(t, 0)

	_, err := sunvox.New(sunvox.Options{Backend: sunvoxtest.New()})
	assert.ErrorIs(t, err, sunvox.ErrAlreadyInitialized)

	require.NoError(t, e.Close())
	e2, err := sunvox.New(sunvox.Options{Backend: sunvoxtest.New()})
	require.NoError(t, err)
	assert.NoError(t, e2.Close())
}

func TestLoadLibraryError(t *testing.T) {
	fake := sunvoxtest.New()
	fake.SetLoadError(core.ErrLibraryNotFound)

	_, err := sunvox.New(sunvox.Options{Backend: fake})
	assert.ErrorIs(t, err, core.ErrLibraryNotFound)

	// A failed New does not hold the engine.
	e, _ := newTestEngine(t, 0)
	assert.NotNil(t, e)
}

func TestNativeMissingLibrary(t *testing.T) {
	_, err := sunvox.New(sunvox.Options{
		LibraryPath: filepath.Join(t.TempDir(), "missing-sunvox.so"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrLibraryNotFound)
}

func TestEngineOptions(t *testing.T) {
	fake := sunvoxtest.New()
	e, err := sunvox.New(sunvox.Options{
		Backend:    fake,
		SampleRate: 48000,
		Channels:   1,
		Flags:      sunvox.FlagUserAudioCallback | sunvox.FlagAudioInt16,
	})
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 48000, e.SampleRate())
	assert.Equal(t, 1, e.Channels())
	assert.True(t, e.Flags().Has(sunvox.FlagUserAudioCallback))
	assert.Equal(t, "user_audio_callback|audio_int16", e.Flags().String())
	assert.Same(t, fake, e.Backend())
}

func TestAudioCallbackModes(t *testing.T) {
	t.Run("device mode", func(t *testing.T) {
		e, _ := newTestEngine(t, 0)
		_, err := e.AudioCallbackFloat32(make([]float32, 64), 0, 0)
		assert.ErrorIs(t, err, sunvox.ErrCallbackMode)
	})

	t.Run("format mismatch", func(t *testing.T) {
		e, _ := newTestEngine(t, sunvox.FlagUserAudioCallback|sunvox.FlagAudioFloat32)
		_, err := e.AudioCallbackInt16(make([]int16, 64), 0, 0)
		assert.ErrorIs(t, err, sunvox.ErrSampleFormat)
	})

	t.Run("float32", func(t *testing.T) {
		e, _ := newTestEngine(t, sunvox.FlagUserAudioCallback|sunvox.FlagAudioFloat32)
		slot := openDemo(t, e)

		buf := make([]float32, 512)
		sound, err := e.AudioCallbackFloat32(buf, 0, 0)
		require.NoError(t, err)
		assert.False(t, sound, "silent before play")

		require.NoError(t, slot.PlayFromBeginning())
		sound, err = e.AudioCallbackFloat32(buf, 0, 0)
		require.NoError(t, err)
		assert.True(t, sound)
		assert.NotZero(t, buf[0])
		assert.Equal(t, buf[0], buf[1], "channels carry the same signal")
	})

	t.Run("int16", func(t *testing.T) {
		e, _ := newTestEngine(t, sunvox.FlagUserAudioCallback|sunvox.FlagAudioInt16)
		slot := openDemo(t, e)
		require.NoError(t, slot.Play())

		buf := make([]int16, 256)
		sound, err := e.AudioCallbackInt16(buf, 0, 0)
		require.NoError(t, err)
		assert.True(t, sound)
		assert.Equal(t, int16(8191), buf[0])
	})
}

func TestOpenSlot(t *testing.T) {
	e, _ := newTestEngine(t, 0)

	s, err := e.OpenSlot(3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Num())
	assert.Same(t, e, s.Engine())

	_, err = e.OpenSlot(3)
	assert.ErrorIs(t, err, sunvox.ErrSlotInUse)

	_, err = e.OpenSlot(99)
	var engErr *sunvox.Error
	require.True(t, errors.As(err, &engErr))
	assert.Equal(t, "open_slot", engErr.Op)
	assert.Less(t, engErr.Code, 0)

	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())
	assert.NoError(t, s.Close())

	s, err = e.OpenSlot(3)
	require.NoError(t, err)

	require.NoError(t, e.Close())
	assert.False(t, s.IsOpen(), "engine close closes slots")

	_, err = e.OpenSlot(0)
	assert.ErrorIs(t, err, sunvox.ErrNotInitialized)
	assert.ErrorIs(t, e.UpdateInput(), sunvox.ErrNotInitialized)
}

func TestLeakedEngineFinalized(t *testing.T) {
	fake := sunvoxtest.New()
	func() {
		e, err := sunvox.New(sunvox.Options{Backend: fake})
		require.NoError(t, err)
		_, err = e.OpenSlot(0)
		require.NoError(t, err)
	}()

	var next *sunvox.Engine
	require.Eventually(t, func() bool {
		runtime.GC()
		var err error
		next, err = sunvox.New(sunvox.Options{Backend: sunvoxtest.New()})
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "an engine with an open slot is still finalized")
	assert.False(t, fake.Initialized())
	require.NoError(t, next.Close())
}

func TestErrorFormatting(t *testing.T) {
	err := &sunvox.Error{Op: "load", Code: -1}
	assert.Equal(t, "sunvox: load failed (code -1)", err.Error())
	assert.True(t, sunvox.IsEngineError(err))
	assert.False(t, sunvox.IsEngineError(sunvox.ErrNotFound))
}
