package sunvox_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sunvox "github.com/aspect-build/sunvox-go"
)

func TestModules(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	mods := slot.Modules()
	require.Len(t, mods, 3)
	assert.Equal(t, 3, slot.NumModules())

	out := mods[0]
	assert.Equal(t, "Output", out.Type())
	assert.False(t, out.Flags().IsGenerator())
	assert.False(t, out.Flags().IsEffect())

	lead := slot.Module(1)
	assert.True(t, lead.Exists())
	assert.Equal(t, "Generator", lead.Type())
	assert.Equal(t, "Lead", lead.Name())
	assert.True(t, lead.Flags().IsGenerator())
	assert.Equal(t, `Module(1, type="Generator", name="Lead")`, lead.String())

	reverb, err := slot.FindModule("Reverb")
	require.NoError(t, err)
	assert.Equal(t, 2, reverb.Num())
	assert.True(t, reverb.Flags().IsEffect())
	assert.Equal(t, 1, reverb.Flags().NumInputs())
	assert.Equal(t, 1, reverb.Flags().NumOutputs())
	assert.Equal(t, []int{1}, reverb.Inputs())
	assert.Equal(t, []int{0}, reverb.Outputs())

	_, err = slot.FindModule("Nope")
	assert.ErrorIs(t, err, sunvox.ErrNotFound)
	assert.False(t, slot.Module(17).Exists())
}

func TestModuleProperties(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	lead := slot.Module(1)

	x, y := lead.Position()
	assert.Equal(t, 256, x)
	assert.Equal(t, 512, y)

	// Coordinates are signed 16-bit values.
	require.NoError(t, lead.SetPosition(-10, -300))
	x, y = lead.Position()
	assert.Equal(t, -10, x)
	assert.Equal(t, -300, y)

	assert.Equal(t, "#ff8030", lead.Color().String())
	require.NoError(t, lead.SetColor(sunvox.RGB(0x12, 0x34, 0x56)))
	r, g, b := lead.Color().RGB()
	assert.Equal(t, []uint8{0x12, 0x34, 0x56}, []uint8{r, g, b})
	assert.Equal(t, sunvox.Color(0x563412), lead.Color())

	require.NoError(t, lead.SetFinetune(-100))
	require.NoError(t, lead.SetRelNote(-12))
	ft, rel := lead.Finetune()
	assert.Equal(t, -100, ft)
	assert.Equal(t, -12, rel)

	require.NoError(t, lead.SetName("Bass"))
	assert.Equal(t, "Bass", lead.Name())
}

func TestModuleGraph(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	var amp *sunvox.Module
	err := slot.WithLock(func() error {
		var err error
		amp, err = slot.NewModule("Amplifier", "Amp")
		if err != nil {
			return err
		}
		lead := slot.Module(1)
		if err := lead.ConnectTo(amp); err != nil {
			return err
		}
		return amp.ConnectTo(slot.Module(0))
	})
	require.NoError(t, err)

	x, y := amp.Position()
	assert.Equal(t, []int{512, 512}, []int{x, y}, "default position")
	assert.Equal(t, []int{1}, amp.Inputs())
	assert.ElementsMatch(t, []int{2, 3}, slot.Module(1).Outputs())

	require.NoError(t, slot.Module(1).DisconnectFrom(amp))
	assert.Empty(t, amp.Inputs())

	require.NoError(t, slot.WithLock(amp.Remove))
	assert.False(t, amp.Exists())
	assert.Equal(t, []int{2}, slot.Module(0).Inputs(), "only the reverb feeds the output")

	assert.True(t, sunvox.IsEngineError(slot.Module(0).Remove()), "output cannot be removed")
}

func TestControllers(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	lead := slot.Module(1)

	require.Equal(t, 6, lead.NumControllers())
	names := make([]string, 0, 6)
	for _, c := range lead.Controllers() {
		names = append(names, c.Name())
	}
	want := []string{"Volume", "Waveform", "Panning", "Attack", "Release", "Polyphony"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("controller names (-want +got):\n%s", diff)
	}

	vol, err := lead.FindController("Volume")
	require.NoError(t, err)
	assert.Equal(t, 128, vol.Value())
	assert.Equal(t, 0x4000, vol.Scaled())
	assert.Equal(t, 0, vol.Min())
	assert.Equal(t, 256, vol.Max())
	assert.False(t, vol.IsEnum())

	require.NoError(t, vol.SetScaled(0x8000))
	assert.Equal(t, 256, vol.Value())
	require.NoError(t, vol.SetValue(1000))
	assert.Equal(t, 256, vol.Value(), "values clamp to the range")

	pan := lead.Controller(2)
	assert.Equal(t, -128, pan.Offset())
	assert.Equal(t, 0, pan.Display())

	wave := lead.Controller(1)
	assert.True(t, wave.IsEnum())
	assert.Equal(t, 1, lead.Controller(3).Group())

	_, err = lead.FindController("Cutoff")
	assert.ErrorIs(t, err, sunvox.ErrNotFound)
	assert.Error(t, lead.Controller(50).SetValue(1))
}

func TestModuleScopeAndCurve(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	lead := slot.Module(1)

	scope := lead.Scope(0, 128)
	require.Len(t, scope, 128)
	assert.Equal(t, int16(0), scope[0], "silent while stopped")
	assert.Nil(t, lead.Scope(0, 0))

	require.NoError(t, slot.Play())
	assert.NotZero(t, lead.Scope(0, 16)[0])

	curve := []float32{0, 0.25, 0.5, 1}
	n, err := lead.WriteCurve(0, curve)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := lead.ReadCurve(0, 8)
	require.NoError(t, err)
	assert.Equal(t, curve, got)

	empty, err := lead.ReadCurve(1, 8)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMissingModule(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	ghost := slot.Module(99)

	tests := []struct {
		name string
		run  func() error
	}{
		{"find controller", func() error {
			_, err := ghost.FindController("Volume")
			return err
		}},
		{"read curve", func() error {
			_, err := ghost.ReadCurve(0, 8)
			return err
		}},
		{"note on", func() error { return ghost.NoteOn(0, 60, 0) }},
		{"controller event", func() error {
			return slot.SendEvent(0, ghost.Controller(0).Event(0x8000))
		}},
		{"set controller", func() error { return ghost.Controller(0).SetValue(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = tt.run() })
			assert.Error(t, err)
		})
	}

	assert.Empty(t, ghost.Controllers())
	_, err := ghost.FindController("Volume")
	assert.ErrorIs(t, err, sunvox.ErrNotFound)
	assert.Zero(t, ghost.Controller(0).Value())
}

func TestReadCurveLength(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)
	lead := slot.Module(1)

	for _, n := range []int{0, -1} {
		var err error
		require.NotPanics(t, func() { _, err = lead.ReadCurve(0, n) })
		assert.Error(t, err, "length %d", n)
	}
}

func TestSamplerAndPlayers(t *testing.T) {
	e, fake := newTestEngine(t, 0)
	slot := openDemo(t, e)

	var sampler, meta, vorbis *sunvox.Module
	require.NoError(t, slot.WithLock(func() error {
		var err error
		if sampler, err = slot.NewModule("Sampler", "Drums"); err != nil {
			return err
		}
		if meta, err = slot.NewModuleAt("MetaModule", "Meta", 100, 100, 0); err != nil {
			return err
		}
		vorbis, err = slot.NewModule("Vorbis player", "Loop")
		return err
	}))

	require.NoError(t, sampler.SamplerLoadFromMemory([]byte("RIFF"), 0))
	assert.Equal(t, "<memory>", fake.Sample(0, sampler.Num(), 0))
	require.NoError(t, sampler.SetSamplerPar(0, 3, 77))
	v, err := sampler.SamplerPar(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 77, v)
	assert.Error(t, sampler.SamplerLoad("/no/such/sample.wav", 0))

	require.NoError(t, meta.MetamoduleLoadFromMemory([]byte("project")))
	assert.Equal(t, "<memory>", fake.Loaded(0, meta.Num()))
	require.NoError(t, vorbis.VplayerLoadFromMemory([]byte("OggS")))
	assert.Error(t, vorbis.VplayerLoad("/no/such/file.ogg"))

	// Loading into a module of the wrong type fails.
	assert.Error(t, slot.Module(1).SamplerLoadFromMemory([]byte("RIFF"), 0))
	assert.Error(t, slot.Module(1).MetamoduleLoadFromMemory([]byte("x")))
}

func TestLoadModule(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	slot := openDemo(t, e)

	mod, err := slot.LoadModuleFromMemory([]byte("type: Reverb\nname: Hall\n"), 10, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hall", mod.Name())
	assert.Equal(t, 4, mod.NumControllers())

	_, err = slot.LoadModuleFromMemory([]byte(""), 0, 0, 0)
	assert.True(t, sunvox.IsEngineError(err))
	_, err = slot.LoadModule("/no/such/file.sunsynth", 0, 0, 0)
	assert.Error(t, err)
}
