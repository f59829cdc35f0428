package sunvox

import (
	"fmt"
)

// Module is a synthesizer or effect node in a slot's project.
type Module struct {
	slot *Slot
	num  int
}

// Color is a module color packed as 0xBBGGRR.
type Color int

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color(int(b)<<16 | int(g)<<8 | int(r))
}

// RGB returns the red, green and blue components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func (m *Module) Num() int    { return m.num }
func (m *Module) Slot() *Slot { return m.slot }

func (m *Module) b() Backend { return m.slot.b() }

func (m *Module) call(op string, fn func(b Backend, slot, mod int) int) error {
	return m.slot.call(op, func(b Backend, slot int) int { return fn(b, slot, m.num) })
}

func (m *Module) String() string {
	return fmt.Sprintf("Module(%d, type=%q, name=%q)", m.num, m.Type(), m.Name())
}

// Flags returns the module flag bits.
func (m *Module) Flags() ModuleFlags {
	return ModuleFlags(m.b().GetModuleFlags(m.slot.num, m.num))
}

func (m *Module) Exists() bool { return m.Flags().Exists() }

// Type returns the module type name, e.g. "Generator".
func (m *Module) Type() string { return m.b().GetModuleType(m.slot.num, m.num) }

func (m *Module) Name() string { return m.b().GetModuleName(m.slot.num, m.num) }

func (m *Module) SetName(name string) error {
	return m.call("set_module_name", func(b Backend, slot, mod int) int {
		return b.SetModuleName(slot, mod, name)
	})
}

// Position returns the module's coordinates on the module view.
func (m *Module) Position() (x, y int) {
	xy := m.b().GetModuleXY(m.slot.num, m.num)
	return int(int16(xy & 0xFFFF)), int(int16(xy >> 16))
}

func (m *Module) SetPosition(x, y int) error {
	return m.call("set_module_xy", func(b Backend, slot, mod int) int {
		return b.SetModuleXY(slot, mod, x, y)
	})
}

func (m *Module) Color() Color { return Color(m.b().GetModuleColor(m.slot.num, m.num)) }

func (m *Module) SetColor(c Color) error {
	return m.call("set_module_color", func(b Backend, slot, mod int) int {
		return b.SetModuleColor(slot, mod, int(c))
	})
}

// Finetune returns the finetune (-256..256) and relative note.
func (m *Module) Finetune() (finetune, relnote int) {
	ft := m.b().GetModuleFinetune(m.slot.num, m.num)
	return int(int16(ft & 0xFFFF)), int(int16(ft >> 16))
}

func (m *Module) SetFinetune(finetune int) error {
	return m.call("set_module_finetune", func(b Backend, slot, mod int) int {
		return b.SetModuleFinetune(slot, mod, finetune)
	})
}

func (m *Module) SetRelNote(relnote int) error {
	return m.call("set_module_relnote", func(b Backend, slot, mod int) int {
		return b.SetModuleRelnote(slot, mod, relnote)
	})
}

// Inputs returns the numbers of the modules linked into this one.
func (m *Module) Inputs() []int {
	return dropEmpty(m.b().GetModuleInputs(m.slot.num, m.num))
}

// Outputs returns the numbers of the modules this one feeds.
func (m *Module) Outputs() []int {
	return dropEmpty(m.b().GetModuleOutputs(m.slot.num, m.num))
}

func dropEmpty(links []int) []int {
	out := make([]int, 0, len(links))
	for _, l := range links {
		if l >= 0 {
			out = append(out, l)
		}
	}
	return out
}

// ConnectTo links this module's output to dst's input. The project should be locked.
func (m *Module) ConnectTo(dst *Module) error {
	return m.call("connect_module", func(b Backend, slot, mod int) int {
		return b.ConnectModule(slot, mod, dst.num)
	})
}

func (m *Module) DisconnectFrom(dst *Module) error {
	return m.call("disconnect_module", func(b Backend, slot, mod int) int {
		return b.DisconnectModule(slot, mod, dst.num)
	})
}

// Remove deletes the module. The project should be locked.
func (m *Module) Remove() error {
	return m.call("remove_module", Backend.RemoveModule)
}

func (m *Module) NumControllers() int {
	return m.b().GetNumberOfModuleCtls(m.slot.num, m.num)
}

// Controller returns a handle for controller n.
func (m *Module) Controller(n int) *Controller {
	return &Controller{module: m, num: n}
}

func (m *Module) Controllers() []*Controller {
	n := m.NumControllers()
	if n <= 0 {
		return nil
	}
	ctls := make([]*Controller, n)
	for i := range ctls {
		ctls[i] = m.Controller(i)
	}
	return ctls
}

// FindController returns the first controller named name.
func (m *Module) FindController(name string) (*Controller, error) {
	for _, c := range m.Controllers() {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: controller %q in module %d", ErrNotFound, name, m.num)
}

// Scope returns up to n of the most recent output samples of a channel.
func (m *Module) Scope(channel, n int) []int16 {
	if n <= 0 {
		return nil
	}
	buf := make([]int16, n)
	got := m.b().GetModuleScope2(m.slot.num, m.num, channel, buf)
	if int(got) < n {
		buf = buf[:got]
	}
	return buf
}

// ReadCurve reads up to n points of a module curve (e.g. MultiSynth velocity table).
func (m *Module) ReadCurve(curve, n int) ([]float32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sunvox: curve length %d", n)
	}
	data := make([]float32, n)
	var got int
	if err := m.call("module_curve", func(b Backend, slot, mod int) int {
		got = b.ModuleCurve(slot, mod, curve, data, 0)
		return got
	}); err != nil {
		return nil, err
	}
	if got < n {
		data = data[:got]
	}
	return data, nil
}

// WriteCurve writes data into a module curve and returns the number of points written.
func (m *Module) WriteCurve(curve int, data []float32) (int, error) {
	var got int
	err := m.call("module_curve", func(b Backend, slot, mod int) int {
		got = b.ModuleCurve(slot, mod, curve, data, 1)
		return got
	})
	return got, err
}

// NoteOn plays note (1..127) with velocity vel (1..129, 0 = default) on a track.
func (m *Module) NoteOn(track, note, vel int) error {
	return m.slot.SendEvent(track, Note{Note: uint8(note), Vel: uint8(vel), Module: uint16(m.num + 1)})
}

// NoteOff releases the note playing on a track.
func (m *Module) NoteOff(track int) error {
	return m.slot.SendEvent(track, Note{Note: NoteOff, Module: uint16(m.num + 1)})
}

// SamplerLoad loads a sample into a Sampler module. sampleSlot -1 replaces
// the whole instrument.
func (m *Module) SamplerLoad(path string, sampleSlot int) error {
	return m.call("sampler_load", func(b Backend, slot, mod int) int {
		return b.SamplerLoad(slot, mod, path, sampleSlot)
	})
}

func (m *Module) SamplerLoadFromMemory(data []byte, sampleSlot int) error {
	return m.call("sampler_load_from_memory", func(b Backend, slot, mod int) int {
		return b.SamplerLoadFromMemory(slot, mod, data, sampleSlot)
	})
}

// SamplerPar reads a sample parameter.
func (m *Module) SamplerPar(sampleSlot, par int) (int, error) {
	var v int
	err := m.call("sampler_par", func(b Backend, slot, mod int) int {
		v = b.SamplerPar(slot, mod, sampleSlot, par, 0, 0)
		return v
	})
	return v, err
}

// SetSamplerPar writes a sample parameter.
func (m *Module) SetSamplerPar(sampleSlot, par, val int) error {
	return m.call("sampler_par", func(b Backend, slot, mod int) int {
		return b.SamplerPar(slot, mod, sampleSlot, par, val, 1)
	})
}

// MetamoduleLoad loads a project into a MetaModule.
func (m *Module) MetamoduleLoad(path string) error {
	return m.call("metamodule_load", func(b Backend, slot, mod int) int {
		return b.MetamoduleLoad(slot, mod, path)
	})
}

func (m *Module) MetamoduleLoadFromMemory(data []byte) error {
	return m.call("metamodule_load_from_memory", func(b Backend, slot, mod int) int {
		return b.MetamoduleLoadFromMemory(slot, mod, data)
	})
}

// VplayerLoad loads an OGG Vorbis file into a Vorbis Player module.
func (m *Module) VplayerLoad(path string) error {
	return m.call("vplayer_load", func(b Backend, slot, mod int) int {
		return b.VplayerLoad(slot, mod, path)
	})
}

func (m *Module) VplayerLoadFromMemory(data []byte) error {
	return m.call("vplayer_load_from_memory", func(b Backend, slot, mod int) int {
		return b.VplayerLoadFromMemory(slot, mod, data)
	})
}
