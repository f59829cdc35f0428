package sunvoxtest

import (
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

func (f *Fake) NewModule(n int, typ, name string, x, y, z int) int {
	return f.withSlot(n, func(s *slot) int {
		if typ == "" || typ == "Output" {
			return -1
		}
		num := s.song.freeModule()
		s.song.modules[num] = newModule(ModuleSpec{
			Type:        typ,
			Name:        name,
			X:           x,
			Y:           y,
			Controllers: DefaultControllers(typ),
		})
		return num
	})
}

func (f *Fake) RemoveModule(n, mod int) int {
	return f.withSlot(n, func(s *slot) int {
		if mod <= 0 || mod >= len(s.song.modules) || s.song.modules[mod] == nil {
			return -1
		}
		s.song.modules[mod] = nil
		for _, m := range s.song.modules {
			if m != nil {
				m.spec.Outputs = slices.DeleteFunc(m.spec.Outputs, func(o int) bool { return o == mod })
			}
		}
		return 0
	})
}

func (f *Fake) ConnectModule(n, source, destination int) int {
	return f.withSlot(n, func(s *slot) int {
		src, dst := f.module(n, source), f.module(n, destination)
		if src == nil || dst == nil || source == destination {
			return -1
		}
		if !slices.Contains(src.spec.Outputs, destination) {
			src.spec.Outputs = append(src.spec.Outputs, destination)
		}
		return 0
	})
}

func (f *Fake) DisconnectModule(n, source, destination int) int {
	return f.withSlot(n, func(s *slot) int {
		src := f.module(n, source)
		if src == nil || f.module(n, destination) == nil {
			return -1
		}
		src.spec.Outputs = slices.DeleteFunc(src.spec.Outputs, func(o int) bool { return o == destination })
		return 0
	})
}

// LoadModule reads a single module spec as YAML, the fake's stand-in for .sunsynth.
func (f *Fake) LoadModule(n int, fileName string, x, y, z int) int {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return -1
	}
	return f.LoadModuleFromMemory(n, data, x, y, z)
}

func (f *Fake) LoadModuleFromMemory(n int, data []byte, x, y, z int) int {
	var ms ModuleSpec
	if err := yaml.Unmarshal(data, &ms); err != nil || ms.Type == "" {
		return -1
	}
	return f.withSlot(n, func(s *slot) int {
		num := s.song.freeModule()
		ms.X, ms.Y, ms.Outputs = x, y, nil
		if ms.Controllers == nil {
			ms.Controllers = DefaultControllers(ms.Type)
		}
		s.song.modules[num] = newModule(ms)
		return num
	})
}

// typed returns module mod when it has type typ.
func (f *Fake) typed(n, mod int, typ string) *module {
	m := f.module(n, mod)
	if m == nil || m.spec.Type != typ {
		return nil
	}
	return m
}

func (f *Fake) SamplerLoad(n, mod int, fileName string, sampleSlot int) int {
	if _, err := os.Stat(fileName); err != nil {
		return -1
	}
	return f.withSlot(n, func(*slot) int {
		m := f.typed(n, mod, "Sampler")
		if m == nil {
			return -1
		}
		m.samples[sampleSlot] = fileName
		return 0
	})
}

func (f *Fake) SamplerLoadFromMemory(n, mod int, data []byte, sampleSlot int) int {
	return f.withSlot(n, func(*slot) int {
		m := f.typed(n, mod, "Sampler")
		if m == nil || len(data) == 0 {
			return -1
		}
		m.samples[sampleSlot] = "<memory>"
		return 0
	})
}

func (f *Fake) SamplerPar(n, mod, sampleSlot, par, parVal, set int) int {
	return f.withSlot(n, func(*slot) int {
		m := f.typed(n, mod, "Sampler")
		if m == nil {
			return -1
		}
		key := [2]int{sampleSlot, par}
		if set != 0 {
			m.params[key] = parVal
			return 0
		}
		return m.params[key]
	})
}

func (f *Fake) loadInto(n, mod int, typ, from string) int {
	return f.withSlot(n, func(*slot) int {
		m := f.typed(n, mod, typ)
		if m == nil {
			return -1
		}
		m.loaded = from
		return 0
	})
}

func (f *Fake) MetamoduleLoad(n, mod int, fileName string) int {
	if _, err := os.Stat(fileName); err != nil {
		return -1
	}
	return f.loadInto(n, mod, "MetaModule", fileName)
}

func (f *Fake) MetamoduleLoadFromMemory(n, mod int, data []byte) int {
	if len(data) == 0 {
		return -1
	}
	return f.loadInto(n, mod, "MetaModule", "<memory>")
}

func (f *Fake) VplayerLoad(n, mod int, fileName string) int {
	if _, err := os.Stat(fileName); err != nil {
		return -1
	}
	return f.loadInto(n, mod, "Vorbis player", fileName)
}

func (f *Fake) VplayerLoadFromMemory(n, mod int, data []byte) int {
	if len(data) == 0 {
		return -1
	}
	return f.loadInto(n, mod, "Vorbis player", "<memory>")
}

// Loaded returns what was last loaded into a MetaModule or Vorbis player.
func (f *Fake) Loaded(n, mod int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.module(n, mod); m != nil {
		return m.loaded
	}
	return ""
}

// Sample returns the file loaded into a Sampler sample slot.
func (f *Fake) Sample(n, mod, sampleSlot int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.module(n, mod); m != nil {
		return m.samples[sampleSlot]
	}
	return ""
}

func (f *Fake) GetNumberOfModules(n int) int {
	return f.withSlot(n, func(s *slot) int { return len(s.song.modules) })
}

func (f *Fake) FindModule(n int, name string) int {
	return f.withSlot(n, func(s *slot) int {
		for i, m := range s.song.modules {
			if m != nil && m.spec.Name == name {
				return i
			}
		}
		return -1
	})
}

func (f *Fake) GetModuleFlags(n, mod int) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.module(n, mod)
	if m == nil {
		return 0
	}
	return m.flags(f.slot(n).song, mod)
}

func (f *Fake) GetModuleInputs(n, mod int) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.module(n, mod) == nil {
		return nil
	}
	return f.slot(n).song.inputs(mod)
}

func (f *Fake) GetModuleOutputs(n, mod int) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.module(n, mod)
	if m == nil {
		return nil
	}
	return append([]int(nil), m.spec.Outputs...)
}

// moduleString reads a string property of module mod.
func (f *Fake) moduleString(n, mod int, get func(m *module) string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.module(n, mod); m != nil {
		return get(m)
	}
	return ""
}

// withModule runs fn on module mod, returning -1 when it does not exist.
func (f *Fake) withModule(n, mod int, fn func(m *module) int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.module(n, mod)
	if m == nil {
		return -1
	}
	return fn(m)
}

func (f *Fake) GetModuleType(n, mod int) string {
	return f.moduleString(n, mod, func(m *module) string { return m.spec.Type })
}

func (f *Fake) GetModuleName(n, mod int) string {
	return f.moduleString(n, mod, func(m *module) string { return m.spec.Name })
}

func (f *Fake) SetModuleName(n, mod int, name string) int {
	return f.withModule(n, mod, func(m *module) int { m.spec.Name = name; return 0 })
}

func (f *Fake) GetModuleXY(n, mod int) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.module(n, mod)
	if m == nil {
		return 0
	}
	return uint32(uint16(m.spec.X)) | uint32(uint16(m.spec.Y))<<16
}

func (f *Fake) SetModuleXY(n, mod, x, y int) int {
	return f.withModule(n, mod, func(m *module) int { m.spec.X, m.spec.Y = x, y; return 0 })
}

func (f *Fake) GetModuleColor(n, mod int) int {
	return f.withModule(n, mod, func(m *module) int { return m.spec.Color })
}

func (f *Fake) SetModuleColor(n, mod, color int) int {
	return f.withModule(n, mod, func(m *module) int { m.spec.Color = color & 0xFFFFFF; return 0 })
}

func (f *Fake) GetModuleFinetune(n, mod int) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.module(n, mod)
	if m == nil {
		return 0
	}
	return uint32(uint16(m.spec.Finetune)) | uint32(uint16(m.spec.Relnote))<<16
}

func (f *Fake) SetModuleFinetune(n, mod, finetune int) int {
	return f.withModule(n, mod, func(m *module) int { m.spec.Finetune = finetune; return 0 })
}

func (f *Fake) SetModuleRelnote(n, mod, relnote int) int {
	return f.withModule(n, mod, func(m *module) int { m.spec.Relnote = relnote; return 0 })
}

// GetModuleScope2 fills dest with the current output waveform of the slot.
func (f *Fake) GetModuleScope2(n, mod, channel int, dest []int16) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if f.module(n, mod) == nil || channel < 0 || channel >= f.channels {
		return 0
	}
	var amp int16
	if s.playing && !s.paused {
		amp = int16(s.volume * 32)
	}
	for i := range dest {
		if (i/64)%2 == 0 {
			dest[i] = amp
		} else {
			dest[i] = -amp
		}
	}
	return uint32(len(dest))
}

func (f *Fake) ModuleCurve(n, mod, curve int, data []float32, w int) int {
	return f.withModule(n, mod, func(m *module) int {
		if curve < 0 {
			return -1
		}
		if w != 0 {
			m.curves[curve] = append([]float32(nil), data...)
			return len(data)
		}
		return copy(data, m.curves[curve])
	})
}

// Curve returns the points written to a module curve.
func (f *Fake) Curve(n, mod, curve int) []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.module(n, mod); m != nil {
		return append([]float32(nil), m.curves[curve]...)
	}
	return nil
}

func (f *Fake) GetNumberOfModuleCtls(n, mod int) int {
	return f.withModule(n, mod, func(m *module) int { return len(m.ctls) })
}

func (f *Fake) GetModuleCtlName(n, mod, ctl int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c := f.ctl(n, mod, ctl); c != nil {
		return c.Name
	}
	return ""
}

// withCtl runs fn on a controller. Missing controllers read as 0 like the engine.
func (f *Fake) withCtl(n, mod, ctl int, fn func(c *controller) int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.ctl(n, mod, ctl)
	if c == nil {
		return 0
	}
	return fn(c)
}

func (f *Fake) GetModuleCtlValue(n, mod, ctl, scaled int) int {
	return f.withCtl(n, mod, ctl, func(c *controller) int {
		switch scaled {
		case 1:
			return c.scaled()
		case 2:
			return c.Value + c.Offset
		}
		return c.Value
	})
}

func (f *Fake) SetModuleCtlValue(n, mod, ctl, val, scaled int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.ctl(n, mod, ctl)
	if c == nil {
		return -1
	}
	switch scaled {
	case 1:
		c.setScaled(val)
	case 2:
		c.Value = max(c.Min, min(val-c.Offset, c.Max))
	default:
		c.Value = max(c.Min, min(val, c.Max))
	}
	return 0
}

func (f *Fake) GetModuleCtlMin(n, mod, ctl, scaled int) int {
	return f.withCtl(n, mod, ctl, func(c *controller) int {
		switch scaled {
		case 1:
			return 0
		case 2:
			return c.Min + c.Offset
		}
		return c.Min
	})
}

func (f *Fake) GetModuleCtlMax(n, mod, ctl, scaled int) int {
	return f.withCtl(n, mod, ctl, func(c *controller) int {
		switch scaled {
		case 1:
			return 0x8000
		case 2:
			return c.Max + c.Offset
		}
		return c.Max
	})
}

func (f *Fake) GetModuleCtlOffset(n, mod, ctl int) int {
	return f.withCtl(n, mod, ctl, func(c *controller) int { return c.Offset })
}

func (f *Fake) GetModuleCtlType(n, mod, ctl int) int {
	return f.withCtl(n, mod, ctl, func(c *controller) int { return c.Type })
}

func (f *Fake) GetModuleCtlGroup(n, mod, ctl int) int {
	return f.withCtl(n, mod, ctl, func(c *controller) int { return c.Group })
}
