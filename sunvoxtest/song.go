package sunvoxtest

import (
	sunvox "github.com/aspect-build/sunvox-go"
)

func newSong() *song {
	return songFrom(Project{
		BPM:     125,
		TPL:     6,
		Modules: []ModuleSpec{{Type: "Output", Name: "Output"}},
	})
}

func songFrom(p Project) *song {
	s := &song{name: p.Name, bpm: p.BPM, tpl: p.TPL}
	if s.bpm <= 0 {
		s.bpm = 125
	}
	if s.tpl <= 0 {
		s.tpl = 6
	}
	for _, ms := range p.Modules {
		if ms.Type == "" {
			s.modules = append(s.modules, nil)
			continue
		}
		s.modules = append(s.modules, newModule(ms))
	}
	for _, ps := range p.Patterns {
		if ps.Lines <= 0 || ps.Tracks <= 0 {
			s.patterns = append(s.patterns, nil)
			continue
		}
		pat := &pattern{
			name:  ps.Name,
			x:     ps.X,
			y:     ps.Y,
			muted: ps.Muted,
			data:  newCells(ps.Tracks, ps.Lines),
		}
		for _, e := range ps.Events {
			if c := pat.data.cell(e.Track, e.Line); c != nil {
				*c = sunvox.Note{
					Note:   uint8(e.Note),
					Vel:    uint8(e.Vel),
					Module: uint16(e.Module),
					Ctl:    uint16(e.Ctl),
					CtlVal: uint16(e.CtlVal),
				}
			}
		}
		s.patterns = append(s.patterns, pat)
	}
	return s
}

func newModule(ms ModuleSpec) *module {
	m := &module{
		spec:    ms,
		curves:  make(map[int][]float32),
		samples: make(map[int]string),
		params:  make(map[[2]int]int),
	}
	m.spec.Outputs = append([]int(nil), ms.Outputs...)
	m.spec.Controllers = nil
	for _, c := range ms.Controllers {
		m.ctls = append(m.ctls, &controller{c})
	}
	return m
}

func (s *song) project() Project {
	p := Project{Name: s.name, BPM: s.bpm, TPL: s.tpl}
	for _, m := range s.modules {
		if m == nil {
			p.Modules = append(p.Modules, ModuleSpec{})
			continue
		}
		ms := m.spec
		ms.Outputs = append([]int(nil), m.spec.Outputs...)
		for _, c := range m.ctls {
			ms.Controllers = append(ms.Controllers, c.ControllerSpec)
		}
		p.Modules = append(p.Modules, ms)
	}
	for _, pat := range s.patterns {
		if pat == nil {
			p.Patterns = append(p.Patterns, PatternSpec{})
			continue
		}
		ps := PatternSpec{
			Name:   pat.name,
			X:      pat.x,
			Y:      pat.y,
			Tracks: pat.data.tracks,
			Lines:  pat.data.lines,
			Muted:  pat.muted,
		}
		for i, n := range pat.data.notes {
			if n.IsEmpty() {
				continue
			}
			ps.Events = append(ps.Events, EventSpec{
				Track:  i % pat.data.tracks,
				Line:   i / pat.data.tracks,
				Note:   int(n.Note),
				Vel:    int(n.Vel),
				Module: int(n.Module),
				Ctl:    int(n.Ctl),
				CtlVal: int(n.CtlVal),
			})
		}
		p.Patterns = append(p.Patterns, ps)
	}
	return p
}

// lengthLines is the end of the last pattern on the timeline.
func (s *song) lengthLines() int {
	end := 0
	for _, p := range s.patterns {
		if p != nil && p.x+p.data.lines > end {
			end = p.x + p.data.lines
		}
	}
	return end
}

// framesPerLine follows the engine's timing: one tick is 2.5/BPM seconds.
func (s *song) framesPerLine(sampleRate int) uint64 {
	fpl := uint64(s.tpl) * uint64(sampleRate) * 5 / (2 * uint64(s.bpm))
	if fpl == 0 {
		return 1
	}
	return fpl
}

func (s *song) lengthFrames(sampleRate int) uint64 {
	return uint64(s.lengthLines()) * s.framesPerLine(sampleRate)
}

func newCells(tracks, lines int) *cells {
	return &cells{tracks: tracks, lines: lines, notes: make([]sunvox.Note, tracks*lines)}
}

func (c *cells) cell(track, line int) *sunvox.Note {
	if track < 0 || track >= c.tracks || line < 0 || line >= c.lines {
		return nil
	}
	return &c.notes[line*c.tracks+track]
}

// resize keeps the cells that fit the new size.
func (c *cells) resize(tracks, lines int) {
	notes := make([]sunvox.Note, tracks*lines)
	for l := 0; l < min(lines, c.lines); l++ {
		for t := 0; t < min(tracks, c.tracks); t++ {
			notes[l*tracks+t] = c.notes[l*c.tracks+t]
		}
	}
	c.tracks, c.lines, c.notes = tracks, lines, notes
}

func (m *module) flags(s *song, num int) uint32 {
	f := uint32(1) // exists
	switch {
	case generatorTypes[m.spec.Type]:
		f |= 1 << 1
	case m.spec.Type != "Output":
		f |= 1 << 2
	}
	f |= uint32(len(s.inputs(num))&0xFF) << 16
	f |= uint32(len(m.spec.Outputs)&0xFF) << 24
	return f
}

// inputs returns the modules that output into module num.
func (s *song) inputs(num int) []int {
	var in []int
	for i, m := range s.modules {
		if m == nil {
			continue
		}
		for _, o := range m.spec.Outputs {
			if o == num {
				in = append(in, i)
			}
		}
	}
	return in
}

// freeModule returns the first removed module number, or the next one.
func (s *song) freeModule() int {
	for i, m := range s.modules {
		if i > 0 && m == nil {
			return i
		}
	}
	s.modules = append(s.modules, nil)
	return len(s.modules) - 1
}

func (s *song) freePattern() int {
	for i, p := range s.patterns {
		if p == nil {
			return i
		}
	}
	s.patterns = append(s.patterns, nil)
	return len(s.patterns) - 1
}

func (c *controller) scaled() int {
	span := c.Max - c.Min
	if span <= 0 {
		return 0
	}
	return (c.Value - c.Min) * 0x8000 / span
}

func (c *controller) setScaled(v int) {
	v = max(0, min(v, 0x8000))
	c.Value = c.Min + v*(c.Max-c.Min)/0x8000
}
