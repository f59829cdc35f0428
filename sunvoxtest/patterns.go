package sunvoxtest

import (
	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/core"
)

func (f *Fake) NewPattern(n, clone, x, y, tracks, lines, iconSeed int, name string) int {
	return f.withSlot(n, func(s *slot) int {
		pat := &pattern{name: name, x: x, y: y}
		if clone >= 0 {
			src := f.pattern(n, clone)
			if src == nil {
				return -1
			}
			pat.data = src.data
		} else {
			if tracks <= 0 || tracks > 64 || lines <= 0 {
				return -1
			}
			pat.data = newCells(tracks, lines)
		}
		num := s.song.freePattern()
		s.song.patterns[num] = pat
		return num
	})
}

func (f *Fake) RemovePattern(n, pat int) int {
	return f.withSlot(n, func(s *slot) int {
		if f.pattern(n, pat) == nil {
			return -1
		}
		s.song.patterns[pat] = nil
		return 0
	})
}

func (f *Fake) GetNumberOfPatterns(n int) int {
	return f.withSlot(n, func(s *slot) int { return len(s.song.patterns) })
}

func (f *Fake) FindPattern(n int, name string) int {
	return f.withSlot(n, func(s *slot) int {
		for i, p := range s.song.patterns {
			if p != nil && p.name == name {
				return i
			}
		}
		return -1
	})
}

// withPattern runs fn on pattern pat, returning -1 when it does not exist.
func (f *Fake) withPattern(n, pat int, fn func(p *pattern) int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.pattern(n, pat)
	if p == nil {
		return -1
	}
	return fn(p)
}

func (f *Fake) GetPatternX(n, pat int) int {
	return f.withPattern(n, pat, func(p *pattern) int { return p.x })
}

func (f *Fake) GetPatternY(n, pat int) int {
	return f.withPattern(n, pat, func(p *pattern) int { return p.y })
}

func (f *Fake) SetPatternXY(n, pat, x, y int) int {
	return f.withPattern(n, pat, func(p *pattern) int { p.x, p.y = x, y; return 0 })
}

func (f *Fake) GetPatternTracks(n, pat int) int {
	return f.withPattern(n, pat, func(p *pattern) int { return p.data.tracks })
}

// GetPatternLines returns 0 for removed patterns, which is how callers detect them.
func (f *Fake) GetPatternLines(n, pat int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.pattern(n, pat); p != nil {
		return p.data.lines
	}
	return 0
}

func (f *Fake) SetPatternSize(n, pat, tracks, lines int) int {
	return f.withPattern(n, pat, func(p *pattern) int {
		if tracks < 0 {
			tracks = p.data.tracks
		}
		if lines < 0 {
			lines = p.data.lines
		}
		if tracks == 0 || tracks > 64 || lines == 0 {
			return -1
		}
		p.data.resize(tracks, lines)
		return 0
	})
}

func (f *Fake) GetPatternName(n, pat int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.pattern(n, pat); p != nil {
		return p.name
	}
	return ""
}

func (f *Fake) SetPatternName(n, pat int, name string) int {
	return f.withPattern(n, pat, func(p *pattern) int { p.name = name; return 0 })
}

// GetPatternData returns the live cells of a pattern, like the engine does.
func (f *Fake) GetPatternData(n, pat int) []sunvox.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.pattern(n, pat); p != nil {
		return p.data.notes
	}
	return nil
}

func (f *Fake) SetPatternEvent(n, pat, track, line, nn, vv, mm, ccee, xxyy int) int {
	return f.withPattern(n, pat, func(p *pattern) int {
		c := p.data.cell(track, line)
		if c == nil {
			return -1
		}
		if nn >= 0 {
			c.Note = uint8(nn)
		}
		if vv >= 0 {
			c.Vel = uint8(vv)
		}
		if mm >= 0 {
			c.Module = uint16(mm)
		}
		if ccee >= 0 {
			c.Ctl = uint16(ccee)
		}
		if xxyy >= 0 {
			c.CtlVal = uint16(xxyy)
		}
		return 0
	})
}

func (f *Fake) GetPatternEvent(n, pat, track, line, column int) int {
	return f.withPattern(n, pat, func(p *pattern) int {
		c := p.data.cell(track, line)
		if c == nil {
			return -1
		}
		switch column {
		case core.ColumnNote:
			return int(c.Note)
		case core.ColumnVel:
			return int(c.Vel)
		case core.ColumnModule:
			return int(c.Module)
		case core.ColumnCtl:
			return int(c.Ctl)
		case core.ColumnCtlVal:
			return int(c.CtlVal)
		}
		return -1
	})
}

// PatternMute returns the previous mute state.
func (f *Fake) PatternMute(n, pat, mute int) int {
	return f.withPattern(n, pat, func(p *pattern) int {
		prev := 0
		if p.muted {
			prev = 1
		}
		if mute >= 0 {
			p.muted = mute != 0
		}
		return prev
	})
}
