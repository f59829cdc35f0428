package sunvox

import (
	"fmt"

	"github.com/aspect-build/sunvox-go/core"
)

// Pattern is a grid of note events in a slot's project.
type Pattern struct {
	slot *Slot
	num  int
}

func (p *Pattern) Num() int    { return p.num }
func (p *Pattern) Slot() *Slot { return p.slot }

func (p *Pattern) b() Backend { return p.slot.b() }

func (p *Pattern) call(op string, fn func(b Backend, slot, pat int) int) error {
	return p.slot.call(op, func(b Backend, slot int) int { return fn(b, slot, p.num) })
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern(%d, name=%q, tracks=%d, lines=%d)", p.num, p.Name(), p.Tracks(), p.Lines())
}

// Exists reports whether the pattern slot holds a pattern.
func (p *Pattern) Exists() bool { return p.Lines() > 0 }

func (p *Pattern) Name() string { return p.b().GetPatternName(p.slot.num, p.num) }

func (p *Pattern) SetName(name string) error {
	return p.call("set_pattern_name", func(b Backend, slot, pat int) int {
		return b.SetPatternName(slot, pat, name)
	})
}

// X returns the pattern's start line on the timeline.
func (p *Pattern) X() int { return p.b().GetPatternX(p.slot.num, p.num) }

// Y returns the pattern's vertical position on the timeline.
func (p *Pattern) Y() int { return p.b().GetPatternY(p.slot.num, p.num) }

func (p *Pattern) Position() (x, y int) { return p.X(), p.Y() }

func (p *Pattern) SetPosition(x, y int) error {
	return p.call("set_pattern_xy", func(b Backend, slot, pat int) int {
		return b.SetPatternXY(slot, pat, x, y)
	})
}

func (p *Pattern) Tracks() int { return p.b().GetPatternTracks(p.slot.num, p.num) }
func (p *Pattern) Lines() int  { return p.b().GetPatternLines(p.slot.num, p.num) }

// SetSize resizes the pattern. A negative value keeps the current size.
// The project should be locked.
func (p *Pattern) SetSize(tracks, lines int) error {
	return p.call("set_pattern_size", func(b Backend, slot, pat int) int {
		return b.SetPatternSize(slot, pat, tracks, lines)
	})
}

// Event reads the cell at track, line.
func (p *Pattern) Event(track, line int) (Note, error) {
	if err := p.slot.ready(); err != nil {
		return Note{}, err
	}
	var vals [5]int
	for col := core.ColumnNote; col <= core.ColumnCtlVal; col++ {
		v := p.b().GetPatternEvent(p.slot.num, p.num, track, line, col)
		if v < 0 {
			return Note{}, p.slot.engine.fail("get_pattern_event", v)
		}
		vals[col] = v
	}
	return Note{
		Note:   uint8(vals[core.ColumnNote]),
		Vel:    uint8(vals[core.ColumnVel]),
		Module: uint16(vals[core.ColumnModule]),
		Ctl:    uint16(vals[core.ColumnCtl]),
		CtlVal: uint16(vals[core.ColumnCtlVal]),
	}, nil
}

// SetEvent writes the cell at track, line. A negative field leaves that
// column unchanged. The project should be locked.
func (p *Pattern) SetEvent(track, line, note, vel, module, ctl, ctlVal int) error {
	return p.call("set_pattern_event", func(b Backend, slot, pat int) int {
		return b.SetPatternEvent(slot, pat, track, line, note, vel, module, ctl, ctlVal)
	})
}

// SetNote writes a whole cell.
func (p *Pattern) SetNote(track, line int, n Note) error {
	return p.SetEvent(track, line, int(n.Note), int(n.Vel), int(n.Module), int(n.Ctl), int(n.CtlVal))
}

// Data returns the pattern cells, tracks*lines long, indexed line*tracks+track.
// With the native backend the slice aliases engine memory and is only valid
// until the pattern is resized or removed.
func (p *Pattern) Data() []Note {
	return p.b().GetPatternData(p.slot.num, p.num)
}

// Mute silences the pattern. The project should be locked.
func (p *Pattern) Mute() error { return p.setMute(1) }

func (p *Pattern) Unmute() error { return p.setMute(0) }

func (p *Pattern) setMute(v int) error {
	return p.call("pattern_mute", func(b Backend, slot, pat int) int {
		return b.PatternMute(slot, pat, v)
	})
}

// Remove deletes the pattern. The project should be locked.
func (p *Pattern) Remove() error {
	return p.call("remove_pattern", Backend.RemovePattern)
}
