package core

import "fmt"

// Note is one pattern cell, laid out like the engine's sunvox_note
// (8 bytes, no padding).
type Note struct {
	// 0 = nothing, 1..127 = note, 128 = note off, 129+ = NoteCmd* commands.
	Note uint8
	// Velocity 1..129; 0 = default.
	Vel uint8
	// 0 = nothing, 1..65535 = module number + 1.
	Module uint16
	// 0xCCEE: CC = controller number + 1, EE = effect.
	Ctl uint16
	// Controller value (0..32768) or effect parameter.
	CtlVal uint16
}

// String formats the note like Note(note=60, vel=100, module=1, ctl=0x0000, ctl_val=0x0000).
func (n Note) String() string {
	return fmt.Sprintf("Note(note=%d, vel=%d, module=%d, ctl=0x%04x, ctl_val=0x%04x)",
		n.Note, n.Vel, n.Module, n.Ctl, n.CtlVal)
}

// IsEmpty reports whether every field is zero.
func (n Note) IsEmpty() bool {
	return n == Note{}
}
