package sunvox

import (
	"strings"

	"github.com/aspect-build/sunvox-go/core"
)

// Note is one pattern cell or event.
type Note = core.Note

// Note commands for the Note field of an event.
const (
	NoteOff         = core.NoteCmdNoteOff
	NoteAllNotesOff = core.NoteCmdAllNotesOff
	NoteCleanSynths = core.NoteCmdCleanSynths
	NoteStop        = core.NoteCmdStop
	NotePlay        = core.NoteCmdPlay
	NoteSetPitch    = core.NoteCmdSetPitch
	NoteCleanModule = core.NoteCmdCleanModule
)

// InitFlags are passed to New through Options.Flags.
type InitFlags uint32

const (
	FlagNoDebugOutput     = InitFlags(core.InitFlagNoDebugOutput)
	FlagUserAudioCallback = InitFlags(core.InitFlagUserAudioCallback)
	FlagOffline           = InitFlags(core.InitFlagOffline)
	FlagAudioInt16        = InitFlags(core.InitFlagAudioInt16)
	FlagAudioFloat32      = InitFlags(core.InitFlagAudioFloat32)
	FlagOneThread         = InitFlags(core.InitFlagOneThread)
)

// Has reports whether all bits of f2 are set.
func (f InitFlags) Has(f2 InitFlags) bool {
	return f&f2 == f2
}

func (f InitFlags) String() string {
	var parts []string
	if f.Has(FlagNoDebugOutput) {
		parts = append(parts, "no_debug_output")
	}
	if f.Has(FlagUserAudioCallback) {
		parts = append(parts, "user_audio_callback")
	}
	if f.Has(FlagAudioInt16) {
		parts = append(parts, "audio_int16")
	}
	if f.Has(FlagAudioFloat32) {
		parts = append(parts, "audio_float32")
	}
	if f.Has(FlagOneThread) {
		parts = append(parts, "one_thread")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// ModuleFlags is the bit set returned by Module.Flags.
type ModuleFlags uint32

func (f ModuleFlags) Exists() bool      { return uint32(f)&core.ModuleFlagExists != 0 }
func (f ModuleFlags) IsGenerator() bool { return uint32(f)&core.ModuleFlagGenerator != 0 }
func (f ModuleFlags) IsEffect() bool    { return uint32(f)&core.ModuleFlagEffect != 0 }
func (f ModuleFlags) IsMuted() bool     { return uint32(f)&core.ModuleFlagMute != 0 }
func (f ModuleFlags) IsSolo() bool      { return uint32(f)&core.ModuleFlagSolo != 0 }
func (f ModuleFlags) IsBypassed() bool  { return uint32(f)&core.ModuleFlagBypass != 0 }

// NumInputs is the number of input link slots, including empty ones.
func (f ModuleFlags) NumInputs() int {
	return int((uint32(f) & core.ModuleInputsMask) >> core.ModuleInputsOff)
}

// NumOutputs is the number of output link slots, including empty ones.
func (f ModuleFlags) NumOutputs() int {
	return int((uint32(f) & core.ModuleOutputsMask) >> core.ModuleOutputsOff)
}

// TimeMapKind selects what Slot.TimeMap returns per line.
type TimeMapKind int

const (
	TimeMapSpeed      TimeMapKind = core.TimeMapSpeed
	TimeMapFrameCount TimeMapKind = core.TimeMapFramecnt
)

// LineSpeed is one decoded TimeMapSpeed entry.
type LineSpeed struct {
	BPM int
	TPL int
}

func decodeSpeed(v uint32) LineSpeed {
	return LineSpeed{BPM: int(v & 0xFFFF), TPL: int(v >> 16)}
}

// Controller value modes.
const (
	ctlReal    = 0
	ctlScaled  = 1
	ctlDisplay = 2
)
