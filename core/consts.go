package core

// Note commands, sent in the note field of an event.
const (
	NoteCmdNoteOff     = 128 // note off
	NoteCmdAllNotesOff = 129 // note off for all modules
	NoteCmdCleanSynths = 130 // stop all modules, clear their buffers
	NoteCmdStop        = 131
	NoteCmdPlay        = 132
	NoteCmdSetPitch    = 133 // pitch from the ctl_val field, 0x0000 = highest
	NoteCmdCleanModule = 140 // stop one module, clear its buffers
)

// Flags for Init.
const (
	InitFlagNoDebugOutput     uint32 = 1 << 0
	InitFlagUserAudioCallback uint32 = 1 << 1 // no audio device; the caller pulls audio with AudioCallback
	InitFlagOffline           uint32 = 1 << 1 // same as InitFlagUserAudioCallback
	InitFlagAudioInt16        uint32 = 1 << 2
	InitFlagAudioFloat32      uint32 = 1 << 3
	InitFlagOneThread         uint32 = 1 << 4 // AudioCallback and project edits on one thread
)

// Flags for GetTimeMap.
const (
	TimeMapSpeed    = 0 // BPM | (TPL << 16) per line
	TimeMapFramecnt = 1 // frame counter per line
)

// Bits returned by GetModuleFlags.
const (
	ModuleFlagExists    uint32 = 1 << 0
	ModuleFlagGenerator uint32 = 1 << 1
	ModuleFlagEffect    uint32 = 1 << 2
	ModuleFlagMute      uint32 = 1 << 3
	ModuleFlagSolo      uint32 = 1 << 4
	ModuleFlagBypass    uint32 = 1 << 5

	ModuleInputsOff   = 16
	ModuleInputsMask  = uint32(255) << ModuleInputsOff
	ModuleOutputsOff  = 16 + 8
	ModuleOutputsMask = uint32(255) << ModuleOutputsOff
)

// Columns for GetPatternEvent.
const (
	ColumnNote = iota
	ColumnVel
	ColumnModule
	ColumnCtl
	ColumnCtlVal
)
