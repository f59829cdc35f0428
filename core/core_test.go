package core

import (
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, 128, NoteCmdNoteOff)
	assert.Equal(t, 129, NoteCmdAllNotesOff)
	assert.Equal(t, 130, NoteCmdCleanSynths)
	assert.Equal(t, 131, NoteCmdStop)
	assert.Equal(t, 132, NoteCmdPlay)

	assert.Equal(t, uint32(1<<0), InitFlagNoDebugOutput)
	assert.Equal(t, uint32(1<<1), InitFlagUserAudioCallback)
	assert.Equal(t, uint32(1<<1), InitFlagOffline)
	assert.Equal(t, uint32(1<<2), InitFlagAudioInt16)
	assert.Equal(t, uint32(1<<3), InitFlagAudioFloat32)

	assert.Equal(t, uint32(1<<0), ModuleFlagExists)
	assert.Equal(t, uint32(1<<1), ModuleFlagGenerator)
	assert.Equal(t, uint32(1<<2), ModuleFlagEffect)
	assert.Equal(t, uint32(0xFF0000), ModuleInputsMask)
	assert.Equal(t, uint32(0xFF000000), ModuleOutputsMask)
}

func TestNoteLayout(t *testing.T) {
	// Must match sizeof(sunvox_note) for GetPatternData.
	assert.Equal(t, uintptr(8), unsafe.Sizeof(Note{}))
	assert.Equal(t, uintptr(2), unsafe.Offsetof(Note{}.Module))
	assert.Equal(t, uintptr(6), unsafe.Offsetof(Note{}.CtlVal))
}

func TestNote(t *testing.T) {
	var n Note
	assert.True(t, n.IsEmpty())

	n = Note{Note: 60, Vel: 100, Module: 1, Ctl: 0x0100, CtlVal: 0x8000}
	assert.False(t, n.IsEmpty())
	assert.Equal(t, "Note(note=60, vel=100, module=1, ctl=0x0100, ctl_val=0x8000)", n.String())
}

func TestStubsBeforeLoad(t *testing.T) {
	require.False(t, Loaded())

	assert.Equal(t, -1, Init("", 44100, 2, 0))
	assert.Equal(t, -1, OpenSlot(0))
	assert.Equal(t, -1, GetSongBPM(0))
	assert.Equal(t, "", GetSongName(0))
	assert.Equal(t, uint32(0), GetSongLengthFrames(0))
	assert.Nil(t, SaveToMemory(0))
	assert.Nil(t, GetModuleInputs(0, 0))
	assert.Nil(t, GetPatternData(0, 0))
	assert.Equal(t, -1, LoadFromMemory(0, []byte("data")))
	assert.Equal(t, -1, GetTimeMap(0, 0, nil, TimeMapSpeed))
}

func TestLoadMissingLibrary(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "no-such-sunvox.so"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLibraryNotFound)
	assert.False(t, Loaded())
	assert.Empty(t, LibraryPath())

	// Unload without a library is a no-op.
	assert.NoError(t, Unload())
}

func TestSymbolTable(t *testing.T) {
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		assert.False(t, seen[s.name], "duplicate symbol %s", s.name)
		seen[s.name] = true
		assert.NotNil(t, s.fn, s.name)
	}
	for _, name := range []string{"sv_init", "sv_open_slot", "sv_load", "sv_play", "sv_get_pattern_data"} {
		assert.True(t, seen[name], name)
	}
}

func TestCRTLibraries(t *testing.T) {
	tests := []struct {
		name    string
		imports []string
		want    []string
	}{
		{"none", []string{"KERNEL32.dll", "WINMM.dll"}, []string{"msvcrt.dll"}},
		{"msvcrt", []string{"KERNEL32.dll", "msvcrt.dll"}, []string{"msvcrt.dll"}},
		{"vc2010", []string{"MSVCR100.dll", "USER32.dll"}, []string{"msvcr100.dll", "msvcrt.dll"}},
		{"ucrt", []string{
			"VCRUNTIME140.dll",
			"api-ms-win-crt-runtime-l1-1-0.dll",
			"api-ms-win-crt-heap-l1-1-0.dll",
		}, []string{"api-ms-win-crt-heap-l1-1-0.dll", "msvcrt.dll"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, crtLibraries(tt.imports))
		})
	}
}
