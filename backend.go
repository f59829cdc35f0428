package sunvox

import (
	"unsafe"

	"github.com/aspect-build/sunvox-go/core"
)

// Backend is the set of engine calls the high-level API is built on.
// Native returns the implementation backed by the SunVox shared library;
// package sunvoxtest provides an in-memory one.
//
// Methods mirror the functions of package core and return raw engine codes.
type Backend interface {
	LoadLibrary(path string) error

	Init(config string, sampleRate, channels int, flags uint32) int
	Deinit() int
	GetSampleRate() int
	UpdateInput() int
	AudioCallbackInt16(buf []int16, frames, latency int, outTime uint32) int
	AudioCallbackFloat32(buf []float32, frames, latency int, outTime uint32) int
	GetTicks() uint32
	GetTicksPerSecond() uint32
	GetLog(size int) string

	OpenSlot(slot int) int
	CloseSlot(slot int) int
	LockSlot(slot int) int
	UnlockSlot(slot int) int

	LoadProject(slot int, name string) int
	LoadFromMemory(slot int, data []byte) int
	Save(slot int, name string) int
	SaveToMemory(slot int) []byte

	Play(slot int) int
	PlayFromBeginning(slot int) int
	Stop(slot int) int
	Pause(slot int) int
	Resume(slot int) int
	SyncResume(slot int) int
	SetAutostop(slot, autostop int) int
	GetAutostop(slot int) int
	EndOfSong(slot int) int
	Rewind(slot, line int) int
	Volume(slot, vol int) int
	SetEventT(slot, set, t int) int
	SendEvent(slot, track, note, vel, module, ctl, ctlVal int) int
	GetCurrentLine(slot int) int
	GetCurrentLine2(slot int) int
	GetCurrentSignalLevel(slot, channel int) int

	GetSongName(slot int) string
	SetSongName(slot int, name string) int
	GetSongBPM(slot int) int
	GetSongTPL(slot int) int
	GetSongLengthFrames(slot int) uint32
	GetSongLengthLines(slot int) uint32
	GetTimeMap(slot, startLine int, dest []uint32, flags int) int

	NewModule(slot int, typ, name string, x, y, z int) int
	RemoveModule(slot, mod int) int
	ConnectModule(slot, source, destination int) int
	DisconnectModule(slot, source, destination int) int
	LoadModule(slot int, fileName string, x, y, z int) int
	LoadModuleFromMemory(slot int, data []byte, x, y, z int) int
	SamplerLoad(slot, mod int, fileName string, sampleSlot int) int
	SamplerLoadFromMemory(slot, mod int, data []byte, sampleSlot int) int
	SamplerPar(slot, mod, sampleSlot, par, parVal, set int) int
	MetamoduleLoad(slot, mod int, fileName string) int
	MetamoduleLoadFromMemory(slot, mod int, data []byte) int
	VplayerLoad(slot, mod int, fileName string) int
	VplayerLoadFromMemory(slot, mod int, data []byte) int
	GetNumberOfModules(slot int) int
	FindModule(slot int, name string) int
	GetModuleFlags(slot, mod int) uint32
	GetModuleInputs(slot, mod int) []int
	GetModuleOutputs(slot, mod int) []int
	GetModuleType(slot, mod int) string
	GetModuleName(slot, mod int) string
	SetModuleName(slot, mod int, name string) int
	GetModuleXY(slot, mod int) uint32
	SetModuleXY(slot, mod, x, y int) int
	GetModuleColor(slot, mod int) int
	SetModuleColor(slot, mod, color int) int
	GetModuleFinetune(slot, mod int) uint32
	SetModuleFinetune(slot, mod, finetune int) int
	SetModuleRelnote(slot, mod, relnote int) int
	GetModuleScope2(slot, mod, channel int, dest []int16) uint32
	ModuleCurve(slot, mod, curve int, data []float32, w int) int
	GetNumberOfModuleCtls(slot, mod int) int
	GetModuleCtlName(slot, mod, ctl int) string
	GetModuleCtlValue(slot, mod, ctl, scaled int) int
	SetModuleCtlValue(slot, mod, ctl, val, scaled int) int
	GetModuleCtlMin(slot, mod, ctl, scaled int) int
	GetModuleCtlMax(slot, mod, ctl, scaled int) int
	GetModuleCtlOffset(slot, mod, ctl int) int
	GetModuleCtlType(slot, mod, ctl int) int
	GetModuleCtlGroup(slot, mod, ctl int) int

	NewPattern(slot, clone, x, y, tracks, lines, iconSeed int, name string) int
	RemovePattern(slot, pat int) int
	GetNumberOfPatterns(slot int) int
	FindPattern(slot int, name string) int
	GetPatternX(slot, pat int) int
	GetPatternY(slot, pat int) int
	SetPatternXY(slot, pat, x, y int) int
	GetPatternTracks(slot, pat int) int
	GetPatternLines(slot, pat int) int
	SetPatternSize(slot, pat, tracks, lines int) int
	GetPatternName(slot, pat int) string
	SetPatternName(slot, pat int, name string) int
	GetPatternData(slot, pat int) []Note
	SetPatternEvent(slot, pat, track, line, nn, vv, mm, ccee, xxyy int) int
	GetPatternEvent(slot, pat, track, line, column int) int
	PatternMute(slot, pat, mute int) int
}

// Native returns the Backend that calls the SunVox shared library through package core.
func Native() Backend {
	return nativeBackend{}
}

type nativeBackend struct{}

func (nativeBackend) LoadLibrary(path string) error { return core.Load(path) }

func (nativeBackend) Init(config string, sampleRate, channels int, flags uint32) int {
	return core.Init(config, sampleRate, channels, flags)
}
func (nativeBackend) Deinit() int        { return core.Deinit() }
func (nativeBackend) GetSampleRate() int { return core.GetSampleRate() }
func (nativeBackend) UpdateInput() int   { return core.UpdateInput() }

func (nativeBackend) AudioCallbackInt16(buf []int16, frames, latency int, outTime uint32) int {
	if len(buf) == 0 {
		return 0
	}
	r := core.AudioCallback(unsafe.Pointer(&buf[0]), frames, latency, outTime)
	keepAlive(buf)
	return r
}

func (nativeBackend) AudioCallbackFloat32(buf []float32, frames, latency int, outTime uint32) int {
	if len(buf) == 0 {
		return 0
	}
	r := core.AudioCallback(unsafe.Pointer(&buf[0]), frames, latency, outTime)
	keepAlive(buf)
	return r
}

func (nativeBackend) GetTicks() uint32          { return core.GetTicks() }
func (nativeBackend) GetTicksPerSecond() uint32 { return core.GetTicksPerSecond() }
func (nativeBackend) GetLog(size int) string    { return core.GetLog(size) }

func (nativeBackend) OpenSlot(slot int) int   { return core.OpenSlot(slot) }
func (nativeBackend) CloseSlot(slot int) int  { return core.CloseSlot(slot) }
func (nativeBackend) LockSlot(slot int) int   { return core.LockSlot(slot) }
func (nativeBackend) UnlockSlot(slot int) int { return core.UnlockSlot(slot) }

func (nativeBackend) LoadProject(slot int, name string) int     { return core.LoadProject(slot, name) }
func (nativeBackend) LoadFromMemory(slot int, data []byte) int  { return core.LoadFromMemory(slot, data) }
func (nativeBackend) Save(slot int, name string) int            { return core.Save(slot, name) }
func (nativeBackend) SaveToMemory(slot int) []byte              { return core.SaveToMemory(slot) }
func (nativeBackend) Play(slot int) int                         { return core.Play(slot) }
func (nativeBackend) PlayFromBeginning(slot int) int            { return core.PlayFromBeginning(slot) }
func (nativeBackend) Stop(slot int) int                         { return core.Stop(slot) }
func (nativeBackend) Pause(slot int) int                        { return core.Pause(slot) }
func (nativeBackend) Resume(slot int) int                       { return core.Resume(slot) }
func (nativeBackend) SyncResume(slot int) int                   { return core.SyncResume(slot) }
func (nativeBackend) SetAutostop(slot, autostop int) int        { return core.SetAutostop(slot, autostop) }
func (nativeBackend) GetAutostop(slot int) int                  { return core.GetAutostop(slot) }
func (nativeBackend) EndOfSong(slot int) int                    { return core.EndOfSong(slot) }
func (nativeBackend) Rewind(slot, line int) int                 { return core.Rewind(slot, line) }
func (nativeBackend) Volume(slot, vol int) int                  { return core.Volume(slot, vol) }
func (nativeBackend) SetEventT(slot, set, t int) int            { return core.SetEventT(slot, set, t) }
func (nativeBackend) GetCurrentLine(slot int) int               { return core.GetCurrentLine(slot) }
func (nativeBackend) GetCurrentLine2(slot int) int              { return core.GetCurrentLine2(slot) }
func (nativeBackend) GetCurrentSignalLevel(slot, ch int) int    { return core.GetCurrentSignalLevel(slot, ch) }
func (nativeBackend) GetSongName(slot int) string               { return core.GetSongName(slot) }
func (nativeBackend) SetSongName(slot int, name string) int     { return core.SetSongName(slot, name) }
func (nativeBackend) GetSongBPM(slot int) int                   { return core.GetSongBPM(slot) }
func (nativeBackend) GetSongTPL(slot int) int                   { return core.GetSongTPL(slot) }
func (nativeBackend) GetSongLengthFrames(slot int) uint32       { return core.GetSongLengthFrames(slot) }
func (nativeBackend) GetSongLengthLines(slot int) uint32        { return core.GetSongLengthLines(slot) }
func (nativeBackend) GetNumberOfModules(slot int) int           { return core.GetNumberOfModules(slot) }
func (nativeBackend) FindModule(slot int, name string) int      { return core.FindModule(slot, name) }
func (nativeBackend) GetNumberOfPatterns(slot int) int          { return core.GetNumberOfPatterns(slot) }
func (nativeBackend) FindPattern(slot int, name string) int     { return core.FindPattern(slot, name) }
func (nativeBackend) RemoveModule(slot, mod int) int            { return core.RemoveModule(slot, mod) }
func (nativeBackend) RemovePattern(slot, pat int) int           { return core.RemovePattern(slot, pat) }
func (nativeBackend) GetModuleFlags(slot, mod int) uint32       { return core.GetModuleFlags(slot, mod) }
func (nativeBackend) GetModuleInputs(slot, mod int) []int       { return core.GetModuleInputs(slot, mod) }
func (nativeBackend) GetModuleOutputs(slot, mod int) []int      { return core.GetModuleOutputs(slot, mod) }
func (nativeBackend) GetModuleType(slot, mod int) string        { return core.GetModuleType(slot, mod) }
func (nativeBackend) GetModuleName(slot, mod int) string        { return core.GetModuleName(slot, mod) }
func (nativeBackend) GetModuleXY(slot, mod int) uint32          { return core.GetModuleXY(slot, mod) }
func (nativeBackend) GetModuleColor(slot, mod int) int          { return core.GetModuleColor(slot, mod) }
func (nativeBackend) GetModuleFinetune(slot, mod int) uint32    { return core.GetModuleFinetune(slot, mod) }
func (nativeBackend) GetNumberOfModuleCtls(slot, mod int) int   { return core.GetNumberOfModuleCtls(slot, mod) }
func (nativeBackend) GetPatternX(slot, pat int) int             { return core.GetPatternX(slot, pat) }
func (nativeBackend) GetPatternY(slot, pat int) int             { return core.GetPatternY(slot, pat) }
func (nativeBackend) GetPatternTracks(slot, pat int) int        { return core.GetPatternTracks(slot, pat) }
func (nativeBackend) GetPatternLines(slot, pat int) int         { return core.GetPatternLines(slot, pat) }
func (nativeBackend) GetPatternName(slot, pat int) string       { return core.GetPatternName(slot, pat) }
func (nativeBackend) GetPatternData(slot, pat int) []Note       { return core.GetPatternData(slot, pat) }
func (nativeBackend) PatternMute(slot, pat, mute int) int       { return core.PatternMute(slot, pat, mute) }
func (nativeBackend) SetModuleName(slot, mod int, n string) int { return core.SetModuleName(slot, mod, n) }
func (nativeBackend) SetPatternName(slot, p int, n string) int  { return core.SetPatternName(slot, p, n) }

func (nativeBackend) SendEvent(slot, track, note, vel, module, ctl, ctlVal int) int {
	return core.SendEvent(slot, track, note, vel, module, ctl, ctlVal)
}

func (nativeBackend) GetTimeMap(slot, startLine int, dest []uint32, flags int) int {
	return core.GetTimeMap(slot, startLine, dest, flags)
}

func (nativeBackend) NewModule(slot int, typ, name string, x, y, z int) int {
	return core.NewModule(slot, typ, name, x, y, z)
}

func (nativeBackend) ConnectModule(slot, source, destination int) int {
	return core.ConnectModule(slot, source, destination)
}

func (nativeBackend) DisconnectModule(slot, source, destination int) int {
	return core.DisconnectModule(slot, source, destination)
}

func (nativeBackend) LoadModule(slot int, fileName string, x, y, z int) int {
	return core.LoadModule(slot, fileName, x, y, z)
}

func (nativeBackend) LoadModuleFromMemory(slot int, data []byte, x, y, z int) int {
	return core.LoadModuleFromMemory(slot, data, x, y, z)
}

func (nativeBackend) SamplerLoad(slot, mod int, fileName string, sampleSlot int) int {
	return core.SamplerLoad(slot, mod, fileName, sampleSlot)
}

func (nativeBackend) SamplerLoadFromMemory(slot, mod int, data []byte, sampleSlot int) int {
	return core.SamplerLoadFromMemory(slot, mod, data, sampleSlot)
}

func (nativeBackend) SamplerPar(slot, mod, sampleSlot, par, parVal, set int) int {
	return core.SamplerPar(slot, mod, sampleSlot, par, parVal, set)
}

func (nativeBackend) MetamoduleLoad(slot, mod int, fileName string) int {
	return core.MetamoduleLoad(slot, mod, fileName)
}

func (nativeBackend) MetamoduleLoadFromMemory(slot, mod int, data []byte) int {
	return core.MetamoduleLoadFromMemory(slot, mod, data)
}

func (nativeBackend) VplayerLoad(slot, mod int, fileName string) int {
	return core.VplayerLoad(slot, mod, fileName)
}

func (nativeBackend) VplayerLoadFromMemory(slot, mod int, data []byte) int {
	return core.VplayerLoadFromMemory(slot, mod, data)
}

func (nativeBackend) SetModuleXY(slot, mod, x, y int) int { return core.SetModuleXY(slot, mod, x, y) }

func (nativeBackend) SetModuleColor(slot, mod, color int) int {
	return core.SetModuleColor(slot, mod, color)
}

func (nativeBackend) SetModuleFinetune(slot, mod, finetune int) int {
	return core.SetModuleFinetune(slot, mod, finetune)
}

func (nativeBackend) SetModuleRelnote(slot, mod, relnote int) int {
	return core.SetModuleRelnote(slot, mod, relnote)
}

func (nativeBackend) GetModuleScope2(slot, mod, channel int, dest []int16) uint32 {
	return core.GetModuleScope2(slot, mod, channel, dest)
}

func (nativeBackend) ModuleCurve(slot, mod, curve int, data []float32, w int) int {
	return core.ModuleCurve(slot, mod, curve, data, w)
}

func (nativeBackend) GetModuleCtlName(slot, mod, ctl int) string {
	return core.GetModuleCtlName(slot, mod, ctl)
}

func (nativeBackend) GetModuleCtlValue(slot, mod, ctl, scaled int) int {
	return core.GetModuleCtlValue(slot, mod, ctl, scaled)
}

func (nativeBackend) SetModuleCtlValue(slot, mod, ctl, val, scaled int) int {
	return core.SetModuleCtlValue(slot, mod, ctl, val, scaled)
}

func (nativeBackend) GetModuleCtlMin(slot, mod, ctl, scaled int) int {
	return core.GetModuleCtlMin(slot, mod, ctl, scaled)
}

func (nativeBackend) GetModuleCtlMax(slot, mod, ctl, scaled int) int {
	return core.GetModuleCtlMax(slot, mod, ctl, scaled)
}

func (nativeBackend) GetModuleCtlOffset(slot, mod, ctl int) int {
	return core.GetModuleCtlOffset(slot, mod, ctl)
}

func (nativeBackend) GetModuleCtlType(slot, mod, ctl int) int {
	return core.GetModuleCtlType(slot, mod, ctl)
}

func (nativeBackend) GetModuleCtlGroup(slot, mod, ctl int) int {
	return core.GetModuleCtlGroup(slot, mod, ctl)
}

func (nativeBackend) NewPattern(slot, clone, x, y, tracks, lines, iconSeed int, name string) int {
	return core.NewPattern(slot, clone, x, y, tracks, lines, iconSeed, name)
}

func (nativeBackend) SetPatternXY(slot, pat, x, y int) int { return core.SetPatternXY(slot, pat, x, y) }

func (nativeBackend) SetPatternSize(slot, pat, tracks, lines int) int {
	return core.SetPatternSize(slot, pat, tracks, lines)
}

func (nativeBackend) SetPatternEvent(slot, pat, track, line, nn, vv, mm, ccee, xxyy int) int {
	return core.SetPatternEvent(slot, pat, track, line, nn, vv, mm, ccee, xxyy)
}

func (nativeBackend) GetPatternEvent(slot, pat, track, line, column int) int {
	return core.GetPatternEvent(slot, pat, track, line, column)
}
