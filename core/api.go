package core

import "unsafe"

// Init initializes the engine (sv_init). An empty config passes NULL.
// Returns the engine version on success, a negative code on failure.
func Init(config string, sampleRate, channels int, flags uint32) int {
	var cfg *byte
	if config != "" {
		buf := append([]byte(config), 0)
		cfg = &buf[0]
		defer keepAlive(buf)
	}
	return int(svInit(cfg, int32(sampleRate), int32(channels), flags))
}

// Deinit shuts the engine down (sv_deinit).
func Deinit() int { return int(svDeinit()) }

// GetSampleRate returns the actual sample rate, which may differ from the one passed to Init.
func GetSampleRate() int { return int(svGetSampleRate()) }

// UpdateInput re-reads the audio input settings (sv_update_input).
func UpdateInput() int { return int(svUpdateInput()) }

// AudioCallback fills buf with frames*channels samples (sv_audio_callback).
// The sample type is the one selected by the Init flags.
// Returns 1 when the buffer holds sound, 0 when it is silent.
func AudioCallback(buf unsafe.Pointer, frames, latency int, outTime uint32) int {
	return int(svAudioCallback(buf, int32(frames), int32(latency), outTime))
}

// AudioCallback2 is AudioCallback with an input buffer (sv_audio_callback2).
// inType is 0 for int16 and 1 for float32.
func AudioCallback2(buf unsafe.Pointer, frames, latency int, outTime uint32, inType, inChannels int, inBuf unsafe.Pointer) int {
	return int(svAudioCallback2(buf, int32(frames), int32(latency), outTime, int32(inType), int32(inChannels), inBuf))
}

// OpenSlot opens a slot (sv_open_slot).
func OpenSlot(slot int) int { return int(svOpenSlot(int32(slot))) }

// CloseSlot closes a slot (sv_close_slot).
func CloseSlot(slot int) int { return int(svCloseSlot(int32(slot))) }

// LockSlot locks a slot for editing (sv_lock_slot).
func LockSlot(slot int) int { return int(svLockSlot(int32(slot))) }

// UnlockSlot releases a LockSlot (sv_unlock_slot).
func UnlockSlot(slot int) int { return int(svUnlockSlot(int32(slot))) }

// LoadProject loads a project file into a slot (sv_load).
func LoadProject(slot int, name string) int { return int(svLoad(int32(slot), name)) }

// LoadFromMemory loads a project from a byte slice (sv_load_from_memory).
func LoadFromMemory(slot int, data []byte) int {
	ptr, size := bytesPtr(data)
	r := svLoadFromMemory(int32(slot), ptr, size)
	keepAlive(data)
	return int(r)
}

// Save writes the project to a file (sv_save).
func Save(slot int, name string) int { return int(svSave(int32(slot), name)) }

// SaveToMemory serializes the project (sv_save_to_memory).
// The engine's block is copied and freed; nil means failure.
func SaveToMemory(slot int) []byte {
	var size uintptr
	ptr := svSaveToMemory(int32(slot), &size)
	if ptr == nil {
		return nil
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(ptr), size))
	cFree(ptr)
	return out
}

// Play starts playback from the current position (sv_play).
func Play(slot int) int { return int(svPlay(int32(slot))) }

// PlayFromBeginning starts playback from line 0 (sv_play_from_beginning).
func PlayFromBeginning(slot int) int { return int(svPlayFromBegin(int32(slot))) }

// Stop stops playback; a second call resets the slot to standby (sv_stop).
func Stop(slot int) int { return int(svStop(int32(slot))) }

// Pause pauses the audio stream of the slot (sv_pause).
func Pause(slot int) int { return int(svPause(int32(slot))) }

// Resume resumes the audio stream of the slot (sv_resume).
func Resume(slot int) int { return int(svResume(int32(slot))) }

// SyncResume resumes on the next sync signal (sv_sync_resume).
func SyncResume(slot int) int { return int(svSyncResume(int32(slot))) }

// SetAutostop sets autostop mode: 1 stops at the end, 0 loops (sv_set_autostop).
func SetAutostop(slot, autostop int) int { return int(svSetAutostop(int32(slot), int32(autostop))) }

// GetAutostop returns the autostop mode (sv_get_autostop).
func GetAutostop(slot int) int { return int(svGetAutostop(int32(slot))) }

// EndOfSong returns 0 while playing, 1 when stopped (sv_end_of_song).
func EndOfSong(slot int) int { return int(svEndOfSong(int32(slot))) }

// Rewind moves the play position to a line (sv_rewind).
func Rewind(slot, line int) int { return int(svRewind(int32(slot), int32(line))) }

// Volume sets the slot volume 0..256 and returns the previous one.
// A negative vol only reads it (sv_volume).
func Volume(slot, vol int) int { return int(svVolume(int32(slot), int32(vol))) }

// SetEventT sets the timestamp of the following SendEvent calls (sv_set_event_t).
// set=1 uses t, set=0 resets to automatic timing.
func SetEventT(slot, set, t int) int { return int(svSetEventT(int32(slot), int32(set), int32(t))) }

// SendEvent sends a note, controller or effect event (sv_send_event).
func SendEvent(slot, track, note, vel, module, ctl, ctlVal int) int {
	return int(svSendEvent(int32(slot), int32(track), int32(note), int32(vel), int32(module), int32(ctl), int32(ctlVal)))
}

// GetCurrentLine returns the current line (sv_get_current_line).
func GetCurrentLine(slot int) int { return int(svGetCurrentLine(int32(slot))) }

// GetCurrentLine2 returns the current line in 27.5 fixed point (sv_get_current_line2).
func GetCurrentLine2(slot int) int { return int(svGetCurrentLine2(int32(slot))) }

// GetCurrentSignalLevel returns the output level 0..255 of a channel (sv_get_current_signal_level).
func GetCurrentSignalLevel(slot, channel int) int {
	return int(svGetSignalLevel(int32(slot), int32(channel)))
}

// GetSongName returns the project name (sv_get_song_name).
func GetSongName(slot int) string { return svGetSongName(int32(slot)) }

// SetSongName renames the project (sv_set_song_name).
func SetSongName(slot int, name string) int { return int(svSetSongName(int32(slot), name)) }

// GetSongBPM returns beats per minute (sv_get_song_bpm).
func GetSongBPM(slot int) int { return int(svGetSongBPM(int32(slot))) }

// GetSongTPL returns ticks per line (sv_get_song_tpl).
func GetSongTPL(slot int) int { return int(svGetSongTPL(int32(slot))) }

// GetSongLengthFrames returns the song length in frames (sv_get_song_length_frames).
func GetSongLengthFrames(slot int) uint32 { return svGetSongFrames(int32(slot)) }

// GetSongLengthLines returns the song length in lines (sv_get_song_length_lines).
func GetSongLengthLines(slot int) uint32 { return svGetSongLines(int32(slot)) }

// GetTimeMap fills dest with one value per line starting at startLine (sv_get_time_map).
func GetTimeMap(slot, startLine int, dest []uint32, flags int) int {
	if len(dest) == 0 {
		return -1
	}
	r := svGetTimeMap(int32(slot), int32(startLine), int32(len(dest)), unsafe.Pointer(&dest[0]), int32(flags))
	keepAlive(dest)
	return int(r)
}

// NewModule creates a module and returns its number (sv_new_module).
func NewModule(slot int, typ, name string, x, y, z int) int {
	return int(svNewModule(int32(slot), typ, name, int32(x), int32(y), int32(z)))
}

// RemoveModule removes a module (sv_remove_module).
func RemoveModule(slot, mod int) int { return int(svRemoveModule(int32(slot), int32(mod))) }

// ConnectModule connects source to destination (sv_connect_module).
func ConnectModule(slot, source, destination int) int {
	return int(svConnectModule(int32(slot), int32(source), int32(destination)))
}

// DisconnectModule disconnects source from destination (sv_disconnect_module).
func DisconnectModule(slot, source, destination int) int {
	return int(svDisconnectModule(int32(slot), int32(source), int32(destination)))
}

// LoadModule loads a module or sample file (sv_load_module).
func LoadModule(slot int, fileName string, x, y, z int) int {
	return int(svLoadModule(int32(slot), fileName, int32(x), int32(y), int32(z)))
}

// LoadModuleFromMemory loads a module from a byte slice (sv_load_module_from_memory).
func LoadModuleFromMemory(slot int, data []byte, x, y, z int) int {
	ptr, size := bytesPtr(data)
	r := svLoadModuleFromMemory(int32(slot), ptr, size, int32(x), int32(y), int32(z))
	keepAlive(data)
	return int(r)
}

// SamplerLoad loads a sample into a Sampler module (sv_sampler_load).
// sampleSlot -1 replaces the whole instrument.
func SamplerLoad(slot, mod int, fileName string, sampleSlot int) int {
	return int(svSamplerLoad(int32(slot), int32(mod), fileName, int32(sampleSlot)))
}

// SamplerLoadFromMemory is SamplerLoad from a byte slice (sv_sampler_load_from_memory).
func SamplerLoadFromMemory(slot, mod int, data []byte, sampleSlot int) int {
	ptr, size := bytesPtr(data)
	r := svSamplerLoadFromMemory(int32(slot), int32(mod), ptr, size, int32(sampleSlot))
	keepAlive(data)
	return int(r)
}

// SamplerPar reads (set=0) or writes (set=1) a sample parameter (sv_sampler_par).
func SamplerPar(slot, mod, sampleSlot, par, parVal, set int) int {
	return int(svSamplerPar(int32(slot), int32(mod), int32(sampleSlot), int32(par), int32(parVal), int32(set)))
}

// MetamoduleLoad loads a project into a MetaModule (sv_metamodule_load).
func MetamoduleLoad(slot, mod int, fileName string) int {
	return int(svMetamoduleLoad(int32(slot), int32(mod), fileName))
}

// MetamoduleLoadFromMemory is MetamoduleLoad from a byte slice.
func MetamoduleLoadFromMemory(slot, mod int, data []byte) int {
	ptr, size := bytesPtr(data)
	r := svMetamoduleLoadFromMem(int32(slot), int32(mod), ptr, size)
	keepAlive(data)
	return int(r)
}

// VplayerLoad loads an OGG Vorbis file into a Vorbis Player module (sv_vplayer_load).
func VplayerLoad(slot, mod int, fileName string) int {
	return int(svVplayerLoad(int32(slot), int32(mod), fileName))
}

// VplayerLoadFromMemory is VplayerLoad from a byte slice.
func VplayerLoadFromMemory(slot, mod int, data []byte) int {
	ptr, size := bytesPtr(data)
	r := svVplayerLoadFromMem(int32(slot), int32(mod), ptr, size)
	keepAlive(data)
	return int(r)
}

// GetNumberOfModules returns the number of module slots, including empty ones.
func GetNumberOfModules(slot int) int { return int(svGetNumberOfModules(int32(slot))) }

// FindModule returns the number of the module with the given name, or -1.
func FindModule(slot int, name string) int { return int(svFindModule(int32(slot), name)) }

// GetModuleFlags returns the ModuleFlag* bits and link counts (sv_get_module_flags).
func GetModuleFlags(slot, mod int) uint32 { return svGetModuleFlags(int32(slot), int32(mod)) }

// GetModuleInputs returns a copy of the input link table (sv_get_module_inputs).
// Empty links are -1.
func GetModuleInputs(slot, mod int) []int {
	n := int((GetModuleFlags(slot, mod) & ModuleInputsMask) >> ModuleInputsOff)
	return copyLinks(svGetModuleInputs(int32(slot), int32(mod)), n)
}

// GetModuleOutputs returns a copy of the output link table (sv_get_module_outputs).
// Empty links are -1.
func GetModuleOutputs(slot, mod int) []int {
	n := int((GetModuleFlags(slot, mod) & ModuleOutputsMask) >> ModuleOutputsOff)
	return copyLinks(svGetModuleOutputs(int32(slot), int32(mod)), n)
}

// GetModuleType returns the module type name (sv_get_module_type).
func GetModuleType(slot, mod int) string { return svGetModuleType(int32(slot), int32(mod)) }

// GetModuleName returns the module name (sv_get_module_name).
func GetModuleName(slot, mod int) string { return svGetModuleName(int32(slot), int32(mod)) }

// SetModuleName renames a module (sv_set_module_name).
func SetModuleName(slot, mod int, name string) int {
	return int(svSetModuleName(int32(slot), int32(mod), name))
}

// GetModuleXY returns the packed position: x in the low 16 bits, y in the high 16 bits,
// both signed.
func GetModuleXY(slot, mod int) uint32 { return svGetModuleXY(int32(slot), int32(mod)) }

// SetModuleXY moves a module (sv_set_module_xy).
func SetModuleXY(slot, mod, x, y int) int {
	return int(svSetModuleXY(int32(slot), int32(mod), int32(x), int32(y)))
}

// GetModuleColor returns the module color as 0xBBGGRR.
func GetModuleColor(slot, mod int) int { return int(svGetModuleColor(int32(slot), int32(mod))) }

// SetModuleColor sets the module color, 0xBBGGRR.
func SetModuleColor(slot, mod, color int) int {
	return int(svSetModuleColor(int32(slot), int32(mod), int32(color)))
}

// GetModuleFinetune returns finetune in the low 16 bits and relative note in the high 16 bits,
// both signed.
func GetModuleFinetune(slot, mod int) uint32 { return svGetModuleFinetune(int32(slot), int32(mod)) }

// SetModuleFinetune sets the finetune, -256..256.
func SetModuleFinetune(slot, mod, finetune int) int {
	return int(svSetModuleFinetune(int32(slot), int32(mod), int32(finetune)))
}

// SetModuleRelnote sets the relative note.
func SetModuleRelnote(slot, mod, relnote int) int {
	return int(svSetModuleRelnote(int32(slot), int32(mod), int32(relnote)))
}

// GetModuleScope2 copies the latest output samples of a module channel into dest
// and returns how many were read (sv_get_module_scope2).
func GetModuleScope2(slot, mod, channel int, dest []int16) uint32 {
	if len(dest) == 0 {
		return 0
	}
	r := svGetModuleScope2(int32(slot), int32(mod), int32(channel), unsafe.Pointer(&dest[0]), uint32(len(dest)))
	keepAlive(dest)
	return r
}

// ModuleCurve reads (w=0) or writes (w=1) a module curve (sv_module_curve).
// Returns the number of values processed.
func ModuleCurve(slot, mod, curve int, data []float32, w int) int {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	r := svModuleCurve(int32(slot), int32(mod), int32(curve), ptr, int32(len(data)), int32(w))
	keepAlive(data)
	return int(r)
}

// GetNumberOfModuleCtls returns the number of controllers of a module.
func GetNumberOfModuleCtls(slot, mod int) int {
	return int(svGetNumberOfModuleCtls(int32(slot), int32(mod)))
}

// GetModuleCtlName returns a controller name.
func GetModuleCtlName(slot, mod, ctl int) string {
	return svGetModuleCtlName(int32(slot), int32(mod), int32(ctl))
}

// GetModuleCtlValue returns a controller value.
// scaled: 0 real value, 1 scaled 0..0x8000, 2 displayed value.
func GetModuleCtlValue(slot, mod, ctl, scaled int) int {
	return int(svGetModuleCtlValue(int32(slot), int32(mod), int32(ctl), int32(scaled)))
}

// SetModuleCtlValue sets a controller value; scaled as in GetModuleCtlValue.
func SetModuleCtlValue(slot, mod, ctl, val, scaled int) int {
	return int(svSetModuleCtlValue(int32(slot), int32(mod), int32(ctl), int32(val), int32(scaled)))
}

// GetModuleCtlMin returns the controller minimum.
func GetModuleCtlMin(slot, mod, ctl, scaled int) int {
	return int(svGetModuleCtlMin(int32(slot), int32(mod), int32(ctl), int32(scaled)))
}

// GetModuleCtlMax returns the controller maximum.
func GetModuleCtlMax(slot, mod, ctl, scaled int) int {
	return int(svGetModuleCtlMax(int32(slot), int32(mod), int32(ctl), int32(scaled)))
}

// GetModuleCtlOffset returns the offset added to the displayed value.
func GetModuleCtlOffset(slot, mod, ctl int) int {
	return int(svGetModuleCtlOffset(int32(slot), int32(mod), int32(ctl)))
}

// GetModuleCtlType returns 0 for a normal controller, 1 for a selector.
func GetModuleCtlType(slot, mod, ctl int) int {
	return int(svGetModuleCtlType(int32(slot), int32(mod), int32(ctl)))
}

// GetModuleCtlGroup returns the controller group.
func GetModuleCtlGroup(slot, mod, ctl int) int {
	return int(svGetModuleCtlGroup(int32(slot), int32(mod), int32(ctl)))
}

// NewPattern creates a pattern, or clones one when clone >= 0 (sv_new_pattern).
func NewPattern(slot, clone, x, y, tracks, lines, iconSeed int, name string) int {
	return int(svNewPattern(int32(slot), int32(clone), int32(x), int32(y), int32(tracks), int32(lines), int32(iconSeed), name))
}

// RemovePattern removes a pattern (sv_remove_pattern).
func RemovePattern(slot, pat int) int { return int(svRemovePattern(int32(slot), int32(pat))) }

// GetNumberOfPatterns returns the number of pattern slots, including empty ones.
func GetNumberOfPatterns(slot int) int { return int(svGetNumberOfPatterns(int32(slot))) }

// FindPattern returns the number of the pattern with the given name, or -1.
func FindPattern(slot int, name string) int { return int(svFindPattern(int32(slot), name)) }

// GetPatternX returns the pattern position on the timeline, in lines.
func GetPatternX(slot, pat int) int { return int(svGetPatternX(int32(slot), int32(pat))) }

// GetPatternY returns the vertical pattern position on the timeline.
func GetPatternY(slot, pat int) int { return int(svGetPatternY(int32(slot), int32(pat))) }

// SetPatternXY moves a pattern (sv_set_pattern_xy).
func SetPatternXY(slot, pat, x, y int) int {
	return int(svSetPatternXY(int32(slot), int32(pat), int32(x), int32(y)))
}

// GetPatternTracks returns the number of tracks.
func GetPatternTracks(slot, pat int) int { return int(svGetPatternTracks(int32(slot), int32(pat))) }

// GetPatternLines returns the number of lines.
func GetPatternLines(slot, pat int) int { return int(svGetPatternLines(int32(slot), int32(pat))) }

// SetPatternSize resizes a pattern; negative values keep the current size.
func SetPatternSize(slot, pat, tracks, lines int) int {
	return int(svSetPatternSize(int32(slot), int32(pat), int32(tracks), int32(lines)))
}

// GetPatternName returns the pattern name.
func GetPatternName(slot, pat int) string { return svGetPatternName(int32(slot), int32(pat)) }

// SetPatternName renames a pattern.
func SetPatternName(slot, pat int, name string) int {
	return int(svSetPatternName(int32(slot), int32(pat), name))
}

// GetPatternData returns the pattern cells as a view over engine memory,
// track-major within each line: cell = Data[line*tracks+track].
// The view is valid until the pattern is resized or removed; hold the slot lock
// while using it.
func GetPatternData(slot, pat int) []Note {
	ptr := svGetPatternData(int32(slot), int32(pat))
	if ptr == nil {
		return nil
	}
	tracks := GetPatternTracks(slot, pat)
	lines := GetPatternLines(slot, pat)
	if tracks <= 0 || lines <= 0 {
		return nil
	}
	return unsafe.Slice((*Note)(ptr), tracks*lines)
}

// SetPatternEvent writes a pattern cell; negative values leave a field unchanged.
func SetPatternEvent(slot, pat, track, line, nn, vv, mm, ccee, xxyy int) int {
	return int(svSetPatternEvent(int32(slot), int32(pat), int32(track), int32(line),
		int32(nn), int32(vv), int32(mm), int32(ccee), int32(xxyy)))
}

// GetPatternEvent reads one column (Column*) of a pattern cell.
func GetPatternEvent(slot, pat, track, line, column int) int {
	return int(svGetPatternEvent(int32(slot), int32(pat), int32(track), int32(line), int32(column)))
}

// PatternMute mutes (1) or unmutes (0) a pattern and returns the previous state.
func PatternMute(slot, pat, mute int) int {
	return int(svPatternMute(int32(slot), int32(pat), int32(mute)))
}

// GetTicks returns the engine's system tick counter.
func GetTicks() uint32 { return svGetTicks() }

// GetTicksPerSecond returns the tick counter frequency.
func GetTicksPerSecond() uint32 { return svGetTicksPerSecond() }

// GetLog returns the last size bytes of the engine log.
func GetLog(size int) string { return svGetLog(int32(size)) }

func bytesPtr(data []byte) (unsafe.Pointer, uint32) {
	if len(data) == 0 {
		return nil, 0
	}
	return unsafe.Pointer(&data[0]), uint32(len(data))
}

func copyLinks(ptr unsafe.Pointer, n int) []int {
	if ptr == nil || n <= 0 {
		return nil
	}
	raw := unsafe.Slice((*int32)(ptr), n)
	links := make([]int, n)
	for i, v := range raw {
		links[i] = int(v)
	}
	return links
}
