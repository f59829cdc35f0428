package core

import "unsafe"

// Raw entry points. C int maps to int32, uint32_t to uint32, size_t* to *uintptr,
// const char* arguments to string and returned C strings are copied into Go strings.
var (
	svInit            func(config *byte, freq, channels int32, flags uint32) int32
	svDeinit          func() int32
	svGetSampleRate   func() int32
	svUpdateInput     func() int32
	svAudioCallback   func(buf unsafe.Pointer, frames, latency int32, outTime uint32) int32
	svAudioCallback2  func(buf unsafe.Pointer, frames, latency int32, outTime uint32, inType, inChannels int32, inBuf unsafe.Pointer) int32
	svOpenSlot        func(slot int32) int32
	svCloseSlot       func(slot int32) int32
	svLockSlot        func(slot int32) int32
	svUnlockSlot      func(slot int32) int32
	svLoad            func(slot int32, name string) int32
	svLoadFromMemory  func(slot int32, data unsafe.Pointer, size uint32) int32
	svSave            func(slot int32, name string) int32
	svSaveToMemory    func(slot int32, size *uintptr) unsafe.Pointer
	svPlay            func(slot int32) int32
	svPlayFromBegin   func(slot int32) int32
	svStop            func(slot int32) int32
	svPause           func(slot int32) int32
	svResume          func(slot int32) int32
	svSyncResume      func(slot int32) int32
	svSetAutostop     func(slot, autostop int32) int32
	svGetAutostop     func(slot int32) int32
	svEndOfSong       func(slot int32) int32
	svRewind          func(slot, line int32) int32
	svVolume          func(slot, vol int32) int32
	svSetEventT       func(slot, set, t int32) int32
	svSendEvent       func(slot, track, note, vel, module, ctl, ctlVal int32) int32
	svGetCurrentLine  func(slot int32) int32
	svGetCurrentLine2 func(slot int32) int32
	svGetSignalLevel  func(slot, channel int32) int32
	svGetSongName     func(slot int32) string
	svSetSongName     func(slot int32, name string) int32
	svGetSongBPM      func(slot int32) int32
	svGetSongTPL      func(slot int32) int32
	svGetSongFrames   func(slot int32) uint32
	svGetSongLines    func(slot int32) uint32
	svGetTimeMap      func(slot, startLine, length int32, dest unsafe.Pointer, flags int32) int32

	svNewModule              func(slot int32, typ, name string, x, y, z int32) int32
	svRemoveModule           func(slot, mod int32) int32
	svConnectModule          func(slot, src, dst int32) int32
	svDisconnectModule       func(slot, src, dst int32) int32
	svLoadModule             func(slot int32, file string, x, y, z int32) int32
	svLoadModuleFromMemory   func(slot int32, data unsafe.Pointer, size uint32, x, y, z int32) int32
	svSamplerLoad            func(slot, mod int32, file string, sampleSlot int32) int32
	svSamplerLoadFromMemory  func(slot, mod int32, data unsafe.Pointer, size uint32, sampleSlot int32) int32
	svSamplerPar             func(slot, mod, sampleSlot, par, parVal, set int32) int32
	svMetamoduleLoad         func(slot, mod int32, file string) int32
	svMetamoduleLoadFromMem  func(slot, mod int32, data unsafe.Pointer, size uint32) int32
	svVplayerLoad            func(slot, mod int32, file string) int32
	svVplayerLoadFromMem     func(slot, mod int32, data unsafe.Pointer, size uint32) int32
	svGetNumberOfModules     func(slot int32) int32
	svFindModule             func(slot int32, name string) int32
	svGetModuleFlags         func(slot, mod int32) uint32
	svGetModuleInputs        func(slot, mod int32) unsafe.Pointer
	svGetModuleOutputs       func(slot, mod int32) unsafe.Pointer
	svGetModuleType          func(slot, mod int32) string
	svGetModuleName          func(slot, mod int32) string
	svSetModuleName          func(slot, mod int32, name string) int32
	svGetModuleXY            func(slot, mod int32) uint32
	svSetModuleXY            func(slot, mod, x, y int32) int32
	svGetModuleColor         func(slot, mod int32) int32
	svSetModuleColor         func(slot, mod, color int32) int32
	svGetModuleFinetune      func(slot, mod int32) uint32
	svSetModuleFinetune      func(slot, mod, finetune int32) int32
	svSetModuleRelnote       func(slot, mod, relnote int32) int32
	svGetModuleScope2        func(slot, mod, channel int32, dest unsafe.Pointer, samples uint32) uint32
	svModuleCurve            func(slot, mod, curve int32, data unsafe.Pointer, length, w int32) int32
	svGetNumberOfModuleCtls  func(slot, mod int32) int32
	svGetModuleCtlName       func(slot, mod, ctl int32) string
	svGetModuleCtlValue      func(slot, mod, ctl, scaled int32) int32
	svSetModuleCtlValue      func(slot, mod, ctl, val, scaled int32) int32
	svGetModuleCtlMin        func(slot, mod, ctl, scaled int32) int32
	svGetModuleCtlMax        func(slot, mod, ctl, scaled int32) int32
	svGetModuleCtlOffset     func(slot, mod, ctl int32) int32
	svGetModuleCtlType       func(slot, mod, ctl int32) int32
	svGetModuleCtlGroup      func(slot, mod, ctl int32) int32

	svNewPattern          func(slot, clone, x, y, tracks, lines, iconSeed int32, name string) int32
	svRemovePattern       func(slot, pat int32) int32
	svGetNumberOfPatterns func(slot int32) int32
	svFindPattern         func(slot int32, name string) int32
	svGetPatternX         func(slot, pat int32) int32
	svGetPatternY         func(slot, pat int32) int32
	svSetPatternXY        func(slot, pat, x, y int32) int32
	svGetPatternTracks    func(slot, pat int32) int32
	svGetPatternLines     func(slot, pat int32) int32
	svSetPatternSize      func(slot, pat, tracks, lines int32) int32
	svGetPatternName      func(slot, pat int32) string
	svSetPatternName      func(slot, pat int32, name string) int32
	svGetPatternData      func(slot, pat int32) unsafe.Pointer
	svSetPatternEvent     func(slot, pat, track, line, nn, vv, mm, ccee, xxyy int32) int32
	svGetPatternEvent     func(slot, pat, track, line, column int32) int32
	svPatternMute         func(slot, pat, mute int32) int32

	svGetTicks          func() uint32
	svGetTicksPerSecond func() uint32
	svGetLog            func(size int32) string

	cFree func(p unsafe.Pointer)
)

type symbol struct {
	name     string
	fn       any
	optional bool
}

// symbols lists every entry point. Optional ones appeared in later engine
// releases; when absent they keep their stub.
var symbols = []symbol{
	{"sv_init", &svInit, false},
	{"sv_deinit", &svDeinit, false},
	{"sv_get_sample_rate", &svGetSampleRate, false},
	{"sv_update_input", &svUpdateInput, true},
	{"sv_audio_callback", &svAudioCallback, false},
	{"sv_audio_callback2", &svAudioCallback2, true},
	{"sv_open_slot", &svOpenSlot, false},
	{"sv_close_slot", &svCloseSlot, false},
	{"sv_lock_slot", &svLockSlot, false},
	{"sv_unlock_slot", &svUnlockSlot, false},
	{"sv_load", &svLoad, false},
	{"sv_load_from_memory", &svLoadFromMemory, false},
	{"sv_save", &svSave, true},
	{"sv_save_to_memory", &svSaveToMemory, true},
	{"sv_play", &svPlay, false},
	{"sv_play_from_beginning", &svPlayFromBegin, false},
	{"sv_stop", &svStop, false},
	{"sv_pause", &svPause, true},
	{"sv_resume", &svResume, true},
	{"sv_sync_resume", &svSyncResume, true},
	{"sv_set_autostop", &svSetAutostop, false},
	{"sv_get_autostop", &svGetAutostop, true},
	{"sv_end_of_song", &svEndOfSong, false},
	{"sv_rewind", &svRewind, false},
	{"sv_volume", &svVolume, false},
	{"sv_set_event_t", &svSetEventT, true},
	{"sv_send_event", &svSendEvent, false},
	{"sv_get_current_line", &svGetCurrentLine, false},
	{"sv_get_current_line2", &svGetCurrentLine2, true},
	{"sv_get_current_signal_level", &svGetSignalLevel, false},
	{"sv_get_song_name", &svGetSongName, false},
	{"sv_set_song_name", &svSetSongName, true},
	{"sv_get_song_bpm", &svGetSongBPM, false},
	{"sv_get_song_tpl", &svGetSongTPL, false},
	{"sv_get_song_length_frames", &svGetSongFrames, false},
	{"sv_get_song_length_lines", &svGetSongLines, false},
	{"sv_get_time_map", &svGetTimeMap, true},

	{"sv_new_module", &svNewModule, false},
	{"sv_remove_module", &svRemoveModule, false},
	{"sv_connect_module", &svConnectModule, false},
	{"sv_disconnect_module", &svDisconnectModule, false},
	{"sv_load_module", &svLoadModule, false},
	{"sv_load_module_from_memory", &svLoadModuleFromMemory, true},
	{"sv_sampler_load", &svSamplerLoad, false},
	{"sv_sampler_load_from_memory", &svSamplerLoadFromMemory, true},
	{"sv_sampler_par", &svSamplerPar, true},
	{"sv_metamodule_load", &svMetamoduleLoad, true},
	{"sv_metamodule_load_from_memory", &svMetamoduleLoadFromMem, true},
	{"sv_vplayer_load", &svVplayerLoad, true},
	{"sv_vplayer_load_from_memory", &svVplayerLoadFromMem, true},
	{"sv_get_number_of_modules", &svGetNumberOfModules, false},
	{"sv_find_module", &svFindModule, false},
	{"sv_get_module_flags", &svGetModuleFlags, false},
	{"sv_get_module_inputs", &svGetModuleInputs, false},
	{"sv_get_module_outputs", &svGetModuleOutputs, false},
	{"sv_get_module_type", &svGetModuleType, true},
	{"sv_get_module_name", &svGetModuleName, false},
	{"sv_set_module_name", &svSetModuleName, true},
	{"sv_get_module_xy", &svGetModuleXY, false},
	{"sv_set_module_xy", &svSetModuleXY, true},
	{"sv_get_module_color", &svGetModuleColor, false},
	{"sv_set_module_color", &svSetModuleColor, true},
	{"sv_get_module_finetune", &svGetModuleFinetune, true},
	{"sv_set_module_finetune", &svSetModuleFinetune, true},
	{"sv_set_module_relnote", &svSetModuleRelnote, true},
	{"sv_get_module_scope2", &svGetModuleScope2, false},
	{"sv_module_curve", &svModuleCurve, true},
	{"sv_get_number_of_module_ctls", &svGetNumberOfModuleCtls, false},
	{"sv_get_module_ctl_name", &svGetModuleCtlName, false},
	{"sv_get_module_ctl_value", &svGetModuleCtlValue, false},
	{"sv_set_module_ctl_value", &svSetModuleCtlValue, true},
	{"sv_get_module_ctl_min", &svGetModuleCtlMin, true},
	{"sv_get_module_ctl_max", &svGetModuleCtlMax, true},
	{"sv_get_module_ctl_offset", &svGetModuleCtlOffset, true},
	{"sv_get_module_ctl_type", &svGetModuleCtlType, true},
	{"sv_get_module_ctl_group", &svGetModuleCtlGroup, true},

	{"sv_new_pattern", &svNewPattern, false},
	{"sv_remove_pattern", &svRemovePattern, false},
	{"sv_get_number_of_patterns", &svGetNumberOfPatterns, false},
	{"sv_find_pattern", &svFindPattern, true},
	{"sv_get_pattern_x", &svGetPatternX, false},
	{"sv_get_pattern_y", &svGetPatternY, false},
	{"sv_set_pattern_xy", &svSetPatternXY, true},
	{"sv_get_pattern_tracks", &svGetPatternTracks, false},
	{"sv_get_pattern_lines", &svGetPatternLines, false},
	{"sv_set_pattern_size", &svSetPatternSize, true},
	{"sv_get_pattern_name", &svGetPatternName, false},
	{"sv_set_pattern_name", &svSetPatternName, true},
	{"sv_get_pattern_data", &svGetPatternData, false},
	{"sv_set_pattern_event", &svSetPatternEvent, true},
	{"sv_get_pattern_event", &svGetPatternEvent, true},
	{"sv_pattern_mute", &svPatternMute, false},

	{"sv_get_ticks", &svGetTicks, false},
	{"sv_get_ticks_per_second", &svGetTicksPerSecond, false},
	{"sv_get_log", &svGetLog, true},
}
