package sunvox

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Slot is one project playback context inside the engine.
type Slot struct {
	engine *Engine
	num    int
	open   *atomic.Bool
}

// Num returns the slot number.
func (s *Slot) Num() int { return s.num }

// Engine returns the engine the slot belongs to.
func (s *Slot) Engine() *Engine { return s.engine }

// IsOpen reports whether the slot has not been closed.
func (s *Slot) IsOpen() bool { return s.open.Load() }

// Close closes the slot. Calling Close more than once is safe.
func (s *Slot) Close() error {
	if s == nil {
		return nil
	}
	return s.engine.closeSlot(s.num, s.open)
}

func (s *Slot) b() Backend { return s.engine.backend }

func (s *Slot) ready() error {
	if !s.open.Load() {
		return ErrSlotClosed
	}
	return nil
}

// call runs fn against an open slot and converts a negative result into an *Error.
func (s *Slot) call(op string, fn func(b Backend, slot int) int) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.engine.check(op, fn(s.b(), s.num))
}

// Lock locks the project for editing. Calls nest; each Lock needs an Unlock.
func (s *Slot) Lock() error {
	return s.call("lock_slot", Backend.LockSlot)
}

func (s *Slot) Unlock() error {
	return s.call("unlock_slot", Backend.UnlockSlot)
}

// WithLock runs fn with the project locked. The slot is unlocked even if fn
// returns an error or panics.
func (s *Slot) WithLock(fn func() error) (err error) {
	if err := s.Lock(); err != nil {
		return err
	}
	defer func() {
		if uerr := s.Unlock(); err == nil {
			err = uerr
		}
	}()
	return fn()
}

// Load loads a .sunvox project from a file.
func (s *Slot) Load(path string) error {
	err := s.call("load", func(b Backend, slot int) int { return b.LoadProject(slot, path) })
	if err == nil {
		s.engine.log.Debug("project loaded", zap.Int("slot", s.num), zap.String("file", path))
	}
	return err
}

// LoadFromMemory loads a project from its serialized bytes.
func (s *Slot) LoadFromMemory(data []byte) error {
	return s.call("load_from_memory", func(b Backend, slot int) int { return b.LoadFromMemory(slot, data) })
}

// Save writes the project to a file.
func (s *Slot) Save(path string) error {
	err := s.call("save", func(b Backend, slot int) int { return b.Save(slot, path) })
	if err == nil {
		s.engine.log.Debug("project saved", zap.Int("slot", s.num), zap.String("file", path))
	}
	return err
}

// SaveToMemory serializes the project.
func (s *Slot) SaveToMemory() ([]byte, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	data := s.b().SaveToMemory(s.num)
	if data == nil {
		return nil, s.engine.fail("save_to_memory", -1)
	}
	return data, nil
}

func (s *Slot) Play() error { return s.call("play", Backend.Play) }

func (s *Slot) PlayFromBeginning() error {
	return s.call("play_from_beginning", Backend.PlayFromBeginning)
}

// Stop stops playback. A second Stop resets the slot to standby and
// silences every module.
func (s *Slot) Stop() error { return s.call("stop", Backend.Stop) }

// Pause stops the audio stream of the slot without stopping the song.
func (s *Slot) Pause() error { return s.call("pause", Backend.Pause) }

func (s *Slot) Resume() error { return s.call("resume", Backend.Resume) }

// SyncResume resumes playback on the next sync event from another slot
// or external source.
func (s *Slot) SyncResume() error { return s.call("sync_resume", Backend.SyncResume) }

// Rewind moves the play position to line.
func (s *Slot) Rewind(line int) error {
	return s.call("rewind", func(b Backend, slot int) int { return b.Rewind(slot, line) })
}

// Name returns the song name.
func (s *Slot) Name() string { return s.b().GetSongName(s.num) }

func (s *Slot) SetName(name string) error {
	return s.call("set_song_name", func(b Backend, slot int) int { return b.SetSongName(slot, name) })
}

func (s *Slot) BPM() int { return s.b().GetSongBPM(s.num) }

// TPL returns the song's ticks per line.
func (s *Slot) TPL() int { return s.b().GetSongTPL(s.num) }

// LengthFrames returns the song length in frames at the engine sample rate.
func (s *Slot) LengthFrames() uint32 { return s.b().GetSongLengthFrames(s.num) }

func (s *Slot) LengthLines() uint32 { return s.b().GetSongLengthLines(s.num) }

// Duration returns the song length as wall time.
func (s *Slot) Duration() time.Duration {
	sr := s.engine.sampleRate
	if sr <= 0 {
		return 0
	}
	return time.Duration(float64(s.LengthFrames()) / float64(sr) * float64(time.Second))
}

func (s *Slot) CurrentLine() int { return s.b().GetCurrentLine(s.num) }

// CurrentLineFraction returns the play position with 1/32 line resolution.
func (s *Slot) CurrentLineFraction() float64 {
	return float64(s.b().GetCurrentLine2(s.num)) / 32
}

// IsPlaying reports whether the song has not reached its end.
func (s *Slot) IsPlaying() bool { return s.b().EndOfSong(s.num) == 0 }

// Autostop reports whether playback stops at the end of the song instead of looping.
func (s *Slot) Autostop() bool { return s.b().GetAutostop(s.num) > 0 }

func (s *Slot) SetAutostop(on bool) error {
	v := 0
	if on {
		v = 1
	}
	return s.call("set_autostop", func(b Backend, slot int) int { return b.SetAutostop(slot, v) })
}

// Volume returns the slot volume, 0..256.
func (s *Slot) Volume() int { return s.b().Volume(s.num, -1) }

// SetVolume sets the slot volume, 0..256.
func (s *Slot) SetVolume(vol int) error {
	if vol < 0 {
		vol = 0
	}
	return s.call("volume", func(b Backend, slot int) int { return b.Volume(slot, vol) })
}

// SignalLevel returns the current output level of a channel, 0..255.
func (s *Slot) SignalLevel(channel int) int {
	return s.b().GetCurrentSignalLevel(s.num, channel)
}

// SetEventTime stamps subsequent SendEvent calls with t, in engine ticks.
func (s *Slot) SetEventTime(t uint32) error {
	return s.call("set_event_t", func(b Backend, slot int) int { return b.SetEventT(slot, 1, int(t)) })
}

// ResetEventTime makes SendEvent apply events as soon as possible.
func (s *Slot) ResetEventTime() error {
	return s.call("set_event_t", func(b Backend, slot int) int { return b.SetEventT(slot, 0, 0) })
}

// SendEvent sends a note or controller event on a track (0..15).
// n.Module is the module number plus one, as in pattern data.
func (s *Slot) SendEvent(track int, n Note) error {
	return s.call("send_event", func(b Backend, slot int) int {
		return b.SendEvent(slot, track, int(n.Note), int(n.Vel), int(n.Module), int(n.Ctl), int(n.CtlVal))
	})
}

// TimeMap returns one value per line starting at startLine.
func (s *Slot) TimeMap(startLine, lines int, kind TimeMapKind) ([]uint32, error) {
	if lines <= 0 {
		return nil, nil
	}
	dest := make([]uint32, lines)
	if err := s.call("get_time_map", func(b Backend, slot int) int {
		return b.GetTimeMap(slot, startLine, dest, int(kind))
	}); err != nil {
		return nil, err
	}
	return dest, nil
}

// Speeds returns the BPM and TPL in effect at each line starting at startLine.
func (s *Slot) Speeds(startLine, lines int) ([]LineSpeed, error) {
	m, err := s.TimeMap(startLine, lines, TimeMapSpeed)
	if err != nil {
		return nil, err
	}
	out := make([]LineSpeed, len(m))
	for i, v := range m {
		out[i] = decodeSpeed(v)
	}
	return out, nil
}

// NumModules returns the number of module slots, including removed ones.
func (s *Slot) NumModules() int { return s.b().GetNumberOfModules(s.num) }

// Module returns a handle for module n. It does not check that the module exists.
func (s *Slot) Module(n int) *Module { return &Module{slot: s, num: n} }

// Modules returns the modules that exist, in number order.
func (s *Slot) Modules() []*Module {
	n := s.NumModules()
	if n <= 0 {
		return nil
	}
	mods := make([]*Module, 0, n)
	for i := 0; i < n; i++ {
		m := s.Module(i)
		if m.Exists() {
			mods = append(mods, m)
		}
	}
	return mods
}

func (s *Slot) FindModule(name string) (*Module, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	n := s.b().FindModule(s.num, name)
	if n < 0 {
		return nil, fmt.Errorf("%w: module %q", ErrNotFound, name)
	}
	return s.Module(n), nil
}

// NewModule creates a module of type typ, e.g. "Generator" or "Analog generator".
// The project should be locked.
func (s *Slot) NewModule(typ, name string) (*Module, error) {
	return s.NewModuleAt(typ, name, 512, 512, 0)
}

// NewModuleAt creates a module at x, y on layer z.
func (s *Slot) NewModuleAt(typ, name string, x, y, z int) (*Module, error) {
	var n int
	if err := s.call("new_module", func(b Backend, slot int) int {
		n = b.NewModule(slot, typ, name, x, y, z)
		return n
	}); err != nil {
		return nil, err
	}
	return s.Module(n), nil
}

// LoadModule loads a .sunsynth, .xi, .wav or similar file as a new module.
func (s *Slot) LoadModule(path string, x, y, z int) (*Module, error) {
	var n int
	if err := s.call("load_module", func(b Backend, slot int) int {
		n = b.LoadModule(slot, path, x, y, z)
		return n
	}); err != nil {
		return nil, err
	}
	return s.Module(n), nil
}

func (s *Slot) LoadModuleFromMemory(data []byte, x, y, z int) (*Module, error) {
	var n int
	if err := s.call("load_module_from_memory", func(b Backend, slot int) int {
		n = b.LoadModuleFromMemory(slot, data, x, y, z)
		return n
	}); err != nil {
		return nil, err
	}
	return s.Module(n), nil
}

// NumPatterns returns the number of pattern slots, including removed ones.
func (s *Slot) NumPatterns() int { return s.b().GetNumberOfPatterns(s.num) }

// Pattern returns a handle for pattern n. It does not check that the pattern exists.
func (s *Slot) Pattern(n int) *Pattern { return &Pattern{slot: s, num: n} }

// Patterns returns the patterns that exist, in number order.
func (s *Slot) Patterns() []*Pattern {
	n := s.NumPatterns()
	if n <= 0 {
		return nil
	}
	pats := make([]*Pattern, 0, n)
	for i := 0; i < n; i++ {
		p := s.Pattern(i)
		if p.Exists() {
			pats = append(pats, p)
		}
	}
	return pats
}

func (s *Slot) FindPattern(name string) (*Pattern, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	n := s.b().FindPattern(s.num, name)
	if n < 0 {
		return nil, fmt.Errorf("%w: pattern %q", ErrNotFound, name)
	}
	return s.Pattern(n), nil
}

// PatternSpec describes a new pattern. Zero Tracks and Lines mean 4 and 32.
type PatternSpec struct {
	Name     string
	X, Y     int
	Tracks   int
	Lines    int
	IconSeed int
}

// NewPattern creates an empty pattern. The project should be locked.
func (s *Slot) NewPattern(spec PatternSpec) (*Pattern, error) {
	return s.newPattern(-1, spec)
}

// ClonePattern creates a pattern that shares src's data. Only the name and
// position of spec are used.
func (s *Slot) ClonePattern(src *Pattern, spec PatternSpec) (*Pattern, error) {
	return s.newPattern(src.num, spec)
}

func (s *Slot) newPattern(clone int, spec PatternSpec) (*Pattern, error) {
	if spec.Tracks <= 0 {
		spec.Tracks = 4
	}
	if spec.Lines <= 0 {
		spec.Lines = 32
	}
	var n int
	if err := s.call("new_pattern", func(b Backend, slot int) int {
		n = b.NewPattern(slot, clone, spec.X, spec.Y, spec.Tracks, spec.Lines, spec.IconSeed, spec.Name)
		return n
	}); err != nil {
		return nil, err
	}
	return s.Pattern(n), nil
}
