// Package sunvoxtest provides an in-memory implementation of sunvox.Backend.
//
// The fake models slots, songs, modules, controllers, patterns and playback
// closely enough for the high-level API, the audio drivers and the CLI to be
// tested without the SunVox library. Audio is a deterministic square wave and
// the play position advances only through AudioCallback or Advance.
package sunvoxtest

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/core"
)

// Version is what Init returns: engine 2.1.2.
const Version = 0x020102

// MaxSlots is the number of slots the fake engine provides.
const MaxSlots = 16

var _ sunvox.Backend = (*Fake)(nil)

// Event is an event received through SendEvent.
type Event struct {
	Track int
	Note  sunvox.Note
	// Time is the timestamp set with SetEventT, 0 when unset.
	Time uint32
}

type controller struct {
	ControllerSpec
}

type module struct {
	spec    ModuleSpec
	ctls    []*controller
	curves  map[int][]float32
	samples map[int]string
	params  map[[2]int]int
	loaded  string
}

type cells struct {
	tracks int
	lines  int
	notes  []sunvox.Note
}

type pattern struct {
	name  string
	x, y  int
	muted bool
	data  *cells
}

type song struct {
	name     string
	bpm      int
	tpl      int
	modules  []*module
	patterns []*pattern
}

type slot struct {
	song     *song
	locks    int
	playing  bool
	paused   bool
	stopped  bool
	autostop bool
	volume   int
	frame    uint64
	eventT   uint32
	events   []Event
}

// Fake is an in-memory SunVox engine. It is safe for concurrent use.
type Fake struct {
	mu          sync.Mutex
	loadErr     error
	initialized bool
	sampleRate  int
	channels    int
	flags       uint32
	slots       [MaxSlots]*slot
	start       time.Time
	log         strings.Builder
	phase       uint64
}

// New returns an uninitialized fake engine.
func New() *Fake {
	return &Fake{start: time.Now()}
}

// SetLoadError makes LoadLibrary fail with err.
func (f *Fake) SetLoadError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErr = err
}

// Initialized reports whether Init has been called without a matching Deinit.
func (f *Fake) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// Events returns the events sent to a slot.
func (f *Fake) Events(n int) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil {
		return nil
	}
	return append([]Event(nil), s.events...)
}

// LockDepth returns how many times a slot is currently locked.
func (f *Fake) LockDepth(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s := f.slot(n); s != nil {
		return s.locks
	}
	return 0
}

// Project returns the current project of a slot.
func (f *Fake) Project(n int) (Project, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil {
		return Project{}, false
	}
	return s.song.project(), true
}

// Advance moves every playing slot forward by frames.
func (f *Fake) Advance(frames int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advance(frames)
}

func (f *Fake) advance(frames int) {
	for _, s := range f.slots {
		if s == nil || !s.playing || s.paused {
			continue
		}
		s.frame += uint64(frames)
		length := s.song.lengthFrames(f.sampleRate)
		if length == 0 || s.frame < length {
			continue
		}
		if s.autostop {
			s.frame = length
			s.playing = false
		} else {
			s.frame %= length
		}
	}
}

func (f *Fake) logf(format string, args ...any) {
	fmt.Fprintf(&f.log, format+"\n", args...)
}

// slot returns the open slot n or nil.
func (f *Fake) slot(n int) *slot {
	if !f.initialized || n < 0 || n >= MaxSlots {
		return nil
	}
	return f.slots[n]
}

func (f *Fake) module(n, mod int) *module {
	s := f.slot(n)
	if s == nil || mod < 0 || mod >= len(s.song.modules) {
		return nil
	}
	return s.song.modules[mod]
}

func (f *Fake) ctl(n, mod, ctl int) *controller {
	m := f.module(n, mod)
	if m == nil || ctl < 0 || ctl >= len(m.ctls) {
		return nil
	}
	return m.ctls[ctl]
}

func (f *Fake) pattern(n, pat int) *pattern {
	s := f.slot(n)
	if s == nil || pat < 0 || pat >= len(s.song.patterns) {
		return nil
	}
	return s.song.patterns[pat]
}

func (f *Fake) LoadLibrary(string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadErr
}

func (f *Fake) Init(config string, sampleRate, channels int, flags uint32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initialized {
		return -1
	}
	f.initialized = true
	f.sampleRate = sampleRate
	f.channels = channels
	f.flags = flags
	f.logf("init: config %q, %d Hz, %d channels, flags 0x%x", config, sampleRate, channels, flags)
	return Version
}

func (f *Fake) Deinit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return -1
	}
	f.initialized = false
	f.slots = [MaxSlots]*slot{}
	f.logf("deinit")
	return 0
}

func (f *Fake) GetSampleRate() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return -1
	}
	return f.sampleRate
}

func (f *Fake) UpdateInput() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return -1
	}
	return 0
}

// sample returns the next output value in -1..1.
func (f *Fake) sample() float32 {
	var level float32
	for _, s := range f.slots {
		if s != nil && s.playing && !s.paused {
			level += 0.25 * float32(s.volume) / 256
		}
	}
	f.phase++
	if (f.phase/64)%2 == 1 {
		level = -level
	}
	return level
}

func (f *Fake) AudioCallbackInt16(buf []int16, frames, latency int, outTime uint32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized || f.flags&core.InitFlagUserAudioCallback == 0 {
		return 0
	}
	sound := 0
	for i := 0; i < frames && (i+1)*f.channels <= len(buf); i++ {
		v := int16(f.sample() * 32767)
		for c := 0; c < f.channels; c++ {
			buf[i*f.channels+c] = v
		}
		if v != 0 {
			sound = 1
		}
	}
	f.advance(frames)
	return sound
}

func (f *Fake) AudioCallbackFloat32(buf []float32, frames, latency int, outTime uint32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized || f.flags&core.InitFlagUserAudioCallback == 0 {
		return 0
	}
	sound := 0
	for i := 0; i < frames && (i+1)*f.channels <= len(buf); i++ {
		v := f.sample()
		for c := 0; c < f.channels; c++ {
			buf[i*f.channels+c] = v
		}
		if v != 0 {
			sound = 1
		}
	}
	f.advance(frames)
	return sound
}

func (f *Fake) GetTicks() uint32 {
	return uint32(time.Since(f.start) / time.Microsecond)
}

func (f *Fake) GetTicksPerSecond() uint32 { return 1000000 }

func (f *Fake) GetLog(size int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.log.String()
	if size > 0 && len(s) > size {
		s = s[len(s)-size:]
	}
	return s
}

func (f *Fake) OpenSlot(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized || n < 0 || n >= MaxSlots || f.slots[n] != nil {
		return -1
	}
	f.slots[n] = &slot{song: newSong(), volume: 256}
	f.logf("slot %d opened", n)
	return 0
}

func (f *Fake) CloseSlot(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot(n) == nil {
		return -1
	}
	f.slots[n] = nil
	f.logf("slot %d closed", n)
	return 0
}

func (f *Fake) LockSlot(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil {
		return -1
	}
	s.locks++
	return 0
}

func (f *Fake) UnlockSlot(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil || s.locks == 0 {
		return -1
	}
	s.locks--
	return 0
}

func (f *Fake) LoadProject(n int, name string) int {
	data, err := os.ReadFile(name)
	if err != nil {
		f.mu.Lock()
		f.logf("load %s: %v", name, err)
		f.mu.Unlock()
		return -1
	}
	return f.LoadFromMemory(n, data)
}

func (f *Fake) LoadFromMemory(n int, data []byte) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil {
		return -1
	}
	p, err := ParseProject(data)
	if err != nil || len(p.Modules) == 0 {
		f.logf("slot %d: not a project", n)
		return -1
	}
	s.song = songFrom(p)
	s.playing, s.paused, s.stopped = false, false, false
	s.frame = 0
	return 0
}

func (f *Fake) Save(n int, name string) int {
	data := f.SaveToMemory(n)
	if data == nil {
		return -1
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return -1
	}
	return 0
}

func (f *Fake) SaveToMemory(n int) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil {
		return nil
	}
	data, err := s.song.project().Marshal()
	if err != nil {
		return nil
	}
	return data
}

// withSlot runs fn on open slot n, returning -1 when it is not open.
func (f *Fake) withSlot(n int, fn func(s *slot) int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(n)
	if s == nil {
		return -1
	}
	return fn(s)
}

func (f *Fake) Play(n int) int {
	return f.withSlot(n, func(s *slot) int {
		s.playing, s.paused, s.stopped = true, false, false
		return 0
	})
}

func (f *Fake) PlayFromBeginning(n int) int {
	return f.withSlot(n, func(s *slot) int {
		s.frame = 0
		s.playing, s.paused, s.stopped = true, false, false
		return 0
	})
}

func (f *Fake) Stop(n int) int {
	return f.withSlot(n, func(s *slot) int {
		if !s.playing && s.stopped {
			s.frame = 0
		}
		s.playing, s.paused, s.stopped = false, false, true
		return 0
	})
}

func (f *Fake) Pause(n int) int {
	return f.withSlot(n, func(s *slot) int { s.paused = true; return 0 })
}

func (f *Fake) Resume(n int) int {
	return f.withSlot(n, func(s *slot) int { s.paused = false; return 0 })
}

func (f *Fake) SyncResume(n int) int {
	return f.withSlot(n, func(s *slot) int { s.paused = false; return 0 })
}

func (f *Fake) SetAutostop(n, autostop int) int {
	return f.withSlot(n, func(s *slot) int { s.autostop = autostop != 0; return 0 })
}

func (f *Fake) GetAutostop(n int) int {
	return f.withSlot(n, func(s *slot) int {
		if s.autostop {
			return 1
		}
		return 0
	})
}

func (f *Fake) EndOfSong(n int) int {
	return f.withSlot(n, func(s *slot) int {
		if s.playing {
			return 0
		}
		return 1
	})
}

func (f *Fake) Rewind(n, line int) int {
	return f.withSlot(n, func(s *slot) int {
		if line < 0 {
			return -1
		}
		s.frame = uint64(line) * s.song.framesPerLine(f.sampleRate)
		return 0
	})
}

func (f *Fake) Volume(n, vol int) int {
	return f.withSlot(n, func(s *slot) int {
		prev := s.volume
		if vol >= 0 {
			s.volume = min(vol, 256)
		}
		return prev
	})
}

func (f *Fake) SetEventT(n, set, t int) int {
	return f.withSlot(n, func(s *slot) int {
		if set == 0 {
			s.eventT = 0
		} else {
			s.eventT = uint32(t)
		}
		return 0
	})
}

func (f *Fake) SendEvent(n, track, note, vel, mod, ctl, ctlVal int) int {
	return f.withSlot(n, func(s *slot) int {
		if track < 0 || track >= 16 {
			return -1
		}
		if mod > 0 && (mod > len(s.song.modules) || s.song.modules[mod-1] == nil) {
			return -1
		}
		s.events = append(s.events, Event{
			Track: track,
			Note: sunvox.Note{
				Note:   uint8(note),
				Vel:    uint8(vel),
				Module: uint16(mod),
				Ctl:    uint16(ctl),
				CtlVal: uint16(ctlVal),
			},
			Time: s.eventT,
		})
		return 0
	})
}

func (f *Fake) GetCurrentLine(n int) int {
	return f.withSlot(n, func(s *slot) int {
		return int(s.frame / s.song.framesPerLine(f.sampleRate))
	})
}

func (f *Fake) GetCurrentLine2(n int) int {
	return f.withSlot(n, func(s *slot) int {
		return int(s.frame * 32 / s.song.framesPerLine(f.sampleRate))
	})
}

func (f *Fake) GetCurrentSignalLevel(n, channel int) int {
	return f.withSlot(n, func(s *slot) int {
		if channel < 0 || channel >= f.channels {
			return -1
		}
		if !s.playing || s.paused {
			return 0
		}
		return s.volume * 255 / 256 / 4
	})
}

func (f *Fake) GetSongName(n int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s := f.slot(n); s != nil {
		return s.song.name
	}
	return ""
}

func (f *Fake) SetSongName(n int, name string) int {
	return f.withSlot(n, func(s *slot) int { s.song.name = name; return 0 })
}

func (f *Fake) GetSongBPM(n int) int {
	return f.withSlot(n, func(s *slot) int { return s.song.bpm })
}

func (f *Fake) GetSongTPL(n int) int {
	return f.withSlot(n, func(s *slot) int { return s.song.tpl })
}

func (f *Fake) GetSongLengthFrames(n int) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s := f.slot(n); s != nil {
		return uint32(s.song.lengthFrames(f.sampleRate))
	}
	return 0
}

func (f *Fake) GetSongLengthLines(n int) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s := f.slot(n); s != nil {
		return uint32(s.song.lengthLines())
	}
	return 0
}

func (f *Fake) GetTimeMap(n, startLine int, dest []uint32, flags int) int {
	return f.withSlot(n, func(s *slot) int {
		if startLine < 0 {
			return -1
		}
		fpl := s.song.framesPerLine(f.sampleRate)
		for i := range dest {
			switch flags {
			case core.TimeMapSpeed:
				dest[i] = uint32(s.song.bpm) | uint32(s.song.tpl)<<16
			case core.TimeMapFramecnt:
				dest[i] = uint32(uint64(startLine+i) * fpl)
			default:
				return -1
			}
		}
		return 0
	})
}
