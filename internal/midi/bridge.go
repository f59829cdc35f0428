// Package midi plays a SunVox module from a MIDI keyboard.
package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"

	sunvox "github.com/aspect-build/sunvox-go"
)

// Tracks is the number of event tracks a slot accepts.
const Tracks = 16

// Sink receives translated events. *sunvox.Slot implements it.
type Sink interface {
	SendEvent(track int, n sunvox.Note) error
}

// Mapping selects what incoming messages drive.
type Mapping struct {
	Module    int // target module number
	Channel   int // MIDI channel 0..15, -1 for all
	Transpose int // semitones added to every note
	// Controllers maps CC numbers to controller numbers of Module.
	// When nil, CC n drives controller n.
	Controllers map[uint8]int
}

type voice struct {
	key    uint8 // MIDI key
	active bool
	age    uint64
}

// Bridge turns MIDI messages into SunVox events, one track per held key.
type Bridge struct {
	mu      sync.Mutex
	sink    Sink
	mapping Mapping
	voices  [Tracks]voice
	clock   uint64
	logger  *zap.Logger
}

func NewBridge(sink Sink, mapping Mapping, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{sink: sink, mapping: mapping, logger: logger}
}

// Handle translates one message. Messages on other channels and message
// types without a SunVox equivalent are ignored.
func (b *Bridge) Handle(msg gomidi.Message) error {
	var ch, key, vel, cc, val uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if !b.accepts(ch) {
			return nil
		}
		return b.noteOn(key, vel)
	case msg.GetNoteEnd(&ch, &key):
		if !b.accepts(ch) {
			return nil
		}
		return b.noteOff(key)
	case msg.GetControlChange(&ch, &cc, &val):
		if !b.accepts(ch) {
			return nil
		}
		return b.controlChange(cc, val)
	}
	return nil
}

func (b *Bridge) accepts(ch uint8) bool {
	return b.mapping.Channel < 0 || int(ch) == b.mapping.Channel
}

// Note converts a MIDI key to a SunVox note number (1..127).
func Note(key uint8, transpose int) (uint8, bool) {
	n := int(key) + 1 + transpose
	if n < 1 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}

// Velocity converts a MIDI velocity (1..127) to SunVox range (1..129).
func Velocity(vel uint8) uint8 {
	return uint8(1 + int(vel)*128/127)
}

func (b *Bridge) noteOn(key, vel uint8) error {
	note, ok := Note(key, b.mapping.Transpose)
	if !ok {
		return nil
	}

	b.mu.Lock()
	track := b.allocate(key)
	b.mu.Unlock()

	return b.send(track, sunvox.Note{
		Note:   note,
		Vel:    Velocity(vel),
		Module: uint16(b.mapping.Module + 1),
	})
}

func (b *Bridge) noteOff(key uint8) error {
	b.mu.Lock()
	track := -1
	for i := range b.voices {
		if b.voices[i].active && b.voices[i].key == key {
			b.voices[i].active = false
			track = i
			break
		}
	}
	b.mu.Unlock()

	if track < 0 {
		return nil
	}
	return b.send(track, sunvox.Note{Note: sunvox.NoteOff, Module: uint16(b.mapping.Module + 1)})
}

func (b *Bridge) controlChange(cc, val uint8) error {
	ctl := int(cc)
	if b.mapping.Controllers != nil {
		var ok bool
		if ctl, ok = b.mapping.Controllers[cc]; !ok {
			return nil
		}
	}
	return b.send(0, sunvox.Note{
		Module: uint16(b.mapping.Module + 1),
		Ctl:    uint16(ctl+1) << 8,
		CtlVal: uint16(int(val) * 0x8000 / 127),
	})
}

// allocate returns the track for key: the one already holding it, a free
// one, or the oldest. Must be called with mu held.
func (b *Bridge) allocate(key uint8) int {
	b.clock++
	track := -1
	for i, v := range b.voices {
		if v.active && v.key == key {
			track = i
			break
		}
	}
	if track < 0 {
		for i, v := range b.voices {
			if !v.active {
				track = i
				break
			}
		}
	}
	if track < 0 {
		track = 0
		for i, v := range b.voices {
			if v.age < b.voices[track].age {
				track = i
			}
		}
	}
	b.voices[track] = voice{key: key, active: true, age: b.clock}
	return track
}

// Active returns the number of held keys.
func (b *Bridge) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, v := range b.voices {
		if v.active {
			n++
		}
	}
	return n
}

// Release sends note off on every track still holding a key.
func (b *Bridge) Release() error {
	b.mu.Lock()
	var tracks []int
	for i := range b.voices {
		if b.voices[i].active {
			b.voices[i].active = false
			tracks = append(tracks, i)
		}
	}
	b.mu.Unlock()

	for _, t := range tracks {
		if err := b.send(t, sunvox.Note{Note: sunvox.NoteOff, Module: uint16(b.mapping.Module + 1)}); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bridge) send(track int, n sunvox.Note) error {
	if err := b.sink.SendEvent(track, n); err != nil {
		return fmt.Errorf("midi: track %d: %w", track, err)
	}
	b.logger.Debug("event", zap.Int("track", track), zap.Stringer("note", n))
	return nil
}
