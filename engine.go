package sunvox

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// The engine keeps global state; only one may be initialized per process.
var initialized atomic.Bool

// logTail is how much of the engine log is attached to failure messages.
const logTail = 1024

// Options configures New.
type Options struct {
	// LibraryPath is the engine shared library. Empty tries the platform defaults.
	LibraryPath string
	// Config is the engine config string, e.g. "buffer=1024|audiodriver=alsa".
	Config     string
	SampleRate int // default 44100
	Channels   int // default 2
	Flags      InitFlags
	Logger     *zap.Logger
	// Backend defaults to Native().
	Backend Backend
}

// Engine is an initialized SunVox engine.
type Engine struct {
	backend    Backend
	log        *zap.Logger
	version    VersionInfo
	sampleRate int
	channels   int
	flags      InitFlags

	mu sync.Mutex
	// slots holds each open slot's flag rather than the *Slot, so a leaked
	// Engine is not part of a cycle and its finalizer can run.
	slots  map[int]*atomic.Bool
	closed bool
}

// New loads the engine library and initializes the engine.
func New(opts Options) (*Engine, error) {
	if !initialized.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Channels <= 0 {
		opts.Channels = 2
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Backend == nil {
		opts.Backend = Native()
	}

	b := opts.Backend
	if err := b.LoadLibrary(opts.LibraryPath); err != nil {
		initialized.Store(false)
		return nil, fmt.Errorf("sunvox: load library: %w", err)
	}
	v := b.Init(opts.Config, opts.SampleRate, opts.Channels, uint32(opts.Flags))
	if v < 0 {
		initialized.Store(false)
		return nil, &Error{Op: "init", Code: v}
	}

	e := &Engine{
		backend:    b,
		log:        opts.Logger,
		version:    decodeVersion(v),
		sampleRate: opts.SampleRate,
		channels:   opts.Channels,
		flags:      opts.Flags,
		slots:      make(map[int]*atomic.Bool),
	}
	if sr := b.GetSampleRate(); sr > 0 {
		e.sampleRate = sr
	}
	runtime.SetFinalizer(e, (*Engine).Close)

	e.log.Debug("engine initialized",
		zap.Stringer("version", e.version),
		zap.Int("sample_rate", e.sampleRate),
		zap.Int("channels", e.channels),
		zap.Stringer("flags", e.flags))
	return e, nil
}

// Close closes every open slot and deinitializes the engine.
// Calling Close more than once is safe.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	slots := make(map[int]*atomic.Bool, len(e.slots))
	for n, open := range e.slots {
		slots[n] = open
	}
	e.mu.Unlock()

	for n, open := range slots {
		if err := e.closeSlot(n, open); err != nil {
			e.log.Warn("close slot", zap.Int("slot", n), zap.Error(err))
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	runtime.SetFinalizer(e, nil)
	code := e.backend.Deinit()
	initialized.Store(false)
	e.log.Debug("engine deinitialized")
	if code < 0 {
		return &Error{Op: "deinit", Code: code}
	}
	return nil
}

// Backend returns the backend the engine was created with.
func (e *Engine) Backend() Backend { return e.backend }

// Version returns the engine version.
func (e *Engine) Version() VersionInfo { return e.version }

// SampleRate returns the sample rate the engine runs at.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Channels returns the number of output channels.
func (e *Engine) Channels() int { return e.channels }

// Flags returns the flags the engine was initialized with.
func (e *Engine) Flags() InitFlags { return e.flags }

// Ticks returns the engine's current system tick counter.
func (e *Engine) Ticks() uint32 { return e.backend.GetTicks() }

// TicksPerSecond returns the rate of the tick counter.
func (e *Engine) TicksPerSecond() uint32 { return e.backend.GetTicksPerSecond() }

// Log returns up to size bytes of the engine's debug log.
func (e *Engine) Log(size int) string { return e.backend.GetLog(size) }

// UpdateInput re-reads the audio input device settings.
func (e *Engine) UpdateInput() error {
	if err := e.ready(); err != nil {
		return err
	}
	return e.check("update_input", e.backend.UpdateInput())
}

// AudioCallbackInt16 fills buf with interleaved int16 frames. The engine
// must have been created with FlagUserAudioCallback and FlagAudioInt16.
// It reports whether the output contains sound.
func (e *Engine) AudioCallbackInt16(buf []int16, latency int, outTime uint32) (bool, error) {
	if err := e.callbackReady(FlagAudioInt16); err != nil {
		return false, err
	}
	r := e.backend.AudioCallbackInt16(buf, len(buf)/e.channels, latency, outTime)
	return r != 0, nil
}

// AudioCallbackFloat32 fills buf with interleaved float32 frames. The engine
// must have been created with FlagUserAudioCallback and FlagAudioFloat32.
func (e *Engine) AudioCallbackFloat32(buf []float32, latency int, outTime uint32) (bool, error) {
	if err := e.callbackReady(FlagAudioFloat32); err != nil {
		return false, err
	}
	r := e.backend.AudioCallbackFloat32(buf, len(buf)/e.channels, latency, outTime)
	return r != 0, nil
}

func (e *Engine) callbackReady(format InitFlags) error {
	if err := e.ready(); err != nil {
		return err
	}
	if !e.flags.Has(FlagUserAudioCallback) {
		return ErrCallbackMode
	}
	if !e.flags.Has(format) {
		return ErrSampleFormat
	}
	return nil
}

// OpenSlot opens slot n (0..15).
func (e *Engine) OpenSlot(n int) (*Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrNotInitialized
	}
	if _, ok := e.slots[n]; ok {
		return nil, fmt.Errorf("%w: %d", ErrSlotInUse, n)
	}
	if code := e.backend.OpenSlot(n); code < 0 {
		return nil, e.fail("open_slot", code)
	}
	s := &Slot{engine: e, num: n, open: new(atomic.Bool)}
	s.open.Store(true)
	e.slots[n] = s.open
	e.log.Debug("slot opened", zap.Int("slot", n))
	return s, nil
}

// closeSlot closes slot n once; open is shared with the Slot handle.
func (e *Engine) closeSlot(n int, open *atomic.Bool) error {
	if !open.CompareAndSwap(true, false) {
		return nil
	}
	e.mu.Lock()
	delete(e.slots, n)
	e.mu.Unlock()
	code := e.backend.CloseSlot(n)
	e.log.Debug("slot closed", zap.Int("slot", n))
	return e.check("close_slot", code)
}

func (e *Engine) ready() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrNotInitialized
	}
	return nil
}

func (e *Engine) check(op string, code int) error {
	if code < 0 {
		return e.fail(op, code)
	}
	return nil
}

// fail builds an *Error and logs it with the tail of the engine log.
func (e *Engine) fail(op string, code int) error {
	err := &Error{Op: op, Code: code}
	if ce := e.log.Check(zap.DebugLevel, "engine call failed"); ce != nil {
		ce.Write(zap.String("op", op), zap.Int("code", code),
			zap.String("engine_log", e.backend.GetLog(logTail)))
	}
	return err
}
