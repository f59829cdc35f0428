//go:build !headless

package audio

import (
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process.
var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error
)

// Output plays a Source on the default audio device.
type Output struct {
	player  *oto.Player
	reader  *Reader
	started bool
	mutex   sync.Mutex
}

// NewOutput opens the audio device. Later calls reuse the first device
// configuration.
func NewOutput(sampleRate, channels int, bufferSize time.Duration) (*Output, error) {
	ctxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		}
		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(op)
		if ctxErr == nil {
			<-ready
		}
	})
	if ctxErr != nil {
		return nil, ctxErr
	}
	return &Output{}, nil
}

// Start begins pulling audio from src.
func (o *Output) Start(src Source) error {
	if src == nil {
		return ErrNoSource
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started {
		return nil
	}
	o.reader = NewReader(src)
	o.player = ctx.NewPlayer(o.reader)
	o.player.Play()
	o.started = true
	return nil
}

// Stop stops playback. Start may be called again.
func (o *Output) Stop() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !o.started {
		return nil
	}
	o.started = false
	err := o.player.Close()
	o.player = nil
	return err
}

func (o *Output) Close() error {
	return o.Stop()
}

func (o *Output) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}

// Err returns the first error the source reported during playback.
func (o *Output) Err() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.reader == nil {
		return nil
	}
	return o.reader.Err()
}
