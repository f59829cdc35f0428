//go:build headless

package audio

import (
	"sync"
	"time"
)

// Output pulls a Source at real-time pace and discards the audio.
type Output struct {
	sampleRate int
	channels   int
	period     time.Duration
	reader     *Reader
	stop       chan struct{}
	done       chan struct{}
	started    bool
	mutex      sync.Mutex
}

func NewOutput(sampleRate, channels int, bufferSize time.Duration) (*Output, error) {
	if bufferSize <= 0 {
		bufferSize = 50 * time.Millisecond
	}
	return &Output{sampleRate: sampleRate, channels: channels, period: bufferSize}, nil
}

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
	o.stop = make(chan struct{})
	o.done = make(chan struct{})
	o.started = true

	frames := int(o.period.Seconds() * float64(o.sampleRate))
	buf := make([]byte, max(frames, 1)*o.channels*4)
	go func(r *Reader, stop, done chan struct{}) {
		defer close(done)
		t := time.NewTicker(o.period)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				_, _ = r.Read(buf)
			}
		}
	}(o.reader, o.stop, o.done)
	return nil
}

func (o *Output) Stop() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !o.started {
		return nil
	}
	o.started = false
	close(o.stop)
	<-o.done
	return nil
}

func (o *Output) Close() error {
	return o.Stop()
}

func (o *Output) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}

func (o *Output) Err() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.reader == nil {
		return nil
	}
	return o.reader.Err()
}
