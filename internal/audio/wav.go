package audio

import (
	"context"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// RenderOptions configures RenderWAV.
type RenderOptions struct {
	SampleRate  int
	Channels    int
	BlockFrames int // frames per callback, default 1024
	MaxFrames   int // stop after this many frames
	// Done is checked after every block; rendering stops when it returns true.
	Done func() bool
	// Progress receives the number of frames written so far.
	Progress func(frames int)
}

// RenderWAV pulls 16-bit audio from src and writes it to w as a WAV file.
// It returns the number of frames written.
func RenderWAV(ctx context.Context, src Int16Source, w io.WriteSeeker, opts RenderOptions) (int, error) {
	if opts.SampleRate <= 0 || opts.Channels <= 0 {
		return 0, fmt.Errorf("audio: invalid format %d Hz, %d channels", opts.SampleRate, opts.Channels)
	}
	if opts.MaxFrames <= 0 {
		return 0, errors.New("audio: render length not set")
	}
	if opts.BlockFrames <= 0 {
		opts.BlockFrames = 1024
	}

	enc := wav.NewEncoder(w, opts.SampleRate, 16, opts.Channels, 1)
	block := make([]int16, opts.BlockFrames*opts.Channels)
	data := make([]int, len(block))
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: opts.Channels, SampleRate: opts.SampleRate},
		SourceBitDepth: 16,
	}

	frames := 0
	var renderErr error
	for frames < opts.MaxFrames {
		if err := ctx.Err(); err != nil {
			renderErr = err
			break
		}
		n := min(opts.BlockFrames, opts.MaxFrames-frames)
		samples := block[:n*opts.Channels]
		if _, err := src.AudioCallbackInt16(samples, 0, 0); err != nil {
			renderErr = err
			break
		}
		for i, s := range samples {
			data[i] = int(s)
		}
		buf.Data = data[:len(samples)]
		if err := enc.Write(buf); err != nil {
			renderErr = fmt.Errorf("audio: write wav: %w", err)
			break
		}
		frames += n
		if opts.Progress != nil {
			opts.Progress(frames)
		}
		if opts.Done != nil && opts.Done() {
			break
		}
	}

	if err := enc.Close(); err != nil && renderErr == nil {
		renderErr = fmt.Errorf("audio: finish wav: %w", err)
	}
	return frames, renderErr
}
