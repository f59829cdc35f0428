// Package audio drives a SunVox engine created with the user audio callback:
// live output through oto and offline rendering to WAV.
package audio

import (
	"errors"
	"sync"
	"unsafe"
)

// Source renders interleaved float32 frames. *sunvox.Engine implements it.
type Source interface {
	AudioCallbackFloat32(buf []float32, latency int, outTime uint32) (bool, error)
}

// Int16Source renders interleaved int16 frames. *sunvox.Engine implements it.
type Int16Source interface {
	AudioCallbackInt16(buf []int16, latency int, outTime uint32) (bool, error)
}

// ErrNoSource is returned by Output.Start without a source.
var ErrNoSource = errors.New("audio: no source")

// Reader exposes a Source as a stream of little-endian float32 PCM bytes.
type Reader struct {
	mu        sync.Mutex
	src       Source
	sampleBuf []float32 // reused between reads
	err       error
}

// NewReader returns a Reader pulling from src.
func NewReader(src Source) *Reader {
	return &Reader{src: src, sampleBuf: make([]float32, 4096)}
}

// Read fills p with whole samples. It never blocks; once the source fails
// it keeps returning silence and Err reports the failure.
func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	numSamples := len(p) / 4
	if numSamples == 0 {
		return 0, nil
	}
	if len(r.sampleBuf) < numSamples {
		r.sampleBuf = make([]float32, numSamples)
	}
	samples := r.sampleBuf[:numSamples]

	if r.src == nil || r.err != nil {
		clear(samples)
	} else if _, err := r.src.AudioCallbackFloat32(samples, 0, 0); err != nil {
		r.err = err
		clear(samples)
	}

	n := numSamples * 4
	copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), n))
	return n, nil
}

// Err returns the first error reported by the source.
func (r *Reader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
