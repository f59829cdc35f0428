package sunvox

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized is returned by New while another Engine is open.
	ErrAlreadyInitialized = errors.New("sunvox: engine already initialized")
	// ErrNotInitialized is returned by calls on a closed Engine.
	ErrNotInitialized = errors.New("sunvox: engine not initialized")
	ErrSlotClosed     = errors.New("sunvox: slot closed")
	ErrSlotInUse      = errors.New("sunvox: slot already open")
	ErrNotFound       = errors.New("sunvox: not found")
	// ErrCallbackMode is returned by the audio callbacks when the engine
	// drives its own audio device.
	ErrCallbackMode = errors.New("sunvox: engine not initialized with FlagUserAudioCallback")
	// ErrSampleFormat is returned when the callback buffer type does not
	// match the sample format the engine was initialized with.
	ErrSampleFormat = errors.New("sunvox: sample format mismatch")
)

// Error is a failed engine call. Code is the negative value the engine returned.
type Error struct {
	Op   string
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("sunvox: %s failed (code %d)", e.Op, e.Code)
}

// IsEngineError reports whether err wraps an *Error.
func IsEngineError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
