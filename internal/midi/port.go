package midi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"
)

// ErrNoPorts is returned when no MIDI input is available.
var ErrNoPorts = errors.New("midi: no input ports")

// Ports lists the names of the available input ports.
func Ports() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// FindPort returns the first input whose name contains name, ignoring case.
// An empty name selects the first port.
func FindPort(name string) (drivers.In, error) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, ErrNoPorts
	}
	if name == "" {
		return ins[0], nil
	}
	want := strings.ToLower(name)
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), want) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("midi: input %q not found", name)
}

// Listen feeds messages from in to b until ctx is done, then releases
// held notes.
func Listen(ctx context.Context, in drivers.In, b *Bridge) error {
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		if err := b.Handle(msg); err != nil {
			b.logger.Warn("dropped midi message", zap.Stringer("msg", msg), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("midi: open input: %w", err)
	}
	b.logger.Info("listening", zap.String("port", in.String()))

	<-ctx.Done()
	stop()
	return b.Release()
}
