package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/internal/audio"
)

var (
	playDuration float64
	playLine     int
	playVolume   int
	playBackend  string
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a project",
	Long: `Plays a project on the default audio device until the duration
elapses, the song ends, or Ctrl+C is pressed.

With --backend oto the engine renders through the user audio callback
and the audio is played by oto instead of the engine's own driver.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64VarP(&playDuration, "duration", "d", 0, "Maximum playback duration in seconds")
	playCmd.Flags().IntVarP(&playLine, "line", "l", -1, "Start playback from this line")
	playCmd.Flags().IntVarP(&playVolume, "volume", "v", -1, "Playback volume 0-256 (default from config)")
	playCmd.Flags().StringVar(&playBackend, "backend", "", "Audio backend: engine or oto (default from config)")
}

// startOutput plays the engine through oto when it was created with the
// user audio callback. The returned stop function is always safe to call.
func startOutput(e *sunvox.Engine) (func(), error) {
	if !e.Flags().Has(sunvox.FlagUserAudioCallback) {
		return func() {}, nil
	}
	out, err := audio.NewOutput(e.SampleRate(), e.Channels(), cfg.AudioBufferDuration())
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	if err := out.Start(e); err != nil {
		return nil, err
	}
	return func() {
		if err := out.Close(); err != nil {
			logger.Warn("audio output close failed", zap.Error(err))
		}
		if err := out.Err(); err != nil {
			logger.Warn("audio callback failed", zap.Error(err))
		}
	}, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playBackend != "" {
		cfg.Audio.Backend = playBackend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	total := slot.Duration()
	limit := total
	if playDuration > 0 {
		if d := time.Duration(playDuration * float64(time.Second)); d < total {
			limit = d
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Playing: %s\n", slot.Name())
	fmt.Fprintf(out, "Duration: %.2fs (total: %.2fs)\n", limit.Seconds(), total.Seconds())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	if playLine >= 0 {
		if err := slot.Rewind(playLine); err != nil {
			return err
		}
	}
	vol := playVolume
	if vol < 0 {
		vol = cfg.Player.Volume
	}
	if err := slot.SetVolume(vol); err != nil {
		return err
	}

	stopOutput, err := startOutput(e)
	if err != nil {
		return err
	}
	defer stopOutput()

	ctx, cancel := signalContext()
	defer cancel()

	if err := slot.Play(); err != nil {
		return err
	}
	interrupted := waitPlayback(ctx, slot, limit, cfg.PollInterval())
	if err := slot.Stop(); err != nil {
		return err
	}
	if interrupted {
		fmt.Fprintln(out, "\nStopped")
	}
	return nil
}

// waitPlayback blocks until limit elapses, the song stops at its end with
// autostop set, or ctx is done. It reports whether ctx ended the wait.
func waitPlayback(ctx context.Context, slot *sunvox.Slot, limit, poll time.Duration) bool {
	deadline := time.NewTimer(limit)
	defer deadline.Stop()
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return true
		case <-deadline.C:
			return false
		case <-ticker.C:
			if !slot.IsPlaying() && slot.Autostop() {
				logger.Debug("song ended", zap.Int("line", slot.CurrentLine()))
				return false
			}
		}
	}
}
