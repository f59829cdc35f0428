package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/internal/audio"
)

var (
	renderOutput   string
	renderDuration float64
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a project to a 16-bit WAV file",
	Long: `Renders a project offline, faster than real time, until the song
ends or the duration is reached.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output WAV file (default: project name with .wav)")
	renderCmd.Flags().Float64VarP(&renderDuration, "duration", "d", 0, "Maximum duration in seconds (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	flags := cfg.InitFlags()&^sunvox.FlagAudioFloat32 |
		sunvox.FlagUserAudioCallback | sunvox.FlagAudioInt16 | sunvox.FlagOffline
	e, slot, err := openProject(args[0], flags)
	if err != nil {
		return err
	}
	defer e.Close()

	output := renderOutput
	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".wav"
	}

	limit := cfg.RenderMaxDuration()
	if renderDuration > 0 {
		limit = time.Duration(renderDuration * float64(time.Second))
	}
	maxFrames := int(limit.Seconds() * float64(e.SampleRate()))

	if err := slot.SetAutostop(true); err != nil {
		return err
	}
	if err := slot.PlayFromBeginning(); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	frames, err := audio.RenderWAV(ctx, e, f, audio.RenderOptions{
		SampleRate:  e.SampleRate(),
		Channels:    e.Channels(),
		BlockFrames: cfg.Render.BlockFrames,
		MaxFrames:   maxFrames,
		Done:        func() bool { return !slot.IsPlaying() },
	})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	seconds := float64(frames) / float64(e.SampleRate())
	logger.Debug("render finished",
		zap.String("output", output),
		zap.Int("frames", frames),
		zap.Duration("elapsed", time.Since(start)))
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s: %.2fs, %d Hz, %d channels\n",
		output, seconds, e.SampleRate(), e.Channels())
	return nil
}
