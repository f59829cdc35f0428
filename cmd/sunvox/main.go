// Command sunvox inspects, plays and renders SunVox projects.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/internal/config"
	"github.com/aspect-build/sunvox-go/internal/logging"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	libraryPath string
	sampleRate  int

	cfg    *config.Config
	logger *zap.Logger
)

// newEngine creates the engine for a command. Tests replace it.
var newEngine = sunvox.New

var errFileNotFound = errors.New("file not found")

var rootCmd = &cobra.Command{
	Use:   "sunvox",
	Short: "Command-line interface for the SunVox modular synthesizer",
	Long: `sunvox loads SunVox projects through the SunVox shared library.

It prints song, module and pattern information, plays songs on the
default audio device, renders them to WAV and plays a module live
from a MIDI keyboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if libraryPath != "" {
			cfg.Library.Path = libraryPath
		}
		if sampleRate > 0 {
			cfg.Engine.SampleRate = sampleRate
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "Path to the SunVox shared library (or set SUNVOX_LIBRARY)")
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", 0, "Engine sample rate in Hz")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(moduleCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openEngine starts the engine with the configured options and flags.
func openEngine(flags sunvox.InitFlags) (*sunvox.Engine, error) {
	opts := cfg.EngineOptions()
	opts.Flags = flags
	opts.Logger = logger
	e, err := newEngine(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}
	logger.Debug("engine started",
		zap.Stringer("version", e.Version()),
		zap.Int("sample_rate", e.SampleRate()),
		zap.Stringer("flags", e.Flags()))
	return e, nil
}

// openProject starts the engine and loads path into slot 0. The caller
// closes the engine.
func openProject(path string, flags sunvox.InitFlags) (*sunvox.Engine, *sunvox.Slot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", errFileNotFound, path)
	}
	e, err := openEngine(flags)
	if err != nil {
		return nil, nil, err
	}
	slot, err := e.OpenSlot(0)
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	if err := slot.Load(path); err != nil {
		e.Close()
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debug("project loaded", zap.String("path", path), zap.String("name", slot.Name()))
	return e, slot, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
