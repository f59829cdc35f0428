package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	sunvox "github.com/aspect-build/sunvox-go"
)

// Config holds all sunvox CLI configuration.
type Config struct {
	// Engine library location
	Library LibraryConfig `yaml:"library"`

	// Engine initialization
	Engine EngineConfig `yaml:"engine"`

	// Audio output
	Audio AudioConfig `yaml:"audio"`

	// Interactive player and play command
	Player PlayerConfig `yaml:"player"`

	// Offline rendering
	Render RenderConfig `yaml:"render"`

	// MIDI input for the live command
	MIDI MIDIConfig `yaml:"midi"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LibraryConfig locates the SunVox shared library.
type LibraryConfig struct {
	Path string `yaml:"path"` // empty = platform default names
}

// EngineConfig is passed to the engine at init.
type EngineConfig struct {
	SampleRate    int    `yaml:"sample_rate"`
	Channels      int    `yaml:"channels"`
	Buffer        int    `yaml:"buffer"`       // device buffer in frames, 0 = engine default
	AudioDriver   string `yaml:"audio_driver"` // alsa, jack, pulseaudio, dsound, mmsound, asio...
	AudioDevice   string `yaml:"audio_device"`
	NoDebugOutput bool   `yaml:"no_debug_output"`
	OneThread     bool   `yaml:"one_thread"`
}

// AudioConfig selects who drives the audio device.
type AudioConfig struct {
	Backend    string `yaml:"backend"`     // engine, oto
	BufferSize string `yaml:"buffer_size"` // oto buffer duration
}

// PlayerConfig configures play and player.
type PlayerConfig struct {
	PollInterval string `yaml:"poll_interval"`
	Volume       int    `yaml:"volume"` // 0..256
}

// RenderConfig configures the render command.
type RenderConfig struct {
	BlockFrames int    `yaml:"block_frames"`
	MaxDuration string `yaml:"max_duration"`
}

// MIDIConfig configures the live command.
type MIDIConfig struct {
	Port      string `yaml:"port"`    // substring of the input port name, empty = first port
	Channel   int    `yaml:"channel"` // 0..15, -1 = all
	Transpose int    `yaml:"transpose"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`   // empty = stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			SampleRate: 44100,
			Channels:   2,
		},

		Audio: AudioConfig{
			Backend:    "engine",
			BufferSize: "50ms",
		},

		Player: PlayerConfig{
			PollInterval: "100ms",
			Volume:       256,
		},

		Render: RenderConfig{
			BlockFrames: 1024,
			MaxDuration: "10m",
		},

		MIDI: MIDIConfig{
			Channel: -1,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sunvox.yaml"
	}
	return filepath.Join(dir, "sunvox-go", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("SUNVOX_LIBRARY"); path != "" {
		c.Library.Path = path
	}
	if sr := os.Getenv("SUNVOX_SAMPLE_RATE"); sr != "" {
		if n, err := strconv.Atoi(sr); err == nil {
			c.Engine.SampleRate = n
		}
	}
	if drv := os.Getenv("SUNVOX_AUDIO_DRIVER"); drv != "" {
		c.Engine.AudioDriver = drv
	}
	if b := os.Getenv("SUNVOX_AUDIO_BACKEND"); b != "" {
		c.Audio.Backend = b
	}
	if lvl := os.Getenv("SUNVOX_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if port := os.Getenv("SUNVOX_MIDI_PORT"); port != "" {
		c.MIDI.Port = port
	}
}

// AudioBackends lists the supported audio backends.
var AudioBackends = []string{"engine", "oto"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.SampleRate < 8000 || c.Engine.SampleRate > 384000 {
		return fmt.Errorf("invalid sample rate: %d", c.Engine.SampleRate)
	}
	if c.Engine.Channels != 1 && c.Engine.Channels != 2 {
		return fmt.Errorf("invalid channel count: %d (valid: 1, 2)", c.Engine.Channels)
	}
	if !contains(AudioBackends, c.Audio.Backend) {
		return fmt.Errorf("invalid audio backend: %s (valid: %v)", c.Audio.Backend, AudioBackends)
	}
	if c.Player.Volume < 0 || c.Player.Volume > 256 {
		return fmt.Errorf("invalid volume: %d (valid: 0..256)", c.Player.Volume)
	}
	if c.Render.BlockFrames <= 0 {
		return fmt.Errorf("invalid render block size: %d", c.Render.BlockFrames)
	}
	if c.MIDI.Channel < -1 || c.MIDI.Channel > 15 {
		return fmt.Errorf("invalid MIDI channel: %d (valid: -1..15)", c.MIDI.Channel)
	}
	if !contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if !contains([]string{"console", "json"}, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// EngineString builds the engine config string, e.g. "buffer=1024|audiodriver=alsa".
func (c *Config) EngineString() string {
	var parts []string
	if c.Engine.Buffer > 0 {
		parts = append(parts, "buffer="+strconv.Itoa(c.Engine.Buffer))
	}
	if c.Engine.AudioDriver != "" {
		parts = append(parts, "audiodriver="+c.Engine.AudioDriver)
	}
	if c.Engine.AudioDevice != "" {
		parts = append(parts, "audiodevice="+c.Engine.AudioDevice)
	}
	return strings.Join(parts, "|")
}

// InitFlags returns the engine init flags for the configured audio backend.
// With the oto backend the engine renders float32 through the user callback.
func (c *Config) InitFlags() sunvox.InitFlags {
	var f sunvox.InitFlags
	if c.Audio.Backend == "oto" {
		f |= sunvox.FlagUserAudioCallback | sunvox.FlagAudioFloat32
	}
	if c.Engine.NoDebugOutput {
		f |= sunvox.FlagNoDebugOutput
	}
	if c.Engine.OneThread {
		f |= sunvox.FlagOneThread
	}
	return f
}

// EngineOptions returns engine options for this configuration.
func (c *Config) EngineOptions() sunvox.Options {
	return sunvox.Options{
		LibraryPath: c.Library.Path,
		Config:      c.EngineString(),
		SampleRate:  c.Engine.SampleRate,
		Channels:    c.Engine.Channels,
		Flags:       c.InitFlags(),
	}
}

// PollInterval returns how often play and player refresh the play position.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Player.PollInterval)
	if err != nil || d <= 0 {
		return 100 * time.Millisecond
	}
	return d
}

// AudioBufferDuration returns the oto buffer duration.
func (c *Config) AudioBufferDuration() time.Duration {
	d, err := time.ParseDuration(c.Audio.BufferSize)
	if err != nil || d <= 0 {
		return 50 * time.Millisecond
	}
	return d
}

// RenderMaxDuration returns the longest audio the render command writes.
func (c *Config) RenderMaxDuration() time.Duration {
	d, err := time.ParseDuration(c.Render.MaxDuration)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
