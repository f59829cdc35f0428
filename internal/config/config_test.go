package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	sunvox "github.com/aspect-build/sunvox-go"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SUNVOX_LIBRARY", "SUNVOX_SAMPLE_RATE", "SUNVOX_AUDIO_DRIVER",
		"SUNVOX_AUDIO_BACKEND", "SUNVOX_LOG_LEVEL", "SUNVOX_MIDI_PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Engine.SampleRate != 44100 {
		t.Errorf("expected SampleRate=44100, got %d", cfg.Engine.SampleRate)
	}
	if cfg.Audio.Backend != "engine" {
		t.Errorf("expected Backend=engine, got %s", cfg.Audio.Backend)
	}
	if cfg.MIDI.Channel != -1 {
		t.Errorf("expected MIDI channel -1, got %d", cfg.MIDI.Channel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Library.Path = "/opt/sunvox/sunvox.so"
	cfg.Engine.Buffer = 2048
	cfg.Audio.Backend = "oto"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Library.Path != "/opt/sunvox/sunvox.so" {
		t.Errorf("expected library path, got %s", loaded.Library.Path)
	}
	if loaded.Engine.Buffer != 2048 {
		t.Errorf("expected Buffer=2048, got %d", loaded.Engine.Buffer)
	}
	if loaded.Audio.Backend != "oto" {
		t.Errorf("expected Backend=oto, got %s", loaded.Audio.Backend)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Player.Volume != 256 {
		t.Errorf("expected defaults, got volume %d", cfg.Player.Volume)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUNVOX_LIBRARY", "/env/sunvox.so")
	t.Setenv("SUNVOX_SAMPLE_RATE", "48000")
	t.Setenv("SUNVOX_AUDIO_DRIVER", "jack")
	t.Setenv("SUNVOX_AUDIO_BACKEND", "oto")
	t.Setenv("SUNVOX_LOG_LEVEL", "debug")
	t.Setenv("SUNVOX_MIDI_PORT", "Keystation")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Library.Path != "/env/sunvox.so" {
		t.Errorf("expected library from env, got %s", cfg.Library.Path)
	}
	if cfg.Engine.SampleRate != 48000 {
		t.Errorf("expected SampleRate=48000, got %d", cfg.Engine.SampleRate)
	}
	if cfg.Engine.AudioDriver != "jack" {
		t.Errorf("expected AudioDriver=jack, got %s", cfg.Engine.AudioDriver)
	}
	if cfg.Audio.Backend != "oto" {
		t.Errorf("expected Backend=oto, got %s", cfg.Audio.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
	if cfg.MIDI.Port != "Keystation" {
		t.Errorf("expected MIDI port from env, got %s", cfg.MIDI.Port)
	}

	t.Setenv("SUNVOX_SAMPLE_RATE", "fast")
	cfg, _ = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Engine.SampleRate != 44100 {
		t.Errorf("unparsable sample rate should be ignored, got %d", cfg.Engine.SampleRate)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sample rate", func(c *Config) { c.Engine.SampleRate = 100 }},
		{"channels", func(c *Config) { c.Engine.Channels = 6 }},
		{"backend", func(c *Config) { c.Audio.Backend = "portaudio" }},
		{"volume", func(c *Config) { c.Player.Volume = 300 }},
		{"block frames", func(c *Config) { c.Render.BlockFrames = 0 }},
		{"midi channel", func(c *Config) { c.MIDI.Channel = 16 }},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestConfig_EngineString(t *testing.T) {
	cfg := DefaultConfig()
	if s := cfg.EngineString(); s != "" {
		t.Errorf("expected empty engine string, got %q", s)
	}

	cfg.Engine.Buffer = 1024
	cfg.Engine.AudioDriver = "alsa"
	cfg.Engine.AudioDevice = "hw:0,0"
	if s := cfg.EngineString(); s != "buffer=1024|audiodriver=alsa|audiodevice=hw:0,0" {
		t.Errorf("unexpected engine string %q", s)
	}
}

func TestConfig_InitFlags(t *testing.T) {
	cfg := DefaultConfig()
	if f := cfg.InitFlags(); f != 0 {
		t.Errorf("expected no flags, got %v", f)
	}

	cfg.Audio.Backend = "oto"
	cfg.Engine.NoDebugOutput = true
	f := cfg.InitFlags()
	want := sunvox.FlagUserAudioCallback | sunvox.FlagAudioFloat32 | sunvox.FlagNoDebugOutput
	if f != want {
		t.Errorf("expected %v, got %v", want, f)
	}

	opts := cfg.EngineOptions()
	if opts.Flags != want || opts.SampleRate != 44100 {
		t.Errorf("unexpected engine options %+v", opts)
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	if d := cfg.PollInterval(); d != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", d)
	}
	if d := cfg.AudioBufferDuration(); d != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %v", d)
	}

	cfg.Player.PollInterval = "bogus"
	cfg.Render.MaxDuration = "-1s"
	if d := cfg.PollInterval(); d != 100*time.Millisecond {
		t.Errorf("expected fallback 100ms, got %v", d)
	}
	if d := cfg.RenderMaxDuration(); d != 10*time.Minute {
		t.Errorf("expected fallback 10m, got %v", d)
	}
}
