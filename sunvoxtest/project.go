package sunvoxtest

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// Project is the fake engine's project file format. Load, Save and the
// memory variants read and write it as YAML in place of .sunvox data.
type Project struct {
	Name     string        `yaml:"name"`
	BPM      int           `yaml:"bpm"`
	TPL      int           `yaml:"tpl"`
	Modules  []ModuleSpec  `yaml:"modules"`
	Patterns []PatternSpec `yaml:"patterns,omitempty"`
}

// ModuleSpec describes one module. An entry with an empty Type is a removed
// module; it keeps the numbering of the following modules.
type ModuleSpec struct {
	Type        string           `yaml:"type,omitempty"`
	Name        string           `yaml:"name,omitempty"`
	X           int              `yaml:"x,omitempty"`
	Y           int              `yaml:"y,omitempty"`
	Color       int              `yaml:"color,omitempty"`
	Finetune    int              `yaml:"finetune,omitempty"`
	Relnote     int              `yaml:"relnote,omitempty"`
	Outputs     []int            `yaml:"outputs,omitempty"`
	Controllers []ControllerSpec `yaml:"controllers,omitempty"`
}

// ControllerSpec describes one module controller. Type 1 is an enum.
type ControllerSpec struct {
	Name   string `yaml:"name"`
	Value  int    `yaml:"value"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Offset int    `yaml:"offset,omitempty"`
	Type   int    `yaml:"type,omitempty"`
	Group  int    `yaml:"group,omitempty"`
}

// PatternSpec describes one pattern. An entry with zero Lines is a removed pattern.
type PatternSpec struct {
	Name   string      `yaml:"name,omitempty"`
	X      int         `yaml:"x"`
	Y      int         `yaml:"y,omitempty"`
	Tracks int         `yaml:"tracks"`
	Lines  int         `yaml:"lines"`
	Muted  bool        `yaml:"muted,omitempty"`
	Events []EventSpec `yaml:"events,omitempty"`
}

// EventSpec is one non-empty pattern cell.
type EventSpec struct {
	Track  int `yaml:"track"`
	Line   int `yaml:"line"`
	Note   int `yaml:"note,omitempty"`
	Vel    int `yaml:"vel,omitempty"`
	Module int `yaml:"module,omitempty"`
	Ctl    int `yaml:"ctl,omitempty"`
	CtlVal int `yaml:"ctl_val,omitempty"`
}

// Marshal encodes the project.
func (p Project) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// ParseProject decodes a project.
func ParseProject(data []byte) (Project, error) {
	var p Project
	err := yaml.Unmarshal(data, &p)
	return p, err
}

// DemoProject returns a small song: a generator and an effect feeding the
// output, with two patterns covering 96 lines.
func DemoProject() Project {
	return Project{
		Name: "Demo Song",
		BPM:  125,
		TPL:  6,
		Modules: []ModuleSpec{
			{Type: "Output", Name: "Output"},
			{Type: "Generator", Name: "Lead", X: 256, Y: 512, Color: 0x3080ff, Outputs: []int{2}, Controllers: DefaultControllers("Generator")},
			{Type: "Reverb", Name: "Reverb", X: 384, Y: 512, Color: 0xff8030, Outputs: []int{0}, Controllers: DefaultControllers("Reverb")},
		},
		Patterns: []PatternSpec{
			{
				Name: "Intro", X: 0, Tracks: 4, Lines: 32,
				Events: []EventSpec{
					{Track: 0, Line: 0, Note: 49, Vel: 129, Module: 2},
					{Track: 0, Line: 8, Note: 128, Module: 2},
					{Track: 1, Line: 16, Note: 61, Vel: 100, Module: 2},
					{Track: 2, Line: 24, Module: 3, Ctl: 0x0100, CtlVal: 0x4000},
				},
			},
			{
				Name: "Verse", X: 32, Y: 32, Tracks: 8, Lines: 64,
				Events: []EventSpec{
					{Track: 0, Line: 0, Note: 37, Vel: 80, Module: 2},
				},
			},
		},
	}
}

// WriteProject writes p into dir and returns the file path.
func WriteProject(tb testing.TB, dir, name string, p Project) string {
	tb.Helper()
	data, err := p.Marshal()
	if err != nil {
		tb.Fatalf("marshal project: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write project: %v", err)
	}
	return path
}

// DefaultControllers returns the controllers a new module of type typ gets.
func DefaultControllers(typ string) []ControllerSpec {
	switch typ {
	case "Generator", "Analog generator":
		return []ControllerSpec{
			{Name: "Volume", Value: 128, Min: 0, Max: 256},
			{Name: "Waveform", Value: 0, Min: 0, Max: 9, Type: 1},
			{Name: "Panning", Value: 128, Min: 0, Max: 256, Offset: -128},
			{Name: "Attack", Value: 0, Min: 0, Max: 512, Group: 1},
			{Name: "Release", Value: 0, Min: 0, Max: 512, Group: 1},
			{Name: "Polyphony", Value: 8, Min: 1, Max: 32},
		}
	case "Sampler":
		return []ControllerSpec{
			{Name: "Volume", Value: 256, Min: 0, Max: 512},
			{Name: "Panning", Value: 128, Min: 0, Max: 256, Offset: -128},
			{Name: "Sample interpolation", Value: 2, Min: 0, Max: 2, Type: 1},
			{Name: "Polyphony", Value: 8, Min: 1, Max: 32},
		}
	case "Reverb":
		return []ControllerSpec{
			{Name: "Dry", Value: 256, Min: 0, Max: 512},
			{Name: "Wet", Value: 64, Min: 0, Max: 512},
			{Name: "Feedback", Value: 256, Min: 0, Max: 256},
			{Name: "Damp", Value: 128, Min: 0, Max: 256},
		}
	case "Amplifier":
		return []ControllerSpec{
			{Name: "Volume", Value: 256, Min: 0, Max: 1024},
			{Name: "Balance", Value: 128, Min: 0, Max: 256, Offset: -128},
		}
	case "MultiSynth", "MetaModule", "Vorbis player":
		return []ControllerSpec{
			{Name: "Volume", Value: 256, Min: 0, Max: 1024},
		}
	}
	return nil
}

var generatorTypes = map[string]bool{
	"Generator":        true,
	"Analog generator": true,
	"FM":               true,
	"Sampler":          true,
	"DrumSynth":        true,
	"SpectraVoice":     true,
	"Kicker":           true,
	"MetaModule":       true,
	"Vorbis player":    true,
	"Input":            true,
}
