// Package tui is the interactive song player.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Player is the part of a slot the UI drives. *sunvox.Slot implements it.
type Player interface {
	Name() string
	BPM() int
	TPL() int
	CurrentLine() int
	LengthLines() uint32
	IsPlaying() bool
	Play() error
	Stop() error
	Rewind(line int) error
	Volume() int
	SetVolume(vol int) error
	SignalLevel(channel int) int
}

const (
	seekLines  = 16
	volumeStep = 16
	barWidth   = 40
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8030"))
	meterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#30c060"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44"))
)

type tickMsg time.Time

// Model is a bubbletea model over a Player.
type Model struct {
	player   Player
	interval time.Duration
	channels int

	line     int
	length   int
	playing  bool
	volume   int
	levels   []int
	err      error
	quitting bool
}

// New returns a model refreshing every interval.
func New(p Player, channels int, interval time.Duration) Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	m := Model{player: p, interval: interval, channels: channels}
	return m.refresh()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) refresh() Model {
	m.line = m.player.CurrentLine()
	m.length = int(m.player.LengthLines())
	m.playing = m.player.IsPlaying()
	m.volume = m.player.Volume()
	m.levels = make([]int, m.channels)
	for ch := range m.levels {
		m.levels[ch] = m.player.SignalLevel(ch)
	}
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var err error
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.playing {
				_ = m.player.Stop()
			}
			return m, tea.Quit

		case " ", "p":
			if m.player.IsPlaying() {
				err = m.player.Stop()
			} else {
				err = m.player.Play()
			}

		case "home", "r":
			err = m.player.Rewind(0)

		case "left", "h":
			err = m.player.Rewind(max(m.player.CurrentLine()-seekLines, 0))

		case "right", "l":
			line := m.player.CurrentLine() + seekLines
			if n := int(m.player.LengthLines()); n > 0 && line >= n {
				line = n - 1
			}
			err = m.player.Rewind(line)

		case "+", "=", "up":
			err = m.player.SetVolume(min(m.player.Volume()+volumeStep, 256))

		case "-", "_", "down":
			err = m.player.SetVolume(max(m.player.Volume()-volumeStep, 0))
		}
		m.err = err
		return m.refresh(), nil

	case tickMsg:
		return m.refresh(), m.tick()
	}

	return m, nil
}

// Err returns the error of the last key action, if any.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	name := m.player.Name()
	if name == "" {
		name = "(untitled)"
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d bpm, %d tpl", m.player.BPM(), m.player.TPL())))
	b.WriteString("\n\n")

	b.WriteString(barStyle.Render(progressBar(m.line, m.length, barWidth)))
	fmt.Fprintf(&b, " %d/%d\n", m.line, m.length)

	for ch, level := range m.levels {
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("ch%d", ch)),
			meterStyle.Render(progressBar(level, 255, barWidth)))
	}
	b.WriteString("\n")

	state := "stopped"
	if m.playing {
		state = "playing"
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s  vol %d/256", state, m.volume)))
	if m.err != nil {
		b.WriteString("  " + errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space play/stop  ←/→ seek  r restart  +/- volume  q quit"))
	b.WriteString("\n")
	return b.String()
}

func progressBar(value, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(max(value, 0)*width/total, width)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Run shows the player until the user quits.
func Run(p Player, channels int, interval time.Duration) error {
	_, err := tea.NewProgram(New(p, channels, interval)).Run()
	return err
}
