package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sunvox "github.com/aspect-build/sunvox-go"
	"github.com/aspect-build/sunvox-go/sunvoxtest"
)

func newSlot(t *testing.T) (*sunvoxtest.Fake, *sunvox.Slot) {
	t.Helper()
	fake := sunvoxtest.New()
	e, err := sunvox.New(sunvox.Options{Backend: fake})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	slot, err := e.OpenSlot(0)
	require.NoError(t, err)
	data, err := sunvoxtest.DemoProject().Marshal()
	require.NoError(t, err)
	require.NoError(t, slot.LoadFromMemory(data))
	return fake, slot
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestInitialView(t *testing.T) {
	_, slot := newSlot(t)
	m := New(slot, 2, 0)
	assert.NotNil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "Demo Song")
	assert.Contains(t, view, "125 bpm, 6 tpl")
	assert.Contains(t, view, "0/96")
	assert.Contains(t, view, "stopped")
	assert.Contains(t, view, "vol 256/256")
}

func TestPlayStopKeys(t *testing.T) {
	fake, slot := newSlot(t)
	m := New(slot, 2, time.Millisecond)

	m, _ = update(t, m, key(" "))
	require.NoError(t, m.Err())
	assert.True(t, slot.IsPlaying())
	assert.Contains(t, m.View(), "playing")

	fake.Advance(5292 * 20)
	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd, "ticks keep coming")
	assert.Contains(t, m.View(), "20/96")
	assert.Equal(t, []int{63, 63}, m.levels)

	m, _ = update(t, m, key("p"))
	assert.False(t, slot.IsPlaying())
	assert.Equal(t, []int{0, 0}, m.levels)
}

func TestSeekKeys(t *testing.T) {
	_, slot := newSlot(t)
	m := New(slot, 2, 0)

	m, _ = update(t, m, key("right"))
	assert.Equal(t, 16, slot.CurrentLine())
	m, _ = update(t, m, key("l"))
	assert.Equal(t, 32, slot.CurrentLine())
	m, _ = update(t, m, key("left"))
	assert.Equal(t, 16, slot.CurrentLine())
	m, _ = update(t, m, key("h"))
	m, _ = update(t, m, key("h"))
	assert.Equal(t, 0, slot.CurrentLine(), "clamped at the start")

	require.NoError(t, slot.Rewind(90))
	m, _ = update(t, m, key("right"))
	assert.Equal(t, 95, slot.CurrentLine(), "clamped at the last line")

	m, _ = update(t, m, key("r"))
	assert.Equal(t, 0, slot.CurrentLine())
	assert.Equal(t, 0, m.line)
}

func TestVolumeKeys(t *testing.T) {
	_, slot := newSlot(t)
	m := New(slot, 2, 0)

	m, _ = update(t, m, key("+"))
	assert.Equal(t, 256, slot.Volume(), "capped")
	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, key("-"))
	assert.Equal(t, 224, slot.Volume())
	assert.Contains(t, m.View(), "vol 224/256")
}

func TestQuit(t *testing.T) {
	_, slot := newSlot(t)
	m := New(slot, 2, 0)
	m, _ = update(t, m, key(" "))

	m, cmd := update(t, m, key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, slot.IsPlaying(), "playback stops on quit")
	assert.Empty(t, m.View())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "██░░", progressBar(1, 2, 4))
	assert.Equal(t, "░░░░", progressBar(5, 0, 4))
	assert.Equal(t, "████", progressBar(9, 2, 4))
	assert.Equal(t, "░░░░", progressBar(-1, 2, 4))
}
