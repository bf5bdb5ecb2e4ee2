package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/otiyot/internal/screen"
)

type driver struct {
	t     *testing.T
	m     Model
	sched *screen.ManualScheduler
}

func newDriver(t *testing.T) *driver {
	sched := screen.NewManualScheduler()
	m := New(screen.Options{
		Scheduler: sched,
		Shuffle:   func(int, func(i, j int)) {},
	})
	return &driver{t: t, m: m, sched: sched}
}

func (d *driver) send(msg tea.Msg) tea.Cmd {
	next, cmd := d.m.Update(msg)
	d.m = next.(Model)
	return cmd
}

func (d *driver) key(k string) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	d.send(msg)
}

// drain feeds whatever the screen timers pushed into the model.
func (d *driver) drain() {
	for {
		select {
		case v := <-d.m.updates:
			d.send(viewMsg(v))
		default:
			return
		}
	}
}

func TestHomeMenu(t *testing.T) {
	d := newDriver(t)
	assert.Contains(t, d.m.View(), "Find the letter")
	assert.Contains(t, d.m.View(), "Memory")

	d.key("down")
	d.key("down")
	d.key("down")
	assert.Equal(t, 2, d.m.cursor)

	d.key("enter")
	require.Equal(t, pageGame, d.m.page)
	assert.Equal(t, screen.KindMemory, d.m.view.Kind)

	d.key("esc")
	assert.Equal(t, pageHome, d.m.page)
	assert.Equal(t, 2, d.m.cursor)
}

func TestFindByNumberAndLetter(t *testing.T) {
	d := newDriver(t)
	d.key("1")
	require.Equal(t, screen.KindFind, d.m.view.Kind)
	assert.Contains(t, d.m.View(), "Find the letter א")

	d.key("2")
	assert.Equal(t, screen.FeedbackWrong, d.m.view.Feedback)
	assert.Contains(t, d.m.View(), "That's not it")

	d.key("א")
	assert.Equal(t, screen.FeedbackCorrect, d.m.view.Feedback)

	d.sched.Advance(screen.DefaultDelays.Advance)
	d.drain()
	assert.Equal(t, "ב", d.m.view.Find.Target)
	assert.Equal(t, screen.FeedbackPrompt, d.m.view.Feedback)
	assert.Equal(t, 1, d.m.view.Mistakes)
}

func TestSortWithKeyboard(t *testing.T) {
	d := newDriver(t)
	d.key("2")
	require.Equal(t, screen.KindSort, d.m.view.Kind)
	assert.Equal(t, screen.InputTap, d.m.view.Sort.Mode)

	// Pool is in alphabet order; move each first pool letter to the next slot.
	for i := 0; i < 5; i++ {
		d.key("enter")
		require.NotNil(t, d.m.view.Sort.Held)
		d.key("tab")
		for j := 0; j < i; j++ {
			d.key("right")
		}
		d.key("enter")
		d.key("tab")
		d.m.cursor = 0
	}
	assert.Equal(t, []string{"א", "ב", "ג", "ד", "ה"}, d.m.view.Sort.Slots)

	d.key("c")
	assert.Equal(t, screen.FeedbackSolved, d.m.view.Feedback)
	assert.Contains(t, d.m.View(), "Well done!")
}

func TestMemoryWithKeyboard(t *testing.T) {
	d := newDriver(t)
	d.key("3")
	d.key("enter")
	d.key("right")
	d.key("right")
	d.key("enter")
	assert.True(t, d.m.view.Memory.Locked)

	d.sched.Advance(screen.DefaultDelays.Mismatch)
	d.drain()
	assert.Equal(t, screen.FeedbackWrong, d.m.view.Feedback)
	assert.Contains(t, d.m.View(), "Not a pair")
}

func TestStaleViewsAreDropped(t *testing.T) {
	d := newDriver(t)
	d.key("1")
	old := d.m.view
	d.key("esc")
	d.key("3")
	d.send(viewMsg(old))
	assert.Equal(t, screen.KindMemory, d.m.view.Kind)
}

func TestQuit(t *testing.T) {
	d := newDriver(t)
	d.key("1")
	cmd := d.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, d.m.quitting)
	assert.Empty(t, d.m.View())
}
