// Package tui plays the games in a terminal.
package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiliankoe/otiyot/internal/letters"
	"github.com/kiliankoe/otiyot/internal/screen"
)

type page int

const (
	pageHome page = iota
	pageGame
)

var games = []struct {
	kind  screen.Kind
	title string
}{
	{screen.KindFind, "Find the letter"},
	{screen.KindSort, "Sort the letters"},
	{screen.KindMemory, "Memory"},
}

// viewMsg carries a view pushed by a screen timer.
type viewMsg screen.View

// Model is the root bubbletea model: a home menu and one page per game.
type Model struct {
	opts    screen.Options
	updates chan screen.View

	page   page
	cursor int         // menu entry, find choice, sort column or memory card
	row    screen.Area // sort: which row the cursor is on

	sc   screen.Screen
	view screen.View

	status   string
	width    int
	quitting bool
}

// New builds the model. Screens are played with tap input; opts supply the
// rest.
func New(opts screen.Options) Model {
	updates := make(chan screen.View, 16)
	opts.Input = screen.InputTap
	opts.Notify = func(v screen.View) {
		select {
		case updates <- v:
		default:
		}
	}
	return Model{opts: opts, updates: updates, row: screen.AreaPool}
}

// Run starts the program and blocks until the player quits.
func Run(opts screen.Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

func waitForView(ch <-chan screen.View) tea.Cmd {
	return func() tea.Msg { return viewMsg(<-ch) }
}

func (m Model) Init() tea.Cmd {
	return waitForView(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewMsg:
		// Views of a screen we already left are dropped.
		if m.sc != nil && msg.ID == m.sc.ID() {
			m.view = screen.View(msg)
			m.clamp()
		}
		return m, waitForView(m.updates)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.leave()
			m.quitting = true
			return m, tea.Quit
		}
		m.status = ""
		if m.page == pageHome {
			return m.updateHome(msg)
		}
		return m.updateGame(msg)
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := msg.String(); k {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(len(games)-1, m.cursor+1)
	case "enter", " ", "space":
		m.open()
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(games) {
			m.cursor = n - 1
			m.open()
		}
	}
	return m, nil
}

func (m *Model) open() {
	sc, err := screen.New(games[m.cursor].kind, m.opts)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.sc = sc
	m.view = sc.View()
	m.page = pageGame
	m.cursor = 0
	m.row = screen.AreaPool
}

func (m *Model) leave() {
	if m.sc == nil {
		return
	}
	m.sc.Close()
	for i, g := range games {
		if g.kind == m.sc.Kind() {
			m.cursor = i
		}
	}
	m.sc = nil
	m.view = screen.View{}
	m.page = pageHome
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.leave()
		return m, nil
	case "r":
		m.sc.Restart()
		m.view = m.sc.View()
		m.cursor = 0
		m.row = screen.AreaPool
		return m, nil
	}
	switch sc := m.sc.(type) {
	case *screen.FindScreen:
		m.updateFind(sc, msg)
	case *screen.SortScreen:
		m.updateSort(sc, msg)
	case *screen.MemoryScreen:
		m.updateMemory(sc, msg)
	}
	m.clamp()
	return m, nil
}

func (m *Model) apply(v screen.View, err error) {
	m.view = v
	if err != nil {
		m.status = err.Error()
	}
}

func (m *Model) updateFind(sc *screen.FindScreen, msg tea.KeyMsg) {
	choices := m.view.Find.Choices
	switch k := msg.String(); k {
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "enter", " ", "space":
		m.apply(sc.Tap(choices[m.cursor]))
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(choices) {
			m.cursor = n - 1
			m.apply(sc.Tap(choices[n-1]))
		} else if letters.Contains(choices, k) {
			m.apply(sc.Tap(k))
		}
	}
}

func (m *Model) updateSort(sc *screen.SortScreen, msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "tab", "up", "down", "k", "j":
		if m.row == screen.AreaPool {
			m.row = screen.AreaSlot
		} else {
			m.row = screen.AreaPool
		}
	case "c":
		m.view = sc.Check()
	case "x":
		m.view = sc.Cancel()
	case "enter", " ", "space":
		if m.view.Sort.Held != nil {
			m.apply(sc.Release(screen.Target{Area: m.row, Index: m.cursor}))
			return
		}
		if m.row == screen.AreaSlot {
			m.apply(sc.Grab(screen.Source{Area: screen.AreaSlot, Index: m.cursor}))
		} else if pool := m.view.Sort.Pool; len(pool) > 0 {
			m.apply(sc.Grab(screen.Source{Area: screen.AreaPool, Letter: pool[m.cursor]}))
		}
	}
}

func (m *Model) updateMemory(sc *screen.MemoryScreen, msg tea.KeyMsg) {
	cols := memoryColumns(len(m.view.Memory.Cards))
	switch msg.String() {
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols < len(m.view.Memory.Cards) {
			m.cursor += cols
		}
	case "enter", " ", "space":
		m.apply(sc.Reveal(m.cursor))
	}
}

// clamp keeps the cursor on something that exists after the board changed.
func (m *Model) clamp() {
	n := 0
	switch {
	case m.view.Find != nil:
		n = len(m.view.Find.Choices)
	case m.view.Sort != nil && m.row == screen.AreaPool:
		n = len(m.view.Sort.Pool)
	case m.view.Sort != nil:
		n = len(m.view.Sort.Slots)
	case m.view.Memory != nil:
		n = len(m.view.Memory.Cards)
	}
	m.cursor = max(0, min(m.cursor, n-1))
}

func memoryColumns(cards int) int {
	if cards <= 6 {
		return max(cards, 1)
	}
	return (cards + 1) / 2
}
