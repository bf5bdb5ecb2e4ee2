package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/screen"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleTitle  = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).MarginBottom(1)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleStars  = lipgloss.NewStyle().Foreground(colorYellow)
	styleGood   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleBad    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleStatus = lipgloss.NewStyle().Foreground(colorRed)

	styleTile = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Foreground(colorFg).
			Padding(0, 1)
	styleTileCursor  = styleTile.BorderForeground(colorBlue).Bold(true)
	styleTileHeld    = styleTile.BorderForeground(colorYellow).Foreground(colorYellow)
	styleTileWrong   = styleTile.BorderForeground(colorRed).Foreground(colorRed)
	styleTileMatched = styleTile.BorderForeground(colorGreen).Foreground(colorGreen)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	if m.page == pageHome {
		b.WriteString(m.viewHome())
	} else {
		b.WriteString(m.viewGame())
	}
	if m.status != "" {
		b.WriteString("\n" + styleStatus.Render(m.status) + "\n")
	}
	return b.String()
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("אותיות") + "\n")
	for i, g := range games {
		line := fmt.Sprintf("%d  %s", i+1, g.title)
		if i == m.cursor {
			line = styleGood.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleDim.Render("↑/↓ choose • enter play • q quit") + "\n")
	return b.String()
}

func (m Model) viewGame() string {
	v := m.view
	var b strings.Builder
	b.WriteString(styleTitle.Render(gameTitle(v.Kind)) + "\n")
	b.WriteString(stars(v.Stars) + "  " + styleDim.Render(fmt.Sprintf("mistakes: %d", v.Mistakes)) + "\n\n")
	b.WriteString(feedbackLine(v) + "\n\n")

	switch {
	case v.Find != nil:
		b.WriteString(m.viewFind(v.Find))
	case v.Sort != nil:
		b.WriteString(m.viewSort(v.Sort))
	case v.Memory != nil:
		b.WriteString(m.viewMemory(v.Memory))
	}
	b.WriteString("\n" + styleDim.Render(help(v)) + "\n")
	return b.String()
}

func (m Model) viewFind(f *screen.FindView) string {
	tiles := make([]string, len(f.Choices))
	for i, l := range f.Choices {
		st := styleTile
		if i == m.cursor {
			st = styleTileCursor
		}
		tiles[i] = lipgloss.JoinVertical(lipgloss.Center, st.Render(l), styleDim.Render(fmt.Sprint(i+1)))
	}
	progress := styleDim.Render(fmt.Sprintf("question %d of %d", f.Question, f.Total))
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n" + progress + "\n"
}

func (m Model) viewSort(s *screen.SortView) string {
	pool := make([]string, len(s.Pool))
	for i, l := range s.Pool {
		st := styleTile
		if s.Held != nil && s.Held.Area == screen.AreaPool && s.Held.Letter == l {
			st = styleTileHeld
		} else if m.row == screen.AreaPool && i == m.cursor {
			st = styleTileCursor
		}
		pool[i] = st.Render(l)
	}
	slots := make([]string, len(s.Slots))
	for i, l := range s.Slots {
		if l == "" {
			l = " "
		}
		st := styleTile
		switch {
		case s.Held != nil && s.Held.Area == screen.AreaSlot && s.Held.Index == i:
			st = styleTileHeld
		case slices.Contains(s.Shake, i):
			st = styleTileWrong
		case m.row == screen.AreaSlot && i == m.cursor:
			st = styleTileCursor
		}
		slots[i] = st.Render(l)
	}
	poolRow := styleDim.Render("letters") + "\n"
	if len(pool) == 0 {
		poolRow += styleDim.Render("(empty)")
	} else {
		poolRow += lipgloss.JoinHorizontal(lipgloss.Top, pool...)
	}
	if m.row == screen.AreaPool && s.Held != nil {
		poolRow += styleDim.Render("  ← put back")
	}
	slotRow := styleDim.Render("order") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, slots...)
	return poolRow + "\n" + slotRow + "\n"
}

func (m Model) viewMemory(mv *screen.MemoryView) string {
	cols := memoryColumns(len(mv.Cards))
	var rows []string
	for start := 0; start < len(mv.Cards); start += cols {
		end := min(start+cols, len(mv.Cards))
		tiles := make([]string, 0, cols)
		for _, c := range mv.Cards[start:end] {
			label, st := "?", styleTile
			switch {
			case c.Matched:
				label, st = c.Letter, styleTileMatched
			case c.FaceUp:
				label, st = c.Letter, styleTileHeld
			}
			if c.Index == m.cursor {
				st = st.BorderForeground(colorBlue)
			}
			tiles = append(tiles, st.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	found := styleDim.Render(fmt.Sprintf("pairs %d of %d", mv.PairsFound, mv.PairsTotal))
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n" + found + "\n"
}

func gameTitle(k screen.Kind) string {
	for _, g := range games {
		if g.kind == k {
			return g.title
		}
	}
	return string(k)
}

func stars(n int) string {
	return styleStars.Render(strings.Repeat("★", n) + strings.Repeat("☆", game.MaxStars-n))
}

func feedbackLine(v screen.View) string {
	switch v.Feedback {
	case screen.FeedbackCorrect:
		return styleGood.Render("Great!")
	case screen.FeedbackSolved:
		return styleGood.Render("Well done!")
	case screen.FeedbackWrong:
		switch v.Kind {
		case screen.KindSort:
			return styleBad.Render("Some letters are in the wrong place")
		case screen.KindMemory:
			return styleBad.Render("Not a pair")
		}
		return styleBad.Render("That's not it")
	case screen.FeedbackRetry:
		return "Try again: find " + v.Find.Target
	case screen.FeedbackIncomplete:
		return "Fill every slot first"
	}
	switch v.Kind {
	case screen.KindFind:
		return "Find the letter " + v.Find.Target
	case screen.KindSort:
		return "Put the letters in order"
	}
	return "Find the pairs"
}

func help(v screen.View) string {
	switch v.Kind {
	case screen.KindFind:
		return "←/→ move • enter or 1-9 choose • r restart • esc menu"
	case screen.KindSort:
		return "←/→ move • tab switch row • enter pick/place • x drop • c check • r restart • esc menu"
	}
	return "arrows move • enter flip • r restart • esc menu"
}
