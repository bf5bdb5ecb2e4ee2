package screen

import (
	"fmt"

	"github.com/kiliankoe/otiyot/internal/game"
)

// InputMode picks how a player moves letters on the sort board.
type InputMode string

const (
	InputDrag InputMode = "drag" // pointer: drag a letter, drop it on a target
	InputTap  InputMode = "tap"  // touch: tap a letter, then tap a target
)

func ParseInputMode(s string) (InputMode, error) {
	switch InputMode(s) {
	case InputDrag, InputTap:
		return InputMode(s), nil
	case "":
		return InputDrag, nil
	}
	return "", fmt.Errorf("%w: unknown input mode %q", game.ErrConfiguration, s)
}

type Area string

const (
	AreaPool Area = "pool"
	AreaSlot Area = "slot"
)

// Source is where a letter is picked up: a pool letter by value, or a slot
// by index.
type Source struct {
	Area   Area   `json:"area"`
	Index  int    `json:"index"`
	Letter string `json:"letter"`
}

// Target is where a letter is put down. Index is ignored for the pool.
type Target struct {
	Area  Area `json:"area"`
	Index int  `json:"index"`
}

type Move struct {
	From Source `json:"from"`
	To   Target `json:"to"`
}

// Gesture turns a pick-up and a put-down into a Move. Drag and tap input
// differ only here; the board sees the same moves either way.
type Gesture interface {
	Mode() InputMode
	Grab(src Source)
	Release(dst Target) (Move, bool)
	Cancel()
	Held() (Source, bool)
}

func NewGesture(mode InputMode) Gesture {
	if mode == InputTap {
		return &TapGesture{}
	}
	return &DragGesture{}
}

// DragGesture: drag start grabs, drop releases, drag end without a drop
// cancels.
type DragGesture struct {
	held *Source
}

func (g *DragGesture) Mode() InputMode { return InputDrag }

func (g *DragGesture) Grab(src Source) { g.held = &src }

func (g *DragGesture) Release(dst Target) (Move, bool) {
	return release(&g.held, dst)
}

func (g *DragGesture) Cancel() { g.held = nil }

func (g *DragGesture) Held() (Source, bool) { return held(g.held) }

// TapGesture: the first tap selects, a tap on a target places. Tapping the
// selected letter again deselects it.
type TapGesture struct {
	held *Source
}

func (g *TapGesture) Mode() InputMode { return InputTap }

func (g *TapGesture) Grab(src Source) {
	if g.held != nil && *g.held == src {
		g.held = nil
		return
	}
	g.held = &src
}

func (g *TapGesture) Release(dst Target) (Move, bool) {
	return release(&g.held, dst)
}

func (g *TapGesture) Cancel() { g.held = nil }

func (g *TapGesture) Held() (Source, bool) { return held(g.held) }

func release(h **Source, dst Target) (Move, bool) {
	if *h == nil {
		return Move{}, false
	}
	m := Move{From: **h, To: dst}
	*h = nil
	return m, true
}

func held(h *Source) (Source, bool) {
	if h == nil {
		return Source{}, false
	}
	return *h, true
}

// applyMove performs m on the board: pool→slot places, slot→slot swaps (or
// moves into an empty slot), slot→pool takes back. pool→pool does nothing.
func applyMove(b *game.Placement[string], m Move) error {
	switch {
	case m.From.Area == AreaPool && m.To.Area == AreaSlot:
		return b.MoveToSlot(m.From.Letter, m.To.Index)
	case m.From.Area == AreaSlot && m.To.Area == AreaSlot:
		return b.SwapSlots(m.From.Index, m.To.Index)
	case m.From.Area == AreaSlot && m.To.Area == AreaPool:
		return b.MoveToPool(m.From.Index)
	}
	return nil
}
