package game

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type Card[T comparable] struct {
	Value  T   `json:"value"`
	PairID int `json:"pairId"`
}

type MatchResult struct {
	Resolved bool `json:"resolved"`
	Matched  bool `json:"matched"`
	AllDone  bool `json:"allDone"`
}

// Match is a memory board: two face-down cards per value. Revealing a second
// card locks the board until Resolve is called; the caller decides how long
// the pair stays visible before that.
type Match[T comparable] struct {
	values  []T
	shuffle ShuffleFunc

	cards    []Card[T]
	revealed []int
	matched  map[int]bool
	locked   bool
}

func NewMatch[T comparable](values []T, opts ...Option) (*Match[T], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no pair values", ErrConfiguration)
	}
	if hasDuplicates(values) {
		return nil, fmt.Errorf("%w: pair values must be distinct", ErrConfiguration)
	}
	o := buildOptions(opts)
	m := &Match[T]{
		values:  append([]T(nil), values...),
		shuffle: o.shuffle,
	}
	m.Reset()
	return m, nil
}

// Reset deals a freshly shuffled deck, all face down.
func (m *Match[T]) Reset() {
	deck := make([]Card[T], 0, 2*len(m.values))
	for i, v := range m.values {
		deck = append(deck, Card[T]{Value: v, PairID: i}, Card[T]{Value: v, PairID: i})
	}
	m.cards = shuffled(deck, m.shuffle)
	m.revealed = nil
	m.matched = make(map[int]bool, len(m.values))
	m.locked = false
}

// Reveal turns card index face up. It reports false without changing
// anything while the board is locked or when the card is already showing.
func (m *Match[T]) Reveal(index int) (bool, error) {
	if index < 0 || index >= len(m.cards) {
		return false, fmt.Errorf("%w: card %d (have %d)", ErrOutOfRange, index, len(m.cards))
	}
	if m.locked || lo.Contains(m.revealed, index) || m.matched[m.cards[index].PairID] {
		return false, nil
	}
	m.revealed = append(m.revealed, index)
	if len(m.revealed) == 2 {
		m.locked = true
	}
	return true, nil
}

// Pending returns the two cards awaiting Resolve.
func (m *Match[T]) Pending() (a, b Card[T], ok bool) {
	if !m.locked || len(m.revealed) != 2 {
		return a, b, false
	}
	return m.cards[m.revealed[0]], m.cards[m.revealed[1]], true
}

// Resolve settles the two revealed cards. Equal values are recorded as a
// matched pair; either way the cards leave the revealed set and the board
// unlocks. Without a pending pair it does nothing and Resolved is false.
func (m *Match[T]) Resolve() MatchResult {
	a, b, ok := m.Pending()
	if !ok {
		return MatchResult{AllDone: m.Completed()}
	}
	res := MatchResult{Resolved: true}
	if a.Value == b.Value {
		m.matched[a.PairID] = true
		res.Matched = true
	}
	m.revealed = nil
	m.locked = false
	res.AllDone = m.Completed()
	return res
}

// FaceUp reports whether card index is showing, either transiently or
// because its pair is matched.
func (m *Match[T]) FaceUp(index int) bool {
	if index < 0 || index >= len(m.cards) {
		return false
	}
	return m.matched[m.cards[index].PairID] || lo.Contains(m.revealed, index)
}

func (m *Match[T]) IsMatched(index int) bool {
	if index < 0 || index >= len(m.cards) {
		return false
	}
	return m.matched[m.cards[index].PairID]
}

func (m *Match[T]) Card(index int) (Card[T], error) {
	if index < 0 || index >= len(m.cards) {
		return Card[T]{}, fmt.Errorf("%w: card %d (have %d)", ErrOutOfRange, index, len(m.cards))
	}
	return m.cards[index], nil
}

func (m *Match[T]) Cards() []Card[T] { return append([]Card[T](nil), m.cards...) }

func (m *Match[T]) Revealed() []int { return append([]int(nil), m.revealed...) }

// MatchedPairs returns matched pair ids in ascending order.
func (m *Match[T]) MatchedPairs() []int {
	ids := lo.Keys(m.matched)
	slices.Sort(ids)
	return ids
}

func (m *Match[T]) Locked() bool    { return m.locked }
func (m *Match[T]) Pairs() int      { return len(m.values) }
func (m *Match[T]) Completed() bool { return len(m.matched) == len(m.values) }

func (m *Match[T]) State() State {
	if m.Completed() {
		return StateCompleted
	}
	return StateInProgress
}
