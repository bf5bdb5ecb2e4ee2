package game

import (
	"fmt"

	"github.com/samber/lo"
)

// Slot is one ordered position on a Placement board.
type Slot[T comparable] struct {
	Item   T    `json:"item"`
	Filled bool `json:"filled"`
}

// Placement arranges a fixed set of items between an unordered pool and a
// row of ordered slots. Items are addressed by value and slot index, so any
// input modality (drag and drop, tap then tap) drives the same three moves.
//
// Every item is always in exactly one place: len(pool)+FilledCount() == Total().
type Placement[T comparable] struct {
	items   []T
	shuffle ShuffleFunc

	pool  []T
	slots []Slot[T]
}

func NewPlacement[T comparable](items []T, slotCount int, opts ...Option) (*Placement[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items to place", ErrConfiguration)
	}
	if hasDuplicates(items) {
		return nil, fmt.Errorf("%w: items must be distinct", ErrConfiguration)
	}
	if slotCount <= 0 {
		return nil, fmt.Errorf("%w: slot count must be positive, got %d", ErrConfiguration, slotCount)
	}
	o := buildOptions(opts)
	p := &Placement[T]{
		items:   append([]T(nil), items...),
		shuffle: o.shuffle,
		slots:   make([]Slot[T], slotCount),
	}
	p.Reset()
	return p, nil
}

// Reset empties every slot and reshuffles all items into the pool.
func (p *Placement[T]) Reset() {
	p.pool = shuffled(p.items, p.shuffle)
	p.slots = make([]Slot[T], len(p.slots))
}

func (p *Placement[T]) checkSlot(i int) error {
	if i < 0 || i >= len(p.slots) {
		return fmt.Errorf("%w: slot %d (have %d)", ErrOutOfRange, i, len(p.slots))
	}
	return nil
}

// MoveToSlot takes item out of the pool and puts it into slot. An occupant
// of that slot goes back to the pool first.
func (p *Placement[T]) MoveToSlot(item T, slot int) error {
	if err := p.checkSlot(slot); err != nil {
		return err
	}
	at := lo.IndexOf(p.pool, item)
	if at < 0 {
		return fmt.Errorf("%w: item %v is not in the pool", ErrInvalidState, item)
	}
	pool := make([]T, 0, len(p.pool))
	pool = append(pool, p.pool[:at]...)
	pool = append(pool, p.pool[at+1:]...)
	if occ := p.slots[slot]; occ.Filled {
		pool = append(pool, occ.Item)
	}
	p.pool = pool
	p.slots[slot] = Slot[T]{Item: item, Filled: true}
	return nil
}

// MoveToPool returns the occupant of slot to the pool. Empty slots are left
// alone.
func (p *Placement[T]) MoveToPool(slot int) error {
	if err := p.checkSlot(slot); err != nil {
		return err
	}
	occ := p.slots[slot]
	if !occ.Filled {
		return nil
	}
	p.pool = append(p.pool, occ.Item)
	p.slots[slot] = Slot[T]{}
	return nil
}

// SwapSlots exchanges two slots' contents; either may be empty.
func (p *Placement[T]) SwapSlots(i, j int) error {
	if err := p.checkSlot(i); err != nil {
		return err
	}
	if err := p.checkSlot(j); err != nil {
		return err
	}
	p.slots[i], p.slots[j] = p.slots[j], p.slots[i]
	return nil
}

// IsSolved reports whether every slot is filled and matches expected.
func (p *Placement[T]) IsSolved(expected []T) bool {
	if len(expected) != len(p.slots) {
		return false
	}
	for k, s := range p.slots {
		if !s.Filled || s.Item != expected[k] {
			return false
		}
	}
	return true
}

// Mismatches lists, in ascending order, the slots that do not hold the
// expected item. Empty slots and slots past the end of expected count as
// mismatched.
func (p *Placement[T]) Mismatches(expected []T) []int {
	out := []int{}
	for k, s := range p.slots {
		if !s.Filled || k >= len(expected) || s.Item != expected[k] {
			out = append(out, k)
		}
	}
	return out
}

func (p *Placement[T]) Filled() bool {
	return lo.EveryBy(p.slots, func(s Slot[T]) bool { return s.Filled })
}

func (p *Placement[T]) FilledCount() int {
	return lo.CountBy(p.slots, func(s Slot[T]) bool { return s.Filled })
}

func (p *Placement[T]) InPool(item T) bool { return lo.Contains(p.pool, item) }

func (p *Placement[T]) Pool() []T { return append([]T(nil), p.pool...) }

func (p *Placement[T]) Slots() []Slot[T] { return append([]Slot[T](nil), p.slots...) }

func (p *Placement[T]) Slot(i int) (T, bool, error) {
	if err := p.checkSlot(i); err != nil {
		var zero T
		return zero, false, err
	}
	return p.slots[i].Item, p.slots[i].Filled, nil
}

func (p *Placement[T]) SlotCount() int { return len(p.slots) }

func (p *Placement[T]) Total() int { return len(p.items) }
