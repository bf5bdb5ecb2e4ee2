package screen

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/letters"
)

type SortView struct {
	Pool       []string  `json:"pool"`
	Slots      []string  `json:"slots"` // "" marks an empty slot
	Expected   []string  `json:"expected"`
	Held       *Source   `json:"held,omitempty"`
	Mode       InputMode `json:"mode"`
	Shake      []int     `json:"shake"`
	WrongCount int       `json:"wrongCount"`
}

// SortScreen asks the player to put the letters into alphabetical order.
type SortScreen struct {
	base
	expected []string
	board    *game.Placement[string]
	gesture  Gesture

	mistakes   int
	shake      []int
	wrongCount int
	completed  bool
}

func NewSort(opts Options) (*SortScreen, error) {
	opts = opts.withDefaults()
	mode, err := ParseInputMode(string(opts.Input))
	if err != nil {
		return nil, err
	}
	expected, err := letters.Prefix(opts.Alphabet, opts.Slots)
	if err != nil {
		return nil, err
	}
	board, err := game.NewPlacement(expected, len(expected), game.WithShuffle(opts.Shuffle))
	if err != nil {
		return nil, err
	}
	s := &SortScreen{
		expected: expected,
		board:    board,
		gesture:  NewGesture(mode),
	}
	s.init(KindSort, opts, s.viewLocked)
	return s, nil
}

func (s *SortScreen) checkSlot(i int) error {
	if i < 0 || i >= s.board.SlotCount() {
		return fmt.Errorf("%w: slot %d (have %d)", game.ErrOutOfRange, i, s.board.SlotCount())
	}
	return nil
}

// Grab picks up a letter from the pool or a slot. Picking up something that
// is not there (an empty slot, a letter already placed) is ignored.
func (s *SortScreen) Grab(src Source) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive || s.completed {
		return s.viewLocked(), nil
	}
	switch src.Area {
	case AreaPool:
		src.Letter = letters.Normalize(src.Letter)
		src.Index = 0
		if !s.board.InPool(src.Letter) {
			return s.viewLocked(), nil
		}
	case AreaSlot:
		if err := s.checkSlot(src.Index); err != nil {
			return s.viewLocked(), err
		}
		item, filled, _ := s.board.Slot(src.Index)
		if !filled {
			return s.viewLocked(), nil
		}
		src.Letter = item
	default:
		return s.viewLocked(), fmt.Errorf("%w: unknown area %q", game.ErrOutOfRange, src.Area)
	}
	s.gesture.Grab(src)
	return s.viewLocked(), nil
}

// Release puts the held letter down on dst.
func (s *SortScreen) Release(dst Target) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive || s.completed {
		return s.viewLocked(), nil
	}
	switch dst.Area {
	case AreaPool:
	case AreaSlot:
		if err := s.checkSlot(dst.Index); err != nil {
			s.gesture.Cancel()
			return s.viewLocked(), err
		}
	default:
		s.gesture.Cancel()
		return s.viewLocked(), fmt.Errorf("%w: unknown area %q", game.ErrOutOfRange, dst.Area)
	}
	m, ok := s.gesture.Release(dst)
	if !ok {
		return s.viewLocked(), nil
	}
	if err := applyMove(s.board, m); err != nil {
		return s.viewLocked(), err
	}
	s.gen++
	s.shake = nil
	log.Debug().Str("screen", s.id).Interface("move", m).Msg("sort:move")
	return s.viewLocked(), nil
}

// Cancel drops whatever is held without moving it.
func (s *SortScreen) Cancel() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture.Cancel()
	return s.viewLocked()
}

// Check grades the arrangement. An unfinished board is not a mistake.
func (s *SortScreen) Check() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive || s.completed {
		return s.viewLocked()
	}
	s.gen++
	s.gesture.Cancel()
	switch {
	case !s.board.Filled():
		s.feedback = FeedbackIncomplete
	case s.board.IsSolved(s.expected):
		s.completed = true
		s.shake = nil
		s.wrongCount = 0
		s.feedback = FeedbackSolved
	default:
		wrong := s.board.Mismatches(s.expected)
		s.mistakes++
		s.shake = wrong
		s.wrongCount = len(wrong)
		s.feedback = FeedbackWrong
		s.schedule(s.delays.Shake, true, func() { s.shake = nil })
	}
	log.Debug().Str("screen", s.id).Str("feedback", string(s.feedback)).Int("mistakes", s.mistakes).Msg("sort:check")
	return s.viewLocked()
}

func (s *SortScreen) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartLocked()
	s.board.Reset()
	s.gesture.Cancel()
	s.mistakes = 0
	s.shake = nil
	s.wrongCount = 0
	s.completed = false
}

func (s *SortScreen) viewLocked() View {
	v := s.common()
	v.Mistakes = s.mistakes
	v.Stars = game.Stars(s.mistakes)
	v.Completed = s.completed
	sv := &SortView{
		Pool: s.board.Pool(),
		Slots: lo.Map(s.board.Slots(), func(sl game.Slot[string], _ int) string {
			return sl.Item
		}),
		Expected:   append([]string(nil), s.expected...),
		Mode:       s.gesture.Mode(),
		Shake:      append([]int{}, s.shake...),
		WrongCount: s.wrongCount,
	}
	if h, ok := s.gesture.Held(); ok {
		sv.Held = &h
	}
	v.Sort = sv
	return v
}
