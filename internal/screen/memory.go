package screen

import (
	"github.com/rs/zerolog/log"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/letters"
)

type CardView struct {
	Index   int    `json:"index"`
	Letter  string `json:"letter,omitempty"` // only while face up
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
}

type MemoryView struct {
	Cards      []CardView `json:"cards"`
	PairsFound int        `json:"pairsFound"`
	PairsTotal int        `json:"pairsTotal"`
	Locked     bool       `json:"locked"`
}

// MemoryScreen is the pair-finding game. A revealed pair stays up for the
// match or mismatch delay before it is settled.
type MemoryScreen struct {
	base
	board *game.Match[string]

	mistakes  int
	completed bool
}

func NewMemory(opts Options) (*MemoryScreen, error) {
	opts = opts.withDefaults()
	values, err := letters.Prefix(opts.Alphabet, opts.Pairs)
	if err != nil {
		return nil, err
	}
	board, err := game.NewMatch(values, game.WithShuffle(opts.Shuffle))
	if err != nil {
		return nil, err
	}
	s := &MemoryScreen{board: board}
	s.init(KindMemory, opts, s.viewLocked)
	return s, nil
}

// Reveal turns a card over. A third card while two are showing, a card that
// is already up, or any card after the game ended is ignored.
func (s *MemoryScreen) Reveal(index int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive || s.completed {
		return s.viewLocked(), nil
	}
	ok, err := s.board.Reveal(index)
	if err != nil || !ok {
		return s.viewLocked(), err
	}
	s.gen++
	log.Debug().Str("screen", s.id).Int("card", index).Msg("memory:reveal")
	if a, b, pending := s.board.Pending(); pending {
		d := s.delays.Mismatch
		if a.Value == b.Value {
			d = s.delays.Match
		}
		s.schedule(d, false, s.resolve)
	}
	return s.viewLocked(), nil
}

func (s *MemoryScreen) resolve() {
	res := s.board.Resolve()
	if !res.Resolved {
		return
	}
	if !res.Matched {
		s.mistakes++
		s.feedback = FeedbackWrong
		return
	}
	s.feedback = FeedbackCorrect
	if res.AllDone {
		s.schedule(s.delays.Complete, false, func() {
			s.completed = true
			s.feedback = FeedbackSolved
		})
	}
}

func (s *MemoryScreen) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartLocked()
	s.board.Reset()
	s.mistakes = 0
	s.completed = false
}

func (s *MemoryScreen) viewLocked() View {
	v := s.common()
	v.Mistakes = s.mistakes
	v.Stars = game.Stars(s.mistakes)
	v.Completed = s.completed
	cards := s.board.Cards()
	mv := &MemoryView{
		Cards:      make([]CardView, len(cards)),
		PairsFound: len(s.board.MatchedPairs()),
		PairsTotal: s.board.Pairs(),
		Locked:     s.board.Locked(),
	}
	for i, c := range cards {
		cv := CardView{Index: i, FaceUp: s.board.FaceUp(i), Matched: s.board.IsMatched(i)}
		if cv.FaceUp {
			cv.Letter = c.Value
		}
		mv.Cards[i] = cv
	}
	v.Memory = mv
	return v
}
