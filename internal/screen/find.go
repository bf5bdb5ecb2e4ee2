package screen

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/letters"
)

type FindView struct {
	Target     string   `json:"target"`
	Question   int      `json:"question"`
	Total      int      `json:"total"`
	Answered   int      `json:"answered"`
	Choices    []string `json:"choices"`
	Processing bool     `json:"processing"`
}

// FindScreen asks for one letter at a time; the player taps it among all
// the choices.
type FindScreen struct {
	base
	choices []string
	session *game.Session[string]

	// target stays on the answered letter until the advance delay runs out.
	target     string
	processing bool
	completed  bool
}

func NewFind(opts Options) (*FindScreen, error) {
	opts = opts.withDefaults()
	sess, err := game.NewSession(opts.Alphabet, opts.Questions, game.WithShuffle(opts.Shuffle))
	if err != nil {
		return nil, err
	}
	s := &FindScreen{
		choices: append([]string(nil), opts.Alphabet...),
		session: sess,
	}
	s.init(KindFind, opts, s.viewLocked)
	s.begin()
	return s, nil
}

func (s *FindScreen) begin() {
	s.target, _ = s.session.Current()
	s.processing = false
	s.completed = false
}

// Tap answers the current question with letter. Taps during the advance
// delay or after the game ended are ignored.
func (s *FindScreen) Tap(letter string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	letter = letters.Normalize(letter)
	if !letters.Contains(s.choices, letter) {
		return s.viewLocked(), fmt.Errorf("%w: %q is not one of the choices", game.ErrOutOfRange, letter)
	}
	if !s.alive || s.completed || s.processing {
		return s.viewLocked(), nil
	}
	s.gen++
	res := s.session.Submit(letter)
	log.Debug().Str("screen", s.id).Str("letter", letter).Bool("correct", res.Correct).Msg("find:tap")
	if !res.Correct {
		s.feedback = FeedbackWrong
		s.schedule(s.delays.Retry, true, func() { s.feedback = FeedbackRetry })
		return s.viewLocked(), nil
	}
	s.feedback = FeedbackCorrect
	s.processing = true
	s.schedule(s.delays.Advance, false, s.advance)
	return s.viewLocked(), nil
}

func (s *FindScreen) advance() {
	s.processing = false
	if s.session.Completed() {
		s.completed = true
		s.feedback = FeedbackSolved
		return
	}
	s.target, _ = s.session.Current()
	s.feedback = FeedbackPrompt
}

func (s *FindScreen) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartLocked()
	s.session.Reset()
	s.begin()
}

func (s *FindScreen) viewLocked() View {
	v := s.common()
	v.Mistakes = s.session.Mistakes()
	v.Stars = s.session.Stars()
	v.Completed = s.completed
	answered := s.session.Position()
	question := answered + 1
	if s.processing {
		question = answered
	}
	v.Find = &FindView{
		Target:     s.target,
		Question:   min(question, s.session.Len()),
		Total:      s.session.Len(),
		Answered:   answered,
		Choices:    append([]string(nil), s.choices...),
		Processing: s.processing,
	}
	return v
}
