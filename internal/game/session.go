package game

import "fmt"

type SubmitResult struct {
	Correct   bool `json:"correct"`
	Completed bool `json:"completed"`
}

// SessionState is a copy of a session's state, safe to hand to a renderer.
type SessionState[T comparable] struct {
	Sequence  []T  `json:"sequence"`
	Position  int  `json:"position"`
	Mistakes  int  `json:"mistakes"`
	Completed bool `json:"completed"`
	Stars     int  `json:"stars"`
}

// Session walks through a shuffled sequence of targets, one correct answer
// at a time. The sequence is drawn once per Reset and consumed in order.
type Session[T comparable] struct {
	alphabet []T
	count    int
	shuffle  ShuffleFunc

	sequence  []T
	position  int
	mistakes  int
	completed bool
}

// NewSession draws questionCount distinct targets from alphabet.
// Asking for more questions than the alphabet has values is rejected rather
// than repeating targets.
func NewSession[T comparable](alphabet []T, questionCount int, opts ...Option) (*Session[T], error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrConfiguration)
	}
	if hasDuplicates(alphabet) {
		return nil, fmt.Errorf("%w: alphabet contains duplicate values", ErrConfiguration)
	}
	if questionCount <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive, got %d", ErrConfiguration, questionCount)
	}
	if questionCount > len(alphabet) {
		return nil, fmt.Errorf("%w: %d questions requested but alphabet has %d values",
			ErrConfiguration, questionCount, len(alphabet))
	}
	o := buildOptions(opts)
	s := &Session[T]{
		alphabet: append([]T(nil), alphabet...),
		count:    questionCount,
		shuffle:  o.shuffle,
	}
	s.Reset()
	return s, nil
}

// Reset starts over with a fresh draw.
func (s *Session[T]) Reset() {
	s.sequence = shuffled(s.alphabet, s.shuffle)[:s.count]
	s.position = 0
	s.mistakes = 0
	s.completed = false
}

// Current returns the target the player is asked for.
func (s *Session[T]) Current() (T, error) {
	if s.completed {
		var zero T
		return zero, fmt.Errorf("%w: session completed", ErrInvalidState)
	}
	return s.sequence[s.position], nil
}

// Submit checks answer against the current target. After completion it is a
// no-op reporting {false, true}.
func (s *Session[T]) Submit(answer T) SubmitResult {
	if s.completed {
		return SubmitResult{Correct: false, Completed: true}
	}
	if answer != s.sequence[s.position] {
		s.mistakes++
		return SubmitResult{}
	}
	s.position++
	if s.position == len(s.sequence) {
		s.completed = true
	}
	return SubmitResult{Correct: true, Completed: s.completed}
}

func (s *Session[T]) Position() int   { return s.position }
func (s *Session[T]) Len() int        { return len(s.sequence) }
func (s *Session[T]) Mistakes() int   { return s.mistakes }
func (s *Session[T]) Completed() bool { return s.completed }
func (s *Session[T]) Stars() int      { return Stars(s.mistakes) }

func (s *Session[T]) Sequence() []T {
	return append([]T(nil), s.sequence...)
}

func (s *Session[T]) State() State {
	if s.completed {
		return StateCompleted
	}
	return StateInProgress
}

func (s *Session[T]) Snapshot() SessionState[T] {
	return SessionState[T]{
		Sequence:  s.Sequence(),
		Position:  s.position,
		Mistakes:  s.mistakes,
		Completed: s.completed,
		Stars:     s.Stars(),
	}
}
