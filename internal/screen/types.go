// Package screen adapts the game engines to a renderer. A screen owns one
// engine for as long as the player stays on it, turns taps, drags and drops
// into engine calls, runs the settle delays between a move and its outcome,
// and hands out View snapshots for display.
package screen

import (
	"time"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/letters"
)

type Kind string

const (
	KindFind   Kind = "find"
	KindSort   Kind = "sort"
	KindMemory Kind = "memory"
)

// Feedback is a message key; renderers map it to text and a mascot.
type Feedback string

const (
	FeedbackPrompt     Feedback = "PROMPT"
	FeedbackCorrect    Feedback = "CORRECT"
	FeedbackWrong      Feedback = "WRONG"
	FeedbackRetry      Feedback = "RETRY"
	FeedbackIncomplete Feedback = "INCOMPLETE"
	FeedbackSolved     Feedback = "SOLVED"
)

type View struct {
	ID        string   `json:"id"`
	Kind      Kind     `json:"game"`
	Feedback  Feedback `json:"feedback"`
	Mistakes  int      `json:"mistakes"`
	Stars     int      `json:"stars"`
	Completed bool     `json:"completed"`

	Find   *FindView   `json:"find,omitempty"`
	Sort   *SortView   `json:"sort,omitempty"`
	Memory *MemoryView `json:"memory,omitempty"`
}

type Screen interface {
	ID() string
	Kind() Kind
	View() View
	Restart()
	Close()
}

// Delays are the pauses between a move and the screen showing its outcome.
type Delays struct {
	Advance  time.Duration // correct letter → next question
	Retry    time.Duration // wrong letter → "try again" prompt
	Shake    time.Duration // wrong slots highlighted
	Match    time.Duration // matching pair stays up before it is recorded
	Mismatch time.Duration // missed pair stays up before flipping back
	Complete time.Duration // last pair → game over
}

var DefaultDelays = Delays{
	Advance:  1500 * time.Millisecond,
	Retry:    2500 * time.Millisecond,
	Shake:    500 * time.Millisecond,
	Match:    800 * time.Millisecond,
	Mismatch: 1200 * time.Millisecond,
	Complete: 500 * time.Millisecond,
}

const defaultCount = 5

type Options struct {
	ID        string
	Alphabet  []string
	Questions int // find
	Slots     int // sort
	Pairs     int // memory
	Input     InputMode
	Delays    Delays
	Scheduler Scheduler
	Shuffle   game.ShuffleFunc

	// Notify receives the view after every change that was not a direct
	// response to a call, i.e. when a delay runs out.
	Notify func(View)
}

// merge fills the zero fields of o from defaults.
func (o Options) merge(defaults Options) Options {
	if len(o.Alphabet) == 0 {
		o.Alphabet = defaults.Alphabet
	}
	if o.Questions == 0 {
		o.Questions = defaults.Questions
	}
	if o.Slots == 0 {
		o.Slots = defaults.Slots
	}
	if o.Pairs == 0 {
		o.Pairs = defaults.Pairs
	}
	if o.Input == "" {
		o.Input = defaults.Input
	}
	if o.Delays == (Delays{}) {
		o.Delays = defaults.Delays
	}
	if o.Scheduler == nil {
		o.Scheduler = defaults.Scheduler
	}
	if o.Shuffle == nil {
		o.Shuffle = defaults.Shuffle
	}
	if o.Notify == nil {
		o.Notify = defaults.Notify
	}
	return o
}

func (o Options) withDefaults() Options {
	o = o.merge(Options{
		Alphabet:  letters.Default,
		Input:     InputDrag,
		Delays:    DefaultDelays,
		Scheduler: ClockScheduler{},
	})
	n := min(defaultCount, len(o.Alphabet))
	if o.Questions == 0 {
		o.Questions = n
	}
	if o.Slots == 0 {
		o.Slots = n
	}
	if o.Pairs == 0 {
		o.Pairs = n
	}
	return o
}
