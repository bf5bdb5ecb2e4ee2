// Package game holds the engines behind the letter games: the question
// session used by find-the-letter, the slot board used by sort-the-letters
// and the pair board used by memory-match. Engines are synchronous and never
// read the clock; settle delays belong to whoever drives them.
package game

import (
	"errors"
	"math/rand"

	"github.com/samber/lo"
)

type State string

const (
	StateInProgress State = "InProgress"
	StateCompleted  State = "Completed"
)

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrOutOfRange    = errors.New("index out of range")
	ErrInvalidState  = errors.New("invalid state for action")
)

// ShuffleFunc has the shape of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

type options struct {
	shuffle ShuffleFunc
}

type Option func(*options)

// WithShuffle replaces the default uniform shuffle. Tests use it to get a
// predictable order.
func WithShuffle(fn ShuffleFunc) Option {
	return func(o *options) {
		o.shuffle = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{shuffle: rand.Shuffle}
	for _, opt := range opts {
		opt(&o)
	}
	if o.shuffle == nil {
		o.shuffle = rand.Shuffle
	}
	return o
}

func shuffled[T any](items []T, shuffle ShuffleFunc) []T {
	out := append([]T(nil), items...)
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func hasDuplicates[T comparable](items []T) bool {
	return len(lo.Uniq(items)) != len(items)
}
