package screen

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// base carries what every screen has: identity, the lock serialising
// transport calls against timer callbacks, and the pending timers.
//
// epoch changes on Restart and Close and invalidates every pending timer.
// gen changes on every accepted player action and only invalidates timers
// scheduled as superseded-by-input.
type base struct {
	mu sync.Mutex

	id     string
	kind   Kind
	sched  Scheduler
	delays Delays
	notify func(View)
	render func() View

	alive    bool
	epoch    uint64
	gen      uint64
	timers   []Timer
	feedback Feedback
}

func (b *base) init(kind Kind, opts Options, render func() View) {
	b.id = opts.ID
	if b.id == "" {
		b.id = uuid.NewString()
	}
	b.kind = kind
	b.sched = opts.Scheduler
	b.delays = opts.Delays
	b.notify = opts.Notify
	b.render = render
	b.alive = true
	b.feedback = FeedbackPrompt
	log.Debug().Str("screen", b.id).Str("game", string(kind)).Msg("screen opened")
}

func (b *base) ID() string   { return b.id }
func (b *base) Kind() Kind   { return b.kind }
func (b *base) common() View { return View{ID: b.id, Kind: b.kind, Feedback: b.feedback} }

// schedule runs fn under the lock after d, then notifies. It is dropped if
// the screen was closed or restarted meanwhile, and, when superseded is set,
// if the player did something else in between.
func (b *base) schedule(d time.Duration, superseded bool, fn func()) {
	epoch, gen := b.epoch, b.gen
	t := b.sched.After(d, func() {
		b.mu.Lock()
		if !b.alive || b.epoch != epoch || (superseded && b.gen != gen) {
			b.mu.Unlock()
			return
		}
		fn()
		v := b.render()
		notify := b.notify
		b.mu.Unlock()
		log.Debug().Str("screen", b.id).Str("feedback", string(v.Feedback)).Msg("delayed transition")
		if notify != nil {
			notify(v)
		}
	})
	b.timers = append(b.timers, t)
}

func (b *base) stopTimers() {
	for _, t := range b.timers {
		t.Stop()
	}
	b.timers = nil
	b.epoch++
	b.gen++
}

func (b *base) restartLocked() {
	b.stopTimers()
	b.feedback = FeedbackPrompt
	log.Debug().Str("screen", b.id).Str("game", string(b.kind)).Msg("screen restarted")
}

// Close abandons the screen. Timers already in flight become no-ops.
func (b *base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return
	}
	b.alive = false
	b.stopTimers()
	log.Debug().Str("screen", b.id).Str("game", string(b.kind)).Msg("screen closed")
}

func (b *base) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.render()
}
