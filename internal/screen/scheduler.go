package screen

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d on some other goroutine.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// ClockScheduler uses real time.
type ClockScheduler struct{}

func (ClockScheduler) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ManualScheduler only moves when told to. Callbacks run on the goroutine
// calling Advance, in due order; callbacks may schedule further timers.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) After(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{s: m, at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves the clock forward by d and fires every timer that falls due.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		t.fn()
	}
	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// next pops the earliest live timer due at or before target.
func (m *ManualScheduler) next(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = slices.DeleteFunc(m.pending, func(t *manualTimer) bool { return t.stopped || t.fired })
	if len(m.pending) == 0 {
		return nil
	}
	first := slices.MinFunc(m.pending, func(a, b *manualTimer) int {
		if c := cmp.Compare(a.at, b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	if first.at > target {
		return nil
	}
	first.fired = true
	m.now = first.at
	return first
}

// Pending reports how many timers are still waiting.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
