package screen

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrScreenNotFound = errors.New("screen not found")
	ErrUnknownKind    = errors.New("unknown game")
	ErrWrongKind      = errors.New("action does not apply to this game")
)

// New builds a screen of the given kind.
func New(kind Kind, opts Options) (Screen, error) {
	switch kind {
	case KindFind:
		return NewFind(opts)
	case KindSort:
		return NewSort(opts)
	case KindMemory:
		return NewMemory(opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// As narrows s to a concrete screen type, failing with ErrWrongKind.
func As[T Screen](s Screen) (T, error) {
	t, ok := s.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrWrongKind, s.Kind())
	}
	return t, nil
}

type entry struct {
	screen   Screen
	openedAt time.Time
}

// Manager keeps the open screens by id for transports that address screens
// across requests.
type Manager struct {
	mu       sync.RWMutex
	defaults Options
	screens  map[string]*entry
}

func NewManager(defaults Options) *Manager {
	return &Manager{defaults: defaults, screens: make(map[string]*entry)}
}

// Open creates a screen; zero fields of opts come from the manager defaults.
func (m *Manager) Open(kind Kind, opts Options) (Screen, error) {
	s, err := New(kind, opts.merge(m.defaults))
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screens[s.ID()] = &entry{screen: s, openedAt: time.Now().UTC()}
	log.Info().Str("screen", s.ID()).Str("game", string(kind)).Int("open", len(m.screens)).Msg("screen opened")
	return s, nil
}

func (m *Manager) Get(id string) (Screen, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e := m.screens[id]
	if e == nil {
		return nil, ErrScreenNotFound
	}
	return e.screen, nil
}

// Close closes and forgets the screen.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	e := m.screens[id]
	delete(m.screens, id)
	n := len(m.screens)
	m.mu.Unlock()
	if e == nil {
		return ErrScreenNotFound
	}
	e.screen.Close()
	log.Info().Str("screen", id).Dur("age", time.Since(e.openedAt)).Int("open", n).Msg("screen closed")
	return nil
}

// CloseAll closes every open screen, e.g. on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	screens := m.screens
	m.screens = make(map[string]*entry)
	m.mu.Unlock()
	for _, e := range screens {
		e.screen.Close()
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.screens)
}
