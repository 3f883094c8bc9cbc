// Package session hosts one autoplay presenter per embedded web widget.
//
// Each session owns an eventloop.Loop. Every signal, state read and timer
// fire for the session runs on that loop, so the presenter underneath needs
// no locking.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/clock"
	"github.com/tinytelemetry/marquee/internal/eventloop"
	"github.com/tinytelemetry/marquee/internal/monitor"
	"github.com/tinytelemetry/marquee/internal/presenter"
)

var (
	// ErrNotFound is returned for an unknown or closed session id.
	ErrNotFound = errors.New("session: not found")
	// ErrUnknownSignal is returned for a signal kind that is not recognized.
	ErrUnknownSignal = errors.New("session: unknown signal")
)

// ItemCounter reports how many items a new session should rotate through.
type ItemCounter interface {
	Count(ctx context.Context) (int, error)
}

// Info describes a session.
type Info struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Config    autoplay.Config `json:"config"`
	State     presenter.State `json:"state"`
}

type session struct {
	id        string
	createdAt time.Time
	cfg       autoplay.Config
	loop      *eventloop.Loop
	visible   *monitor.VisibilitySwitch
	presenter *presenter.Presenter
}

// Manager tracks live sessions.
type Manager struct {
	defaults autoplay.Config
	items    ItemCounter
	observer autoplay.Observer
	log      zerolog.Logger
	loop     bool

	// clockFor picks the timer source for a session's loop.
	clockFor func(*eventloop.Loop) clock.Clock

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Manager.
type Option func(*Manager)

func WithObserver(o autoplay.Observer) Option {
	return func(m *Manager) { m.observer = o }
}

func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithLoopingTracks makes session tracks wrap on their own.
func WithLoopingTracks(loop bool) Option {
	return func(m *Manager) { m.loop = loop }
}

// NewManager creates a manager. defaults applies to sessions created without
// an explicit config.
func NewManager(defaults autoplay.Config, items ItemCounter, opts ...Option) *Manager {
	m := &Manager{
		defaults: defaults,
		items:    items,
		log:      zerolog.Nop(),
		clockFor: func(l *eventloop.Loop) clock.Clock { return l },
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Defaults returns the config used for sessions created without one.
func (m *Manager) Defaults() autoplay.Config { return m.defaults }

// Create starts a session. A nil cfg uses the manager defaults.
func (m *Manager) Create(ctx context.Context, cfg *autoplay.Config) (Info, error) {
	count, err := m.items.Count(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("count items: %w", err)
	}
	c := m.defaults
	if cfg != nil {
		c = *cfg
	}

	id := uuid.NewString()
	log := m.log.With().Str("session", id).Logger()
	loop := eventloop.New(log, 0)
	s := &session{
		id:        id,
		createdAt: time.Now().UTC(),
		cfg:       c,
		loop:      loop,
		visible:   monitor.NewVisibilitySwitch(true),
	}

	var state presenter.State
	err = loop.Do(ctx, func() {
		s.presenter = presenter.New(presenter.Options{
			Config:     c,
			Clock:      m.clockFor(loop),
			Visibility: s.visible,
			Observer:   m.observer,
			Logger:     log,
			Loop:       m.loop,
		})
		s.presenter.Load(count)
		state = s.presenter.State()
	})
	if err != nil {
		loop.Close()
		return Info{}, fmt.Errorf("start session: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	log.Info().Int("items", count).Msg("session created")
	return Info{ID: id, CreatedAt: s.createdAt, Config: c, State: state}, nil
}

// Signal applies one widget signal and returns the resulting state.
func (m *Manager) Signal(ctx context.Context, id string, sig Signal) (presenter.State, error) {
	apply, err := sig.action()
	if err != nil {
		return presenter.State{}, err
	}
	s, err := m.get(id)
	if err != nil {
		return presenter.State{}, err
	}

	var (
		state   presenter.State
		callErr error
	)
	err = s.loop.Do(ctx, func() {
		callErr = apply(s)
		state = s.presenter.State()
	})
	if err != nil {
		return presenter.State{}, m.loopErr(err)
	}
	if callErr != nil {
		return presenter.State{}, callErr
	}
	return state, nil
}

// Get returns a session's description.
func (m *Manager) Get(ctx context.Context, id string) (Info, error) {
	s, err := m.get(id)
	if err != nil {
		return Info{}, err
	}
	var state presenter.State
	if err := s.loop.Do(ctx, func() { state = s.presenter.State() }); err != nil {
		return Info{}, m.loopErr(err)
	}
	return Info{ID: s.id, CreatedAt: s.createdAt, Config: s.cfg, State: state}, nil
}

// IDs lists live session ids in sorted order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reload pushes a new item count into every live session.
func (m *Manager) Reload(ctx context.Context) error {
	count, err := m.items.Count(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	for _, id := range m.IDs() {
		s, err := m.get(id)
		if err != nil {
			continue
		}
		if err := s.loop.Do(ctx, func() { s.presenter.Load(count) }); err != nil && !errors.Is(err, eventloop.ErrClosed) {
			return err
		}
	}
	return nil
}

// Close tears a session down.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return m.shutdown(ctx, s)
}

// CloseAll tears every session down.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	all := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	clear(m.sessions)
	m.mu.Unlock()

	for _, s := range all {
		if err := m.shutdown(ctx, s); err != nil {
			m.log.Warn().Err(err).Str("session", s.id).Msg("session shutdown")
		}
	}
}

func (m *Manager) shutdown(ctx context.Context, s *session) error {
	err := s.loop.Do(ctx, s.presenter.Close)
	s.loop.Close()
	if err != nil {
		return fmt.Errorf("close session %s: %w", s.id, err)
	}
	m.log.Info().Str("session", s.id).Msg("session closed")
	return nil
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// A loop closed under a caller means the session went away concurrently.
func (m *Manager) loopErr(err error) error {
	if errors.Is(err, eventloop.ErrClosed) {
		return ErrNotFound
	}
	return err
}
