package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/variant"
)

// Options configures a Manager.
type Options struct {
	// IdleTimeout evicts sessions unused for this long. Zero disables eviction.
	IdleTimeout time.Duration
	// JanitorInterval is how often idle sessions are looked for. Defaults to
	// a quarter of IdleTimeout, at least one second.
	JanitorInterval time.Duration
	// MaxSessions bounds live sessions. Zero means unbounded.
	MaxSessions int
	Logger      *slog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Manager holds live sessions keyed by id.
type Manager struct {
	registry *variant.Registry
	opts     Options
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewManager creates a manager and starts its janitor when IdleTimeout is set.
func NewManager(registry *variant.Registry, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.JanitorInterval <= 0 && opts.IdleTimeout > 0 {
		opts.JanitorInterval = max(opts.IdleTimeout/4, time.Second)
	}

	m := &Manager{
		registry: registry,
		opts:     opts,
		logger:   opts.Logger.With("component", "sessions"),
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}

	if opts.IdleTimeout > 0 {
		m.wg.Add(1)
		go m.janitor()
	}
	return m
}

// Create starts a session holding a new document of the named variant.
func (m *Manager) Create(variantName string) (*Session, error) {
	v, err := m.registry.Get(variantName)
	if err != nil {
		return nil, err
	}

	s := newSession(uuid.NewString(), v, m.opts.Now)

	m.mu.Lock()
	if m.opts.MaxSessions > 0 && len(m.sessions) >= m.opts.MaxSessions {
		m.mu.Unlock()
		return nil, &LimitError{Max: m.opts.MaxSessions}
	}
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session", s.ID, "variant", v.Name)
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return s, nil
}

// Snapshot returns a copy of the session's current document.
func (m *Manager) Snapshot(id string) (types.Document, error) {
	s, err := m.Get(id)
	if err != nil {
		return types.Document{}, err
	}
	return s.Snapshot(), nil
}

// Apply runs an op script against the session's document.
func (m *Manager) Apply(id string, ops []document.Op) (types.Document, error) {
	s, err := m.Get(id)
	if err != nil {
		return types.Document{}, err
	}

	doc, err := s.Apply(ops)
	if err != nil {
		m.logger.Debug("ops rejected", "session", id, "ops", len(ops), "error", err)
		return doc, err
	}
	m.logger.Debug("ops applied", "session", id, "ops", len(ops))
	return doc, nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return &NotFoundError{ID: id}
	}
	m.logger.Info("session deleted", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the janitor. Sessions stay readable until the manager is dropped.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
	m.wg.Wait()
}

func (m *Manager) janitor() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.opts.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stop:
			return
		}
	}
}

// evictIdle removes sessions unused for longer than IdleTimeout and returns
// how many were removed.
func (m *Manager) evictIdle() int {
	cutoff := m.opts.Now().Add(-m.opts.IdleTimeout)

	m.mu.Lock()
	idle := make([]string, 0)
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			idle = append(idle, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range idle {
		m.logger.Info("session evicted", "session", id, "idle_timeout", m.opts.IdleTimeout)
	}
	return len(idle)
}
