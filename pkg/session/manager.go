package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/google/uuid"
)

// entry guards one interpreter.
type entry struct {
	mu      sync.Mutex
	interp  *rewind.Interpreter
	deleted bool
}

// Manager orchestrates session access, serializing calls per session.
type Manager struct {
	machine *rewind.Machine
	opts    []rewind.Option

	mu       sync.Mutex        // Global lock for the map
	sessions map[string]*entry // Active sessions

	logger *slog.Logger
	newID  func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithInterpreterOptions applies opts to every interpreter the manager creates.
func WithInterpreterOptions(opts ...rewind.Option) Option {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}

// WithIDGenerator replaces the UUID generator used by Create.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a registry whose sessions all run machine.
func NewManager(machine *rewind.Machine, opts ...Option) *Manager {
	m := &Manager{
		machine:  machine,
		sessions: make(map[string]*entry),
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Machine returns the definition every session runs.
func (m *Manager) Machine() *rewind.Machine { return m.machine }

// Create starts a new session with a generated ID.
func (m *Manager) Create(ctx context.Context) (string, error) {
	id := m.newID()
	if err := m.CreateWithID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// CreateWithID starts a new session under id. It fails if id is taken.
func (m *Manager) CreateWithID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return fmt.Errorf("%w: %s", domain.ErrSessionExists, id)
	}
	m.sessions[id] = &entry{interp: rewind.Interpret(m.machine, m.opts...)}
	m.logger.Debug("session created", "session_id", id)
	return nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return e, nil
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context, *rewind.Interpreter) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Deleted while we were waiting.
	if e.deleted {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, e.interp)
}

// Snapshot returns the current snapshot of a session.
func (m *Manager) Snapshot(ctx context.Context, id string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, id, func(_ context.Context, i *rewind.Interpreter) error {
		snap = i.Snapshot()
		return nil
	})
	return snap, err
}

// Delete stops the session's interpreter and forgets it.
func (m *Manager) Delete(ctx context.Context, id string) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.deleted = true
	e.interp.Stop()

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	m.logger.Debug("session deleted", "session_id", id)
	return nil
}

// List returns the active session IDs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
