package session

import (
	"context"
	"sync"
	"time"

	"burntest/internal/dashboard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName carries the session id in the browser
const CookieName = "dashboard_session"

// Factory builds the controller of a new session
type Factory func() *dashboard.Controller

type entry struct {
	controller *dashboard.Controller
	lastSeen   time.Time
}

// Manager maps session ids to dashboard controllers and evicts idle sessions
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewManager creates a manager whose sessions expire after ttl without requests
func NewManager(factory Factory, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*entry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("sessions"),
	}
}

// Get returns the controller for id, creating a session when id is unknown or expired.
// created is true for a new session, whose id must be handed back to the browser.
func (m *Manager) Get(id string) (sessionID string, controller *dashboard.Controller, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.sessions[id]; ok && now.Sub(e.lastSeen) <= m.ttl {
		e.lastSeen = now
		return id, e.controller, false
	}

	sessionID = uuid.NewString()
	e := &entry{controller: m.factory(), lastSeen: now}
	m.sessions[sessionID] = e
	m.logger.Debug("session created", zap.String("session_id", sessionID))
	return sessionID, e.controller, true
}

// Sweep drops sessions idle for longer than the ttl and returns how many were dropped
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	dropped := 0
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.Info("idle sessions evicted", zap.Int("count", dropped), zap.Int("remaining", len(m.sessions)))
	}
	return dropped
}

// Run sweeps every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Len is the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
