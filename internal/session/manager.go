package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"handchart/domain/core"
	"handchart/internal"
	"handchart/internal/geometry"
	"handchart/ports"
)

// ManagerConfig bounds the session table
type ManagerConfig struct {
	TTL         time.Duration
	MaxSessions int
	Options     geometry.Options
	// NewRNG supplies each session's random source; nil means time-seeded
	NewRNG func() ports.RNGPort
	Logger *internal.Logger
}

// Manager keeps sessions in memory keyed by id and evicts idle ones
type Manager struct {
	cfg ManagerConfig
	now func() time.Time

	mu       sync.Mutex
	sessions map[core.SessionID]*Session
}

// NewManager creates an empty session table
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = internal.DefaultLogger
	}
	if cfg.NewRNG == nil {
		cfg.NewRNG = func() ports.RNGPort { return ports.NewTimeSeededRand() }
	}
	return &Manager{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[core.SessionID]*Session),
	}
}

// Create starts a new session. Expired sessions are swept first; if the table
// is still full the least recently used session is dropped to make room.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.evictLocked(now)
		for len(m.sessions) >= m.cfg.MaxSessions {
			m.evictOldestLocked()
		}
	}

	s := New(core.NewSessionID(), m.cfg.NewRNG(), m.cfg.Options, m.cfg.Logger)
	s.touch(now)
	m.sessions[s.ID()] = s
	m.cfg.Logger.Debug("[SessionManager] created session %s (%d active)", s.ID().Short(), len(m.sessions))
	return s
}

// Get looks a session up by its cookie value and marks it as used
func (m *Manager) Get(raw string) (*Session, error) {
	id, err := core.ParseSessionID(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNoSession, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNoSession, id)
	}
	now := m.now()
	if m.expired(s, now) {
		delete(m.sessions, id)
		return nil, fmt.Errorf("%w: %s expired", core.ErrNoSession, id)
	}
	s.touch(now)
	return s, nil
}

// GetOrCreate returns the session for raw, or a fresh one when raw is empty,
// malformed, unknown or expired. created reports which happened.
func (m *Manager) GetOrCreate(raw string) (s *Session, created bool) {
	if raw != "" {
		if s, err := m.Get(raw); err == nil {
			return s, false
		}
	}
	return m.Create(), true
}

// Delete drops a session
func (m *Manager) Delete(id core.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// EvictExpired removes sessions idle for longer than the TTL
func (m *Manager) EvictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictLocked(m.now())
}

func (m *Manager) evictLocked(now time.Time) int {
	evicted := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.cfg.Logger.Info("[SessionManager] evicted %d idle sessions (%d active)", evicted, len(m.sessions))
	}
	return evicted
}

func (m *Manager) evictOldestLocked() {
	var oldest *Session
	for _, s := range m.sessions {
		if oldest == nil || s.idleSince().Before(oldest.idleSince()) {
			oldest = s
		}
	}
	if oldest == nil {
		return
	}
	delete(m.sessions, oldest.ID())
	m.cfg.Logger.Info("[SessionManager] table full, dropped least recently used session %s", oldest.ID().Short())
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.cfg.TTL > 0 && now.Sub(s.idleSince()) > m.cfg.TTL
}

// Run sweeps expired sessions every interval until ctx is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictExpired()
		}
	}
}
