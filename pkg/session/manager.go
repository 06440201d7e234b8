package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"p9e.in/hotelflex/models"
)

// defaultTTL is how long an idle session survives. Pruning happens
// opportunistically on Create; there is no background sweeper.
const defaultTTL = 24 * time.Hour

// Manager owns the live sessions. Sessions are fully isolated from each
// other; the shared spreadsheet is the only common resource.
type Manager struct {
	mu             sync.Mutex
	sessions       map[uuid.UUID]*Session
	catalog        models.Catalog
	includeRebound bool
	ttl            time.Duration
}

// NewManager creates a manager serving the given catalog.
func NewManager(catalog models.Catalog, includeRebound bool) *Manager {
	return &Manager{
		sessions:       make(map[uuid.UUID]*Session),
		catalog:        catalog,
		includeRebound: includeRebound,
		ttl:            defaultTTL,
	}
}

// Catalog returns the taxonomy this manager serves.
func (m *Manager) Catalog() models.Catalog {
	return m.catalog
}

// Create starts a fresh session on the intro screen.
func (m *Manager) Create() (*Session, error) {
	s, err := New(m.catalog, m.includeRebound)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	m.sessions[s.ID] = s
	return s, nil
}

// Get looks up a live session.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session, e.g. after an explicit reset-and-leave.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) pruneLocked() {
	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.TouchedAt().Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
