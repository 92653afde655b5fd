package provider

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

// Manager hands out the provider for the current identity. A new provider
// with empty caches is built whenever the identity's role, ID or token
// changes, so data never leaks from one session to the next.
type Manager struct {
	api ports.LabAPI
	log zerolog.Logger

	mu      sync.Mutex
	current Provider
	key     identityKey
}

type identityKey struct {
	id    string
	role  domain.Role
	token string
}

func NewManager(api ports.LabAPI, log zerolog.Logger) *Manager {
	return &Manager{api: api, log: log}
}

// For returns the provider scoped to id, or nil when there is no usable
// identity.
func (m *Manager) For(id *domain.Identity) Provider {
	if id == nil || id.Validate() != nil {
		m.Reset()
		return nil
	}

	key := identityKey{id: id.ID, role: id.Role, token: id.Token}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.key == key {
		return m.current
	}

	switch id.Role {
	case domain.RoleAdmin:
		m.current = NewAdminProvider(m.api)
	case domain.RoleOperator:
		m.current = NewReceptionProvider(m.api)
	}
	m.key = key
	m.log.Debug().Str("user_id", id.ID).Str("role", id.Role.String()).Msg("data provider created")
	return m.current
}

// Reset drops the current provider and its caches.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.key = identityKey{}
}
