package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diaglab/labdesk/internal/pkg/metrics"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

// identityRecord is the persisted JSON form of an Identity. Role holds the
// value as delivered by the backend, before normalization.
type identityRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	LabID   string `json:"labId,omitempty"`
	LabName string `json:"labName,omitempty"`
}

var errIncompleteRecord = errors.New("incomplete session record")

// SessionStore is the single source of truth for who is logged in. It keeps
// the in-memory identity and the persisted record in step: writers hold the
// lock across the storage write, so readers never see a half-applied change.
type SessionStore struct {
	storage ports.SessionStorage
	audit   ports.AuditRecorder
	log     zerolog.Logger

	mu      sync.RWMutex
	current *domain.Identity

	once  sync.Once
	ready chan struct{}
}

func NewSessionStore(storage ports.SessionStorage, audit ports.AuditRecorder, log zerolog.Logger) *SessionStore {
	if audit == nil {
		audit = ports.NopAuditRecorder{}
	}
	return &SessionStore{
		storage: storage,
		audit:   audit,
		log:     log,
		ready:   make(chan struct{}),
	}
}

// Rehydrate restores a persisted session at startup. Malformed or partial
// records are erased and the store starts unauthenticated. It never fails and
// only the first call has any effect.
func (s *SessionStore) Rehydrate(ctx context.Context) {
	s.once.Do(func() {
		defer close(s.ready)

		s.mu.Lock()
		defer s.mu.Unlock()

		rec, err := s.storage.Load(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("session storage unavailable, starting unauthenticated")
			metrics.RehydrationsTotal.WithLabelValues("storage_error").Inc()
			return
		}
		if len(rec.Identity) == 0 && rec.Token == "" {
			metrics.RehydrationsTotal.WithLabelValues("empty").Inc()
			return
		}

		id, err := decodeIdentity(rec)
		if err != nil {
			s.log.Warn().Err(err).Msg("discarding persisted session")
			if delErr := s.storage.Delete(ctx); delErr != nil {
				s.log.Error().Err(delErr).Msg("failed to erase persisted session")
			}
			metrics.RehydrationsTotal.WithLabelValues("discarded").Inc()
			s.audit.Record(newAuthEvent(domain.EventSessionDiscarded, "", "", err.Error()))
			return
		}

		s.current = id
		metrics.RehydrationsTotal.WithLabelValues("restored").Inc()
		s.audit.Record(newAuthEvent(domain.EventSessionRehydrated, id.Email, id.Role.String(), ""))
		s.log.Info().Str("user_id", id.ID).Str("role", id.Role.String()).Msg("session restored")
	})
}

// Loading reports whether rehydration has not finished yet.
func (s *SessionStore) Loading() bool {
	select {
	case <-s.ready:
		return false
	default:
		return true
	}
}

// Ready is closed once rehydration completes.
func (s *SessionStore) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until rehydration completes or ctx is done.
func (s *SessionStore) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Adopt makes id the active identity, persisting the identity record and the
// token before swapping memory. On a storage error nothing changes.
func (s *SessionStore) Adopt(ctx context.Context, id domain.Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}

	reported := id.ReportedRole
	if reported == "" {
		reported = id.Role.String()
	}
	raw, err := json.Marshal(identityRecord{
		ID:      id.ID,
		Name:    id.Name,
		Email:   id.Email,
		Role:    reported,
		LabID:   id.LabID,
		LabName: id.LabName,
	})
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(ctx, ports.SessionRecord{Identity: raw, Token: id.Token}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	adopted := id
	s.current = &adopted
	return nil
}

// Clear drops the active identity and erases the persisted record. Memory is
// cleared even when the storage delete fails; that error is returned.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Delete(ctx); err != nil {
		return fmt.Errorf("erase session: %w", err)
	}
	return nil
}

// Current returns a copy of the active identity, or nil.
func (s *SessionStore) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// Token returns the bearer token of the active identity, or "".
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func decodeIdentity(rec ports.SessionRecord) (*domain.Identity, error) {
	if len(rec.Identity) == 0 || rec.Token == "" {
		return nil, errIncompleteRecord
	}

	var r identityRecord
	if err := json.Unmarshal(rec.Identity, &r); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	role, err := domain.NormalizeRole(r.Role)
	if err != nil {
		return nil, err
	}

	id := &domain.Identity{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         role,
		Token:        rec.Token,
		LabID:        r.LabID,
		LabName:      r.LabName,
		ReportedRole: r.Role,
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return id, nil
}

func newAuthEvent(kind domain.AuthEventKind, username, role, reason string) domain.AuthEvent {
	return domain.AuthEvent{
		ID:       uuid.NewString(),
		Kind:     kind,
		Username: username,
		Role:     role,
		Reason:   reason,
		At:       time.Now().UTC(),
	}
}
