package service

import (
	"context"
	"errors"
	"sync"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubStorage struct {
	mu       sync.Mutex
	identity []byte
	token    string
	loadErr  error
	saveErr  error
	delErr   error
	deletes  int
}

func (s *stubStorage) Load(_ context.Context) (ports.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return ports.SessionRecord{}, s.loadErr
	}
	return ports.SessionRecord{Identity: append([]byte(nil), s.identity...), Token: s.token}, nil
}

func (s *stubStorage) Save(_ context.Context, rec ports.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.identity = append([]byte(nil), rec.Identity...)
	s.token = rec.Token
	return nil
}

func (s *stubStorage) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.delErr != nil {
		return s.delErr
	}
	s.identity = nil
	s.token = ""
	return nil
}

func (s *stubStorage) empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.identity) == 0 && s.token == ""
}

type stubAuthAPI struct {
	loginFn   func(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error)
	logoutErr error
	logouts   []string
}

func (a *stubAuthAPI) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	return a.loginFn(ctx, req)
}

func (a *stubAuthAPI) Logout(_ context.Context, token string) error {
	a.logouts = append(a.logouts, token)
	return a.logoutErr
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingAudit) Record(e domain.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingAudit) kinds() []domain.AuthEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type userMessageError struct{ msg string }

func (e *userMessageError) Error() string       { return "lab api: " + e.msg }
func (e *userMessageError) UserMessage() string { return e.msg }

var errNetwork = errors.New("dial tcp 127.0.0.1:9090: connect: connection refused")
