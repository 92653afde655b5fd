package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diaglab/labdesk/internal/pkg/metrics"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

const (
	msgMissingCredentials = "username and password are required"
	msgLoginFailed        = "login failed"
	msgUnsupportedRole    = "this account's role is not supported"
	msgSessionNotSaved    = "could not save the session, please try again"
)

// LoginResult is the outcome of a login attempt. Failures carry a
// human-readable Message and leave the session untouched.
type LoginResult struct {
	Success  bool
	Identity *domain.Identity
	Message  string
}

// LogoutResult reports the remote logout outcome. The local session is
// always cleared regardless of RemoteErr.
type LogoutResult struct {
	RemoteErr error
}

// AuthGateway performs login and logout against the remote lab API and
// applies the result to the session store.
type AuthGateway struct {
	api     ports.AuthAPI
	session *SessionStore
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewAuthGateway(api ports.AuthAPI, session *SessionStore, audit ports.AuditRecorder, log zerolog.Logger) *AuthGateway {
	if audit == nil {
		audit = ports.NopAuditRecorder{}
	}
	return &AuthGateway{api: api, session: session, audit: audit, log: log}
}

// Login authenticates against the remote API. Only a response carrying a
// token and a supported role is adopted into the session store.
func (g *AuthGateway) Login(ctx context.Context, username, password string) LoginResult {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return g.fail(username, "rejected", msgMissingCredentials)
	}

	resp, err := g.api.Login(ctx, ports.LoginRequest{Username: username, Password: password})
	if err != nil {
		g.log.Warn().Err(err).Str("username", username).Msg("login request failed")
		return g.fail(username, "transport_error", errorMessage(err))
	}
	if resp == nil || resp.Token == "" {
		msg := msgLoginFailed
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return g.fail(username, "rejected", msg)
	}

	role, err := domain.NormalizeRole(resp.Role)
	if err != nil {
		g.log.Warn().Err(err).Str("username", username).Msg("login returned unsupported role")
		return g.fail(username, "unknown_role", msgUnsupportedRole)
	}

	id := domain.Identity{
		ID:           resp.ID,
		Name:         resp.Name,
		Email:        resp.Email,
		Role:         role,
		Token:        resp.Token,
		LabID:        resp.LabID,
		LabName:      resp.LabName,
		ReportedRole: resp.Role,
	}
	if err := g.session.Adopt(ctx, id); err != nil {
		g.log.Error().Err(err).Str("username", username).Msg("failed to adopt session")
		return g.fail(username, "storage_error", msgSessionNotSaved)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	g.audit.Record(newAuthEvent(domain.EventLoginSucceeded, username, role.String(), ""))
	g.log.Info().Str("user_id", id.ID).Str("role", role.String()).Msg("login succeeded")

	adopted := g.session.Current()
	return LoginResult{Success: true, Identity: adopted}
}

// Logout calls the remote logout endpoint on a best-effort basis and then
// always clears the local session.
func (g *AuthGateway) Logout(ctx context.Context) (res LogoutResult) {
	current := g.session.Current()

	defer func() {
		if err := g.session.Clear(ctx); err != nil {
			g.log.Error().Err(err).Msg("failed to erase persisted session")
		}
		var username, role string
		if current != nil {
			username, role = current.Email, current.Role.String()
		}
		reason := ""
		if res.RemoteErr != nil {
			reason = res.RemoteErr.Error()
		}
		g.audit.Record(newAuthEvent(domain.EventLogout, username, role, reason))
	}()

	if current == nil {
		metrics.LogoutsTotal.WithLabelValues("skipped").Inc()
		return res
	}

	if err := g.api.Logout(ctx, current.Token); err != nil {
		g.log.Warn().Err(err).Str("user_id", current.ID).Msg("remote logout failed, clearing local session anyway")
		metrics.LogoutsTotal.WithLabelValues("failed").Inc()
		res.RemoteErr = err
		return res
	}

	metrics.LogoutsTotal.WithLabelValues("ok").Inc()
	return res
}

func (g *AuthGateway) fail(username, result, msg string) LoginResult {
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	g.audit.Record(newAuthEvent(domain.EventLoginFailed, username, "", msg))
	return LoginResult{Message: msg}
}

// errorMessage extracts a user-facing message from a transport error.
func errorMessage(err error) string {
	var me interface{ UserMessage() string }
	if errors.As(err, &me) && me.UserMessage() != "" {
		return me.UserMessage()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the lab server did not respond in time"
	}
	return "unable to reach the lab server"
}
