package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

func newGateway(api *stubAuthAPI) (*AuthGateway, *SessionStore, *stubStorage, *recordingAudit) {
	storage := &stubStorage{}
	audit := &recordingAudit{}
	store := NewSessionStore(storage, audit, zerolog.Nop())
	store.Rehydrate(context.Background())
	return NewAuthGateway(api, store, audit, zerolog.Nop()), store, storage, audit
}

func loginReturns(resp *ports.LoginResponse, err error) *stubAuthAPI {
	return &stubAuthAPI{
		loginFn: func(context.Context, ports.LoginRequest) (*ports.LoginResponse, error) {
			return resp, err
		},
	}
}

func TestAuthGateway_Login_Admin(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(_ context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
			assert.Equal(t, "ada", req.Username)
			assert.Equal(t, "s3cret", req.Password)
			return &ports.LoginResponse{Token: "tok-a", Role: "Admin", ID: "u1", Name: "Ada", Email: "ada@lab.test", LabID: "lab-1"}, nil
		},
	}
	gw, store, storage, audit := newGateway(api)

	res := gw.Login(context.Background(), " ada ", "s3cret")

	require.True(t, res.Success, res.Message)
	require.NotNil(t, res.Identity)
	assert.Equal(t, domain.RoleAdmin, res.Identity.Role)
	assert.Equal(t, "tok-a", store.Token())
	assert.Equal(t, "tok-a", storage.token)
	assert.Equal(t, []domain.AuthEventKind{domain.EventLoginSucceeded}, audit.kinds())
}

func TestAuthGateway_Login_NormalizesLegacyRole(t *testing.T) {
	gw, store, storage, _ := newGateway(loginReturns(&ports.LoginResponse{Token: "tok-r", Role: "Receptionist", ID: "u2"}, nil))

	res := gw.Login(context.Background(), "desk", "pw")

	require.True(t, res.Success)
	assert.Equal(t, domain.RoleOperator, res.Identity.Role)
	assert.Equal(t, domain.RoleOperator, store.Current().Role)
	assert.Contains(t, string(storage.identity), `"role":"Receptionist"`)
}

func TestAuthGateway_Login_WithoutTokenLeavesSessionUnchanged(t *testing.T) {
	gw, store, storage, audit := newGateway(loginReturns(&ports.LoginResponse{Token: "tok-a", Role: "Admin", ID: "u1"}, nil))
	require.True(t, gw.Login(context.Background(), "ada", "pw").Success)
	before := store.Current()
	persisted := string(storage.identity)

	gw.api = loginReturns(&ports.LoginResponse{Role: "Operator", Message: "Invalid credentials"}, nil)
	res := gw.Login(context.Background(), "eve", "wrong")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Nil(t, res.Identity)
	assert.Equal(t, before, store.Current())
	assert.Equal(t, persisted, string(storage.identity))
	assert.Equal(t, "tok-a", storage.token)
	assert.Equal(t, []domain.AuthEventKind{domain.EventLoginSucceeded, domain.EventLoginFailed}, audit.kinds())
}

func TestAuthGateway_Login_NoTokenDefaultMessage(t *testing.T) {
	gw, store, _, _ := newGateway(loginReturns(&ports.LoginResponse{}, nil))

	res := gw.Login(context.Background(), "ada", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, msgLoginFailed, res.Message)
	assert.Nil(t, store.Current())
}

func TestAuthGateway_Login_TransportFailure(t *testing.T) {
	gw, store, storage, _ := newGateway(loginReturns(nil, errNetwork))

	res := gw.Login(context.Background(), "ada", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, "unable to reach the lab server", res.Message)
	assert.Nil(t, store.Current())
	assert.True(t, storage.empty())
}

func TestAuthGateway_Login_ServerMessageFromError(t *testing.T) {
	gw, _, _, _ := newGateway(loginReturns(nil, &userMessageError{msg: "Account locked"}))

	res := gw.Login(context.Background(), "ada", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, "Account locked", res.Message)
}

func TestAuthGateway_Login_UnknownRole(t *testing.T) {
	gw, store, storage, _ := newGateway(loginReturns(&ports.LoginResponse{Token: "tok", Role: "Phlebotomist"}, nil))

	res := gw.Login(context.Background(), "ada", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, msgUnsupportedRole, res.Message)
	assert.Nil(t, store.Current())
	assert.True(t, storage.empty())
}

func TestAuthGateway_Login_MissingCredentials(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.LoginRequest) (*ports.LoginResponse, error) {
			t.Fatal("remote login must not be called")
			return nil, nil
		},
	}
	gw, _, _, _ := newGateway(api)

	assert.Equal(t, msgMissingCredentials, gw.Login(context.Background(), "  ", "pw").Message)
	assert.Equal(t, msgMissingCredentials, gw.Login(context.Background(), "ada", "").Message)
}

func TestAuthGateway_Login_StorageFailure(t *testing.T) {
	gw, store, storage, _ := newGateway(loginReturns(&ports.LoginResponse{Token: "tok", Role: "Admin"}, nil))
	storage.saveErr = errors.New("redis down")

	res := gw.Login(context.Background(), "ada", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, msgSessionNotSaved, res.Message)
	assert.Nil(t, store.Current())
}

func TestAuthGateway_Logout_RemoteFailureStillClears(t *testing.T) {
	api := loginReturns(&ports.LoginResponse{Token: "tok-a", Role: "Admin", ID: "u1"}, nil)
	api.logoutErr = errNetwork
	gw, store, storage, audit := newGateway(api)
	require.True(t, gw.Login(context.Background(), "ada", "pw").Success)

	res := gw.Logout(context.Background())

	require.ErrorIs(t, res.RemoteErr, errNetwork)
	assert.Equal(t, []string{"tok-a"}, api.logouts)
	assert.Nil(t, store.Current())
	assert.True(t, storage.empty())
	assert.Equal(t, domain.EventLogout, audit.kinds()[len(audit.kinds())-1])

	// A fresh process finds no session to restore.
	next := NewSessionStore(storage, nil, zerolog.Nop())
	next.Rehydrate(context.Background())
	assert.Nil(t, next.Current())
}

func TestAuthGateway_Logout_WithoutSessionSkipsRemote(t *testing.T) {
	api := loginReturns(nil, nil)
	gw, store, storage, _ := newGateway(api)

	res := gw.Logout(context.Background())

	assert.NoError(t, res.RemoteErr)
	assert.Empty(t, api.logouts)
	assert.Nil(t, store.Current())
	assert.Equal(t, 1, storage.deletes)
}
