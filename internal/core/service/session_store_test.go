package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diaglab/labdesk/internal/core/domain"
)

func newStore(storage *stubStorage) *SessionStore {
	return NewSessionStore(storage, nil, zerolog.Nop())
}

func TestSessionStore_Rehydrate_NormalizesLegacyRole(t *testing.T) {
	for _, raw := range []string{"Receptionist", "RECEPTIONIST", "receptionist"} {
		t.Run(raw, func(t *testing.T) {
			storage := &stubStorage{
				identity: []byte(`{"id":"u1","name":"Desk","email":"desk@lab.test","role":"` + raw + `","labId":"lab-7"}`),
				token:    "tok-1",
			}
			store := newStore(storage)
			require.True(t, store.Loading())

			store.Rehydrate(context.Background())

			assert.False(t, store.Loading())
			id := store.Current()
			require.NotNil(t, id)
			assert.Equal(t, domain.RoleOperator, id.Role)
			assert.Equal(t, "tok-1", id.Token)
			assert.Equal(t, "lab-7", id.LabID)
			assert.Equal(t, raw, id.ReportedRole)
		})
	}
}

func TestSessionStore_Rehydrate_DiscardsBadRecords(t *testing.T) {
	cases := map[string]*stubStorage{
		"malformed json": {identity: []byte(`{"id":"u1","role":`), token: "tok"},
		"not an object":  {identity: []byte(`"just a string"`), token: "tok"},
		"missing token":  {identity: []byte(`{"id":"u1","role":"Admin"}`)},
		"missing record": {token: "tok"},
		"unknown role":   {identity: []byte(`{"id":"u1","role":"Janitor"}`), token: "tok"},
		"null identity":  {identity: []byte(`null`), token: "tok"},
	}

	for name, storage := range cases {
		t.Run(name, func(t *testing.T) {
			audit := &recordingAudit{}
			store := NewSessionStore(storage, audit, zerolog.Nop())

			store.Rehydrate(context.Background())

			assert.False(t, store.Loading())
			assert.Nil(t, store.Current())
			assert.Empty(t, store.Token())
			assert.True(t, storage.empty(), "both persisted entries must be erased")
			assert.Equal(t, []domain.AuthEventKind{domain.EventSessionDiscarded}, audit.kinds())
		})
	}
}

func TestSessionStore_Rehydrate_EmptyStorage(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)

	store.Rehydrate(context.Background())

	assert.False(t, store.Loading())
	assert.Nil(t, store.Current())
	assert.Zero(t, storage.deletes)
}

func TestSessionStore_Rehydrate_StorageErrorKeepsRecord(t *testing.T) {
	storage := &stubStorage{
		identity: []byte(`{"id":"u1","role":"Admin"}`),
		token:    "tok",
		loadErr:  errors.New("redis: connection refused"),
	}
	store := newStore(storage)

	store.Rehydrate(context.Background())

	assert.False(t, store.Loading())
	assert.Nil(t, store.Current())
	assert.Zero(t, storage.deletes)
}

func TestSessionStore_Rehydrate_RunsOnce(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)
	store.Rehydrate(context.Background())

	storage.identity = []byte(`{"id":"u1","role":"Admin"}`)
	storage.token = "late"
	store.Rehydrate(context.Background())

	assert.Nil(t, store.Current())
}

func TestSessionStore_WaitUnblocksOnRehydrate(t *testing.T) {
	store := newStore(&stubStorage{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, store.Wait(ctx), context.DeadlineExceeded)

	go store.Rehydrate(context.Background())

	select {
	case <-store.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready channel never closed")
	}
	require.NoError(t, store.Wait(context.Background()))
}

func TestSessionStore_AdoptThenClear(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)
	store.Rehydrate(context.Background())

	in := domain.Identity{ID: "u1", Name: "Ada", Email: "ada@lab.test", Role: domain.RoleAdmin, Token: "tok-1", LabID: "lab-1"}
	require.NoError(t, store.Adopt(context.Background(), in))

	got := store.Current()
	require.NotNil(t, got)
	assert.Equal(t, in, *got)
	assert.Equal(t, "tok-1", store.Token())
	assert.Equal(t, "tok-1", storage.token)
	assert.JSONEq(t, `{"id":"u1","name":"Ada","email":"ada@lab.test","role":"Admin","labId":"lab-1"}`, string(storage.identity))

	require.NoError(t, store.Clear(context.Background()))
	assert.Nil(t, store.Current())
	assert.True(t, storage.empty())
}

func TestSessionStore_AdoptPersistsReportedRole(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)

	in := domain.Identity{ID: "u2", Role: domain.RoleOperator, Token: "tok", ReportedRole: "Receptionist"}
	require.NoError(t, store.Adopt(context.Background(), in))

	assert.Contains(t, string(storage.identity), `"role":"Receptionist"`)

	// A fresh process sees the same, normalized identity.
	next := newStore(storage)
	next.Rehydrate(context.Background())
	require.NotNil(t, next.Current())
	assert.Equal(t, domain.RoleOperator, next.Current().Role)
}

func TestSessionStore_AdoptRejectsInvalidIdentity(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)

	err := store.Adopt(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleAdmin})
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)

	err = store.Adopt(context.Background(), domain.Identity{ID: "u1", Token: "tok"})
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)

	assert.Nil(t, store.Current())
	assert.True(t, storage.empty())
}

func TestSessionStore_AdoptStorageFailureLeavesPreviousIdentity(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)
	prev := domain.Identity{ID: "u1", Role: domain.RoleAdmin, Token: "old"}
	require.NoError(t, store.Adopt(context.Background(), prev))

	storage.saveErr = errors.New("write failed")
	err := store.Adopt(context.Background(), domain.Identity{ID: "u2", Role: domain.RoleOperator, Token: "new"})
	require.Error(t, err)

	require.NotNil(t, store.Current())
	assert.Equal(t, "old", store.Token())
}

func TestSessionStore_ClearDropsMemoryEvenWhenStorageFails(t *testing.T) {
	storage := &stubStorage{}
	store := newStore(storage)
	require.NoError(t, store.Adopt(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleAdmin, Token: "tok"}))

	storage.delErr = errors.New("delete failed")
	require.Error(t, store.Clear(context.Background()))
	assert.Nil(t, store.Current())
}

func TestSessionStore_CurrentReturnsCopy(t *testing.T) {
	store := newStore(&stubStorage{})
	require.NoError(t, store.Adopt(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleAdmin, Token: "tok"}))

	id := store.Current()
	id.Role = domain.RoleOperator
	id.Token = "mutated"

	assert.Equal(t, domain.RoleAdmin, store.Current().Role)
	assert.Equal(t, "tok", store.Token())
}
