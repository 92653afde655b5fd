//go:build integration

package redis_test

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
	"github.com/diaglab/labdesk/internal/core/service"
	sessionredis "github.com/diaglab/labdesk/internal/infrastructure/db/redis"
)

type SessionStorageSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *goredis.Client
	storage   *sessionredis.SessionStorage
}

func TestSessionStorageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SessionStorageSuite))
}

func (s *SessionStorageSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := goredis.ParseURL(uri)
	s.Require().NoError(err)

	s.client = goredis.NewClient(opts)
	s.Require().NoError(s.client.Ping(ctx).Err())
	s.storage = sessionredis.NewSessionStorage(s.client, "labdesk-test")
}

func (s *SessionStorageSuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *SessionStorageSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *SessionStorageSuite) TestLoadEmpty() {
	rec, err := s.storage.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(rec.Identity)
	s.Empty(rec.Token)
}

func (s *SessionStorageSuite) TestSaveLoadDelete() {
	ctx := context.Background()
	rec := ports.SessionRecord{Identity: []byte(`{"id":"u-1","role":"Admin"}`), Token: "tok"}

	s.Require().NoError(s.storage.Save(ctx, rec))
	s.Equal("tok", s.client.Get(ctx, "labdesk-test:token").Val())

	got, err := s.storage.Load(ctx)
	s.Require().NoError(err)
	s.JSONEq(string(rec.Identity), string(got.Identity))
	s.Equal("tok", got.Token)

	s.Require().NoError(s.storage.Delete(ctx))
	s.Zero(s.client.Exists(ctx, "labdesk-test:identity", "labdesk-test:token").Val())
}

func (s *SessionStorageSuite) TestHalfRecordIsDiscardedOnRehydrate() {
	ctx := context.Background()
	s.Require().NoError(s.client.Set(ctx, "labdesk-test:token", "orphan", 0).Err())

	store := service.NewSessionStore(s.storage, nil, zerolog.Nop())
	store.Rehydrate(ctx)

	s.Nil(store.Current())
	s.Zero(s.client.Exists(ctx, "labdesk-test:token").Val())
}

func (s *SessionStorageSuite) TestSessionSurvivesRestart() {
	ctx := context.Background()

	first := service.NewSessionStore(s.storage, nil, zerolog.Nop())
	first.Rehydrate(ctx)
	s.Require().NoError(first.Adopt(ctx, domain.Identity{
		ID: "u-2", Name: "Front Desk", Role: domain.RoleOperator, ReportedRole: "Receptionist", Token: "jwt",
	}))

	second := service.NewSessionStore(s.storage, nil, zerolog.Nop())
	second.Rehydrate(ctx)

	id := second.Current()
	s.Require().NotNil(id)
	s.Equal(domain.RoleOperator, id.Role)
	s.Equal("jwt", second.Token())
}
