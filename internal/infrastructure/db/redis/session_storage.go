package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/diaglab/labdesk/internal/core/ports"
)

// SessionStorage keeps the session under two keys, see sessionKeys.
type SessionStorage struct {
	client      redis.UniversalClient
	identityKey string
	tokenKey    string
}

func NewSessionStorage(client redis.UniversalClient, namespace string) *SessionStorage {
	identity, token := sessionKeys(namespace)
	return &SessionStorage{client: client, identityKey: identity, tokenKey: token}
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

// Load reads both halves in one round trip. Missing keys come back empty.
func (s *SessionStorage) Load(ctx context.Context) (ports.SessionRecord, error) {
	vals, err := s.client.MGet(ctx, s.identityKey, s.tokenKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ports.SessionRecord{}, fmt.Errorf("load session: %w", err)
	}

	var rec ports.SessionRecord
	if len(vals) == 2 {
		if v, ok := vals[0].(string); ok {
			rec.Identity = []byte(v)
		}
		if v, ok := vals[1].(string); ok {
			rec.Token = v
		}
	}
	return rec, nil
}

// Save writes both halves in a MULTI/EXEC transaction.
func (s *SessionStorage) Save(ctx context.Context, rec ports.SessionRecord) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.identityKey, rec.Identity, 0)
		pipe.Set(ctx, s.tokenKey, rec.Token, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.identityKey, s.tokenKey).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping reports backend reachability for readiness checks.
func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
