package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKeys(t *testing.T) {
	cases := []struct {
		namespace, identity, token string
	}{
		{"labdesk:session", "labdesk:session:identity", "labdesk:session:token"},
		{"desk:", "desk:identity", "desk:token"},
		{"  ", "labdesk:identity", "labdesk:token"},
		{"", "labdesk:identity", "labdesk:token"},
	}
	for _, tc := range cases {
		identity, token := sessionKeys(tc.namespace)
		assert.Equal(t, tc.identity, identity, tc.namespace)
		assert.Equal(t, tc.token, token, tc.namespace)
	}
}

func TestNewSessionStorage_UsesNamespacedKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	s := NewSessionStorage(client, "front:")
	assert.Equal(t, "front:identity", s.identityKey)
	assert.Equal(t, "front:token", s.tokenKey)
}

func TestConfigOptions_DefaultTimeout(t *testing.T) {
	opts := Config{Addr: "cache:6379", DB: 2}.options()
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, defaultTimeout, opts.DialTimeout)
	assert.Equal(t, defaultTimeout, opts.ReadTimeout)

	opts = Config{Timeout: time.Second}.options()
	assert.Equal(t, time.Second, opts.WriteTimeout)
}

func TestOpen_FailsWhenServerUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client, storage, err := Open(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping "+addr)
	assert.Nil(t, client)
	assert.Nil(t, storage)
}
