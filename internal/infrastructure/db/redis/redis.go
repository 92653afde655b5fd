// Package redis stores the labdesk session in Redis.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultNamespace = "labdesk"
)

// Config describes the session Redis and the key namespace the session
// halves live under.
type Config struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
	Timeout   time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) options() *redis.Options {
	t := c.timeout()
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  t,
		ReadTimeout:  t,
		WriteTimeout: t,
	}
}

// sessionKeys returns the identity and token keys for a namespace. A blank
// namespace falls back to "labdesk"; a trailing colon is tolerated.
func sessionKeys(namespace string) (identity, token string) {
	ns := strings.TrimRight(strings.TrimSpace(namespace), ":")
	if ns == "" {
		ns = defaultNamespace
	}
	return ns + ":identity", ns + ":token"
}

// Connect opens a client and pings it, closing the client if the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Open connects and returns session storage bound to cfg.Namespace. The
// caller owns the returned client.
func Open(ctx context.Context, cfg Config) (*redis.Client, *SessionStorage, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, NewSessionStorage(client, cfg.Namespace), nil
}
