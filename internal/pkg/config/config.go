package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session storage backends.
const (
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	LabAPI  LabAPIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Sandbox SandboxConfig
}

type LabAPIConfig struct {
	URL     string        `env:"LAB_API_URL,     default=http://localhost:8090"`
	Timeout time.Duration `env:"LAB_API_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	Backend   string `env:"SESSION_BACKEND,   default=redis"`
	Namespace string `env:"SESSION_NAMESPACE, default=labdesk:session"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=labdesk"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=false"`
	Workers int  `env:"AUDIT_WORKERS, default=2"`
}

type SandboxConfig struct {
	Port      string        `env:"SANDBOX_PORT,       default=8090"`
	JWTSecret string        `env:"SANDBOX_JWT_SECRET, default=sandbox-dev-secret"`
	TokenTTL  time.Duration `env:"SANDBOX_TOKEN_TTL,  default=8h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the portal cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Session.Backend {
	case BackendRedis, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", BackendRedis, BackendMongo, c.Session.Backend))
	}
	if c.Session.Namespace == "" {
		errs = append(errs, errors.New("SESSION_NAMESPACE must not be empty"))
	}
	if c.LabAPI.URL == "" {
		errs = append(errs, errors.New("LAB_API_URL must not be empty"))
	}
	if c.Audit.Enabled && c.Audit.Workers < 1 {
		errs = append(errs, errors.New("AUDIT_WORKERS must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
