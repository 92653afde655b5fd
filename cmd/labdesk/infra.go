package main

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/diaglab/labdesk/internal/core/ports"
	"github.com/diaglab/labdesk/internal/infrastructure/db/mongo"
	"github.com/diaglab/labdesk/internal/infrastructure/db/redis"
	"github.com/diaglab/labdesk/internal/infrastructure/http/handlers"
	"github.com/diaglab/labdesk/internal/infrastructure/queue"
	"github.com/diaglab/labdesk/internal/pkg/config"
)

type sessionBackend interface {
	ports.SessionStorage
	Ping(ctx context.Context) error
}

// infra holds the connections shared by the portal and the CLI commands.
type infra struct {
	storage    sessionBackend
	audit      ports.AuditRecorder
	dispatcher *queue.Dispatcher
	readiness  map[string]handlers.Pinger

	redisClient *goredis.Client
	mongoClient *gomongo.Client
	mongoDB     *gomongo.Database

	stopAudit context.CancelFunc
}

func openInfra(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*infra, error) {
	in := &infra{
		audit:     ports.NopAuditRecorder{},
		readiness: map[string]handlers.Pinger{},
	}

	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, storage, err := redis.Open(ctx, redis.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			Namespace: cfg.Session.Namespace,
		})
		if err != nil {
			return nil, err
		}
		in.redisClient, in.storage = client, storage
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session storage: redis")
	case config.BackendMongo:
		if err := in.connectMongo(ctx, cfg); err != nil {
			return nil, err
		}
		in.storage = mongo.NewSessionStorage(in.mongoDB, cfg.Session.Namespace)
		log.Info().Str("database", cfg.Mongo.Database).Msg("session storage: mongo")
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
	in.readiness["session_storage"] = in.storage

	if cfg.Audit.Enabled {
		if err := in.connectMongo(ctx, cfg); err != nil {
			in.close(context.Background(), log)
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, in.mongoDB); err != nil {
			log.Warn().Err(err).Msg("failed to ensure audit indexes")
		}
		in.readiness["mongo"] = handlers.PingFunc(func(ctx context.Context) error {
			return in.mongoClient.Ping(ctx, nil)
		})

		auditCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		in.stopAudit = cancel
		in.dispatcher = queue.NewDispatcher(cfg.Audit.Workers, mongo.NewAuditRepository(in.mongoDB), log)
		in.dispatcher.Start(auditCtx)
		in.audit = in.dispatcher
		log.Info().Int("workers", cfg.Audit.Workers).Msg("auth audit trail enabled")
	}

	return in, nil
}

func (in *infra) connectMongo(ctx context.Context, cfg *config.Config) error {
	if in.mongoDB != nil {
		return nil
	}
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	in.mongoClient, in.mongoDB = client, db
	return nil
}

// close drains the audit workers before dropping the connections they use.
func (in *infra) close(ctx context.Context, log zerolog.Logger) {
	if in.stopAudit != nil {
		in.stopAudit()
		in.dispatcher.Wait()
	}

	var errs []error
	if in.redisClient != nil {
		errs = append(errs, in.redisClient.Close())
	}
	if in.mongoClient != nil {
		errs = append(errs, in.mongoClient.Disconnect(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Msg("error closing connections")
	}
}
