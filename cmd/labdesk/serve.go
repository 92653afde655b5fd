package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diaglab/labdesk/internal/api"
	"github.com/diaglab/labdesk/internal/api/handler"
	"github.com/diaglab/labdesk/internal/core/provider"
	"github.com/diaglab/labdesk/internal/core/service"
	"github.com/diaglab/labdesk/internal/infrastructure/labapi"
	"github.com/diaglab/labdesk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front desk portal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPortal(cmd.Context())
		},
	}
}

func (a *app) runPortal(ctx context.Context) error {
	in, err := openInfra(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer in.close(context.Background(), a.log)

	store := service.NewSessionStore(in.storage, in.audit, a.log)
	client, err := labapi.NewClient(a.cfg.LabAPI.URL, a.cfg.LabAPI.Timeout, store, a.log)
	if err != nil {
		return err
	}
	in.readiness["lab_api"] = client

	// Requests arriving before this finishes see the loading screen.
	go store.Rehydrate(ctx)

	e := api.NewRouter(api.Deps{
		Session:   store,
		Auth:      service.NewAuthGateway(client, store, in.audit, a.log),
		Providers: provider.NewManager(client, a.log),
		Readiness: in.readiness,
		Settings: handler.Settings{
			LabAPIURL:      client.BaseURL(),
			SessionBackend: a.cfg.Session.Backend,
			AuditTrail:     a.cfg.Audit.Enabled,
		},
		Log: a.log,
	})

	return serveHTTP(ctx, e, ":"+a.cfg.Port, logger.Component("portal"))
}

// serveHTTP runs e until ctx is cancelled, then shuts it down gracefully.
func serveHTTP(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
