package main

import (
	"github.com/spf13/cobra"

	"github.com/diaglab/labdesk/internal/sandbox"
	"github.com/diaglab/labdesk/pkg/logger"
)

func (a *app) sandboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sandbox",
		Short: "Run an in-memory lab API for local development",
		Long: "Serves the lab REST API with seeded data and the accounts\n" +
			"admin/admin123, frontdesk/frontdesk123 and tech/tech123.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Component("sandbox")
			e, err := sandbox.New(sandbox.Options{
				Secret:   a.cfg.Sandbox.JWTSecret,
				TokenTTL: a.cfg.Sandbox.TokenTTL,
			}, log)
			if err != nil {
				return err
			}
			return serveHTTP(cmd.Context(), e, ":"+a.cfg.Sandbox.Port, log)
		},
	}
}
