// Command labdesk runs the lab front desk portal and its tooling.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diaglab/labdesk/internal/pkg/config"
	"github.com/diaglab/labdesk/pkg/logger"
)

// app carries what every subcommand needs once the root has loaded it.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

// @title        labdesk portal
// @version      1.0
// @description  Role-scoped front desk screens over the lab API.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var pretty bool

	root := &cobra.Command{
		Use:           "labdesk",
		Short:         "Front desk portal for the diagnostic lab",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  pretty || !cfg.IsProduction(),
				Service: "labdesk",
				Output:  os.Stderr,
			})
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "force human-readable log output")

	root.AddCommand(
		a.serveCmd(),
		a.sandboxCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
	)
	return root
}
