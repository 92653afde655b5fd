package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/diaglab/labdesk/internal/core/guard"
	"github.com/diaglab/labdesk/internal/core/service"
	"github.com/diaglab/labdesk/internal/infrastructure/labapi"
)

// cliSession opens the shared session storage, restores the persisted
// session and hands a gateway to fn.
func (a *app) cliSession(ctx context.Context, fn func(store *service.SessionStore, gw *service.AuthGateway) error) error {
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
	store.Rehydrate(ctx)

	return fn(store, service.NewAuthGateway(client, store, in.audit, a.log))
}

func (a *app) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session for the portal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cliSession(cmd.Context(), func(_ *service.SessionStore, gw *service.AuthGateway) error {
				res := gw.Login(cmd.Context(), username, password)
				if !res.Success {
					return errors.New(res.Message)
				}
				id := res.Identity
				fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s), landing page %s\n",
					id.Name, id.Role, guard.LandingPath(id.Role))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cliSession(cmd.Context(), func(store *service.SessionStore, gw *service.AuthGateway) error {
				if store.Current() == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				res := gw.Logout(cmd.Context())
				if res.RemoteErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: lab API logout failed: %v\n", res.RemoteErr)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the persisted session identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cliSession(cmd.Context(), func(store *service.SessionStore, _ *service.AuthGateway) error {
				printIdentity(cmd.OutOrStdout(), store)
				return nil
			})
		},
	}
}

func printIdentity(w io.Writer, store *service.SessionStore) {
	id := store.Current()
	if id == nil {
		fmt.Fprintln(w, "not signed in")
		return
	}
	fmt.Fprintf(w, "id:    %s\nname:  %s\nemail: %s\nrole:  %s\n", id.ID, id.Name, id.Email, id.Role)
	if id.LabName != "" {
		fmt.Fprintf(w, "lab:   %s (%s)\n", id.LabName, id.LabID)
	}
}
