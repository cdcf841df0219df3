package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "session", Short: "Dashboard session tools"}
	cmd.AddCommand(newSessionOpenCmd())
	return cmd
}

func newSessionOpenCmd() *cobra.Command {
	var apiURL, token string
	var refresh bool
	cmd := &cobra.Command{
		Use:   "open [landing-url]",
		Short: "Run the dashboard bootstrap against a landing URL or a stored token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				cfg, err := config.New()
				if err != nil {
					return err
				}
				apiURL = cfg.URLs.API
			}
			landing := "http://localhost/"
			if len(args) == 1 {
				landing = args[0]
			}
			storage := session.NewMemoryStorage()
			if token != "" {
				storage.Set(session.TokenKey, token)
			}
			loc := session.NewStaticLocation(landing)
			client := session.NewAPIClient(apiURL, nil)
			b := session.NewBootstrapper(storage, loc, client, client.LoginURL())

			state, err := b.Run(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", state)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "redirect: %s\n", loc.AssignedTo())
				return err
			}
			if state != session.StateAuthenticated {
				fmt.Fprintf(cmd.OutOrStdout(), "login: %s\n", b.LoginURL())
				return nil
			}
			if refresh {
				if err := b.Refresh(cmd.Context(), client); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "location: %s\n", loc.Href())
			return printJSON(cmd.OutOrStdout(), b.Session())
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "", "backend base URL (default urls.api)")
	cmd.Flags().StringVar(&token, "token", "", "previously stored token, used when the URL has no callback params")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "also load profile and subscription")
	return cmd
}
