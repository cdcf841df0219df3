package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/tool"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage user accounts"}
	cmd.AddCommand(newUserCreateCmd(), newUserListCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user, or reset the password of an existing one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			generated := password == ""
			if generated {
				p, err := tool.RandomHex(8)
				if err != nil {
					return err
				}
				password = p
			}
			var svc *auth.Service
			return withServices(cmd.Context(), func() error {
				u, created, err := svc.CreateOrResetUser(cmd.Context(), email, name, password)
				if err != nil {
					return err
				}
				verb := "password reset for"
				if created {
					verb = "created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, u.Email, u.ID)
				if generated {
					fmt.Fprintf(cmd.OutOrStdout(), "password: %s\n", password)
				}
				return nil
			}, &svc)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the email's local part)")
	cmd.Flags().StringVar(&password, "password", "", "password (generated and printed when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st store.Store
			return withServices(cmd.Context(), func() error {
				users, err := st.ListUsers(cmd.Context(), store.Limit(limit))
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tEMAIL\tNAME\tCREATED")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.CreatedAt.Format("2006-01-02 15:04"))
				}
				return w.Flush()
			}, &st)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "maximum rows")
	return cmd
}
