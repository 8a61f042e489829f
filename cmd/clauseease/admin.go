package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/clauseease/internal/auth"
	"github.com/hyperifyio/clauseease/internal/store"
)

func newAdminCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}
	cmd.AddCommand(newAdminCreateCmd(opts))
	return cmd
}

func newAdminCreateCmd(opts *rootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator or promote an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = opts.cfg.AdminEmail
			}
			if password == "" {
				password = opts.cfg.AdminPassword
			}
			st, err := store.Open(opts.cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			created, err := auth.EnsureAdmin(cmd.Context(), st, email, password)
			if err != nil {
				return err
			}
			verb := "promoted"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s: %s\n", verb, store.NormalizeEmail(email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (default ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (default ADMIN_PASSWORD)")
	return cmd
}
