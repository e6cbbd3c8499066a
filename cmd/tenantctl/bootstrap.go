package main

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/spf13/cobra"
)

func newBootstrapCommand() *cobra.Command {
	var req dto.RegisterSuperAdminRequest

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Register the super-admin",
		Long: `Register the one super-admin account in the control store.

Fails if a super-admin already exists.

Example:
  tenantctl bootstrap --email root@example.com --password 'Sup3rSecret'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			sa, err := e.auth.RegisterSuperAdmin(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "super admin %d registered: %s\n", sa.ID, sa.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Super-admin email (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Super-admin password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
