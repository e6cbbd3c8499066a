package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAdminsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admins",
		Short: "Inspect and repair tenant owners",
	}
	cmd.AddCommand(newAdminsListCommand())
	cmd.AddCommand(newAdminsReprovisionCommand())
	return cmd
}

func newAdminsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admins and their tenant stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			admins, err := e.admins.ListAdmins(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tCOMPANY\tSTORE\tSTATUS")
			for _, a := range admins {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Email, a.CompanyName, a.DatabaseName, a.Status)
			}
			return w.Flush()
		},
	}
}

func newAdminsReprovisionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reprovision <admin-id>",
		Short: "Recreate an admin's tenant store and schema if missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid admin id %q", args[0])
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			admin, err := e.admins.Reprovision(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "store %s ready for admin %d\n", admin.DatabaseName, admin.ID)
			return nil
		},
	}
}
