package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/hesab/internal/db"
)

func (a *App) dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}
	cmd.AddCommand(a.dbSeedCmd(), a.dbWipeCmd())
	return cmd
}

func (a *App) dbSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo customers and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Seed(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seed data inserted.")
			return nil
		},
	}
}

func (a *App) dbWipeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all customers, products and invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe without --yes")
			}
			if err := db.Wipe(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database wiped.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
