package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) customerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the customer directory",
	}
	cmd.AddCommand(a.customerAddCmd(), a.customerListCmd())
	return cmd
}

func (a *App) customerAddCmd() *cobra.Command {
	var name, phone, address string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.customers.Create(cmd.Context(), name, phone, address)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Customer %d (%s) added.\n", c.ID, c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "address")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *App) customerListCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := a.customers.List(cmd.Context(), search)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tADDRESS")
			for _, c := range customers {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Address)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name substring")
	return cmd
}
