package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *App) companyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Show or update the company profile printed on invoices",
	}
	cmd.AddCommand(a.companyShowCmd(), a.companySetCmd())
	return cmd
}

func (a *App) companyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the company profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.company.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", c.Name)
			fmt.Fprintf(out, "Name (lat.): %s\n", c.NameLatin)
			fmt.Fprintf(out, "Phone:       %s\n", c.Phone)
			fmt.Fprintf(out, "Address:     %s\n", c.Address)
			fmt.Fprintf(out, "VAT %%:       %s\n", c.VATPercent.String())
			fmt.Fprintf(out, "Currency:    %s\n", c.CurrencySymbol)
			return nil
		},
	}
}

func (a *App) companySetCmd() *cobra.Command {
	var (
		name, nameLatin, phone string
		address, addressLatin  string
		vatPercent, currency   string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update company fields; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.company.Load(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("name-latin") {
				c.NameLatin = nameLatin
			}
			if cmd.Flags().Changed("phone") {
				c.Phone = phone
			}
			if cmd.Flags().Changed("address") {
				c.Address = address
			}
			if cmd.Flags().Changed("address-latin") {
				c.AddressLatin = addressLatin
			}
			if cmd.Flags().Changed("currency") {
				c.CurrencySymbol = currency
			}
			if cmd.Flags().Changed("vat") {
				v, err := decimal.NewFromString(vatPercent)
				if err != nil {
					return fmt.Errorf("invalid VAT percent %q", vatPercent)
				}
				c.VATPercent = v
			}
			if err := a.company.Update(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Company settings saved.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "company name")
	cmd.Flags().StringVar(&nameLatin, "name-latin", "", "company name in latin script")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "address")
	cmd.Flags().StringVar(&addressLatin, "address-latin", "", "address in latin script")
	cmd.Flags().StringVar(&vatPercent, "vat", "", "default VAT percent for new invoice lines")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol")
	return cmd
}
