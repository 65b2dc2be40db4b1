package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/hesab/internal/export"
	"github.com/diewo77/hesab/internal/logger"
	"github.com/diewo77/hesab/internal/services"
)

func (a *App) invoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Compose, inspect and export invoices",
	}
	cmd.AddCommand(a.invoiceCreateCmd(), a.invoiceListCmd(), a.invoiceShowCmd(), a.invoiceExportCmd())
	return cmd
}

func (a *App) invoiceCreateCmd() *cobra.Command {
	var (
		customerID uint
		dateStr    string
		itemSpecs  []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Compose and save an invoice",
		Long: `Compose an invoice from one or more --item flags and save it as a whole.

Each --item takes PRODUCT[:QTY[:DISCOUNT%[:TAX%]]]. Quantity defaults to 1,
discount to 0 and tax to the company's VAT rate. Quantities may be
fractional, e.g. --item 3:2.5:10.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.WithComponent("invoice")

			// Invoices carry a calendar date, not a timestamp.
			now := time.Now()
			date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if dateStr != "" {
				parsed, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateStr)
				}
				date = parsed
			}

			company, err := a.company.Load(cmd.Context())
			if err != nil {
				return err
			}
			composer := services.NewComposer(a.products, company.VATPercent)

			for _, spec := range itemSpecs {
				if err := addItemSpec(composer, spec); err != nil {
					return err
				}
			}

			renderLines(cmd.OutOrStdout(), composer.Lines(), a.products)
			renderTotals(cmd.OutOrStdout(), composer.Totals(), company.CurrencySymbol)

			snapshot, err := composer.Snapshot(customerID, date)
			if err != nil {
				if errors.Is(err, services.ErrNoCustomer) || errors.Is(err, services.ErrNoItems) {
					return fmt.Errorf("cannot save invoice: %w", err)
				}
				return err
			}
			if err := a.invoices.Save(cmd.Context(), snapshot); err != nil {
				// Composer state is untouched; the entered lines are not lost
				// until the save goes through.
				log.Error().Err(err).Msg("invoice save failed")
				return fmt.Errorf("invoice was not saved, nothing was written: %w", err)
			}
			composer.Reset()

			log.Info().Uint("invoice_id", snapshot.ID).Msg("invoice saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Invoice %d saved.\n", snapshot.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&customerID, "customer", 0, "customer id (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "invoice date YYYY-MM-DD (default today)")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "line item PRODUCT[:QTY[:DISCOUNT%[:TAX%]]] (repeatable)")
	return cmd
}

// addItemSpec applies one PRODUCT[:QTY[:DISC[:TAX]]] spec to the composer.
func addItemSpec(composer *services.Composer, spec string) error {
	parts := strings.Split(spec, ":")
	if len(parts) > 4 {
		return fmt.Errorf("invalid item %q, want PRODUCT[:QTY[:DISCOUNT[:TAX]]]", spec)
	}
	productID, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid product id in item %q", spec)
	}
	pos, err := composer.AddItem(uint(productID))
	if err != nil {
		return err
	}
	if len(parts) > 1 && parts[1] != "" {
		qty, err := decimal.NewFromString(parts[1])
		if err != nil || !qty.IsPositive() {
			return fmt.Errorf("invalid quantity in item %q", spec)
		}
		if err := composer.SetQuantity(pos, qty); err != nil {
			return err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		disc, err := decimal.NewFromString(parts[2])
		if err != nil {
			return fmt.Errorf("invalid discount in item %q", spec)
		}
		if err := composer.SetDiscountPercent(pos, disc); err != nil {
			return err
		}
	}
	if len(parts) > 3 && parts[3] != "" {
		tax, err := decimal.NewFromString(parts[3])
		if err != nil {
			return fmt.Errorf("invalid tax in item %q", spec)
		}
		if err := composer.SetTaxPercent(pos, tax); err != nil {
			return err
		}
	}
	return nil
}

func renderLines(out io.Writer, lines []services.Line, products services.ProductLookup) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPRODUCT\tQTY\tUNIT PRICE\tDISC %\tTAX %\tLINE TOTAL")
	for i, l := range lines {
		name := fmt.Sprintf("#%d", l.ProductID)
		if p, err := products.Product(l.ProductID); err == nil {
			name = p.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, name, l.Quantity.String(), l.UnitPrice.StringFixed(2),
			l.DiscountPercent.String(), l.TaxPercent.String(), l.Total().StringFixed(2))
	}
	w.Flush()
}

func renderTotals(out io.Writer, t services.Totals, currency string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Subtotal\t%s %s\n", t.Subtotal.StringFixed(2), currency)
	fmt.Fprintf(w, "Discount\t%s %s\n", t.DiscountSum.StringFixed(2), currency)
	fmt.Fprintf(w, "Taxable\t%s %s\n", t.Taxable.StringFixed(2), currency)
	fmt.Fprintf(w, "VAT\t%s %s\n", t.VAT.StringFixed(2), currency)
	fmt.Fprintf(w, "Grand total\t%s %s\n", t.GrandTotal.StringFixed(2), currency)
	w.Flush()
}

func (a *App) invoiceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := a.invoices.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tCUSTOMER\tGRAND TOTAL")
			for _, inv := range invoices {
				name := ""
				if inv.Customer != nil {
					name = inv.Customer.Name
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					inv.ID, inv.Date.Format("2006-01-02"), name, inv.GrandTotal.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func (a *App) invoiceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one saved invoice with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}
			inv, err := a.invoices.Get(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			company, err := a.company.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			name := ""
			if inv.Customer != nil {
				name = inv.Customer.Name
			}
			fmt.Fprintf(out, "Invoice %d  %s  %s\n\n", inv.ID, inv.Date.Format("2006-01-02"), name)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPRODUCT\tQTY\tUNIT PRICE\tDISC %\tTAX %\tLINE TOTAL")
			for _, item := range inv.Items {
				pname := fmt.Sprintf("#%d", item.ProductID)
				if item.Product != nil {
					pname = item.Product.Name
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					item.Position+1, pname, item.Quantity.String(), item.UnitPrice.StringFixed(2),
					item.DiscountPercent.String(), item.TaxPercent.String(), item.LineTotal.StringFixed(2))
			}
			w.Flush()
			fmt.Fprintln(out)
			renderTotals(out, services.Totals{
				Subtotal:    inv.Subtotal,
				DiscountSum: inv.DiscountSum,
				Taxable:     inv.Taxable,
				VAT:         inv.VAT,
				GrandTotal:  inv.GrandTotal,
			}, company.CurrencySymbol)
			return nil
		},
	}
}

func (a *App) invoiceExportCmd() *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a saved invoice to PDF or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}
			inv, err := a.invoices.Get(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("invoice-%d.%s", inv.ID, format)
			}
			switch format {
			case "pdf":
				company, err := a.company.Load(cmd.Context())
				if err != nil {
					return err
				}
				data, err := export.InvoicePDF(inv, company)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
			case "csv":
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				defer f.Close()
				if err := export.WriteInvoiceCSV(f, inv); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q, want pdf or csv", format)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported invoice %d to %s\n", inv.ID, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pdf", "export format: pdf or csv")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default invoice-ID.FORMAT)")
	return cmd
}
