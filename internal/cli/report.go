package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/diewo77/hesab/internal/export"
)

func (a *App) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reports over saved invoices",
	}
	cmd.AddCommand(a.reportSalesCmd(), a.reportRevenueCmd())
	return cmd
}

func (a *App) reportSalesCmd() *cobra.Command {
	var fromStr, toStr, format, outPath string
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Sales report over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from %q, want YYYY-MM-DD", fromStr)
			}
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fmt.Errorf("invalid --to %q, want YYYY-MM-DD", toStr)
			}
			report, err := a.reports.Sales(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			company, err := a.company.Load(cmd.Context())
			if err != nil {
				return err
			}

			switch format {
			case "table":
				out := cmd.OutOrStdout()
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDATE\tCUSTOMER\tVAT\tGRAND TOTAL")
				for _, row := range report.Rows {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						row.InvoiceID, row.Date.Format("2006-01-02"), row.CustomerName,
						row.VAT.StringFixed(2), row.GrandTotal.StringFixed(2))
				}
				w.Flush()
				fmt.Fprintln(out)
				renderTotals(out, report.Totals, company.CurrencySymbol)
			case "csv":
				if outPath == "" {
					outPath = fmt.Sprintf("sales-%s-%s.csv", fromStr, toStr)
				}
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				defer f.Close()
				if err := export.WriteReportCSV(f, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported report to %s\n", outPath)
			case "pdf":
				if outPath == "" {
					outPath = fmt.Sprintf("sales-%s-%s.pdf", fromStr, toStr)
				}
				data, err := export.ReportPDF(report, company)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported report to %s\n", outPath)
			default:
				return fmt.Errorf("unknown format %q, want table, csv or pdf", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fromStr, "from", "", "start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&format, "format", "table", "output: table, csv or pdf")
	cmd.Flags().StringVar(&outPath, "out", "", "output file for csv/pdf")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *App) reportRevenueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revenue",
		Short: "Total revenue over all saved invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := a.reports.Revenue(cmd.Context())
			if err != nil {
				return err
			}
			company, err := a.company.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revenue: %s %s\n", total.StringFixed(2), company.CurrencySymbol)
			return nil
		},
	}
}
