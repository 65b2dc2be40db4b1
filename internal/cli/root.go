// Package cli wires the cobra command tree. Commands are a thin
// presentation layer: they parse input, call services, and render lines and
// totals back to the terminal.
package cli

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/config"
	"github.com/diewo77/hesab/internal/services"
)

// App holds the services the commands operate on.
type App struct {
	cfg *config.Config
	db  *gorm.DB

	company   *services.CompanyService
	customers *services.CustomerService
	products  *services.ProductService
	invoices  *services.InvoiceService
	reports   *services.ReportService
}

// New builds the application around an open database connection.
func New(cfg *config.Config, db *gorm.DB) *App {
	return &App{
		cfg:       cfg,
		db:        db,
		company:   services.NewCompanyService(db, cfg.Invoice.DefaultVATPercent, cfg.Invoice.CurrencySymbol),
		customers: services.NewCustomerService(db),
		products:  services.NewProductService(db),
		invoices:  services.NewInvoiceService(db),
		reports:   services.NewReportService(db),
	}
}

// Root returns the root command with all subcommands attached.
func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "hesab",
		Short:         "Invoicing and accounting for a single workstation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.companyCmd(),
		a.customerCmd(),
		a.productCmd(),
		a.invoiceCmd(),
		a.reportCmd(),
		a.dbCmd(),
	)
	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.Root().Execute()
}
