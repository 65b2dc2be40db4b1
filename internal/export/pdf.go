// Package export renders saved invoices and reports to PDF and CSV.
// It only reads final values; nothing here recomputes totals.
package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/diewo77/hesab/internal/models"
	"github.com/diewo77/hesab/internal/services"
)

// InvoicePDF renders one saved invoice. The invoice must be loaded with its
// customer, items and item products.
func InvoicePDF(inv *models.Invoice, company *models.CompanySettings) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	companyName := company.Name
	if companyName == "" {
		companyName = company.NameLatin
	}
	m.AddRow(12, text.NewCol(12, companyName, props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Left,
	}))
	if company.Address != "" || company.Phone != "" {
		m.AddRow(8, text.NewCol(12, joinNonEmpty(company.Address, company.Phone), props.Text{Size: 9}))
	}

	customerName := ""
	if inv.Customer != nil {
		customerName = inv.Customer.Name
	}
	m.AddRow(16,
		col.New(6).Add(
			text.New(fmt.Sprintf("Invoice #%d", inv.ID), props.Text{Style: fontstyle.Bold}),
			text.New("Date: "+inv.Date.Format("2006-01-02"), props.Text{Top: 6}),
		),
		col.New(6).Add(
			text.New("Customer", props.Text{Style: fontstyle.Bold}),
			text.New(customerName, props.Text{Top: 6}),
		),
	)

	m.AddRow(8,
		text.NewCol(4, "Product", props.Text{Style: fontstyle.Bold}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(1, "Disc %", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(1, "Tax %", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, "Line total", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, item := range inv.Items {
		name := fmt.Sprintf("#%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		m.AddRow(6,
			text.NewCol(4, name, props.Text{Size: 9}),
			text.NewCol(1, item.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.DiscountPercent.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.TaxPercent.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, item.LineTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	addTotalsRows(m, services.Totals{
		Subtotal:    inv.Subtotal,
		DiscountSum: inv.DiscountSum,
		Taxable:     inv.Taxable,
		VAT:         inv.VAT,
		GrandTotal:  inv.GrandTotal,
	}, company.CurrencySymbol)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// ReportPDF renders a sales report over a date range.
func ReportPDF(report *services.SalesReport, company *models.CompanySettings) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(12, text.NewCol(12, "Sales report", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Left,
	}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("%s to %s",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02")), props.Text{Size: 9}))

	m.AddRow(8,
		text.NewCol(1, "No.", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold}),
		text.NewCol(4, "Customer", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "VAT", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, "Grand total", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, row := range report.Rows {
		m.AddRow(6,
			text.NewCol(1, fmt.Sprintf("%d", row.InvoiceID), props.Text{Size: 9}),
			text.NewCol(2, row.Date.Format("2006-01-02"), props.Text{Size: 9}),
			text.NewCol(4, row.CustomerName, props.Text{Size: 9}),
			text.NewCol(2, row.VAT.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, row.GrandTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	addTotalsRows(m, report.Totals, company.CurrencySymbol)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// addTotalsRows appends the five aggregate figures under a table.
func addTotalsRows(m core.Maroto, t services.Totals, currency string) {
	rows := []struct {
		label string
		value decimal.Decimal
		bold  bool
	}{
		{"Subtotal", t.Subtotal, false},
		{"Discount", t.DiscountSum, false},
		{"Taxable", t.Taxable, false},
		{"VAT", t.VAT, false},
		{"Grand total", t.GrandTotal, true},
	}
	for _, r := range rows {
		style := fontstyle.Normal
		if r.bold {
			style = fontstyle.Bold
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(2, r.label, props.Text{Size: 9, Style: style}),
			text.NewCol(3, money(r.value, currency), props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "  ·  "
		}
		out += p
	}
	return out
}

func money(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + currency
}
