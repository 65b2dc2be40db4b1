package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/diewo77/hesab/internal/models"
	"github.com/diewo77/hesab/internal/services"
)

// WriteInvoiceCSV serialises one saved invoice: a few header fields, the
// line items, then the five aggregates. The invoice must be loaded with its
// customer and item products.
func WriteInvoiceCSV(w io.Writer, inv *models.Invoice) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	customerName := ""
	if inv.Customer != nil {
		customerName = inv.Customer.Name
	}
	header := [][]string{
		{"Invoice", fmt.Sprintf("%d", inv.ID)},
		{"Date", inv.Date.Format("2006-01-02")},
		{"Customer", customerName},
		{},
		{"Position", "Product", "Quantity", "Unit Price", "Discount %", "Tax %", "Line Total"},
	}
	for _, record := range header {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	for _, item := range inv.Items {
		name := fmt.Sprintf("#%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		if err := writer.Write([]string{
			fmt.Sprintf("%d", item.Position+1),
			name,
			item.Quantity.String(),
			item.UnitPrice.StringFixed(2),
			item.DiscountPercent.String(),
			item.TaxPercent.String(),
			item.LineTotal.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write(nil); err != nil {
		return err
	}
	if err := writeTotals(writer, services.Totals{
		Subtotal:    inv.Subtotal,
		DiscountSum: inv.DiscountSum,
		Taxable:     inv.Taxable,
		VAT:         inv.VAT,
		GrandTotal:  inv.GrandTotal,
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteReportCSV serialises a sales report: one row per invoice plus the
// summed aggregates.
func WriteReportCSV(w io.Writer, report *services.SalesReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{
		"Invoice", "Date", "Customer", "Subtotal", "Discount", "Taxable", "VAT", "Grand Total",
	}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write([]string{
			fmt.Sprintf("%d", row.InvoiceID),
			row.Date.Format("2006-01-02"),
			row.CustomerName,
			row.Subtotal.StringFixed(2),
			row.DiscountSum.StringFixed(2),
			row.Taxable.StringFixed(2),
			row.VAT.StringFixed(2),
			row.GrandTotal.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write(nil); err != nil {
		return err
	}
	if err := writeTotals(writer, report.Totals); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeTotals(writer *csv.Writer, t services.Totals) error {
	records := [][]string{
		{"Subtotal", t.Subtotal.StringFixed(2)},
		{"Discount", t.DiscountSum.StringFixed(2)},
		{"Taxable", t.Taxable.StringFixed(2)},
		{"VAT", t.VAT.StringFixed(2)},
		{"Grand Total", t.GrandTotal.StringFixed(2)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
