package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/hesab/internal/models"
	"github.com/diewo77/hesab/internal/services"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice() *models.Invoice {
	return &models.Invoice{
		ID:          3,
		CustomerID:  1,
		Customer:    &models.Customer{ID: 1, Name: "Arman Trading Co."},
		Date:        time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Subtotal:    dec("170"),
		DiscountSum: dec("10"),
		Taxable:     dec("160"),
		VAT:         dec("13.5"),
		GrandTotal:  dec("173.5"),
		Items: []models.InvoiceItem{
			{
				ProductID: 2, Product: &models.Product{ID: 2, Name: "Widget"},
				Quantity: dec("3"), UnitPrice: dec("50"),
				DiscountPercent: dec("0"), TaxPercent: dec("9"),
				LineTotal: dec("163.5"), Position: 0,
			},
			{
				ProductID: 3, Product: &models.Product{ID: 3, Name: "Cable"},
				Quantity: dec("1"), UnitPrice: dec("20"),
				DiscountPercent: dec("50"), TaxPercent: dec("0"),
				LineTotal: dec("10"), Position: 1,
			},
		},
	}
}

func sampleCompany() *models.CompanySettings {
	return &models.CompanySettings{
		ID:             models.CompanySettingsID,
		Name:           "Hesab Co.",
		Phone:          "021-555-0101",
		VATPercent:     dec("9"),
		CurrencySymbol: "ریال",
	}
}

func TestWriteInvoiceCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteInvoiceCSV(buf, sampleInvoice()))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Equal(t, []string{"Invoice", "3"}, records[0])
	require.Equal(t, []string{"Customer", "Arman Trading Co."}, records[2])
	// The csv reader drops the blank separator lines, so the item rows
	// directly follow the column header at index 3.
	require.Equal(t, "Widget", records[4][1])
	require.Equal(t, "163.50", records[4][6])
	require.Equal(t, "Cable", records[5][1])
	require.Equal(t, "10.00", records[5][6])
	// Grand total closes the file.
	last := records[len(records)-1]
	require.Equal(t, []string{"Grand Total", "173.50"}, last)
}

func TestWriteReportCSV(t *testing.T) {
	report := &services.SalesReport{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Rows: []services.ReportRow{
			{
				InvoiceID: 1, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
				CustomerName: "Arman Trading Co.",
				Subtotal:     dec("50"), Taxable: dec("50"),
				VAT: dec("4.5"), GrandTotal: dec("54.5"),
			},
		},
		Totals: services.Totals{
			Subtotal: dec("50"), Taxable: dec("50"),
			VAT: dec("4.5"), GrandTotal: dec("54.5"),
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteReportCSV(buf, report))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "Invoice", records[0][0])
	require.Equal(t, "54.50", records[1][7])
	require.Equal(t, []string{"Grand Total", "54.50"}, records[len(records)-1])
}

func TestInvoicePDF(t *testing.T) {
	data, err := InvoicePDF(sampleInvoice(), sampleCompany())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is not a PDF")
}

func TestReportPDF(t *testing.T) {
	report := &services.SalesReport{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	data, err := ReportPDF(report, sampleCompany())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is not a PDF")
}
