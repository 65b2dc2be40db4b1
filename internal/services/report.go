package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// ReportRow is one invoice in a sales report.
type ReportRow struct {
	InvoiceID    uint
	Date         time.Time
	CustomerName string
	Subtotal     decimal.Decimal
	DiscountSum  decimal.Decimal
	Taxable      decimal.Decimal
	VAT          decimal.Decimal
	GrandTotal   decimal.Decimal
}

// SalesReport covers the invoices saved in a date range, with the same five
// aggregates summed across all of them.
type SalesReport struct {
	From   time.Time
	To     time.Time
	Rows   []ReportRow
	Totals Totals
}

// ReportService builds reports over saved invoices. It reads the header
// aggregates as persisted and never recomputes them from line items.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Sales returns a report over invoices dated in [from, to], inclusive. The
// bounds are calendar dates: an invoice stamped anywhere within the to day
// still falls inside the range.
func (s *ReportService) Sales(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("date >= ? AND date < ?", from, to.AddDate(0, 0, 1)).
		Order("date ASC, id ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	report := &SalesReport{From: from, To: to}
	for _, inv := range invoices {
		name := ""
		if inv.Customer != nil {
			name = inv.Customer.Name
		}
		report.Rows = append(report.Rows, ReportRow{
			InvoiceID:    inv.ID,
			Date:         inv.Date,
			CustomerName: name,
			Subtotal:     inv.Subtotal,
			DiscountSum:  inv.DiscountSum,
			Taxable:      inv.Taxable,
			VAT:          inv.VAT,
			GrandTotal:   inv.GrandTotal,
		})
		report.Totals.Subtotal = report.Totals.Subtotal.Add(inv.Subtotal)
		report.Totals.DiscountSum = report.Totals.DiscountSum.Add(inv.DiscountSum)
		report.Totals.Taxable = report.Totals.Taxable.Add(inv.Taxable)
		report.Totals.VAT = report.Totals.VAT.Add(inv.VAT)
		report.Totals.GrandTotal = report.Totals.GrandTotal.Add(inv.GrandTotal)
	}
	return report, nil
}

// Revenue sums the grand totals of every saved invoice.
func (s *ReportService) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var invoices []models.Invoice
	if err := s.db.WithContext(ctx).Find(&invoices).Error; err != nil {
		return decimal.Zero, fmt.Errorf("revenue: %w", err)
	}
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.GrandTotal)
	}
	return total, nil
}
