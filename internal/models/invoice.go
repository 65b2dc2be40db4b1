package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a saved invoice: one header row with the five aggregate
// figures plus its ordered line items. Invoices are written once, as a
// whole, and never edited afterwards.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Date       time.Time `gorm:"not null" json:"date"`

	// Aggregates, computed by the composer at snapshot time.
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	DiscountSum decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"discount_sum"`
	Taxable     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"taxable"`
	VAT         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"vat"`
	GrandTotal  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"grand_total"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// InvoiceItem is one saved invoice line. Position preserves the order the
// lines were entered in.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	ProductID uint     `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_percent"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"line_total"`

	Position int `gorm:"not null;default:0" json:"position"`
}

// ErrItemWithoutProduct aborts a save when a line lost its product reference.
var ErrItemWithoutProduct = errors.New("invoice item has no product reference")

// BeforeCreate rejects line rows without a product so a corrupt line aborts
// the surrounding save transaction.
func (item *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if item.ProductID == 0 {
		return ErrItemWithoutProduct
	}
	return nil
}
