package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item with its current catalog price.
// The price is copied onto invoice lines at selection time, so later
// price edits never change an in-progress or saved invoice.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string          `gorm:"size:255;not null;index" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
}
