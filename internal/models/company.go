package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings holds the single company profile printed on invoices.
// Exactly one row exists (ID = 1); reads and writes go through the company service.
type CompanySettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Company information (local and latin spellings, as printed on documents)
	Name      string `gorm:"size:255;not null" json:"name"`
	NameLatin string `gorm:"size:255" json:"name_latin,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	// Address
	Address      string `gorm:"size:500" json:"address,omitempty"`
	AddressLatin string `gorm:"size:500" json:"address_latin,omitempty"`

	// Invoicing defaults
	VATPercent     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_percent"`
	CurrencySymbol string          `gorm:"size:20;not null" json:"currency_symbol"`
}

// CompanySettingsID is the fixed primary key of the singleton settings row.
const CompanySettingsID uint = 1
