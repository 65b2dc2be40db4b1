package db

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// Migrate brings the schema up to date for every model.
func Migrate(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.CompanySettings{},
		&models.Customer{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Seed inserts a few demo customers and products for a fresh install.
// It is idempotent: rows are only created when missing.
func Seed(conn *gorm.DB) error {
	customers := []models.Customer{
		{Name: "Walk-in customer"},
		{Name: "Arman Trading Co.", Phone: "021-555-0101", Address: "Tehran, Valiasr St. 12"},
	}
	for _, c := range customers {
		var existing models.Customer
		err := conn.Where("name = ?", c.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = conn.Create(&c).Error
		}
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", c.Name, err)
		}
	}
	products := []models.Product{
		{Name: "Consulting hour", UnitPrice: decimal.NewFromInt(500000)},
		{Name: "Installation service", UnitPrice: decimal.NewFromInt(1200000)},
	}
	for _, p := range products {
		var existing models.Product
		err := conn.Where("name = ?", p.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = conn.Create(&p).Error
		}
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

// Wipe drops all invoicing data. Schema and company settings survive; the
// settings row is reset to its zero values on next load if removed.
func Wipe(conn *gorm.DB) error {
	for _, stmt := range []string{
		"DELETE FROM invoice_items",
		"DELETE FROM invoices",
		"DELETE FROM products",
		"DELETE FROM customers",
	} {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
	}
	return nil
}
