package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// ErrInvoiceNotFound is returned when an invoice id does not exist.
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceService persists and reads saved invoices.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Save writes a snapshot as one atomic unit: the header row plus all line
// rows. If anything fails partway the whole write is rolled back, so the
// store can never hold an invoice with a partial set of lines. On success
// the snapshot's ID and the items' InvoiceID are filled in.
func (s *InvoiceService) Save(ctx context.Context, inv *models.Invoice) error {
	if len(inv.Items) == 0 {
		return fmt.Errorf("save invoice: %w", ErrNoItems)
	}
	items := inv.Items
	inv.Items = nil
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
	inv.Items = items
	if err != nil {
		inv.ID = 0
		return fmt.Errorf("save invoice: %w", err)
	}
	return nil
}

// Get loads one invoice with its lines (in entry order), products and customer.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Product").
		First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load invoice %d: %w", id, err)
	}
	return &inv, nil
}

// List returns all saved invoices with their customers, oldest first.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Order("id ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
