package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductService manages the product catalog. It also backs the composer's
// product lookup.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Product implements ProductLookup for the composer.
func (s *ProductService) Product(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return &p, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(ctx context.Context, name string, unitPrice decimal.Decimal) (*models.Product, error) {
	if name == "" {
		return nil, errors.New("product name is required")
	}
	p := models.Product{Name: name, UnitPrice: unitPrice}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// List returns products, optionally filtered by a name substring.
func (s *ProductService) List(ctx context.Context, search string) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
