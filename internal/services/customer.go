package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// CustomerService manages the customer directory.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// Create adds a customer. Only the name is mandatory.
func (s *CustomerService) Create(ctx context.Context, name, phone, address string) (*models.Customer, error) {
	if name == "" {
		return nil, errors.New("customer name is required")
	}
	c := models.Customer{Name: name, Phone: phone, Address: address}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &c, nil
}

// List returns customers, optionally filtered by a name substring.
func (s *CustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}
