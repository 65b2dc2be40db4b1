package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// CompanyService reads and updates the singleton company settings row.
type CompanyService struct {
	db *gorm.DB

	defaultVAT      decimal.Decimal
	defaultCurrency string
}

// NewCompanyService takes the configured fallbacks used when the settings
// row does not exist yet.
func NewCompanyService(db *gorm.DB, defaultVAT decimal.Decimal, defaultCurrency string) *CompanyService {
	return &CompanyService{db: db, defaultVAT: defaultVAT, defaultCurrency: defaultCurrency}
}

// Load returns the settings row, creating it with configured defaults on
// first use.
func (s *CompanyService) Load(ctx context.Context) (*models.CompanySettings, error) {
	var c models.CompanySettings
	err := s.db.WithContext(ctx).First(&c, models.CompanySettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = models.CompanySettings{
			ID:             models.CompanySettingsID,
			VATPercent:     s.defaultVAT,
			CurrencySymbol: s.defaultCurrency,
		}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return nil, fmt.Errorf("init company settings: %w", err)
		}
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load company settings: %w", err)
	}
	return &c, nil
}

// Update saves the settings row. The VAT percent is kept in [0, 100].
func (s *CompanyService) Update(ctx context.Context, c *models.CompanySettings) error {
	c.ID = models.CompanySettingsID
	if c.VATPercent.IsNegative() {
		c.VATPercent = decimal.Zero
	}
	if c.VATPercent.GreaterThan(decimal.NewFromInt(100)) {
		c.VATPercent = decimal.NewFromInt(100)
	}
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("save company settings: %w", err)
	}
	return nil
}
