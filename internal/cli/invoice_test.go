package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diewo77/hesab/internal/models"
	"github.com/diewo77/hesab/internal/services"
)

type stubLookup map[uint]*models.Product

func (s stubLookup) Product(id uint) (*models.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("no such product %d", id)
	}
	return p, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddItemSpec(t *testing.T) {
	catalog := stubLookup{
		1: {ID: 1, Name: "Widget", UnitPrice: dec("100")},
	}

	tests := []struct {
		name     string
		spec     string
		qty      string
		discount string
		tax      string
		wantErr  bool
	}{
		{name: "product only", spec: "1", qty: "1", discount: "0", tax: "9"},
		{name: "with quantity", spec: "1:2.5", qty: "2.5", discount: "0", tax: "9"},
		{name: "with discount", spec: "1:2:10", qty: "2", discount: "10", tax: "9"},
		{name: "full spec", spec: "1:2:10:0", qty: "2", discount: "10", tax: "0"},
		{name: "empty middle field keeps default", spec: "1::5", qty: "1", discount: "5", tax: "9"},
		{name: "bad product", spec: "x", wantErr: true},
		{name: "unknown product", spec: "7", wantErr: true},
		{name: "zero quantity", spec: "1:0", wantErr: true},
		{name: "negative quantity", spec: "1:-2", wantErr: true},
		{name: "too many fields", spec: "1:2:3:4:5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := services.NewComposer(catalog, dec("9"))
			err := addItemSpec(composer, tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("addItemSpec(%q) succeeded, want error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("addItemSpec(%q): %v", tt.spec, err)
			}
			l := composer.Lines()[0]
			if !l.Quantity.Equal(dec(tt.qty)) {
				t.Errorf("quantity = %s, want %s", l.Quantity, tt.qty)
			}
			if !l.DiscountPercent.Equal(dec(tt.discount)) {
				t.Errorf("discount = %s, want %s", l.DiscountPercent, tt.discount)
			}
			if !l.TaxPercent.Equal(dec(tt.tax)) {
				t.Errorf("tax = %s, want %s", l.TaxPercent, tt.tax)
			}
		})
	}
}

func TestAddItemSpecDoesNotMaskOutOfRange(t *testing.T) {
	// A failed add leaves no line behind, so nothing later in the spec can
	// reference a phantom position.
	composer := services.NewComposer(stubLookup{}, dec("9"))
	if err := addItemSpec(composer, "5:2"); err == nil {
		t.Fatal("expected lookup error")
	}
	if composer.Len() != 0 {
		t.Fatalf("composer has %d lines, want 0", composer.Len())
	}
	if err := composer.SetQuantity(0, dec("2")); !errors.Is(err, services.ErrOutOfRange) {
		t.Fatalf("error = %v, want ErrOutOfRange", err)
	}
}
