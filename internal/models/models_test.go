package models

import (
	"errors"
	"testing"
)

func TestInvoiceItemBeforeCreateRequiresProduct(t *testing.T) {
	item := &InvoiceItem{}
	if err := item.BeforeCreate(nil); !errors.Is(err, ErrItemWithoutProduct) {
		t.Errorf("BeforeCreate without product = %v, want ErrItemWithoutProduct", err)
	}

	item.ProductID = 3
	if err := item.BeforeCreate(nil); err != nil {
		t.Errorf("BeforeCreate with product = %v, want nil", err)
	}
}
