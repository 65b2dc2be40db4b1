package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/hesab/internal/models"
)

// Sentinel errors returned by the composer.
var (
	// ErrOutOfRange means a mutation referenced a line position that no
	// longer exists. The operation is a no-op.
	ErrOutOfRange = errors.New("line position out of range")
	// ErrNoCustomer means Snapshot was called without a customer selected.
	ErrNoCustomer = errors.New("invoice has no customer")
	// ErrNoItems means Snapshot was called on an invoice with no lines.
	ErrNoItems = errors.New("invoice has no items")
)

var hundred = decimal.NewFromInt(100)

// ProductLookup resolves a product reference when a line is added or its
// product selection changes. Backed by the product service in the app;
// tests supply fakes.
type ProductLookup interface {
	Product(id uint) (*models.Product, error)
}

// Line is one in-progress invoice line. The unit price is copied from the
// product at selection time and stays editable afterwards; the line total is
// always derived from the other four fields, never set directly.
type Line struct {
	ProductID       uint
	UnitPrice       decimal.Decimal
	Quantity        decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
}

// Gross is unit price times quantity, before discount and tax.
func (l Line) Gross() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}

// DiscountValue is the monetary value of the line discount.
func (l Line) DiscountValue() decimal.Decimal {
	return l.Gross().Mul(l.DiscountPercent).Div(hundred)
}

// Taxable is the gross amount after discount, the base tax is computed on.
func (l Line) Taxable() decimal.Decimal {
	return l.Gross().Sub(l.DiscountValue())
}

// TaxValue is the tax charged on the taxable amount.
func (l Line) TaxValue() decimal.Decimal {
	return l.Taxable().Mul(l.TaxPercent).Div(hundred)
}

// Total is the payable amount for the line: taxable plus tax.
func (l Line) Total() decimal.Decimal {
	return l.Taxable().Add(l.TaxValue())
}

// Totals are the five aggregate figures over all current lines.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DiscountSum decimal.Decimal `json:"discount_sum"`
	Taxable     decimal.Decimal `json:"taxable"`
	VAT         decimal.Decimal `json:"vat"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// Composer owns the working set of lines for one invoice being entered.
// It is the single source of truth during composition: the presentation
// layer mutates lines only through these operations and re-reads lines and
// totals after every change. Not safe for concurrent use; the app runs it
// on a single goroutine.
type Composer struct {
	products   ProductLookup
	defaultTax decimal.Decimal
	lines      []Line
}

// NewComposer returns an empty composer. defaultTaxPercent is the configured
// VAT rate new lines are seeded with; it is fixed at construction rather
// than read from settings on every add.
func NewComposer(products ProductLookup, defaultTaxPercent decimal.Decimal) *Composer {
	return &Composer{products: products, defaultTax: clampPercent(defaultTaxPercent)}
}

// Len reports the number of lines.
func (c *Composer) Len() int { return len(c.lines) }

// Lines returns a copy of the current lines in insertion order.
func (c *Composer) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// AddItem appends a line for the given product, seeded with the product's
// current price, quantity 1, no discount and the default tax rate. It
// returns the position of the new line.
func (c *Composer) AddItem(productID uint) (int, error) {
	p, err := c.products.Product(productID)
	if err != nil {
		return 0, fmt.Errorf("add item: %w", err)
	}
	c.lines = append(c.lines, Line{
		ProductID:  p.ID,
		UnitPrice:  p.UnitPrice,
		Quantity:   decimal.NewFromInt(1),
		TaxPercent: c.defaultTax,
	})
	return len(c.lines) - 1, nil
}

// SetProduct changes the product of the line at pos and re-seeds its unit
// price from the newly selected product. The re-seed happens even if the
// price had been hand-edited: a product change is treated as a fresh
// selection.
func (c *Composer) SetProduct(pos int, productID uint) error {
	if err := c.check(pos); err != nil {
		return err
	}
	p, err := c.products.Product(productID)
	if err != nil {
		return fmt.Errorf("set product: %w", err)
	}
	c.lines[pos].ProductID = p.ID
	c.lines[pos].UnitPrice = p.UnitPrice
	return nil
}

// SetUnitPrice overrides the seeded unit price of the line at pos.
func (c *Composer) SetUnitPrice(pos int, price decimal.Decimal) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.lines[pos].UnitPrice = price
	return nil
}

// SetQuantity changes the quantity of the line at pos. Fractional
// quantities are allowed.
func (c *Composer) SetQuantity(pos int, qty decimal.Decimal) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.lines[pos].Quantity = qty
	return nil
}

// SetDiscountPercent changes the discount of the line at pos, clamped to
// [0, 100].
func (c *Composer) SetDiscountPercent(pos int, pct decimal.Decimal) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.lines[pos].DiscountPercent = clampPercent(pct)
	return nil
}

// SetTaxPercent changes the tax rate of the line at pos, clamped to [0, 100].
func (c *Composer) SetTaxPercent(pos int, pct decimal.Decimal) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.lines[pos].TaxPercent = clampPercent(pct)
	return nil
}

// RemoveItem deletes the line at pos, preserving the order of the rest.
func (c *Composer) RemoveItem(pos int) error {
	if err := c.check(pos); err != nil {
		return err
	}
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
	return nil
}

// Totals folds the current lines, in insertion order, into the five
// aggregate figures. An empty invoice yields all zeros.
func (c *Composer) Totals() Totals {
	var t Totals
	for _, l := range c.lines {
		t.Subtotal = t.Subtotal.Add(l.Gross())
		t.DiscountSum = t.DiscountSum.Add(l.DiscountValue())
		t.Taxable = t.Taxable.Add(l.Taxable())
		t.VAT = t.VAT.Add(l.TaxValue())
		t.GrandTotal = t.GrandTotal.Add(l.Total())
	}
	return t
}

// Snapshot validates the composed invoice and returns the record to persist:
// the header with the five aggregates plus one row per line in entry order.
// The composer keeps its state, so a failed save can be retried; call Reset
// once the save succeeded.
func (c *Composer) Snapshot(customerID uint, date time.Time) (*models.Invoice, error) {
	if customerID == 0 {
		return nil, ErrNoCustomer
	}
	if len(c.lines) == 0 {
		return nil, ErrNoItems
	}
	t := c.Totals()
	inv := &models.Invoice{
		CustomerID:  customerID,
		Date:        date,
		Subtotal:    t.Subtotal,
		DiscountSum: t.DiscountSum,
		Taxable:     t.Taxable,
		VAT:         t.VAT,
		GrandTotal:  t.GrandTotal,
		Items:       make([]models.InvoiceItem, 0, len(c.lines)),
	}
	for i, l := range c.lines {
		inv.Items = append(inv.Items, models.InvoiceItem{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
			LineTotal:       l.Total(),
			Position:        i,
		})
	}
	return inv, nil
}

// Reset discards all lines, returning the composer to a fresh composing
// state. Called after a successful save; saved invoices are not re-editable.
func (c *Composer) Reset() {
	c.lines = c.lines[:0]
}

func (c *Composer) check(pos int) error {
	if pos < 0 || pos >= len(c.lines) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, pos, len(c.lines))
	}
	return nil
}

func clampPercent(pct decimal.Decimal) decimal.Decimal {
	switch {
	case pct.IsNegative():
		return decimal.Zero
	case pct.GreaterThan(hundred):
		return hundred
	default:
		return pct
	}
}
