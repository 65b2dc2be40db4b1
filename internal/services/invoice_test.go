package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

// testDB opens a private in-memory database and migrates the schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.CompanySettings{},
		&models.Customer{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
	))
	return conn
}

// seedCatalog inserts a customer and two products, returning their ids.
func seedCatalog(t *testing.T, conn *gorm.DB) (customerID, widgetID, cableID uint) {
	t.Helper()
	customer := models.Customer{Name: "Arman Trading Co."}
	require.NoError(t, conn.Create(&customer).Error)
	widget := models.Product{Name: "Widget", UnitPrice: dec("50")}
	require.NoError(t, conn.Create(&widget).Error)
	cable := models.Product{Name: "Cable", UnitPrice: dec("20")}
	require.NoError(t, conn.Create(&cable).Error)
	return customer.ID, widget.ID, cable.ID
}

func composeScenario(t *testing.T, products ProductLookup, customerID, widgetID, cableID uint) *models.Invoice {
	t.Helper()
	c := NewComposer(products, dec("9"))
	pos, err := c.AddItem(widgetID)
	require.NoError(t, err)
	require.NoError(t, c.SetQuantity(pos, dec("3")))
	pos, err = c.AddItem(cableID)
	require.NoError(t, err)
	require.NoError(t, c.SetDiscountPercent(pos, dec("50")))
	require.NoError(t, c.SetTaxPercent(pos, dec("0")))
	inv, err := c.Snapshot(customerID, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return inv
}

func TestInvoiceSaveAndGet(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	customerID, widgetID, cableID := seedCatalog(t, conn)
	products := NewProductService(conn)
	invoices := NewInvoiceService(conn)

	inv := composeScenario(t, products, customerID, widgetID, cableID)
	require.NoError(t, invoices.Save(ctx, inv))
	require.NotZero(t, inv.ID)

	loaded, err := invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, customerID, loaded.CustomerID)
	require.NotNil(t, loaded.Customer)
	require.Equal(t, "Arman Trading Co.", loaded.Customer.Name)

	require.True(t, loaded.Subtotal.Equal(dec("170")), "subtotal = %s", loaded.Subtotal)
	require.True(t, loaded.DiscountSum.Equal(dec("10")), "discount_sum = %s", loaded.DiscountSum)
	require.True(t, loaded.Taxable.Equal(dec("160")), "taxable = %s", loaded.Taxable)
	require.True(t, loaded.VAT.Equal(dec("13.5")), "vat = %s", loaded.VAT)
	require.True(t, loaded.GrandTotal.Equal(dec("173.5")), "grand_total = %s", loaded.GrandTotal)

	require.Len(t, loaded.Items, 2)
	require.Equal(t, widgetID, loaded.Items[0].ProductID)
	require.Equal(t, cableID, loaded.Items[1].ProductID)
	require.True(t, loaded.Items[0].LineTotal.Equal(dec("163.5")))
	require.True(t, loaded.Items[1].LineTotal.Equal(dec("10")))
	require.NotNil(t, loaded.Items[0].Product)
	require.Equal(t, "Widget", loaded.Items[0].Product.Name)
}

func TestInvoiceGetNotFound(t *testing.T) {
	conn := testDB(t)
	invoices := NewInvoiceService(conn)
	_, err := invoices.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceSaveRollsBackOnBadLine(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	customerID, widgetID, cableID := seedCatalog(t, conn)
	products := NewProductService(conn)
	invoices := NewInvoiceService(conn)

	inv := composeScenario(t, products, customerID, widgetID, cableID)
	// Corrupt the second line so its insert fails after the header and the
	// first line were already written inside the transaction.
	inv.Items[1].ProductID = 0

	err := invoices.Save(ctx, inv)
	require.ErrorIs(t, err, models.ErrItemWithoutProduct)
	require.Zero(t, inv.ID)

	var headers, lines int64
	require.NoError(t, conn.Model(&models.Invoice{}).Count(&headers).Error)
	require.NoError(t, conn.Model(&models.InvoiceItem{}).Count(&lines).Error)
	require.Zero(t, headers, "a failed save must leave no header row")
	require.Zero(t, lines, "a failed save must leave no line rows")

	// The snapshot is intact, so the save can be retried after fixing it.
	inv.Items[1].ProductID = cableID
	require.NoError(t, invoices.Save(ctx, inv))
	require.NotZero(t, inv.ID)
}

func TestReportSalesAndRevenue(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	customerID, widgetID, cableID := seedCatalog(t, conn)
	products := NewProductService(conn)
	invoices := NewInvoiceService(conn)
	reports := NewReportService(conn)

	c := NewComposer(products, dec("9"))
	for i, date := range []time.Time{
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	} {
		id := widgetID
		if i%2 == 1 {
			id = cableID
		}
		_, err := c.AddItem(id)
		require.NoError(t, err)
		inv, err := c.Snapshot(customerID, date)
		require.NoError(t, err)
		require.NoError(t, invoices.Save(ctx, inv))
		c.Reset()
	}

	report, err := reports.Sales(ctx,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, report.Rows, 2, "only January invoices belong in the range")
	require.Equal(t, "Arman Trading Co.", report.Rows[0].CustomerName)
	// 50×1.09 + 20×1.09
	require.True(t, report.Totals.GrandTotal.Equal(dec("76.3")),
		"report grand total = %s", report.Totals.GrandTotal)

	revenue, err := reports.Revenue(ctx)
	require.NoError(t, err)
	require.True(t, revenue.Equal(dec("130.8")), "revenue = %s", revenue)
}

func TestReportSalesIncludesWholeEndDay(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	customerID, widgetID, _ := seedCatalog(t, conn)
	products := NewProductService(conn)
	invoices := NewInvoiceService(conn)
	reports := NewReportService(conn)

	c := NewComposer(products, dec("9"))
	// An invoice stamped with a time of day on the range's last date, and one
	// at midnight of the next day.
	for _, date := range []time.Time{
		time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := c.AddItem(widgetID)
		require.NoError(t, err)
		inv, err := c.Snapshot(customerID, date)
		require.NoError(t, err)
		require.NoError(t, invoices.Save(ctx, inv))
		c.Reset()
	}

	report, err := reports.Sales(ctx,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, report.Rows, 1, "the end date covers the whole day")
	require.Equal(t, 31, report.Rows[0].Date.Day())
}

func TestProductServiceLookupAndSearch(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	products := NewProductService(conn)

	created, err := products.Create(ctx, "Widget", dec("50"))
	require.NoError(t, err)
	_, err = products.Create(ctx, "Cable", dec("20"))
	require.NoError(t, err)

	p, err := products.Product(created.ID)
	require.NoError(t, err)
	require.True(t, p.UnitPrice.Equal(dec("50")))

	_, err = products.Product(999)
	require.ErrorIs(t, err, ErrProductNotFound)

	found, err := products.List(ctx, "Wid")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Widget", found[0].Name)

	_, err = products.Create(ctx, "", dec("1"))
	require.Error(t, err)
}

func TestCustomerServiceSearch(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	customers := NewCustomerService(conn)

	_, err := customers.Create(ctx, "Arman Trading Co.", "021-555", "Tehran")
	require.NoError(t, err)
	_, err = customers.Create(ctx, "Walk-in customer", "", "")
	require.NoError(t, err)

	found, err := customers.List(ctx, "Arman")
	require.NoError(t, err)
	require.Len(t, found, 1)

	all, err := customers.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = customers.Create(ctx, "", "", "")
	require.Error(t, err)
}

func TestCompanyServiceDefaultsAndUpdate(t *testing.T) {
	conn := testDB(t)
	ctx := context.Background()
	company := NewCompanyService(conn, dec("9"), "ریال")

	c, err := company.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, models.CompanySettingsID, c.ID)
	require.True(t, c.VATPercent.Equal(dec("9")))
	require.Equal(t, "ریال", c.CurrencySymbol)

	c.Name = "Hesab Co."
	c.VATPercent = dec("150") // kept in range on save
	require.NoError(t, company.Update(ctx, c))

	again, err := company.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hesab Co.", again.Name)
	require.True(t, again.VATPercent.Equal(dec("100")))
}
