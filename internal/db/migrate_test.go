package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/hesab/internal/models"
)

func testConn(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return conn
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := testConn(t)
	require.NoError(t, Seed(conn))
	require.NoError(t, Seed(conn))

	var customers, products int64
	require.NoError(t, conn.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)
	require.EqualValues(t, 2, customers)
	require.EqualValues(t, 2, products)
}

func TestSeedReportsQueryErrors(t *testing.T) {
	conn := testConn(t)
	// A broken schema must surface as an error, not as a silent skip.
	require.NoError(t, conn.Exec("DROP TABLE products").Error)
	require.Error(t, Seed(conn))
}

func TestWipeClearsData(t *testing.T) {
	conn := testConn(t)
	require.NoError(t, Seed(conn))
	require.NoError(t, Wipe(conn))

	var customers, products int64
	require.NoError(t, conn.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)
	require.Zero(t, customers)
	require.Zero(t, products)
}
