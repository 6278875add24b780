package service

import (
	"testing"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Supplier{},
		&model.Product{},
		&model.InventoryItem{},
		&model.Transaction{},
		&model.User{},
	))
	return db
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub(zap.NewNop())
	go hub.Run()
	return hub
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{
		Name:        "Acme",
		ContactInfo: "x@acme.com",
		Address:     "1 Main St",
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, supplier *model.Supplier, sku string) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       "Widget",
		SKU:        sku,
		Price:      9.99,
		SupplierID: supplier.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
