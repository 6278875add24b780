package service

import (
	"testing"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInventoryService(t *testing.T) (InventoryService, *gorm.DB) {
	db := newTestDB(t)
	return NewInventoryService(repository.NewInventoryRepo(db)), db
}

func TestCreateInventoryItem(t *testing.T) {
	svc, db := newInventoryService(t)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, supplier, "W-1")

	created, err := svc.Create(&model.InventoryItem{
		ProductID: product.ID,
		Quantity:  10,
		Location:  "warehouse-a",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, created.Quantity)
}

func TestCreateInventoryItemDuplicateLocation(t *testing.T) {
	svc, db := newInventoryService(t)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, supplier, "W-1")

	_, err := svc.Create(&model.InventoryItem{ProductID: product.ID, Quantity: 10, Location: "warehouse-a"})
	require.NoError(t, err)

	_, err = svc.Create(&model.InventoryItem{ProductID: product.ID, Quantity: 5, Location: "warehouse-a"})
	assertCode(t, err, apperr.CodeConflict)

	var count int64
	db.Model(&model.InventoryItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateInventoryItemSameLocationDifferentProduct(t *testing.T) {
	svc, db := newInventoryService(t)
	supplier := seedSupplier(t, db)
	first := seedProduct(t, db, supplier, "W-1")
	second := seedProduct(t, db, supplier, "W-2")

	_, err := svc.Create(&model.InventoryItem{ProductID: first.ID, Quantity: 1, Location: "warehouse-a"})
	require.NoError(t, err)
	_, err = svc.Create(&model.InventoryItem{ProductID: second.ID, Quantity: 1, Location: "warehouse-a"})
	require.NoError(t, err)
}

func TestUpdateInventoryItemMoveToOccupiedLocation(t *testing.T) {
	svc, db := newInventoryService(t)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, supplier, "W-1")

	_, err := svc.Create(&model.InventoryItem{ProductID: product.ID, Quantity: 10, Location: "warehouse-a"})
	require.NoError(t, err)
	item, err := svc.Create(&model.InventoryItem{ProductID: product.ID, Quantity: 5, Location: "warehouse-b"})
	require.NoError(t, err)

	occupied := "warehouse-a"
	_, err = svc.Update(item.ID, &model.InventoryUpdate{Location: &occupied})
	assertCode(t, err, apperr.CodeConflict)
}

func TestUpdateInventoryItemQuantity(t *testing.T) {
	svc, db := newInventoryService(t)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, supplier, "W-1")

	item, err := svc.Create(&model.InventoryItem{ProductID: product.ID, Quantity: 10, Location: "warehouse-a"})
	require.NoError(t, err)

	qty := 0
	updated, err := svc.Update(item.ID, &model.InventoryUpdate{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, "warehouse-a", updated.Location)
}

func TestDeleteInventoryItem(t *testing.T) {
	svc, db := newInventoryService(t)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, supplier, "W-1")

	item, err := svc.Create(&model.InventoryItem{ProductID: product.ID, Quantity: 10, Location: "warehouse-a"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(item.ID))
	_, err = svc.GetByID(item.ID)
	assertCode(t, err, apperr.CodeNotFound)
}
