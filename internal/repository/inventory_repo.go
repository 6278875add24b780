package repository

import (
	"go-inventory-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	FindAll(skip, limit int) ([]model.InventoryItem, error)
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindByProductAndLocation(productID uuid.UUID, location string) (*model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	Delete(id uuid.UUID) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) FindAll(skip, limit int) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Preload("Product").Offset(skip).Limit(limit).Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.Preload("Product").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) FindByProductAndLocation(productID uuid.UUID, location string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "product_id = ? AND location = ?", productID, location).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) Update(item *model.InventoryItem) error {
	return r.db.Omit("Product").Save(item).Error
}

func (r *inventoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.InventoryItem{}, "id = ?", id).Error
}
