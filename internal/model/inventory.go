package model

import "github.com/google/uuid"

// InventoryItem tracks the quantity of a product at a named location.
// One row per (product, location) pair, enforced by the composite index.
type InventoryItem struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_location" json:"product_id" validate:"required"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Location  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_product_location" json:"location" validate:"required,min=1,max=100"`

	// Relations
	Product *Product `json:"product,omitempty" validate:"-"`
}

// InventoryUpdate carries a partial update; nil fields are left untouched.
type InventoryUpdate struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gte=0"`
	Location *string `json:"location" validate:"omitempty,min=1,max=100"`
}
