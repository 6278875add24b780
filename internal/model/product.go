package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name        string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	Description string    `gorm:"type:varchar(500)" json:"description" validate:"max=500"`
	SKU         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required,min=1,max=50"`
	Price       float64   `gorm:"not null" json:"price" validate:"required,gt=0"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null" json:"supplier_id" validate:"required"`

	// Relations
	Supplier *Supplier `json:"supplier,omitempty" validate:"-"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
// SKU is immutable after create.
type ProductUpdate struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Price       *float64   `json:"price" validate:"omitempty,gt=0"`
	SupplierID  *uuid.UUID `json:"supplier_id"`
}
