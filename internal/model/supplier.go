package model

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactInfo string `gorm:"type:varchar(255)" json:"contact_info" validate:"required"`
	Address     string `gorm:"type:varchar(255)" json:"address" validate:"required"`

	// Relations
	Products []Product `json:"products,omitempty" validate:"-"`
}

// SupplierUpdate carries a partial update; nil fields are left untouched.
type SupplierUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	ContactInfo *string `json:"contact_info" validate:"omitempty,min=1"`
	Address     *string `json:"address" validate:"omitempty,min=1"`
}
