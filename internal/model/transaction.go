package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxPurchase   TransactionType = "purchase"
	TxSale       TransactionType = "sale"
	TxAdjustment TransactionType = "adjustment"
)

// PaymentStatus is a closed set. New transactions always start out pending;
// the only legal transitions are pending -> completed and pending -> failed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving to next is allowed.
// Terminal states (completed, failed) cannot be left.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentPending && (next == PaymentCompleted || next == PaymentFailed)
}

type Transaction struct {
	BaseModel
	Type        TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=purchase sale adjustment"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id" validate:"required"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64         `gorm:"not null" json:"unit_price" validate:"required,gt=0"`
	TotalAmount float64         `gorm:"not null" json:"total_amount" validate:"required,gt=0"`

	// Payment state, owned by the payment workflow. PaymentID is the
	// external gateway reference once the provider has reported back.
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentID     string        `gorm:"type:varchar(255)" json:"payment_id,omitempty"`

	// Relations
	Product *Product `json:"product,omitempty" validate:"-"`
}

// TransactionUpdate is restricted to the payment fields; everything else on a
// transaction is immutable after create.
type TransactionUpdate struct {
	PaymentStatus *PaymentStatus `json:"payment_status"`
	PaymentID     *string        `json:"payment_id"`
}
