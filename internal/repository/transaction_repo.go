package repository

import (
	"go-inventory-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindAll(skip, limit int) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	Update(tx *model.Transaction) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepo) FindAll(skip, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Product").Order("created_at DESC").Offset(skip).Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) Update(tx *model.Transaction) error {
	return r.db.Omit("Product").Save(tx).Error
}
