package service

import (
	"errors"
	"strings"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionService interface {
	Create(req *model.Transaction) (*model.Transaction, error)
	GetAll(skip, limit int) ([]model.Transaction, error)
	GetByID(id uuid.UUID) (*model.Transaction, error)
	Update(id uuid.UUID, req *model.TransactionUpdate) (*model.Transaction, error)
	UpdatePaymentStatus(id uuid.UUID, status model.PaymentStatus, paymentID string) (*model.Transaction, error)
}

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(repo repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: repo}
}

// Create persists a new transaction. The payment status is always forced to
// pending; whatever the client sent is discarded. Payment processing happens
// afterwards as a deferred task, never on this path.
func (s *transactionService) Create(req *model.Transaction) (*model.Transaction, error) {
	req.Type = model.TransactionType(strings.ToLower(string(req.Type)))

	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	req.PaymentStatus = model.PaymentPending
	req.PaymentID = ""

	if err := s.transactions.Create(req); err != nil {
		return nil, apperr.Internal(err)
	}
	return req, nil
}

func (s *transactionService) GetAll(skip, limit int) ([]model.Transaction, error) {
	transactions, err := s.transactions.FindAll(skip, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return transactions, nil
}

func (s *transactionService) GetByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Transaction not found")
		}
		return nil, apperr.Internal(err)
	}
	return transaction, nil
}

// Update is restricted to the payment fields and goes through the same
// transition rules as the webhook path.
func (s *transactionService) Update(id uuid.UUID, req *model.TransactionUpdate) (*model.Transaction, error) {
	transaction, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, apperr.Validation("Unknown payment status %q", *req.PaymentStatus)
		}
		if *req.PaymentStatus != transaction.PaymentStatus {
			if !transaction.PaymentStatus.CanTransitionTo(*req.PaymentStatus) {
				return nil, apperr.Conflict("Cannot move payment status from %q to %q", transaction.PaymentStatus, *req.PaymentStatus)
			}
			transaction.PaymentStatus = *req.PaymentStatus
		}
	}
	if req.PaymentID != nil {
		transaction.PaymentID = *req.PaymentID
	}

	if err := s.transactions.Update(transaction); err != nil {
		return nil, apperr.Internal(err)
	}
	return transaction, nil
}

// UpdatePaymentStatus applies a webhook-reported outcome.
func (s *transactionService) UpdatePaymentStatus(id uuid.UUID, status model.PaymentStatus, paymentID string) (*model.Transaction, error) {
	transaction, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if status != transaction.PaymentStatus {
		if !transaction.PaymentStatus.CanTransitionTo(status) {
			return nil, apperr.Conflict("Cannot move payment status from %q to %q", transaction.PaymentStatus, status)
		}
		transaction.PaymentStatus = status
	}
	if paymentID != "" {
		transaction.PaymentID = paymentID
	}

	if err := s.transactions.Update(transaction); err != nil {
		return nil, apperr.Internal(err)
	}
	return transaction, nil
}
