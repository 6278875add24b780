package service

import (
	"errors"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierService interface {
	Create(req *model.Supplier) (*model.Supplier, error)
	GetAll(skip, limit int) ([]model.Supplier, error)
	GetByID(id uuid.UUID) (*model.Supplier, error)
	Update(id uuid.UUID, req *model.SupplierUpdate) (*model.Supplier, error)
	Delete(id uuid.UUID) error
}

type supplierService struct {
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
}

func NewSupplierService(sRepo repository.SupplierRepository, pRepo repository.ProductRepository) SupplierService {
	return &supplierService{
		suppliers: sRepo,
		products:  pRepo,
	}
}

func (s *supplierService) Create(req *model.Supplier) (*model.Supplier, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}
	if err := s.suppliers.Create(req); err != nil {
		return nil, apperr.Internal(err)
	}
	return req, nil
}

func (s *supplierService) GetAll(skip, limit int) ([]model.Supplier, error) {
	suppliers, err := s.suppliers.FindAll(skip, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return suppliers, nil
}

func (s *supplierService) GetByID(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.suppliers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Supplier not found")
		}
		return nil, apperr.Internal(err)
	}
	return supplier, nil
}

func (s *supplierService) Update(id uuid.UUID, req *model.SupplierUpdate) (*model.Supplier, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	supplier, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.ContactInfo != nil {
		supplier.ContactInfo = *req.ContactInfo
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}

	if err := s.suppliers.Update(supplier); err != nil {
		return nil, apperr.Internal(err)
	}
	return supplier, nil
}

// Delete is restricted: a supplier still referenced by products cannot be
// removed.
func (s *supplierService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	count, err := s.products.CountBySupplier(id)
	if err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Conflict("Supplier has %d products and cannot be deleted", count)
	}

	if err := s.suppliers.Delete(id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
