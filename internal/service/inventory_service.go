package service

import (
	"errors"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	Create(req *model.InventoryItem) (*model.InventoryItem, error)
	GetAll(skip, limit int) ([]model.InventoryItem, error)
	GetByID(id uuid.UUID) (*model.InventoryItem, error)
	Update(id uuid.UUID, req *model.InventoryUpdate) (*model.InventoryItem, error)
	Delete(id uuid.UUID) error
}

type inventoryService struct {
	items repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryService{items: repo}
}

func (s *inventoryService) Create(req *model.InventoryItem) (*model.InventoryItem, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	// One record per (product, location)
	existing, err := s.items.FindByProductAndLocation(req.ProductID, req.Location)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Inventory for product %s at location %q already exists", req.ProductID, req.Location)
	}

	if err := s.items.Create(req); err != nil {
		return nil, apperr.Internal(err)
	}
	return req, nil
}

func (s *inventoryService) GetAll(skip, limit int) ([]model.InventoryItem, error) {
	items, err := s.items.FindAll(skip, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}

func (s *inventoryService) GetByID(id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Inventory item not found")
		}
		return nil, apperr.Internal(err)
	}
	return item, nil
}

func (s *inventoryService) Update(id uuid.UUID, req *model.InventoryUpdate) (*model.InventoryItem, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Moving to another location re-checks uniqueness for the target slot
	if req.Location != nil && *req.Location != item.Location {
		existing, err := s.items.FindByProductAndLocation(item.ProductID, *req.Location)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err)
		}
		if existing != nil {
			return nil, apperr.Conflict("Inventory for product %s at location %q already exists", item.ProductID, *req.Location)
		}
		item.Location = *req.Location
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if err := s.items.Update(item); err != nil {
		return nil, apperr.Internal(err)
	}
	return item, nil
}

func (s *inventoryService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.items.Delete(id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
