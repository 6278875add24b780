package service

import (
	"errors"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/apperr"
	"go-inventory-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(req *model.Product) (*model.Product, error)
	GetAll(skip, limit int) ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	Update(id uuid.UUID, req *model.ProductUpdate) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type productService struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	hub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, sRepo repository.SupplierRepository, hub *ws.Hub) ProductService {
	return &productService{
		products:  pRepo,
		suppliers: sRepo,
		hub:       hub,
	}
}

func (s *productService) Create(req *model.Product) (*model.Product, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	// Duplicate SKU check
	existing, err := s.products.FindBySKU(req.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Product with SKU %s already exists", req.SKU)
	}

	// Referenced supplier must exist
	if _, err := s.suppliers.FindByID(req.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Conflict("Supplier with id %s not found", req.SupplierID)
		}
		return nil, apperr.Internal(err)
	}

	if err := s.products.Create(req); err != nil {
		return nil, apperr.Internal(err)
	}

	// Fire-and-forget live update
	go s.hub.BroadcastEvent("product_created", req)

	return req, nil
}

func (s *productService) GetAll(skip, limit int) ([]model.Product, error) {
	products, err := s.products.FindAll(skip, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal(err)
	}
	return product, nil
}

func (s *productService) Update(id uuid.UUID, req *model.ProductUpdate) (*model.Product, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// When the supplier reference changes it must resolve to an existing row
	if req.SupplierID != nil && *req.SupplierID != product.SupplierID {
		if _, err := s.suppliers.FindByID(*req.SupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Conflict("Supplier with id %s not found", *req.SupplierID)
			}
			return nil, apperr.Internal(err)
		}
		product.SupplierID = *req.SupplierID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.products.Update(product); err != nil {
		return nil, apperr.Internal(err)
	}

	go s.hub.BroadcastEvent("product_updated", product)

	return product, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// firstValidationError converts the first failing struct rule into the
// validation error surfaced to the client.
func firstValidationError(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return apperr.Validation("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	return nil
}
