package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// Service exposes the role-gated catalog operations. Every method takes the
// actor's effective role; authorization failures surface as typed forbidden
// errors rather than panics or silent drops.
type Service interface {
	ListProducts(ctx context.Context, actor enums.UserRole, params ListParams) ([]ProductDTO, error)
	GetProduct(ctx context.Context, actor enums.UserRole, productID uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, actor enums.UserRole, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, actor enums.UserRole, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, actor enums.UserRole, productID uuid.UUID) error
	ListCategories(ctx context.Context, actor enums.UserRole) ([]LookupDTO, error)
	ListManufacturers(ctx context.Context, actor enums.UserRole) ([]LookupDTO, error)
	ListSuppliers(ctx context.Context, actor enums.UserRole) ([]LookupDTO, error)
}

// imageRemover deletes a stored product image by its relative path.
type imageRemover interface {
	Remove(relPath string) error
}

type service struct {
	repo    *Repository
	lookups *LookupRepository
	client  *db.Client
	images  imageRemover
}

// NewService constructs the catalog service.
func NewService(repo *Repository, lookups *LookupRepository, client *db.Client, images imageRemover) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if lookups == nil {
		return nil, fmt.Errorf("lookup repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:    repo,
		lookups: lookups,
		client:  client,
		images:  images,
	}, nil
}

var errNoPermission = pkgerrors.New(pkgerrors.CodeForbidden, "you do not have permission to perform this action")

// ListProducts returns the catalog. Staff actors may filter by supplier,
// search by name, and pick the ordering; everyone else gets the default
// listing and their params are ignored.
func (s *service) ListProducts(ctx context.Context, actor enums.UserRole, params ListParams) ([]ProductDTO, error) {
	if !actor.IsStaff() {
		params = DefaultListParams()
	}

	rows, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return FromModels(rows), nil
}

// GetProduct returns a single listing. Visible to every role.
func (s *service) GetProduct(ctx context.Context, actor enums.UserRole, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

// CreateProduct inserts a listing. Admin only. Lookup rows are created on
// first use so the caller never has to pre-register names.
func (s *service) CreateProduct(ctx context.Context, actor enums.UserRole, input CreateProductInput) (*ProductDTO, error) {
	if actor != enums.UserRoleAdmin {
		return nil, errNoPermission
	}
	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	var created *models.Product
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		lookups := s.lookups.WithTx(tx)

		category, err := lookups.GetOrCreateCategory(ctx, input.Category)
		if err != nil {
			return err
		}
		manufacturer, err := lookups.GetOrCreateManufacturer(ctx, input.Manufacturer)
		if err != nil {
			return err
		}
		supplier, err := lookups.GetOrCreateSupplier(ctx, input.Supplier)
		if err != nil {
			return err
		}

		product := &models.Product{
			Name:            strings.TrimSpace(input.Name),
			CategoryID:      category.ID,
			ManufacturerID:  manufacturer.ID,
			SupplierID:      supplier.ID,
			Description:     input.Description,
			Price:           input.Price,
			Unit:            input.Unit,
			StockQuantity:   input.StockQuantity,
			DiscountPercent: input.DiscountPercent,
			ImagePath:       input.ImagePath,
		}
		if _, err := s.repo.WithTx(tx).CreateProduct(ctx, product); err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, actor, created.ID)
}

// UpdateProduct patches an existing listing. Admin only. Replacing the image
// removes the previous file from the media store best-effort.
func (s *service) UpdateProduct(ctx context.Context, actor enums.UserRole, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if actor != enums.UserRoleAdmin {
		return nil, errNoPermission
	}

	product, err := s.repo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var replacedImage *string
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		lookups := s.lookups.WithTx(tx)

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
			}
			product.Name = name
		}
		if input.Category != nil {
			category, err := lookups.GetOrCreateCategory(ctx, *input.Category)
			if err != nil {
				return err
			}
			product.CategoryID = category.ID
			product.Category = category
		}
		if input.Manufacturer != nil {
			manufacturer, err := lookups.GetOrCreateManufacturer(ctx, *input.Manufacturer)
			if err != nil {
				return err
			}
			product.ManufacturerID = manufacturer.ID
			product.Manufacturer = manufacturer
		}
		if input.Supplier != nil {
			supplier, err := lookups.GetOrCreateSupplier(ctx, *input.Supplier)
			if err != nil {
				return err
			}
			product.SupplierID = supplier.ID
			product.Supplier = supplier
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
			}
			product.Price = *input.Price
		}
		if input.Unit != nil {
			if !input.Unit.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown product unit")
			}
			product.Unit = *input.Unit
		}
		if input.StockQuantity != nil {
			if *input.StockQuantity < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
			}
			product.StockQuantity = *input.StockQuantity
		}
		if input.DiscountPercent != nil {
			if *input.DiscountPercent < 0 || *input.DiscountPercent > 100 {
				return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
			}
			product.DiscountPercent = *input.DiscountPercent
		}
		if input.ImagePath != nil {
			if product.ImagePath != nil && *product.ImagePath != *input.ImagePath {
				replacedImage = product.ImagePath
			}
			product.ImagePath = input.ImagePath
		}

		_, err := s.repo.WithTx(tx).UpdateProduct(ctx, product)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	if replacedImage != nil && s.images != nil {
		_ = s.images.Remove(*replacedImage)
	}

	return s.GetProduct(ctx, actor, productID)
}

// DeleteProduct removes a listing. Admin only. Products referenced by order
// history cannot be deleted; the snapshotted lines still point at them.
func (s *service) DeleteProduct(ctx context.Context, actor enums.UserRole, productID uuid.UUID) error {
	if actor != enums.UserRoleAdmin {
		return errNoPermission
	}

	product, err := s.repo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	referenced, err := s.repo.CountOrderItemsByProduct(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product references")
	}
	if referenced > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "product is referenced by existing orders")
	}

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	if product.ImagePath != nil && s.images != nil {
		_ = s.images.Remove(*product.ImagePath)
	}
	return nil
}

// ListCategories returns all categories. Staff only.
func (s *service) ListCategories(ctx context.Context, actor enums.UserRole) ([]LookupDTO, error) {
	if !actor.IsStaff() {
		return nil, errNoPermission
	}
	rows, err := s.lookups.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]LookupDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, lookupDTO(row.ID, row.Name))
	}
	return dtos, nil
}

// ListManufacturers returns all manufacturers. Staff only.
func (s *service) ListManufacturers(ctx context.Context, actor enums.UserRole) ([]LookupDTO, error) {
	if !actor.IsStaff() {
		return nil, errNoPermission
	}
	rows, err := s.lookups.ListManufacturers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list manufacturers")
	}
	dtos := make([]LookupDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, lookupDTO(row.ID, row.Name))
	}
	return dtos, nil
}

// ListSuppliers returns all suppliers. Staff only.
func (s *service) ListSuppliers(ctx context.Context, actor enums.UserRole) ([]LookupDTO, error) {
	if !actor.IsStaff() {
		return nil, errNoPermission
	}
	rows, err := s.lookups.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	dtos := make([]LookupDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, lookupDTO(row.ID, row.Name))
	}
	return dtos, nil
}

func validateCreateInput(input *CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if strings.TrimSpace(input.Manufacturer) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "manufacturer is required")
	}
	if strings.TrimSpace(input.Supplier) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}
	if input.Unit == "" {
		input.Unit = enums.ProductUnitPiece
	}
	if !input.Unit.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product unit")
	}
	return nil
}
