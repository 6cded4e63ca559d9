package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// LookupRepository manages the three name-deduplicated lookup entities that
// products reference: categories, manufacturers, and suppliers.
type LookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository builds a lookup repo bound to the provided GORM DB.
func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// WithTx returns a lookup repository bound to the provided transaction.
func (r *LookupRepository) WithTx(tx *gorm.DB) *LookupRepository {
	return &LookupRepository{db: tx}
}

// GetOrCreateCategory finds the category by exact name, inserting it on first
// use. A concurrent insert losing the unique-index race falls back to a fetch.
func (r *LookupRepository) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	var row models.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			var existing models.Category
			if ferr := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &row, nil
}

// GetOrCreateManufacturer behaves like GetOrCreateCategory for manufacturers.
func (r *LookupRepository) GetOrCreateManufacturer(ctx context.Context, name string) (*models.Manufacturer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manufacturer name is required")
	}

	var row models.Manufacturer
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.Manufacturer{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			var existing models.Manufacturer
			if ferr := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &row, nil
}

// GetOrCreateSupplier behaves like GetOrCreateCategory for suppliers.
func (r *LookupRepository) GetOrCreateSupplier(ctx context.Context, name string) (*models.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	var row models.Supplier
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.Supplier{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			var existing models.Supplier
			if ferr := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &row, nil
}

// ListCategories returns all categories ordered by name.
func (r *LookupRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// ListManufacturers returns all manufacturers ordered by name.
func (r *LookupRepository) ListManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	var rows []models.Manufacturer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// ListSuppliers returns all suppliers ordered by name.
func (r *LookupRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var rows []models.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// DeleteCategory removes a category unless any product references it.
func (r *LookupRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category is referenced by existing products")
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// DeleteManufacturer removes a manufacturer unless any product references it.
func (r *LookupRepository) DeleteManufacturer(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("manufacturer_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "manufacturer is referenced by existing products")
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Manufacturer{}).Error
}

// DeleteSupplier removes a supplier unless any product references it.
func (r *LookupRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("supplier_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "supplier is referenced by existing products")
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Supplier{}).Error
}
