package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// Product represents a catalog listing. The lookup foreign keys are RESTRICT:
// a referenced category/manufacturer/supplier row cannot be deleted.
type Product struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string            `gorm:"column:name;not null"`
	CategoryID      uuid.UUID         `gorm:"column:category_id;type:uuid;not null"`
	Category        *Category         `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	ManufacturerID  uuid.UUID         `gorm:"column:manufacturer_id;type:uuid;not null"`
	Manufacturer    *Manufacturer     `gorm:"foreignKey:ManufacturerID;constraint:OnDelete:RESTRICT"`
	SupplierID      uuid.UUID         `gorm:"column:supplier_id;type:uuid;not null"`
	Supplier        *Supplier         `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Description     string            `gorm:"column:description;not null;default:''"`
	Price           decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	Unit            enums.ProductUnit `gorm:"column:unit;not null;default:piece"`
	StockQuantity   int               `gorm:"column:stock_quantity;not null;default:0"`
	DiscountPercent int               `gorm:"column:discount_percent;not null;default:0"`
	ImagePath       *string           `gorm:"column:image_path"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// HasDiscount reports whether a discount applies to the listing.
func (p *Product) HasDiscount() bool {
	return p.DiscountPercent > 0
}

// FinalPrice returns price*(100-discount)/100, or the plain price when no
// discount is set.
func (p *Product) FinalPrice() decimal.Decimal {
	if !p.HasDiscount() {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.DiscountPercent))
	return p.Price.Mul(factor).Div(decimal.NewFromInt(100))
}

// IsOutOfStock reports whether nothing is left on the shelf.
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}
