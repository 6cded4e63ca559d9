package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// ProductDTO is the transport shape for a catalog listing.
type ProductDTO struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	Manufacturer    string            `json:"manufacturer"`
	Supplier        string            `json:"supplier"`
	Description     string            `json:"description"`
	Price           decimal.Decimal   `json:"price"`
	Unit            enums.ProductUnit `json:"unit"`
	StockQuantity   int               `json:"stock_quantity"`
	DiscountPercent int               `json:"discount_percent"`
	FinalPrice      decimal.Decimal   `json:"final_price"`
	OutOfStock      bool              `json:"out_of_stock"`
	ImagePath       *string           `json:"image_path,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// LookupDTO is the transport shape for categories, manufacturers, and suppliers.
type LookupDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateProductInput holds the validated payload to create a product. Lookup
// entities are referenced by name and created on first use.
type CreateProductInput struct {
	Name            string
	Category        string
	Manufacturer    string
	Supplier        string
	Description     string
	Price           decimal.Decimal
	Unit            enums.ProductUnit
	StockQuantity   int
	DiscountPercent int
	ImagePath       *string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name            *string
	Category        *string
	Manufacturer    *string
	Supplier        *string
	Description     *string
	Price           *decimal.Decimal
	Unit            *enums.ProductUnit
	StockQuantity   *int
	DiscountPercent *int
	ImagePath       *string
}

// FromModel converts a product row with preloaded lookups into a DTO.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	dto := &ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Unit:            p.Unit,
		StockQuantity:   p.StockQuantity,
		DiscountPercent: p.DiscountPercent,
		FinalPrice:      p.FinalPrice(),
		OutOfStock:      p.IsOutOfStock(),
		ImagePath:       p.ImagePath,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Category != nil {
		dto.Category = p.Category.Name
	}
	if p.Manufacturer != nil {
		dto.Manufacturer = p.Manufacturer.Name
	}
	if p.Supplier != nil {
		dto.Supplier = p.Supplier.Name
	}
	return dto
}

// FromModels converts a slice of product rows.
func FromModels(rows []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}

func lookupDTO(id uuid.UUID, name string) LookupDTO {
	return LookupDTO{ID: id, Name: name}
}
