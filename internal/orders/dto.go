package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// OrderDTO is the transport shape for an order with its snapshot lines.
type OrderDTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Items         []OrderItemDTO  `json:"items"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItemDTO carries the price and discount captured when the order was
// placed. Later product edits never change these numbers.
type OrderItemDTO struct {
	ID                     uuid.UUID       `json:"id"`
	ProductID              uuid.UUID       `json:"product_id"`
	ProductName            string          `json:"product_name,omitempty"`
	Quantity               int             `json:"quantity"`
	PriceAtOrder           decimal.Decimal `json:"price_at_order"`
	DiscountPercentAtOrder int             `json:"discount_percent_at_order"`
	LineTotal              decimal.Decimal `json:"line_total"`
}

// LineTotal computes quantity * price_at_order * (100-discount)/100 from the
// snapshot values on the item.
func LineTotal(item *models.OrderItem) decimal.Decimal {
	unit := item.PriceAtOrder
	if item.DiscountPercentAtOrder > 0 {
		factor := decimal.NewFromInt(int64(100 - item.DiscountPercentAtOrder))
		unit = unit.Mul(factor).Div(decimal.NewFromInt(100))
	}
	return unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// FromModel converts an order row with preloaded customer and items.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	dto := &OrderDTO{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Items:      make([]OrderItemDTO, 0, len(o.Items)),
		Total:      decimal.Zero,
		CreatedAt:  o.CreatedAt,
	}
	if o.Customer != nil {
		dto.CustomerEmail = o.Customer.Email
		if o.Customer.Profile != nil {
			dto.CustomerName = o.Customer.Profile.FullName
		}
	}

	for i := range o.Items {
		item := &o.Items[i]
		lineTotal := LineTotal(item)
		itemDTO := OrderItemDTO{
			ID:                     item.ID,
			ProductID:              item.ProductID,
			Quantity:               item.Quantity,
			PriceAtOrder:           item.PriceAtOrder,
			DiscountPercentAtOrder: item.DiscountPercentAtOrder,
			LineTotal:              lineTotal,
		}
		if item.Product != nil {
			itemDTO.ProductName = item.Product.Name
		}
		dto.Items = append(dto.Items, itemDTO)
		dto.Total = dto.Total.Add(lineTotal)
	}
	return dto
}

// FromModels converts a slice of order rows.
func FromModels(rows []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
