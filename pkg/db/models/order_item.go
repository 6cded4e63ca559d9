package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots price and discount at order time. The product reference
// is RESTRICT so a product present in any order cannot be deleted.
type OrderItem struct {
	ID                     uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID                uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID              uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product                *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity               int             `gorm:"column:quantity;not null"`
	PriceAtOrder           decimal.Decimal `gorm:"column:price_at_order;type:numeric(10,2);not null"`
	DiscountPercentAtOrder int             `gorm:"column:discount_percent_at_order;not null;default:0"`
	CreatedAt              time.Time       `gorm:"column:created_at;autoCreateTime"`
}
