package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is immutable once items are attached; pricing history lives on the
// items, never on the product rows they point at.
type Order struct {
	ID         uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID   `gorm:"column:customer_id;type:uuid;not null"`
	Customer   *User       `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
}
