package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ordering selects the listing sort order. Staff may sort by stock quantity;
// everything else keeps the default name-ascending order.
type Ordering string

const (
	OrderDefault   Ordering = ""
	OrderStockAsc  Ordering = "stock_asc"
	OrderStockDesc Ordering = "stock_desc"
)

// ListParams carries the staff-only listing controls. Zero value means the
// default listing: every product ordered by name ascending.
type ListParams struct {
	SupplierID *uuid.UUID
	Search     string
	Ordering   Ordering
}

// DefaultListParams returns the listing every non-staff actor receives.
func DefaultListParams() ListParams {
	return ListParams{}
}

// ParseOrdering maps raw query input onto an ordering selector. Unknown
// values keep the default order.
func ParseOrdering(raw string) Ordering {
	switch Ordering(strings.TrimSpace(strings.ToLower(raw))) {
	case OrderStockAsc:
		return OrderStockAsc
	case OrderStockDesc:
		return OrderStockDesc
	}
	return OrderDefault
}

// apply translates the params into query clauses. Filter, search, and
// ordering compose independently: supplier filter first, then the search
// OR-ed across the product and lookup name columns, then the sort.
func (p ListParams) apply(qb *gorm.DB) *gorm.DB {
	qb = qb.
		Select("products.*").
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN manufacturers ON manufacturers.id = products.manufacturer_id").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id")

	if p.SupplierID != nil {
		qb = qb.Where("products.supplier_id = ?", *p.SupplierID)
	}
	if search := strings.TrimSpace(p.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ? OR LOWER(manufacturers.name) LIKE ? OR LOWER(suppliers.name) LIKE ?)",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	switch p.Ordering {
	case OrderStockAsc:
		qb = qb.Order("products.stock_quantity ASC")
	case OrderStockDesc:
		qb = qb.Order("products.stock_quantity DESC")
	default:
		qb = qb.Order("products.name ASC")
	}
	return qb
}
