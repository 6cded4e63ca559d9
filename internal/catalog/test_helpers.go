package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	manufacturers := `
CREATE TABLE IF NOT EXISTS manufacturers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	suppliers := `
CREATE TABLE IF NOT EXISTS suppliers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL,
  manufacturer_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  unit TEXT NOT NULL DEFAULT 'piece',
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  discount_percent INTEGER NOT NULL DEFAULT 0,
  image_path TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  created_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_at_order NUMERIC NOT NULL,
  discount_percent_at_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	for _, ddl := range []string{categories, manufacturers, suppliers, products, orders, orderItems} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	return conn
}

func mustCreateLookups(t *testing.T, conn *gorm.DB) (*models.Category, *models.Manufacturer, *models.Supplier) {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: fmt.Sprintf("Stationery %s", uuid.NewString())}
	require.NoError(t, conn.Create(category).Error)

	manufacturer := &models.Manufacturer{ID: uuid.New(), Name: fmt.Sprintf("Maker %s", uuid.NewString())}
	require.NoError(t, conn.Create(manufacturer).Error)

	supplier := &models.Supplier{ID: uuid.New(), Name: fmt.Sprintf("Acme Supply %s", uuid.NewString())}
	require.NoError(t, conn.Create(supplier).Error)

	return category, manufacturer, supplier
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, name string, price string, mutate func(*models.Product)) *models.Product {
	t.Helper()

	category, manufacturer, supplier := mustCreateLookups(t, conn)

	product := &models.Product{
		ID:             uuid.New(),
		Name:           name,
		CategoryID:     category.ID,
		ManufacturerID: manufacturer.ID,
		SupplierID:     supplier.ID,
		Price:          decimal.RequireFromString(price),
		Unit:           enums.ProductUnitPiece,
		StockQuantity:  10,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func mustCreateOrderWithItem(t *testing.T, conn *gorm.DB, product *models.Product, quantity int) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Items: []models.OrderItem{
			{
				ID:                     uuid.New(),
				ProductID:              product.ID,
				Quantity:               quantity,
				PriceAtOrder:           product.Price,
				DiscountPercentAtOrder: product.DiscountPercent,
			},
		},
	}
	require.NoError(t, conn.Create(order).Error)
	return order
}
