package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

func TestListProductsDefaultOrderIsNameAscending(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	mustCreateTestProduct(t, conn, "Zebra Notebook", "4.50", nil)
	mustCreateTestProduct(t, conn, "Apple Eraser", "0.99", nil)
	mustCreateTestProduct(t, conn, "Marker Set", "7.25", nil)

	rows, err := repo.ListProducts(context.Background(), DefaultListParams())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Apple Eraser", rows[0].Name)
	assert.Equal(t, "Marker Set", rows[1].Name)
	assert.Equal(t, "Zebra Notebook", rows[2].Name)
}

func TestListProductsCombinesSupplierFilterAndSearch(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	matching := mustCreateTestProduct(t, conn, "Blue Ballpoint Pen", "1.20", nil)
	mustCreateTestProduct(t, conn, "Blue Highlighter", "2.10", nil)
	mustCreateTestProduct(t, conn, "Red Ballpoint Pen", "1.20", nil)

	rows, err := repo.ListProducts(context.Background(), ListParams{
		SupplierID: &matching.SupplierID,
		Search:     "pen",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, matching.ID, rows[0].ID)
}

func TestListProductsSearchIsCaseInsensitive(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	mustCreateTestProduct(t, conn, "STAPLER Heavy Duty", "11.00", nil)
	mustCreateTestProduct(t, conn, "Paper Clips", "0.50", nil)

	rows, err := repo.ListProducts(context.Background(), ListParams{Search: "stapler"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "STAPLER Heavy Duty", rows[0].Name)
}

func TestListProductsStockOrdering(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	mustCreateTestProduct(t, conn, "Low", "1.00", func(p *models.Product) { p.StockQuantity = 2 })
	mustCreateTestProduct(t, conn, "High", "1.00", func(p *models.Product) { p.StockQuantity = 90 })
	mustCreateTestProduct(t, conn, "Mid", "1.00", func(p *models.Product) { p.StockQuantity = 40 })

	rows, err := repo.ListProducts(context.Background(), ListParams{Ordering: OrderStockDesc})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "High", rows[0].Name)
	assert.Equal(t, "Low", rows[2].Name)

	rows, err = repo.ListProducts(context.Background(), ListParams{Ordering: OrderStockAsc})
	require.NoError(t, err)
	assert.Equal(t, "Low", rows[0].Name)
}

func TestListProductsSearchSpansLookupNames(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	category, manufacturer, supplier := mustCreateLookups(t, conn)
	byCategory := &models.Product{
		ID:             uuid.New(),
		Name:           "Plain Widget",
		CategoryID:     category.ID,
		ManufacturerID: manufacturer.ID,
		SupplierID:     supplier.ID,
		Price:          decimal.RequireFromString("1.00"),
	}
	require.NoError(t, conn.Create(byCategory).Error)
	mustCreateTestProduct(t, conn, "Unrelated Widget", "1.00", nil)

	// category names from mustCreateLookups start with "Stationery".
	rows, err := repo.ListProducts(context.Background(), ListParams{Search: "stationery"})
	require.NoError(t, err)
	require.Len(t, rows, 2, "category-name search should match products in that category")

	rows, err = repo.ListProducts(context.Background(), ListParams{Search: manufacturer.Name})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, byCategory.ID, rows[0].ID)
}

func TestFindByIDPreloadsLookups(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	created := mustCreateTestProduct(t, conn, "Glue Stick", "1.80", nil)

	product, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, product.Category)
	require.NotNil(t, product.Manufacturer)
	require.NotNil(t, product.Supplier)
	assert.NotEmpty(t, product.Category.Name)
}

func TestCountOrderItemsByProduct(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	referenced := mustCreateTestProduct(t, conn, "Ordered Pen", "1.00", nil)
	free := mustCreateTestProduct(t, conn, "Untouched Pen", "1.00", nil)

	mustCreateOrderWithItem(t, conn, referenced, 2)
	mustCreateOrderWithItem(t, conn, referenced, 1)

	count, err := repo.CountOrderItemsByProduct(context.Background(), referenced.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountOrderItemsByProduct(context.Background(), free.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestUpdateProductPersistsChanges(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	created := mustCreateTestProduct(t, conn, "Old Name", "3.00", nil)
	created.Name = "New Name"
	created.Price = decimal.RequireFromString("3.50")

	_, err := repo.UpdateProduct(context.Background(), created)
	require.NoError(t, err)

	reloaded, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.Name)
	assert.True(t, reloaded.Price.Equal(decimal.RequireFromString("3.50")))
}

func TestDeleteProductRemovesRow(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	created := mustCreateTestProduct(t, conn, "Disposable", "1.00", nil)
	require.NoError(t, repo.DeleteProduct(context.Background(), created.ID))

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	require.NoError(t, repo.DeleteProduct(context.Background(), uuid.New()))
}
