package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

type fakeImageRemover struct {
	removed []string
}

func (f *fakeImageRemover) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	return nil
}

func newTestService(t *testing.T, conn *gorm.DB) (Service, *fakeImageRemover) {
	t.Helper()
	remover := &fakeImageRemover{}
	svc, err := NewService(NewRepository(conn), NewLookupRepository(conn), db.NewFromConn(conn), remover)
	require.NoError(t, err)
	return svc, remover
}

func productCount(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	return count
}

func TestListProductsIgnoresParamsForNonStaff(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	filtered := mustCreateTestProduct(t, conn, "Binder", "3.00", nil)
	mustCreateTestProduct(t, conn, "Archive Box", "6.00", nil)

	params := ListParams{
		SupplierID: &filtered.SupplierID,
		Search:     "binder",
		Ordering:   OrderStockDesc,
	}

	for _, role := range []enums.UserRole{enums.UserRoleGuest, enums.UserRoleClient} {
		rows, err := svc.ListProducts(ctx, role, params)
		require.NoError(t, err)
		require.Len(t, rows, 2, "role %s should see the full default listing", role)
		assert.Equal(t, "Archive Box", rows[0].Name)
		assert.Equal(t, "Binder", rows[1].Name)
	}
}

func TestListProductsHonorsParamsForStaff(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	target := mustCreateTestProduct(t, conn, "Whiteboard Marker", "2.50", nil)
	mustCreateTestProduct(t, conn, "Whiteboard Eraser", "1.75", nil)
	mustCreateTestProduct(t, conn, "Chalk Marker", "2.00", nil)

	rows, err := svc.ListProducts(ctx, enums.UserRoleManager, ListParams{
		SupplierID: &target.SupplierID,
		Search:     "marker",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Whiteboard Marker", rows[0].Name)
}

func TestListProductsExposesComputedFields(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)

	mustCreateTestProduct(t, conn, "Discounted Pen", "10.00", func(p *models.Product) {
		p.DiscountPercent = 25
		p.StockQuantity = 0
	})

	rows, err := svc.ListProducts(context.Background(), enums.UserRoleGuest, DefaultListParams())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].FinalPrice.Equal(decimal.RequireFromString("7.50")))
	assert.True(t, rows[0].OutOfStock)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	input := CreateProductInput{
		Name:         "New Pen",
		Category:     "Pens",
		Manufacturer: "PenCo",
		Supplier:     "Acme",
		Price:        decimal.RequireFromString("1.50"),
	}

	for _, role := range []enums.UserRole{enums.UserRoleGuest, enums.UserRoleClient, enums.UserRoleManager} {
		before := productCount(t, conn)
		_, err := svc.CreateProduct(ctx, role, input)
		require.Error(t, err, "role %s must not create products", role)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
		assert.Equal(t, before, productCount(t, conn), "store must be unchanged after denied create")
	}
}

func TestCreateProductAsAdminReusesLookups(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, enums.UserRoleAdmin, CreateProductInput{
		Name:         "Gel Pen",
		Category:     "Pens",
		Manufacturer: "PenCo",
		Supplier:     "Acme",
		Price:        decimal.RequireFromString("1.50"),
		Unit:         enums.ProductUnitPiece,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pens", first.Category)

	_, err = svc.CreateProduct(ctx, enums.UserRoleAdmin, CreateProductInput{
		Name:         "Fountain Pen",
		Category:     "Pens",
		Manufacturer: "PenCo",
		Supplier:     "Acme",
		Price:        decimal.RequireFromString("12.00"),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.Category{}).Where("name = ?", "Pens").Count(&count).Error)
	assert.EqualValues(t, 1, count, "second create must reuse the existing category")
}

func TestCreateProductValidation(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{Category: "c", Manufacturer: "m", Supplier: "s", Price: decimal.RequireFromString("1.00")}},
		{"negative price", CreateProductInput{Name: "x", Category: "c", Manufacturer: "m", Supplier: "s", Price: decimal.RequireFromString("-1.00")}},
		{"discount above 100", CreateProductInput{Name: "x", Category: "c", Manufacturer: "m", Supplier: "s", Price: decimal.RequireFromString("1.00"), DiscountPercent: 101}},
		{"negative stock", CreateProductInput{Name: "x", Category: "c", Manufacturer: "m", Supplier: "s", Price: decimal.RequireFromString("1.00"), StockQuantity: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, enums.UserRoleAdmin, tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestUpdateProductRequiresAdmin(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)

	product := mustCreateTestProduct(t, conn, "Locked", "5.00", nil)

	newPrice := decimal.RequireFromString("9.99")
	_, err := svc.UpdateProduct(context.Background(), enums.UserRoleManager, product.ID, UpdateProductInput{Price: &newPrice})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", product.ID).Error)
	assert.True(t, reloaded.Price.Equal(decimal.RequireFromString("5.00")))
}

func TestUpdateProductReplacesImageAndCleansUp(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, remover := newTestService(t, conn)
	ctx := context.Background()

	oldPath := "products/old.png"
	product := mustCreateTestProduct(t, conn, "Pictured", "5.00", func(p *models.Product) {
		p.ImagePath = &oldPath
	})

	newPath := "products/new.png"
	updated, err := svc.UpdateProduct(ctx, enums.UserRoleAdmin, product.ID, UpdateProductInput{ImagePath: &newPath})
	require.NoError(t, err)
	require.NotNil(t, updated.ImagePath)
	assert.Equal(t, newPath, *updated.ImagePath)
	assert.Equal(t, []string{oldPath}, remover.removed)
}

func TestDeleteProductBlockedWhenOrdered(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	product := mustCreateTestProduct(t, conn, "Ordered Once", "4.00", nil)
	mustCreateOrderWithItem(t, conn, product, 1)

	err := svc.DeleteProduct(ctx, enums.UserRoleAdmin, product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteProductRemovesRowAndImage(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, remover := newTestService(t, conn)
	ctx := context.Background()

	imagePath := "products/gone.png"
	product := mustCreateTestProduct(t, conn, "Deletable", "4.00", func(p *models.Product) {
		p.ImagePath = &imagePath
	})

	require.NoError(t, svc.DeleteProduct(ctx, enums.UserRoleAdmin, product.ID))

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Equal(t, []string{imagePath}, remover.removed)
}

func TestDeleteProductRequiresAdmin(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)

	product := mustCreateTestProduct(t, conn, "Sticky", "4.00", nil)

	err := svc.DeleteProduct(context.Background(), enums.UserRoleManager, product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestLookupListingsAreStaffOnly(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	mustCreateLookups(t, conn)

	_, err := svc.ListSuppliers(ctx, enums.UserRoleClient)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	suppliers, err := svc.ListSuppliers(ctx, enums.UserRoleManager)
	require.NoError(t, err)
	assert.Len(t, suppliers, 1)

	categories, err := svc.ListCategories(ctx, enums.UserRoleAdmin)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	manufacturers, err := svc.ListManufacturers(ctx, enums.UserRoleManager)
	require.NoError(t, err)
	assert.Len(t, manufacturers, 1)
}

func TestGetProductNotFound(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newTestService(t, conn)

	product := mustCreateTestProduct(t, conn, "Visible", "2.00", nil)
	require.NoError(t, conn.Delete(&models.Product{}, "id = ?", product.ID).Error)

	_, err := svc.GetProduct(context.Background(), enums.UserRoleGuest, product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
