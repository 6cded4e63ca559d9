package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

func TestGetOrCreateCategoryIsIdempotent(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewLookupRepository(conn)
	ctx := context.Background()

	first, err := repo.GetOrCreateCategory(ctx, "Office Supplies")
	require.NoError(t, err)

	second, err := repo.GetOrCreateCategory(ctx, "Office Supplies")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, conn.Model(&models.Category{}).Where("name = ?", "Office Supplies").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateTrimsNames(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewLookupRepository(conn)
	ctx := context.Background()

	first, err := repo.GetOrCreateSupplier(ctx, "Acme Wholesale")
	require.NoError(t, err)

	second, err := repo.GetOrCreateSupplier(ctx, "  Acme Wholesale  ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateRejectsBlankName(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewLookupRepository(conn)

	_, err := repo.GetOrCreateManufacturer(context.Background(), "   ")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteSupplierBlockedWhenReferenced(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewLookupRepository(conn)
	ctx := context.Background()

	product := mustCreateTestProduct(t, conn, "Anchored Product", "2.00", nil)

	err := repo.DeleteSupplier(ctx, product.SupplierID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.Supplier{}).Where("id = ?", product.SupplierID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCategoryRemovesUnreferencedRow(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewLookupRepository(conn)
	ctx := context.Background()

	category, err := repo.GetOrCreateCategory(ctx, "Ephemeral")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCategory(ctx, category.ID))

	var count int64
	require.NoError(t, conn.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
