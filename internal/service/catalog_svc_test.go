package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/internal/repository/memstore"
)

func setupCatalog(t *testing.T) (*memstore.Store, *CatalogService) {
	t.Helper()
	store := memstore.NewStore()
	return store, NewCatalogService(store.Products(), store.Variations())
}

func TestCreateProductWithVariations(t *testing.T) {
	ctx := context.Background()
	_, svc := setupCatalog(t)

	override := 59.90
	view, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name:     "Lampe Galet",
		Category: "ambiance",
		Price:    49.90,
		Stock:    10,
		Variations: []dto.CreateVariationRequest{
			{VariationValue: "blanc", Stock: 5},
			{VariationValue: "noir", Price: &override, Stock: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, view.IsActive)
	assert.InDelta(t, 49.90, view.Price, 0.001)
	require.Len(t, view.Variations, 2)
	// 未传类型时默认 color
	assert.Equal(t, "color", view.Variations[0].VariationType)
	// 无价格覆盖的变体沿用基础价
	assert.InDelta(t, 49.90, view.Variations[0].Price, 0.001)
	assert.InDelta(t, 59.90, view.Variations[1].Price, 0.001)
}

func TestUpdateProductPartial(t *testing.T) {
	ctx := context.Background()
	_, svc := setupCatalog(t)

	created, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Lampe Galet", Category: "ambiance", Price: 49.90, Stock: 10,
	})
	require.NoError(t, err)

	newPrice := 44.90
	inactive := false
	view, err := svc.UpdateProduct(ctx, created.ID, &dto.UpdateProductRequest{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	// 传了的字段变，没传的不变
	assert.InDelta(t, 44.90, view.Price, 0.001)
	assert.False(t, view.IsActive)
	assert.Equal(t, "Lampe Galet", view.Name)
	assert.Equal(t, "ambiance", view.Category)
	assert.Equal(t, 10, view.Stock)

	_, err = svc.UpdateProduct(ctx, 999, &dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestVariationOwnershipCheck(t *testing.T) {
	ctx := context.Background()
	_, svc := setupCatalog(t)

	p1, _ := svc.CreateProduct(ctx, &dto.CreateProductRequest{Name: "Lampe A", Price: 10})
	p2, _ := svc.CreateProduct(ctx, &dto.CreateProductRequest{Name: "Lampe B", Price: 20})

	v, err := svc.AddVariation(ctx, p1.ID, &dto.CreateVariationRequest{VariationValue: "blanc", Stock: 2})
	require.NoError(t, err)

	// 变体挂在 p1 下，通过 p2 的路径访问必须 404
	_, err = svc.UpdateVariation(ctx, p2.ID, v.ID, &dto.UpdateVariationRequest{})
	assert.ErrorIs(t, err, ErrVariationNotFound)

	err = svc.DeleteVariation(ctx, p2.ID, v.ID)
	assert.ErrorIs(t, err, ErrVariationNotFound)
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	_, svc := setupCatalog(t)

	p, _ := svc.CreateProduct(ctx, &dto.CreateProductRequest{Name: "Lampe", Price: 10, Stock: 5})

	view, err := svc.AdjustProductStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, view.Stock)

	view, err = svc.AdjustProductStock(ctx, p.ID, -8)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Stock)

	_, err = svc.AdjustProductStock(ctx, p.ID, -1)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
}

func TestStorefrontListOnlyActive(t *testing.T) {
	ctx := context.Background()
	_, svc := setupCatalog(t)

	svc.CreateProduct(ctx, &dto.CreateProductRequest{Name: "Visible", Price: 10})
	hidden, _ := svc.CreateProduct(ctx, &dto.CreateProductRequest{Name: "Cachée", Price: 10})
	inactive := false
	svc.UpdateProduct(ctx, hidden.ID, &dto.UpdateProductRequest{IsActive: &inactive})

	list, total, err := svc.ListProducts(ctx, &dto.ListProductsRequest{}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Visible", list[0].Name)

	// 后台能看到全部
	_, total, _ = svc.ListProducts(ctx, &dto.ListProductsRequest{}, true)
	assert.Equal(t, int64(2), total)
}

func TestDeleteProductCascadesVariations(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCatalog(t)

	p, _ := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name:  "Lampe",
		Price: 10,
		Variations: []dto.CreateVariationRequest{
			{VariationValue: "blanc"},
		},
	})

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	variations, _ := store.Variations().GetByProductID(ctx, p.ID)
	assert.Empty(t, variations)

	err := svc.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
