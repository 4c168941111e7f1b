package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/search"
	"github.com/storefrontapp/storefront-server/internal/store"
	"github.com/storefrontapp/storefront-server/internal/view"
)

func seedCatalog(t *testing.T, f *fixture) {
	t.Helper()
	ctx := testContext()

	_, err := store.Replace(ctx, f.store, store.CollectionMenu, []domain.MenuItem{
		{Key: "product", Title: "Sản phẩm"},
		{Key: "cakes", Title: "Bánh", Parent: "product", Order: 1},
		{Key: "icecream", Title: "Kem", Parent: "product", Order: 0},
	})
	require.NoError(t, err)

	_, err = store.Replace(ctx, f.store, store.CollectionCategories, []domain.Category{
		{Key: "icecream", Title: "Kem Tươi"},
	})
	require.NoError(t, err)

	_, err = store.Replace(ctx, f.store, store.CollectionProducts, []domain.Product{
		{ID: "p1", Name: "Kem Dâu", Category: "icecream", Price: 45000,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p2", Name: "Bánh Kem", Category: "cakes", Price: 250000,
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	_, err = store.Replace(ctx, f.store, store.CollectionTags, []domain.Tag{
		{ID: "lanh", Label: "Lạnh"},
	})
	require.NoError(t, err)

	require.NoError(t, f.catalog.RebuildFromStore(ctx))
}

func TestCatalogProductsAndFilter(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := testContext()

	all, err := f.catalog.Products(ctx, view.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cakes, err := f.catalog.Products(ctx, view.Filter{Category: "cakes"})
	require.NoError(t, err)
	require.Len(t, cakes, 1)
	assert.Equal(t, "p2", cakes[0].ID)

	_, err = f.catalog.Product(ctx, "nope")
	assert.Error(t, err)
}

func TestCatalogCategoriesFromMenu(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)

	cats, err := f.catalog.Categories(testContext())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, view.CategoryOption{Key: "icecream", Title: "Kem Tươi"}, cats[0])
	assert.Equal(t, view.CategoryOption{Key: "cakes", Title: "Bánh"}, cats[1])
}

func TestCatalogSearchResolvesProducts(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)

	products, total, err := f.catalog.Search(testContext(), search.Params{Query: "banh"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)
}

func TestCatalogSuggest(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)

	got, err := f.catalog.Suggest(testContext(), "kem")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "category", got[0].Kind)
}
