package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/errors"
	"github.com/storefrontapp/storefront-server/internal/search"
	"github.com/storefrontapp/storefront-server/internal/store"
)

func TestSaveProductCreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	actor := ownerClaims()

	p, err := f.admin.SaveProduct(ctx, actor, &domain.Product{Name: "Kem Dâu", Category: "icecream", Price: 45000})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID, "missing ID is generated")

	p.Price = 50000
	_, err = f.admin.SaveProduct(ctx, actor, p)
	require.NoError(t, err)

	got, err := f.catalog.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, got.Price)

	// Both writes rebuilt the index.
	hits, _, err := f.catalog.Search(ctx, search.Params{Query: "kem"})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	// And both are audited, newest first.
	entries, err := f.admin.Audit(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "products.update", entries[0].Event)
	assert.Equal(t, "products.create", entries[1].Event)
	assert.Equal(t, "owner", entries[0].Actor)
}

func TestSaveProductRequiresName(t *testing.T) {
	f := newFixture(t)
	_, err := f.admin.SaveProduct(testContext(), ownerClaims(), &domain.Product{})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	actor := ownerClaims()

	p, err := f.admin.SaveProduct(ctx, actor, &domain.Product{Name: "Kem Dâu"})
	require.NoError(t, err)

	require.NoError(t, f.admin.DeleteProduct(ctx, actor, p.ID))
	_, err = f.catalog.Product(ctx, p.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	assert.ErrorIs(t, f.admin.DeleteProduct(ctx, actor, p.ID), errors.ErrNotFound)

	hits, _, err := f.catalog.Search(ctx, search.Params{Query: "kem"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTypeChangePrunesSizePrices(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	actor := ownerClaims()

	require.NoError(t, f.admin.SaveType(ctx, actor, domain.SizeType{
		ID: "round", Sizes: []domain.SizeOption{{Key: "16"}, {Key: "20"}},
	}))
	require.NoError(t, f.admin.SaveType(ctx, actor, domain.SizeType{
		ID: "sheet", Sizes: []domain.SizeOption{{Key: "a4"}},
	}))

	p, err := f.admin.SaveProduct(ctx, actor, &domain.Product{
		Name: "Bánh Kem", TypeID: "round",
		PriceBySize: map[string]float64{"16": 90000, "20": 120000},
	})
	require.NoError(t, err)

	// Switching to the sheet type drops the round sizes' prices.
	p.TypeID = "sheet"
	p.PriceBySize["a4"] = 150000
	updated, err := f.admin.SaveProduct(ctx, actor, p)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a4": 150000}, updated.PriceBySize)

	// The pruning left its own audit trail.
	entries, err := f.admin.Audit(ctx, 10)
	require.NoError(t, err)
	events := make([]string, 0, len(entries))
	for _, e := range entries {
		events = append(events, e.Event)
	}
	assert.Contains(t, events, "products.prune_sizes")
}

func TestCategoryAndPageCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	actor := ownerClaims()

	require.NoError(t, f.admin.SaveCategory(ctx, actor, domain.Category{Key: "cakes"}))
	cats, _, err := store.Get[domain.Category](ctx, f.store, store.CollectionCategories)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "cakes", cats[0].Title, "blank title falls back to the key")

	require.NoError(t, f.admin.SavePage(ctx, actor, domain.Page{Key: "about", Title: "Giới thiệu", Body: "Xin chào"}))
	page, err := f.catalog.Page(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", page.Body)

	require.NoError(t, f.admin.DeletePage(ctx, actor, "about"))
	_, err = f.catalog.Page(ctx, "about")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSaveTagSlugsLabel(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()

	require.NoError(t, f.admin.SaveTag(ctx, ownerClaims(), domain.Tag{Label: "Trà Sữa"}))
	tags, err := f.catalog.Tags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "tra-sua", tags[0].ID)
}

func TestUserManagement(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	actor := ownerClaims()

	owner, err := f.admin.CreateUser(ctx, actor, CreateUserInput{
		Username: "boss", Password: "hunter2", Role: domain.RoleOwner,
	})
	require.NoError(t, err)

	_, err = f.admin.CreateUser(ctx, actor, CreateUserInput{
		Username: "boss", Password: "other", Role: domain.RoleStaff,
	})
	assert.ErrorIs(t, err, errors.ErrConflict)

	staff, err := f.admin.CreateUser(ctx, actor, CreateUserInput{
		Username: "newbie", Password: "hunter2", Role: domain.RoleStaff,
	})
	require.NoError(t, err)

	role := domain.RoleEditor
	updated, err := f.admin.UpdateUser(ctx, actor, staff.ID, UpdateUserInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, updated.Role)

	// The only owner cannot be demoted or deleted.
	demote := domain.RoleViewer
	_, err = f.admin.UpdateUser(ctx, actor, owner.ID, UpdateUserInput{Role: &demote})
	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.ErrorIs(t, f.admin.DeleteUser(ctx, actor, owner.ID), errors.ErrForbidden)

	// Nobody deletes themselves.
	selfActor := ownerClaims()
	selfActor.UserID = staff.ID
	assert.ErrorIs(t, f.admin.DeleteUser(ctx, selfActor, staff.ID), errors.ErrForbidden)

	require.NoError(t, f.admin.DeleteUser(ctx, actor, staff.ID))
	users, err := f.admin.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
