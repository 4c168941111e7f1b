package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/domain"
)

func testMenu() []domain.MenuNode {
	return domain.BuildMenuTree([]domain.MenuItem{
		{Key: "product", Title: "Sản phẩm", Order: 0},
		{Key: "cakes", Title: `"Bánh Kem"`, Parent: "product", Order: 1},
		{Key: "birthday", Title: "Sinh nhật", Parent: "cakes", Order: 0},
		{Key: "icecream", Title: "Kem", Parent: "product", Order: 0},
		{Key: "about", Title: "Giới thiệu", Order: 1},
	})
}

func boolPtr(b bool) *bool { return &b }

func testCatalog() Catalog {
	menu := testMenu()
	return Catalog{
		Products: []*domain.Product{
			{ID: "p1", Name: "Kem Dâu", Category: "icecream", Price: 45000, Popularity: 3,
				Tags:      []string{"lạnh"},
				CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "p2", Name: "Bánh Sinh Nhật", Category: "birthday", Price: 250000, Popularity: 9, Banner: true,
				CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "p3", Name: "Trà Đào", Category: "drinks", Price: 30000,
				InStock:   boolPtr(false),
				CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "p4", Name: "Bánh Cũ", Category: "cakes", Price: 10000, Active: boolPtr(false)},
		},
		Categories:  []domain.Category{{Key: "icecream", Title: "Kem Tươi"}},
		Descendants: DescendantIndex(menu),
	}
}

func ids(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductCategories(t *testing.T) {
	menu := testMenu()
	cats := ProductCategories(menu, []domain.Category{{Key: "icecream", Title: "Kem Tươi"}})

	// Ordered by the menu tree, branch children inline after their
	// parent; titles prefer the category tab, then the unquoted menu
	// title.
	require.Len(t, cats, 3)
	assert.Equal(t, CategoryOption{Key: "icecream", Title: "Kem Tươi"}, cats[0])
	assert.Equal(t, CategoryOption{Key: "cakes", Title: "Bánh Kem"}, cats[1])
	assert.Equal(t, CategoryOption{Key: "birthday", Title: "Sinh nhật"}, cats[2])
}

func TestProductCategoriesNoBranch(t *testing.T) {
	menu := domain.BuildMenuTree([]domain.MenuItem{{Key: "about", Title: "About"}})
	assert.Nil(t, ProductCategories(menu, nil))
}

func TestInBranch(t *testing.T) {
	desc := DescendantIndex(testMenu())

	assert.True(t, InBranch("drinks", CategoryAll, desc))
	assert.True(t, InBranch("drinks", "", desc))
	assert.True(t, InBranch("cakes", "cakes", desc))
	assert.True(t, InBranch("birthday", "cakes", desc), "descendant matches its branch")
	assert.True(t, InBranch("birthday", "product", desc))
	assert.False(t, InBranch("icecream", "cakes", desc))
}

func TestFilterBranchAndFacets(t *testing.T) {
	c := testCatalog()

	// Branch selection pulls in descendants; the inactive p4 never
	// appears.
	assert.Equal(t, []string{"p2"}, ids(Filter{Category: "cakes"}.Apply(c)))

	// Vacuous facets keep everything active.
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(Filter{}.Apply(c)))

	assert.Equal(t, []string{"p2"}, ids(Filter{FeaturedOnly: true}.Apply(c)))
	assert.Equal(t, []string{"p1", "p2"}, ids(Filter{InStockOnly: true}.Apply(c)))
	assert.Equal(t, []string{"p1"}, ids(Filter{Tags: []string{"lạnh", "nóng"}}.Apply(c)))

	min := 40000.0
	assert.Equal(t, []string{"p1", "p2"}, ids(Filter{MinPrice: &min}.Apply(c)))
}

func TestFilterQueryFolds(t *testing.T) {
	c := testCatalog()

	// Accent-insensitive substring on name, tags and category title.
	assert.Equal(t, []string{"p1"}, ids(Filter{Query: "dau"}.Apply(c)))
	assert.Equal(t, []string{"p1"}, ids(Filter{Query: "lanh"}.Apply(c)))
	assert.Equal(t, []string{"p1"}, ids(Filter{Query: "kem tuoi"}.Apply(c)))
	assert.Empty(t, ids(Filter{Query: "pizza"}.Apply(c)))
}

func TestFilterSorts(t *testing.T) {
	c := testCatalog()

	assert.Equal(t, []string{"p3", "p1", "p2"}, ids(Filter{Sort: SortPriceAsc}.Apply(c)))
	assert.Equal(t, []string{"p2", "p1", "p3"}, ids(Filter{Sort: SortPriceDesc}.Apply(c)))
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(Filter{Sort: SortNewest}.Apply(c)))
	assert.Equal(t, []string{"p2", "p1", "p3"}, ids(Filter{Sort: SortPopular}.Apply(c)))
}

func TestNavigationQueryTransitions(t *testing.T) {
	n := NewNavigation()
	assert.Equal(t, ViewHome, n.View)

	n = n.WithQuery("kem")
	assert.Equal(t, ViewSearch, n.View)

	// Picking a category while searching stays in search.
	n = n.WithCategory("cakes")
	assert.Equal(t, ViewSearch, n.View)
	assert.Equal(t, "cakes", n.Category)

	// Clearing the query returns to the active category.
	n = n.WithQuery("")
	assert.Equal(t, "cakes", n.View)

	// Without a category filter, clearing drops back home.
	n = NewNavigation().WithQuery("kem").WithQuery("")
	assert.Equal(t, ViewHome, n.View)
}

func TestNavigationAdminIgnoresQuery(t *testing.T) {
	n := NewNavigation().WithAdmin()
	n = n.WithQuery("kem")
	assert.Equal(t, ViewAdmin, n.View, "typing in admin does not leave admin")
}

func TestNavigationCategoryAndPage(t *testing.T) {
	n := NewNavigation().WithCategory("cakes")
	assert.Equal(t, "cakes", n.View)

	n = n.WithCategory("")
	assert.Equal(t, ViewHome, n.View)
	assert.Equal(t, CategoryAll, n.Category)

	n = n.WithQuery("kem").WithPage("about")
	assert.Equal(t, "about", n.View)
	assert.Empty(t, n.Query)
}

func TestSuggest(t *testing.T) {
	c := testCatalog()
	cats := ProductCategories(testMenu(), c.Categories)
	tags := []domain.Tag{{ID: "lanh", Label: "Lạnh"}}

	got := Suggest("kem", cats, c.Products, tags)
	require.Len(t, got, 3)
	// Categories come first.
	assert.Equal(t, "category", got[0].Kind)
	assert.Equal(t, "icecream", got[0].Key)
	assert.Equal(t, "category", got[1].Kind)
	assert.Equal(t, "cakes", got[1].Key)
	assert.Equal(t, Suggestion{Kind: "product", Key: "p1", Label: "Kem Dâu"}, got[2])

	assert.Empty(t, Suggest("  ", cats, c.Products, tags))
}

func TestSuggestCaps(t *testing.T) {
	products := make([]*domain.Product, 0, 8)
	for i := 0; i < 8; i++ {
		products = append(products, &domain.Product{ID: string(rune('a' + i)), Name: "Kem"})
	}
	cats := make([]CategoryOption, 0, 7)
	for i := 0; i < 7; i++ {
		cats = append(cats, CategoryOption{Key: string(rune('a' + i)), Title: "Kem"})
	}
	tags := []domain.Tag{{ID: "t1", Label: "kem"}, {ID: "t2", Label: "kem tươi"}}

	got := Suggest("kem", cats, products, tags)
	assert.Len(t, got, 10, "five per kind, ten overall")
	assert.Equal(t, "category", got[0].Kind)
	assert.Equal(t, "product", got[5].Kind)
}
