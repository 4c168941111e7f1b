// Package service provides the business logic layer over the cached
// catalog: storefront reads, search, admin mutations and
// authentication.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/errors"
	"github.com/storefrontapp/storefront-server/internal/search"
	"github.com/storefrontapp/storefront-server/internal/store"
	"github.com/storefrontapp/storefront-server/internal/view"
)

// CatalogService serves storefront reads from the cached catalog and
// owns the product search index.
type CatalogService struct {
	store  *store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(st *store.Store, index *search.Index, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: st, index: index, logger: logger}
}

// catalog loads the collections a filtered product listing reads from.
func (s *CatalogService) catalog(ctx context.Context) (view.Catalog, error) {
	products, _, err := store.Get[*domain.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return view.Catalog{}, fmt.Errorf("load products: %w", err)
	}
	categories, _, err := store.Get[domain.Category](ctx, s.store, store.CollectionCategories)
	if err != nil {
		return view.Catalog{}, fmt.Errorf("load categories: %w", err)
	}
	menu, err := s.Menu(ctx)
	if err != nil {
		return view.Catalog{}, err
	}
	return view.Catalog{
		Products:    products,
		Categories:  categories,
		Descendants: view.DescendantIndex(menu),
	}, nil
}

// Products returns the products matching a storefront filter.
func (s *CatalogService) Products(ctx context.Context, filter view.Filter) ([]*domain.Product, error) {
	c, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(c), nil
}

// Product returns one product by ID.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	products, _, err := store.Get[*domain.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFoundf("product %s not found", id)
}

// Categories returns the browsable category options derived from the
// navigation tree.
func (s *CatalogService) Categories(ctx context.Context) ([]view.CategoryOption, error) {
	categories, _, err := store.Get[domain.Category](ctx, s.store, store.CollectionCategories)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	menu, err := s.Menu(ctx)
	if err != nil {
		return nil, err
	}
	return view.ProductCategories(menu, categories), nil
}

// Menu returns the assembled navigation tree.
func (s *CatalogService) Menu(ctx context.Context) ([]domain.MenuNode, error) {
	items, _, err := store.Get[domain.MenuItem](ctx, s.store, store.CollectionMenu)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	return domain.BuildMenuTree(items), nil
}

// Pages returns all static pages.
func (s *CatalogService) Pages(ctx context.Context) ([]domain.Page, error) {
	pages, _, err := store.Get[domain.Page](ctx, s.store, store.CollectionPages)
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	return pages, nil
}

// Page returns one static page by key.
func (s *CatalogService) Page(ctx context.Context, key string) (*domain.Page, error) {
	pages, err := s.Pages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].Key == key {
			return &pages[i], nil
		}
	}
	return nil, errors.NotFoundf("page %s not found", key)
}

// Tags returns all product tags.
func (s *CatalogService) Tags(ctx context.Context) ([]domain.Tag, error) {
	tags, _, err := store.Get[domain.Tag](ctx, s.store, store.CollectionTags)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return tags, nil
}

// Types returns all size types.
func (s *CatalogService) Types(ctx context.Context) ([]domain.SizeType, error) {
	types, _, err := store.Get[domain.SizeType](ctx, s.store, store.CollectionTypes)
	if err != nil {
		return nil, fmt.Errorf("load size types: %w", err)
	}
	return types, nil
}

// Levels returns all price levels.
func (s *CatalogService) Levels(ctx context.Context) ([]domain.PriceLevel, error) {
	levels, _, err := store.Get[domain.PriceLevel](ctx, s.store, store.CollectionLevels)
	if err != nil {
		return nil, fmt.Errorf("load price levels: %w", err)
	}
	return levels, nil
}

// FacebookLinks returns the cached Facebook post links.
func (s *CatalogService) FacebookLinks(ctx context.Context) ([]string, error) {
	links, _, err := store.Get[string](ctx, s.store, store.CollectionFacebook)
	if err != nil {
		return nil, fmt.Errorf("load facebook links: %w", err)
	}
	return links, nil
}

// Search runs a ranked product search and resolves hits back to cached
// products, preserving rank order.
func (s *CatalogService) Search(ctx context.Context, params search.Params) ([]*domain.Product, uint64, error) {
	result, err := s.index.Search(params)
	if err != nil {
		return nil, 0, err
	}

	products, _, err := store.Get[*domain.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return nil, 0, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	matched := make([]*domain.Product, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if p, ok := byID[hit.ID]; ok {
			matched = append(matched, p)
		}
	}
	return matched, result.Total, nil
}

// Suggest returns type-ahead suggestions across categories, products
// and tags.
func (s *CatalogService) Suggest(ctx context.Context, query string) ([]view.Suggestion, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	products, _, err := store.Get[*domain.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	tags, err := s.Tags(ctx)
	if err != nil {
		return nil, err
	}
	return view.Suggest(query, categories, products, tags), nil
}

// RebuildFromStore reindexes every cached product. Called after a sync
// pass or an admin write changed the product collection.
func (s *CatalogService) RebuildFromStore(ctx context.Context) error {
	products, _, err := store.Get[*domain.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	categories, _, err := store.Get[domain.Category](ctx, s.store, store.CollectionCategories)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	titles := make(map[string]string, len(categories))
	for _, c := range categories {
		titles[c.Key] = c.Title
	}

	docs := make([]*search.Document, 0, len(products))
	for _, p := range products {
		docs = append(docs, search.FromProduct(p, titles[p.Category]))
	}
	if err := s.index.ReplaceAll(docs); err != nil {
		return err
	}
	s.logger.Debug("search index rebuilt", "documents", len(docs))
	return nil
}
