// Package main provides a tool to seed the catalog cache with a small
// starter dataset.
//
// Useful for local development without a spreadsheet: it writes a
// navigation tree, categories, products, tags, size types and pages
// directly into the badger cache at the configured data path.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/logger"
	"github.com/storefrontapp/storefront-server/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	cachePath := filepath.Join(cfg.Data.BasePath, "cache")
	st, err := store.Open(cachePath, log.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	menu := []domain.MenuItem{
		{Key: "product", Title: "Sản phẩm", Order: 1},
		{Key: "cakes", Title: "Bánh kem", Parent: "product", Order: 1},
		{Key: "icecream", Title: "Kem", Parent: "product", Order: 2},
		{Key: "drinks", Title: "Đồ uống", Parent: "product", Order: 3},
		{Key: "about", Title: "Giới thiệu", Order: 2},
	}
	categories := []domain.Category{
		{Key: "cakes", Title: "Bánh kem"},
		{Key: "icecream", Title: "Kem"},
		{Key: "drinks", Title: "Đồ uống"},
	}
	types := []domain.SizeType{
		{
			ID:   "round",
			Name: "Bánh tròn",
			Sizes: []domain.SizeOption{
				{Key: "16", Label: "16 cm"},
				{Key: "20", Label: "20 cm"},
				{Key: "24", Label: "24 cm"},
			},
			Order: 1,
		},
	}
	tags := []domain.Tag{
		{ID: "birthday", Label: "Sinh nhật"},
		{ID: "bestseller", Label: "Bán chạy"},
	}
	now := time.Now().UTC()
	products := []domain.Product{
		{
			ID:          "seed-cake-1",
			Name:        "Bánh Kem Dâu",
			Category:    "cakes",
			TypeID:      "round",
			Price:       250000,
			PriceBySize: map[string]float64{"16": 250000, "20": 320000, "24": 420000},
			Tags:        []string{"birthday", "bestseller"},
			Description: "Bánh kem tươi với dâu tây.",
			Banner:      true,
			Popularity:  10,
			CreatedAt:   now,
		},
		{
			ID:         "seed-ice-1",
			Name:       "Kem Vani",
			Category:   "icecream",
			Price:      45000,
			Tags:       []string{"bestseller"},
			Popularity: 8,
			CreatedAt:  now,
		},
		{
			ID:        "seed-drink-1",
			Name:      "Trà Đào",
			Category:  "drinks",
			Price:     35000,
			CreatedAt: now,
		},
	}
	pages := []domain.Page{
		{Key: "about", Title: "Giới thiệu", Body: "Cửa hàng bánh kem và đồ uống."},
	}

	type batch struct {
		collection store.Collection
		write      func() error
	}
	batches := []batch{
		{store.CollectionMenu, func() error {
			_, err := store.Replace(ctx, st, store.CollectionMenu, menu)
			return err
		}},
		{store.CollectionCategories, func() error {
			_, err := store.Replace(ctx, st, store.CollectionCategories, categories)
			return err
		}},
		{store.CollectionTypes, func() error {
			_, err := store.Replace(ctx, st, store.CollectionTypes, types)
			return err
		}},
		{store.CollectionTags, func() error {
			_, err := store.Replace(ctx, st, store.CollectionTags, tags)
			return err
		}},
		{store.CollectionProducts, func() error {
			_, err := store.Replace(ctx, st, store.CollectionProducts, products)
			return err
		}},
		{store.CollectionPages, func() error {
			_, err := store.Replace(ctx, st, store.CollectionPages, pages)
			return err
		}},
	}

	for _, b := range batches {
		if err := b.write(); err != nil {
			return fmt.Errorf("seed %s: %w", b.collection, err)
		}
		log.Info("seeded collection", "collection", b.collection)
	}

	log.Info("seed complete", "path", cachePath)
	return nil
}
