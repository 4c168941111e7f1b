package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// foldedAnalyzer strips diacritics before tokenizing so "kem" and
// "kém" land on the same terms. Product names here are largely
// Vietnamese; stemming analyzers would mangle them.
const foldedAnalyzer = "folded"

// buildIndexMapping creates the Bleve index mapping for product
// documents: folded full-text on name/tags/category title, keyword
// fields for exact filters, numerics for ranges and sorting.
func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(foldedAnalyzer, map[string]any{
		"type":          custom.Name,
		"char_filters":  []string{asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("register folded analyzer: %w", err)
	}
	indexMapping.DefaultAnalyzer = foldedAnalyzer

	docMapping := bleve.NewDocumentMapping()

	// Name - primary search target, boosted at query time.
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = foldedAnalyzer
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Tags - searchable text, folded like names.
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = foldedAnalyzer
	tagsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// Resolved category title - searchable so a category name query
	// surfaces its products.
	categoryTitleFieldMapping := bleve.NewTextFieldMapping()
	categoryTitleFieldMapping.Analyzer = foldedAnalyzer
	categoryTitleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category_title", categoryTitleFieldMapping)

	// Category key - exact filter.
	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// ID - stored, not analyzed.
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Numerics for range filters and sorting.
	priceFieldMapping := bleve.NewNumericFieldMapping()
	priceFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("price", priceFieldMapping)

	popularityFieldMapping := bleve.NewNumericFieldMapping()
	popularityFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("popularity", popularityFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	// Booleans for availability and banner filters.
	bannerFieldMapping := bleve.NewBooleanFieldMapping()
	docMapping.AddFieldMappingsAt("banner", bannerFieldMapping)

	inStockFieldMapping := bleve.NewBooleanFieldMapping()
	docMapping.AddFieldMappingsAt("in_stock", inStockFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping, nil
}
