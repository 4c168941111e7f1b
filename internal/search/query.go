package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params describe a product search.
type Params struct {
	Query       string
	Category    string
	Tags        []string
	InStockOnly bool
	BannerOnly  bool
	MinPrice    *float64
	MaxPrice    *float64
	Limit       int
	Offset      int
	SortBy      string // relevance (default), price, -price, newest, popular
}

// Hit is one search result.
type Hit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Result is a page of search hits.
type Result struct {
	Hits  []Hit  `json:"hits"`
	Total uint64 `json:"total"`
}

// Search runs a query against the product index and returns matching
// product IDs in rank order.
func (i *Index) Search(params Params) (*Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	req := bleve.NewSearchRequestOptions(searchQuery, limit, params.Offset, false)
	addSorting(req, params.SortBy)

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	result := &Result{
		Hits:  make([]Hit, 0, len(res.Hits)),
		Total: res.Total,
	}
	for _, hit := range res.Hits {
		result.Hits = append(result.Hits, Hit{ID: hit.ID, Score: hit.Score})
	}
	return result, nil
}

// buildSearchQuery combines the free-text part with term filters. Text
// matches on name are boosted over tag and category-title matches, and a
// fuzzy variant catches one-letter typos at a discount.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)

		nameFuzzy := bleve.NewMatchQuery(params.Query)
		nameFuzzy.SetField("name")
		nameFuzzy.SetFuzziness(1)
		nameFuzzy.SetBoost(0.8)

		namePrefix := bleve.NewPrefixQuery(params.Query)
		namePrefix.SetField("name")
		namePrefix.SetBoost(0.5)

		tagMatch := bleve.NewMatchQuery(params.Query)
		tagMatch.SetField("tags")

		categoryMatch := bleve.NewMatchQuery(params.Query)
		categoryMatch.SetField("category_title")

		queries = append(queries, bleve.NewDisjunctionQuery(
			nameMatch, nameFuzzy, namePrefix, tagMatch, categoryMatch,
		))
	}

	if params.Category != "" {
		tq := bleve.NewTermQuery(params.Category)
		tq.SetField("category")
		queries = append(queries, tq)
	}

	for _, tag := range params.Tags {
		tq := bleve.NewMatchQuery(tag)
		tq.SetField("tags")
		queries = append(queries, tq)
	}

	if params.InStockOnly {
		bq := bleve.NewBoolFieldQuery(true)
		bq.SetField("in_stock")
		queries = append(queries, bq)
	}

	if params.BannerOnly {
		bq := bleve.NewBoolFieldQuery(true)
		bq.SetField("banner")
		queries = append(queries, bq)
	}

	if params.MinPrice != nil || params.MaxPrice != nil {
		rq := bleve.NewNumericRangeQuery(params.MinPrice, params.MaxPrice)
		rq.SetField("price")
		queries = append(queries, rq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

func addSorting(req *bleve.SearchRequest, sortBy string) {
	switch sortBy {
	case "price":
		req.SortBy([]string{"price", "-_score"})
	case "-price":
		req.SortBy([]string{"-price", "-_score"})
	case "newest":
		req.SortBy([]string{"-created_at", "-_score"})
	case "popular":
		req.SortBy([]string{"-popularity", "-_score"})
	default:
		req.SortBy([]string{"-_score"})
	}
}
