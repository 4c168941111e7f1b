package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontapp/storefront-server/internal/http/response"
	"github.com/storefrontapp/storefront-server/internal/search"
	"github.com/storefrontapp/storefront-server/internal/view"
)

// handleListProducts returns the filtered, sorted product list.
// Filters come from query parameters: q, category, tags, sizes,
// levels, featured, inStock, minPrice, maxPrice, sort.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := view.Filter{
		Query:        r.URL.Query().Get("q"),
		Category:     r.URL.Query().Get("category"),
		Tags:         queryList(r, "tags"),
		Sizes:        queryList(r, "sizes"),
		Levels:       queryList(r, "levels"),
		FeaturedOnly: queryBool(r, "featured"),
		InStockOnly:  queryBool(r, "inStock"),
		MinPrice:     queryFloat(r, "minPrice"),
		MaxPrice:     queryFloat(r, "maxPrice"),
		Sort:         r.URL.Query().Get("sort"),
	}

	products, err := s.catalog.Products(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, products, s.logger)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, product, s.logger)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, categories, s.logger)
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := s.catalog.Menu(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, menu, s.logger)
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.catalog.Pages(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, pages, s.logger)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.catalog.Page(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, page, s.logger)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.catalog.Tags(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tags, s.logger)
}

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.catalog.Types(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, types, s.logger)
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.catalog.Levels(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, levels, s.logger)
}

func (s *Server) handleListFacebookPosts(w http.ResponseWriter, r *http.Request) {
	links, err := s.catalog.FacebookLinks(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, links, s.logger)
}

// searchResponse is a ranked search result page.
type searchResponse struct {
	Products any    `json:"products"`
	Total    uint64 `json:"total"`
}

// handleSearch runs a ranked full-text search over the product index.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := search.Params{
		Query:       r.URL.Query().Get("q"),
		Category:    r.URL.Query().Get("category"),
		Tags:        queryList(r, "tags"),
		InStockOnly: queryBool(r, "inStock"),
		BannerOnly:  queryBool(r, "featured"),
		MinPrice:    queryFloat(r, "minPrice"),
		MaxPrice:    queryFloat(r, "maxPrice"),
		Limit:       queryInt(r, "limit", 25),
		Offset:      queryInt(r, "offset", 0),
		SortBy:      r.URL.Query().Get("sort"),
	}

	products, total, err := s.catalog.Search(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, searchResponse{Products: products, Total: total}, s.logger)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.catalog.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, suggestions, s.logger)
}
