package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gostorefront/cart-backend/internal/adapters/catalog"
	"github.com/gostorefront/cart-backend/internal/api/dto"
)

// CatalogHandler handles catalog browsing requests.
type CatalogHandler struct {
	Base
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListProducts handles GET /api/catalog/products with optional category,
// q, limit, and offset query parameters.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result := h.catalog.List(catalog.ListFilters{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Limit:    ParseIntParam(r, "limit", 0),
		Offset:   ParseIntParam(r, "offset", 0),
	})

	response := dto.ProductListResponse{
		Products:   make([]dto.ProductResponse, 0, len(result.Products)),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, p := range result.Products {
		response.Products = append(response.Products, dto.NewProductResponse(p))
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// GetProduct handles GET /api/catalog/products/{id}. The path segment is
// a numeric product ID or, failing that, a product slug.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	var (
		product catalog.Product
		found   bool
	)
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		product, found = h.catalog.Get(id)
	} else {
		product, found = h.catalog.GetBySlug(key)
	}

	if !found {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("product"))
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewProductResponse(product))
}

// ListCategories handles GET /api/catalog/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories()

	response := dto.CategoryListResponse{
		Categories: make([]dto.CategoryResponse, 0, len(categories)),
		Count:      len(categories),
	}
	for _, c := range categories {
		response.Categories = append(response.Categories, dto.CategoryResponse{
			Slug:        c.Slug,
			Title:       c.Title,
			Description: c.Description,
			ImagePath:   c.ImagePath,
		})
	}

	h.WriteJSON(w, http.StatusOK, response)
}
