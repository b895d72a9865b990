package dto

import (
	"github.com/gostorefront/cart-backend/internal/adapters/catalog"
	"github.com/gostorefront/cart-backend/internal/domain/cart"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewHealthResponse creates a healthy health response.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:  "ok",
		Service: "cart-backend",
	}
}

// LineItemResponse mirrors the persisted line item layout.
type LineItemResponse struct {
	ProductID         int64             `json:"productId"`
	Slug              string            `json:"slug"`
	Title             string            `json:"title"`
	Price             float64           `json:"price"`
	CompareAtPrice    *float64          `json:"compareAtPrice,omitempty"`
	ImagePath         string            `json:"imagePath"`
	AmazonURL         string            `json:"amazonUrl"`
	SelectedVariation map[string]string `json:"selectedVariation,omitempty"`
	Quantity          int               `json:"quantity"`
	LineTotal         float64           `json:"lineTotal"`
}

// CartResponse is the cart as rendered to API consumers. Warning is set
// when a mutation succeeded in memory but could not be persisted.
type CartResponse struct {
	Items         []LineItemResponse `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	TotalQuantity int                `json:"totalQuantity"`
	Warning       string             `json:"warning,omitempty"`
}

// NewCartResponse maps a cart state into its response form.
func NewCartResponse(state cart.State) CartResponse {
	items := make([]LineItemResponse, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, LineItemResponse{
			ProductID:         item.ProductID,
			Slug:              item.Slug,
			Title:             item.Title,
			Price:             item.Price,
			CompareAtPrice:    item.CompareAtPrice,
			ImagePath:         item.ImagePath,
			AmazonURL:         item.AmazonURL,
			SelectedVariation: item.SelectedVariation,
			Quantity:          item.Quantity,
			LineTotal:         item.LineTotal(),
		})
	}

	return CartResponse{
		Items:         items,
		Subtotal:      state.Subtotal,
		TotalQuantity: state.TotalQuantity(),
	}
}

// BadgeResponse is the header-badge read model: counts and subtotal with
// the display clamp already applied.
type BadgeResponse struct {
	ItemCount    int     `json:"itemCount"`
	Quantity     int     `json:"quantity"`
	DisplayCount string  `json:"displayCount"`
	Subtotal     float64 `json:"subtotal"`
}

// CheckoutURLResponse carries the Amazon hand-off URL.
type CheckoutURLResponse struct {
	URL string `json:"url"`
}

// ProductResponse is one catalog product.
type ProductResponse struct {
	ID             int64               `json:"id"`
	Slug           string              `json:"slug"`
	Title          string              `json:"title"`
	Price          float64             `json:"price"`
	CompareAtPrice *float64            `json:"compareAtPrice,omitempty"`
	ImagePath      string              `json:"imagePath"`
	AmazonURL      string              `json:"amazonUrl"`
	Categories     []string            `json:"categories,omitempty"`
	Variations     map[string][]string `json:"variations,omitempty"`
}

// NewProductResponse maps a catalog product into its response form.
func NewProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Slug:           p.Slug,
		Title:          p.Title,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		ImagePath:      p.ImagePath,
		AmazonURL:      p.AmazonURL,
		Categories:     p.Categories,
		Variations:     p.Variations,
	}
}

// ProductListResponse is one page of catalog products.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	TotalCount int               `json:"total_count"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// CategoryResponse is one browsing category.
type CategoryResponse struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"imagePath,omitempty"`
}

// CategoryListResponse lists all browsing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Count      int                `json:"count"`
}
