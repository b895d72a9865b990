package dto

// AddItemRequest is the body of POST /api/cart/items. Quantity defaults
// to 1 when omitted; quick-add flows may pass more.
type AddItemRequest struct {
	ProductID         int64             `json:"productId"`
	Quantity          int               `json:"quantity"`
	SelectedVariation map[string]string `json:"selectedVariation,omitempty"`
}

// UpdateQuantityRequest is the body of PUT /api/cart/items. Quantity is an
// absolute value; zero or below removes the line item.
type UpdateQuantityRequest struct {
	ProductID         int64             `json:"productId"`
	Quantity          int               `json:"quantity"`
	SelectedVariation map[string]string `json:"selectedVariation,omitempty"`
}

// RemoveItemRequest is the body of DELETE /api/cart/items.
type RemoveItemRequest struct {
	ProductID         int64             `json:"productId"`
	SelectedVariation map[string]string `json:"selectedVariation,omitempty"`
}
