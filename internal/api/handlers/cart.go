package handlers

import (
	"errors"
	"net/http"

	"github.com/gostorefront/cart-backend/internal/api/dto"
	"github.com/gostorefront/cart-backend/internal/application/service"
	"github.com/gostorefront/cart-backend/internal/domain/cart"
	"github.com/gostorefront/cart-backend/internal/domain/checkout"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	Base
	svc *service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// Get handles GET /api/cart - returns the current cart, freshly loaded.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Get()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.NewCartResponse(state))
}

// AddItem handles POST /api/cart/items - adds a product to the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddItemRequest
	if !h.DecodeBody(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("productId is required"))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	state, err := h.svc.AddProduct(req.ProductID, req.Quantity, req.SelectedVariation)
	h.writeCartResult(w, http.StatusCreated, state, err)
}

// UpdateQuantity handles PUT /api/cart/items - sets an absolute quantity.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateQuantityRequest
	if !h.DecodeBody(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("productId is required"))
		return
	}

	state, err := h.svc.UpdateQuantity(req.ProductID, req.Quantity, req.SelectedVariation)
	h.writeCartResult(w, http.StatusOK, state, err)
}

// RemoveItem handles DELETE /api/cart/items - removes a line item.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveItemRequest
	if !h.DecodeBody(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("productId is required"))
		return
	}

	state, err := h.svc.Remove(req.ProductID, req.SelectedVariation)
	h.writeCartResult(w, http.StatusOK, state, err)
}

// Clear handles DELETE /api/cart - empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Clear()
	h.writeCartResult(w, http.StatusOK, state, err)
}

// CheckoutURL handles GET /api/cart/checkout-url - builds the Amazon
// hand-off URL. The cart is left untouched.
func (h *CartHandler) CheckoutURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.CheckoutURL()
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			h.WriteError(w, http.StatusConflict, dto.CartEmptyError())
		case errors.Is(err, checkout.ErrNoASINs):
			h.WriteError(w, http.StatusConflict, dto.NewAPIError(dto.ErrCodeCartEmpty, "no items can be handed off"))
		default:
			h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.CheckoutURLResponse{URL: url})
}

// writeCartResult maps a mutation outcome onto the response. A save
// failure is deliberately not a 5xx: the mutation result is returned with
// a warning so the UI can show the user what they did alongside a "could
// not save" notice.
func (h *CartHandler) writeCartResult(w http.ResponseWriter, okStatus int, state cart.State, err error) {
	switch {
	case err == nil:
		h.WriteJSON(w, okStatus, dto.NewCartResponse(state))
	case errors.Is(err, service.ErrCartNotSaved):
		response := dto.NewCartResponse(state)
		response.Warning = "could not save your cart"
		h.WriteJSON(w, okStatus, response)
	case errors.Is(err, service.ErrProductNotFound):
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("product"))
	case errors.Is(err, service.ErrInvalidVariation):
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("selected variation is not offered for this product"))
	default:
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
	}
}
