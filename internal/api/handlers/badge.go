package handlers

import (
	"net/http"

	"github.com/gostorefront/cart-backend/internal/api/dto"
	"github.com/gostorefront/cart-backend/internal/application/views"
)

// BadgeHandler serves the precomputed header-badge read model.
type BadgeHandler struct {
	Base
	badge *views.BadgeView
}

// NewBadgeHandler creates a new badge handler.
func NewBadgeHandler(badge *views.BadgeView) *BadgeHandler {
	return &BadgeHandler{badge: badge}
}

// Get handles GET /api/cart/badge.
func (h *BadgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, dto.BadgeResponse{
		ItemCount:    h.badge.ItemCount(),
		Quantity:     h.badge.Quantity(),
		DisplayCount: h.badge.DisplayCount(),
		Subtotal:     h.badge.Subtotal(),
	})
}
