package storage

import (
	"encoding/json"

	"github.com/gostorefront/cart-backend/internal/domain/cart"
)

// persistedCart is the stored document shape. It matches the cart state's
// own JSON layout; the stored subtotal is written for human inspection but
// carries no authority on read.
type persistedCart struct {
	Items    []cart.LineItem `json:"items"`
	Subtotal float64         `json:"subtotal"`
}

// EncodeState serializes a cart state to its persisted document form.
func EncodeState(state cart.State) ([]byte, error) {
	doc := persistedCart{
		Items:    state.Items,
		Subtotal: state.Subtotal,
	}
	if doc.Items == nil {
		doc.Items = []cart.LineItem{}
	}
	return json.Marshal(doc)
}

// DecodeState deserializes a persisted document back into a cart state.
// The stored subtotal is ignored and recomputed from the items, so total
// drift from a prior buggy write or a hand-edited document can never
// survive a load. Line items with a quantity below one are dropped, and
// variations are normalized so the empty map and the absent map read back
// as the same identity slot.
//
// The ok result is false when the document was unparseable; the returned
// state is then the canonical empty cart.
func DecodeState(data []byte) (state cart.State, ok bool) {
	var doc persistedCart
	if err := json.Unmarshal(data, &doc); err != nil {
		return cart.Empty(), false
	}

	items := make([]cart.LineItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		if item.Quantity < 1 {
			continue
		}
		item.SelectedVariation = cart.NormalizeVariation(item.SelectedVariation)
		items = append(items, item)
	}

	return cart.State{Items: items, Subtotal: cart.Subtotal(items)}, true
}
