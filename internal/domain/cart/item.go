// Package cart implements the shopping cart engine: line item identity,
// pure mutation operations, and subtotal computation.
//
// All mutations are pure functions over State. Callers pass the current
// state in and get a fresh state back; nothing here touches storage or
// emits events. That keeps the invariants testable in isolation:
//   - no two line items share a (product, variation) identity slot
//   - quantity is always >= 1; dropping to zero removes the line item
//   - Subtotal is always derived from Items, never stored authoritatively
package cart

// LineItem is one product+variation entry in the cart.
//
// Price and the display fields are snapshots taken from the catalog at
// add time. They are deliberately never re-fetched afterward, so a later
// catalog price change does not silently reprice an existing cart.
type LineItem struct {
	ProductID         int64             `json:"productId"`
	Slug              string            `json:"slug"`
	Title             string            `json:"title"`
	Price             float64           `json:"price"`
	CompareAtPrice    *float64          `json:"compareAtPrice,omitempty"`
	ImagePath         string            `json:"imagePath"`
	AmazonURL         string            `json:"amazonUrl"`
	SelectedVariation map[string]string `json:"selectedVariation,omitempty"`
	Quantity          int               `json:"quantity"`
}

// LineTotal returns the extended price for this line (unit price x quantity).
func (li LineItem) LineTotal() float64 {
	return li.Price * float64(li.Quantity)
}

// clone returns a copy of the line item with its own variation map, so
// mutating the copy can never alias the original.
func (li LineItem) clone() LineItem {
	out := li
	if li.SelectedVariation != nil {
		out.SelectedVariation = make(map[string]string, len(li.SelectedVariation))
		for k, v := range li.SelectedVariation {
			out.SelectedVariation[k] = v
		}
	}
	if li.CompareAtPrice != nil {
		p := *li.CompareAtPrice
		out.CompareAtPrice = &p
	}
	return out
}

// State is the cart aggregate: the ordered line items plus the derived
// subtotal. Item order is insertion order; it carries no meaning beyond
// stable rendering.
type State struct {
	Items    []LineItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// Empty returns the canonical empty cart.
func Empty() State {
	return State{Items: []LineItem{}, Subtotal: 0}
}

// IsEmpty reports whether the cart has no line items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// TotalQuantity returns the summed quantity across all line items.
func (s State) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// cloneItems deep-copies the item slice so a returned State never shares
// line items with its input.
func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.clone())
	}
	return out
}
