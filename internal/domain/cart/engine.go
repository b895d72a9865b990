package cart

// Add merges a candidate line item into the cart. If an existing line item
// occupies the same identity slot, its quantity is increased by the
// candidate's quantity; otherwise the candidate is appended at the end.
// A candidate quantity below 1 is floored at 1.
func Add(state State, candidate LineItem) State {
	items := cloneItems(state.Items)

	if candidate.Quantity < 1 {
		candidate.Quantity = 1
	}
	candidate.SelectedVariation = NormalizeVariation(candidate.SelectedVariation)

	if i := findItem(items, candidate.ProductID, candidate.SelectedVariation); i >= 0 {
		items[i].Quantity += candidate.Quantity
	} else {
		items = append(items, candidate.clone())
	}

	return State{Items: items, Subtotal: Subtotal(items)}
}

// UpdateQuantity sets the quantity of the matching line item to an absolute
// value. A quantity of zero or below removes the line item outright rather
// than clamping it. If no line item matches, the state is returned
// unchanged; a missing match is a no-op, not a fault.
func UpdateQuantity(state State, productID int64, quantity int, variation map[string]string) State {
	i := findItem(state.Items, productID, variation)
	if i < 0 {
		return state
	}

	if quantity <= 0 {
		return Remove(state, productID, variation)
	}

	items := cloneItems(state.Items)
	items[i].Quantity = quantity

	return State{Items: items, Subtotal: Subtotal(items)}
}

// Remove filters out the line item occupying the given identity slot. If no
// line item matches, the state is returned unchanged.
func Remove(state State, productID int64, variation map[string]string) State {
	if findItem(state.Items, productID, variation) < 0 {
		return state
	}

	items := make([]LineItem, 0, len(state.Items)-1)
	for _, item := range state.Items {
		if SameSlot(item.ProductID, item.SelectedVariation, productID, variation) {
			continue
		}
		items = append(items, item.clone())
	}

	return State{Items: items, Subtotal: Subtotal(items)}
}

// Clear returns the canonical empty cart, independent of prior state.
func Clear() State {
	return Empty()
}
