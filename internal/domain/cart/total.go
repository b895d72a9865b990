package cart

// Subtotal computes the cart subtotal from the line items: the sum of each
// line's snapshotted unit price times its quantity. This is the single
// source of truth for the displayed total; it runs after every mutation and
// again whenever a cart is loaded from storage, so a stale or hand-edited
// persisted subtotal can never survive a load.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
