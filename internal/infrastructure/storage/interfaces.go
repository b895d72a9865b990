package storage

import (
	"github.com/gostorefront/cart-backend/internal/domain/cart"
)

// CartKey is the single authoritative persistence key. Every observer's
// in-memory cart is a disposable snapshot reconstructed from this key;
// no component owns a copy that outlives a render cycle.
const CartKey = "cart"

// CartStore is the persistence boundary for the cart document.
// This interface allows swapping implementations (SQLite, in-memory)
// and makes testing with mocks straightforward.
type CartStore interface {
	// Load reads the persisted cart. A missing or malformed document
	// loads as the canonical empty cart, never an error; errors are
	// reserved for real driver failures. The persisted subtotal is
	// always discarded and recomputed from the items.
	Load() (cart.State, error)

	// Save serializes the state under the cart key.
	Save(state cart.State) error

	Close() error
}
