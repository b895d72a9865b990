// Package service wires the cart engine to its collaborators: the catalog
// (add-time snapshots), the cart store (single source of truth), and the
// notification bus (two-topic change broadcast).
package service

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gostorefront/cart-backend/internal/adapters/catalog"
	"github.com/gostorefront/cart-backend/internal/domain/cart"
	"github.com/gostorefront/cart-backend/internal/domain/checkout"
	"github.com/gostorefront/cart-backend/internal/infrastructure/pubsub"
	"github.com/gostorefront/cart-backend/internal/infrastructure/storage"
)

// ErrProductNotFound is returned when an add references a product the
// catalog does not carry.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidVariation is returned when a selected variation names an axis
// or value the product does not offer.
var ErrInvalidVariation = errors.New("invalid variation selection")

// ErrCartNotSaved signals a persistence write failure. The returned state
// still reflects the attempted change, so callers can show the user what
// they did together with a "could not save your cart" notice instead of
// silently reverting.
var ErrCartNotSaved = errors.New("could not save cart")

// CartService is the cart's single write path. Every mutation runs
// load -> pure transform -> save -> broadcast under one mutex, giving the
// same strict total order of mutations a browser tab gets from its single
// event queue. Concurrent writers outside this process are last-write-wins.
type CartService struct {
	mu      sync.Mutex
	store   storage.CartStore
	bus     *pubsub.Bus
	catalog *catalog.Catalog
	builder *checkout.Builder
	logger  *slog.Logger
}

// New creates a cart service.
func New(store storage.CartStore, bus *pubsub.Bus, cat *catalog.Catalog, builder *checkout.Builder, logger *slog.Logger) *CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartService{
		store:   store,
		bus:     bus,
		catalog: cat,
		builder: builder,
		logger:  logger,
	}
}

// Get returns the current cart, always freshly loaded from the store.
func (s *CartService) Get() (cart.State, error) {
	return s.store.Load()
}

// AddProduct snapshots the product from the catalog and merges it into the
// cart. The snapshot happens exactly once, here: price, title, image, and
// Amazon URL are copied into the line item and never re-fetched.
func (s *CartService) AddProduct(productID int64, quantity int, variation map[string]string) (cart.State, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return cart.Empty(), ErrProductNotFound
	}
	if err := validateVariation(product, variation); err != nil {
		return cart.Empty(), err
	}

	item := cart.LineItem{
		ProductID:         product.ID,
		Slug:              product.Slug,
		Title:             product.Title,
		Price:             product.Price,
		CompareAtPrice:    product.CompareAtPrice,
		ImagePath:         product.ImagePath,
		AmazonURL:         product.AmazonURL,
		SelectedVariation: cart.NormalizeVariation(variation),
		Quantity:          quantity,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return cart.Empty(), err
	}

	next := cart.Add(state, item)
	return s.persist(next, true)
}

// UpdateQuantity sets an absolute quantity on the matching line item.
// Zero or below removes it; a missing line item is a no-op.
func (s *CartService) UpdateQuantity(productID int64, quantity int, variation map[string]string) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return cart.Empty(), err
	}

	next := cart.UpdateQuantity(state, productID, quantity, variation)
	return s.persist(next, false)
}

// Remove drops the matching line item. A missing line item is a no-op.
func (s *CartService) Remove(productID int64, variation map[string]string) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return cart.Empty(), err
	}

	next := cart.Remove(state, productID, variation)
	return s.persist(next, false)
}

// Clear resets the cart to empty.
func (s *CartService) Clear() (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(cart.Clear(), false)
}

// CheckoutURL builds the Amazon hand-off URL for the current cart. This is
// a pure read: the cart is NOT cleared on hand-off, since Amazon owns the
// actual transaction and a shopper backing out should find their cart
// intact.
func (s *CartService) CheckoutURL() (string, error) {
	state, err := s.store.Load()
	if err != nil {
		return "", err
	}
	return s.builder.CartURL(state)
}

// persist saves the new state and broadcasts the change. On a write
// failure the mutated state is still returned alongside ErrCartNotSaved;
// no broadcast fires, since observers re-reading the store would only see
// the old document.
func (s *CartService) persist(next cart.State, itemAdded bool) (cart.State, error) {
	if err := s.store.Save(next); err != nil {
		s.logger.Warn("cart save failed", "error", err, "items", len(next.Items))
		return next, ErrCartNotSaved
	}

	s.bus.Publish(pubsub.TopicCartUpdated)
	if itemAdded {
		s.bus.Publish(pubsub.TopicItemAdded)
	}

	s.logger.Debug("cart saved", "items", len(next.Items), "subtotal", next.Subtotal)
	return next, nil
}

// validateVariation checks a selection against the product's declared
// variation axes.
func validateVariation(product catalog.Product, variation map[string]string) error {
	for axis, value := range variation {
		allowed, ok := product.Variations[axis]
		if !ok {
			return ErrInvalidVariation
		}
		found := false
		for _, v := range allowed {
			if v == value {
				found = true
				break
			}
		}
		if !found {
			return ErrInvalidVariation
		}
	}
	return nil
}
