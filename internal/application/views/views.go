// Package views holds the read-side cart observers: the header/floating
// badge and the drawer. Each view keeps a disposable snapshot of the cart
// and refreshes it by re-loading from the store whenever a change signal
// arrives. Views never receive cart state through the bus and never write;
// the persisted document stays the single source of truth.
package views

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/gostorefront/cart-backend/internal/domain/cart"
	"github.com/gostorefront/cart-backend/internal/infrastructure/pubsub"
	"github.com/gostorefront/cart-backend/internal/infrastructure/storage"
)

// badgeCeiling is the display clamp for the cart badge. Presentation rule
// only; the underlying quantities are unbounded.
const badgeCeiling = 99

// BadgeView is the read model behind the header cart badge and the
// floating cart button: line item count, summed quantity, and subtotal.
type BadgeView struct {
	mu       sync.RWMutex
	store    storage.CartStore
	bus      *pubsub.Bus
	logger   *slog.Logger
	subID    string
	events   <-chan pubsub.Event
	done     chan struct{}
	snapshot cart.State
}

// NewBadgeView creates a badge view, primes it with an initial load, and
// starts refreshing on every cart-updated signal. Call Close when done.
func NewBadgeView(store storage.CartStore, bus *pubsub.Bus, logger *slog.Logger) *BadgeView {
	if logger == nil {
		logger = slog.Default()
	}

	v := &BadgeView{
		store:  store,
		bus:    bus,
		logger: logger,
		done:   make(chan struct{}),
	}
	v.subID, v.events = bus.Subscribe(pubsub.TopicCartUpdated)
	v.refresh()

	go v.run()
	return v
}

func (v *BadgeView) run() {
	defer close(v.done)
	for range v.events {
		v.refresh()
	}
}

// refresh replaces the snapshot with a fresh load. A load failure keeps
// the previous snapshot; the badge shows stale data rather than crashing.
func (v *BadgeView) refresh() {
	state, err := v.store.Load()
	if err != nil {
		v.logger.Warn("badge refresh failed", "error", err)
		return
	}

	v.mu.Lock()
	v.snapshot = state
	v.mu.Unlock()
}

// ItemCount returns the number of distinct line items.
func (v *BadgeView) ItemCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.snapshot.Items)
}

// Quantity returns the summed quantity across all line items.
func (v *BadgeView) Quantity() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot.TotalQuantity()
}

// Subtotal returns the snapshot subtotal.
func (v *BadgeView) Subtotal() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot.Subtotal
}

// DisplayCount renders the badge label, clamped at "99+".
func (v *BadgeView) DisplayCount() string {
	qty := v.Quantity()
	if qty > badgeCeiling {
		return strconv.Itoa(badgeCeiling) + "+"
	}
	return strconv.Itoa(qty)
}

// Close unsubscribes the view and waits for its refresh loop to exit.
func (v *BadgeView) Close() {
	v.bus.Unsubscribe(pubsub.TopicCartUpdated, v.subID)
	<-v.done
}

// DrawerView is the read model behind the slide-out cart drawer. It
// refreshes on every cart change like the badge, but additionally
// auto-opens only when an item is added. Quantity edits and removals made
// inside the open drawer re-render it without popping it open again.
type DrawerView struct {
	mu     sync.RWMutex
	store  storage.CartStore
	bus    *pubsub.Bus
	logger *slog.Logger

	updatedID string
	addedID   string
	updated   <-chan pubsub.Event
	added     <-chan pubsub.Event
	done      chan struct{}

	snapshot cart.State
	open     bool
}

// NewDrawerView creates a drawer view, primes it with an initial load,
// and starts consuming both signal topics. Call Close when done.
func NewDrawerView(store storage.CartStore, bus *pubsub.Bus, logger *slog.Logger) *DrawerView {
	if logger == nil {
		logger = slog.Default()
	}

	v := &DrawerView{
		store:  store,
		bus:    bus,
		logger: logger,
		done:   make(chan struct{}),
	}
	v.updatedID, v.updated = bus.Subscribe(pubsub.TopicCartUpdated)
	v.addedID, v.added = bus.Subscribe(pubsub.TopicItemAdded)
	v.refresh()

	go v.run()
	return v
}

func (v *DrawerView) run() {
	defer close(v.done)
	updated, added := v.updated, v.added
	for updated != nil || added != nil {
		select {
		case _, ok := <-updated:
			if !ok {
				updated = nil
				continue
			}
			v.refresh()
		case _, ok := <-added:
			if !ok {
				added = nil
				continue
			}
			v.mu.Lock()
			v.open = true
			v.mu.Unlock()
		}
	}
}

func (v *DrawerView) refresh() {
	state, err := v.store.Load()
	if err != nil {
		v.logger.Warn("drawer refresh failed", "error", err)
		return
	}

	v.mu.Lock()
	v.snapshot = state
	v.mu.Unlock()
}

// Items returns the drawer's current line item snapshot.
func (v *DrawerView) Items() []cart.LineItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot.Items
}

// Subtotal returns the snapshot subtotal.
func (v *DrawerView) Subtotal() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot.Subtotal
}

// IsOpen reports whether the drawer is open.
func (v *DrawerView) IsOpen() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.open
}

// Dismiss closes the drawer (the user clicked away or hit the X).
func (v *DrawerView) Dismiss() {
	v.mu.Lock()
	v.open = false
	v.mu.Unlock()
}

// Close unsubscribes the view and waits for its event loop to exit.
func (v *DrawerView) Close() {
	v.bus.Unsubscribe(pubsub.TopicCartUpdated, v.updatedID)
	v.bus.Unsubscribe(pubsub.TopicItemAdded, v.addedID)
	<-v.done
}
