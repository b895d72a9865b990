// Package pubsub carries the cart's change notifications between the
// write path and the observer views.
//
// There are exactly two topics. TopicCartUpdated fires after every
// successful save; TopicItemAdded additionally fires only when a line
// item was added, so the drawer can auto-open on adds without re-opening
// on quantity edits. Collapsing the two would make every quantity tweak
// inside an open drawer pop the drawer again.
//
// Events are hints, not payloads: subscribers re-load the persisted cart
// themselves. That keeps the persisted key the single source of truth
// and limits a dropped event to display lag, never a wrong total.
package pubsub

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topic names a notification channel.
type Topic string

const (
	// TopicCartUpdated fires after every successful cart save.
	TopicCartUpdated Topic = "cart.updated"
	// TopicItemAdded fires only when an item was added to the cart.
	TopicItemAdded Topic = "cart.item_added"
)

// Event is a change hint. It never carries cart state.
type Event struct {
	ID    string    `json:"id"`
	Topic Topic     `json:"topic"`
	At    time.Time `json:"at"`
}

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls further behind than this drops events; since events are only
// re-load hints, a drop costs at most one redundant refresh.
const subscriberBuffer = 16

// Bus is an in-process publish/subscribe fan-out over the two cart topics.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic]map[string]chan Event
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Topic]map[string]chan Event),
	}
}

// Subscribe registers a subscriber on a topic. It returns the subscription
// ID (needed to unsubscribe) and the event channel. The channel is closed
// on Unsubscribe or when the bus is closed.
func (b *Bus) Subscribe(topic Topic) (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return "", ch
	}

	id := uuid.NewString()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]chan Event)
	}
	b.subs[topic][id] = ch

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown IDs are
// a no-op.
func (b *Bus) Unsubscribe(topic Topic, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subs[topic][id]
	if !ok {
		return
	}
	delete(b.subs[topic], id)
	close(ch)
}

// Publish sends an event to every subscriber of the topic. The send is
// non-blocking: a full subscriber buffer drops the event rather than
// stalling the write path.
func (b *Bus) Publish(topic Topic) Event {
	event := Event{
		ID:    uuid.NewString(),
		Topic: topic,
		At:    time.Now().UTC(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return event
	}
	for _, ch := range b.subs[topic] {
		select {
		case ch <- event:
		default:
		}
	}

	return event
}

// Close tears down all subscriptions and closes their channels. Publishing
// or subscribing after Close is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for topic, subs := range b.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(b.subs, topic)
	}
}
