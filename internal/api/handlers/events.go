package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gostorefront/cart-backend/internal/api/dto"
	"github.com/gostorefront/cart-backend/internal/infrastructure/pubsub"
)

// EventsHandler streams cart change signals to browser observers over
// Server-Sent Events. Events are hints only: the payload carries the
// topic, event ID, and timestamp, never cart state. Consumers re-fetch
// GET /api/cart on receipt.
type EventsHandler struct {
	Base
	bus *pubsub.Bus
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(bus *pubsub.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream handles GET /api/cart/events.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	updatedID, updated := h.bus.Subscribe(pubsub.TopicCartUpdated)
	addedID, added := h.bus.Subscribe(pubsub.TopicItemAdded)
	defer h.bus.Unsubscribe(pubsub.TopicCartUpdated, updatedID)
	defer h.bus.Unsubscribe(pubsub.TopicItemAdded, addedID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-updated:
			if !open {
				return
			}
			writeSSE(w, event)
			flusher.Flush()
		case event, open := <-added:
			if !open {
				return
			}
			writeSSE(w, event)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event pubsub.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, data)
}
