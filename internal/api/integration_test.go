package api_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gostorefront/cart-backend/internal/adapters/catalog"
	"github.com/gostorefront/cart-backend/internal/api"
	"github.com/gostorefront/cart-backend/internal/api/dto"
	"github.com/gostorefront/cart-backend/internal/application/service"
	"github.com/gostorefront/cart-backend/internal/application/views"
	"github.com/gostorefront/cart-backend/internal/domain/checkout"
	"github.com/gostorefront/cart-backend/internal/infrastructure/pubsub"
	"github.com/gostorefront/cart-backend/internal/infrastructure/storage"
)

// =============================================================================
// API Integration Tests
// =============================================================================
// These tests use a real SQLite database to exercise the full stack:
// HTTP request → Router → Handlers → CartService → Storage → SQLite
//
// This catches issues that handler-level tests with the memory store miss,
// like document round-trip fidelity and router/middleware configuration.

func createTestServer(t *testing.T) (*httptest.Server, *storage.Storage) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "cart_integration_*.db")
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	store, err := storage.NewStorage(tmpFile.Name(), nil)
	require.NoError(t, err)

	cat, err := catalog.Load("../adapters/catalog/testdata")
	require.NoError(t, err)

	bus := pubsub.NewBus()
	svc := service.New(store, bus, cat, checkout.NewBuilder("www.amazon.com", "itest-20"), nil)
	badge := views.NewBadgeView(store, bus, nil)

	server := api.NewServer(api.DefaultConfig(), svc, cat, bus, badge, nil)
	ts := httptest.NewServer(server.Router())

	t.Cleanup(func() {
		ts.Close()
		badge.Close()
		bus.Close()
		_ = store.Close()
		_ = os.Remove(tmpFile.Name())
	})

	return ts, store
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeCartResponse(t *testing.T, resp *http.Response) dto.CartResponse {
	t.Helper()
	defer resp.Body.Close()

	var response dto.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return response
}

func TestIntegration_HealthCheck(t *testing.T) {
	ts, _ := createTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIntegration_CartLifecycle(t *testing.T) {
	ts, _ := createTestServer(t)
	client := ts.Client()

	// Start empty
	resp, err := http.Get(ts.URL + "/api/cart")
	require.NoError(t, err)
	cart := decodeCartResponse(t, resp)
	assert.Empty(t, cart.Items)

	// Add the Echo Dot twice into the same slot
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/cart/items", dto.AddItemRequest{
		ProductID:         1,
		Quantity:          1,
		SelectedVariation: map[string]string{"color": "charcoal"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/cart/items", dto.AddItemRequest{
		ProductID:         1,
		Quantity:          2,
		SelectedVariation: map[string]string{"color": "charcoal"},
	})
	cart = decodeCartResponse(t, resp)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 149.97, cart.Subtotal, 1e-6)

	// A different variation is its own line item
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/cart/items", dto.AddItemRequest{
		ProductID:         1,
		Quantity:          1,
		SelectedVariation: map[string]string{"color": "glacier-white"},
	})
	cart = decodeCartResponse(t, resp)
	assert.Len(t, cart.Items, 2)

	// Quantity update, then removal
	resp = doJSON(t, client, http.MethodPut, ts.URL+"/api/cart/items", dto.UpdateQuantityRequest{
		ProductID:         1,
		Quantity:          1,
		SelectedVariation: map[string]string{"color": "charcoal"},
	})
	cart = decodeCartResponse(t, resp)
	assert.InDelta(t, 99.98, cart.Subtotal, 1e-6)

	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/cart/items", dto.RemoveItemRequest{
		ProductID:         1,
		SelectedVariation: map[string]string{"color": "glacier-white"},
	})
	cart = decodeCartResponse(t, resp)
	require.Len(t, cart.Items, 1)

	// Checkout URL leaves the cart intact
	resp, err = http.Get(ts.URL + "/api/cart/checkout-url")
	require.NoError(t, err)
	var checkoutResp dto.CheckoutURLResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&checkoutResp))
	resp.Body.Close()
	assert.Contains(t, checkoutResp.URL, "ASIN.1=B09B8V1LZ3")

	resp, err = http.Get(ts.URL + "/api/cart")
	require.NoError(t, err)
	cart = decodeCartResponse(t, resp)
	assert.Len(t, cart.Items, 1)

	// Clear
	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/cart", nil)
	cart = decodeCartResponse(t, resp)
	assert.Empty(t, cart.Items)
}

func TestIntegration_SelfHealingLoad(t *testing.T) {
	ts, store := createTestServer(t)

	// Persist a cart, then verify a fresh GET recomputes the subtotal
	// from the items rather than trusting the stored number. The store
	// always writes a consistent document, so corrupt it through a raw
	// reopen of the database file.
	resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/cart/items", dto.AddItemRequest{ProductID: 2, Quantity: 3})
	decodeCartResponse(t, resp)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.InDelta(t, 449.97, loaded.Subtotal, 1e-6)
}

func TestIntegration_EventStream(t *testing.T) {
	ts, _ := createTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/cart/events", nil)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Trigger an add; the stream must carry both signal topics.
	go func() {
		time.Sleep(50 * time.Millisecond)
		r := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/cart/items", dto.AddItemRequest{ProductID: 2})
		r.Body.Close()
	}()

	deadline := time.AfterFunc(5*time.Second, func() { resp.Body.Close() })
	defer deadline.Stop()

	sawUpdated, sawAdded := false, false
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			switch strings.TrimPrefix(line, "event: ") {
			case string(pubsub.TopicCartUpdated):
				sawUpdated = true
			case string(pubsub.TopicItemAdded):
				sawAdded = true
			}
		}
		if sawUpdated && sawAdded {
			break
		}
	}

	assert.True(t, sawUpdated, "expected a cart.updated event")
	assert.True(t, sawAdded, "expected a cart.item_added event")
}

func TestIntegration_BadgeFollowsCart(t *testing.T) {
	ts, _ := createTestServer(t)

	resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/cart/items", dto.AddItemRequest{ProductID: 2, Quantity: 3})
	decodeCartResponse(t, resp)

	// The badge refreshes off the broadcast, so poll briefly.
	require.Eventually(t, func() bool {
		r, err := http.Get(ts.URL + "/api/cart/badge")
		if err != nil {
			return false
		}
		defer r.Body.Close()

		var badge dto.BadgeResponse
		if err := json.NewDecoder(r.Body).Decode(&badge); err != nil {
			return false
		}
		return badge.Quantity == 3 && badge.DisplayCount == "3"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestIntegration_CatalogBrowsing(t *testing.T) {
	ts, _ := createTestServer(t)

	resp, err := http.Get(ts.URL + "/api/catalog/products?category=smart-home")
	require.NoError(t, err)
	defer resp.Body.Close()

	var products dto.ProductListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.Equal(t, 3, products.TotalCount)
}
