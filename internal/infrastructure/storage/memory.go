package storage

import (
	"sync"

	"github.com/gostorefront/cart-backend/internal/domain/cart"
)

// MemoryStore is an in-memory CartStore. It backs the "memory" storage
// driver and doubles as the test mock: it records calls and can inject
// errors for exercising failure paths.
type MemoryStore struct {
	mu       sync.Mutex
	document []byte
	hasDoc   bool

	// Hooks for test assertions
	SaveCalls int
	LoadCalls int
	LastSaved cart.State

	// Error injection for testing error paths
	SaveErr error
	LoadErr error
}

// Compile-time check that MemoryStore implements CartStore
var _ CartStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load reads the stored document through the same decode path as the
// SQLite backend, so malformed-document semantics match exactly.
func (m *MemoryStore) Load() (cart.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoadCalls++
	if m.LoadErr != nil {
		return cart.Empty(), m.LoadErr
	}
	if !m.hasDoc {
		return cart.Empty(), nil
	}

	state, _ := DecodeState(m.document)
	return state, nil
}

// Save stores the encoded document.
func (m *MemoryStore) Save(state cart.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}

	document, err := EncodeState(state)
	if err != nil {
		return err
	}
	m.document = document
	m.hasDoc = true
	m.LastSaved = state
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// SetRawDocument replaces the stored document with arbitrary bytes,
// simulating a hand-edited or corrupted persisted cart.
func (m *MemoryStore) SetRawDocument(document string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.document = []byte(document)
	m.hasDoc = true
}
