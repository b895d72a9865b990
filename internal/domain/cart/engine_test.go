package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(productID int64, price float64, quantity int, variation map[string]string) LineItem {
	return LineItem{
		ProductID:         productID,
		Slug:              "test-product",
		Title:             "Test Product",
		Price:             price,
		ImagePath:         "/images/test.jpg",
		AmazonURL:         "https://www.amazon.com/dp/B000TEST42",
		SelectedVariation: variation,
		Quantity:          quantity,
	}
}

// requireSubtotalConsistent asserts the derived-total invariant: the stored
// subtotal always equals the recomputed sum over the items.
func requireSubtotalConsistent(t *testing.T, state State) {
	t.Helper()
	assert.InDelta(t, Subtotal(state.Items), state.Subtotal, 1e-9)
}

func TestAdd(t *testing.T) {
	t.Run("appends a new item to an empty cart", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 19.99, 1, nil))

		require.Len(t, state.Items, 1)
		assert.Equal(t, int64(42), state.Items[0].ProductID)
		assert.Equal(t, 1, state.Items[0].Quantity)
		assert.InDelta(t, 19.99, state.Subtotal, 1e-9)
		requireSubtotalConsistent(t, state)
	})

	t.Run("adding the same slot twice merges quantities", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 19.99, 1, nil))
		state = Add(state, testItem(42, 19.99, 1, nil))

		require.Len(t, state.Items, 1)
		assert.Equal(t, 2, state.Items[0].Quantity)
		assert.InDelta(t, 39.98, state.Subtotal, 1e-9)
	})

	t.Run("nil and empty variation merge into one slot", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 1, nil))
		state = Add(state, testItem(42, 10, 1, map[string]string{}))

		require.Len(t, state.Items, 1)
		assert.Equal(t, 2, state.Items[0].Quantity)
	})

	t.Run("distinct variations stay distinct line items", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 1, map[string]string{"color": "red"}))
		state = Add(state, testItem(42, 10, 1, map[string]string{"color": "blue"}))

		require.Len(t, state.Items, 2)
		assert.Equal(t, map[string]string{"color": "red"}, state.Items[0].SelectedVariation)
		assert.Equal(t, map[string]string{"color": "blue"}, state.Items[1].SelectedVariation)
	})

	t.Run("quantity below one is floored at one", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 0, nil))

		require.Len(t, state.Items, 1)
		assert.Equal(t, 1, state.Items[0].Quantity)
	})

	t.Run("new items append at the end", func(t *testing.T) {
		state := Add(Empty(), testItem(1, 5, 1, nil))
		state = Add(state, testItem(2, 5, 1, nil))
		state = Add(state, testItem(3, 5, 1, nil))

		require.Len(t, state.Items, 3)
		assert.Equal(t, int64(1), state.Items[0].ProductID)
		assert.Equal(t, int64(2), state.Items[1].ProductID)
		assert.Equal(t, int64(3), state.Items[2].ProductID)
	})

	t.Run("does not mutate the input state", func(t *testing.T) {
		original := Add(Empty(), testItem(42, 10, 1, nil))
		snapshot := cloneItems(original.Items)

		_ = Add(original, testItem(42, 10, 5, nil))

		assert.Empty(t, cmp.Diff(snapshot, original.Items))
		assert.Equal(t, 1, original.Items[0].Quantity)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets an absolute quantity", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 19.99, 3, nil))
		state = UpdateQuantity(state, 42, 1, nil)

		require.Len(t, state.Items, 1)
		assert.Equal(t, 1, state.Items[0].Quantity)
		assert.InDelta(t, 19.99, state.Subtotal, 1e-9)
	})

	t.Run("zero removes the line item", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 2, nil))
		state = UpdateQuantity(state, 42, 0, nil)

		assert.Empty(t, state.Items)
		assert.Zero(t, state.Subtotal)
	})

	t.Run("negative removes the line item", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 2, nil))
		state = UpdateQuantity(state, 42, -5, nil)

		assert.Empty(t, state.Items)
		assert.Zero(t, state.Subtotal)
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 1, nil))
		updated := UpdateQuantity(state, 99, 5, nil)

		assert.Empty(t, cmp.Diff(state, updated))
	})

	t.Run("only the matching variation is updated", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 1, map[string]string{"color": "red"}))
		state = Add(state, testItem(42, 10, 1, map[string]string{"color": "blue"}))
		state = UpdateQuantity(state, 42, 4, map[string]string{"color": "blue"})

		require.Len(t, state.Items, 2)
		assert.Equal(t, 1, state.Items[0].Quantity)
		assert.Equal(t, 4, state.Items[1].Quantity)
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes the matching line item", func(t *testing.T) {
		state := Add(Empty(), testItem(1, 5, 1, nil))
		state = Add(state, testItem(2, 7, 1, nil))
		state = Remove(state, 1, nil)

		require.Len(t, state.Items, 1)
		assert.Equal(t, int64(2), state.Items[0].ProductID)
		assert.InDelta(t, 7, state.Subtotal, 1e-9)
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		state := Add(Empty(), testItem(1, 5, 1, nil))
		removed := Remove(state, 99, nil)

		assert.Empty(t, cmp.Diff(state, removed))
	})

	t.Run("variation selects which item is removed", func(t *testing.T) {
		state := Add(Empty(), testItem(42, 10, 1, map[string]string{"color": "red"}))
		state = Add(state, testItem(42, 10, 1, map[string]string{"color": "blue"}))
		state = Remove(state, 42, map[string]string{"color": "red"})

		require.Len(t, state.Items, 1)
		assert.Equal(t, map[string]string{"color": "blue"}, state.Items[0].SelectedVariation)
	})
}

func TestClear(t *testing.T) {
	state := Clear()
	assert.Empty(t, state.Items)
	assert.Zero(t, state.Subtotal)
	assert.NotNil(t, state.Items)
}

// TestCartScenario walks the full add/merge/update/remove lifecycle and
// checks the subtotal after every step.
func TestCartScenario(t *testing.T) {
	state := Empty()

	state = Add(state, testItem(42, 19.99, 1, nil))
	require.Len(t, state.Items, 1)
	assert.InDelta(t, 19.99, state.Subtotal, 1e-9)

	state = Add(state, testItem(42, 19.99, 2, nil))
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.InDelta(t, 59.97, state.Subtotal, 1e-9)

	state = UpdateQuantity(state, 42, 1, nil)
	assert.Equal(t, 1, state.Items[0].Quantity)
	assert.InDelta(t, 19.99, state.Subtotal, 1e-9)

	state = Remove(state, 42, nil)
	assert.Empty(t, state.Items)
	assert.Zero(t, state.Subtotal)
}

// TestSubtotalInvariant runs a mixed operation sequence and asserts the
// derived-total invariant holds after every single step.
func TestSubtotalInvariant(t *testing.T) {
	red := map[string]string{"color": "red"}
	blue := map[string]string{"color": "blue"}

	state := Empty()
	steps := []func(State) State{
		func(s State) State { return Add(s, testItem(1, 9.99, 1, nil)) },
		func(s State) State { return Add(s, testItem(2, 24.50, 2, red)) },
		func(s State) State { return Add(s, testItem(2, 24.50, 1, blue)) },
		func(s State) State { return UpdateQuantity(s, 2, 5, red) },
		func(s State) State { return Remove(s, 1, nil) },
		func(s State) State { return UpdateQuantity(s, 2, 0, blue) },
		func(s State) State { return Add(s, testItem(3, 0.99, 7, nil)) },
	}

	for i, step := range steps {
		state = step(state)
		assert.InDelta(t, Subtotal(state.Items), state.Subtotal, 1e-9, "step %d", i)
	}
}
