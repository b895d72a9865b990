package cart

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizeVariation maps the absent and the empty variation to the same
// canonical value (nil). A product added with no variation axis and the
// same product added with an explicit empty variation map occupy the same
// identity slot.
func NormalizeVariation(variation map[string]string) map[string]string {
	if len(variation) == 0 {
		return nil
	}
	return variation
}

// SameSlot reports whether two (product, variation) pairs denote the same
// line item slot. Variation comparison is key/value equality irrespective
// of map iteration order.
func SameSlot(productA int64, variationA map[string]string, productB int64, variationB map[string]string) bool {
	if productA != productB {
		return false
	}
	a := NormalizeVariation(variationA)
	b := NormalizeVariation(variationB)
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// SlotKey returns a stable string key for a (product, variation) identity
// slot: the product ID followed by the variation pairs in sorted key order.
// Useful for map-keyed lookups and diagnostics.
func SlotKey(productID int64, variation map[string]string) string {
	variation = NormalizeVariation(variation)
	if variation == nil {
		return strconv.FormatInt(productID, 10)
	}

	keys := make([]string, 0, len(variation))
	for k := range variation {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(strconv.FormatInt(productID, 10))
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(variation[k])
	}
	return b.String()
}

// findItem returns the index of the line item occupying the given identity
// slot, or -1 if no line item matches.
func findItem(items []LineItem, productID int64, variation map[string]string) int {
	for i, item := range items {
		if SameSlot(item.ProductID, item.SelectedVariation, productID, variation) {
			return i
		}
	}
	return -1
}
