// Package checkout builds the outbound Amazon hand-off URL from the
// current cart contents.
//
// This is a pure read + transform: building the URL never mutates the
// cart. In particular the cart is NOT cleared on hand-off — Amazon owns
// the actual transaction, and a shopper backing out of Amazon checkout
// should find their cart intact.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/gostorefront/cart-backend/internal/domain/cart"
)

// ErrEmptyCart is returned when there is nothing to hand off.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ErrNoASINs is returned when no line item carries a resolvable ASIN.
var ErrNoASINs = errors.New("checkout: no line items with a resolvable ASIN")

// asinPattern matches the ASIN segment of the common Amazon product URL
// forms: /dp/ASIN, /gp/product/ASIN, /gp/aw/d/ASIN.
var asinPattern = regexp.MustCompile(`/(?:dp|gp/product|gp/aw/d)/([A-Z0-9]{10})(?:[/?]|$)`)

// ExtractASIN pulls the ASIN out of an Amazon product URL. Returns false
// when the URL does not contain a recognizable ASIN segment.
func ExtractASIN(amazonURL string) (string, bool) {
	m := asinPattern.FindStringSubmatch(amazonURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Builder constructs Amazon bulk add-to-cart URLs.
type Builder struct {
	// Domain is the marketplace host, e.g. "www.amazon.com".
	Domain string
	// AssociateTag is the affiliate tag credited on the hand-off.
	AssociateTag string
}

// NewBuilder creates a Builder for the given marketplace and affiliate tag.
func NewBuilder(domain, associateTag string) *Builder {
	if domain == "" {
		domain = "www.amazon.com"
	}
	return &Builder{Domain: domain, AssociateTag: associateTag}
}

// CartURL builds the bulk add-to-cart URL for the whole cart using the
// remote cart form (ASIN.n / Quantity.n pairs). Line items whose AmazonURL
// carries no recognizable ASIN are skipped; if every item is skipped the
// hand-off fails with ErrNoASINs.
func (b *Builder) CartURL(state cart.State) (string, error) {
	if state.IsEmpty() {
		return "", ErrEmptyCart
	}

	params := url.Values{}
	if b.AssociateTag != "" {
		params.Set("AssociateTag", b.AssociateTag)
		params.Set("tag", b.AssociateTag)
	}

	n := 0
	for _, item := range state.Items {
		asin, ok := ExtractASIN(item.AmazonURL)
		if !ok {
			continue
		}
		n++
		params.Set(fmt.Sprintf("ASIN.%d", n), asin)
		params.Set(fmt.Sprintf("Quantity.%d", n), strconv.Itoa(item.Quantity))
	}
	if n == 0 {
		return "", ErrNoASINs
	}

	u := url.URL{
		Scheme:   "https",
		Host:     b.Domain,
		Path:     "/gp/aws/cart/add.html",
		RawQuery: params.Encode(),
	}
	return u.String(), nil
}
