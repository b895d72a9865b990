// Package catalog reads the storefront's flat JSON product and category
// files and serves indexed, read-only lookups over them.
//
// The data dir mirrors the storefront content layout:
//
//	data/
//	  products.json     — array of Product
//	  categories.json   — array of Category
//
// Everything is loaded once at startup. There is no cache invalidation;
// the process is restarted when the content files change.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const defaultPageSize = 24

// Catalog holds the loaded product set with lookup indexes.
type Catalog struct {
	products   []Product
	categories []Category

	byID       map[int64]*Product
	bySlug     map[string]*Product
	byCategory map[string][]*Product
}

// Load reads products.json and categories.json from dataDir and builds the
// lookup indexes. Products referencing a category slug that is not declared
// in categories.json still index under that slug; browsing pages simply
// won't link to it.
func Load(dataDir string) (*Catalog, error) {
	var products []Product
	if err := readJSONFile(filepath.Join(dataDir, "products.json"), &products); err != nil {
		return nil, fmt.Errorf("catalog: loading products: %w", err)
	}

	var categories []Category
	if err := readJSONFile(filepath.Join(dataDir, "categories.json"), &categories); err != nil {
		return nil, fmt.Errorf("catalog: loading categories: %w", err)
	}

	c := &Catalog{
		products:   products,
		categories: categories,
		byID:       make(map[int64]*Product, len(products)),
		bySlug:     make(map[string]*Product, len(products)),
		byCategory: make(map[string][]*Product),
	}

	for i := range c.products {
		p := &c.products[i]
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = p
		c.bySlug[p.Slug] = p
		for _, slug := range p.Categories {
			c.byCategory[slug] = append(c.byCategory[slug], p)
		}
	}

	return c, nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id int64) (Product, bool) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// GetBySlug returns the product with the given URL slug.
func (c *Catalog) GetBySlug(slug string) (Product, bool) {
	p, ok := c.bySlug[slug]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// Categories returns all declared categories sorted by slug.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Count returns the total number of products in the catalog.
func (c *Catalog) Count() int {
	return len(c.products)
}

// List returns one page of products matching the filters, preserving the
// data file's product order.
func (c *Catalog) List(filters ListFilters) ListResult {
	source := c.products
	if filters.Category != "" {
		matched := c.byCategory[filters.Category]
		source = make([]Product, 0, len(matched))
		for _, p := range matched {
			source = append(source, *p)
		}
	}

	var matches []Product
	if filters.Query == "" {
		matches = source
	} else {
		needle := strings.ToLower(filters.Query)
		for _, p := range source {
			if strings.Contains(strings.ToLower(p.Title), needle) {
				matches = append(matches, p)
			}
		}
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	page := []Product{}
	if offset < len(matches) {
		end := offset + limit
		if end > len(matches) {
			end = len(matches)
		}
		page = append(page, matches[offset:end]...)
	}

	return ListResult{
		Products:   page,
		TotalCount: len(matches),
		Limit:      limit,
		Offset:     offset,
	}
}
