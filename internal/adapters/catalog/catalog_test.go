package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("testdata")
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	t.Run("loads products and categories", func(t *testing.T) {
		c := loadTestCatalog(t)
		assert.Equal(t, 4, c.Count())
		assert.Len(t, c.Categories(), 3)
	})

	t.Run("missing data dir fails", func(t *testing.T) {
		_, err := Load("testdata/does-not-exist")
		assert.Error(t, err)
	})

	t.Run("malformed products file fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), []byte("[]"), 0o644))

		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("duplicate product ids fail", func(t *testing.T) {
		dir := t.TempDir()
		products := `[{"id":1,"slug":"a","title":"A","price":1},{"id":1,"slug":"b","title":"B","price":2}]`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(products), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), []byte("[]"), 0o644))

		_, err := Load(dir)
		assert.Error(t, err)
	})
}

func TestCatalogLookups(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("get by id", func(t *testing.T) {
		p, ok := c.Get(1)
		require.True(t, ok)
		assert.Equal(t, "echo-dot-5th-gen", p.Slug)
		assert.InDelta(t, 49.99, p.Price, 1e-9)
		require.NotNil(t, p.CompareAtPrice)
		assert.InDelta(t, 59.99, *p.CompareAtPrice, 1e-9)
	})

	t.Run("get missing id", func(t *testing.T) {
		_, ok := c.Get(999)
		assert.False(t, ok)
	})

	t.Run("get by slug", func(t *testing.T) {
		p, ok := c.GetBySlug("kindle-paperwhite")
		require.True(t, ok)
		assert.Equal(t, int64(2), p.ID)
	})

	t.Run("categories are sorted by slug", func(t *testing.T) {
		cats := c.Categories()
		require.Len(t, cats, 3)
		assert.Equal(t, "entertainment", cats[0].Slug)
		assert.Equal(t, "reading", cats[1].Slug)
		assert.Equal(t, "smart-home", cats[2].Slug)
	})
}

func TestCatalogList(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("lists everything by default", func(t *testing.T) {
		result := c.List(ListFilters{})
		assert.Equal(t, 4, result.TotalCount)
		assert.Len(t, result.Products, 4)
		assert.Equal(t, defaultPageSize, result.Limit)
	})

	t.Run("filters by category", func(t *testing.T) {
		result := c.List(ListFilters{Category: "smart-home"})
		assert.Equal(t, 3, result.TotalCount)
		for _, p := range result.Products {
			assert.Contains(t, p.Categories, "smart-home")
		}
	})

	t.Run("search is a case-insensitive title substring", func(t *testing.T) {
		result := c.List(ListFilters{Query: "echo"})
		assert.Equal(t, 2, result.TotalCount)
	})

	t.Run("category and search compose", func(t *testing.T) {
		result := c.List(ListFilters{Category: "smart-home", Query: "fire"})
		require.Equal(t, 1, result.TotalCount)
		assert.Equal(t, "fire-tv-stick-4k", result.Products[0].Slug)
	})

	t.Run("pagination", func(t *testing.T) {
		page1 := c.List(ListFilters{Limit: 2, Offset: 0})
		page2 := c.List(ListFilters{Limit: 2, Offset: 2})

		assert.Len(t, page1.Products, 2)
		assert.Len(t, page2.Products, 2)
		assert.Equal(t, 4, page1.TotalCount)
		assert.NotEqual(t, page1.Products[0].ID, page2.Products[0].ID)
	})

	t.Run("offset past the end returns an empty page", func(t *testing.T) {
		result := c.List(ListFilters{Offset: 100})
		assert.Empty(t, result.Products)
		assert.Equal(t, 4, result.TotalCount)
	})
}
