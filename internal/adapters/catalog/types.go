package catalog

// Product is one catalog entry as stored in the flat JSON data files.
// The cart snapshots price and display fields from here exactly once, at
// add time; it never reads back through the catalog afterward.
type Product struct {
	ID             int64               `json:"id"`
	Slug           string              `json:"slug"`
	Title          string              `json:"title"`
	Price          float64             `json:"price"`
	CompareAtPrice *float64            `json:"compareAtPrice,omitempty"`
	ImagePath      string              `json:"imagePath"`
	AmazonURL      string              `json:"amazonUrl"`
	Categories     []string            `json:"categories,omitempty"`
	Variations     map[string][]string `json:"variations,omitempty"`
}

// Category groups products for browsing pages.
type Category struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"imagePath,omitempty"`
}

// ListFilters narrows and pages a product listing.
type ListFilters struct {
	Category string // category slug, empty = all
	Query    string // case-insensitive title substring, empty = all
	Limit    int    // max results (0 = default 24)
	Offset   int    // pagination offset
}

// ListResult is one page of products plus the unpaged match count.
type ListResult struct {
	Products   []Product `json:"products"`
	TotalCount int       `json:"total_count"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}
