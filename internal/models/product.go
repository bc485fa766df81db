package models

// Product is immutable after catalog load.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	Description   string  `json:"description"`
	Image         string  `json:"image,omitempty"`
}

type SortKey string

const (
	SortDefault   SortKey = "createdAt"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

// FilterCriteria narrows the catalog view. Empty fields are inactive;
// active fields combine with AND. Sort is applied after filtering.
type FilterCriteria struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    string  `json:"price"`  // bucket: "MIN-MAX" or "MIN+"
	Rating   float64 `json:"rating"` // minimum, inclusive
	Sort     SortKey `json:"sort"`
}

func DefaultFilters() FilterCriteria {
	return FilterCriteria{Sort: SortDefault}
}
