// Package catalog holds the static product list the storefront browses.
// Products are read-only after load; accessors hand out copies so callers
// cannot mutate the backing slice.
package catalog

import "github.com/shopease/storefront-client/internal/models"

const (
	CategoryElectronics = "Electronics"
	CategoryFashion     = "Fashion"
	CategoryBooks       = "Books"
	CategoryHomeKitchen = "Home & Kitchen"
)

var products = []models.Product{
	{
		ID:            1,
		Name:          "Premium Wireless Headphones",
		Brand:         "TechAudio",
		Category:      CategoryElectronics,
		Price:         299.99,
		OriginalPrice: 399.99,
		Rating:        4.5,
		ReviewCount:   128,
		Description:   "High-quality wireless headphones with noise cancellation and premium sound quality.",
	},
	{
		ID:            2,
		Name:          "Smart Watch Pro",
		Brand:         "WristTech",
		Category:      CategoryElectronics,
		Price:         199.99,
		OriginalPrice: 249.99,
		Rating:        4.2,
		ReviewCount:   89,
		Description:   "Advanced smartwatch with fitness tracking and heart rate monitoring.",
	},
	{
		ID:            3,
		Name:          "Designer Leather Jacket",
		Brand:         "FashionHub",
		Category:      CategoryFashion,
		Price:         159.99,
		OriginalPrice: 199.99,
		Rating:        4.8,
		ReviewCount:   45,
		Description:   "Stylish leather jacket perfect for any occasion.",
	},
	{
		ID:            4,
		Name:          "Professional Camera",
		Brand:         "PhotoPro",
		Category:      CategoryElectronics,
		Price:         799.99,
		OriginalPrice: 999.99,
		Rating:        4.7,
		ReviewCount:   156,
		Description:   "High-end camera for professional photography.",
	},
	{
		ID:            5,
		Name:          "Bestselling Novel",
		Brand:         "BookWorld",
		Category:      CategoryBooks,
		Price:         14.99,
		OriginalPrice: 19.99,
		Rating:        4.3,
		ReviewCount:   234,
		Description:   "Captivating story that will keep you reading all night.",
	},
	{
		ID:            6,
		Name:          "Kitchen Appliance Set",
		Brand:         "CookMaster",
		Category:      CategoryHomeKitchen,
		Price:         89.99,
		OriginalPrice: 119.99,
		Rating:        4.4,
		ReviewCount:   67,
		Description:   "Complete kitchen appliance set for modern cooking.",
	},
	{
		ID:            7,
		Name:          "Gaming Laptop",
		Brand:         "GameTech",
		Category:      CategoryElectronics,
		Price:         1299.99,
		OriginalPrice: 1499.99,
		Rating:        4.6,
		ReviewCount:   78,
		Description:   "High-performance gaming laptop with latest graphics card.",
	},
}

// Products returns the full catalog in insertion order.
func Products() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	return out
}

func ByID(id int64) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}

	return models.Product{}, false
}

// Categories returns the distinct categories in first-seen order.
func Categories() []string {
	return distinct(func(p models.Product) string { return p.Category })
}

// Brands returns the distinct brands in first-seen order.
func Brands() []string {
	return distinct(func(p models.Product) string { return p.Brand })
}

func distinct(field func(models.Product) string) []string {
	seen := make(map[string]struct{}, len(products))

	var out []string

	for _, p := range products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
