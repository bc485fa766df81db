// Package filter derives the filtered, sorted product view from the catalog
// and the current criteria. Apply is a pure function; it never mutates its
// input and the same inputs always produce the same ordered output.
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopease/storefront-client/internal/models"
)

// priceBucket is an inclusive lower bound with an optional upper bound.
type priceBucket struct {
	min    float64
	max    float64
	hasMax bool
}

// parseBucket understands "MIN-MAX" and "MIN+" forms. Anything else is
// treated as no price filter.
func parseBucket(s string) (priceBucket, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return priceBucket{}, false
	}

	if open, found := strings.CutSuffix(s, "+"); found {
		minPrice, err := strconv.ParseFloat(open, 64)
		if err != nil {
			return priceBucket{}, false
		}

		return priceBucket{min: minPrice}, true
	}

	minPart, maxPart, found := strings.Cut(s, "-")
	if !found {
		return priceBucket{}, false
	}

	minPrice, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return priceBucket{}, false
	}

	maxPrice, err := strconv.ParseFloat(maxPart, 64)
	if err != nil {
		return priceBucket{}, false
	}

	return priceBucket{min: minPrice, max: maxPrice, hasMax: true}, true
}

func (b priceBucket) contains(price float64) bool {
	if price < b.min {
		return false
	}

	if b.hasMax && price > b.max {
		return false
	}

	return true
}

func matchesSearch(p models.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Apply filters then sorts. Filters combine with AND; each empty criterion
// is inactive. Sorting is stable, so products with equal keys keep their
// relative catalog order.
func Apply(products []models.Product, criteria models.FilterCriteria) []models.Product {

	filtered := make([]models.Product, 0, len(products))

	bucket, priceActive := parseBucket(criteria.Price)
	term := strings.ToLower(strings.TrimSpace(criteria.Search))

	for _, p := range products {

		if term != "" && !matchesSearch(p, term) {
			continue
		}

		if criteria.Category != "" && p.Category != criteria.Category {
			continue
		}

		if criteria.Brand != "" && p.Brand != criteria.Brand {
			continue
		}

		if priceActive && !bucket.contains(p.Price) {
			continue
		}

		if criteria.Rating > 0 && p.Rating < criteria.Rating {
			continue
		}

		filtered = append(filtered, p)
	}

	sortProducts(filtered, criteria.Sort)

	return filtered
}

func sortProducts(products []models.Product, key models.SortKey) {
	switch key {
	case models.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case models.SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	default:
		// insertion order
	}
}
