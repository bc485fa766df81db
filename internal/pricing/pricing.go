// Package pricing computes order totals. One formula is used everywhere:
// shipping is free above a 50.00 subtotal, tax is a flat 8% of the subtotal,
// and the total is subtotal + shipping + tax.
package pricing

import (
	"math"

	"github.com/shopease/storefront-client/internal/models"
)

const (
	FreeShippingThreshold = 50.0
	FlatShippingCost      = 5.99
	TaxRate               = 0.08
)

type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Summarize(lines []models.CartLine) Summary {

	var subtotal float64

	for _, line := range lines {
		subtotal += line.LineTotal()
	}

	return ForSubtotal(subtotal)
}

func ForSubtotal(subtotal float64) Summary {

	subtotal = round2(subtotal)

	shipping := FlatShippingCost
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	tax := round2(subtotal * TaxRate)

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    round2(subtotal + shipping + tax),
	}
}
