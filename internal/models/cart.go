package models

// CartLine snapshots the product at the time it was added, so a later
// catalog change does not silently reprice an existing cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
