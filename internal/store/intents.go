package store

import "github.com/shopease/storefront-client/internal/models"

// Intent is the closed set of mutations the store accepts. The unexported
// method seals the set; the reducer's switch is exhaustive over it.
type Intent interface {
	intentName() string
}

type AddToCart struct {
	Product models.Product
}

type RemoveFromCart struct {
	ProductID int64
}

type SetQuantity struct {
	ProductID int64
	Quantity  int
}

type ClearCart struct{}

type ToggleWishlist struct {
	Product models.Product
}

type SetFilters struct {
	Filters models.FilterCriteria
}

type ClearFilters struct{}

type SetSession struct {
	Session models.Session
}

type Logout struct{}

type SetLoading struct {
	Loading bool
}

type PushNotification struct {
	Message  string
	Severity models.Severity
}

type DismissNotification struct {
	ID int64
}

func (AddToCart) intentName() string           { return "add_to_cart" }
func (RemoveFromCart) intentName() string      { return "remove_from_cart" }
func (SetQuantity) intentName() string         { return "set_quantity" }
func (ClearCart) intentName() string           { return "clear_cart" }
func (ToggleWishlist) intentName() string      { return "toggle_wishlist" }
func (SetFilters) intentName() string          { return "set_filters" }
func (ClearFilters) intentName() string        { return "clear_filters" }
func (SetSession) intentName() string          { return "set_session" }
func (Logout) intentName() string              { return "logout" }
func (SetLoading) intentName() string          { return "set_loading" }
func (PushNotification) intentName() string    { return "push_notification" }
func (DismissNotification) intentName() string { return "dismiss_notification" }
