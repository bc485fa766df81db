package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image,omitempty"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	TotalPrice   float64 `json:"total_price"`
}

type Order struct {
	ID                 int64       `json:"id"`
	OrderNumber        string      `json:"order_number"`
	Status             OrderStatus `json:"status"`
	PaymentStatus      string      `json:"payment_status"`
	ShippingAddress    string      `json:"shipping_address"`
	ShippingCity       string      `json:"shipping_city"`
	ShippingState      string      `json:"shipping_state"`
	ShippingCountry    string      `json:"shipping_country"`
	ShippingPostalCode string      `json:"shipping_postal_code"`
	ShippingPhone      string      `json:"shipping_phone"`
	Subtotal           float64     `json:"subtotal,string"`
	ShippingCost       float64     `json:"shipping_cost,string"`
	TaxAmount          float64     `json:"tax_amount,string"`
	TotalAmount        float64     `json:"total_amount,string"`
	PaymentMethod      string      `json:"payment_method"`
	Items              []OrderItem `json:"items"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type OrderItemPayload struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	ShippingAddress    string             `json:"shipping_address" validate:"required"`
	ShippingCity       string             `json:"shipping_city" validate:"required"`
	ShippingState      string             `json:"shipping_state"`
	ShippingCountry    string             `json:"shipping_country"`
	ShippingPostalCode string             `json:"shipping_postal_code"`
	ShippingPhone      string             `json:"shipping_phone" validate:"required"`
	PaymentMethod      string             `json:"payment_method" validate:"required,oneof=cod card upi"`
	Items              []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
	Subtotal           float64            `json:"subtotal"`
	ShippingCost       float64            `json:"shipping_cost"`
	TaxAmount          float64            `json:"tax_amount"`
	TotalAmount        float64            `json:"total_amount"`
}
