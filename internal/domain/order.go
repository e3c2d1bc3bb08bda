package domain

import "time"

// OrderStatus enumerates fulfillment states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod enumerates supported checkout payment options.
type PaymentMethod string

const (
	PaymentWallet PaymentMethod = "wallet"
	PaymentCrypto PaymentMethod = "crypto"
	PaymentCard   PaymentMethod = "card"
)

// Valid reports whether the payment method is known.
func (p PaymentMethod) Valid() bool {
	return p == PaymentWallet || p == PaymentCrypto || p == PaymentCard
}

// OrderItem is a priced line item captured at checkout time.
// Name and Price are snapshots; later catalog edits do not affect them.
type OrderItem struct {
	FlowerID string
	Name     string
	Price    float64
	Quantity int
}

// ShippingAddress is the delivery destination for an order.
type ShippingAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Order is a flower purchase.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	Total           float64
	Status          OrderStatus
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	TrackingNumber  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
