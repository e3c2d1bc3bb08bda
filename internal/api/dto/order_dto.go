package dto

import (
	"time"

	"github.com/cryptobloom/backend/internal/domain"
)

// CheckoutItemRequest is one requested line item.
type CheckoutItemRequest struct {
	FlowerID string `json:"flower_id"`
	Quantity int    `json:"quantity"`
}

// ShippingAddressRequest is the delivery destination payload.
type ShippingAddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// CheckoutRequest payload for placing an order.
type CheckoutRequest struct {
	Items           []CheckoutItemRequest  `json:"items"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// UpdateOrderStatusRequest payload for admin fulfillment moves.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is one priced line item.
type OrderItemResponse struct {
	FlowerID string  `json:"flower_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderResponse is the external order shape.
type OrderResponse struct {
	ID              string                 `json:"id"`
	Items           []OrderItemResponse    `json:"items"`
	Total           float64                `json:"total"`
	Status          string                 `json:"status"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	TrackingNumber  *string                `json:"tracking_number,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NewOrderResponse maps a domain order to its external shape.
func NewOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			FlowerID: item.FlowerID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return OrderResponse{
		ID:    o.ID,
		Items: items,
		Total: o.Total,
		ShippingAddress: ShippingAddressRequest{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
