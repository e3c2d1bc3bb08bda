package events

import (
	"time"

	"github.com/cryptobloom/backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventTradeExecuted      EventType = "trade_executed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID       string               `json:"order_id"`
	Total         float64              `json:"total"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	ItemCount     int                  `json:"item_count"`
	Email         string               `json:"email"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID        string             `json:"order_id"`
	OldStatus      domain.OrderStatus `json:"old_status"`
	NewStatus      domain.OrderStatus `json:"new_status"`
	TrackingNumber *string            `json:"tracking_number,omitempty"`
}

// TradeExecutedPayload payload.
type TradeExecutedPayload struct {
	TradeID  string             `json:"trade_id"`
	Type     domain.TradeType   `json:"type"`
	Currency string             `json:"currency"`
	Amount   float64            `json:"amount"`
	Price    float64            `json:"price"`
	Status   domain.TradeStatus `json:"status"`
}
