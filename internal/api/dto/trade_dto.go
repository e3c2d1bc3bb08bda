package dto

import (
	"time"

	"github.com/cryptobloom/backend/internal/domain"
)

// TradeRequest payload for executing a trade.
type TradeRequest struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// TradeResponse is the external trade shape.
type TradeResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Currency        string    `json:"currency"`
	Amount          float64   `json:"amount"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	TransactionHash *string   `json:"transaction_hash,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewTradeResponse maps a domain trade to its external shape.
func NewTradeResponse(t *domain.Trade) TradeResponse {
	return TradeResponse{
		ID:              t.ID,
		Type:            string(t.Type),
		Currency:        t.Currency,
		Amount:          t.Amount,
		Price:           t.Price,
		Status:          string(t.Status),
		TransactionHash: t.TransactionHash,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
