package domain

import "time"

// TradeType distinguishes buys from sells.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// Valid reports whether the trade type is known.
func (t TradeType) Valid() bool {
	return t == TradeTypeBuy || t == TradeTypeSell
}

// TradeStatus enumerates trade lifecycle states.
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "pending"
	TradeStatusCompleted TradeStatus = "completed"
	TradeStatusCancelled TradeStatus = "cancelled"
	TradeStatusFailed    TradeStatus = "failed"
)

// Trade records a simulated exchange transaction. There is no matching
// engine behind it; price and settlement are placeholders.
type Trade struct {
	ID              string
	UserID          string
	Type            TradeType
	Currency        string
	Amount          float64
	Price           float64
	Status          TradeStatus
	TransactionHash *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
