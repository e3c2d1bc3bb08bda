package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/events"
	"github.com/cryptobloom/backend/internal/repository"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// basePrices seeds the simulated market. Quotes jitter around these;
// there is no real market data behind them.
var basePrices = map[string]float64{
	"BTC":  64000.00,
	"ETH":  3400.00,
	"SOL":  145.00,
	"ADA":  0.45,
	"DOGE": 0.12,
}

const quoteJitter = 0.05

// TradeService executes simulated trades against the user wallet.
type TradeService struct {
	trades     repository.TradeRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewTradeService builds the service.
func NewTradeService(trades repository.TradeRepository, users repository.UserRepository, dispatcher events.Dispatcher) *TradeService {
	return &TradeService{
		trades:     trades,
		users:      users,
		dispatcher: dispatcher,
	}
}

// Quote returns a simulated unit price for the currency. It is called
// from concurrent request handlers, so it uses the locked top-level
// rand source rather than a per-service *rand.Rand.
func (s *TradeService) Quote(currency string) (float64, error) {
	base, ok := basePrices[strings.ToUpper(currency)]
	if !ok {
		return 0, apperrors.NewValidationError("unsupported currency", map[string]any{"currency": currency})
	}
	jitter := 1 + (rand.Float64()*2-1)*quoteJitter
	return base * jitter, nil
}

// TradeInput carries trade execution fields.
type TradeInput struct {
	Type     domain.TradeType
	Currency string
	Amount   float64
}

// Execute records a simulated trade and settles it against the wallet.
// Buys debit amount*price; sells credit it. The wallet never goes negative.
// The trade is written as pending and marked completed only once the
// wallet has settled; a trade whose settlement fails stays pending, with
// the wallet untouched, so the owner can cancel it.
func (s *TradeService) Execute(ctx context.Context, userID string, in TradeInput) (*domain.Trade, error) {
	if !in.Type.Valid() {
		return nil, apperrors.NewValidationError("type must be buy or sell", nil)
	}
	if in.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	price, err := s.Quote(currency)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	notional := in.Amount * price
	wallet := user.Wallet
	switch in.Type {
	case domain.TradeTypeBuy:
		if wallet < notional {
			return nil, apperrors.NewValidationError("insufficient wallet balance", map[string]any{
				"required":  notional,
				"available": wallet,
			})
		}
		wallet -= notional
	case domain.TradeTypeSell:
		wallet += notional
	}

	hash := fakeTransactionHash()
	trade := &domain.Trade{
		UserID:          userID,
		Type:            in.Type,
		Currency:        currency,
		Amount:          in.Amount,
		Price:           price,
		Status:          domain.TradeStatusPending,
		TransactionHash: &hash,
	}
	if err := s.trades.Create(ctx, trade); err != nil {
		return nil, err
	}
	if err := s.users.UpdateWallet(ctx, userID, wallet); err != nil {
		return nil, err
	}
	if err := s.trades.UpdateStatus(ctx, trade.ID, domain.TradeStatusCompleted); err != nil {
		// put the money back; the trade stays pending and cancellable
		_ = s.users.UpdateWallet(ctx, userID, user.Wallet)
		return nil, err
	}
	trade.Status = domain.TradeStatusCompleted

	s.publishTrade(ctx, trade)
	return trade, nil
}

// ListForUser returns the user's trade history, newest first.
func (s *TradeService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Trade, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.trades.ListByUser(ctx, userID, limit, offset)
}

// Cancel marks a pending trade cancelled. Completed trades are final.
func (s *TradeService) Cancel(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	trade, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade.UserID != userID {
		return nil, apperrors.NewForbidden("trade belongs to another user")
	}
	if trade.Status != domain.TradeStatusPending {
		return nil, apperrors.NewConflict("only pending trades can be cancelled", nil)
	}

	if err := s.trades.UpdateStatus(ctx, tradeID, domain.TradeStatusCancelled); err != nil {
		return nil, err
	}
	trade.Status = domain.TradeStatusCancelled
	return trade, nil
}

func (s *TradeService) publishTrade(ctx context.Context, trade *domain.Trade) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTradeExecuted,
		UserID:    trade.UserID,
		Timestamp: time.Now(),
		Payload: events.TradeExecutedPayload{
			TradeID:  trade.ID,
			Type:     trade.Type,
			Currency: trade.Currency,
			Amount:   trade.Amount,
			Price:    trade.Price,
			Status:   trade.Status,
		},
	})
}

// fakeTransactionHash fabricates a settlement hash for the simulated ledger.
func fakeTransactionHash() string {
	raw := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return "0x" + raw
}
