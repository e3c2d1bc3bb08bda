package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptobloom/backend/internal/domain"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

func seedTradeUser(t *testing.T, users *memUsers, wallet float64) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: "trader",
		Email:    "trader@example.com",
		Role:     domain.RoleUser,
		Wallet:   wallet,
		IsActive: true,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestQuoteStaysNearBase(t *testing.T) {
	svc := NewTradeService(newMemTrades(), newMemUsers(), nil)

	for i := 0; i < 100; i++ {
		price, err := svc.Quote("BTC")
		require.NoError(t, err)
		assert.InDelta(t, 64000.0, price, 64000.0*quoteJitter)
	}

	_, err := svc.Quote("XYZ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestQuoteConcurrentCallers(t *testing.T) {
	svc := NewTradeService(newMemTrades(), newMemUsers(), nil)

	const workers, perWorker = 8, 200
	prices := make(chan float64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				price, err := svc.Quote("BTC")
				if err == nil {
					prices <- price
				}
			}
		}()
	}
	wg.Wait()
	close(prices)

	quoted := 0
	for price := range prices {
		quoted++
		assert.InDelta(t, 64000.0, price, 64000.0*quoteJitter)
	}
	assert.Equal(t, workers*perWorker, quoted)
}

func TestExecuteBuyDebitsWallet(t *testing.T) {
	users := newMemUsers()
	trades := newMemTrades()
	svc := NewTradeService(trades, users, nil)
	user := seedTradeUser(t, users, 1000)

	trade, err := svc.Execute(context.Background(), user.ID, TradeInput{
		Type:     domain.TradeTypeBuy,
		Currency: "doge",
		Amount:   100,
	})
	require.NoError(t, err)

	assert.Equal(t, "DOGE", trade.Currency, "currency is uppercased")
	assert.Equal(t, domain.TradeStatusCompleted, trade.Status)
	require.NotNil(t, trade.TransactionHash)
	assert.True(t, strings.HasPrefix(*trade.TransactionHash, "0x"))

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000-100*trade.Price, stored.Wallet, 1e-9)
	assert.GreaterOrEqual(t, stored.Wallet, 0.0)
}

func TestExecuteSellCreditsWallet(t *testing.T) {
	users := newMemUsers()
	svc := NewTradeService(newMemTrades(), users, nil)
	user := seedTradeUser(t, users, 500)

	trade, err := svc.Execute(context.Background(), user.ID, TradeInput{
		Type:     domain.TradeTypeSell,
		Currency: "ADA",
		Amount:   10,
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500+10*trade.Price, stored.Wallet, 1e-9)
}

func TestExecuteBuyInsufficientBalance(t *testing.T) {
	users := newMemUsers()
	trades := newMemTrades()
	svc := NewTradeService(trades, users, nil)
	user := seedTradeUser(t, users, 1000)

	_, err := svc.Execute(context.Background(), user.ID, TradeInput{
		Type:     domain.TradeTypeBuy,
		Currency: "BTC",
		Amount:   1,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// Nothing was recorded and the wallet is untouched.
	assert.Empty(t, trades.trades)
	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.Wallet)
}

func TestExecuteSettlementFailureLeavesPendingTrade(t *testing.T) {
	users := newMemUsers()
	trades := newMemTrades()
	svc := NewTradeService(trades, users, nil)
	user := seedTradeUser(t, users, 1000)

	users.walletErr = errors.New("connection reset")
	_, err := svc.Execute(context.Background(), user.ID, TradeInput{
		Type:     domain.TradeTypeBuy,
		Currency: "DOGE",
		Amount:   100,
	})
	require.Error(t, err)

	// The trade never reached completed and the wallet was not charged.
	require.Len(t, trades.trades, 1)
	var stuck *domain.Trade
	for _, tr := range trades.trades {
		stuck = tr
	}
	assert.Equal(t, domain.TradeStatusPending, stuck.Status)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.Wallet)

	// The owner can still cancel the stuck trade.
	cancelled, err := svc.Cancel(context.Background(), user.ID, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusCancelled, cancelled.Status)
}

func TestExecuteRefundsWalletWhenCompletionFails(t *testing.T) {
	users := newMemUsers()
	trades := newMemTrades()
	svc := NewTradeService(trades, users, nil)
	user := seedTradeUser(t, users, 1000)

	trades.statusErr = errors.New("connection reset")
	_, err := svc.Execute(context.Background(), user.ID, TradeInput{
		Type:     domain.TradeTypeBuy,
		Currency: "DOGE",
		Amount:   100,
	})
	require.Error(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.Wallet, "debit is reversed when the trade cannot complete")
}

func TestExecuteValidation(t *testing.T) {
	users := newMemUsers()
	svc := NewTradeService(newMemTrades(), users, nil)
	user := seedTradeUser(t, users, 1000)

	tests := []struct {
		name string
		in   TradeInput
	}{
		{"bad type", TradeInput{Type: "short", Currency: "BTC", Amount: 1}},
		{"zero amount", TradeInput{Type: domain.TradeTypeBuy, Currency: "BTC", Amount: 0}},
		{"negative amount", TradeInput{Type: domain.TradeTypeBuy, Currency: "BTC", Amount: -1}},
		{"unknown currency", TradeInput{Type: domain.TradeTypeBuy, Currency: "XYZ", Amount: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Execute(context.Background(), user.ID, tt.in)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestCancelTrade(t *testing.T) {
	users := newMemUsers()
	trades := newMemTrades()
	svc := NewTradeService(trades, users, nil)
	user := seedTradeUser(t, users, 1000)

	pending := &domain.Trade{
		UserID:   user.ID,
		Type:     domain.TradeTypeBuy,
		Currency: "BTC",
		Amount:   0.01,
		Price:    64000,
		Status:   domain.TradeStatusPending,
	}
	require.NoError(t, trades.Create(context.Background(), pending))

	cancelled, err := svc.Cancel(context.Background(), user.ID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusCancelled, cancelled.Status)

	// Completed trades are final.
	_, err = svc.Cancel(context.Background(), user.ID, pending.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestCancelForeignTrade(t *testing.T) {
	users := newMemUsers()
	trades := newMemTrades()
	svc := NewTradeService(trades, users, nil)
	user := seedTradeUser(t, users, 1000)

	foreign := &domain.Trade{
		UserID: "someone-else",
		Type:   domain.TradeTypeBuy, Currency: "BTC", Amount: 0.01, Price: 64000,
		Status: domain.TradeStatusPending,
	}
	require.NoError(t, trades.Create(context.Background(), foreign))

	_, err := svc.Cancel(context.Background(), user.ID, foreign.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}
