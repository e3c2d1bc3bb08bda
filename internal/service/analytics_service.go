package service

import (
	"context"

	"github.com/cryptobloom/backend/internal/repository"
)

// PortfolioSummary aggregates a user's trading and shopping activity.
type PortfolioSummary struct {
	WalletBalance float64
	Currencies    []repository.CurrencyVolume
	OrderSpend    float64
}

// AnalyticsService computes aggregate views over the ledger.
type AnalyticsService struct {
	trades repository.TradeRepository
	orders repository.OrderRepository
	users  repository.UserRepository
}

// NewAnalyticsService builds the service.
func NewAnalyticsService(trades repository.TradeRepository, orders repository.OrderRepository, users repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{trades: trades, orders: orders, users: users}
}

// Portfolio summarizes one user's completed trade volume and order spend.
func (s *AnalyticsService) Portfolio(ctx context.Context, userID string) (*PortfolioSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	volumes, err := s.trades.VolumeByCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	spend, err := s.orders.TotalSpendByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PortfolioSummary{
		WalletBalance: user.Wallet,
		Currencies:    volumes,
		OrderSpend:    spend,
	}, nil
}
