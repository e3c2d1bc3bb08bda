package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type memUsers struct {
	users     map[string]*domain.User
	walletErr error
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*domain.User)}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := m.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.Role = user.Role
	stored.EmailVerified = user.EmailVerified
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	stored, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (m *memUsers) UpdateWallet(_ context.Context, id string, wallet float64) error {
	if m.walletErr != nil {
		return m.walletErr
	}
	stored, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Wallet = wallet
	return nil
}

func (m *memUsers) SetActive(_ context.Context, id string, active bool) error {
	stored, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.IsActive = active
	return nil
}

func (m *memUsers) TouchLastLogin(_ context.Context, _ string) error { return nil }

func (m *memUsers) List(_ context.Context, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, nil
}

type memFlowers struct {
	flowers map[string]*domain.Flower
	// failAdjustID makes stock decrements for one flower fail, standing
	// in for a concurrent checkout draining it mid-settlement.
	failAdjustID string
}

func newMemFlowers() *memFlowers {
	return &memFlowers{flowers: make(map[string]*domain.Flower)}
}

func (m *memFlowers) Create(_ context.Context, flower *domain.Flower) error {
	if flower.ID == "" {
		flower.ID = uuid.NewString()
	}
	clone := *flower
	m.flowers[flower.ID] = &clone
	return nil
}

func (m *memFlowers) GetByID(_ context.Context, id string) (*domain.Flower, error) {
	flower, ok := m.flowers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *flower
	return &clone, nil
}

func (m *memFlowers) List(_ context.Context, filter repository.FlowerFilter) ([]domain.Flower, error) {
	var out []domain.Flower
	for _, flower := range m.flowers {
		if filter.ActiveOnly && !flower.IsActive {
			continue
		}
		if filter.Category != nil && flower.Category != *filter.Category {
			continue
		}
		out = append(out, *flower)
	}
	return out, nil
}

func (m *memFlowers) Update(_ context.Context, flower *domain.Flower) error {
	if _, ok := m.flowers[flower.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *flower
	m.flowers[flower.ID] = &clone
	return nil
}

func (m *memFlowers) AdjustStock(_ context.Context, id string, delta int) error {
	if m.failAdjustID == id && delta < 0 {
		return pgx.ErrNoRows
	}
	stored, ok := m.flowers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Stock+delta < 0 {
		return pgx.ErrNoRows
	}
	stored.Stock += delta
	return nil
}

type memTrades struct {
	trades    map[string]*domain.Trade
	statusErr error
}

func newMemTrades() *memTrades {
	return &memTrades{trades: make(map[string]*domain.Trade)}
}

func (m *memTrades) Create(_ context.Context, trade *domain.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	clone := *trade
	m.trades[trade.ID] = &clone
	return nil
}

func (m *memTrades) GetByID(_ context.Context, id string) (*domain.Trade, error) {
	trade, ok := m.trades[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *trade
	return &clone, nil
}

func (m *memTrades) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Trade, error) {
	var out []domain.Trade
	for _, trade := range m.trades {
		if trade.UserID == userID {
			out = append(out, *trade)
		}
	}
	return out, nil
}

func (m *memTrades) UpdateStatus(_ context.Context, id string, status domain.TradeStatus) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	stored, ok := m.trades[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = status
	return nil
}

func (m *memTrades) VolumeByCurrency(_ context.Context, userID string) ([]repository.CurrencyVolume, error) {
	byCurrency := map[string]*repository.CurrencyVolume{}
	for _, trade := range m.trades {
		if trade.UserID != userID || trade.Status != domain.TradeStatusCompleted {
			continue
		}
		v, ok := byCurrency[trade.Currency]
		if !ok {
			v = &repository.CurrencyVolume{Currency: trade.Currency}
			byCurrency[trade.Currency] = v
		}
		v.Trades++
		v.Amount += trade.Amount
		v.Notional += trade.Amount * trade.Price
	}
	var out []repository.CurrencyVolume
	for _, v := range byCurrency {
		out = append(out, *v)
	}
	return out, nil
}

type memOrders struct {
	orders    map[string]*domain.Order
	createErr error
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[string]*domain.Order)}
}

func (m *memOrders) Create(_ context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	m.orders[order.ID] = &clone
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	return &clone, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, trackingNumber *string) error {
	stored, ok := m.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = status
	if trackingNumber != nil {
		stored.TrackingNumber = trackingNumber
	}
	return nil
}

func (m *memOrders) TotalSpendByUser(_ context.Context, userID string) (float64, error) {
	var total float64
	for _, order := range m.orders {
		if order.UserID == userID && order.Status != domain.OrderStatusCancelled {
			total += order.Total
		}
	}
	return total, nil
}
