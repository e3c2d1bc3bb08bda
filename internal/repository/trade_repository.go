package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cryptobloom/backend/internal/domain"
)

// CurrencyVolume aggregates traded volume for one currency.
type CurrencyVolume struct {
	Currency string
	Trades   int64
	Amount   float64
	Notional float64
}

// TradeRepository defines persistence access for the trading ledger.
type TradeRepository interface {
	Create(ctx context.Context, trade *domain.Trade) error
	GetByID(ctx context.Context, id string) (*domain.Trade, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Trade, error)
	UpdateStatus(ctx context.Context, id string, status domain.TradeStatus) error
	VolumeByCurrency(ctx context.Context, userID string) ([]CurrencyVolume, error)
}

type tradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository returns a Postgres-backed implementation.
func NewTradeRepository(pool *pgxpool.Pool) TradeRepository {
	return &tradeRepository{pool: pool}
}

const tradeColumns = `id, user_id, type, currency, amount, price, status, transaction_hash, created_at, updated_at`

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var t domain.Trade
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Currency,
		&t.Amount,
		&t.Price,
		&t.Status,
		&t.TransactionHash,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	const query = `
        INSERT INTO trades (user_id, type, currency, amount, price, status, transaction_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		trade.UserID,
		trade.Type,
		trade.Currency,
		trade.Amount,
		trade.Price,
		trade.Status,
		trade.TransactionHash,
	).Scan(&trade.ID, &trade.CreatedAt, &trade.UpdatedAt)
}

func (r *tradeRepository) GetByID(ctx context.Context, id string) (*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE id=$1`
	return scanTrade(r.pool.QueryRow(ctx, query, id))
}

func (r *tradeRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

func (r *tradeRepository) UpdateStatus(ctx context.Context, id string, status domain.TradeStatus) error {
	const query = `UPDATE trades SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tradeRepository) VolumeByCurrency(ctx context.Context, userID string) ([]CurrencyVolume, error) {
	const query = `
        SELECT currency, COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(amount*price), 0)
        FROM trades
        WHERE user_id=$1 AND status='completed'
        GROUP BY currency
        ORDER BY currency`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var volumes []CurrencyVolume
	for rows.Next() {
		var v CurrencyVolume
		if err := rows.Scan(&v.Currency, &v.Trades, &v.Amount, &v.Notional); err != nil {
			return nil, err
		}
		volumes = append(volumes, v)
	}
	return volumes, rows.Err()
}
