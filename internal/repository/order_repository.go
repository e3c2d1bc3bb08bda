package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cryptobloom/backend/internal/domain"
)

// OrderRepository defines persistence access for flower orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber *string) error
	TotalSpendByUser(ctx context.Context, userID string) (float64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, total, status, ship_street, ship_city, ship_state, ship_zip, ship_country, payment_method, tracking_number, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Total,
		&o.Status,
		&o.ShippingAddress.Street,
		&o.ShippingAddress.City,
		&o.ShippingAddress.State,
		&o.ShippingAddress.ZipCode,
		&o.ShippingAddress.Country,
		&o.PaymentMethod,
		&o.TrackingNumber,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists the order and its line items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const orderQuery = `
        INSERT INTO orders (user_id, total, status, ship_street, ship_city, ship_state, ship_zip, ship_country, payment_method, tracking_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, orderQuery,
		order.UserID,
		order.Total,
		order.Status,
		order.ShippingAddress.Street,
		order.ShippingAddress.City,
		order.ShippingAddress.State,
		order.ShippingAddress.ZipCode,
		order.ShippingAddress.Country,
		order.PaymentMethod,
		order.TrackingNumber,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, flower_id, name, price, quantity)
        VALUES ($1, $2, $3, $4, $5)`

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.FlowerID, item.Name, item.Price, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber *string) error {
	const query = `
        UPDATE orders SET status=$1, tracking_number=COALESCE($2, tracking_number), updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, trackingNumber, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) TotalSpendByUser(ctx context.Context, userID string) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(total), 0) FROM orders
        WHERE user_id=$1 AND status <> 'cancelled'`

	var total float64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	const query = `SELECT flower_id, name, price, quantity FROM order_items WHERE order_id=$1`

	rows, err := r.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.FlowerID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return err
		}
		items = append(items, item)
	}
	order.Items = items
	return rows.Err()
}
