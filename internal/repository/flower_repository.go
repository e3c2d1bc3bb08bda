package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cryptobloom/backend/internal/domain"
)

// FlowerFilter narrows catalog listings.
type FlowerFilter struct {
	Category   *domain.FlowerCategory
	ActiveOnly bool
}

// FlowerRepository defines persistence access for the catalog.
type FlowerRepository interface {
	Create(ctx context.Context, flower *domain.Flower) error
	GetByID(ctx context.Context, id string) (*domain.Flower, error)
	List(ctx context.Context, filter FlowerFilter) ([]domain.Flower, error)
	Update(ctx context.Context, flower *domain.Flower) error
	AdjustStock(ctx context.Context, id string, delta int) error
}

type flowerRepository struct {
	pool *pgxpool.Pool
}

// NewFlowerRepository returns a Postgres-backed implementation.
func NewFlowerRepository(pool *pgxpool.Pool) FlowerRepository {
	return &flowerRepository{pool: pool}
}

const flowerColumns = `id, name, description, price, category, image, stock, rating, is_active, created_at, updated_at`

func scanFlower(row pgx.Row) (*domain.Flower, error) {
	var f domain.Flower
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Price,
		&f.Category,
		&f.Image,
		&f.Stock,
		&f.Rating,
		&f.IsActive,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *flowerRepository) Create(ctx context.Context, flower *domain.Flower) error {
	const query = `
        INSERT INTO flowers (name, description, price, category, image, stock, rating, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		flower.Name,
		flower.Description,
		flower.Price,
		flower.Category,
		flower.Image,
		flower.Stock,
		flower.Rating,
		flower.IsActive,
	).Scan(&flower.ID, &flower.CreatedAt, &flower.UpdatedAt)
}

func (r *flowerRepository) GetByID(ctx context.Context, id string) (*domain.Flower, error) {
	const query = `SELECT ` + flowerColumns + ` FROM flowers WHERE id=$1`
	return scanFlower(r.pool.QueryRow(ctx, query, id))
}

func (r *flowerRepository) List(ctx context.Context, filter FlowerFilter) ([]domain.Flower, error) {
	query := `SELECT ` + flowerColumns + ` FROM flowers WHERE 1=1`
	args := []any{}

	if filter.ActiveOnly {
		query += ` AND is_active=TRUE`
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += ` AND category=$1`
	}
	query += ` ORDER BY rating DESC, name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flowers []domain.Flower
	for rows.Next() {
		f, err := scanFlower(rows)
		if err != nil {
			return nil, err
		}
		flowers = append(flowers, *f)
	}
	return flowers, rows.Err()
}

func (r *flowerRepository) Update(ctx context.Context, flower *domain.Flower) error {
	const query = `
        UPDATE flowers SET name=$1, description=$2, price=$3, category=$4, image=$5,
            stock=$6, rating=$7, is_active=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		flower.Name,
		flower.Description,
		flower.Price,
		flower.Category,
		flower.Image,
		flower.Stock,
		flower.Rating,
		flower.IsActive,
		flower.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AdjustStock applies a delta guarded by the non-negative stock constraint.
func (r *flowerRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	const query = `UPDATE flowers SET stock=stock+$1, updated_at=NOW() WHERE id=$2 AND stock+$1 >= 0`

	cmd, err := r.pool.Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
