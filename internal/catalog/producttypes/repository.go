package producttypes

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines lookup operations over product types. Product types are
// seeded reference data with no write endpoints, so only the existence check
// consumed by product validation is exposed.
type Repository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product_types WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
