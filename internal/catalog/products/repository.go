package products

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/perfumaria/catalog-api/internal/catalog/producttypes"
	"github.com/perfumaria/catalog-api/internal/shared"
)

// Repository defines persistence operations for products.
type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) (Product, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, name, description, price, product_type_id, created_at, updated_at`

// GetAll returns every product with its product type attached.
func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	query := `SELECT p.id, p.name, p.description, p.price, p.product_type_id, p.created_at, p.updated_at,
			t.id, t.name, t.description
		FROM products p
		JOIN product_types t ON t.id = p.product_type_id
		ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Product
	for rows.Next() {
		var p Product
		var t producttypes.ProductType
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ProductTypeID, &p.CreatedAt, &p.UpdatedAt,
			&t.ID, &t.Name, &t.Description,
		)
		if err != nil {
			return nil, err
		}
		p.ProductType = &t
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	query := `INSERT INTO products (name, description, price, product_type_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + productColumns
	return r.scanProduct(r.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.ProductTypeID, now))
}

// Update writes the new field values and returns the stored record. A
// missing id surfaces as shared.ErrNotFound.
func (r *repository) Update(ctx context.Context, id int64, product Product) (Product, error) {
	query := `UPDATE products
		SET name = $1, description = $2, price = $3, product_type_id = $4, updated_at = $5
		WHERE id = $6
		RETURNING ` + productColumns
	return r.scanProduct(r.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.ProductTypeID, time.Now(), id))
}

func (r *repository) scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ProductTypeID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}
