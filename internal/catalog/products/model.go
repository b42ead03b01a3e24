package products

import (
	"time"

	"github.com/perfumaria/catalog-api/internal/catalog/producttypes"
)

// Product represents a catalog product entity.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	ProductTypeID int64     `json:"product_type_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// ProductType is attached on list reads only.
	ProductType *producttypes.ProductType `json:"product_type,omitempty"`
}
