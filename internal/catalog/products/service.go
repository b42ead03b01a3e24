package products

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/perfumaria/catalog-api/internal/catalog/producttypes"
)

// Service orchestrates validation and persistence for products.
type Service struct {
	repo      Repository
	types     *producttypes.Service
	validator *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository, types *producttypes.Service) *Service {
	return &Service{
		repo:      repo,
		types:     types,
		validator: validator.New(),
	}
}

func (s *Service) GetAll(ctx context.Context) ([]Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the payload and persists a new product. Validation
// failures surface as *shared.ValidationError and nothing is written.
func (s *Service) Create(ctx context.Context, form ProductForm) (Product, error) {
	if err := s.validate(ctx, form); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, s.fromForm(form))
}

// Update applies the same validation-first contract as Create. Updating a
// non-existent id surfaces as shared.ErrNotFound.
func (s *Service) Update(ctx context.Context, id int64, form ProductForm) (Product, error) {
	if err := s.validate(ctx, form); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, id, s.fromForm(form))
}

func (s *Service) fromForm(form ProductForm) Product {
	p := Product{
		Name:        form.Name,
		Description: form.Description,
	}
	if form.Price != nil {
		p.Price = *form.Price
	}
	if form.ProductTypeID != nil {
		p.ProductTypeID = *form.ProductTypeID
	}
	return p
}
