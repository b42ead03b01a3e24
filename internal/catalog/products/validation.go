package products

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/perfumaria/catalog-api/internal/shared"
)

// validate applies the shared rule set for create and update: name required
// string up to 255 chars, price required numeric >= 0, product_type_id
// required and referencing an existing product type. The result is either nil
// or a *shared.ValidationError carrying the field error set.
func (s *Service) validate(ctx context.Context, form ProductForm) error {
	fields := shared.FieldErrors{}

	if err := s.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			name, message := fieldMessage(fieldErr)
			if _, seen := fields[name]; !seen {
				fields[name] = message
			}
		}
	}

	if _, seen := fields["product_type_id"]; !seen && form.ProductTypeID != nil {
		exists, err := s.types.Exists(ctx, *form.ProductTypeID)
		if err != nil {
			return err
		}
		if !exists {
			fields["product_type_id"] = "The selected product type id is invalid."
		}
	}

	if len(fields) > 0 {
		return shared.NewValidationError(fields)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) (string, string) {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "name", "The name field must not be greater than 255 characters."
		}
		return "name", "The name field is required."
	case "Price":
		if fe.Tag() == "min" {
			return "price", "The price field must be at least 0."
		}
		return "price", "The price field is required."
	case "ProductTypeID":
		return "product_type_id", "The product type id field is required."
	}
	return fe.Field(), "The " + fe.Field() + " field is invalid."
}
