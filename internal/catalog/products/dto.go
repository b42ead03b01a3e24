package products

// ProductForm carries the mutable product fields for create and update.
// Price and ProductTypeID are pointers so "missing" and "zero" validate
// differently.
type ProductForm struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"required,min=0"`
	ProductTypeID *int64   `json:"product_type_id" validate:"required"`
}
