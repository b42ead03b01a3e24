package producttypes

// ProductType categorizes products. Products reference it by id.
type ProductType struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
