package cart

// AddItemRequest merges a product into the session's cart. Quantity
// zero means "one"; a negative quantity walks an existing line down.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest sets a line's quantity to an exact value.
// Zero or below removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
