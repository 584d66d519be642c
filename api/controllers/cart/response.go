package cart

import (
	cartsvc "github.com/harithaceylon/storefront-backend/internal/cart"
)

// CartResponse is the wire shape of a cart snapshot.
type CartResponse struct {
	Cart cartsvc.Snapshot `json:"cart"`
}

func newCartResponse(snapshot cartsvc.Snapshot) CartResponse {
	return CartResponse{Cart: snapshot}
}
