package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harithaceylon/storefront-backend/internal/cart"
	"github.com/harithaceylon/storefront-backend/internal/orders"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
)

type cartAccessor interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (cart.Snapshot, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) (cart.Snapshot, error)
}

type orderSubmitter interface {
	SubmitOrder(ctx context.Context, req orders.OrderRequest) (*orders.Receipt, error)
}

// Result is returned to the shopper after a successful handoff.
type Result struct {
	OrderID string        `json:"order_id"`
	Status  string        `json:"status"`
	Cart    cart.Snapshot `json:"cart"`
}

// Service hands a session's cart off to order processing.
type Service interface {
	Checkout(ctx context.Context, sessionID uuid.UUID) (*Result, error)
}

type service struct {
	carts  cartAccessor
	orders orderSubmitter
	logg   *logger.Logger
}

// ServiceParams collects the collaborators a checkout service needs.
type ServiceParams struct {
	Carts  cartAccessor
	Orders orderSubmitter
	Logger *logger.Logger
}

// NewService constructs a checkout service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders client required")
	}
	return &service{
		carts:  params.Carts,
		orders: params.Orders,
		logg:   params.Logger,
	}, nil
}

// Checkout snapshots the cart, submits it to order processing, and
// empties the cart only after the submission is accepted. A failed
// submission leaves the cart exactly as it was.
func (s *service) Checkout(ctx context.Context, sessionID uuid.UUID) (*Result, error) {
	snapshot, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	receipt, err := s.orders.SubmitOrder(ctx, orders.OrderRequest{
		SessionID:            sessionID,
		Items:                snapshot.Items,
		TotalPrice:           snapshot.TotalPrice,
		TotalCarbonFootprint: snapshot.TotalCarbonFootprint,
	})
	if err != nil {
		return nil, err
	}

	cleared, err := s.carts.ClearCart(ctx, sessionID)
	if err != nil {
		// The order went through; a failed clear must not fail checkout.
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("clear cart after checkout: %v", err))
		}
		cleared = snapshot
	}

	return &Result{
		OrderID: receipt.OrderID,
		Status:  receipt.Status,
		Cart:    cleared,
	}, nil
}
