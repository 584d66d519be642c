package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/harithaceylon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
)

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service owns all cart sessions for the process. Every mutation goes
// through here: the session's store applies the transition and the
// resulting state is written through to the snapshot store.
type Service interface {
	CreateSession(ctx context.Context) (uuid.UUID, error)
	GetCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, productID uuid.UUID, quantity int) (Snapshot, error)
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, productID string, quantity int) (Snapshot, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) (Snapshot, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)
	OpenCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)
	CloseCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Store

	products      productLoader
	snapshots     SnapshotStore
	defaultMaxQty int
}

// ServiceParams collects the collaborators a cart service needs.
type ServiceParams struct {
	Products           productLoader
	Snapshots          SnapshotStore
	DefaultMaxQuantity int
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &service{
		sessions:      map[uuid.UUID]*Store{},
		products:      params.Products,
		snapshots:     params.Snapshots,
		defaultMaxQty: params.DefaultMaxQuantity,
	}, nil
}

// CreateSession provisions a fresh cart and returns its session id.
func (s *service) CreateSession(ctx context.Context) (uuid.UUID, error) {
	sessionID := uuid.New()
	store := NewStore(StoreOptions{DefaultMaxQuantity: s.defaultMaxQty})

	s.mu.Lock()
	s.sessions[sessionID] = store
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, sessionID, store.currentState()); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart session")
	}
	return sessionID, nil
}

// GetCart returns a snapshot of the session's cart, rehydrating from
// the snapshot store when this process has not seen the session yet.
func (s *service) GetCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return store.Snapshot(), nil
}

// AddItem loads the product from the catalog and merges it into the
// cart. The line item caches the catalog values as of this call.
func (s *service) AddItem(ctx context.Context, sessionID uuid.UUID, productID uuid.UUID, quantity int) (Snapshot, error) {
	if productID == uuid.Nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	record, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !record.IsActive {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	store.AddItem(productFromModel(record), quantity)
	return s.persist(ctx, sessionID, store)
}

// UpdateQuantity sets the line's quantity exactly; zero or below
// removes the line. Unknown product ids are a no-op.
func (s *service) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, productID string, quantity int) (Snapshot, error) {
	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	store.UpdateQuantity(productID, quantity)
	return s.persist(ctx, sessionID, store)
}

// RemoveItem drops the line with the given product id, idempotently.
func (s *service) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) (Snapshot, error) {
	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	store.RemoveItem(productID)
	return s.persist(ctx, sessionID, store)
}

// ClearCart empties the session's items, leaving visibility untouched.
func (s *service) ClearCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	store.Clear()
	return s.persist(ctx, sessionID, store)
}

// OpenCart marks the cart sidebar visible.
func (s *service) OpenCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	store.Open()
	return s.persist(ctx, sessionID, store)
}

// CloseCart marks the cart sidebar hidden.
func (s *service) CloseCart(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	store, err := s.storeFor(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	store.Close()
	return s.persist(ctx, sessionID, store)
}

// Shutdown flushes every in-memory session to the snapshot store.
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	stores := make(map[uuid.UUID]*Store, len(s.sessions))
	for id, store := range s.sessions {
		stores[id] = store
	}
	s.mu.RUnlock()

	var errs []error
	for id, store := range stores {
		if err := s.snapshots.Save(ctx, id, store.currentState()); err != nil {
			errs = append(errs, fmt.Errorf("flush session %s: %w", id, err))
		}
	}
	return multierr.Combine(errs...)
}

// storeFor resolves the session's store, rehydrating a persisted
// snapshot when present. An unknown session is a caller error and
// surfaces loudly; it is never papered over with an empty cart.
func (s *service) storeFor(ctx context.Context, sessionID uuid.UUID) (*Store, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	s.mu.RLock()
	store, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return store, nil
	}

	state, err := s.snapshots.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart session")
	}
	if state == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart session not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have rehydrated while we were loading.
	if existing, ok := s.sessions[sessionID]; ok {
		return existing, nil
	}
	store = NewStore(StoreOptions{DefaultMaxQuantity: s.defaultMaxQty})
	store.restore(*state)
	s.sessions[sessionID] = store
	return store, nil
}

func (s *service) persist(ctx context.Context, sessionID uuid.UUID, store *Store) (Snapshot, error) {
	if err := s.snapshots.Save(ctx, sessionID, store.currentState()); err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return store.Snapshot(), nil
}

func productFromModel(record *models.Product) Product {
	return Product{
		ID:              record.ID.String(),
		Name:            record.Name,
		Category:        record.Category.String(),
		Price:           record.Price,
		OriginalPrice:   copyDecimalPtr(record.OriginalPrice),
		Image:           record.ImageURL,
		InStock:         record.InStock(),
		EcoLabel:        record.EcoLabel,
		CarbonFootprint: record.CarbonFootprint,
		MaxQuantity:     record.MaxQuantity,
	}
}
