package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Snapshot is a deep copy of the cart at one point in time, with the
// derived aggregates computed from the items it carries. This is the
// shape handed to checkout.
type Snapshot struct {
	Items                []LineItem      `json:"items"`
	ItemCount            int             `json:"item_count"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	TotalCarbonFootprint decimal.Decimal `json:"total_carbon_footprint"`
	IsOpen               bool            `json:"is_open"`
}

// Store is the single-writer container for one session's cart. A mutex
// serializes mutations so every operation is an atomic transition from
// one valid state to the next; readers only ever see complete states.
type Store struct {
	mu            sync.Mutex
	state         State
	defaultMaxQty int
}

// StoreOptions tunes a new cart store.
type StoreOptions struct {
	// DefaultMaxQuantity is applied to new lines whose product does not
	// carry its own advisory cap. Zero falls back to DefaultMaxQuantity.
	DefaultMaxQuantity int
}

// NewStore builds an empty cart store. Stores must be created through
// this constructor; the zero value is not a valid store.
func NewStore(opts StoreOptions) *Store {
	maxQty := opts.DefaultMaxQuantity
	if maxQty <= 0 {
		maxQty = DefaultMaxQuantity
	}
	return &Store{defaultMaxQty: maxQty}
}

// AddItem merges the product into the cart: an existing line has its
// quantity incremented, a new line is appended. Quantity zero counts
// as one; a negative quantity is clamped through the same removal rule
// as UpdateQuantity.
func (s *Store) AddItem(p Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.addItem(p, quantity, s.defaultMaxQty)
}

// RemoveItem drops the line with the given product id. Removing an
// absent id is a no-op, so the operation is idempotent.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.removeItem(productID)
}

// UpdateQuantity sets the line's quantity to the exact value given.
// A quantity of zero or below removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.updateQuantity(productID, quantity)
}

// Clear empties the cart. The visibility flag is untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.clear()
}

// Open marks the cart sidebar visible.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.setOpen(true)
}

// Close marks the cart sidebar hidden.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.setOpen(false)
}

// Snapshot returns a deep copy of the current state with the derived
// aggregates recomputed from the items. Aggregates are never stored on
// the state itself, so they cannot drift from the line items.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	items := cloneItems(state.Items)
	return Snapshot{
		Items:                items,
		ItemCount:            ItemCount(items),
		TotalPrice:           TotalPrice(items),
		TotalCarbonFootprint: TotalCarbonFootprint(items),
		IsOpen:               state.IsOpen,
	}
}

// restore replaces the store's state wholesale. Used when rehydrating
// a persisted snapshot at session load.
func (s *Store) restore(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Items: cloneItems(state.Items), IsOpen: state.IsOpen}
}

// currentState returns a deep copy of the raw state for persistence.
func (s *Store) currentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Items: cloneItems(s.state.Items), IsOpen: s.state.IsOpen}
}
