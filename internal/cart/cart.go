package cart

import (
	"github.com/shopspring/decimal"
)

// DefaultMaxQuantity is the advisory per-line cap applied when neither
// the product nor the store configuration supplies one.
const DefaultMaxQuantity = 10

// Product is the catalog descriptor that seeds a line item. The cart
// snapshots these values at add time; later catalog edits do not touch
// lines already in the cart.
type Product struct {
	ID              string
	Name            string
	Category        string
	Price           decimal.Decimal
	OriginalPrice   *decimal.Decimal
	Image           string
	InStock         bool
	EcoLabel        string
	CarbonFootprint decimal.Decimal
	MaxQuantity     int
}

// LineItem is one cart entry: a single product id and its requested
// quantity. Quantity is always >= 1; a line that would drop to zero or
// below is removed instead.
type LineItem struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	Image           string           `json:"image"`
	Quantity        int              `json:"quantity"`
	InStock         bool             `json:"in_stock"`
	EcoLabel        string           `json:"eco_label"`
	CarbonFootprint decimal.Decimal  `json:"carbon_footprint"`
	MaxQuantity     int              `json:"max_quantity"`
}

// State is the full cart state: the ordered line items plus the
// sidebar visibility flag. IsOpen never influences the items or any
// derived total.
type State struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"is_open"`
}

// Every transition below is a total function: any valid state and any
// input produce a new valid state. Transitions return fresh slices so
// callers can hold the previous state without aliasing surprises.

func (s State) addItem(p Product, quantity int, defaultMaxQty int) State {
	// Quantity zero mirrors the "not provided" default of one add.
	if quantity == 0 {
		quantity = 1
	}

	for i, item := range s.Items {
		if item.ID != p.ID {
			continue
		}
		// Existing line: only the quantity moves. Price and the other
		// cached fields keep their first-add snapshot.
		next := item.Quantity + quantity
		if next <= 0 {
			return s.removeItem(p.ID)
		}
		items := cloneItems(s.Items)
		items[i].Quantity = next
		return State{Items: items, IsOpen: s.IsOpen}
	}

	// A negative add against an absent line stays absent.
	if quantity <= 0 {
		return s
	}

	maxQty := p.MaxQuantity
	if maxQty <= 0 {
		maxQty = defaultMaxQty
	}
	if maxQty <= 0 {
		maxQty = DefaultMaxQuantity
	}

	items := cloneItems(s.Items)
	items = append(items, LineItem{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price,
		OriginalPrice:   copyDecimalPtr(p.OriginalPrice),
		Image:           p.Image,
		Quantity:        quantity,
		InStock:         p.InStock,
		EcoLabel:        p.EcoLabel,
		CarbonFootprint: p.CarbonFootprint,
		MaxQuantity:     maxQty,
	})
	return State{Items: items, IsOpen: s.IsOpen}
}

func (s State) removeItem(productID string) State {
	for i, item := range s.Items {
		if item.ID != productID {
			continue
		}
		items := make([]LineItem, 0, len(s.Items)-1)
		items = append(items, s.Items[:i]...)
		items = append(items, s.Items[i+1:]...)
		return State{Items: items, IsOpen: s.IsOpen}
	}
	return s
}

func (s State) updateQuantity(productID string, quantity int) State {
	if quantity <= 0 {
		return s.removeItem(productID)
	}
	for i, item := range s.Items {
		if item.ID != productID {
			continue
		}
		items := cloneItems(s.Items)
		items[i].Quantity = quantity
		return State{Items: items, IsOpen: s.IsOpen}
	}
	return s
}

func (s State) clear() State {
	return State{Items: nil, IsOpen: s.IsOpen}
}

func (s State) setOpen(open bool) State {
	return State{Items: s.Items, IsOpen: open}
}

// ItemCount sums quantities across all line items.
func ItemCount(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price times quantity across all line items.
func TotalPrice(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalCarbonFootprint sums the per-unit footprint times quantity
// across all line items.
func TotalCarbonFootprint(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.CarbonFootprint.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func cloneItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return nil
	}
	cloned := make([]LineItem, len(items))
	copy(cloned, items)
	for i := range cloned {
		cloned[i].OriginalPrice = copyDecimalPtr(cloned[i].OriginalPrice)
	}
	return cloned
}

func copyDecimalPtr(src *decimal.Decimal) *decimal.Decimal {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}
