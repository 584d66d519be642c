package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harithaceylon/storefront-backend/pkg/enums"
)

// Product represents a catalog listing. Price and carbon footprint are
// snapshotted into cart line items at add time; edits here do not
// retroactively change open carts.
type Product struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string                `gorm:"column:name;not null"`
	Description     *string               `gorm:"column:description"`
	Category        enums.ProductCategory `gorm:"column:category;not null"`
	Price           decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice   *decimal.Decimal      `gorm:"column:original_price;type:numeric(12,2)"`
	ImageURL        string                `gorm:"column:image_url;not null;default:''"`
	EcoLabel        string                `gorm:"column:eco_label;not null;default:''"`
	CarbonFootprint decimal.Decimal       `gorm:"column:carbon_footprint;type:numeric(10,3);not null"`
	StockQty        int                   `gorm:"column:stock_qty;not null;default:0"`
	MaxQuantity     int                   `gorm:"column:max_quantity;not null;default:0"`
	IsActive        bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// InStock reports last-known availability.
func (p Product) InStock() bool {
	return p.StockQty > 0
}
