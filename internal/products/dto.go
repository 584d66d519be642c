package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harithaceylon/storefront-backend/pkg/db/models"
)

// ProductDTO is the API shape of a catalog listing.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	ImageURL        string           `json:"image_url"`
	EcoLabel        string           `json:"eco_label"`
	CarbonFootprint decimal.Decimal  `json:"carbon_footprint"`
	InStock         bool             `json:"in_stock"`
	MaxQuantity     int              `json:"max_quantity"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListResult carries one page of listings plus the cursor for
// the next page, empty when this page is the last.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func toDTO(record *models.Product) *ProductDTO {
	if record == nil {
		return nil
	}
	return &ProductDTO{
		ID:              record.ID,
		Name:            record.Name,
		Description:     copyStringPtr(record.Description),
		Category:        record.Category.String(),
		Price:           record.Price,
		OriginalPrice:   copyDecimalPtr(record.OriginalPrice),
		ImageURL:        record.ImageURL,
		EcoLabel:        record.EcoLabel,
		CarbonFootprint: record.CarbonFootprint,
		InStock:         record.InStock(),
		MaxQuantity:     record.MaxQuantity,
		IsActive:        record.IsActive,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

func copyDecimalPtr(src *decimal.Decimal) *decimal.Decimal {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}
