package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harithaceylon/storefront-backend/pkg/db/models"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	record := &models.Product{
		ID:              uuid.New(),
		Name:            fmt.Sprintf("Ceylon Test Tea %s", uuid.NewString()),
		Category:        enums.ProductCategoryTea,
		Price:           decimal.NewFromInt(1250),
		ImageURL:        "https://cdn.example/tea.jpg",
		EcoLabel:        "organic",
		CarbonFootprint: decimal.NewFromFloat(0.4),
		StockQty:        20,
		MaxQuantity:     10,
		IsActive:        true,
	}
	if err := tx.Create(record).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return record
}

func stringPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func decimalPtr(v decimal.Decimal) *decimal.Decimal { return &v }
