package product

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/harithaceylon/storefront-backend/pkg/db/models"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
)

func validCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:            "Ceylon Black Tea",
		Category:        enums.ProductCategoryTea,
		Price:           decimal.NewFromInt(1500),
		ImageURL:        "https://cdn.example/black-tea.jpg",
		EcoLabel:        "organic",
		CarbonFootprint: decimal.NewFromFloat(0.5),
		StockQty:        10,
		MaxQuantity:     10,
		IsActive:        true,
	}
}

func TestValidateCreate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validateCreate(validCreateInput()); err != nil {
			t.Fatalf("expected valid input, got %v", err)
		}
	})

	t.Run("emptyName", func(t *testing.T) {
		input := validCreateInput()
		input.Name = "   "
		assertValidationError(t, validateCreate(input))
	})

	t.Run("unknownCategory", func(t *testing.T) {
		input := validCreateInput()
		input.Category = enums.ProductCategory("electronics")
		assertValidationError(t, validateCreate(input))
	})

	t.Run("negativePrice", func(t *testing.T) {
		input := validCreateInput()
		input.Price = decimal.NewFromInt(-1)
		assertValidationError(t, validateCreate(input))
	})

	t.Run("originalPriceBelowPrice", func(t *testing.T) {
		input := validCreateInput()
		input.OriginalPrice = decimalPtr(decimal.NewFromInt(100))
		assertValidationError(t, validateCreate(input))
	})

	t.Run("negativeStock", func(t *testing.T) {
		input := validCreateInput()
		input.StockQty = -5
		assertValidationError(t, validateCreate(input))
	})
}

func TestApplyUpdateTrimsAndValidates(t *testing.T) {
	record := &models.Product{
		Name:     "Old Name",
		Category: enums.ProductCategoryTea,
		Price:    decimal.NewFromInt(1000),
		StockQty: 5,
		IsActive: true,
	}

	input := UpdateProductInput{
		Name:     stringPtr("  New Name "),
		Price:    decimalPtr(decimal.NewFromInt(1200)),
		StockQty: intPtr(0),
		IsActive: boolPtr(false),
	}
	if err := applyUpdate(record, input); err != nil {
		t.Fatalf("apply update: %v", err)
	}

	if record.Name != "New Name" {
		t.Fatalf("expected trimmed name, got %q", record.Name)
	}
	if !record.Price.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected price 1200, got %s", record.Price)
	}
	if record.StockQty != 0 || record.IsActive {
		t.Fatalf("partial update not applied: %+v", record)
	}
	if record.Category != enums.ProductCategoryTea {
		t.Fatal("untouched fields must keep their values")
	}

	if err := applyUpdate(record, UpdateProductInput{Name: stringPtr(" ")}); err == nil {
		t.Fatal("expected validation error for blank name")
	}
	if err := applyUpdate(record, UpdateProductInput{Price: decimalPtr(decimal.NewFromInt(-10))}); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error code, got %v", err)
	}
}

func boolPtr(v bool) *bool { return &v }
