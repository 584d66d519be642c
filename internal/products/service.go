package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harithaceylon/storefront-backend/pkg/db/models"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
	"github.com/harithaceylon/storefront-backend/pkg/pagination"
)

// Service exposes catalog reads for shoppers and catalog management
// for admins.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProductDetail(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ListProductsInput holds a shopper-facing catalog query.
type ListProductsInput struct {
	Pagination pagination.Params
	Filters    ListFilters
	// IncludeInactive is honored only for admin reads.
	IncludeInactive bool
}

// CreateProductInput holds the validated payload to create a listing.
type CreateProductInput struct {
	Name            string
	Description     *string
	Category        enums.ProductCategory
	Price           decimal.Decimal
	OriginalPrice   *decimal.Decimal
	ImageURL        string
	EcoLabel        string
	CarbonFootprint decimal.Decimal
	StockQty        int
	MaxQuantity     int
	IsActive        bool
}

// UpdateProductInput holds optional mutation values for a listing.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Category        *enums.ProductCategory
	Price           *decimal.Decimal
	OriginalPrice   *decimal.Decimal
	ImageURL        *string
	EcoLabel        *string
	CarbonFootprint *decimal.Decimal
	StockQty        *int
	MaxQuantity     *int
	IsActive        *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns one page of listings. Shopper reads only see
// active products; admin reads may include delisted rows.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	rows, nextCursor, err := s.repo.ListProducts(ctx, listQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
		ActiveOnly: !input.IncludeInactive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toDTO(&rows[i]))
	}
	return &ProductListResult{Products: dtos, NextCursor: nextCursor}, nil
}

// GetProductDetail loads a single listing by id.
func (s *service) GetProductDetail(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	record, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDTO(record), nil
}

// CreateProduct inserts a new catalog listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := &models.Product{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		OriginalPrice:   input.OriginalPrice,
		ImageURL:        input.ImageURL,
		EcoLabel:        input.EcoLabel,
		CarbonFootprint: input.CarbonFootprint,
		StockQty:        input.StockQty,
		MaxQuantity:     input.MaxQuantity,
		IsActive:        input.IsActive,
	}
	created, err := s.repo.CreateProduct(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing listing.
// Open carts keep the values they snapshotted at add time.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	record, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := applyUpdate(record, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProduct(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toDTO(updated), nil
}

// DeleteProduct removes a listing. Lines already in carts survive, as
// the cart snapshots catalog values at add time.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func validateCreate(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.OriginalPrice != nil && input.OriginalPrice.LessThan(input.Price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "original_price cannot undercut price")
	}
	if input.CarbonFootprint.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "carbon_footprint cannot be negative")
	}
	if input.StockQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_qty cannot be negative")
	}
	if input.MaxQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_quantity cannot be negative")
	}
	return nil
}

func applyUpdate(record *models.Product, input UpdateProductInput) error {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		record.Description = input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
		record.Category = *input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		record.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		record.OriginalPrice = input.OriginalPrice
	}
	if input.ImageURL != nil {
		record.ImageURL = *input.ImageURL
	}
	if input.EcoLabel != nil {
		record.EcoLabel = *input.EcoLabel
	}
	if input.CarbonFootprint != nil {
		if input.CarbonFootprint.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "carbon_footprint cannot be negative")
		}
		record.CarbonFootprint = *input.CarbonFootprint
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock_qty cannot be negative")
		}
		record.StockQty = *input.StockQty
	}
	if input.MaxQuantity != nil {
		if *input.MaxQuantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "max_quantity cannot be negative")
		}
		record.MaxQuantity = *input.MaxQuantity
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}
	return nil
}
