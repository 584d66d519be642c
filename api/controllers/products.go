package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harithaceylon/storefront-backend/api/responses"
	"github.com/harithaceylon/storefront-backend/api/validators"
	product "github.com/harithaceylon/storefront-backend/internal/products"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
	"github.com/harithaceylon/storefront-backend/pkg/pagination"
)

// ProductList serves the public catalog listing with filters and
// cursor pagination.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductDetail serves a single public catalog listing.
func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProductDetail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !dto.IsActive {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createProductRequest struct {
	Name            string           `json:"name" validate:"required"`
	Description     *string          `json:"description,omitempty"`
	Category        string           `json:"category" validate:"required"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	EcoLabel        string           `json:"eco_label,omitempty"`
	CarbonFootprint decimal.Decimal  `json:"carbon_footprint"`
	StockQty        int              `json:"stock_qty" validate:"min=0"`
	MaxQuantity     int              `json:"max_quantity" validate:"min=0"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// AdminProductCreate adds a listing to the catalog.
func AdminProductCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseProductCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}

		dto, err := svc.CreateProduct(r.Context(), product.CreateProductInput{
			Name:            payload.Name,
			Description:     payload.Description,
			Category:        category,
			Price:           payload.Price,
			OriginalPrice:   payload.OriginalPrice,
			ImageURL:        payload.ImageURL,
			EcoLabel:        payload.EcoLabel,
			CarbonFootprint: payload.CarbonFootprint,
			StockQty:        payload.StockQty,
			MaxQuantity:     payload.MaxQuantity,
			IsActive:        active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	EcoLabel        *string          `json:"eco_label,omitempty"`
	CarbonFootprint *decimal.Decimal `json:"carbon_footprint,omitempty"`
	StockQty        *int             `json:"stock_qty,omitempty"`
	MaxQuantity     *int             `json:"max_quantity,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// AdminProductUpdate applies a partial update to a listing.
func AdminProductUpdate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.UpdateProductInput{
			Name:            payload.Name,
			Description:     payload.Description,
			Price:           payload.Price,
			OriginalPrice:   payload.OriginalPrice,
			ImageURL:        payload.ImageURL,
			EcoLabel:        payload.EcoLabel,
			CarbonFootprint: payload.CarbonFootprint,
			StockQty:        payload.StockQty,
			MaxQuantity:     payload.MaxQuantity,
			IsActive:        payload.IsActive,
		}
		if payload.Category != nil {
			category, err := enums.ParseProductCategory(*payload.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Category = &category
		}

		dto, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminProductDelete removes a listing from the catalog.
func AdminProductDelete(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminProductList serves the catalog including delisted rows.
func AdminProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.IncludeInactive = true

		result, err := svc.ListProducts(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseListInput(r *http.Request) (*product.ListProductsInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	filters := product.ListFilters{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filters.Category = &category
	}
	if filters.PriceMin, err = validators.ParseQueryDecimal(r, "price_min"); err != nil {
		return nil, err
	}
	if filters.PriceMax, err = validators.ParseQueryDecimal(r, "price_max"); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("eco_label")); raw != "" {
		filters.EcoLabel = &raw
	}
	if filters.InStockOnly, err = validators.ParseQueryBool(r, "in_stock"); err != nil {
		return nil, err
	}

	return &product.ListProductsInput{
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
		Filters: filters,
	}, nil
}

func productIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}
