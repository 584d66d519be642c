package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	product "github.com/harithaceylon/storefront-backend/internal/products"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
)

type stubProductService struct {
	list      *product.ProductListResult
	dto       *product.ProductDTO
	err       error
	lastInput product.ListProductsInput
	deleted   []uuid.UUID
}

func (s *stubProductService) ListProducts(_ context.Context, input product.ListProductsInput) (*product.ProductListResult, error) {
	s.lastInput = input
	return s.list, s.err
}

func (s *stubProductService) GetProductDetail(context.Context, uuid.UUID) (*product.ProductDTO, error) {
	return s.dto, s.err
}

func (s *stubProductService) CreateProduct(context.Context, product.CreateProductInput) (*product.ProductDTO, error) {
	return s.dto, s.err
}

func (s *stubProductService) UpdateProduct(context.Context, uuid.UUID, product.UpdateProductInput) (*product.ProductDTO, error) {
	return s.dto, s.err
}

func (s *stubProductService) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func sampleDTO(active bool) *product.ProductDTO {
	return &product.ProductDTO{
		ID:       uuid.New(),
		Name:     "Ceylon Green Tea",
		Category: "tea",
		Price:    decimal.NewFromInt(2500),
		InStock:  true,
		IsActive: active,
	}
}

func TestProductListParsesFilters(t *testing.T) {
	svc := &stubProductService{list: &product.ProductListResult{}}
	handler := ProductList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=tea&price_min=100&in_stock=true&limit=10&q=green", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	input := svc.lastInput
	if input.Filters.Category == nil || input.Filters.Category.String() != "tea" {
		t.Fatalf("category filter missing: %+v", input.Filters)
	}
	if input.Filters.PriceMin == nil || !input.Filters.PriceMin.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("price_min filter missing: %+v", input.Filters)
	}
	if !input.Filters.InStockOnly || input.Filters.Query != "green" {
		t.Fatalf("filters not parsed: %+v", input.Filters)
	}
	if input.Pagination.Limit != 10 {
		t.Fatalf("limit not parsed: %d", input.Pagination.Limit)
	}
	if input.IncludeInactive {
		t.Fatal("public listing must not include inactive rows")
	}
}

func TestProductListRejectsBadCategory(t *testing.T) {
	handler := ProductList(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=electronics", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductDetailHidesInactive(t *testing.T) {
	svc := &stubProductService{dto: sampleDTO(false)}

	router := chi.NewRouter()
	router.Get("/products/{productId}", ProductDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for inactive product got %d", resp.Code)
	}
}

func TestProductDetailSuccess(t *testing.T) {
	dto := sampleDTO(true)
	svc := &stubProductService{dto: dto}

	router := chi.NewRouter()
	router.Get("/products/{productId}", ProductDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/"+dto.ID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data product.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != dto.ID {
		t.Fatalf("unexpected product id: %s", envelope.Data.ID)
	}
}

func TestAdminProductCreate(t *testing.T) {
	svc := &stubProductService{dto: sampleDTO(true)}
	handler := AdminProductCreate(svc, nil)

	body := `{"name":"Ceylon Green Tea","category":"tea","price":"2500","carbon_footprint":"1.2","stock_qty":5,"max_quantity":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/products", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminProductCreateValidation(t *testing.T) {
	handler := AdminProductCreate(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/products", strings.NewReader(`{"category":"tea"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminProductDeleteNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	router := chi.NewRouter()
	router.Delete("/products/{productId}", AdminProductDelete(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/products/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
