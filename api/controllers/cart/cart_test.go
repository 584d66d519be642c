package cart

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

	"github.com/harithaceylon/storefront-backend/api/middleware"
	cartsvc "github.com/harithaceylon/storefront-backend/internal/cart"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
)

type stubCartService struct {
	snapshot cartsvc.Snapshot
	err      error

	lastProductID uuid.UUID
	lastLineID    string
	lastQuantity  int
}

func (s *stubCartService) CreateSession(context.Context) (uuid.UUID, error) {
	return uuid.New(), s.err
}

func (s *stubCartService) GetCart(context.Context, uuid.UUID) (cartsvc.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubCartService) AddItem(_ context.Context, _ uuid.UUID, productID uuid.UUID, quantity int) (cartsvc.Snapshot, error) {
	s.lastProductID = productID
	s.lastQuantity = quantity
	return s.snapshot, s.err
}

func (s *stubCartService) UpdateQuantity(_ context.Context, _ uuid.UUID, productID string, quantity int) (cartsvc.Snapshot, error) {
	s.lastLineID = productID
	s.lastQuantity = quantity
	return s.snapshot, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, _ uuid.UUID, productID string) (cartsvc.Snapshot, error) {
	s.lastLineID = productID
	return s.snapshot, s.err
}

func (s *stubCartService) ClearCart(context.Context, uuid.UUID) (cartsvc.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubCartService) OpenCart(context.Context, uuid.UUID) (cartsvc.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubCartService) CloseCart(context.Context, uuid.UUID) (cartsvc.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubCartService) Shutdown(context.Context) error { return nil }

func sampleSnapshot() cartsvc.Snapshot {
	return cartsvc.Snapshot{
		Items: []cartsvc.LineItem{{
			ID:          "P1",
			Name:        "Ceylon Green Tea",
			Price:       decimal.NewFromInt(2500),
			Quantity:    1,
			MaxQuantity: cartsvc.DefaultMaxQuantity,
		}},
		ItemCount:            1,
		TotalPrice:           decimal.NewFromInt(2500),
		TotalCarbonFootprint: decimal.NewFromFloat(1.2),
	}
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), uuid.New()))
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var envelope struct {
		Data CartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchSuccess(t *testing.T) {
	handler := CartFetch(&stubCartService{snapshot: sampleSnapshot()}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := decodeCart(t, resp)
	if body.Cart.ItemCount != 1 || !body.Cart.TotalPrice.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("unexpected cart payload: %+v", body.Cart)
	}
}

func TestCartFetchWithoutSession(t *testing.T) {
	handler := CartFetch(&stubCartService{snapshot: sampleSnapshot()}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddItemSuccess(t *testing.T) {
	svc := &stubCartService{snapshot: sampleSnapshot()}
	handler := CartAddItem(svc, nil)

	productID := uuid.New()
	body := strings.NewReader(`{"product_id":"` + productID.String() + `","quantity":2}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastProductID != productID || svc.lastQuantity != 2 {
		t.Fatalf("service not invoked with payload: %s / %d", svc.lastProductID, svc.lastQuantity)
	}
}

func TestCartAddItemInvalidBody(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":""}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	handler := CartAddItem(&stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	body := strings.NewReader(`{"product_id":"` + uuid.NewString() + `"}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartUpdateItemRoutesLineID(t *testing.T) {
	svc := &stubCartService{snapshot: sampleSnapshot()}

	router := chi.NewRouter()
	router.Patch("/cart/items/{productId}", CartUpdateItem(svc, nil))

	req := withSession(httptest.NewRequest(http.MethodPatch, "/cart/items/P1", strings.NewReader(`{"quantity":0}`)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastLineID != "P1" || svc.lastQuantity != 0 {
		t.Fatalf("unexpected service call: %s / %d", svc.lastLineID, svc.lastQuantity)
	}
}

func TestCartRemoveItemIdempotent(t *testing.T) {
	svc := &stubCartService{snapshot: cartsvc.Snapshot{}}

	router := chi.NewRouter()
	router.Delete("/cart/items/{productId}", CartRemoveItem(svc, nil))

	req := withSession(httptest.NewRequest(http.MethodDelete, "/cart/items/P3", nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for absent line got %d", resp.Code)
	}
	if svc.lastLineID != "P3" {
		t.Fatalf("unexpected line id: %s", svc.lastLineID)
	}
}

func TestCartVisibilityHandlers(t *testing.T) {
	open := cartsvc.Snapshot{IsOpen: true}
	handler := CartOpen(&stubCartService{snapshot: open}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/cart/open", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if body := decodeCart(t, resp); !body.Cart.IsOpen {
		t.Fatal("expected open cart in response")
	}

	closed := cartsvc.Snapshot{}
	handler = CartClose(&stubCartService{snapshot: closed}, nil)
	req = withSession(httptest.NewRequest(http.MethodPost, "/cart/close", nil))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if body := decodeCart(t, resp); body.Cart.IsOpen {
		t.Fatal("expected closed cart in response")
	}
}
