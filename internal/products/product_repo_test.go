package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/harithaceylon/storefront-backend/pkg/enums"
	"github.com/harithaceylon/storefront-backend/pkg/pagination"
)

func TestProductRepoCRUD(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	ctx := context.Background()

	created := mustCreateTestProduct(t, tx)

	loaded, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	if loaded.Name != created.Name {
		t.Fatalf("expected %q, got %q", created.Name, loaded.Name)
	}

	loaded.StockQty = 0
	_, err = repo.UpdateProduct(ctx, loaded)
	require.NoError(t, err)
	reloaded, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	if reloaded.InStock() {
		t.Fatal("expected product out of stock after update")
	}

	require.NoError(t, repo.DeleteProduct(ctx, created.ID))
	if _, err := repo.GetProduct(ctx, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found after delete, got %v", err)
	}
}

func TestProductRepoListFiltersAndPagination(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	ctx := context.Background()

	var seeded []uuid.UUID
	for i := 0; i < 3; i++ {
		record := mustCreateTestProduct(t, tx)
		seeded = append(seeded, record.ID)
	}

	spice := mustCreateTestProduct(t, tx)
	spice.Category = enums.ProductCategorySpices
	spice.Price = decimal.NewFromInt(9000)
	spice.StockQty = 0
	_, err := repo.UpdateProduct(ctx, spice)
	require.NoError(t, err)

	rows, _, err := repo.ListProducts(ctx, listQuery{
		Pagination: pagination.Params{Limit: 50},
		Filters:    ListFilters{InStockOnly: true},
		ActiveOnly: true,
	})
	if err != nil {
		t.Fatalf("list in stock: %v", err)
	}
	for _, row := range rows {
		if row.StockQty <= 0 {
			t.Fatalf("in-stock filter leaked %s", row.ID)
		}
	}

	category := enums.ProductCategorySpices
	rows, _, err = repo.ListProducts(ctx, listQuery{
		Pagination: pagination.Params{Limit: 50},
		Filters:    ListFilters{Category: &category},
	})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	found := false
	for _, row := range rows {
		if row.Category != enums.ProductCategorySpices {
			t.Fatalf("category filter leaked %s", row.Category)
		}
		if row.ID == spice.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected seeded spice row in category listing")
	}

	// Page through the seeded rows two at a time; the cursor must not
	// repeat or skip ids.
	seen := map[uuid.UUID]bool{}
	cursor := ""
	for {
		page, next, err := repo.ListProducts(ctx, listQuery{
			Pagination: pagination.Params{Limit: 2, Cursor: cursor},
		})
		if err != nil {
			t.Fatalf("list page: %v", err)
		}
		for _, row := range page {
			if seen[row.ID] {
				t.Fatalf("cursor repeated row %s", row.ID)
			}
			seen[row.ID] = true
		}
		if next == "" {
			break
		}
		cursor = next
	}
	for _, id := range seeded {
		if !seen[id] {
			t.Fatalf("pagination skipped row %s", id)
		}
	}
}
