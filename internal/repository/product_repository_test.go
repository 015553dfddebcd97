package repository

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductListCountMatchesWindow(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	for i := int64(1); i <= 7; i++ {
		seedProduct(t, repo, i, "Jacket", "Outerwear & Coats", "Acme", "Men", float64(10*i), true)
	}
	seedProduct(t, repo, 99, "Hidden", "Outerwear & Coats", "Acme", "Men", 10, false)

	ctx := context.Background()
	seen := make(map[string]bool)
	var prevPrice decimal.Decimal
	for page := 1; page <= 3; page++ {
		items, total, err := repo.List(ctx, ProductListFilter{
			Page:     page,
			PageSize: 3,
			Category: "Outerwear & Coats",
			Sort:     []SortKey{{Field: "retailPrice"}},
		})
		if err != nil {
			t.Fatalf("list page %d failed: %v", page, err)
		}
		if total != 7 {
			t.Fatalf("total want 7 got %d", total)
		}
		for _, item := range items {
			if seen[item.ID] {
				t.Fatalf("product %s returned twice", item.ID)
			}
			seen[item.ID] = true
			if item.RetailPrice.Decimal.LessThan(prevPrice) {
				t.Fatalf("window not sorted by price")
			}
			prevPrice = item.RetailPrice.Decimal
		}
	}
	if len(seen) != 7 {
		t.Fatalf("windows should cover all 7 products, got %d", len(seen))
	}

	items, total, err := repo.List(ctx, ProductListFilter{Page: 5, PageSize: 3})
	if err != nil {
		t.Fatalf("list out of range failed: %v", err)
	}
	if len(items) != 0 || total != 7 {
		t.Fatalf("out of range page want 0 items / total 7, got %d / %d", len(items), total)
	}
}

func TestProductListOverflowingPageIsEmpty(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	seedProduct(t, repo, 1, "Jacket", "Outerwear & Coats", "Acme", "Men", 10, true)

	items, total, err := repo.List(context.Background(), ProductListFilter{Page: math.MaxInt, PageSize: 100})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 || total != 1 {
		t.Fatalf("want 0 items / total 1, got %d / %d", len(items), total)
	}
}

func TestPageOffsetSaturates(t *testing.T) {
	cases := []struct {
		page, size, want int
	}{
		{0, 20, 0},
		{1, 20, 0},
		{3, 20, 40},
		{math.MaxInt, 100, math.MaxInt},
		{2, 0, 0},
	}
	for _, tc := range cases {
		if got := PageOffset(tc.page, tc.size); got != tc.want {
			t.Fatalf("PageOffset(%d, %d) want %d got %d", tc.page, tc.size, tc.want, got)
		}
	}
}

func TestProductListFilters(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	seedProduct(t, repo, 1, "Slim Denim Jeans", "Jeans", "Levi", "Men", 40, true)
	seedProduct(t, repo, 2, "Summer Dress", "Dresses", "Zara", "Women", 60, true)
	seedProduct(t, repo, 3, "Wool Sweater", "Sweaters", "Levi", "Women", 80, true)
	ctx := context.Background()

	minPrice := decimal.NewFromInt(50)
	maxPrice := decimal.NewFromInt(80)
	items, total, err := repo.List(ctx, ProductListFilter{Page: 1, PageSize: 10, MinPrice: &minPrice, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("price filter failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("price range want 2 got total=%d len=%d", total, len(items))
	}

	_, total, err = repo.List(ctx, ProductListFilter{Page: 1, PageSize: 10, Brand: "Levi", DepartmentName: "Women"})
	if err != nil {
		t.Fatalf("brand filter failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("brand+department want 1 got %d", total)
	}

	items, total, err = repo.List(ctx, ProductListFilter{Page: 1, PageSize: 10, Search: "denim"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || items[0].ProductID != 1 {
		t.Fatalf("search want product 1, got total=%d", total)
	}

	_, total, err = repo.List(ctx, ProductListFilter{Page: 1, PageSize: 10, Search: "100%"})
	if err != nil {
		t.Fatalf("wildcard search failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("wildcard characters must match literally, got %d", total)
	}
}

func TestProductFindByKeyVariants(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	created := seedProduct(t, repo, 4242, "Trail Shorts", "Shorts", "Acme", "Men", 25, true)
	ctx := context.Background()

	for _, key := range []string{created.ID, "4242", "sku-4242", "SKU-4242", "product-4242"} {
		found, err := repo.FindByKey(ctx, key, ActiveOnly)
		if err != nil {
			t.Fatalf("find by %q failed: %v", key, err)
		}
		if found == nil || found.ID != created.ID {
			t.Fatalf("find by %q should return product %s", key, created.ID)
		}
	}

	found, err := repo.FindByKey(ctx, "not-a-real-key", ActiveOnly)
	if err != nil || found != nil {
		t.Fatalf("unknown key should be nil,nil got %v,%v", found, err)
	}

	created.IsActive = false
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	found, err = repo.FindByKey(ctx, created.ID, ActiveOnly)
	if err != nil || found != nil {
		t.Fatalf("inactive product must be hidden, got %v,%v", found, err)
	}
	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil || stored == nil || stored.IsActive {
		t.Fatalf("inactive product must remain in storage, got %v,%v", stored, err)
	}
}

func TestProductFindByKeyPrefersProductIDOverSKU(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	other := seedProduct(t, repo, 7, "Canvas Belt", "Accessories", "Acme", "Men", 15, true)
	other.SKU = "4242"
	if err := repo.Update(ctx, other); err != nil {
		t.Fatalf("update sku failed: %v", err)
	}
	target := seedProduct(t, repo, 4242, "Trail Shorts", "Shorts", "Acme", "Men", 25, true)

	found, err := repo.FindByKey(ctx, "4242", ActiveOnly)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil || found.ID != target.ID {
		t.Fatalf("productId match should win over sku match, got %+v", found)
	}

	found, err = repo.FindByKey(ctx, other.ID, ActiveOnly)
	if err != nil || found == nil || found.ID != other.ID {
		t.Fatalf("primary key lookup failed: %v %v", found, err)
	}
}

func TestProductCountsAndUniqueness(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	seedProduct(t, repo, 1, "A", "Jeans", "Levi", "Men", 10, true)
	seedProduct(t, repo, 2, "B", "Jeans", "Levi", "Men", 10, true)
	seedProduct(t, repo, 3, "C", "Jeans", "Zara", "Men", 10, false)
	ctx := context.Background()

	counts, err := repo.CountActiveByBrands(ctx, []string{"Levi", "Zara", "Nope"})
	if err != nil {
		t.Fatalf("count by brand failed: %v", err)
	}
	if counts["Levi"] != 2 || counts["Zara"] != 0 || counts["Nope"] != 0 {
		t.Fatalf("unexpected brand counts: %v", counts)
	}

	exists, err := repo.ExistsBySKU(ctx, "sku-1", "")
	if err != nil || !exists {
		t.Fatalf("sku-1 should exist (case-insensitive input), got %v %v", exists, err)
	}
	existing, err := repo.ExistingProductIDs(ctx, []int64{1, 3, 5})
	if err != nil {
		t.Fatalf("existing ids failed: %v", err)
	}
	if !existing[1] || !existing[3] || existing[5] {
		t.Fatalf("unexpected existing ids: %v", existing)
	}
}
