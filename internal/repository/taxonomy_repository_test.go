package repository

import (
	"context"
	"testing"

	"github.com/think41/catalog/internal/models"
)

func TestCategoryListDefaultSortAndChildren(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t))
	ctx := context.Background()

	parent := &models.Category{Name: "Tops", Department: "Women", IsActive: true, SortOrder: 2, SeoData: models.SeoData{Slug: "tops"}}
	if err := repo.Create(ctx, parent); err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	for _, c := range []*models.Category{
		{Name: "Tees", Department: "Women", IsActive: true, SortOrder: 1, ParentID: &parent.ID, SeoData: models.SeoData{Slug: "tees"}},
		{Name: "Blouses", Department: "Women", IsActive: true, SortOrder: 1, ParentID: &parent.ID, SeoData: models.SeoData{Slug: "blouses"}},
		{Name: "Archived", Department: "Men", IsActive: false, SortOrder: 0, SeoData: models.SeoData{Slug: "archived"}},
	} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %s failed: %v", c.Name, err)
		}
	}

	items, total, err := repo.List(ctx, CategoryListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("active categories want 3 got %d", total)
	}
	want := []string{"Blouses", "Tees", "Tops"}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("position %d want %s got %s", i, name, items[i].Name)
		}
	}

	_, total, err = repo.List(ctx, CategoryListFilter{Page: 1, PageSize: 10, Active: AnyActive})
	if err != nil || total != 4 {
		t.Fatalf("all categories want 4 got %d err=%v", total, err)
	}

	children, err := repo.ListChildren(ctx, parent.ID, ActiveOnly)
	if err != nil || len(children) != 2 {
		t.Fatalf("children want 2 got %d err=%v", len(children), err)
	}

	found, err := repo.FindByKey(ctx, "TOPS", ActiveOnly)
	if err != nil || found == nil || found.ID != parent.ID {
		t.Fatalf("slug lookup failed: %v %v", found, err)
	}
	if err := repo.Create(ctx, &models.Category{Name: "Tops", Department: "Men", IsActive: true, SeoData: models.SeoData{Slug: "tops-2"}}); err == nil {
		t.Fatalf("duplicate name must be rejected")
	}
}

func TestBrandSearchIsCaseInsensitiveSubstring(t *testing.T) {
	repo := NewBrandRepository(setupTestDB(t))
	ctx := context.Background()
	for _, name := range []string{"Calvin Klein", "Klein & Co", "Adidas"} {
		if err := repo.Create(ctx, &models.Brand{Name: name, IsActive: true, SeoData: models.SeoData{Slug: name}}); err != nil {
			t.Fatalf("create brand failed: %v", err)
		}
	}
	items, total, err := repo.List(ctx, BrandListFilter{Page: 1, PageSize: 10, Search: "KLEIN"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || items[0].Name != "Calvin Klein" {
		t.Fatalf("search want 2 sorted by name, got total=%d first=%v", total, items)
	}
}

func TestDepartmentFindByKeyRejectsMalformedID(t *testing.T) {
	repo := NewDepartmentRepository(setupTestDB(t))
	ctx := context.Background()
	dept := &models.Department{Name: "Men", Slug: "men", IsActive: true}
	if err := repo.Create(ctx, dept); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for _, key := range []string{dept.ID, "men", "MEN"} {
		found, err := repo.FindByKey(ctx, key, ActiveOnly)
		if err != nil || found == nil || found.ID != dept.ID {
			t.Fatalf("lookup %q failed: %v %v", key, found, err)
		}
	}
	found, err := repo.FindByKey(ctx, "507f1f77bcf86cd7994390zz", ActiveOnly)
	if err != nil || found != nil {
		t.Fatalf("malformed id should be a plain miss, got %v %v", found, err)
	}
}

func TestDistributionCenterLookupByCenterID(t *testing.T) {
	repo := NewDistributionCenterRepository(setupTestDB(t))
	ctx := context.Background()
	center := &models.DistributionCenter{
		CenterID:       7,
		Name:           "Memphis",
		IsActive:       true,
		Address:        models.Address{Street: "1 Main St", City: "Memphis", State: "TN", ZipCode: "38103", Country: "USA"},
		ServingRegions: models.StringArray{"South", "Midwest"},
	}
	if err := repo.Create(ctx, center); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	found, err := repo.FindByKey(ctx, "7", ActiveOnly)
	if err != nil || found == nil {
		t.Fatalf("lookup by center id failed: %v", err)
	}
	if found.FullAddress != "1 Main St, Memphis, TN 38103, USA" {
		t.Fatalf("unexpected full address: %s", found.FullAddress)
	}
	_, total, err := repo.List(ctx, DistributionCenterListFilter{Page: 1, PageSize: 10, Region: "South"})
	if err != nil || total != 1 {
		t.Fatalf("region filter want 1 got %d err=%v", total, err)
	}
	_, total, err = repo.List(ctx, DistributionCenterListFilter{Page: 1, PageSize: 10, Region: "Sou"})
	if err != nil || total != 0 {
		t.Fatalf("partial region must not match, got %d err=%v", total, err)
	}
}
