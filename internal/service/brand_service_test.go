package service

import (
	"errors"
	"testing"

	"github.com/bangmod-market/internal/repository"
)

func TestBrandServiceLifecycle(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewBrandService(repository.NewBrandRepository(db))

	if _, err := svc.Create(BrandInput{Name: "   "}); !errors.Is(err, ErrBrandNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
	apple, err := svc.Create(BrandInput{Name: " Apple ", WebsiteURL: "https://apple.com"})
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	if apple.NameValue() != "Apple" || !apple.IsActive {
		t.Fatalf("unexpected brand: %+v", apple)
	}
	if _, err := svc.Create(BrandInput{Name: "apple"}); !errors.Is(err, ErrBrandExists) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	inactive := false
	updated, err := svc.Update(apple.ID, BrandInput{Name: "Apple", IsActive: &inactive})
	if err != nil || updated.IsActive {
		t.Fatalf("update own name should pass: %v %+v", err, updated)
	}

	seedSaleItem(t, db, saleItemSeed{brandID: apple.ID, model: "iPhone", price: 1, quantity: 1})
	detail, err := svc.Get(apple.ID)
	if err != nil || detail.SaleItemCount != 1 {
		t.Fatalf("unexpected detail: %v %+v", err, detail)
	}
	if err := svc.Delete(apple.ID); !errors.Is(err, ErrBrandHasSaleItem) {
		t.Fatalf("expected has sale item, got %v", err)
	}

	empty, err := svc.Create(BrandInput{Name: "Nokia"})
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete brand failed: %v", err)
	}
	if _, err := svc.Get(empty.ID); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
