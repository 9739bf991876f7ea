package service

import (
	"errors"
	"testing"

	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"

	"gorm.io/gorm"
)

type cartFixture struct {
	svc     *CartService
	db      *gorm.DB
	buyer   models.User
	sellerA models.User
	sellerB models.User
	itemA   models.SaleItem
	itemB   models.SaleItem
}

func setupCartService(t *testing.T) cartFixture {
	t.Helper()
	db := openServiceTestDB(t)
	brand := seedServiceBrand(t, db, "Apple")
	buyer := seedUser(t, db, "buyer@example.com", constants.RoleBuyer, true)
	sellerA := seedUser(t, db, "seller-a@example.com", constants.RoleSeller, true)
	sellerB := seedUser(t, db, "seller-b@example.com", constants.RoleSeller, true)
	return cartFixture{
		svc:     NewCartService(repository.NewCartRepository(db), repository.NewSaleItemRepository(db)),
		db:      db,
		buyer:   buyer,
		sellerA: sellerA,
		sellerB: sellerB,
		itemA:   seedSaleItem(t, db, saleItemSeed{brandID: brand.ID, sellerID: uintRef(sellerA.ID), model: "A", price: 10, quantity: 5}),
		itemB:   seedSaleItem(t, db, saleItemSeed{brandID: brand.ID, sellerID: uintRef(sellerB.ID), model: "B", price: 20, quantity: 1}),
	}
}

func TestCartAddMergesExistingLine(t *testing.T) {
	f := setupCartService(t)
	if _, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	line, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 3)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if line.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", line.Quantity)
	}
	var count int64
	f.db.Model(&models.CartItem{}).Where("user_id = ?", f.buyer.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one cart row, got %d", count)
	}
	if _, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}

func TestCartAddRejects(t *testing.T) {
	f := setupCartService(t)
	cases := []struct {
		name      string
		principal uint
		item      uint
		quantity  int
		want      error
	}{
		{name: "zero quantity", principal: f.buyer.ID, item: f.itemA.ID, quantity: 0, want: ErrInvalidQuantity},
		{name: "own item", principal: f.sellerA.ID, item: f.itemA.ID, quantity: 1, want: ErrOwnSaleItem},
		{name: "missing item", principal: f.buyer.ID, item: 9999, quantity: 1, want: ErrSaleItemNotFound},
		{name: "over stock", principal: f.buyer.ID, item: f.itemB.ID, quantity: 2, want: ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Add(tc.principal, tc.item, tc.quantity); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCartUpdateLine(t *testing.T) {
	f := setupCartService(t)
	line, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := f.svc.UpdateLine(f.sellerB.ID, line.ID, f.itemA.ID, 2); !errors.Is(err, ErrUserMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if _, err := f.svc.UpdateLine(f.buyer.ID, line.ID, f.itemA.ID, 6); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	updated, err := f.svc.UpdateLine(f.buyer.ID, line.ID, f.itemA.ID, 4)
	if err != nil || updated.Quantity != 4 {
		t.Fatalf("update failed: %v %+v", err, updated)
	}

	created, err := f.svc.UpdateLine(f.buyer.ID, 9999, f.itemB.ID, 1)
	if err != nil || created.SaleItemID != f.itemB.ID {
		t.Fatalf("expected fallback add, got %v %+v", err, created)
	}

	if _, err := f.svc.UpdateLine(f.buyer.ID, line.ID, f.itemA.ID, 0); err != nil {
		t.Fatalf("remove by zero failed: %v", err)
	}
	if row, _ := repository.NewCartRepository(f.db).GetByID(line.ID); row != nil {
		t.Fatalf("expected line removed")
	}
}

func TestCartGetGroupsBySeller(t *testing.T) {
	f := setupCartService(t)
	if _, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.svc.Add(f.buyer.ID, f.itemB.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	groups, err := f.svc.GetCart(f.buyer.ID, f.buyer.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(groups) != 2 || groups[0].SellerID != f.sellerA.ID || groups[1].SellerID != f.sellerB.ID {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	if groups[0].Seller == nil || groups[0].Seller.Nickname != "seller-a" {
		t.Fatalf("expected seller summary, got %+v", groups[0].Seller)
	}
	if _, err := f.svc.GetCart(f.sellerA.ID, f.buyer.ID); !errors.Is(err, ErrUserMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestCartSelectAndRemoveSeller(t *testing.T) {
	f := setupCartService(t)
	if _, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := f.svc.SelectAll(f.buyer.ID, f.buyer.ID, false); err != nil {
		t.Fatalf("select all failed: %v", err)
	}
	if err := f.svc.SelectSeller(f.buyer.ID, f.buyer.ID, f.sellerA.ID, true); err != nil {
		t.Fatalf("select seller failed: %v", err)
	}
	if err := f.svc.SelectSeller(f.buyer.ID, f.buyer.ID, f.sellerB.ID, true); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected not found for empty seller group, got %v", err)
	}
	removed, err := f.svc.RemoveSeller(f.buyer.ID, f.buyer.ID, f.sellerA.ID)
	if err != nil || removed != 1 {
		t.Fatalf("remove seller failed: %v removed=%d", err, removed)
	}
}

func TestCartRemoveLineIsIdempotent(t *testing.T) {
	f := setupCartService(t)
	if _, err := f.svc.Add(f.buyer.ID, f.itemA.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := f.svc.RemoveLine(f.buyer.ID, f.itemA.ID); err != nil {
			t.Fatalf("remove line call %d failed: %v", i, err)
		}
	}
	if line, _ := repository.NewCartRepository(f.db).GetByUserAndSaleItem(f.buyer.ID, f.itemA.ID); line != nil {
		t.Fatalf("expected cart line removed")
	}
}
