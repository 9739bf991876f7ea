package repository

import (
	"testing"
	"time"

	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderFixture struct {
	db      *gorm.DB
	repo    *GormOrderRepository
	buyer   models.User
	sellerA models.User
	sellerB models.User
	orders  []models.Order
}

func setupOrders(t *testing.T) orderFixture {
	t.Helper()
	db := openTestDB(t)
	buyer := models.User{Email: "buyer@example.com", PasswordHash: "x", Nickname: "buyer"}
	sellerA := models.User{Email: "a@example.com", PasswordHash: "x", Nickname: "PhoneHub", Role: "seller"}
	sellerB := models.User{Email: "b@example.com", PasswordHash: "x", Nickname: "GadgetKing", Role: "seller"}
	for _, u := range []*models.User{&buyer, &sellerA, &sellerB} {
		require.NoError(t, db.Create(u).Error)
	}
	apple := seedBrand(t, db, "Apple")
	samsung := seedBrand(t, db, "Samsung")
	iphone := seedItem(t, db, itemSeed{brandID: apple.ID, sellerID: &sellerA.ID, model: "iPhone 15", price: 500, quantity: 5})
	galaxy := seedItem(t, db, itemSeed{brandID: samsung.ID, sellerID: &sellerB.ID, model: "Galaxy S24", price: 300, quantity: 5})

	repo := NewOrderRepository(db)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	seeds := []struct {
		seller uint
		item   models.SaleItem
		status string
		read   bool
		at     time.Time
	}{
		{sellerA.ID, iphone, constants.OrderStatusCompleted, false, base},
		{sellerA.ID, iphone, constants.OrderStatusCanceled, true, base.Add(time.Hour)},
		{sellerB.ID, galaxy, constants.OrderStatusCompleted, true, base.Add(2 * time.Hour)},
	}
	orders := make([]models.Order, 0, len(seeds))
	for _, seed := range seeds {
		order := models.Order{
			BuyerID:        buyer.ID,
			SellerID:       seed.seller,
			OrderDate:      seed.at,
			OrderStatus:    seed.status,
			IsReadBySeller: seed.read,
		}
		details := []models.OrderDetail{{SaleItemID: uintPtr(seed.item.ID), Price: seed.item.Price, Quantity: 1, Description: seed.item.Model}}
		require.NoError(t, repo.Create(&order, details))
		orders = append(orders, order)
	}
	return orderFixture{db: db, repo: repo, buyer: buyer, sellerA: sellerA, sellerB: sellerB, orders: orders}
}

func orderIDs(orders []models.Order) []uint {
	ids := make([]uint, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	return ids
}

func TestListByBuyerDefaultsToNewestFirst(t *testing.T) {
	f := setupOrders(t)
	orders, total, err := f.repo.ListByBuyer(OrderListFilter{
		PageRequest: PageRequest{Size: 10, Desc: true},
		BuyerID:     f.buyer.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []uint{f.orders[2].ID, f.orders[1].ID, f.orders[0].ID}, orderIDs(orders))
	require.Len(t, orders[0].Details, 1)
	assert.Equal(t, "Galaxy S24", orders[0].Details[0].SaleItem.Model)
	assert.Equal(t, "GadgetKing", orders[0].Seller.Nickname)
}

func TestListByBuyerKeyword(t *testing.T) {
	f := setupOrders(t)
	cases := map[string][]uint{
		"gadget":  {f.orders[2].ID},
		"APPLE":   {f.orders[1].ID, f.orders[0].ID},
		"iphone":  {f.orders[1].ID, f.orders[0].ID},
		"nothing": {},
	}
	for keyword, want := range cases {
		orders, _, err := f.repo.ListByBuyer(OrderListFilter{
			PageRequest: PageRequest{Size: 10, Desc: true},
			BuyerID:     f.buyer.ID,
			Keyword:     keyword,
		})
		require.NoError(t, err)
		assert.Equal(t, want, orderIDs(orders), "keyword %s", keyword)
	}
}

func TestListBySellerTypes(t *testing.T) {
	f := setupOrders(t)
	cases := map[string][]uint{
		"":                                 {f.orders[1].ID, f.orders[0].ID},
		constants.SellerOrderTypeNew:       {f.orders[0].ID},
		constants.SellerOrderTypeCanceled:  {f.orders[1].ID},
		constants.SellerOrderTypeCompleted: {f.orders[0].ID},
	}
	for sellerType, want := range cases {
		orders, _, err := f.repo.ListBySeller(OrderListFilter{
			PageRequest: PageRequest{Size: 10, Desc: true},
			SellerID:    f.sellerA.ID,
			SellerType:  sellerType,
		})
		require.NoError(t, err)
		assert.Equal(t, want, orderIDs(orders), "type %q", sellerType)
	}
}

func TestMarkAsReadSecondCallWritesNothing(t *testing.T) {
	f := setupOrders(t)
	affected, err := f.repo.MarkAsRead(f.orders[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = f.repo.MarkAsRead(f.orders[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	count, err := f.repo.CountUnreadBySeller(f.sellerA.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
