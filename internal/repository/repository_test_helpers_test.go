package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bangmod-market/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedBrand(t *testing.T, db *gorm.DB, name string) models.Brand {
	t.Helper()
	brand := models.Brand{Name: &name, IsActive: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	return brand
}

type itemSeed struct {
	brandID  uint
	sellerID *uint
	model    string
	color    string
	price    int
	storage  *int
	quantity int
	created  time.Time
}

func seedItem(t *testing.T, db *gorm.DB, seed itemSeed) models.SaleItem {
	t.Helper()
	item := models.SaleItem{
		BrandID:     seed.brandID,
		SellerID:    seed.sellerID,
		Model:       seed.model,
		Description: seed.model + " description",
		Price:       seed.price,
		StorageGB:   seed.storage,
		Quantity:    seed.quantity,
		CreatedAt:   seed.created,
	}
	if seed.color != "" {
		color := seed.color
		item.Color = &color
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create sale item failed: %v", err)
	}
	return item
}

func intPtr(v int) *int {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func itemIDs(items []models.SaleItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
