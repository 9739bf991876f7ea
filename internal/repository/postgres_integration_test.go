//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bangmod-market/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	all := models.AllModels()
	reversed := make([]interface{}, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		reversed = append(reversed, all[i])
	}
	_ = db.Migrator().DropTable(reversed...)
	if err := db.AutoMigrate(all...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(reversed...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresCatalogFiltersAndStorages(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	apple := seedBrand(t, db, "Apple")
	samsung := seedBrand(t, db, "Samsung")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	pro := seedItem(t, db, itemSeed{brandID: apple.ID, model: "iPhone 15 Pro", color: "Natural", price: 41900, storage: intPtr(256), quantity: 2, created: base})
	seedItem(t, db, itemSeed{brandID: apple.ID, model: "iPhone SE", price: 15900, quantity: 1, created: base.Add(time.Hour)})
	seedItem(t, db, itemSeed{brandID: samsung.ID, model: "Galaxy S24", price: 29900, storage: intPtr(128), quantity: 4, created: base.Add(2 * time.Hour)})

	repo := NewSaleItemRepository(db)
	items, total, err := repo.Page(SaleItemPageQuery{
		PageRequest: PageRequest{Page: 0, Size: 10, SortField: "createdOn"},
		Filters: []CatalogFilter{
			BrandNamesFilter([]string{"APPLE"}),
			KeywordFilter("PRO"),
			PriceRangeFilter(intPtr(50000), intPtr(20000)),
		},
	})
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != pro.ID {
		t.Fatalf("unexpected filter result total=%d ids=%v", total, itemIDs(items))
	}

	storages, err := repo.DistinctStorages()
	if err != nil {
		t.Fatalf("distinct storages failed: %v", err)
	}
	if len(storages) != 3 || storages[0] == nil || *storages[0] != 128 || storages[2] != nil {
		t.Fatalf("storages should be ascending with null last, got %v", storages)
	}
}

func TestPostgresConditionalStockDecrement(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	brand := seedBrand(t, db, "Google")
	item := seedItem(t, db, itemSeed{brandID: brand.ID, model: "Pixel 8", price: 25900, quantity: 3, created: time.Now()})
	if err := db.Model(&models.SaleItem{}).Where("id = ?", item.ID).
		Update("screen_size_inch", decimal.NewNullDecimal(decimal.RequireFromString("6.20"))).Error; err != nil {
		t.Fatalf("set screen size failed: %v", err)
	}

	repo := NewSaleItemRepository(db)
	if affected, err := repo.DecrementStock(item.ID, 2); err != nil || affected != 1 {
		t.Fatalf("first decrement want 1 row got %d (%v)", affected, err)
	}
	if affected, err := repo.DecrementStock(item.ID, 2); err != nil || affected != 0 {
		t.Fatalf("oversell decrement want 0 rows got %d (%v)", affected, err)
	}

	stored, err := repo.GetByID(item.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if stored.Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", stored.Quantity)
	}
	if !stored.ScreenSizeInch.Valid || stored.ScreenSizeInch.Decimal.String() != "6.2" {
		t.Fatalf("unexpected screen size %v", stored.ScreenSizeInch)
	}
}
