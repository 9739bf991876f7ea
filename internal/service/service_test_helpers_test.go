package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
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

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Decode(viper.New())
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	cfg.App.FrontendURL = "https://market.test"
	cfg.JWT.SecretKey = strings.Repeat("s", 48)
	return cfg
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, active bool) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "hash",
		Nickname:     strings.Split(email, "@")[0],
		FullName:     "Test " + strings.Split(email, "@")[0],
		IsActive:     active,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if role == constants.RoleSeller {
		seller := models.Seller{
			UserID:            user.ID,
			MobileNumber:      "0812345678",
			BankAccountNumber: "1234567890",
			BankName:          "Test Bank",
			NationalID:        "1234567890123",
		}
		if err := db.Create(&seller).Error; err != nil {
			t.Fatalf("create seller failed: %v", err)
		}
	}
	return user
}

func seedServiceBrand(t *testing.T, db *gorm.DB, name string) models.Brand {
	t.Helper()
	brand := models.Brand{Name: &name, IsActive: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	return brand
}

type saleItemSeed struct {
	brandID  uint
	sellerID *uint
	model    string
	price    int
	storage  *int
	quantity int
	created  time.Time
}

func seedSaleItem(t *testing.T, db *gorm.DB, seed saleItemSeed) models.SaleItem {
	t.Helper()
	created := seed.created
	if created.IsZero() {
		created = time.Now()
	}
	item := models.SaleItem{
		BrandID:     seed.brandID,
		SellerID:    seed.sellerID,
		Model:       seed.model,
		Description: seed.model + " description",
		Price:       seed.price,
		StorageGB:   seed.storage,
		Quantity:    seed.quantity,
		CreatedAt:   created,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create sale item failed: %v", err)
	}
	return item
}

func reloadQuantity(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var item models.SaleItem
	if err := db.First(&item, id).Error; err != nil {
		t.Fatalf("reload sale item failed: %v", err)
	}
	return item.Quantity
}

func intRef(v int) *int {
	return &v
}

func uintRef(v uint) *uint {
	return &v
}

type dispatchedMail struct {
	kind    string
	to      string
	subject string
	body    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []dispatchedMail
}

func (m *recordingMailer) Dispatch(kind, to, subject, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, dispatchedMail{kind: kind, to: to, subject: subject, body: body})
}

func (m *recordingMailer) mails() []dispatchedMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dispatchedMail, len(m.sent))
	copy(out, m.sent)
	return out
}
