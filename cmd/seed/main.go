package main

import (
	"flag"
	"log"
	"strings"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedBrand struct {
	Name    string
	Website string
	Country string
}

type seedItem struct {
	Brand       string
	Model       string
	Description string
	Price       int
	RAMGB       int
	StorageGB   int // 0 表示未指定
	Screen      string
	Color       string
	Quantity    int
}

var brands = []seedBrand{
	{Name: "Apple", Website: "https://www.apple.com", Country: "United States"},
	{Name: "Samsung", Website: "https://www.samsung.com", Country: "South Korea"},
	{Name: "Xiaomi", Website: "https://www.mi.com", Country: "China"},
	{Name: "Google", Website: "https://store.google.com", Country: "United States"},
}

var items = []seedItem{
	{Brand: "Apple", Model: "iPhone 15", Description: "Titanium frame, A16 chip", Price: 32900, RAMGB: 6, StorageGB: 128, Screen: "6.1", Color: "Black", Quantity: 5},
	{Brand: "Apple", Model: "iPhone 15 Pro", Description: "A17 Pro, triple camera", Price: 41900, RAMGB: 8, StorageGB: 256, Screen: "6.1", Color: "Natural Titanium", Quantity: 3},
	{Brand: "Samsung", Model: "Galaxy S24", Description: "Galaxy AI, 120Hz display", Price: 29900, RAMGB: 8, StorageGB: 256, Screen: "6.2", Color: "Violet", Quantity: 4},
	{Brand: "Samsung", Model: "Galaxy A55", Description: "Mid-range, IP67", Price: 13900, RAMGB: 8, StorageGB: 128, Screen: "6.6", Color: "Navy", Quantity: 10},
	{Brand: "Xiaomi", Model: "Redmi Note 13", Description: "Budget AMOLED phone", Price: 7990, RAMGB: 8, StorageGB: 0, Screen: "6.67", Color: "Green", Quantity: 8},
	{Brand: "Google", Model: "Pixel 8", Description: "Tensor G3, 7 years of updates", Price: 25900, RAMGB: 8, StorageGB: 128, Screen: "6.2", Color: "Hazel", Quantity: 2},
}

func main() {
	password := flag.String("password", "Passw0rd!", "种子账号的登录密码")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash password: %v", err)
	}

	brandIDs := seedBrands(stdLog)
	seedUser(stdLog, "buyer@example.com", "Demo Buyer", constants.RoleBuyer, string(hash), nil)
	seller := seedUser(stdLog, "seller@example.com", "Demo Seller", constants.RoleSeller, string(hash), &models.Seller{
		MobileNumber:      "0812345678",
		BankAccountNumber: "1234567890",
		BankName:          "Demo Bank",
		NationalID:        "1234567890123",
	})
	if seller == nil {
		stdLog.Fatalf("Seller account unavailable, skip sale items")
	}
	seedSaleItems(stdLog, brandIDs, seller.ID)
	stdLog.Printf("Seed finished")
}

func seedBrands(stdLog *log.Logger) map[string]uint {
	ids := make(map[string]uint, len(brands))
	for _, b := range brands {
		name := b.Name
		var existing models.Brand
		if err := models.DB.Where("LOWER(name) = ?", strings.ToLower(name)).First(&existing).Error; err == nil {
			stdLog.Printf("Brand already exists: %s", name)
			ids[name] = existing.ID
			continue
		}
		brand := models.Brand{Name: &name, WebsiteURL: b.Website, CountryOfOrigin: b.Country, IsActive: true}
		if err := models.DB.Create(&brand).Error; err != nil {
			stdLog.Printf("Failed to create brand %s: %v", name, err)
			continue
		}
		stdLog.Printf("Created brand: %s", name)
		ids[name] = brand.ID
	}
	return ids
}

func seedUser(stdLog *log.Logger, email, nickname, role, hash string, seller *models.Seller) *models.User {
	var existing models.User
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		stdLog.Printf("User already exists: %s", email)
		return &existing
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		FullName:     nickname,
		IsActive:     true,
		Role:         role,
	}
	if role == constants.RoleBuyer {
		user.ShippingAddress = "99 Demo Road, Bangkok 10110"
	}
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("Failed to create user %s: %v", email, err)
		return nil
	}
	if seller != nil {
		seller.UserID = user.ID
		if err := models.DB.Create(seller).Error; err != nil {
			stdLog.Printf("Failed to create seller profile %s: %v", email, err)
		}
	}
	stdLog.Printf("Created user: %s (%s)", email, role)
	return &user
}

func seedSaleItems(stdLog *log.Logger, brandIDs map[string]uint, sellerID uint) {
	for _, it := range items {
		brandID, ok := brandIDs[it.Brand]
		if !ok {
			stdLog.Printf("Brand missing for %s, skipped", it.Model)
			continue
		}
		var count int64
		models.DB.Model(&models.SaleItem{}).Where("model = ? AND seller_id = ?", it.Model, sellerID).Count(&count)
		if count > 0 {
			stdLog.Printf("Sale item already exists: %s", it.Model)
			continue
		}
		ram := it.RAMGB
		color := it.Color
		item := models.SaleItem{
			BrandID:        brandID,
			SellerID:       &sellerID,
			Model:          it.Model,
			Description:    it.Description,
			Price:          it.Price,
			RAMGB:          &ram,
			ScreenSizeInch: decimal.NewNullDecimal(decimal.RequireFromString(it.Screen)),
			Color:          &color,
			Quantity:       it.Quantity,
		}
		if it.StorageGB > 0 {
			storage := it.StorageGB
			item.StorageGB = &storage
		}
		if err := models.DB.Create(&item).Error; err != nil {
			stdLog.Printf("Failed to create sale item %s: %v", it.Model, err)
			continue
		}
		stdLog.Printf("Created sale item: %s", it.Model)
	}
}
