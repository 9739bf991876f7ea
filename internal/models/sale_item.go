package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleItem 在售商品表
type SaleItem struct {
	ID             uint                `gorm:"primarykey" json:"id"`                                // 主键
	BrandID        uint                `gorm:"index;not null" json:"brandId"`                       // 品牌ID
	SellerID       *uint               `gorm:"index" json:"sellerId"`                               // 卖家ID（可为空）
	Model          string              `gorm:"size:60;not null" json:"model"`                       // 型号
	Description    string              `gorm:"type:text;not null" json:"description"`               // 描述
	Price          int                 `gorm:"not null" json:"price"`                               // 价格（最小货币单位）
	RAMGB          *int                `gorm:"column:ram_gb" json:"ramGb"`                          // 内存
	ScreenSizeInch decimal.NullDecimal `gorm:"type:decimal(4,2)" json:"screenSizeInch"`             // 屏幕尺寸
	StorageGB      *int                `gorm:"column:storage_gb;index" json:"storageGb"`            // 存储容量（可为空）
	Color          *string             `gorm:"size:60" json:"color"`                                // 颜色
	Quantity       int                 `gorm:"not null;check:quantity >= 0" json:"quantity"` // 库存，不可为负
	CreatedAt      time.Time           `gorm:"index" json:"createdOn"`                              // 创建时间（服务端写入）
	UpdatedAt      time.Time           `json:"updatedOn"`                                           // 更新时间（服务端写入）

	Brand  *Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Seller *User           `gorm:"foreignKey:SellerID" json:"-"`
	Images []SaleItemImage `gorm:"foreignKey:SaleItemID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName 指定表名
func (SaleItem) TableName() string {
	return "sale_items"
}

// BeforeSave 规范化字段，非法库存回落为 1
func (s *SaleItem) BeforeSave(tx *gorm.DB) error {
	s.Model = strings.TrimSpace(s.Model)
	s.Description = strings.TrimSpace(s.Description)
	s.Color = TrimToNil(s.Color)
	if s.Quantity < 0 {
		s.Quantity = 1
	}
	return nil
}

// SaleItemImage 商品图片表
type SaleItemImage struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	SaleItemID     uint      `gorm:"index;not null" json:"-"`
	FileName       string    `gorm:"size:255;not null" json:"fileName"`
	ImageViewOrder int       `gorm:"not null" json:"imageViewOrder"` // 从 1 开始
	CreatedAt      time.Time `json:"createdOn"`
	UpdatedAt      time.Time `json:"updatedOn"`
}

// TableName 指定表名
func (SaleItemImage) TableName() string {
	return "sale_item_images"
}
