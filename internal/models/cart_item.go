package models

import (
	"time"
)

// CartItem 购物车行，每个 (用户, 商品) 仅一行
type CartItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                           // 主键
	UserID     uint      `gorm:"not null;uniqueIndex:idx_cart_user_sale_item" json:"userId"`     // 用户ID
	SaleItemID uint      `gorm:"not null;uniqueIndex:idx_cart_user_sale_item" json:"saleItemId"` // 商品ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                       // 数量
	Selected   bool      `gorm:"not null;default:true" json:"selected"`                          // 是否勾选
	CreatedAt  time.Time `gorm:"index" json:"createdOn"`                                         // 创建时间
	UpdatedAt  time.Time `json:"updatedOn"`                                                      // 更新时间

	SaleItem *SaleItem `gorm:"foreignKey:SaleItemID" json:"saleItem,omitempty"`
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
