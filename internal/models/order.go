package models

import (
	"time"
)

// Order 订单表，明细创建后不可修改，仅已读标记可变
type Order struct {
	ID              uint       `gorm:"primarykey" json:"id"`                              // 主键
	BuyerID         uint       `gorm:"index;not null" json:"buyerId"`                     // 买家用户ID
	SellerID        uint       `gorm:"index;not null" json:"sellerId"`                    // 卖家用户ID
	OrderDate       time.Time  `gorm:"index;not null" json:"orderDate"`                   // 下单时间
	PaymentDate     *time.Time `json:"paymentDate"`                                       // 支付时间（服务端写入）
	ShippingAddress string     `gorm:"size:500;not null;default:''" json:"shippingAddress"` // 收货地址
	OrderNote       string     `gorm:"size:500;not null;default:''" json:"orderNote"`     // 备注
	IsReadBySeller  bool       `gorm:"not null;default:false;index" json:"isReadBySeller"` // 卖家已读
	OrderStatus     string     `gorm:"size:20;not null;index" json:"orderStatus"`         // COMPLETED / CANCELED
	CreatedAt       time.Time  `json:"createdOn"`
	UpdatedAt       time.Time  `json:"updatedOn"`

	Buyer   *User         `gorm:"foreignKey:BuyerID" json:"-"`
	Seller  *User         `gorm:"foreignKey:SellerID" json:"-"`
	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderDetail 订单明细，价格、数量、描述为下单时快照
type OrderDetail struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"index;not null" json:"orderId"`
	SaleItemID  *uint     `gorm:"index" json:"saleItemId"` // 商品删除后置空
	Price       int       `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time `json:"createdOn"`

	SaleItem *SaleItem `gorm:"foreignKey:SaleItemID" json:"-"`
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}
