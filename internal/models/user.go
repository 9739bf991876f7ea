package models

import (
	"time"
)

// User 用户表
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                             // 主键
	Email              string     `gorm:"uniqueIndex;size:100;not null" json:"email"`       // 邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                // 密码哈希（不返回给前端）
	Nickname           string     `gorm:"size:100;not null;default:''" json:"nickname"`     // 昵称
	FullName           string     `gorm:"size:100;not null;default:''" json:"fullName"`     // 姓名
	ShippingAddress    string     `gorm:"size:500;not null;default:''" json:"-"`            // 收货地址
	IsActive           bool       `gorm:"not null;default:false" json:"isActive"`           // 邮箱验证后激活
	Role               string     `gorm:"size:20;not null;default:'buyer'" json:"role"`     // buyer / seller
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                      // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`                                   // 该时间点前签发的 Token 失效
	CreatedAt          time.Time  `gorm:"index" json:"createdOn"`                           // 创建时间
	UpdatedAt          time.Time  `json:"updatedOn"`                                        // 更新时间

	Seller *Seller `gorm:"foreignKey:UserID" json:"-"` // 卖家扩展信息
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsSeller 是否为卖家账号
func (u *User) IsSeller() bool {
	return u != nil && u.Role == "seller"
}
