package models

import "time"

// Seller 卖家扩展信息，与用户一对一
type Seller struct {
	UserID            uint      `gorm:"primarykey;autoIncrement:false" json:"id"` // 用户ID
	MobileNumber      string    `gorm:"size:20;not null" json:"-"`                // 手机号
	BankAccountNumber string    `gorm:"size:20;not null" json:"-"`                // 收款账号
	BankName          string    `gorm:"size:100;not null" json:"-"`               // 开户行
	NationalID        string    `gorm:"size:13;not null" json:"-"`                // 身份证号
	NationalCardFront string    `gorm:"size:255" json:"-"`                        // 身份证正面文件名
	NationalCardBack  string    `gorm:"size:255" json:"-"`                        // 身份证背面文件名
	CreatedAt         time.Time `json:"createdOn"`                                // 创建时间
	UpdatedAt         time.Time `json:"updatedOn"`                                // 更新时间

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (Seller) TableName() string {
	return "sellers"
}
