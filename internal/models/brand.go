package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Brand 品牌表
type Brand struct {
	ID              uint      `gorm:"primarykey" json:"id"`                          // 主键
	Name            *string   `gorm:"uniqueIndex;size:30;not null" json:"name"`      // 品牌名（去空格，空串视为 null）
	WebsiteURL      string    `gorm:"size:40;not null;default:''" json:"websiteUrl"` // 官网
	IsActive        bool      `gorm:"not null" json:"isActive"`                      // 是否启用
	CountryOfOrigin string    `gorm:"size:80;not null;default:''" json:"countryOfOrigin"`
	CreatedAt       time.Time `json:"createdOn"`
	UpdatedAt       time.Time `json:"updatedOn"`
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}

// BeforeSave 规范化字段
func (b *Brand) BeforeSave(tx *gorm.DB) error {
	b.Name = TrimToNil(b.Name)
	b.WebsiteURL = strings.TrimSpace(b.WebsiteURL)
	b.CountryOfOrigin = strings.TrimSpace(b.CountryOfOrigin)
	return nil
}

// NameValue 返回品牌名，未设置时为空串
func (b *Brand) NameValue() string {
	if b == nil || b.Name == nil {
		return ""
	}
	return *b.Name
}

// TrimToNil 去除首尾空白，空串返回 nil
func TrimToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
