package repository

import (
	"errors"

	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
)

// SellerRepository 卖家数据访问接口
type SellerRepository interface {
	GetByUserID(userID uint) (*models.Seller, error)
}

// GormSellerRepository GORM 实现
type GormSellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository 创建卖家仓库
func NewSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// GetByUserID 获取卖家信息（含用户）
func (r *GormSellerRepository) GetByUserID(userID uint) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.Preload("User").First(&seller, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}
