package repository

import (
	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
)

// SaleItemImageRepository 商品图片数据访问接口
type SaleItemImageRepository interface {
	ListBySaleItem(saleItemID uint) ([]models.SaleItemImage, error)
	Create(image *models.SaleItemImage) error
	UpdateOrder(id uint, order int) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormSaleItemImageRepository
}

// GormSaleItemImageRepository GORM 实现
type GormSaleItemImageRepository struct {
	db *gorm.DB
}

// NewSaleItemImageRepository 创建商品图片仓库
func NewSaleItemImageRepository(db *gorm.DB) *GormSaleItemImageRepository {
	return &GormSaleItemImageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSaleItemImageRepository) WithTx(tx *gorm.DB) *GormSaleItemImageRepository {
	if tx == nil {
		return r
	}
	return &GormSaleItemImageRepository{db: tx}
}

// ListBySaleItem 按展示顺序获取商品图片
func (r *GormSaleItemImageRepository) ListBySaleItem(saleItemID uint) ([]models.SaleItemImage, error) {
	var images []models.SaleItemImage
	if err := r.db.Where("sale_item_id = ?", saleItemID).Order("image_view_order asc, id asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Create 新增图片
func (r *GormSaleItemImageRepository) Create(image *models.SaleItemImage) error {
	return r.db.Create(image).Error
}

// UpdateOrder 调整图片顺序
func (r *GormSaleItemImageRepository) UpdateOrder(id uint, order int) error {
	return r.db.Model(&models.SaleItemImage{}).Where("id = ?", id).Update("image_view_order", order).Error
}

// Delete 删除图片记录
func (r *GormSaleItemImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.SaleItemImage{}, id).Error
}
