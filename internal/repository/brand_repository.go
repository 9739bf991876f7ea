package repository

import (
	"errors"
	"strings"

	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口
type BrandRepository interface {
	List() ([]models.Brand, error)
	GetByID(id uint) (*models.Brand, error)
	ExistsByName(name string, excludeID uint) (bool, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(id uint) error
	CountSaleItems(brandID uint) (int64, error)
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// List 全部品牌，按名称排序
func (r *GormBrandRepository) List() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Order("name asc, id asc").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// GetByID 根据 ID 获取品牌
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// ExistsByName 判断品牌名是否已存在（忽略大小写），excludeID 用于更新时排除自身
func (r *GormBrandRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	query := r.db.Model(&models.Brand{}).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建品牌
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update 更新品牌
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete 删除品牌
func (r *GormBrandRepository) Delete(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}

// CountSaleItems 统计品牌下商品数
func (r *GormBrandRepository) CountSaleItems(brandID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.SaleItem{}).Where("brand_id = ?", brandID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
