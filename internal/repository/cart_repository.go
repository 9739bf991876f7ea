package repository

import (
	"errors"

	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByID(id uint) (*models.CartItem, error)
	GetByUserAndSaleItem(userID, saleItemID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	Delete(id uint) error
	DeleteByUserAndSaleItem(userID, saleItemID uint) (int64, error)
	DeleteByUserAndSeller(userID, sellerID uint) (int64, error)
	UpdateSelectedByUser(userID uint, selected bool) (int64, error)
	UpdateSelectedByUserAndSeller(userID, sellerID uint, selected bool) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车行（含商品、品牌、卖家）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("SaleItem").
		Preload("SaleItem.Brand").
		Preload("SaleItem.Seller").
		Preload("SaleItem.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_view_order asc")
		}).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取购物车行
func (r *GormCartRepository) GetByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByUserAndSaleItem 获取用户对某商品的购物车行
func (r *GormCartRepository) GetByUserAndSaleItem(userID, saleItemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND sale_item_id = ?", userID, saleItemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 新增购物车行
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Omit("SaleItem").Create(item).Error
}

// UpdateQuantity 更新数量
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

// Delete 删除购物车行
func (r *GormCartRepository) Delete(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// DeleteByUserAndSaleItem 删除 (用户, 商品) 对应的购物车行，不存在时不报错
func (r *GormCartRepository) DeleteByUserAndSaleItem(userID, saleItemID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND sale_item_id = ?", userID, saleItemID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// DeleteByUserAndSeller 删除用户购物车中某卖家的全部商品
func (r *GormCartRepository) DeleteByUserAndSeller(userID, sellerID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND sale_item_id IN (?)", userID, r.sellerItemIDs(sellerID)).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// UpdateSelectedByUser 批量设置勾选状态
func (r *GormCartRepository) UpdateSelectedByUser(userID uint, selected bool) (int64, error) {
	result := r.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Update("selected", selected)
	return result.RowsAffected, result.Error
}

// UpdateSelectedByUserAndSeller 设置某卖家商品的勾选状态
func (r *GormCartRepository) UpdateSelectedByUserAndSeller(userID, sellerID uint, selected bool) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND sale_item_id IN (?)", userID, r.sellerItemIDs(sellerID)).
		Update("selected", selected)
	return result.RowsAffected, result.Error
}

func (r *GormCartRepository) sellerItemIDs(sellerID uint) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true}).
		Model(&models.SaleItem{}).
		Select("id").
		Where("seller_id = ?", sellerID)
}
