package repository

import (
	"errors"
	"time"

	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
)

var saleItemSort = sortColumns{
	columns: map[string]string{
		"createdOn":      "sale_items.created_at",
		"updatedOn":      "sale_items.updated_at",
		"price":          "sale_items.price",
		"model":          "sale_items.model",
		"ramGb":          "sale_items.ram_gb",
		"screenSizeInch": "sale_items.screen_size_inch",
		"storageGb":      "sale_items.storage_gb",
		"quantity":       "sale_items.quantity",
		"id":             "sale_items.id",
	},
	defaultField: "createdOn",
	tieBreaker:   "sale_items.id",
	tieDesc:      false,
}

// ResolveSaleItemSortField 返回白名单内的商品排序字段，未知字段回落为 createdOn
func ResolveSaleItemSortField(field string) string {
	return saleItemSort.resolve(field)
}

// SaleItemRepository 商品数据访问接口
type SaleItemRepository interface {
	GetByID(id uint) (*models.SaleItem, error)
	GetWithImages(id uint) (*models.SaleItem, error)
	ListAll() ([]models.SaleItem, error)
	Page(query SaleItemPageQuery) ([]models.SaleItem, int64, error)
	Create(item *models.SaleItem) error
	Update(item *models.SaleItem) error
	Delete(id uint) error
	DecrementStock(id uint, quantity int) (int64, error)
	DistinctStorages() ([]*int, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) SaleItemRepository
}

// GormSaleItemRepository GORM 实现
type GormSaleItemRepository struct {
	db *gorm.DB
}

// NewSaleItemRepository 创建商品仓库
func NewSaleItemRepository(db *gorm.DB) *GormSaleItemRepository {
	return &GormSaleItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSaleItemRepository) WithTx(tx *gorm.DB) SaleItemRepository {
	if tx == nil {
		return r
	}
	return &GormSaleItemRepository{db: tx}
}

// Transaction 执行事务
func (r *GormSaleItemRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取商品（含品牌）
func (r *GormSaleItemRepository) GetByID(id uint) (*models.SaleItem, error) {
	var item models.SaleItem
	if err := r.db.Preload("Brand").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetWithImages 获取商品及其图片（按展示顺序）
func (r *GormSaleItemRepository) GetWithImages(id uint) (*models.SaleItem, error) {
	var item models.SaleItem
	err := r.db.Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_view_order asc")
		}).
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListAll 全部商品，按创建时间与 id 升序
func (r *GormSaleItemRepository) ListAll() ([]models.SaleItem, error) {
	var items []models.SaleItem
	query := saleItemSort.apply(r.db.Preload("Brand"), "createdOn", false)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Page 按筛选条件分页查询商品
func (r *GormSaleItemRepository) Page(q SaleItemPageQuery) ([]models.SaleItem, int64, error) {
	query := applyCatalogFilters(r.db, r.db.Model(&models.SaleItem{}), q.Filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = saleItemSort.apply(query, q.SortField, q.Desc)
	query = applyPagination(query, q.Page, q.Size)

	var items []models.SaleItem
	err := query.Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_view_order asc")
		}).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create 创建商品
func (r *GormSaleItemRepository) Create(item *models.SaleItem) error {
	return r.db.Omit("Brand", "Seller", "Images").Create(item).Error
}

// Update 更新商品可编辑字段，创建时间不可修改
func (r *GormSaleItemRepository) Update(item *models.SaleItem) error {
	return r.db.Model(item).
		Select("brand_id", "model", "description", "price", "ram_gb", "screen_size_inch", "storage_gb", "color", "quantity", "updated_at").
		Updates(item).Error
}

// Delete 删除商品，订单明细引用置空，级联删除购物车行与图片
func (r *GormSaleItemRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderDetail{}).Where("sale_item_id = ?", id).Update("sale_item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_item_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_item_id = ?", id).Delete(&models.SaleItemImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SaleItem{}, id).Error
	})
}

// DecrementStock 条件扣减库存，库存不足时影响行数为 0
func (r *GormSaleItemRepository) DecrementStock(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.SaleItem{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumns(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DistinctStorages 去重的存储容量，升序，未指定容量排在最后
func (r *GormSaleItemRepository) DistinctStorages() ([]*int, error) {
	var values []*int
	err := r.db.Model(&models.SaleItem{}).
		Distinct("storage_gb").
		Order("storage_gb ASC NULLS LAST").
		Pluck("storage_gb", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
