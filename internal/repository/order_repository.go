package repository

import (
	"errors"

	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderSort = sortColumns{
	columns: map[string]string{
		"orderDate":   "orders.order_date",
		"paymentDate": "orders.payment_date",
		"orderStatus": "orders.order_status",
		"id":          "orders.id",
	},
	defaultField: "orderDate",
	tieBreaker:   "orders.id",
	tieDesc:      true,
}

// ResolveOrderSortField 返回白名单内的订单排序字段，未知字段回落为 orderDate
func ResolveOrderSortField(field string) string {
	return orderSort.resolve(field)
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, details []models.OrderDetail) error
	GetByID(id uint) (*models.Order, error)
	ListByBuyer(filter OrderListFilter) ([]models.Order, int64, error)
	ListBySeller(filter OrderListFilter) ([]models.Order, int64, error)
	MarkAsRead(id uint) (int64, error)
	CountUnreadBySeller(sellerID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *GormOrderRepository) withAggregate(query *gorm.DB) *gorm.DB {
	return query.Preload("Buyer").
		Preload("Seller").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Details.SaleItem").
		Preload("Details.SaleItem.Brand").
		Preload("Details.SaleItem.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_view_order asc")
		})
}

// Create 创建订单与明细
func (r *GormOrderRepository) Create(order *models.Order, details []models.OrderDetail) error {
	if err := r.db.Omit(clause.Associations).Create(order).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].OrderID = order.ID
	}
	if len(details) > 0 {
		if err := r.db.Omit(clause.Associations).Create(&details).Error; err != nil {
			return err
		}
	}
	order.Details = details
	return nil
}

// GetByID 获取订单聚合（买家、卖家、明细）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withAggregate(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByBuyer 买家订单列表，关键字匹配卖家昵称、品牌名、商品型号
func (r *GormOrderRepository) ListByBuyer(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("orders.buyer_id = ?", filter.BuyerID)
	if filter.Keyword != "" {
		query = r.applyKeyword(query, filter.Keyword)
	}
	return r.page(query, filter.PageRequest)
}

// ListBySeller 卖家订单列表，按类型筛选未读、已取消、已完成
func (r *GormOrderRepository) ListBySeller(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("orders.seller_id = ?", filter.SellerID)
	switch filter.SellerType {
	case constants.SellerOrderTypeNew:
		query = query.Where("orders.is_read_by_seller = ?", false)
	case constants.SellerOrderTypeCanceled:
		query = query.Where("orders.order_status = ?", constants.OrderStatusCanceled)
	case constants.SellerOrderTypeCompleted:
		query = query.Where("orders.order_status = ?", constants.OrderStatusCompleted)
	}
	return r.page(query, filter.PageRequest)
}

// MarkAsRead 标记卖家已读，已读订单不再写入
func (r *GormOrderRepository) MarkAsRead(id uint) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND is_read_by_seller = ?", id, false).
		Update("is_read_by_seller", true)
	return result.RowsAffected, result.Error
}

// CountUnreadBySeller 卖家未读订单数
func (r *GormOrderRepository) CountUnreadBySeller(sellerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("seller_id = ? AND is_read_by_seller = ?", sellerID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) applyKeyword(query *gorm.DB, keyword string) *gorm.DB {
	like := containsPattern(keyword)
	session := r.db.Session(&gorm.Session{NewDB: true})

	itemCondition, itemArgs := buildLikeCondition(r.db, []string{"sale_items.model", "brands.name"})
	matchedOrders := session.Model(&models.OrderDetail{}).
		Select("order_details.order_id").
		Joins("JOIN sale_items ON sale_items.id = order_details.sale_item_id").
		Joins("JOIN brands ON brands.id = sale_items.brand_id").
		Where(itemCondition, repeatLikeArgs(like, itemArgs)...)

	sellerCondition, sellerArgs := buildLikeCondition(r.db, []string{"users.nickname"})
	matchedSellers := session.Model(&models.User{}).
		Select("users.id").
		Where(sellerCondition, repeatLikeArgs(like, sellerArgs)...)

	return query.Where(
		session.Where("orders.id IN (?)", matchedOrders).Or("orders.seller_id IN (?)", matchedSellers),
	)
}

func (r *GormOrderRepository) page(query *gorm.DB, req PageRequest) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = orderSort.apply(query, req.SortField, req.Desc)
	query = applyPagination(query, req.Page, req.Size)

	var orders []models.Order
	if err := r.withAggregate(query).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
