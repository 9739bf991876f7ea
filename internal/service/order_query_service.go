package service

import (
	"strings"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"
)

// OrderListQuery 订单列表参数
type OrderListQuery struct {
	Page          int
	Size          int
	SortField     string
	SortDirection string
	Keyword       string
	Type          string
}

// OrderPage 订单分页结果
type OrderPage struct {
	Orders []models.Order
	Total  int64
	Page   int
	Size   int
	Sort   string
}

// OrderQueryService 订单查询与已读标记
type OrderQueryService struct {
	cfg       *config.Config
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewOrderQueryService 创建订单查询服务
func NewOrderQueryService(cfg *config.Config, orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderQueryService {
	return &OrderQueryService{cfg: cfg, orderRepo: orderRepo, userRepo: userRepo}
}

// normalizeOrderPageRequest 订单默认按下单时间倒序
func (s *OrderQueryService) normalizeOrderPageRequest(q OrderListQuery) repository.PageRequest {
	direction := q.SortDirection
	if strings.TrimSpace(direction) == "" {
		direction = constants.SortDirectionDesc
	}
	return normalizePageRequest(q.Page, q.Size, q.SortField, direction, s.cfg.Catalog, repository.ResolveOrderSortField)
}

// ListByBuyer 买家订单列表
func (s *OrderQueryService) ListByBuyer(principalID, userID uint, q OrderListQuery) (*OrderPage, error) {
	if principalID != userID {
		return nil, ErrUserMismatch
	}
	req := s.normalizeOrderPageRequest(q)
	orders, total, err := s.orderRepo.ListByBuyer(repository.OrderListFilter{
		PageRequest: req,
		BuyerID:     userID,
		Keyword:     strings.TrimSpace(q.Keyword),
	})
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Total: total, Page: req.Page, Size: req.Size, Sort: describeSort(req, true)}, nil
}

// ListBySeller 卖家订单列表，Type 为 newOrder / canceled / completed 时过滤
func (s *OrderQueryService) ListBySeller(principalID, sellerID uint, q OrderListQuery) (*OrderPage, error) {
	if principalID != sellerID {
		return nil, ErrUserMismatch
	}
	if err := s.ensureSeller(sellerID); err != nil {
		return nil, err
	}
	sellerType := ""
	switch strings.TrimSpace(q.Type) {
	case constants.SellerOrderTypeNew, constants.SellerOrderTypeCanceled, constants.SellerOrderTypeCompleted:
		sellerType = strings.TrimSpace(q.Type)
	}
	req := s.normalizeOrderPageRequest(q)
	orders, total, err := s.orderRepo.ListBySeller(repository.OrderListFilter{
		PageRequest: req,
		SellerID:    sellerID,
		SellerType:  sellerType,
	})
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Total: total, Page: req.Page, Size: req.Size, Sort: describeSort(req, true)}, nil
}

func (s *OrderQueryService) ensureSeller(sellerID uint) error {
	seller, err := s.userRepo.GetByID(sellerID)
	if err != nil {
		return err
	}
	if seller == nil {
		return ErrSellerNotFound
	}
	if !seller.IsSeller() {
		return ErrNotSeller
	}
	return nil
}

// GetOrder 买家或卖家查看订单
func (s *OrderQueryService) GetOrder(principalID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.BuyerID != principalID && order.SellerID != principalID {
		return nil, ErrForbidden
	}
	return order, nil
}

// GetSellerOrder 卖家查看自己的订单
func (s *OrderQueryService) GetSellerOrder(principalID, sellerID, orderID uint) (*models.Order, error) {
	if principalID != sellerID {
		return nil, ErrUserMismatch
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.SellerID != sellerID {
		return nil, ErrUserMismatch
	}
	return order, nil
}

// MarkAsRead 卖家标记已读，重复调用不写库也不报错
func (s *OrderQueryService) MarkAsRead(principalID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.SellerID != principalID {
		return nil, ErrUserMismatch
	}
	if order.IsReadBySeller {
		return order, nil
	}
	if _, err := s.orderRepo.MarkAsRead(orderID); err != nil {
		return nil, err
	}
	order.IsReadBySeller = true
	return order, nil
}

// CountNew 卖家未读订单数
func (s *OrderQueryService) CountNew(principalID uint) (int64, error) {
	if err := s.ensureSeller(principalID); err != nil {
		return 0, err
	}
	return s.orderRepo.CountUnreadBySeller(principalID)
}
