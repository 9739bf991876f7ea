package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"

	"gorm.io/gorm"
)

// PlaceOrderItem 下单明细
type PlaceOrderItem struct {
	SaleItemID  uint
	Quantity    int
	Price       *int
	Description string
}

// PlaceOrderInput 单个卖家的下单请求
type PlaceOrderInput struct {
	SellerID        uint
	ShippingAddress string
	OrderNote       string
	Items           []PlaceOrderItem
}

// OrderService 下单与库存扣减
type OrderService struct {
	cfg       *config.Config
	orderRepo repository.OrderRepository
	itemRepo  repository.SaleItemRepository
	userRepo  repository.UserRepository
	cart      *CartService
	mailer    Mailer
	now       func() time.Time
}

// NewOrderService 创建下单服务
func NewOrderService(cfg *config.Config, orderRepo repository.OrderRepository, itemRepo repository.SaleItemRepository, userRepo repository.UserRepository, cart *CartService, mailer Mailer) *OrderService {
	return &OrderService{
		cfg:       cfg,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		cart:      cart,
		mailer:    mailer,
		now:       time.Now,
	}
}

// PlaceOrders 逐个处理下单请求，每个订单一个事务。
// 提交前先确认整批引用的卖家与商品都存在；之后仍有订单失败时，
// 连同已提交的订单一起返回错误。
func (s *OrderService) PlaceOrders(principalID uint, inputs []PlaceOrderInput, locale string) ([]*models.Order, error) {
	if len(inputs) == 0 {
		return nil, ErrInvalidOrderItems
	}
	for _, input := range inputs {
		if err := validatePlaceOrderInput(input); err != nil {
			return nil, err
		}
	}
	buyer, err := s.userRepo.GetByID(principalID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, ErrUserNotFound
	}
	if !buyer.IsActive {
		return nil, ErrAccountNotActive
	}
	if err := s.resolveBatch(inputs); err != nil {
		return nil, err
	}

	placed := make([]*models.Order, 0, len(inputs))
	for _, input := range inputs {
		order, err := s.placeOrder(buyer, input)
		if err != nil {
			return placed, err
		}
		full, err := s.orderRepo.GetByID(order.ID)
		if err != nil {
			return placed, err
		}
		if full == nil {
			return placed, ErrOrderNotFound
		}
		s.notifySeller(full, locale)
		placed = append(placed, full)
	}
	return placed, nil
}

// resolveBatch 确认整批订单引用的卖家与商品均存在
func (s *OrderService) resolveBatch(inputs []PlaceOrderInput) error {
	sellers := make(map[uint]struct{}, len(inputs))
	items := make(map[uint]struct{})
	for _, input := range inputs {
		if _, ok := sellers[input.SellerID]; !ok {
			seller, err := s.userRepo.GetWithSeller(input.SellerID)
			if err != nil {
				return err
			}
			if !isSellerAccount(seller) {
				return ErrSellerNotFound
			}
			sellers[input.SellerID] = struct{}{}
		}
		for _, line := range input.Items {
			if _, ok := items[line.SaleItemID]; ok {
				continue
			}
			item, err := s.itemRepo.GetByID(line.SaleItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: %d", ErrSaleItemNotFound, line.SaleItemID)
			}
			items[line.SaleItemID] = struct{}{}
		}
	}
	return nil
}

// isSellerAccount 卖家角色且存在卖家扩展信息
func isSellerAccount(user *models.User) bool {
	return user.IsSeller() && user.Seller != nil
}

func validatePlaceOrderInput(input PlaceOrderInput) error {
	if input.SellerID == 0 || len(input.Items) == 0 {
		return ErrInvalidOrderItems
	}
	for _, line := range input.Items {
		if line.SaleItemID == 0 {
			return ErrInvalidOrderItems
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if line.Price != nil && *line.Price < 0 {
			return ErrInvalidOrderItems
		}
	}
	return nil
}

func (s *OrderService) placeOrder(buyer *models.User, input PlaceOrderInput) (*models.Order, error) {
	order := &models.Order{}
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		itemRepo := s.itemRepo.WithTx(tx)
		cart := s.cart.WithTx(tx)

		seller, err := userRepo.GetWithSeller(input.SellerID)
		if err != nil {
			return err
		}
		if !isSellerAccount(seller) {
			return ErrSellerNotFound
		}

		// 同一商品的多行按合计数量校验库存
		requested := make(map[uint]int, len(input.Items))
		for _, line := range input.Items {
			requested[line.SaleItemID] += line.Quantity
		}

		items := make([]*models.SaleItem, len(input.Items))
		rejected := false
		reason := ""
		for i, line := range input.Items {
			item, err := itemRepo.GetByID(line.SaleItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: %d", ErrSaleItemNotFound, line.SaleItemID)
			}
			items[i] = item
			if item.Quantity < requested[line.SaleItemID] && !rejected {
				rejected = true
				reason = "insufficient_stock"
			}
		}
		if buyer.ID == seller.ID {
			rejected = true
			reason = "buyer_is_seller"
		}

		now := s.now()
		status := constants.OrderStatusCompleted
		if rejected {
			status = constants.OrderStatusCanceled
		}

		details := make([]models.OrderDetail, 0, len(input.Items))
		for i, line := range input.Items {
			if !rejected {
				affected, err := itemRepo.DecrementStock(line.SaleItemID, line.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return ErrInsufficientStock
				}
			}
			if err := cart.RemoveLine(buyer.ID, line.SaleItemID); err != nil {
				return err
			}
			details = append(details, snapshotDetail(items[i], line))
		}

		shipping := strings.TrimSpace(input.ShippingAddress)
		if shipping == "" {
			shipping = buyer.ShippingAddress
		}
		order.BuyerID = buyer.ID
		order.SellerID = seller.ID
		order.OrderDate = now
		order.ShippingAddress = shipping
		order.OrderNote = strings.TrimSpace(input.OrderNote)
		order.OrderStatus = status
		if status == constants.OrderStatusCompleted {
			paid := now
			order.PaymentDate = &paid
		}
		if err := s.orderRepo.WithTx(tx).Create(order, details); err != nil {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		if rejected {
			logger.Infow("order_placement_rejected",
				"order_id", order.ID,
				"buyer_id", buyer.ID,
				"seller_id", seller.ID,
				"reason", reason,
			)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			logger.Warnw("order_stock_decrement_conflict", "buyer_id", buyer.ID, "seller_id", input.SellerID)
		}
		return nil, err
	}
	logger.Infow("order_placed",
		"order_id", order.ID,
		"buyer_id", order.BuyerID,
		"seller_id", order.SellerID,
		"status", order.OrderStatus,
		"lines", len(input.Items),
	)
	return order, nil
}

func snapshotDetail(item *models.SaleItem, line PlaceOrderItem) models.OrderDetail {
	price := item.Price
	if line.Price != nil {
		price = *line.Price
	}
	description := strings.TrimSpace(line.Description)
	if description == "" {
		description = item.Description
	}
	saleItemID := item.ID
	return models.OrderDetail{
		SaleItemID:  &saleItemID,
		Price:       price,
		Quantity:    line.Quantity,
		Description: description,
	}
}

func (s *OrderService) notifySeller(order *models.Order, locale string) {
	if s.mailer == nil || order.Seller == nil || strings.TrimSpace(order.Seller.Email) == "" {
		return
	}
	subject, body := buildOrderPlacedMail(locale, s.cfg.App.FrontendURL, order)
	s.mailer.Dispatch(MailKindOrderPlaced, order.Seller.Email, subject, body)
}
