package service

import (
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"

	"gorm.io/gorm"
)

// CartSellerGroup 按卖家分组的购物车行，平台商品的 SellerID 为 0
type CartSellerGroup struct {
	SellerID uint
	Seller   *models.User
	Items    []models.CartItem
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.SaleItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, itemRepo repository.SaleItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

func checkCartOwner(principalID, userID uint) error {
	if principalID == 0 || principalID != userID {
		return ErrUserMismatch
	}
	return nil
}

// GetCart 获取购物车，按卖家首次出现顺序分组
func (s *CartService) GetCart(principalID, userID uint) ([]CartSellerGroup, error) {
	if err := checkCartOwner(principalID, userID); err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	groups := make([]CartSellerGroup, 0)
	index := make(map[uint]int)
	for _, item := range items {
		var sellerID uint
		var seller *models.User
		if item.SaleItem != nil && item.SaleItem.SellerID != nil {
			sellerID = *item.SaleItem.SellerID
			seller = item.SaleItem.Seller
		}
		pos, ok := index[sellerID]
		if !ok {
			pos = len(groups)
			index[sellerID] = pos
			groups = append(groups, CartSellerGroup{SellerID: sellerID, Seller: seller})
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}
	return groups, nil
}

func (s *CartService) loadPurchasable(principalID, saleItemID uint) (*models.SaleItem, error) {
	item, err := s.itemRepo.GetByID(saleItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrSaleItemNotFound
	}
	if item.SellerID != nil && *item.SellerID == principalID {
		return nil, ErrOwnSaleItem
	}
	return item, nil
}

// Add 加入购物车，已有行时累加数量
func (s *CartService) Add(principalID, saleItemID uint, quantity int) (*models.CartItem, error) {
	if principalID == 0 {
		return nil, ErrUserMismatch
	}
	if saleItemID == 0 || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.loadPurchasable(principalID, saleItemID)
	if err != nil {
		return nil, err
	}
	existing, err := s.cartRepo.GetByUserAndSaleItem(principalID, saleItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + quantity
		if item.Quantity < merged {
			return nil, ErrInsufficientStock
		}
		if err := s.cartRepo.UpdateQuantity(existing.ID, merged); err != nil {
			return nil, err
		}
		existing.Quantity = merged
		existing.SaleItem = item
		return existing, nil
	}
	if item.Quantity < quantity {
		return nil, ErrInsufficientStock
	}
	line := &models.CartItem{
		UserID:     principalID,
		SaleItemID: saleItemID,
		Quantity:   quantity,
		Selected:   true,
	}
	if err := s.cartRepo.Create(line); err != nil {
		return nil, err
	}
	line.SaleItem = item
	return line, nil
}

// UpdateLine 修改购物车行数量，行不存在时按加购处理，数量为 0 时删除
func (s *CartService) UpdateLine(principalID, cartID, saleItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	line, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		if quantity == 0 {
			return nil, ErrCartItemNotFound
		}
		return s.Add(principalID, saleItemID, quantity)
	}
	if line.UserID != principalID {
		return nil, ErrUserMismatch
	}
	if quantity == 0 {
		return nil, s.cartRepo.Delete(line.ID)
	}
	item, err := s.loadPurchasable(principalID, line.SaleItemID)
	if err != nil {
		return nil, err
	}
	if quantity > line.Quantity && item.Quantity < quantity {
		return nil, ErrInsufficientStock
	}
	if err := s.cartRepo.UpdateQuantity(line.ID, quantity); err != nil {
		return nil, err
	}
	line.Quantity = quantity
	line.SaleItem = item
	return line, nil
}

// Remove 删除一条购物车行
func (s *CartService) Remove(principalID, cartID uint) error {
	line, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartItemNotFound
	}
	if line.UserID != principalID {
		return ErrUserMismatch
	}
	return s.cartRepo.Delete(line.ID)
}

// SelectAll 设置全部购物车行的勾选状态
func (s *CartService) SelectAll(principalID, userID uint, selected bool) error {
	if err := checkCartOwner(principalID, userID); err != nil {
		return err
	}
	_, err := s.cartRepo.UpdateSelectedByUser(userID, selected)
	return err
}

// SelectSeller 设置某卖家商品的勾选状态
func (s *CartService) SelectSeller(principalID, userID, sellerID uint, selected bool) error {
	if err := checkCartOwner(principalID, userID); err != nil {
		return err
	}
	affected, err := s.cartRepo.UpdateSelectedByUserAndSeller(userID, sellerID, selected)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveSeller 删除某卖家的全部购物车行
func (s *CartService) RemoveSeller(principalID, userID, sellerID uint) (int64, error) {
	if err := checkCartOwner(principalID, userID); err != nil {
		return 0, err
	}
	return s.cartRepo.DeleteByUserAndSeller(userID, sellerID)
}

// RemoveLine 删除 (买家, 商品) 的购物车行，行不存在时为空操作
func (s *CartService) RemoveLine(buyerID, saleItemID uint) error {
	_, err := s.cartRepo.DeleteByUserAndSaleItem(buyerID, saleItemID)
	return err
}

// WithTx 绑定事务
func (s *CartService) WithTx(tx *gorm.DB) *CartService {
	return &CartService{cartRepo: s.cartRepo.WithTx(tx), itemRepo: s.itemRepo.WithTx(tx)}
}
