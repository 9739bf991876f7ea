package public

import (
	"time"

	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/service"

	"github.com/shopspring/decimal"
)

// UserSummary 订单、购物车中的用户摘要
type UserSummary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	FullName string `json:"fullName"`
}

func toUserSummary(user *models.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		FullName: user.FullName,
	}
}

// BrandResponse 品牌
type BrandResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	WebsiteURL      string    `json:"websiteUrl"`
	CountryOfOrigin string    `json:"countryOfOrigin"`
	IsActive        bool      `json:"isActive"`
	NoOfSaleItems   *int64    `json:"noOfSaleItems,omitempty"`
	CreatedOn       time.Time `json:"createdOn"`
	UpdatedOn       time.Time `json:"updatedOn"`
}

func toBrandResponse(brand *models.Brand) BrandResponse {
	return BrandResponse{
		ID:              brand.ID,
		Name:            brand.NameValue(),
		WebsiteURL:      brand.WebsiteURL,
		CountryOfOrigin: brand.CountryOfOrigin,
		IsActive:        brand.IsActive,
		CreatedOn:       brand.CreatedAt,
		UpdatedOn:       brand.UpdatedAt,
	}
}

// SaleItemImageResponse 商品图片
type SaleItemImageResponse struct {
	FileName       string `json:"fileName"`
	ImageViewOrder int    `json:"imageViewOrder"`
}

// SaleItemResponse 商品
type SaleItemResponse struct {
	ID             uint                    `json:"id"`
	BrandID        uint                    `json:"brandId"`
	BrandName      string                  `json:"brandName"`
	SellerID       *uint                   `json:"sellerId"`
	Model          string                  `json:"model"`
	Description    string                  `json:"description"`
	Price          int                     `json:"price"`
	RAMGB          *int                    `json:"ramGb"`
	ScreenSizeInch *decimal.Decimal        `json:"screenSizeInch"`
	StorageGB      *int                    `json:"storageGb"`
	Color          *string                 `json:"color"`
	Quantity       int                     `json:"quantity"`
	Images         []SaleItemImageResponse `json:"saleItemImages"`
	CreatedOn      time.Time               `json:"createdOn"`
	UpdatedOn      time.Time               `json:"updatedOn"`
}

func toSaleItemResponse(item models.SaleItem) SaleItemResponse {
	resp := SaleItemResponse{
		ID:          item.ID,
		BrandID:     item.BrandID,
		BrandName:   item.Brand.NameValue(),
		SellerID:    item.SellerID,
		Model:       item.Model,
		Description: item.Description,
		Price:       item.Price,
		RAMGB:       item.RAMGB,
		StorageGB:   item.StorageGB,
		Color:       item.Color,
		Quantity:    item.Quantity,
		Images:      make([]SaleItemImageResponse, 0, len(item.Images)),
		CreatedOn:   item.CreatedAt,
		UpdatedOn:   item.UpdatedAt,
	}
	if item.ScreenSizeInch.Valid {
		size := item.ScreenSizeInch.Decimal
		resp.ScreenSizeInch = &size
	}
	for _, image := range item.Images {
		resp.Images = append(resp.Images, SaleItemImageResponse{FileName: image.FileName, ImageViewOrder: image.ImageViewOrder})
	}
	return resp
}

func toSaleItemResponses(items []models.SaleItem) []SaleItemResponse {
	result := make([]SaleItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toSaleItemResponse(item))
	}
	return result
}

// OrderDetailResponse 订单明细
type OrderDetailResponse struct {
	ID          uint   `json:"id"`
	SaleItemID  *uint  `json:"saleItemId"`
	Price       int    `json:"price"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// OrderResponse 订单及买卖双方摘要
type OrderResponse struct {
	ID              uint                  `json:"id"`
	Buyer           *UserSummary          `json:"buyer"`
	Seller          *UserSummary          `json:"seller"`
	OrderDate       time.Time             `json:"orderDate"`
	PaymentDate     *time.Time            `json:"paymentDate"`
	ShippingAddress string                `json:"shippingAddress"`
	OrderNote       string                `json:"orderNote"`
	OrderStatus     string                `json:"orderStatus"`
	IsReadBySeller  bool                  `json:"isReadBySeller"`
	OrderItems      []OrderDetailResponse `json:"orderItems"`
}

func toOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		Buyer:           toUserSummary(order.Buyer),
		Seller:          toUserSummary(order.Seller),
		OrderDate:       order.OrderDate,
		PaymentDate:     order.PaymentDate,
		ShippingAddress: order.ShippingAddress,
		OrderNote:       order.OrderNote,
		OrderStatus:     order.OrderStatus,
		IsReadBySeller:  order.IsReadBySeller,
		OrderItems:      make([]OrderDetailResponse, 0, len(order.Details)),
	}
	for _, detail := range order.Details {
		resp.OrderItems = append(resp.OrderItems, OrderDetailResponse{
			ID:          detail.ID,
			SaleItemID:  detail.SaleItemID,
			Price:       detail.Price,
			Quantity:    detail.Quantity,
			Description: detail.Description,
		})
	}
	return resp
}

// CartItemResponse 购物车行
type CartItemResponse struct {
	ID         uint              `json:"id"`
	SaleItemID uint              `json:"saleItemId"`
	Quantity   int               `json:"quantity"`
	Selected   bool              `json:"selected"`
	SaleItem   *SaleItemResponse `json:"saleItem"`
}

func toCartItemResponse(item models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:         item.ID,
		SaleItemID: item.SaleItemID,
		Quantity:   item.Quantity,
		Selected:   item.Selected,
	}
	if item.SaleItem != nil {
		saleItem := toSaleItemResponse(*item.SaleItem)
		resp.SaleItem = &saleItem
	}
	return resp
}

// CartGroupResponse 按卖家分组的购物车
type CartGroupResponse struct {
	SellerID uint               `json:"sellerId"`
	Seller   *UserSummary       `json:"seller"`
	Items    []CartItemResponse `json:"items"`
}

func toCartGroupResponses(groups []service.CartSellerGroup) []CartGroupResponse {
	result := make([]CartGroupResponse, 0, len(groups))
	for _, group := range groups {
		items := make([]CartItemResponse, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, toCartItemResponse(item))
		}
		result = append(result, CartGroupResponse{
			SellerID: group.SellerID,
			Seller:   toUserSummary(group.Seller),
			Items:    items,
		})
	}
	return result
}

// SellerProfileResponse 卖家资料（脱敏）
type SellerProfileResponse struct {
	MobileNumber      string `json:"mobileNumber"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankName          string `json:"bankName"`
	NationalID        string `json:"nationalId"`
	NationalCardFront string `json:"nationalCardFront"`
	NationalCardBack  string `json:"nationalCardBack"`
}

// ProfileResponse 用户资料
type ProfileResponse struct {
	ID        uint                   `json:"id"`
	Email     string                 `json:"email"`
	Nickname  string                 `json:"nickname"`
	FullName  string                 `json:"fullName"`
	Role      string                 `json:"role"`
	IsActive  bool                   `json:"isActive"`
	Seller    *SellerProfileResponse `json:"seller,omitempty"`
	CreatedOn time.Time              `json:"createdOn"`
}

func toProfileResponse(profile *service.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:        profile.User.ID,
		Email:     profile.User.Email,
		Nickname:  profile.User.Nickname,
		FullName:  profile.User.FullName,
		Role:      profile.User.Role,
		IsActive:  profile.User.IsActive,
		CreatedOn: profile.User.CreatedAt,
	}
	if profile.Seller != nil {
		resp.Seller = &SellerProfileResponse{
			MobileNumber:      profile.Seller.MobileNumber,
			BankAccountNumber: profile.Seller.BankAccountNumber,
			BankName:          profile.Seller.BankName,
			NationalID:        profile.Seller.NationalID,
			NationalCardFront: profile.Seller.NationalCardFront,
			NationalCardBack:  profile.Seller.NationalCardBack,
		}
	}
	return resp
}
