package public

import (
	handlershared "github.com/bangmod-market/internal/http/handlers/shared"
	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 资料更新请求
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,max=100"`
	FullName *string `json:"fullName" binding:"omitempty,max=100"`
}

// ShippingAddressRequest 收货地址请求
type ShippingAddressRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"max=500"`
}

// GetProfile 获取本人资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.UserService.GetProfile(uid, targetID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toProfileResponse(profile))
}

// UpdateProfile 更新本人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	profile, err := h.UserService.UpdateProfile(uid, targetID, service.UpdateProfileInput{
		Nickname: req.Nickname,
		FullName: req.FullName,
	})
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toProfileResponse(profile))
}

// GetShippingAddress 获取收货地址
func (h *Handler) GetShippingAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	address, err := h.UserService.GetShippingAddress(uid, targetID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"shippingAddress": address})
}

// UpdateShippingAddress 更新收货地址
func (h *Handler) UpdateShippingAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	address, err := h.UserService.UpdateShippingAddress(uid, targetID, req.ShippingAddress)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"shippingAddress": address})
}

// ListBuyerOrders 买家订单列表，支持按卖家昵称、品牌、型号搜索
func (h *Handler) ListBuyerOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params, err := handlershared.ParsePageParams(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.OrderQueryService.ListByBuyer(uid, targetID, service.OrderListQuery{
		Page:          params.Page,
		Size:          params.Size,
		SortField:     params.SortField,
		SortDirection: params.SortDirection,
		Keyword:       c.Query("searchKeyWord"),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toOrderPage(page))
}
