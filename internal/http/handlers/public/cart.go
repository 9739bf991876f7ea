package public

import (
	"github.com/bangmod-market/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	SaleItemID uint `json:"saleItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest 修改购物车行请求，quantity 为 0 时删除
type UpdateCartItemRequest struct {
	SaleItemID uint `json:"saleItemId"`
	Quantity   *int `json:"quantity" binding:"required,min=0"`
}

// SelectCartRequest 勾选请求
type SelectCartRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// GetCart 获取购物车，按卖家分组
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	groups, err := h.CartService.GetCart(uid, targetID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toCartGroupResponses(groups))
}

// AddCartItem 加入购物车，已存在时合并数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	line, err := h.CartService.Add(uid, req.SaleItemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Created(c, toCartItemResponse(*line))
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	line, err := h.CartService.UpdateLine(uid, cartID, req.SaleItemID, *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if line == nil {
		response.NoContent(c)
		return
	}
	response.Success(c, toCartItemResponse(*line))
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CartService.Remove(uid, cartID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.NoContent(c)
}

// SelectAllCartItems 全选或取消全选
func (h *Handler) SelectAllCartItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SelectCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.CartService.SelectAll(uid, targetID, *req.Selected); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"selected": *req.Selected})
}

// SelectSellerCartItems 勾选某卖家的全部商品
func (h *Handler) SelectSellerCartItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sellerID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	var req SelectCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.CartService.SelectSeller(uid, targetID, sellerID, *req.Selected); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"selected": *req.Selected})
}

// RemoveSellerCartItems 删除某卖家的全部购物车行
func (h *Handler) RemoveSellerCartItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sellerID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	removed, err := h.CartService.RemoveSeller(uid, targetID, sellerID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
