package public

import (
	handlershared "github.com/bangmod-market/internal/http/handlers/shared"
	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/i18n"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单明细
type OrderItemRequest struct {
	SaleItemID  uint   `json:"saleItemId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Price       *int   `json:"price" binding:"omitempty,min=0"`
	Description string `json:"description"`
}

// OrderRequest 单个卖家的下单请求
type OrderRequest struct {
	SellerID        uint               `json:"sellerId" binding:"required"`
	ShippingAddress string             `json:"shippingAddress" binding:"max=500"`
	OrderNote       string             `json:"orderNote" binding:"max=500"`
	OrderItems      []OrderItemRequest `json:"orderItems" binding:"required,min=1,dive"`
}

func toOrderPage(page *service.OrderPage) response.Page[OrderResponse] {
	content := make([]OrderResponse, 0, len(page.Orders))
	for i := range page.Orders {
		content = append(content, toOrderResponse(&page.Orders[i]))
	}
	return response.NewPage(content, page.Total, page.Page, page.Size, page.Sort)
}

// PlaceOrders 批量下单，每个卖家一个订单
func (h *Handler) PlaceOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req []OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if len(req) == 0 {
		handlershared.RespondFieldError(c, "orders", "validation.required")
		return
	}

	inputs := make([]service.PlaceOrderInput, 0, len(req))
	for _, order := range req {
		items := make([]service.PlaceOrderItem, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			items = append(items, service.PlaceOrderItem{
				SaleItemID:  item.SaleItemID,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Description: item.Description,
			})
		}
		inputs = append(inputs, service.PlaceOrderInput{
			SellerID:        order.SellerID,
			ShippingAddress: order.ShippingAddress,
			OrderNote:       order.OrderNote,
			Items:           items,
		})
	}

	orders, err := h.OrderService.PlaceOrders(uid, inputs, i18n.ResolveLocale(c))
	if err != nil {
		if len(orders) > 0 {
			respondPartialPlacement(c, err, orders)
			return
		}
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Created(c, toOrderResponses(orders))
}

// respondPartialPlacement 批量下单中途失败时，错误响应中带回已提交的订单
func respondPartialPlacement(c *gin.Context, err error, placed []*models.Order) {
	handlershared.RequestLog(c).Warnw("order_batch_partially_placed",
		"placed", len(placed),
		"error", err,
	)
	code, key, ok := resolveMappedError(err, orderErrorRules)
	if !ok {
		code, key = response.CodeInternal, "error.internal"
	}
	response.ErrorWithData(c, code, i18n.T(i18n.ResolveLocale(c), key), gin.H{
		"placedOrders": toOrderResponses(placed),
	})
}

func toOrderResponses(orders []*models.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result
}

// GetOrder 买家或卖家查看订单
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderQueryService.GetOrder(uid, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toOrderResponse(order))
}

// MarkOrderAsRead 卖家标记订单已读
func (h *Handler) MarkOrderAsRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderQueryService.MarkAsRead(uid, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toOrderResponse(order))
}

// CountNewOrders 卖家未读订单数
func (h *Handler) CountNewOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	count, err := h.OrderQueryService.CountNew(uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"count": count})
}

// ListSellerOrders 卖家订单列表，type 为 newOrder / canceled / completed
func (h *Handler) ListSellerOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	sellerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params, err := handlershared.ParsePageParams(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.OrderQueryService.ListBySeller(uid, sellerID, service.OrderListQuery{
		Page:          params.Page,
		Size:          params.Size,
		SortField:     params.SortField,
		SortDirection: params.SortDirection,
		Type:          c.Query("type"),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toOrderPage(page))
}

// GetSellerOrder 卖家查看自己的订单
func (h *Handler) GetSellerOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	sellerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := h.OrderQueryService.GetSellerOrder(uid, sellerID, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toOrderResponse(order))
}
