package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bangmod-market/internal/constants"
	handlershared "github.com/bangmod-market/internal/http/handlers/shared"
	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/i18n"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SaleItemRequest 商品写入请求
type SaleItemRequest struct {
	BrandID        uint             `json:"brandId" form:"brandId" binding:"required"`
	Model          string           `json:"model" form:"model" binding:"required,max=60"`
	Description    string           `json:"description" form:"description" binding:"required"`
	Price          *int             `json:"price" form:"price" binding:"required,min=0"`
	RAMGB          *int             `json:"ramGb" form:"ramGb" binding:"omitempty,min=0"`
	ScreenSizeInch *decimal.Decimal `json:"screenSizeInch" form:"-"`
	StorageGB      *int             `json:"storageGb" form:"storageGb" binding:"omitempty,min=0"`
	Color          *string          `json:"color" form:"color" binding:"omitempty,max=60"`
	Quantity       *int             `json:"quantity" form:"quantity"`
}

func (r SaleItemRequest) toInput() service.SaleItemInput {
	return service.SaleItemInput{
		BrandID:        r.BrandID,
		Model:          r.Model,
		Description:    r.Description,
		Price:          r.Price,
		RAMGB:          r.RAMGB,
		ScreenSizeInch: r.ScreenSizeInch,
		StorageGB:      r.StorageGB,
		Color:          r.Color,
		Quantity:       r.Quantity,
	}
}

// bindSaleItemForm multipart 表单中的商品字段，屏幕尺寸按十进制文本解析
func bindSaleItemForm(c *gin.Context) (*SaleItemRequest, error) {
	var req SaleItemRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(c.PostForm("screenSizeInch")); raw != "" {
		size, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, &handlershared.QueryParamError{Field: "screenSizeInch", Err: err}
		}
		req.ScreenSizeInch = &size
	}
	return &req, nil
}

var errStorageValueInvalid = errors.New("invalid storage value")

// parseCatalogQuery 解析商品目录查询参数。
// filterStorages 中的 null（忽略大小写）表示未指定容量；参数出现但为空表示只匹配未指定容量。
func parseCatalogQuery(c *gin.Context) (service.CatalogQuery, error) {
	params, err := handlershared.ParsePageParams(c)
	if err != nil {
		return service.CatalogQuery{}, err
	}
	q := service.CatalogQuery{
		Page:          params.Page,
		Size:          params.Size,
		SortField:     params.SortField,
		SortDirection: params.SortDirection,
		Keyword:       c.Query("searchKeyWord"),
	}
	q.BrandNames, _ = handlershared.QueryList(c, "filterBrands")

	if raws, present := handlershared.QueryList(c, "filterStorages"); present {
		selection := &service.StorageSelection{Values: make([]int, 0, len(raws))}
		for _, raw := range raws {
			if strings.EqualFold(raw, constants.StorageNullSentinel) {
				selection.IncludeNull = true
				continue
			}
			value, err := strconv.Atoi(raw)
			if err != nil {
				return q, &handlershared.QueryParamError{Field: "filterStorages", Err: errStorageValueInvalid}
			}
			selection.Values = append(selection.Values, value)
		}
		q.Storages = selection
	}

	if q.PriceLower, err = handlershared.OptionalQueryInt(c, "filterPriceLower"); err != nil {
		return q, err
	}
	if q.PriceUpper, err = handlershared.OptionalQueryInt(c, "filterPriceUpper"); err != nil {
		return q, err
	}
	return q, nil
}

func toCatalogPage(page *service.CatalogPage) response.Page[SaleItemResponse] {
	return response.NewPage(toSaleItemResponses(page.Items), page.Total, page.Page, page.Size, page.Sort)
}

func (h *Handler) respondSaleItemError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrImageLimitExceeded) {
		limit := h.Config.Upload.MaxImagesPerItem
		if limit <= 0 {
			limit = 4
		}
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(i18n.ResolveLocale(c), "error.image_limit_exceeded", limit), nil)
		return
	}
	respondWithMappedError(c, err, saleItemErrorRules, response.CodeInternal, "error.internal")
}

// ListAllSaleItems 全部商品（v1）
func (h *Handler) ListAllSaleItems(c *gin.Context) {
	items, err := h.CatalogService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, toSaleItemResponses(items))
}

// GetSaleItem 商品详情，含图片
func (h *Handler) GetSaleItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.CatalogService.Get(id)
	if err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.Success(c, toSaleItemResponse(*item))
}

// CreateSaleItem 新建商品（v1，JSON），归属当前卖家
func (h *Handler) CreateSaleItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.CatalogService.Create(req.toInput(), &uid)
	if err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.Created(c, toSaleItemResponse(*item))
}

// UpdateSaleItem 更新商品字段（v1，JSON）
func (h *Handler) UpdateSaleItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := req.toInput()
	item, err := h.CatalogService.Update(uid, id, &input, nil)
	if err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.Success(c, toSaleItemResponse(*item))
}

// DeleteSaleItem 删除商品及图片
func (h *Handler) DeleteSaleItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.Delete(uid, id); err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.NoContent(c)
}

// GallerySaleItems 商品目录分页（v2）
func (h *Handler) GallerySaleItems(c *gin.Context) {
	q, err := parseCatalogQuery(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.CatalogService.Gallery(q)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, toCatalogPage(page))
}

// ListStorages 去重存储容量，未指定容量以 null 排在最后
func (h *Handler) ListStorages(c *gin.Context) {
	values, err := h.CatalogService.Storages(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, values)
}

// UpdateSaleItemWithImages 更新商品字段与图片（v2，multipart）。
// 图片操作按下标对应：imageStatus[i]、imageFileName[i]、imageOrder[i]，NEW 依次取 images 中的文件。
func (h *Handler) UpdateSaleItemWithImages(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input *service.SaleItemInput
	if _, hasModel := c.GetPostForm("model"); hasModel {
		req, err := bindSaleItemForm(c)
		if err != nil {
			respondBindError(c, err)
			return
		}
		converted := req.toInput()
		input = &converted
	}

	operations, closeFiles, err := parseImageOperations(c)
	defer closeFiles()
	if err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.CatalogService.Update(uid, id, input, operations)
	if err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.Success(c, toSaleItemResponse(*item))
}

func parseImageOperations(c *gin.Context) ([]service.ImageOperation, func(), error) {
	var closers []func()
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	statuses := c.PostFormArray("imageStatus")
	fileNames := c.PostFormArray("imageFileName")
	orders := c.PostFormArray("imageOrder")
	var uploads []*service.UploadFile
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["images"] {
			upload, closeFn, err := openUpload(header)
			if err != nil {
				return nil, closeAll, &handlershared.QueryParamError{Field: "images", Err: err}
			}
			closers = append(closers, closeFn)
			uploads = append(uploads, upload)
		}
	}

	operations := make([]service.ImageOperation, 0, len(statuses))
	nextUpload := 0
	for i, status := range statuses {
		op := service.ImageOperation{Status: strings.ToUpper(strings.TrimSpace(status))}
		if i < len(fileNames) {
			op.FileName = strings.TrimSpace(fileNames[i])
		}
		if i < len(orders) {
			order, err := strconv.Atoi(strings.TrimSpace(orders[i]))
			if err != nil {
				return nil, closeAll, &handlershared.QueryParamError{Field: "imageOrder", Err: err}
			}
			op.Order = order
		}
		if op.Status == constants.ImageStatusNew && nextUpload < len(uploads) {
			op.File = uploads[nextUpload]
			nextUpload++
		}
		operations = append(operations, op)
	}
	return operations, closeAll, nil
}

// ListSellerSaleItems 某卖家的商品分页
func (h *Handler) ListSellerSaleItems(c *gin.Context) {
	sellerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params, err := handlershared.ParsePageParams(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.CatalogService.SellerItems(sellerID, service.CatalogQuery{
		Page:          params.Page,
		Size:          params.Size,
		SortField:     params.SortField,
		SortDirection: params.SortDirection,
	})
	if err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.Success(c, toCatalogPage(page))
}

// CreateSellerSaleItem 卖家上架商品并上传图片（multipart）
func (h *Handler) CreateSellerSaleItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	sellerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, err := bindSaleItemForm(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	var files []service.UploadFile
	var closers []func()
	defer func() {
		for _, fn := range closers {
			fn()
		}
	}()
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["images"] {
			upload, closeFn, err := openUpload(header)
			if err != nil {
				respondError(c, response.CodeBadRequest, "error.bad_request", nil)
				return
			}
			closers = append(closers, closeFn)
			files = append(files, *upload)
		}
	}

	item, err := h.CatalogService.CreateForSeller(uid, sellerID, req.toInput(), files)
	if err != nil {
		h.respondSaleItemError(c, err)
		return
	}
	response.Created(c, toSaleItemResponse(*item))
}
