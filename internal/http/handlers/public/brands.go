package public

import (
	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
)

// BrandRequest 品牌写入请求
type BrandRequest struct {
	Name            string `json:"name" binding:"required,max=30"`
	WebsiteURL      string `json:"websiteUrl" binding:"max=40"`
	CountryOfOrigin string `json:"countryOfOrigin" binding:"max=80"`
	IsActive        *bool  `json:"isActive"`
}

func (r BrandRequest) toInput() service.BrandInput {
	return service.BrandInput{
		Name:            r.Name,
		WebsiteURL:      r.WebsiteURL,
		CountryOfOrigin: r.CountryOfOrigin,
		IsActive:        r.IsActive,
	}
}

// ListBrands 全部品牌
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.BrandService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	result := make([]BrandResponse, 0, len(brands))
	for i := range brands {
		result = append(result, toBrandResponse(&brands[i]))
	}
	response.Success(c, result)
}

// GetBrand 品牌详情及商品数
func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.BrandService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, brandErrorRules, response.CodeInternal, "error.internal")
		return
	}
	resp := toBrandResponse(detail.Brand)
	count := detail.SaleItemCount
	resp.NoOfSaleItems = &count
	response.Success(c, resp)
}

// CreateBrand 新建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	brand, err := h.BrandService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, brandErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Created(c, toBrandResponse(brand))
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	brand, err := h.BrandService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, brandErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toBrandResponse(brand))
}

// DeleteBrand 删除品牌，仍有商品时拒绝
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.BrandService.Delete(id); err != nil {
		respondWithMappedError(c, err, brandErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.NoContent(c)
}
