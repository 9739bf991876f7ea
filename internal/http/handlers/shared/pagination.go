package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageParams 列表接口通用分页排序参数
type PageParams struct {
	Page          int
	Size          int
	SortField     string
	SortDirection string
}

// ParsePageParams 解析 page / size / sortField / sortDirection。
// page 必填且不小于 0；size 缺省或非正数时交由服务层取默认值。
func ParsePageParams(c *gin.Context) (PageParams, error) {
	var params PageParams
	rawPage, ok := c.GetQuery("page")
	if !ok || strings.TrimSpace(rawPage) == "" {
		return params, queryParamError("page", errQueryRequired)
	}
	page, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil || page < 0 {
		return params, queryParamError("page", errQueryInvalid)
	}
	params.Page = page

	size, err := OptionalQueryInt(c, "size")
	if err != nil {
		return params, err
	}
	if size != nil {
		params.Size = *size
	}
	params.SortField = strings.TrimSpace(c.Query("sortField"))
	params.SortDirection = strings.TrimSpace(c.Query("sortDirection"))
	return params, nil
}

// OptionalQueryInt 可选整数参数，缺省或空串返回 nil
func OptionalQueryInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, queryParamError(key, errQueryInvalid)
	}
	return &value, nil
}

// QueryList 多值参数，同时支持重复 key 与逗号分隔；present 表示参数是否出现过
func QueryList(c *gin.Context, key string) (values []string, present bool) {
	raws, present := c.GetQueryArray(key)
	if !present {
		return nil, false
	}
	values = make([]string, 0, len(raws))
	for _, raw := range raws {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values, true
}
