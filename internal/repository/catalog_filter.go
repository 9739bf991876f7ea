package repository

import (
	"strings"

	"github.com/bangmod-market/internal/models"

	"gorm.io/gorm"
)

// CatalogFilterKind 商品目录筛选条件类型
type CatalogFilterKind int

const (
	CatalogFilterBrandNames CatalogFilterKind = iota + 1
	CatalogFilterStorages
	CatalogFilterPriceRange
	CatalogFilterKeyword
	CatalogFilterSeller
)

// CatalogFilter 单个筛选条件，多个条件之间为 AND 关系
type CatalogFilter struct {
	Kind        CatalogFilterKind
	BrandNames  []string
	Storages    []int
	IncludeNull bool
	PriceLower  *int
	PriceUpper  *int
	Keyword     string
	SellerID    uint
}

// BrandNamesFilter 品牌名集合（忽略大小写）
func BrandNamesFilter(names []string) CatalogFilter {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.ToLower(strings.TrimSpace(name)); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return CatalogFilter{Kind: CatalogFilterBrandNames, BrandNames: normalized}
}

// StoragesFilter 存储容量集合，includeNull 表示同时匹配未指定容量；
// 空集合且 includeNull 为 false 时只匹配未指定容量的商品。
func StoragesFilter(values []int, includeNull bool) CatalogFilter {
	return CatalogFilter{Kind: CatalogFilterStorages, Storages: values, IncludeNull: includeNull}
}

// PriceRangeFilter 价格区间，单边为开区间，下限大于上限时交换
func PriceRangeFilter(lower, upper *int) CatalogFilter {
	if lower != nil && upper != nil && *lower > *upper {
		lower, upper = upper, lower
	}
	return CatalogFilter{Kind: CatalogFilterPriceRange, PriceLower: lower, PriceUpper: upper}
}

// KeywordFilter 型号、颜色、描述的包含匹配
func KeywordFilter(keyword string) CatalogFilter {
	return CatalogFilter{Kind: CatalogFilterKeyword, Keyword: strings.TrimSpace(keyword)}
}

// SellerFilter 仅限某卖家的商品
func SellerFilter(sellerID uint) CatalogFilter {
	return CatalogFilter{Kind: CatalogFilterSeller, SellerID: sellerID}
}

// applyCatalogFilters 将筛选条件翻译为 GORM 查询条件
func applyCatalogFilters(db *gorm.DB, query *gorm.DB, filters []CatalogFilter) *gorm.DB {
	for _, filter := range filters {
		switch filter.Kind {
		case CatalogFilterBrandNames:
			if len(filter.BrandNames) == 0 {
				continue
			}
			brandIDs := db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Brand{}).
				Select("id").
				Where("LOWER(name) IN ?", filter.BrandNames)
			query = query.Where("sale_items.brand_id IN (?)", brandIDs)
		case CatalogFilterStorages:
			switch {
			case len(filter.Storages) == 0:
				query = query.Where("sale_items.storage_gb IS NULL")
			case filter.IncludeNull:
				query = query.Where("(sale_items.storage_gb IN ? OR sale_items.storage_gb IS NULL)", filter.Storages)
			default:
				query = query.Where("sale_items.storage_gb IN ?", filter.Storages)
			}
		case CatalogFilterPriceRange:
			if filter.PriceLower != nil {
				query = query.Where("sale_items.price >= ?", *filter.PriceLower)
			}
			if filter.PriceUpper != nil {
				query = query.Where("sale_items.price <= ?", *filter.PriceUpper)
			}
		case CatalogFilterKeyword:
			if filter.Keyword == "" {
				continue
			}
			condition, argCount := buildLikeCondition(db, []string{"sale_items.model", "sale_items.color", "sale_items.description"})
			query = query.Where(condition, repeatLikeArgs(containsPattern(filter.Keyword), argCount)...)
		case CatalogFilterSeller:
			query = query.Where("sale_items.seller_id = ?", filter.SellerID)
		}
	}
	return query
}
