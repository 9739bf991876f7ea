package repository

import (
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，页码从 0 开始，非法页码按 0 处理；
// 超大页码收敛到不溢出的最大偏移。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	return query.Limit(pageSize).Offset(pageOffset(page, pageSize))
}

func pageOffset(page, pageSize int) int {
	if page <= 0 || pageSize <= 0 {
		return 0
	}
	if page > math.MaxInt/pageSize {
		page = math.MaxInt / pageSize
	}
	return page * pageSize
}

// sortColumns 对外排序字段到列名的白名单
type sortColumns struct {
	columns      map[string]string
	defaultField string
	tieBreaker   string
	tieDesc      bool
}

// resolve 返回规范化后的排序字段
func (s sortColumns) resolve(field string) string {
	if _, ok := s.columns[strings.TrimSpace(field)]; ok {
		return strings.TrimSpace(field)
	}
	return s.defaultField
}

// apply 追加主排序与 id 次排序
func (s sortColumns) apply(query *gorm.DB, field string, desc bool) *gorm.DB {
	column := s.columns[s.resolve(field)]
	query = query.Order(fmt.Sprintf("%s %s", column, direction(desc)))
	return query.Order(fmt.Sprintf("%s %s", s.tieBreaker, direction(s.tieDesc)))
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
