package repository

// PageRequest 分页与排序参数，Page 从 0 开始
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Desc      bool
}

// SaleItemPageQuery 商品分页查询
type SaleItemPageQuery struct {
	PageRequest
	Filters []CatalogFilter
}

// OrderListFilter 订单列表查询条件
type OrderListFilter struct {
	PageRequest
	BuyerID  uint
	SellerID uint
	Keyword  string
	// SellerType newOrder / canceled / completed，空表示全部
	SellerType string
}
