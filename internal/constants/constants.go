package constants

// 用户角色
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// 订单终态
const (
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCanceled  = "CANCELED"
)

// 卖家订单列表筛选类型
const (
	SellerOrderTypeNew       = "newOrder"
	SellerOrderTypeCanceled  = "canceled"
	SellerOrderTypeCompleted = "completed"
)

// 令牌类型（typ 声明）
const (
	TokenTypeAccess        = "ACCESS_TOKEN"
	TokenTypeRefresh       = "REFRESH_TOKEN"
	TokenTypeVerifyEmail   = "VERIFY_EMAIL"
	TokenTypeResetPassword = "RESET_PASSWORD"
)

// 商品图片更新状态
const (
	ImageStatusOnline = "ONLINE"
	ImageStatusMove   = "MOVE"
	ImageStatusNew    = "NEW"
	ImageStatusDelete = "DELETE"
)

// 文件存储目录
const (
	StorageFolderSaleItems = "sale-items"
	StorageFolderSellers   = "sellers"
)

// 商品目录查询
const (
	DefaultCatalogPageSize = 10
	// StorageNullSentinel filterStorages 中表示“容量未指定”的取值
	StorageNullSentinel  = "null"
	SortDirectionAsc     = "asc"
	SortDirectionDesc    = "desc"
	SaleItemDefaultSort  = "createdOn"
	OrderDefaultSort     = "orderDate"
	IDCardImageProvided  = "Provided"
	DefaultSaleItemStock = 1
)

// 异步任务队列
const (
	QueueDefault = "default"
	QueueMail    = "mail"
)
