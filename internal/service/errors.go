package service

import "errors"

// 引用实体不存在
var (
	ErrNotFound         = errors.New("资源不存在")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrSellerNotFound   = errors.New("卖家不存在")
	ErrBrandNotFound    = errors.New("品牌不存在")
	ErrSaleItemNotFound = errors.New("商品不存在")
	ErrOrderNotFound    = errors.New("订单不存在")
	ErrCartItemNotFound = errors.New("购物车记录不存在")
)

// 参数校验失败
var (
	ErrInvalidEmail          = errors.New("邮箱格式无效")
	ErrWeakPassword          = errors.New("密码强度不足")
	ErrInvalidRole           = errors.New("角色无效")
	ErrInvalidSellerInfo     = errors.New("卖家资料无效")
	ErrProfileEmpty          = errors.New("没有可更新的资料")
	ErrBrandNameRequired     = errors.New("品牌名不能为空")
	ErrInvalidSaleItem       = errors.New("商品信息无效")
	ErrInvalidQuantity       = errors.New("数量无效")
	ErrInvalidOrderItems     = errors.New("订单明细无效")
	ErrImageLimitExceeded    = errors.New("商品图片数量超过限制")
	ErrInvalidImageOperation = errors.New("图片操作无效")
	ErrFileTypeNotAllowed    = errors.New("文件类型不被允许")
	ErrFileTooLarge          = errors.New("文件大小超过限制")
	ErrImageTooLarge         = errors.New("图片尺寸超过限制")
	ErrCaptchaRequired       = errors.New("请完成验证码")
	ErrCaptchaInvalid        = errors.New("验证码错误")
	ErrCaptchaConfigInvalid  = errors.New("验证码配置无效")
)

// 冲突
var (
	ErrEmailExists          = errors.New("邮箱已注册")
	ErrAccountAlreadyActive = errors.New("账号已激活")
	ErrInsufficientStock    = errors.New("库存不足")
	ErrBrandExists          = errors.New("品牌名已存在")
	ErrBrandHasSaleItem     = errors.New("品牌下仍有商品")
)

// 无权访问或归属不匹配
var (
	ErrForbidden        = errors.New("无权访问")
	ErrUserMismatch     = errors.New("资源归属不匹配")
	ErrAccountNotActive = errors.New("账号未激活")
	ErrNotSeller        = errors.New("当前用户不是卖家")
	ErrOwnSaleItem      = errors.New("不能购买自己的商品")
)

// 认证失败
var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidToken       = errors.New("无效的 token")
	ErrInvalidPassword    = errors.New("原密码错误")
)

// ErrConstraintViolation 持久化写入失败
var ErrConstraintViolation = errors.New("数据写入失败")

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrEmailRecipientRejected    = errors.New("收件人被拒收")
)

// ErrorKind 错误分类，决定对外状态码
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindForbidden
	KindUnauthorized
	KindConstraint
)

var errorKinds = []struct {
	kind    ErrorKind
	targets []error
}{
	{KindNotFound, []error{ErrNotFound, ErrUserNotFound, ErrSellerNotFound, ErrBrandNotFound, ErrSaleItemNotFound, ErrOrderNotFound, ErrCartItemNotFound}},
	{KindValidation, []error{ErrInvalidEmail, ErrWeakPassword, ErrInvalidRole, ErrInvalidSellerInfo, ErrProfileEmpty, ErrBrandNameRequired, ErrInvalidSaleItem, ErrInvalidQuantity, ErrInvalidOrderItems, ErrImageLimitExceeded, ErrInvalidImageOperation, ErrFileTypeNotAllowed, ErrFileTooLarge, ErrImageTooLarge, ErrCaptchaRequired, ErrCaptchaInvalid, ErrCaptchaConfigInvalid}},
	{KindConflict, []error{ErrEmailExists, ErrAccountAlreadyActive, ErrInsufficientStock, ErrBrandExists, ErrBrandHasSaleItem}},
	{KindForbidden, []error{ErrForbidden, ErrUserMismatch, ErrAccountNotActive, ErrNotSeller, ErrOwnSaleItem}},
	{KindUnauthorized, []error{ErrInvalidCredentials, ErrInvalidToken, ErrInvalidPassword}},
	{KindConstraint, []error{ErrConstraintViolation}},
}

// KindOf 返回错误所属分类，未知错误归为 KindInternal
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	for _, group := range errorKinds {
		for _, target := range group.targets {
			if errors.Is(err, target) {
				return group.kind
			}
		}
	}
	return KindInternal
}
