package public

import (
	"errors"

	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/i18n"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// localizedError 携带翻译参数的业务错误，例如密码策略
type localizedError interface {
	Key() string
	Args() []interface{}
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	var lerr localizedError
	if errors.As(err, &lerr) && errors.Is(err, service.ErrWeakPassword) {
		locale := i18n.ResolveLocale(c)
		response.ValidationError(c, i18n.T(locale, "error.validation_failed"), []response.FieldError{
			{Field: "password", Message: i18n.Sprintf(locale, lerr.Key(), lerr.Args()...)},
		})
		return
	}
	if code, key, ok := resolveMappedError(err, rules); ok {
		respondError(c, code, key, nil)
		return
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

// resolveMappedError 先查规则表，再按错误分类回落
func resolveMappedError(err error, rules []mappedHandlerError) (int, string, bool) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return rule.code, rule.key, true
		}
	}
	return kindFallback(err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// kindFallback 未在规则表中列出的已知错误按分类返回通用提示
func kindFallback(err error) (int, string, bool) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		return response.CodeNotFound, "error.not_found", true
	case service.KindValidation:
		return response.CodeBadRequest, "error.bad_request", true
	case service.KindConflict:
		return response.CodeConflict, "error.bad_request", true
	case service.KindForbidden:
		return response.CodeForbidden, "error.forbidden", true
	case service.KindUnauthorized:
		return response.CodeUnauthorized, "error.unauthorized", true
	case service.KindConstraint:
		return response.CodeBadRequest, "error.constraint_violation", true
	default:
		return 0, "", false
	}
}

var notFoundErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrSellerNotFound, code: response.CodeNotFound, key: "error.seller_not_found"},
	{target: service.ErrBrandNotFound, code: response.CodeNotFound, key: "error.brand_not_found"},
	{target: service.ErrSaleItemNotFound, code: response.CodeNotFound, key: "error.sale_item_not_found"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var ownershipErrorRules = []mappedHandlerError{
	{target: service.ErrUserMismatch, code: response.CodeForbidden, key: "error.user_mismatch"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrNotSeller, code: response.CodeForbidden, key: "error.not_seller"},
	{target: service.ErrAccountNotActive, code: response.CodeForbidden, key: "error.account_not_active"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrInvalidRole, code: response.CodeBadRequest, key: "error.role_invalid"},
	{target: service.ErrInvalidSellerInfo, code: response.CodeBadRequest, key: "error.seller_info_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrAccountAlreadyActive, code: response.CodeConflict, key: "error.account_already_active"},
	{target: service.ErrAccountNotActive, code: response.CodeForbidden, key: "error.account_not_active"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrInvalidToken, code: response.CodeUnauthorized, key: "error.token_invalid"},
	{target: service.ErrInvalidPassword, code: response.CodeUnauthorized, key: "error.password_old_invalid"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, key: "error.password_weak"},
	{target: service.ErrFileTypeNotAllowed, code: response.CodeBadRequest, key: "error.file_type_invalid"},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest, key: "error.file_too_large"},
	{target: service.ErrImageTooLarge, code: response.CodeBadRequest, key: "error.image_too_large"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var profileErrorRules = concatMappedHandlerErrors(ownershipErrorRules, notFoundErrorRules, []mappedHandlerError{
	{target: service.ErrProfileEmpty, code: response.CodeBadRequest, key: "error.profile_empty"},
})

var brandErrorRules = []mappedHandlerError{
	{target: service.ErrBrandNotFound, code: response.CodeNotFound, key: "error.brand_not_found"},
	{target: service.ErrBrandNameRequired, code: response.CodeBadRequest, key: "error.brand_name_required"},
	{target: service.ErrBrandExists, code: response.CodeConflict, key: "error.brand_exists"},
	{target: service.ErrBrandHasSaleItem, code: response.CodeConflict, key: "error.brand_has_sale_item"},
	{target: service.ErrConstraintViolation, code: response.CodeBadRequest, key: "error.constraint_violation"},
}

var saleItemErrorRules = concatMappedHandlerErrors(notFoundErrorRules, ownershipErrorRules, []mappedHandlerError{
	{target: service.ErrInvalidSaleItem, code: response.CodeBadRequest, key: "error.sale_item_invalid"},
	{target: service.ErrInvalidImageOperation, code: response.CodeBadRequest, key: "error.image_operation_invalid"},
	{target: service.ErrFileTypeNotAllowed, code: response.CodeBadRequest, key: "error.file_type_invalid"},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest, key: "error.file_too_large"},
	{target: service.ErrImageTooLarge, code: response.CodeBadRequest, key: "error.image_too_large"},
	{target: service.ErrConstraintViolation, code: response.CodeBadRequest, key: "error.constraint_violation"},
})

var cartErrorRules = concatMappedHandlerErrors(notFoundErrorRules, ownershipErrorRules, []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrOwnSaleItem, code: response.CodeForbidden, key: "error.own_sale_item"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, key: "error.insufficient_stock"},
})

var orderErrorRules = concatMappedHandlerErrors(notFoundErrorRules, ownershipErrorRules, []mappedHandlerError{
	{target: service.ErrInvalidOrderItems, code: response.CodeBadRequest, key: "error.order_items_invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, key: "error.insufficient_stock"},
	{target: service.ErrConstraintViolation, code: response.CodeBadRequest, key: "error.constraint_violation"},
})

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, key: "error.captcha_config_invalid"},
}
