package shared

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	errQueryRequired = errors.New("required")
	errQueryInvalid  = errors.New("invalid")
)

// QueryParamError 查询参数解析失败
type QueryParamError struct {
	Field string
	Err   error
}

func (e *QueryParamError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *QueryParamError) Unwrap() error {
	return e.Err
}

func queryParamError(field string, err error) error {
	return &QueryParamError{Field: field, Err: err}
}

var setupValidatorOnce sync.Once

// SetupValidator 让校验错误使用 json/form 标签作为字段名。
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}

// RespondBindError 将绑定、校验、查询参数错误转换为字段错误列表，其余按 400 返回。
func RespondBindError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]response.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, response.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(locale, fe.Tag(), fe.Param()),
			})
		}
		respondFieldErrors(c, locale, fields)
		return
	}

	var queryErr *QueryParamError
	if errors.As(err, &queryErr) {
		key := "validation.invalid"
		if errors.Is(queryErr.Err, errQueryRequired) {
			key = "validation.required"
		}
		respondFieldErrors(c, locale, []response.FieldError{{Field: queryErr.Field, Message: i18n.T(locale, key)}})
		return
	}

	RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
}

// RespondFieldError 单字段校验失败
func RespondFieldError(c *gin.Context, field, key string) {
	locale := i18n.ResolveLocale(c)
	respondFieldErrors(c, locale, []response.FieldError{{Field: field, Message: i18n.T(locale, key)}})
}

func respondFieldErrors(c *gin.Context, locale string, fields []response.FieldError) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Field < fields[j].Field
	})
	response.ValidationError(c, i18n.T(locale, "error.validation_failed"), fields)
}

func validationMessage(locale, tag, param string) string {
	switch tag {
	case "required", "required_if", "required_with":
		return i18n.T(locale, "validation.required")
	case "email":
		return i18n.T(locale, "validation.email")
	case "min", "gte":
		return i18n.Sprintf(locale, "validation.min", param)
	case "max", "lte":
		return i18n.Sprintf(locale, "validation.max", param)
	case "gt":
		return i18n.Sprintf(locale, "validation.gt", param)
	case "oneof":
		return i18n.Sprintf(locale, "validation.oneof", param)
	default:
		return i18n.T(locale, "validation.invalid")
	}
}
