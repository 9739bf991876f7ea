package response

import "strings"

// AppError 接口层错误包装，携带业务码、提示信息与字段错误
type AppError struct {
	Code    int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	parts := []string{e.Message}
	for _, field := range e.Fields {
		parts = append(parts, field.Field+": "+field.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
