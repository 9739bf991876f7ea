package service

import (
	"strings"
	"unicode"

	"github.com/bangmod-market/internal/config"
)

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 国际化消息 key
func (e passwordPolicyError) Key() string {
	return e.key
}

// Args 国际化消息参数
func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

// validatePassword 校验密码策略，SpecialChars 非空时只允许字母、数字与这些特殊字符
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			if policy.SpecialChars != "" && !strings.ContainsRune(policy.SpecialChars, r) {
				return passwordPolicyError{key: "error.password_invalid_char"}
			}
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{key: "error.password_require_upper"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{key: "error.password_require_lower"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{key: "error.password_require_number"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{key: "error.password_require_special", args: []interface{}{policy.SpecialChars}}
	}
	return nil
}
