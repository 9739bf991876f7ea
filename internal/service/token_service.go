package service

import (
	"strconv"
	"time"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims 令牌声明
type TokenClaims struct {
	UserID       uint     `json:"id"`
	Email        string   `json:"email"`
	Nickname     string   `json:"nickname"`
	Authorities  []string `json:"authorities"`
	TokenType    string   `json:"typ"`
	TokenVersion uint64   `json:"token_version"`
	jwt.RegisteredClaims
}

// IssuedToken 已签发的令牌
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService 访问、刷新、邮箱验证、重置密码令牌
type TokenService struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

func (s *TokenService) ttl(tokenType string) time.Duration {
	switch tokenType {
	case constants.TokenTypeRefresh:
		return s.cfg.RefreshTTL()
	case constants.TokenTypeVerifyEmail:
		return s.cfg.VerifyTTL()
	case constants.TokenTypeResetPassword:
		return s.cfg.ResetTTL()
	default:
		return s.cfg.AccessTTL()
	}
}

// Issue 按类型签发令牌
func (s *TokenService) Issue(user *models.User, tokenType string) (IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl(tokenType))
	claims := TokenClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		Authorities:  []string{user.Role},
		TokenType:    tokenType,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	value, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Value: value, ExpiresAt: expiresAt}, nil
}

// Parse 校验签名、有效期与令牌类型
func (s *TokenService) Parse(tokenString, expectedType string) (*TokenClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}
	claims := &TokenClaims{}
	token, err := jwt.NewParser(options...).ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if expectedType != "" && claims.TokenType != expectedType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
