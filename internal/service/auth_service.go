package service

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/bangmod-market/internal/cache"
	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"

	"gorm.io/gorm"
)

var (
	mobileNumberPattern = regexp.MustCompile(`^0[0-9]{9,}$`)
	bankAccountPattern  = regexp.MustCompile(`^[0-9]{10,16}$`)
	nationalIDPattern   = regexp.MustCompile(`^[0-9]{13}$`)
)

// Mailer 邮件投递接口
type Mailer interface {
	Dispatch(kind, to, subject, body string)
}

// UploadFile 待保存的上传文件
type UploadFile struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}

// RegisterInput 注册参数
type RegisterInput struct {
	Role     string
	Email    string
	Password string
	Nickname string
	FullName string
	Seller   *SellerRegisterInput
	Locale   string
}

// SellerRegisterInput 卖家注册附加资料
type SellerRegisterInput struct {
	MobileNumber      string
	BankAccountNumber string
	BankName          string
	NationalID        string
	NationalCardFront *UploadFile
	NationalCardBack  *UploadFile
}

// LoginResult 登录结果
type LoginResult struct {
	User    *models.User
	Access  IssuedToken
	Refresh IssuedToken
}

// AuthService 账号注册、登录与令牌流程
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   *TokenService
	storage  FileStorage
	mailer   Mailer
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, hasher PasswordHasher, tokens *TokenService, storage FileStorage, mailer Mailer) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		storage:  storage,
		mailer:   mailer,
	}
}

// Register 注册账号，账号在邮箱验证前不可登录
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = constants.RoleBuyer
	}
	if role != constants.RoleBuyer && role != constants.RoleSeller {
		return nil, ErrInvalidRole
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	if role == constants.RoleSeller {
		if err := validateSellerInput(input.Seller); err != nil {
			return nil, err
		}
	}

	exist, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		nickname = resolveNicknameFromEmail(email)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: digest,
		Nickname:     nickname,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		IsActive:     false,
	}
	if role == constants.RoleSeller {
		user.Seller = &models.Seller{
			MobileNumber:      strings.TrimSpace(input.Seller.MobileNumber),
			BankAccountNumber: strings.TrimSpace(input.Seller.BankAccountNumber),
			BankName:          strings.TrimSpace(input.Seller.BankName),
			NationalID:        strings.TrimSpace(input.Seller.NationalID),
		}
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		if err := userRepo.Create(user); err != nil {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		if user.Seller == nil {
			return nil
		}
		front, back, err := s.storeNationalCards(user.ID, input.Seller)
		if err != nil {
			return err
		}
		user.Seller.NationalCardFront = front
		user.Seller.NationalCardBack = back
		return tx.Model(user.Seller).Updates(map[string]interface{}{
			"national_card_front": front,
			"national_card_back":  back,
		}).Error
	})
	if err != nil {
		if user.ID != 0 && user.Seller != nil {
			_ = s.storage.DeleteAll(constants.StorageFolderSellers, user.ID)
		}
		return nil, err
	}

	s.sendVerifyEmail(user, input.Locale)
	logger.Infow("auth_user_registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *AuthService) storeNationalCards(userID uint, input *SellerRegisterInput) (string, string, error) {
	if s.storage == nil {
		return "", "", ErrInvalidSellerInfo
	}
	front, err := s.storage.Store(constants.StorageFolderSellers, userID, input.NationalCardFront.Name, input.NationalCardFront.Size, input.NationalCardFront.Content)
	if err != nil {
		return "", "", err
	}
	back, err := s.storage.Store(constants.StorageFolderSellers, userID, input.NationalCardBack.Name, input.NationalCardBack.Size, input.NationalCardBack.Content)
	if err != nil {
		return "", "", err
	}
	return front, back, nil
}

func (s *AuthService) sendVerifyEmail(user *models.User, locale string) {
	if s.mailer == nil {
		return
	}
	token, err := s.tokens.Issue(user, constants.TokenTypeVerifyEmail)
	if err != nil {
		logger.Warnw("auth_issue_verify_token_failed", "user_id", user.ID, "error", err)
		return
	}
	subject, body := buildVerifyEmailMail(locale, s.cfg.App.FrontendURL, user.Nickname, token.Value, int(s.cfg.JWT.VerifyTTL().Hours()))
	s.mailer.Dispatch(MailKindVerifyEmail, user.Email, subject, body)
}

// VerifyEmail 校验邮箱验证令牌并激活账号
func (s *AuthService) VerifyEmail(tokenString string) (*models.User, error) {
	claims, err := s.tokens.Parse(strings.TrimSpace(tokenString), constants.TokenTypeVerifyEmail)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !strings.EqualFold(user.Email, claims.Email) {
		return nil, ErrInvalidToken
	}
	if user.IsActive {
		return nil, ErrAccountAlreadyActive
	}
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"is_active": true}); err != nil {
		return nil, err
	}
	user.IsActive = true
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// Login 校验凭据并签发访问、刷新令牌
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountNotActive
	}
	return s.issueLogin(user)
}

func (s *AuthService) issueLogin(user *models.User) (*LoginResult, error) {
	access, err := s.tokens.Issue(user, constants.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user, constants.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return &LoginResult{User: user, Access: access, Refresh: refresh}, nil
}

// Refresh 使用刷新令牌换取新的访问令牌
func (s *AuthService) Refresh(refreshToken string) (*models.User, IssuedToken, error) {
	claims, err := s.tokens.Parse(strings.TrimSpace(refreshToken), constants.TokenTypeRefresh)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	if user == nil || claims.TokenVersion != user.TokenVersion || !issuedAfter(claims, user.TokenInvalidBefore) {
		return nil, IssuedToken{}, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, IssuedToken{}, ErrAccountNotActive
	}
	access, err := s.tokens.Issue(user, constants.TokenTypeAccess)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	return user, access, nil
}

// ForgotPassword 发送重置密码邮件，未注册邮箱同样返回成功
func (s *AuthService) ForgotPassword(email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Debugw("auth_forgot_password_unknown_email")
		return nil
	}
	token, err := s.tokens.Issue(user, constants.TokenTypeResetPassword)
	if err != nil {
		return err
	}
	if s.mailer != nil {
		subject, body := buildResetPasswordMail(locale, s.cfg.App.FrontendURL, user.Nickname, token.Value, int(s.cfg.JWT.ResetTTL().Minutes()))
		s.mailer.Dispatch(MailKindResetPassword, user.Email, subject, body)
	}
	return nil
}

// ResetPassword 通过重置令牌设置新密码，旧令牌全部失效
func (s *AuthService) ResetPassword(tokenString, newPassword string) error {
	claims, err := s.tokens.Parse(strings.TrimSpace(tokenString), constants.TokenTypeResetPassword)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return err
	}
	if user == nil || claims.TokenVersion != user.TokenVersion {
		return ErrInvalidToken
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	return s.updatePassword(user, newPassword)
}

// ChangePassword 登录态修改密码
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	return s.updatePassword(user, newPassword)
}

func (s *AuthService) updatePassword(user *models.User, newPassword string) error {
	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = digest
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"password_hash":        user.PasswordHash,
		"token_version":        user.TokenVersion,
		"token_invalid_before": user.TokenInvalidBefore,
	})
	if err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

func issuedAfter(claims *TokenClaims, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if claims.IssuedAt == nil {
		return false
	}
	return claims.IssuedAt.Time.Unix() >= invalidBefore.Unix()
}

func validateSellerInput(input *SellerRegisterInput) error {
	if input == nil {
		return ErrInvalidSellerInfo
	}
	if !mobileNumberPattern.MatchString(strings.TrimSpace(input.MobileNumber)) ||
		!bankAccountPattern.MatchString(strings.TrimSpace(input.BankAccountNumber)) ||
		!nationalIDPattern.MatchString(strings.TrimSpace(input.NationalID)) ||
		strings.TrimSpace(input.BankName) == "" {
		return ErrInvalidSellerInfo
	}
	if input.NationalCardFront == nil || input.NationalCardFront.Content == nil ||
		input.NationalCardBack == nil || input.NationalCardBack.Content == nil {
		return ErrInvalidSellerInfo
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveNicknameFromEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
		return strings.TrimSpace(parts[0])
	}
	return email
}
