package public

import (
	"mime/multipart"
	"net/http"
	"time"

	handlershared "github.com/bangmod-market/internal/http/handlers/shared"
	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/i18n"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求（multipart 表单，卖家需上传身份证正反面）
type RegisterRequest struct {
	Role              string `form:"role" binding:"omitempty,oneof=buyer seller"`
	Email             string `form:"email" binding:"required,email,max=100"`
	Password          string `form:"password" binding:"required"`
	Nickname          string `form:"nickname" binding:"max=100"`
	FullName          string `form:"fullName" binding:"max=100"`
	MobileNumber      string `form:"mobileNumber"`
	BankAccountNumber string `form:"bankAccountNumber"`
	BankName          string `form:"bankName"`
	NationalID        string `form:"nationalId"`
	handlershared.CaptchaPayloadRequest
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	handlershared.CaptchaPayloadRequest
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
	handlershared.CaptchaPayloadRequest
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// TokenResponse 访问令牌响应，刷新令牌仅写入 Cookie
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *UserSummary `json:"user"`
	Role        string       `json:"role"`
}

func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload handlershared.CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	if err := h.CaptchaService.Verify(scene, payload.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_config_invalid")
		return false
	}
	return true
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.verifyCaptcha(c, service.CaptchaSceneRegister, req.CaptchaPayloadRequest) {
		return
	}

	input := service.RegisterInput{
		Role:     req.Role,
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		FullName: req.FullName,
		Locale:   i18n.ResolveLocale(c),
	}
	if req.Role == "seller" {
		front, closeFront, err := openFormFile(c, "nationalCardFront")
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.seller_info_invalid", nil)
			return
		}
		defer closeFront()
		back, closeBack, err := openFormFile(c, "nationalCardBack")
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.seller_info_invalid", nil)
			return
		}
		defer closeBack()
		input.Seller = &service.SellerRegisterInput{
			MobileNumber:      req.MobileNumber,
			BankAccountNumber: req.BankAccountNumber,
			BankName:          req.BankName,
			NationalID:        req.NationalID,
			NationalCardFront: front,
			NationalCardBack:  back,
		}
	}

	user, err := h.AuthService.Register(input)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Created(c, toUserSummary(user))
}

// openFormFile 打开表单文件，调用方负责关闭
func openFormFile(c *gin.Context, field string) (*service.UploadFile, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*service.UploadFile, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &service.UploadFile{Name: header.Filename, Size: header.Size, Content: file}, func() { _ = file.Close() }, nil
}

// VerifyEmail 验证邮箱并激活账号
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.AuthService.VerifyEmail(req.Token)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, toUserSummary(user))
}

// Login 登录，刷新令牌写入 httpOnly Cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.verifyCaptcha(c, service.CaptchaSceneLogin, req.CaptchaPayloadRequest) {
		return
	}

	result, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.setRefreshCookie(c, result.Refresh.Value, result.Refresh.ExpiresAt)
	handlershared.RequestLog(c).Infow("auth_login_succeeded", "user_id", result.User.ID)
	response.Success(c, newTokenResponse(result.User, result.Access))
}

// Refresh 使用 Cookie 中的刷新令牌换取访问令牌
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.refreshCookieName())
	if err != nil || refreshToken == "" {
		respondError(c, response.CodeUnauthorized, "error.refresh_token_missing", nil)
		return
	}
	user, access, err := h.AuthService.Refresh(refreshToken)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, newTokenResponse(user, access))
}

// Logout 清除刷新令牌 Cookie
func (h *Handler) Logout(c *gin.Context) {
	h.setRefreshCookie(c, "", time.Time{})
	response.Success(c, gin.H{"logout": true})
}

// ForgotPassword 发送重置密码邮件
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.verifyCaptcha(c, service.CaptchaSceneForgotPassword, req.CaptchaPayloadRequest) {
		return
	}
	if err := h.AuthService.ForgotPassword(req.Email, i18n.ResolveLocale(c)); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// ResetPassword 通过重置令牌设置新密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.AuthService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"reset": true})
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.AuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.setRefreshCookie(c, "", time.Time{})
	response.Success(c, gin.H{"changed": true})
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", err)
		return
	}
	response.Success(c, challenge)
}

func newTokenResponse(user *models.User, access service.IssuedToken) TokenResponse {
	return TokenResponse{
		AccessToken: access.Value,
		ExpiresAt:   access.ExpiresAt,
		User:        toUserSummary(user),
		Role:        user.Role,
	}
}

func (h *Handler) refreshCookieName() string {
	if name := h.Config.Security.RefreshCookie.Name; name != "" {
		return name
	}
	return "refresh_token"
}

// setRefreshCookie 空值表示清除
func (h *Handler) setRefreshCookie(c *gin.Context, value string, expiresAt time.Time) {
	cookieCfg := h.Config.Security.RefreshCookie
	maxAge := -1
	if value != "" {
		maxAge = int(time.Until(expiresAt).Seconds())
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.refreshCookieName(),
		Value:    value,
		Path:     cookieCfg.Path,
		Domain:   cookieCfg.Domain,
		MaxAge:   maxAge,
		Secure:   cookieCfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
