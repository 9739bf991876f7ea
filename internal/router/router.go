package router

import (
	"fmt"
	"strings"

	"github.com/bangmod-market/internal/config"
	handlershared "github.com/bangmod-market/internal/http/handlers/shared"
	publichandlers "github.com/bangmod-market/internal/http/handlers/public"
	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/i18n"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	handlershared.SetupValidator()
	r := gin.New()

	h := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bm"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_rate_limited",
	}

	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})
	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.route_not_found"))
	})

	api := r.Group("/api")

	// 公开接口
	{
		auth := api.Group("/v1/auth")
		auth.POST("/register", h.Register)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/login", RateLimitMiddleware(loginRule, KeyByIPAndJSONField("email")), h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/captcha", h.GetImageCaptcha)

		api.GET("/v1/brands", h.ListBrands)
		api.GET("/v1/brands/:id", h.GetBrand)

		api.GET("/v1/sale-items", h.ListAllSaleItems)
		api.GET("/v1/sale-items/:id", h.GetSaleItem)
		api.GET("/v2/sale-items", h.GallerySaleItems)
		api.GET("/v2/sale-items/storages", h.ListStorages)
		api.GET("/v2/sale-items/:id", h.GetSaleItem)
		api.GET("/v2/sellers/:id/sale-items", h.ListSellerSaleItems)
	}

	// 登录后接口，按角色授权
	secured := api.Group("")
	secured.Use(UserJWTAuthMiddleware(c.TokenService, c.UserRepo), RoleAuthorizeMiddleware(c.AuthzService))
	{
		secured.PUT("/v1/auth/change-password", h.ChangePassword)

		secured.GET("/v2/users/:id/profile", h.GetProfile)
		secured.PUT("/v2/users/:id/profile", h.UpdateProfile)
		secured.GET("/v2/users/:id/address", h.GetShippingAddress)
		secured.PUT("/v2/users/:id/address", h.UpdateShippingAddress)
		secured.GET("/v2/users/:id/orders", h.ListBuyerOrders)

		secured.POST("/v1/brands", h.CreateBrand)
		secured.PUT("/v1/brands/:id", h.UpdateBrand)
		secured.DELETE("/v1/brands/:id", h.DeleteBrand)

		secured.POST("/v1/sale-items", h.CreateSaleItem)
		secured.PUT("/v1/sale-items/:id", h.UpdateSaleItem)
		secured.DELETE("/v1/sale-items/:id", h.DeleteSaleItem)
		secured.PUT("/v2/sale-items/:id", h.UpdateSaleItemWithImages)
		secured.DELETE("/v2/sale-items/:id", h.DeleteSaleItem)
		secured.POST("/v2/sellers/:id/sale-items", h.CreateSellerSaleItem)

		secured.GET("/v2/cart/:id", h.GetCart)
		secured.POST("/v2/cart", h.AddCartItem)
		secured.PUT("/v2/cart/:id", h.UpdateCartItem)
		secured.DELETE("/v2/cart/:id", h.RemoveCartItem)
		secured.PUT("/v2/cart/:id/select", h.SelectAllCartItems)
		secured.PUT("/v2/cart/:id/select/:sid", h.SelectSellerCartItems)
		secured.DELETE("/v2/cart/:id/sellers/:sid", h.RemoveSellerCartItems)

		secured.POST("/v2/orders", h.PlaceOrders)
		secured.GET("/v2/orders/new/count", h.CountNewOrders)
		secured.GET("/v2/orders/:id", h.GetOrder)
		secured.PUT("/v2/orders/:id/read", h.MarkOrderAsRead)
		secured.GET("/v2/sellers/:id/orders", h.ListSellerOrders)
		secured.GET("/v2/sellers/:id/orders/:orderId", h.GetSellerOrder)
	}

	return r
}
