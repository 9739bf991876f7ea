package provider

import (
	"github.com/bangmod-market/internal/authz"
	"github.com/bangmod-market/internal/cache"
	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/queue"
	"github.com/bangmod-market/internal/repository"
	"github.com/bangmod-market/internal/service"

	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	SellerRepo        repository.SellerRepository
	BrandRepo         repository.BrandRepository
	SaleItemRepo      repository.SaleItemRepository
	SaleItemImageRepo repository.SaleItemImageRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository

	// Services
	AuthzService      *authz.Service
	TokenService      *service.TokenService
	AuthService       *service.AuthService
	UserService       *service.UserService
	BrandService      *service.BrandService
	CatalogService    *service.CatalogService
	CartService       *service.CartService
	OrderService      *service.OrderService
	OrderQueryService *service.OrderQueryService
	CaptchaService    *service.CaptchaService
	EmailService      *service.EmailService
	FileStorage       service.FileStorage

	// MailSender 由 worker 消费邮件任务时使用
	MailSender     service.MailSender
	MailDispatcher *service.MailDispatcher
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.SellerRepo = repository.NewSellerRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.SaleItemRepo = repository.NewSaleItemRepository(db)
	c.SaleItemImageRepo = repository.NewSaleItemImageRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.MailSender = c.EmailService
	c.MailDispatcher = service.NewMailDispatcher(c.QueueClient, c.MailSender)
	c.FileStorage = service.NewLocalFileStorage(afero.NewOsFs(), c.Config.Upload)
	c.TokenService = service.NewTokenService(c.Config.JWT)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, service.NewBcryptHasher(bcrypt.DefaultCost), c.TokenService, c.FileStorage, c.MailDispatcher)
	c.UserService = service.NewUserService(c.UserRepo)
	c.BrandService = service.NewBrandService(c.BrandRepo)
	c.CatalogService = service.NewCatalogService(c.Config, c.SaleItemRepo, c.SaleItemImageRepo, c.BrandRepo, c.UserRepo, c.FileStorage)
	c.CartService = service.NewCartService(c.CartRepo, c.SaleItemRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.SaleItemRepo, c.UserRepo, c.CartService, c.MailDispatcher)
	c.OrderQueryService = service.NewOrderQueryService(c.Config, c.OrderRepo, c.UserRepo)
}
