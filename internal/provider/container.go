package provider

import (
	"github.com/linea-next/internal/authz"
	"github.com/linea-next/internal/cache"
	"github.com/linea-next/internal/config"
	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/models"
	"github.com/linea-next/internal/queue"
	"github.com/linea-next/internal/repository"
	"github.com/linea-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	ProductRepo       repository.ProductRepository
	VariantRepo       repository.VariantRepository
	AttributeRepo     repository.AttributeRepository
	CategoryRepo      repository.CategoryRepository
	BrandRepo         repository.BrandRepository
	DiscountRepo      repository.DiscountRepository
	DiscountUsageRepo repository.DiscountUsageRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	CatalogService       *service.CatalogService
	ProductService       *service.ProductService
	AttributeService     *service.AttributeService
	CategoryService      *service.CategoryService
	BrandService         *service.BrandService
	CartService          *service.CartService
	DiscountService      *service.DiscountService
	DiscountAdminService *service.DiscountAdminService
	PricingService       *service.PricingService
	OrderService         *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.AttributeRepo = repository.NewAttributeRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
	c.DiscountUsageRepo = repository.NewDiscountUsageRepository(db)
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

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CatalogService = service.NewCatalogService(c.Config, c.ProductRepo, c.AttributeRepo, c.CategoryRepo, c.BrandRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo, c.AttributeRepo, c.CategoryRepo, c.BrandRepo)
	c.AttributeService = service.NewAttributeService(c.AttributeRepo, c.VariantRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.BrandService = service.NewBrandService(c.BrandRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.VariantRepo)
	c.DiscountService = service.NewDiscountService(c.DiscountRepo, c.DiscountUsageRepo)
	c.DiscountAdminService = service.NewDiscountAdminService(c.DiscountRepo, c.ProductRepo, c.CategoryRepo)
	c.PricingService = service.NewPricingService(c.Config)
	c.OrderService = service.NewOrderService(
		c.Config,
		c.OrderRepo,
		c.CartRepo,
		c.VariantRepo,
		c.DiscountRepo,
		c.DiscountUsageRepo,
		c.CartService,
		c.DiscountService,
		c.PricingService,
		c.QueueClient,
	)
}
