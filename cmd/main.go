package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fc_shop_v1/internal/config"
	"fc_shop_v1/internal/controller"
	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/internal/repository/memstore"
	"fc_shop_v1/internal/router"
	"fc_shop_v1/internal/service"
	"fc_shop_v1/internal/task"
	"fc_shop_v1/pkg/database"
	"fc_shop_v1/pkg/logger"
	"fc_shop_v1/pkg/storage"
)

func main() {
	// 1. 配置与日志
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()

	// 2. 会话配置
	middleware.SetSessionConfig(&middleware.SessionConfig{
		SecretKey:  cfg.SessionSecret,
		TTL:        7 * 24 * time.Hour,
		Issuer:     "fc-shop",
		Production: cfg.IsProduction(),
	})

	// 3. 初始化依赖
	deps, err := initDependencies(cfg)
	if err != nil {
		logger.L().Fatal("依赖初始化失败", zap.Error(err))
	}

	// 4. 默认管理员
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := deps.Services.User.EnsureDefaultAdmin(ctx, cfg.AdminUser, cfg.AdminPassword); err != nil {
		logger.L().Fatal("默认管理员创建失败", zap.Error(err))
	}
	cancel()

	// 5. 定时任务
	initTasks(cfg, deps)

	// 6. 路由
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(cfg.CORSOrigin), middleware.Metrics())
	router.InitRoutes(r,
		deps.Controllers.Product,
		deps.Controllers.Checkout,
		deps.Controllers.Order,
		deps.Controllers.Auth,
		deps.Controllers.Version,
		deps.Controllers.Media,
	)

	// 7. 启动服务
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Product   repository.ProductRepository
	Variation repository.VariationRepository
	Customer  repository.CustomerRepository
	Order     repository.OrderRepository
	OrderItem repository.OrderItemRepository
	User      repository.UserRepository
	Media     repository.MediaRepository
	Version   repository.VersionRepository
	Checkout  repository.CheckoutUnitOfWork
}

// Services 服务集合
type Services struct {
	Catalog  *service.CatalogService
	Checkout *service.CheckoutService
	Order    *service.OrderService
	User     *service.UserService
	Version  *service.VersionService
	Media    *service.MediaService
	Notify   *service.NotifyService
}

// Controllers 控制器集合
type Controllers struct {
	Product  *controller.ProductController
	Checkout *controller.CheckoutController
	Order    *controller.OrderController
	Auth     *controller.AuthController
	Version  *controller.VersionController
	Media    *controller.MediaController
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config) (*Dependencies, error) {
	repos, err := initRepositories(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := storage.NewProvider(cfg.StorageOptions())
	if err != nil {
		return nil, err
	}

	notifySvc := service.NewNotifyService(cfg.WebhookURL)

	services := &Services{
		Catalog:  service.NewCatalogService(repos.Product, repos.Variation),
		Checkout: service.NewCheckoutService(repos.Checkout, notifySvc),
		Order:    service.NewOrderService(repos.Order, repos.Customer),
		User:     service.NewUserService(repos.User),
		Version:  service.NewVersionService(repos.Version),
		Media:    service.NewMediaService(repos.Media, provider),
		Notify:   notifySvc,
	}

	controllers := &Controllers{
		Product:  controller.NewProductController(services.Catalog),
		Checkout: controller.NewCheckoutController(services.Checkout),
		Order:    controller.NewOrderController(services.Order),
		Auth:     controller.NewAuthController(services.User),
		Version:  controller.NewVersionController(services.Version),
		Media:    controller.NewMediaController(services.Media),
	}

	return &Dependencies{
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}, nil
}

// initRepositories 初始化仓库
// DATABASE_URL 为空时使用内存存储，适合演示和本地开发
func initRepositories(cfg *config.Config) (*Repositories, error) {
	if cfg.DatabaseURL == "" {
		logger.L().Info("未配置 DATABASE_URL，使用内存存储")
		store := memstore.NewStore()
		return &Repositories{
			Product:   store.Products(),
			Variation: store.Variations(),
			Customer:  store.Customers(),
			Order:     store.Orders(),
			OrderItem: store.OrderItems(),
			User:      store.Users(),
			Media:     store.Media(),
			Version:   store.Versions(),
			Checkout:  store.Checkout(),
		}, nil
	}

	db, err := database.InitDB(cfg.DatabaseURL,
		&model.Product{}, &model.ProductVariation{},
		&model.Customer{},
		&model.Order{}, &model.OrderItem{},
		&model.User{},
		&model.Media{},
		&model.SiteVersion{},
	)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Product:   repository.NewProductRepository(db),
		Variation: repository.NewVariationRepository(db),
		Customer:  repository.NewCustomerRepository(db),
		Order:     repository.NewOrderRepository(db),
		OrderItem: repository.NewOrderItemRepository(db),
		User:      repository.NewUserRepository(db),
		Media:     repository.NewMediaRepository(db),
		Version:   repository.NewVersionRepository(db),
		Checkout:  repository.NewCheckoutUnitOfWork(db),
	}, nil
}

// ==================== 定时任务 ====================

// initTasks 启动定时任务
func initTasks(cfg *config.Config, deps *Dependencies) {
	pruneTask := task.NewSessionPruneTask(cfg.TaskConfig.SessionPruneSpec)
	if err := pruneTask.Start(); err != nil {
		logger.L().Fatal("会话清理任务启动失败", zap.Error(err))
	}

	alertTask := task.NewStockAlertTask(
		deps.Repos.Product,
		deps.Repos.Variation,
		deps.Services.Notify,
		cfg.TaskConfig.StockAlertSpec,
		cfg.TaskConfig.StockThreshold,
	)
	if err := alertTask.Start(); err != nil {
		logger.L().Fatal("低库存巡检任务启动失败", zap.Error(err))
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务并等待退出信号
func startServer(cfg *config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.L().Info("服务启动", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Fatal("服务强制关闭", zap.Error(err))
	}

	logger.L().Info("服务已退出")
}
