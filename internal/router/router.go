package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fc_shop_v1/internal/controller"
	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/internal/model"

	_ "fc_shop_v1/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	productCtl *controller.ProductController,
	checkoutCtl *controller.CheckoutController,
	orderCtl *controller.OrderController,
	authCtl *controller.AuthController,
	versionCtl *controller.VersionController,
	mediaCtl *controller.MediaController) {

	// 1. 运维端点
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 2. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 3. API 路由组
	// 店面与后台共用 /api 前缀：读接口公开，写接口（及订单、媒体）要求管理员会话
	api := r.Group("/api")
	admin := r.Group("/api", middleware.SessionAuth(), middleware.RequireRole(model.UserRoleAdmin))

	// 店面（无需登录）
	{
		api.GET("/products", productCtl.ListProducts)
		api.GET("/products/:id", productCtl.GetProduct)
		api.POST("/checkout", checkoutCtl.Checkout)
		api.GET("/versions/active", versionCtl.ActiveVersion)
	}

	// auth 鉴权组
	auth := api.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
		auth.GET("/status", authCtl.Status)
		auth.PUT("/password", middleware.SessionAuth(), authCtl.ChangePassword)
	}

	// 商品维护（后台）
	{
		admin.GET("/products/all", productCtl.AdminListProducts)
		admin.POST("/products", productCtl.CreateProduct)
		admin.PUT("/products/:id", productCtl.UpdateProduct)
		admin.DELETE("/products/:id", productCtl.DeleteProduct)
		admin.PATCH("/products/:id/stock", productCtl.AdjustProductStock)

		admin.POST("/products/:id/variations", productCtl.AddVariation)
		admin.PUT("/products/:id/variations/:vid", productCtl.UpdateVariation)
		admin.DELETE("/products/:id/variations/:vid", productCtl.DeleteVariation)
		admin.PATCH("/products/:id/variations/:vid/stock", productCtl.AdjustVariationStock)
	}

	// 订单管理（后台）
	{
		admin.GET("/orders", orderCtl.ListOrders)
		admin.GET("/orders/stats", orderCtl.GetStats)
		admin.GET("/orders/:id", orderCtl.GetOrder)
		admin.PUT("/orders/:id/status", orderCtl.UpdateStatus)
		admin.GET("/customers", orderCtl.ListCustomers)
	}

	// 站点版本（后台）
	{
		admin.GET("/versions", versionCtl.ListVersions)
		admin.POST("/versions", versionCtl.CreateVersion)
		admin.PUT("/versions/:id/activate", versionCtl.ActivateVersion)
		admin.DELETE("/versions/:id", versionCtl.DeleteVersion)
	}

	// 媒体库（后台）
	{
		admin.GET("/media", mediaCtl.ListMedia)
		admin.POST("/media", mediaCtl.Register)
		admin.DELETE("/media/:id", mediaCtl.DeleteMedia)
		admin.GET("/media/:id/signed-url", mediaCtl.SignedURL)
	}
}
