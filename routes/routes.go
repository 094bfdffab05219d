package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"lumra-http-service/config"
	"lumra-http-service/controllers"
	"lumra-http-service/middleware"
	"lumra-http-service/services"
	"lumra-http-service/services/container"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件（允许来源由配置决定，默认 "*" 仅用于开发环境）
	r.Use(corsMiddleware(cfg))
	// 请求追踪ID
	r.Use(middleware.RequestID())
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化认证中间件
	requestService := serviceContainer.GetService("request").(services.InterfaceRequestService)
	middleware.InitAuthMiddleware(cfg, requestService)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// corsMiddleware 按配置的允许来源列表处理跨域请求
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && cfg.OriginAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 注册与登录路由，公开接口按IP限流
	authLimiter := middleware.IPRateLimiter(5, 10)
	api.POST("/elderly/signup", authLimiter, controllers.HandleAccountFunc(container, "signupElderly"))
	api.POST("/guardian/signup", authLimiter, controllers.HandleAccountFunc(container, "signupGuardian"))
	api.POST("/login", authLimiter, controllers.HandleAccountFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authenticate())

	// 连接请求路由
	auth.POST("/guardian/request", controllers.HandleRequestFunc(container, "createRequest"))
	auth.GET("/guardian/:id/elderlies", middleware.RequireSelf(services.RoleGuardian, "id"), controllers.HandleRequestFunc(container, "getElderlies"))
	auth.GET("/elderly/:id/requests", middleware.RequireSelf(services.RoleElderly, "id"), controllers.HandleRequestFunc(container, "getPendingRequests"))
	auth.POST("/elderly/request/respond", controllers.HandleRequestFunc(container, "respondRequest"))
	auth.GET("/elderly/:id/guardians", middleware.ElderlyDataAccess("id"), controllers.HandleRequestFunc(container, "getGuardians"))

	// 围栏路由
	auth.POST("/geofence/set", controllers.HandleGeofenceFunc(container, "setGeofence"))
	auth.GET("/geofence/:elderly_id", middleware.ElderlyDataAccess("elderly_id"), controllers.HandleGeofenceFunc(container, "getGeofence"))

	// 位置路由
	auth.POST("/location/update", controllers.HandleLocationFunc(container, "updateLocation"))
	auth.GET("/location/:elderly_id/latest", middleware.ElderlyDataAccess("elderly_id"), controllers.HandleLocationFunc(container, "getLatestLocation"))
	auth.GET("/location/:elderly_id/history", middleware.ElderlyDataAccess("elderly_id"), controllers.HandleLocationFunc(container, "getLocationHistory"))
}
