package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"lumra-http-service/config"
	"lumra-http-service/services"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 业务服务
	accountService  services.InterfaceAccountService
	requestService  services.InterfaceRequestService
	geofenceService services.InterfaceGeofenceService
	locationService services.InterfaceLocationService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// Redis为可选依赖，未配置时位置服务退化为仅查库
	if c.config.RedisEnabled() {
		c.redisService = services.NewRedisService(c.config)
		if err := pingRedis(c.config); err != nil {
			log.Printf("Redis连接测试失败: %v，最近位置缓存可能不可用", err)
		}
	}

	// 初始化业务服务
	c.accountService = services.NewAccountService(c.db, c.config)
	c.requestService = services.NewRequestService(c.db, c.config)
	c.geofenceService = services.NewGeofenceService(c.db, c.config)
	c.locationService = services.NewLocationService(c.db, c.config, c.redisService)
}

// pingRedis 测试Redis连接
func pingRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.Ping(ctx).Err()
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "account":
		return c.accountService
	case "request":
		return c.requestService
	case "geofence":
		return c.geofenceService
	case "location":
		return c.locationService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
