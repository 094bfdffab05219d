package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"lumra-http-service/config"
	"lumra-http-service/models"
)

// 最近位置缓存的有效期。位置数据以更新驱动，过期后回落到数据库读取。
const latestLocationTTL = 5 * time.Minute

// InterfaceRedisService defines the cache service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheLatestLocation(loc *models.ElderlyLocation) error
	GetLatestLocation(elderlyID uint) (*models.ElderlyLocation, error)
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheLatestLocation 缓存老人的最近一次定位
func (s *RedisService) CacheLatestLocation(loc *models.ElderlyLocation) error {
	return s.Set(latestLocationKey(loc.ElderlyID), loc, latestLocationTTL)
}

// GetLatestLocation 从缓存读取老人的最近一次定位
func (s *RedisService) GetLatestLocation(elderlyID uint) (*models.ElderlyLocation, error) {
	var loc models.ElderlyLocation
	if err := s.Get(latestLocationKey(elderlyID), &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func latestLocationKey(elderlyID uint) string {
	return fmt.Sprintf("location:latest:%d", elderlyID)
}
