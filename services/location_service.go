package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lumra-http-service/config"
	"lumra-http-service/models"
	"lumra-http-service/utils"
)

// ErrLocationNotFound 该老人尚无任何位置记录
var ErrLocationNotFound = errors.New("no location recorded for this elderly")

// 位置历史单次查询的默认与最大条数
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// LocationStatus 一次定位上报的围栏判定结果。
// 未设置围栏时 Distance 为 nil。
type LocationStatus struct {
	Inside   bool
	Distance *float64
}

// InterfaceLocationService defines the location tracker interface
type InterfaceLocationService interface {
	RecordLocation(elderlyID uint, lat, lon float64) (*LocationStatus, error)
	GetLatestLocation(elderlyID uint) (*models.ElderlyLocation, error)
	ListLocationHistory(elderlyID uint, limit int) ([]models.ElderlyLocation, error)
}

// LocationService 提供位置上报与查询相关的服务
type LocationService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService // 可选，未配置Redis时为nil
}

// NewLocationService 创建一个新的位置服务
func NewLocationService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceLocationService {
	return &LocationService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// RecordLocation 记录一次定位并对照围栏判定。
// 流程：先插入打点（inside 默认 true），再查围栏；无围栏时直接返回
// inside=true 且不回写标记（没有围栏就不存在越界）。有围栏时按
// haversine 距离判定，边界按闭区间处理（恰好等于半径算界内），
// 且只回写刚插入的这一行——历史打点保留其记录时刻的判定结果。
func (s *LocationService) RecordLocation(elderlyID uint, lat, lon float64) (*LocationStatus, error) {
	ping := &models.ElderlyLocation{
		ElderlyID: elderlyID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: time.Now(),
		Inside:    true,
	}
	if err := s.DB.Create(ping).Error; err != nil {
		return nil, err
	}

	var fence models.Geofence
	err := s.DB.Where("elderly_id = ?", elderlyID).First(&fence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.cacheLatest(ping)
		return &LocationStatus{Inside: true}, nil
	}
	if err != nil {
		return nil, err
	}

	distance := utils.DistanceMeters(lat, lon, fence.Latitude, fence.Longitude)
	inside := distance <= fence.Radius

	if err := s.DB.Model(&models.ElderlyLocation{}).
		Where("id = ?", ping.ID).
		Update("inside", inside).Error; err != nil {
		return nil, err
	}
	ping.Inside = inside
	s.cacheLatest(ping)

	rounded := utils.Round2(distance)
	return &LocationStatus{Inside: inside, Distance: &rounded}, nil
}

// GetLatestLocation 获取老人的最近一次定位，优先读缓存
func (s *LocationService) GetLatestLocation(elderlyID uint) (*models.ElderlyLocation, error) {
	if s.Redis != nil {
		if loc, err := s.Redis.GetLatestLocation(elderlyID); err == nil {
			return loc, nil
		}
	}

	var loc models.ElderlyLocation
	if err := s.DB.Where("elderly_id = ?", elderlyID).Order("id DESC").First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// ListLocationHistory 按时间倒序返回老人的位置历史
func (s *LocationService) ListLocationHistory(elderlyID uint, limit int) ([]models.ElderlyLocation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var locations []models.ElderlyLocation
	if err := s.DB.Where("elderly_id = ?", elderlyID).Order("id DESC").Limit(limit).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// cacheLatest 尽力而为地刷新最近位置缓存，失败只记录不中断上报
func (s *LocationService) cacheLatest(ping *models.ElderlyLocation) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.CacheLatestLocation(ping); err != nil {
		config.Warning("刷新最近位置缓存失败: %v", err)
	}
}
