package services

import (
	"errors"

	"gorm.io/gorm"

	"lumra-http-service/config"
	"lumra-http-service/models"
)

// ErrGeofenceNotFound 该老人尚未设置安全围栏
var ErrGeofenceNotFound = errors.New("no geofence set for this elderly")

// InterfaceGeofenceService defines the geofence store interface
type InterfaceGeofenceService interface {
	SetGeofence(elderlyID uint, lat, lon, radius float64) (created bool, err error)
	GetGeofence(elderlyID uint) (*models.Geofence, error)
}

// GeofenceService 提供安全围栏相关的服务
type GeofenceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewGeofenceService 创建一个新的围栏服务
func NewGeofenceService(db *gorm.DB, cfg *config.Config) InterfaceGeofenceService {
	return &GeofenceService{
		DB:     db,
		Config: cfg,
	}
}

// SetGeofence 为老人设置安全围栏。已存在则原地更新中心与半径（upsert），
// 返回值区分创建与更新以供提示消息使用。elderly_id 上的唯一索引保证
// 任何时刻每位老人最多一条围栏记录。
func (s *GeofenceService) SetGeofence(elderlyID uint, lat, lon, radius float64) (bool, error) {
	var elderly models.Elderly
	if err := s.DB.First(&elderly, elderlyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrElderlyNotFound
		}
		return false, err
	}

	var fence models.Geofence
	err := s.DB.Where("elderly_id = ?", elderlyID).First(&fence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fence = models.Geofence{
			ElderlyID: elderlyID,
			Latitude:  lat,
			Longitude: lon,
			Radius:    radius,
		}
		if err := s.DB.Create(&fence).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	updates := map[string]interface{}{
		"latitude":  lat,
		"longitude": lon,
		"radius":    radius,
	}
	if err := s.DB.Model(&fence).Updates(updates).Error; err != nil {
		return false, err
	}
	return false, nil
}

// GetGeofence 获取老人当前生效的围栏
func (s *GeofenceService) GetGeofence(elderlyID uint) (*models.Geofence, error) {
	var fence models.Geofence
	if err := s.DB.Where("elderly_id = ?", elderlyID).First(&fence).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGeofenceNotFound
		}
		return nil, err
	}
	return &fence, nil
}
