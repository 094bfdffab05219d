package models

import "time"

// Geofence represents the circular safe zone configured for an elderly user.
// 每位老人同一时间最多只有一条围栏记录（elderly_id 唯一索引），
// 重复设置按更新处理。
type Geofence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ElderlyID uint      `gorm:"uniqueIndex;not null" json:"elderly_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`  // 围栏中心纬度（度）
	Longitude float64   `gorm:"not null" json:"longitude"` // 围栏中心经度（度）
	Radius    float64   `gorm:"not null" json:"radius"`    // 围栏半径（米）
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Geofence) TableName() string {
	return "geofence"
}
