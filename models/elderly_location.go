package models

import "time"

// ElderlyLocation represents one recorded location ping for an elderly user.
// 位置记录只追加不修改，唯一的例外是刚插入的那一行的 inside 标记：
// 它在围栏判定完成后被回写一次，此后保持不变。
type ElderlyLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ElderlyID uint      `gorm:"index;not null" json:"elderly_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"` // 服务端打点时间
	Inside    bool      `gorm:"not null;default:true" json:"inside"`
}

// TableName 指定表名
func (ElderlyLocation) TableName() string {
	return "elderly_location"
}
