package models

import (
	"time"

	"gorm.io/gorm"

	"lumra-http-service/utils"
)

// Elderly represents an elderly user account
type Elderly struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    string    `gorm:"type:varchar(10);not null" json:"gender"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"` // 手机号作为登录账号，全局唯一
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	Medical   string    `gorm:"type:varchar(255)" json:"medical,omitempty"` // 病史/用药说明，可选
	Guardian  string    `gorm:"type:varchar(50);not null" json:"guardian"`  // 监护人姓名（自由文本，与Guardian账号无外键关系）
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`        // 不在JSON中暴露密码
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Requests  []GuardianRequest `gorm:"foreignKey:ElderlyID" json:"requests,omitempty"`
	Geofence  *Geofence         `gorm:"foreignKey:ElderlyID" json:"geofence,omitempty"`
	Locations []ElderlyLocation `gorm:"foreignKey:ElderlyID" json:"locations,omitempty"`
}

// TableName 指定表名
func (Elderly) TableName() string {
	return "elderly"
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (e *Elderly) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if e.Password != "" {
		hashedPassword, err := utils.HashPassword(e.Password)
		if err != nil {
			return err
		}
		e.Password = hashedPassword
	}
	return nil
}
