package models

import (
	"time"

	"gorm.io/gorm"

	"lumra-http-service/utils"
)

// Guardian represents a guardian (caregiver) account
type Guardian struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	Relation  string    `gorm:"type:varchar(30);not null" json:"relation"` // 与老人的关系，如"daughter"、"son"
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`       // 不在JSON中暴露密码
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Requests []GuardianRequest `gorm:"foreignKey:GuardianID" json:"requests,omitempty"`
}

// TableName 指定表名
func (Guardian) TableName() string {
	return "guardian"
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (g *Guardian) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if g.Password != "" {
		hashedPassword, err := utils.HashPassword(g.Password)
		if err != nil {
			return err
		}
		g.Password = hashedPassword
	}
	return nil
}
