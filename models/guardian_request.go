package models

import "time"

// 连接请求状态，requested 为唯一的非终态
const (
	RequestStatusRequested = "requested"
	RequestStatusAccepted  = "accepted"
	RequestStatusRejected  = "rejected"
)

// GuardianRequest represents a guardian-to-elderly connection request.
// 同一个 (guardian_id, elderly_id) 对只允许存在一条记录，无论其状态如何，
// 由复合唯一索引在存储层强制执行（被拒绝的配对不允许重新发起请求）。
type GuardianRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GuardianID uint      `gorm:"not null;uniqueIndex:idx_guardian_elderly,priority:1" json:"guardian_id"`
	ElderlyID  uint      `gorm:"not null;uniqueIndex:idx_guardian_elderly,priority:2" json:"elderly_id"`
	Status     string    `gorm:"type:varchar(10);not null;default:requested" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Guardian *Guardian `gorm:"foreignKey:GuardianID" json:"guardian,omitempty"`
	Elderly  *Elderly  `gorm:"foreignKey:ElderlyID" json:"elderly,omitempty"`
}

// TableName 指定表名
func (GuardianRequest) TableName() string {
	return "guardian_requests"
}
