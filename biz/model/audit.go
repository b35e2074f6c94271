package model

import "time"

// AdminAuditLog 管理操作审计流水
type AdminAuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   uint      `gorm:"column:admin_id;index;not null" json:"admin_id"`
	Action    string    `gorm:"column:action;index;not null" json:"action"`
	Target    string    `gorm:"column:target" json:"target"`
	Detail    string    `gorm:"column:detail" json:"detail"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
