package pg

import (
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type AuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Append 追加一条审计流水
func (r *AuditRepo) Append(adminID uint, action, target, detail string) error {
	return r.db.Create(&model.AdminAuditLog{
		AdminID: adminID,
		Action:  action,
		Target:  target,
		Detail:  detail,
	}).Error
}

// Recent 查询最近的审计流水
func (r *AuditRepo) Recent(limit int) ([]model.AdminAuditLog, error) {
	var rows []model.AdminAuditLog
	err := r.db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}
