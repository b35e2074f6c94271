package pg

import (
	"errors"

	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type CopyRepo struct {
	db *gorm.DB
}

func NewCopyRepo(db *gorm.DB) *CopyRepo {
	return &CopyRepo{db: db}
}

// CreatePostedTrade 插入交易员发布的交易
func (r *CopyRepo) CreatePostedTrade(p *model.PostedTrade) error {
	return r.db.Create(p).Error
}

// GetPostedTradeByID 查询发布的交易，不存在返回 nil
func (r *CopyRepo) GetPostedTradeByID(id uint) (*model.PostedTrade, error) {
	var p model.PostedTrade
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPostedTrades 查询发布的交易列表
func (r *CopyRepo) ListPostedTrades(traderID uint, status string, limit int) ([]model.PostedTrade, error) {
	var rows []model.PostedTrade
	db := r.db.Model(&model.PostedTrade{})
	if traderID != 0 {
		db = db.Where("trader_id = ?", traderID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// UpdatePostedTradeStatus 更新发布状态
func (r *CopyRepo) UpdatePostedTradeStatus(id uint, status string) error {
	return r.db.Model(&model.PostedTrade{}).Where("id = ?", id).Update("status", status).Error
}

// ListCopiedTradesByUser 查询用户全部跟单
func (r *CopyRepo) ListCopiedTradesByUser(userID uint) ([]model.CopiedTrade, error) {
	var rows []model.CopiedTrade
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error
	return rows, err
}
