package pg

import (
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type TradeRepo struct {
	db *gorm.DB
}

func NewTradeRepo(db *gorm.DB) *TradeRepo {
	return &TradeRepo{db: db}
}

// ListTradesByUser 查询用户成交记录
func (r *TradeRepo) ListTradesByUser(userID uint, limit, offset int) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp desc").Limit(limit).Offset(offset).Find(&trades).Error
	return trades, err
}

// ListTradesBySymbol 查询某资产成交记录
func (r *TradeRepo) ListTradesBySymbol(symbol string, limit int) ([]model.Trade, error) {
	var trades []model.Trade
	db := r.db.Model(&model.Trade{})
	if symbol != "" {
		db = db.Where("symbol = ?", symbol)
	}
	err := db.Order("timestamp desc").Limit(limit).Find(&trades).Error
	return trades, err
}
