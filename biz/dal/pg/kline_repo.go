package pg

import (
	"errors"

	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type KlineRepo struct {
	db *gorm.DB
}

func NewKlineRepo(db *gorm.DB) *KlineRepo {
	return &KlineRepo{db: db}
}

// CreateKline 插入K线
func (r *KlineRepo) CreateKline(k *model.Kline) error {
	return r.db.Create(k).Error
}

// SaveKline 更新K线
func (r *KlineRepo) SaveKline(k *model.Kline) error {
	return r.db.Save(k).Error
}

// GetKline 查询某 symbol+period+bucket 的K线，不存在返回 nil
func (r *KlineRepo) GetKline(symbol, period string, bucket int64) (*model.Kline, error) {
	var k model.Kline
	err := r.db.Where("symbol = ? AND period = ? AND timestamp = ?", symbol, period, bucket).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// ListKlines 查询K线历史，时间倒序
func (r *KlineRepo) ListKlines(symbol, period string, limit int) ([]model.Kline, error) {
	var rows []model.Kline
	err := r.db.Where("symbol = ? AND period = ?", symbol, period).
		Order("timestamp desc").Limit(limit).Find(&rows).Error
	return rows, err
}
