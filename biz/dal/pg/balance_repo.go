package pg

import (
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type BalanceRepo struct {
	db *gorm.DB
}

func NewBalanceRepo(db *gorm.DB) *BalanceRepo {
	return &BalanceRepo{db: db}
}

// ListUserAssetBalances 查询用户全部持仓
func (r *BalanceRepo) ListUserAssetBalances(userID uint) ([]model.UserAssetBalance, error) {
	var balances []model.UserAssetBalance
	err := r.db.Where("user_id = ?", userID).Find(&balances).Error
	return balances, err
}
