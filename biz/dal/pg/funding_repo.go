package pg

import (
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type FundingRepo struct {
	db *gorm.DB
}

func NewFundingRepo(db *gorm.DB) *FundingRepo {
	return &FundingRepo{db: db}
}

// CreateDeposit 插入充值申请
func (r *FundingRepo) CreateDeposit(d *model.Deposit) error {
	return r.db.Create(d).Error
}

// CreateWithdrawal 插入提现申请
func (r *FundingRepo) CreateWithdrawal(w *model.Withdrawal) error {
	return r.db.Create(w).Error
}

// ListDeposits 按状态/用户查询充值申请
func (r *FundingRepo) ListDeposits(userID uint, status string, limit int) ([]model.Deposit, error) {
	var rows []model.Deposit
	db := r.db.Model(&model.Deposit{})
	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// ListWithdrawals 按状态/用户查询提现申请
func (r *FundingRepo) ListWithdrawals(userID uint, status string, limit int) ([]model.Withdrawal, error) {
	var rows []model.Withdrawal
	db := r.db.Model(&model.Withdrawal{})
	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}
