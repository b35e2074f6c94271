package pg

import (
	"time"

	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type StakeRepo struct {
	db *gorm.DB
}

func NewStakeRepo(db *gorm.DB) *StakeRepo {
	return &StakeRepo{db: db}
}

// ListStakesByUser 查询用户质押记录
func (r *StakeRepo) ListStakesByUser(userID uint) ([]model.UserStake, error) {
	var stakes []model.UserStake
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&stakes).Error
	return stakes, err
}

// ListMaturedStakes 查询已到期且仍 active 的质押
func (r *StakeRepo) ListMaturedStakes(now time.Time, limit int) ([]model.UserStake, error) {
	var stakes []model.UserStake
	err := r.db.Where("status = ? AND end_date <= ?", model.StakeStatusActive, now).
		Order("end_date").Limit(limit).Find(&stakes).Error
	return stakes, err
}
