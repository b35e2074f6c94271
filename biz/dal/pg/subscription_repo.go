package pg

import (
	"errors"

	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// ListPlans 查询全部套餐
func (r *SubscriptionRepo) ListPlans() ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	err := r.db.Order("price").Find(&plans).Error
	return plans, err
}

// GetPlanByID 查询单个套餐，不存在返回 nil
func (r *SubscriptionRepo) GetPlanByID(id uint) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := r.db.First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// SavePlan 新增或更新套餐
func (r *SubscriptionRepo) SavePlan(plan *model.SubscriptionPlan) error {
	return r.db.Save(plan).Error
}

// DeletePlan 删除套餐
func (r *SubscriptionRepo) DeletePlan(id uint) error {
	return r.db.Delete(&model.SubscriptionPlan{}, id).Error
}

// ListSubscriptionsByUser 查询用户订阅记录
func (r *SubscriptionRepo) ListSubscriptionsByUser(userID uint) ([]model.UserSubscription, error) {
	var subs []model.UserSubscription
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

// ExpireSubscription 将订阅标记为过期
func (r *SubscriptionRepo) ExpireSubscription(id uint) error {
	return r.db.Model(&model.UserSubscription{}).Where("id = ?", id).
		Update("status", model.SubscriptionExpired).Error
}
