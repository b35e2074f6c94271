package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
)

type SubscriptionService struct {
	db   *gorm.DB
	repo *pg.SubscriptionRepo
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db, repo: pg.NewSubscriptionRepo(db)}
}

// Plans 套餐列表
func (s *SubscriptionService) Plans() ([]model.SubscriptionPlan, error) {
	return s.repo.ListPlans()
}

// SavePlan 管理端新增/更新套餐
func (s *SubscriptionService) SavePlan(plan *model.SubscriptionPlan) error {
	if plan.Price.IsNegative() || plan.DurationDays <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.SavePlan(plan)
}

// DeletePlan 管理端删除套餐
func (s *SubscriptionService) DeletePlan(id uint) error {
	plan, err := s.repo.GetPlanByID(id)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNotFound
	}
	return s.repo.DeletePlan(id)
}

// Subscribe 订阅套餐：扣款与订阅落库同一事务
func (s *SubscriptionService) Subscribe(userID, planID uint) (*model.UserSubscription, error) {
	plan, err := s.repo.GetPlanByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	sub := &model.UserSubscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		Status:    model.SubscriptionActive,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.Balance.LessThan(plan.Price) {
			return ErrInsufficientFunds
		}
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Update("balance", user.Balance.Sub(plan.Price)).Error; err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// ListByUser 用户订阅记录，读取时顺带把到期的标记为 expired
func (s *SubscriptionService) ListByUser(userID uint) ([]model.UserSubscription, error) {
	subs, err := s.repo.ListSubscriptionsByUser(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range subs {
		if subs[i].Status == model.SubscriptionActive && subs[i].EndDate.Before(now) {
			if err := s.repo.ExpireSubscription(subs[i].ID); err == nil {
				subs[i].Status = model.SubscriptionExpired
			}
		}
	}
	return subs, nil
}
