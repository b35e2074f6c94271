package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// SubscriptionPlan 订阅套餐
type SubscriptionPlan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(32,18);not null" json:"price"`
	DurationDays int             `gorm:"column:duration_days;not null" json:"duration_days"`
	Perks        string          `gorm:"column:perks" json:"perks"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// UserSubscription 用户订阅记录
type UserSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	PlanID    uint      `gorm:"column:plan_id;index;not null" json:"plan_id"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;not null" json:"end_date"`
	Status    string    `gorm:"column:status;index;not null;default:active" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
