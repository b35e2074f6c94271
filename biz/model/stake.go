package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StakeStatusActive    = "active"
	StakeStatusCompleted = "completed"
)

// UserStake 质押记录，ROI 与周期在开仓时从资产参数拷贝固定
type UserStake struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	AssetID   uint            `gorm:"column:asset_id;index;not null" json:"asset_id"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(32,18);not null" json:"amount"`
	ROI       decimal.Decimal `gorm:"column:roi;type:decimal(32,18);not null" json:"roi"`
	CycleDays int             `gorm:"column:cycle_days;not null" json:"cycle_days"`
	StartDate time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time       `gorm:"column:end_date;index;not null" json:"end_date"`
	Status    string          `gorm:"column:status;index;not null;default:active" json:"status"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (UserStake) TableName() string {
	return "user_stakes"
}

// Payout 到期应返还数量 amount*(1+roi/100)
func (s *UserStake) Payout() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return s.Amount.Add(s.Amount.Mul(s.ROI).Div(hundred))
}
