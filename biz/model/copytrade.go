package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PostedTradeOpen   = "open"
	PostedTradeClosed = "closed"
)

const (
	CopyOutcomeWin  = "win"
	CopyOutcomeLoss = "loss"
)

// PostedTrade 交易员发布的可跟单交易
// DurationHours 为开放跟单窗口，超时后拒绝跟单
type PostedTrade struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TraderID      uint            `gorm:"column:trader_id;index;not null" json:"trader_id"`
	Symbol        string          `gorm:"column:symbol;index;not null" json:"symbol"`
	Side          string          `gorm:"column:side;not null" json:"side"`
	EntryPrice    decimal.Decimal `gorm:"column:entry_price;type:decimal(32,18);not null" json:"entry_price"`
	ProfitShare   decimal.Decimal `gorm:"column:profit_share;type:decimal(32,18);not null" json:"profit_share"`
	DurationHours int             `gorm:"column:duration_hours;not null" json:"duration_hours"`
	Status        string          `gorm:"column:status;index;not null;default:open" json:"status"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (PostedTrade) TableName() string {
	return "posted_trades"
}

// Expired 判断跟单窗口是否已关闭
func (p *PostedTrade) Expired(now time.Time) bool {
	return now.After(p.CreatedAt.Add(time.Duration(p.DurationHours) * time.Hour))
}

// CopiedTrade 用户跟单关系，(user_id, trader_id) 唯一
type CopiedTrade struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"column:user_id;uniqueIndex:idx_user_trader;not null" json:"user_id"`
	TraderID      uint            `gorm:"column:trader_id;uniqueIndex:idx_user_trader;not null" json:"trader_id"`
	PostedTradeID uint            `gorm:"column:posted_trade_id;index" json:"posted_trade_id"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(32,18);not null" json:"amount"`
	Outcome       string          `gorm:"column:outcome" json:"outcome"`
	Pnl           decimal.Decimal `gorm:"column:pnl;type:decimal(32,18);not null;default:0" json:"pnl"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (CopiedTrade) TableName() string {
	return "copied_trades"
}
