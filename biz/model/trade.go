package model

import (
	"github.com/shopspring/decimal"
)

// 交易方向
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Trade 成交流水模型（GORM），落库后不再修改
type Trade struct {
	TradeID   string          `gorm:"primaryKey;column:trade_id" json:"trade_id"`
	UserID    uint            `gorm:"column:user_id;index" json:"user_id"`
	AssetID   uint            `gorm:"column:asset_id;index" json:"asset_id"`
	Symbol    string          `gorm:"column:symbol;index" json:"symbol"`
	Side      string          `gorm:"column:side" json:"side"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(32,18)" json:"amount"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(32,18)" json:"price"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(32,18)" json:"total"`
	Timestamp int64           `gorm:"column:timestamp;index" json:"timestamp"`
}

func (Trade) TableName() string {
	return "trades"
}

func ValidSide(s string) bool {
	return s == SideBuy || s == SideSell
}

// TotalValue 计算成交额 amount*price
func TotalValue(amount, price decimal.Decimal) decimal.Decimal {
	return amount.Mul(price)
}
