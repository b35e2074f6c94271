package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 资产类型
const (
	AssetKindCrypto = "crypto"
	AssetKindStock  = "stock"
)

// Asset 可交易资产模型（GORM）
// PriceUSD 为最近一次落库的报价，质押参数仅在 StakingEnabled 时生效
type Asset struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Symbol         string          `gorm:"column:symbol;uniqueIndex;not null" json:"symbol"`
	Name           string          `gorm:"column:name" json:"name"`
	Kind           string          `gorm:"column:kind;not null;default:crypto" json:"kind"`
	IconURL        string          `gorm:"column:icon_url" json:"icon_url"`
	PriceUSD       decimal.Decimal `gorm:"column:price_usd;type:decimal(32,18);not null;default:0" json:"price_usd"`
	StakingEnabled bool            `gorm:"column:staking_enabled;not null;default:false" json:"staking_enabled"`
	StakeMin       decimal.Decimal `gorm:"column:stake_min;type:decimal(32,18);not null;default:0" json:"stake_min"`
	StakeMax       decimal.Decimal `gorm:"column:stake_max;type:decimal(32,18);not null;default:0" json:"stake_max"`
	StakeROI       decimal.Decimal `gorm:"column:stake_roi;type:decimal(32,18);not null;default:0" json:"stake_roi"`
	StakeCycleDays int             `gorm:"column:stake_cycle_days;not null;default:0" json:"stake_cycle_days"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// UserAssetBalance 用户持有的资产数量（区别于 USD 现金余额）
// (user_id, asset_id) 唯一
type UserAssetBalance struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"column:user_id;uniqueIndex:idx_user_asset;not null" json:"user_id"`
	AssetID   uint            `gorm:"column:asset_id;uniqueIndex:idx_user_asset;not null" json:"asset_id"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(32,18);not null;default:0" json:"amount"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (UserAssetBalance) TableName() string {
	return "user_asset_balances"
}
