package model

// Kline 行情K线，由价格推送按周期聚合
type Kline struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Symbol    string `gorm:"index:idx_symbol_period_time" json:"symbol"`
	Period    string `gorm:"index:idx_symbol_period_time" json:"period"`
	Timestamp int64  `gorm:"index:idx_symbol_period_time" json:"timestamp"`
	Open      string `json:"open"`
	Close     string `json:"close"`
	High      string `json:"high"`
	Low       string `json:"low"`
}

func (Kline) TableName() string {
	return "kline"
}
