package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradex-hertz/biz/dal/kafka"
	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
	"tradex-hertz/util"
)

// ExecuteParams 下单参数，资产可按 ID 或符号引用
type ExecuteParams struct {
	AssetID uint
	Symbol  string
	Side    string
	Amount  decimal.Decimal
	Price   decimal.Decimal
}

type TradeService struct {
	db       *gorm.DB
	assets   *AssetService
	trades   *pg.TradeRepo
	balances *pg.BalanceRepo
	events   *kafka.Publisher
}

func NewTradeService(db *gorm.DB, assets *AssetService, events *kafka.Publisher) *TradeService {
	return &TradeService{
		db:       db,
		assets:   assets,
		trades:   pg.NewTradeRepo(db),
		balances: pg.NewBalanceRepo(db),
		events:   events,
	}
}

// Execute 执行一笔市价成交：资产解析在事务外（惰性建档允许良性竞态），
// 余额划转与流水落库在同一事务内，任一步失败全部回滚。
func (s *TradeService) Execute(ctx context.Context, userID uint, p ExecuteParams) (*model.Trade, error) {
	if !model.ValidSide(p.Side) {
		return nil, ErrInvalidSide
	}
	if !p.Amount.IsPositive() || !p.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}

	asset, err := s.assets.Resolve(p.AssetID, p.Symbol, p.Price)
	if err != nil {
		return nil, err
	}

	id, err := util.GenerateTradeID()
	if err != nil {
		return nil, err
	}

	total := model.TotalValue(p.Amount, p.Price)
	trade := &model.Trade{
		TradeID:   fmt.Sprintf("%d", id),
		UserID:    userID,
		AssetID:   asset.ID,
		Symbol:    asset.Symbol,
		Side:      p.Side,
		Amount:    p.Amount,
		Price:     p.Price,
		Total:     total,
		Timestamp: time.Now().UnixMilli(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var bal model.UserAssetBalance
		err := tx.Where("user_id = ? AND asset_id = ?", userID, asset.ID).First(&bal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bal = model.UserAssetBalance{UserID: userID, AssetID: asset.ID, Amount: decimal.Zero}
			if err := tx.Create(&bal).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var newCash, newAsset decimal.Decimal
		switch p.Side {
		case model.SideBuy:
			if user.Balance.LessThan(total) {
				return ErrInsufficientFunds
			}
			newCash = user.Balance.Sub(total)
			newAsset = bal.Amount.Add(p.Amount)
		case model.SideSell:
			if bal.Amount.LessThan(p.Amount) {
				return ErrInsufficientAssetBalance
			}
			newCash = user.Balance.Add(total)
			newAsset = bal.Amount.Sub(p.Amount)
		}

		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Update("balance", newCash).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.UserAssetBalance{}).Where("id = ?", bal.ID).
			Update("amount", newAsset).Error; err != nil {
			return err
		}
		return tx.Create(trade).Error
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, kafka.TopicTrades, trade.Symbol, trade)
	return trade, nil
}

// ListBySymbol 某交易对最近成交，公开行情接口用；symbol 为空时返回全市场
func (s *TradeService) ListBySymbol(symbol string, limit int) ([]model.Trade, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.trades.ListTradesBySymbol(symbol, limit)
}

// ListByUser 用户成交记录
func (s *TradeService) ListByUser(userID uint, limit, offset int) ([]model.Trade, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.trades.ListTradesByUser(userID, limit, offset)
}

// PortfolioPosition 持仓及按落库价估值
type PortfolioPosition struct {
	Symbol   string          `json:"symbol"`
	AssetID  uint            `json:"asset_id"`
	Amount   decimal.Decimal `json:"amount"`
	Price    decimal.Decimal `json:"price"`
	ValueUSD decimal.Decimal `json:"value_usd"`
}

// Portfolio 用户资产总览
type Portfolio struct {
	CashBalance decimal.Decimal     `json:"cash_balance"`
	Positions   []PortfolioPosition `json:"positions"`
	TotalValue  decimal.Decimal     `json:"total_value"`
}

// GetPortfolio 现金余额 + 全部持仓按落库价估值
func (s *TradeService) GetPortfolio(userID uint) (*Portfolio, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}
	balances, err := s.balances.ListUserAssetBalances(userID)
	if err != nil {
		return nil, err
	}

	view := &Portfolio{
		CashBalance: user.Balance,
		Positions:   make([]PortfolioPosition, 0, len(balances)),
		TotalValue:  user.Balance,
	}
	for _, b := range balances {
		if b.Amount.IsZero() {
			continue
		}
		asset, err := s.assets.assets.GetAssetByID(b.AssetID)
		if err != nil || asset == nil {
			continue
		}
		value := b.Amount.Mul(asset.PriceUSD)
		view.Positions = append(view.Positions, PortfolioPosition{
			Symbol:   asset.Symbol,
			AssetID:  asset.ID,
			Amount:   b.Amount,
			Price:    asset.PriceUSD,
			ValueUSD: value,
		})
		view.TotalValue = view.TotalValue.Add(value)
	}
	return view, nil
}
