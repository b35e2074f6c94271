package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
	"tradex-hertz/biz/util"
)

// PostParams 交易员发布跟单交易的参数
type PostParams struct {
	Symbol        string
	Side          string
	EntryPrice    decimal.Decimal
	ProfitShare   decimal.Decimal
	DurationHours int
}

type CopyService struct {
	db     *gorm.DB
	repo   *pg.CopyRepo
	prices *PriceService
}

func NewCopyService(db *gorm.DB, prices *PriceService) *CopyService {
	return &CopyService{
		db:     db,
		repo:   pg.NewCopyRepo(db),
		prices: prices,
	}
}

// Post 发布跟单交易
func (s *CopyService) Post(traderID uint, p PostParams) (*model.PostedTrade, error) {
	if !model.ValidSide(p.Side) {
		return nil, ErrInvalidSide
	}
	if !p.EntryPrice.IsPositive() || p.ProfitShare.IsNegative() || p.DurationHours <= 0 {
		return nil, ErrInvalidAmount
	}
	posted := &model.PostedTrade{
		TraderID:      traderID,
		Symbol:        util.NormalizeSymbol(p.Symbol),
		Side:          p.Side,
		EntryPrice:    p.EntryPrice,
		ProfitShare:   p.ProfitShare,
		DurationHours: p.DurationHours,
		Status:        model.PostedTradeOpen,
	}
	if err := s.repo.CreatePostedTrade(posted); err != nil {
		return nil, err
	}
	return posted, nil
}

// List 发布的跟单交易列表
func (s *CopyService) List(traderID uint, status string, limit int) ([]model.PostedTrade, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListPostedTrades(traderID, status, limit)
}

// Close 交易员关闭自己的发布
func (s *CopyService) Close(traderID, postedID uint) error {
	posted, err := s.repo.GetPostedTradeByID(postedID)
	if err != nil {
		return err
	}
	if posted == nil || posted.TraderID != traderID {
		return ErrNotFound
	}
	return s.repo.UpdatePostedTradeStatus(postedID, model.PostedTradeClosed)
}

// Copy 用户跟单：过期窗口拒绝；取实时价（回退落库价）对比入场价判定胜负，
// profit = profitShare% * amount，赢加输减 USD 余额；(user,trader) 关系行 upsert。
func (s *CopyService) Copy(ctx context.Context, userID, postedID uint, amount decimal.Decimal) (*model.CopiedTrade, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	posted, err := s.repo.GetPostedTradeByID(postedID)
	if err != nil {
		return nil, err
	}
	if posted == nil {
		return nil, ErrNotFound
	}
	if posted.Status != model.PostedTradeOpen {
		return nil, ErrTradeClosed
	}
	if posted.Expired(time.Now()) {
		return nil, ErrTradeExpired
	}

	current, err := s.prices.Quote(ctx, posted.Symbol)
	if err != nil {
		return nil, err
	}

	win := (posted.Side == model.SideBuy && current.GreaterThan(posted.EntryPrice)) ||
		(posted.Side == model.SideSell && current.LessThan(posted.EntryPrice))
	profit := posted.ProfitShare.Mul(amount).Div(decimal.NewFromInt(100))

	var copied *model.CopiedTrade
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var newBalance decimal.Decimal
		outcome := model.CopyOutcomeWin
		pnl := profit
		if win {
			newBalance = user.Balance.Add(profit)
		} else {
			if user.Balance.LessThan(profit) {
				return ErrInsufficientFunds
			}
			newBalance = user.Balance.Sub(profit)
			outcome = model.CopyOutcomeLoss
			pnl = profit.Neg()
		}
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Update("balance", newBalance).Error; err != nil {
			return err
		}

		// (user_id, trader_id) 唯一：已有关系则覆盖最近一次跟单结果
		var existing model.CopiedTrade
		err := tx.Where("user_id = ? AND trader_id = ?", userID, posted.TraderID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			copied = &model.CopiedTrade{
				UserID:        userID,
				TraderID:      posted.TraderID,
				PostedTradeID: posted.ID,
				Amount:        amount,
				Outcome:       outcome,
				Pnl:           pnl,
			}
			return tx.Create(copied).Error
		}
		if err != nil {
			return err
		}
		existing.PostedTradeID = posted.ID
		existing.Amount = amount
		existing.Outcome = outcome
		existing.Pnl = existing.Pnl.Add(pnl)
		copied = &existing
		return tx.Save(&existing).Error
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// ListCopied 用户跟单记录
func (s *CopyService) ListCopied(userID uint) ([]model.CopiedTrade, error) {
	return s.repo.ListCopiedTradesByUser(userID)
}
