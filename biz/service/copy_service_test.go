package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type copyTestState struct {
	db     *gorm.DB
	trader *model.User
	user   *model.User
}

func copyFixture(t *testing.T) (*CopyService, *copyTestState) {
	t.Helper()
	db := newTestDB(t)
	prices := NewPriceService(db, nil, nil, nil, 0, nil)
	f := &copyTestState{db: db}
	f.trader = mustUser(t, db, "trader@example.com", dec("0"))
	f.trader.Role = model.RoleTrader
	require.NoError(t, db.Save(f.trader).Error)
	f.user = mustUser(t, db, "follower@example.com", dec("1000"))
	mustAsset(t, db, &model.Asset{Symbol: "BTC", PriceUSD: dec("52000")})
	return NewCopyService(db, prices), f
}

func TestCopyTradeWin(t *testing.T) {
	svc, f := copyFixture(t)

	posted, err := svc.Post(f.trader.ID, PostParams{
		Symbol:        "btc",
		Side:          model.SideBuy,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 24,
	})
	require.NoError(t, err)
	require.Equal(t, "BTC", posted.Symbol)

	// 当前价 52000 > 入场价 50000,buy 判胜:profit = 5% * 200 = 10
	copied, err := svc.Copy(context.Background(), f.user.ID, posted.ID, dec("200"))
	require.NoError(t, err)
	require.Equal(t, model.CopyOutcomeWin, copied.Outcome)
	require.True(t, copied.Pnl.Equal(dec("10")))
	require.True(t, userBalance(t, f.db, f.user.ID).Equal(dec("1010")))
}

func TestCopyTradeLoss(t *testing.T) {
	svc, f := copyFixture(t)

	// sell 且当前价高于入场价,判负
	posted, err := svc.Post(f.trader.ID, PostParams{
		Symbol:        "BTC",
		Side:          model.SideSell,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 24,
	})
	require.NoError(t, err)

	copied, err := svc.Copy(context.Background(), f.user.ID, posted.ID, dec("200"))
	require.NoError(t, err)
	require.Equal(t, model.CopyOutcomeLoss, copied.Outcome)
	require.True(t, copied.Pnl.Equal(dec("-10")))
	require.True(t, userBalance(t, f.db, f.user.ID).Equal(dec("990")))
}

func TestCopyTradeLossInsufficientFunds(t *testing.T) {
	svc, f := copyFixture(t)
	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", f.user.ID).
		Update("balance", dec("5")).Error)

	posted, err := svc.Post(f.trader.ID, PostParams{
		Symbol:        "BTC",
		Side:          model.SideSell,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 24,
	})
	require.NoError(t, err)

	_, err = svc.Copy(context.Background(), f.user.ID, posted.ID, dec("200"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.True(t, userBalance(t, f.db, f.user.ID).Equal(dec("5")))
}

func TestCopyTradeExpired(t *testing.T) {
	svc, f := copyFixture(t)

	posted := &model.PostedTrade{
		TraderID:      f.trader.ID,
		Symbol:        "BTC",
		Side:          model.SideBuy,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 1,
		Status:        model.PostedTradeOpen,
		CreatedAt:     time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, f.db.Create(posted).Error)

	_, err := svc.Copy(context.Background(), f.user.ID, posted.ID, dec("100"))
	require.ErrorIs(t, err, ErrTradeExpired)
}

func TestCopyTradeClosed(t *testing.T) {
	svc, f := copyFixture(t)

	posted, err := svc.Post(f.trader.ID, PostParams{
		Symbol:        "BTC",
		Side:          model.SideBuy,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 24,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Close(f.trader.ID, posted.ID))

	_, err = svc.Copy(context.Background(), f.user.ID, posted.ID, dec("100"))
	require.ErrorIs(t, err, ErrTradeClosed)
}

func TestCloseOnlyOwner(t *testing.T) {
	svc, f := copyFixture(t)

	posted, err := svc.Post(f.trader.ID, PostParams{
		Symbol:        "BTC",
		Side:          model.SideBuy,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 24,
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Close(f.user.ID, posted.ID), ErrNotFound)
}

func TestCopyRelationUpsert(t *testing.T) {
	svc, f := copyFixture(t)

	posted, err := svc.Post(f.trader.ID, PostParams{
		Symbol:        "BTC",
		Side:          model.SideBuy,
		EntryPrice:    dec("50000"),
		ProfitShare:   dec("5"),
		DurationHours: 24,
	})
	require.NoError(t, err)

	_, err = svc.Copy(context.Background(), f.user.ID, posted.ID, dec("100"))
	require.NoError(t, err)
	copied, err := svc.Copy(context.Background(), f.user.ID, posted.ID, dec("200"))
	require.NoError(t, err)

	// 同一 (user, trader) 只保留一行,Pnl 累计:5 + 10
	rows, err := svc.ListCopied(f.user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, copied.Pnl.Equal(dec("15")))
}
