package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tradex-hertz/biz/model"
)

func TestExecuteBuyThenSell(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeService(db, NewAssetService(db), nil)
	user := mustUser(t, db, "buyer@example.com", dec("1000"))
	btc := mustAsset(t, db, &model.Asset{Symbol: "BTC", Name: "Bitcoin", Kind: model.AssetKindCrypto, PriceUSD: dec("50000")})

	trade, err := trades.Execute(context.Background(), user.ID, ExecuteParams{
		AssetID: btc.ID,
		Side:    model.SideBuy,
		Amount:  dec("0.01"),
		Price:   dec("50000"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, trade.TradeID)
	require.True(t, trade.Total.Equal(dec("500")), "total = %s", trade.Total)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("500")))
	require.True(t, assetBalance(t, db, user.ID, btc.ID).Equal(dec("0.01")))

	_, err = trades.Execute(context.Background(), user.ID, ExecuteParams{
		AssetID: btc.ID,
		Side:    model.SideSell,
		Amount:  dec("0.01"),
		Price:   dec("60000"),
	})
	require.NoError(t, err)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("1100")))
	require.True(t, assetBalance(t, db, user.ID, btc.ID).IsZero())

	rows, err := trades.ListByUser(user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	bySymbol, err := trades.ListBySymbol("BTC", 10)
	require.NoError(t, err)
	require.Len(t, bySymbol, 2)
	bySymbol, err = trades.ListBySymbol("ETH", 10)
	require.NoError(t, err)
	require.Empty(t, bySymbol)
}

func TestExecuteInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeService(db, NewAssetService(db), nil)
	user := mustUser(t, db, "poor@example.com", dec("100"))
	btc := mustAsset(t, db, &model.Asset{Symbol: "BTC", PriceUSD: dec("50000")})

	_, err := trades.Execute(context.Background(), user.ID, ExecuteParams{
		AssetID: btc.ID,
		Side:    model.SideBuy,
		Amount:  dec("0.01"),
		Price:   dec("50000"),
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// 失败不留痕：余额不变，无成交流水
	require.True(t, userBalance(t, db, user.ID).Equal(dec("100")))
	var count int64
	require.NoError(t, db.Model(&model.Trade{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestExecuteInsufficientAssetBalance(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeService(db, NewAssetService(db), nil)
	user := mustUser(t, db, "nosell@example.com", dec("1000"))
	eth := mustAsset(t, db, &model.Asset{Symbol: "ETH", PriceUSD: dec("3000")})
	mustAssetBalance(t, db, user.ID, eth.ID, dec("0.5"))

	_, err := trades.Execute(context.Background(), user.ID, ExecuteParams{
		AssetID: eth.ID,
		Side:    model.SideSell,
		Amount:  dec("1"),
		Price:   dec("3000"),
	})
	require.ErrorIs(t, err, ErrInsufficientAssetBalance)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("1000")))
	require.True(t, assetBalance(t, db, user.ID, eth.ID).Equal(dec("0.5")))
}

func TestExecuteValidation(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeService(db, NewAssetService(db), nil)
	user := mustUser(t, db, "valid@example.com", dec("1000"))

	_, err := trades.Execute(context.Background(), user.ID, ExecuteParams{
		Symbol: "BTC", Side: "short", Amount: dec("1"), Price: dec("1"),
	})
	require.ErrorIs(t, err, ErrInvalidSide)

	_, err = trades.Execute(context.Background(), user.ID, ExecuteParams{
		Symbol: "BTC", Side: model.SideBuy, Amount: dec("0"), Price: dec("1"),
	})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = trades.Execute(context.Background(), user.ID, ExecuteParams{
		Symbol: "BTC", Side: model.SideBuy, Amount: dec("1"), Price: dec("-5"),
	})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestExecuteLazyCreatesAsset(t *testing.T) {
	db := newTestDB(t)
	assets := NewAssetService(db)
	trades := NewTradeService(db, assets, nil)
	user := mustUser(t, db, "lazy@example.com", dec("100"))

	trade, err := trades.Execute(context.Background(), user.ID, ExecuteParams{
		Symbol: "doge",
		Side:   model.SideBuy,
		Amount: dec("10"),
		Price:  dec("0.25"),
	})
	require.NoError(t, err)

	asset, err := assets.GetBySymbol("DOGE")
	require.NoError(t, err)
	// 成交关联到惰性建档的资产
	require.Equal(t, asset.ID, trade.AssetID)
	require.Equal(t, "DOGE", trade.Symbol)
	require.True(t, asset.PriceUSD.Equal(dec("0.25")))
	require.True(t, userBalance(t, db, user.ID).Equal(dec("97.5")))
}

func TestGetPortfolio(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeService(db, NewAssetService(db), nil)
	user := mustUser(t, db, "folio@example.com", dec("200"))
	btc := mustAsset(t, db, &model.Asset{Symbol: "BTC", PriceUSD: dec("50000")})
	eth := mustAsset(t, db, &model.Asset{Symbol: "ETH", PriceUSD: dec("3000")})
	mustAssetBalance(t, db, user.ID, btc.ID, dec("0.01"))
	mustAssetBalance(t, db, user.ID, eth.ID, dec("0"))

	view, err := trades.GetPortfolio(user.ID)
	require.NoError(t, err)
	require.True(t, view.CashBalance.Equal(dec("200")))
	// 零持仓不出现在列表里
	require.Len(t, view.Positions, 1)
	require.Equal(t, "BTC", view.Positions[0].Symbol)
	require.True(t, view.Positions[0].ValueUSD.Equal(dec("500")))
	require.True(t, view.TotalValue.Equal(dec("700")))
}
