package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"tradex-hertz/biz/model"
)

func TestQuoteFallsBackToStoredPrice(t *testing.T) {
	db := newTestDB(t)
	prices := NewPriceService(db, nil, nil, nil, 0, nil)
	mustAsset(t, db, &model.Asset{Symbol: "BTC", PriceUSD: dec("50000")})

	price, err := prices.Quote(context.Background(), "btc")
	require.NoError(t, err)
	require.True(t, price.Equal(dec("50000")))

	_, err = prices.Quote(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIngestUpdatesPriceAndBroadcasts(t *testing.T) {
	db := newTestDB(t)
	var got []byte
	prices := NewPriceService(db, nil, nil, func(symbol string, msg []byte) {
		require.Equal(t, "BTC", symbol)
		got = msg
	}, 0, []string{"1m"})
	mustAsset(t, db, &model.Asset{Symbol: "BTC", PriceUSD: dec("50000")})

	require.NoError(t, prices.Ingest(context.Background(), "btc", dec("51000")))

	var asset model.Asset
	require.NoError(t, db.Where("symbol = ?", "BTC").First(&asset).Error)
	require.True(t, asset.PriceUSD.Equal(dec("51000")))

	var tick Tick
	require.NoError(t, json.Unmarshal(got, &tick))
	require.Equal(t, "BTC", tick.Symbol)
	require.True(t, tick.Price.Equal(dec("51000")))

	require.ErrorIs(t, prices.Ingest(context.Background(), "NOPE", dec("1")), ErrNotFound)
	require.ErrorIs(t, prices.Ingest(context.Background(), "BTC", dec("0")), ErrInvalidAmount)
}

func TestIngestRollsCandles(t *testing.T) {
	db := newTestDB(t)
	prices := NewPriceService(db, nil, nil, nil, 0, []string{"1d"})
	mustAsset(t, db, &model.Asset{Symbol: "ETH", PriceUSD: dec("3000")})

	// 同一天内三次推送落进同一根K线
	require.NoError(t, prices.Ingest(context.Background(), "ETH", dec("3000")))
	require.NoError(t, prices.Ingest(context.Background(), "ETH", dec("3200")))
	require.NoError(t, prices.Ingest(context.Background(), "ETH", dec("2900")))

	rows, err := prices.Klines("eth", "1d", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "3000", rows[0].Open)
	require.Equal(t, "2900", rows[0].Close)
	require.Equal(t, "3200", rows[0].High)
	require.Equal(t, "2900", rows[0].Low)
}

func TestKlinesInvalidPeriod(t *testing.T) {
	prices := NewPriceService(newTestDB(t), nil, nil, nil, 0, nil)
	_, err := prices.Klines("BTC", "3h", 10)
	require.ErrorIs(t, err, ErrNotFound)
}
