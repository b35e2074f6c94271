package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradex-hertz/biz/model"
)

func stakeableAsset(symbol string) *model.Asset {
	return &model.Asset{
		Symbol:         symbol,
		PriceUSD:       dec("100"),
		StakingEnabled: true,
		StakeMin:       dec("1"),
		StakeMax:       dec("50"),
		StakeROI:       dec("10"),
		StakeCycleDays: 30,
	}
}

func TestStakeOpen(t *testing.T) {
	db := newTestDB(t)
	stakes := NewStakeService(db, nil, nil)
	user := mustUser(t, db, "staker@example.com", dec("0"))
	asset := mustAsset(t, db, stakeableAsset("SOL"))
	mustAssetBalance(t, db, user.ID, asset.ID, dec("20"))

	stake, err := stakes.Open(context.Background(), user.ID, asset.ID, dec("5"))
	require.NoError(t, err)
	require.Equal(t, model.StakeStatusActive, stake.Status)
	require.True(t, stake.ROI.Equal(dec("10")))
	require.Equal(t, 30, stake.CycleDays)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 30), stake.EndDate, time.Minute)
	require.True(t, assetBalance(t, db, user.ID, asset.ID).Equal(dec("15")))
}

func TestStakeOpenAmountRange(t *testing.T) {
	db := newTestDB(t)
	stakes := NewStakeService(db, nil, nil)
	user := mustUser(t, db, "range@example.com", dec("0"))
	asset := mustAsset(t, db, stakeableAsset("DOT"))
	mustAssetBalance(t, db, user.ID, asset.ID, dec("100"))

	for _, amount := range []string{"0.5", "51"} {
		_, err := stakes.Open(context.Background(), user.ID, asset.ID, dec(amount))
		require.ErrorIs(t, err, ErrStakeAmountRange, "amount %s", amount)
	}
	// 校验失败不动持仓
	require.True(t, assetBalance(t, db, user.ID, asset.ID).Equal(dec("100")))
}

func TestStakeOpenDisabled(t *testing.T) {
	db := newTestDB(t)
	stakes := NewStakeService(db, nil, nil)
	user := mustUser(t, db, "disabled@example.com", dec("0"))
	asset := mustAsset(t, db, &model.Asset{Symbol: "XRP", StakingEnabled: false})

	_, err := stakes.Open(context.Background(), user.ID, asset.ID, dec("1"))
	require.ErrorIs(t, err, ErrStakingDisabled)
}

func TestStakeOpenInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	stakes := NewStakeService(db, nil, nil)
	user := mustUser(t, db, "short@example.com", dec("0"))
	asset := mustAsset(t, db, stakeableAsset("ADA"))
	mustAssetBalance(t, db, user.ID, asset.ID, dec("2"))

	_, err := stakes.Open(context.Background(), user.ID, asset.ID, dec("5"))
	require.ErrorIs(t, err, ErrInsufficientAssetBalance)
	require.True(t, assetBalance(t, db, user.ID, asset.ID).Equal(dec("2")))
}

func TestProcessMaturedPayout(t *testing.T) {
	db := newTestDB(t)
	stakes := NewStakeService(db, nil, nil)
	user := mustUser(t, db, "payout@example.com", dec("0"))
	asset := mustAsset(t, db, stakeableAsset("SOL"))
	mustAssetBalance(t, db, user.ID, asset.ID, dec("0"))

	now := time.Now()
	matured := &model.UserStake{
		UserID:    user.ID,
		AssetID:   asset.ID,
		Amount:    dec("10"),
		ROI:       dec("10"),
		CycleDays: 30,
		StartDate: now.AddDate(0, 0, -31),
		EndDate:   now.AddDate(0, 0, -1),
		Status:    model.StakeStatusActive,
	}
	pending := &model.UserStake{
		UserID:    user.ID,
		AssetID:   asset.ID,
		Amount:    dec("10"),
		ROI:       dec("10"),
		CycleDays: 30,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
		Status:    model.StakeStatusActive,
	}
	require.NoError(t, db.Create(matured).Error)
	require.NoError(t, db.Create(pending).Error)

	report, err := stakes.ProcessMatured(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, report.Scanned)
	require.Equal(t, 1, report.Paid)
	require.Zero(t, report.Failed)

	// 10 * (1 + 10/100) = 11
	require.True(t, assetBalance(t, db, user.ID, asset.ID).Equal(dec("11")))

	var settled model.UserStake
	require.NoError(t, db.First(&settled, matured.ID).Error)
	require.Equal(t, model.StakeStatusCompleted, settled.Status)

	var untouched model.UserStake
	require.NoError(t, db.First(&untouched, pending.ID).Error)
	require.Equal(t, model.StakeStatusActive, untouched.Status)

	// 重跑不重复入账
	report, err = stakes.ProcessMatured(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, report.Scanned)
	require.True(t, assetBalance(t, db, user.ID, asset.ID).Equal(dec("11")))
}

func TestStakePayoutMath(t *testing.T) {
	stake := &model.UserStake{Amount: dec("200"), ROI: dec("7.5")}
	require.True(t, stake.Payout().Equal(dec("215")))
}
