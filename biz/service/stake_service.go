package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tradex-hertz/biz/dal/kafka"
	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
)

type StakeService struct {
	db     *gorm.DB
	stakes *pg.StakeRepo
	assets *pg.AssetRepo
	events *kafka.Publisher
	log    *zap.Logger
}

func NewStakeService(db *gorm.DB, events *kafka.Publisher, log *zap.Logger) *StakeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StakeService{
		db:     db,
		stakes: pg.NewStakeRepo(db),
		assets: pg.NewAssetRepo(db),
		events: events,
		log:    log,
	}
}

// Open 开仓质押：校验资产开关与 stake_min ≤ amount ≤ stake_max，
// 持仓扣减与质押落库同一事务，ROI/周期从资产参数拷贝固定。
func (s *StakeService) Open(ctx context.Context, userID, assetID uint, amount decimal.Decimal) (*model.UserStake, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	asset, err := s.assets.GetAssetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrNotFound
	}
	if !asset.StakingEnabled {
		return nil, ErrStakingDisabled
	}
	if amount.LessThan(asset.StakeMin) || amount.GreaterThan(asset.StakeMax) {
		return nil, ErrStakeAmountRange
	}

	now := time.Now()
	stake := &model.UserStake{
		UserID:    userID,
		AssetID:   assetID,
		Amount:    amount,
		ROI:       asset.StakeROI,
		CycleDays: asset.StakeCycleDays,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, asset.StakeCycleDays),
		Status:    model.StakeStatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var bal model.UserAssetBalance
		err := tx.Where("user_id = ? AND asset_id = ?", userID, assetID).First(&bal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && bal.Amount.LessThan(amount)) {
			return ErrInsufficientAssetBalance
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&model.UserAssetBalance{}).Where("id = ?", bal.ID).
			Update("amount", bal.Amount.Sub(amount)).Error; err != nil {
			return err
		}
		return tx.Create(stake).Error
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, kafka.TopicStaking, fmt.Sprintf("stake-%d", stake.ID), stake)
	return stake, nil
}

// ListByUser 用户质押记录
func (s *StakeService) ListByUser(userID uint) ([]model.UserStake, error) {
	return s.stakes.ListStakesByUser(userID)
}

// PayoutReport 批处理结果
type PayoutReport struct {
	Scanned int
	Paid    int
	Failed  int
}

// ProcessMatured 结算到期质押：每笔质押独立事务（返还入账与状态流转一起提交），
// 单笔失败不影响其余，留给下一轮重跑；协程池并发结算。
func (s *StakeService) ProcessMatured(ctx context.Context, concurrency int) (*PayoutReport, error) {
	if concurrency <= 0 {
		concurrency = 4
	}
	matured, err := s.stakes.ListMaturedStakes(time.Now(), 1000)
	if err != nil {
		return nil, err
	}

	report := &PayoutReport{Scanned: len(matured)}
	if len(matured) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i := range matured {
		stake := matured[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := s.settleStake(ctx, &stake); err != nil {
				s.log.Error("stake payout failed",
					zap.Uint("stake_id", stake.ID),
					zap.Uint("user_id", stake.UserID),
					zap.Error(err))
				mu.Lock()
				report.Failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			report.Paid++
			mu.Unlock()
		}); err != nil {
			wg.Done()
			mu.Lock()
			report.Failed++
			mu.Unlock()
		}
	}
	wg.Wait()
	return report, nil
}

// settleStake 单笔结算：amount*(1+roi/100) 计入持仓并标记 completed
func (s *StakeService) settleStake(ctx context.Context, stake *model.UserStake) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current model.UserStake
		if err := tx.First(&current, stake.ID).Error; err != nil {
			return err
		}
		// 重跑保护：已结算的跳过
		if current.Status != model.StakeStatusActive {
			return nil
		}

		payout := current.Payout()
		var bal model.UserAssetBalance
		err := tx.Where("user_id = ? AND asset_id = ?", current.UserID, current.AssetID).First(&bal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bal = model.UserAssetBalance{UserID: current.UserID, AssetID: current.AssetID, Amount: decimal.Zero}
			if err := tx.Create(&bal).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if err := tx.Model(&model.UserAssetBalance{}).Where("id = ?", bal.ID).
			Update("amount", bal.Amount.Add(payout)).Error; err != nil {
			return err
		}
		return tx.Model(&model.UserStake{}).Where("id = ?", current.ID).
			Update("status", model.StakeStatusCompleted).Error
	})
	if err != nil {
		return err
	}

	s.events.Publish(ctx, kafka.TopicStaking, fmt.Sprintf("payout-%d", stake.ID), map[string]any{
		"stake_id": stake.ID,
		"user_id":  stake.UserID,
		"asset_id": stake.AssetID,
		"payout":   stake.Payout(),
	})
	return nil
}
