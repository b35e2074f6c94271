package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tradex-hertz/biz/dal"
	"tradex-hertz/biz/service"
	"tradex-hertz/conf"
)

// 到期质押结算批处理,定时任务调用
func main() {
	_ = godotenv.Load()
	cfg := conf.GetConf()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	res, err := dal.Init(cfg)
	if err != nil {
		logger.Fatal("dal init error", zap.Error(err))
	}
	defer res.Close()

	stakes := service.NewStakeService(res.DB.Gorm, res.Events, logger)
	report, err := stakes.ProcessMatured(context.Background(), cfg.Staking.PayoutConcurrency)
	if err != nil {
		logger.Fatal("payout batch error", zap.Error(err))
	}

	logger.Info("payout batch finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("paid", report.Paid),
		zap.Int("failed", report.Failed))
}
