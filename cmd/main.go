package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"tradex-hertz/biz/dal"
	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/handler"
	"tradex-hertz/biz/service"
	"tradex-hertz/conf"
	"tradex-hertz/server"
	sfutil "tradex-hertz/util"
)

func main() {
	_ = godotenv.Load()
	cfg := conf.GetConf()

	hlog.SetLevel(conf.LogLevel())
	if cfg.Hertz.LogFileName != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Hertz.LogFileName), 0o755); err == nil {
			hlog.SetOutput(&lumberjack.Logger{
				Filename:   cfg.Hertz.LogFileName,
				MaxSize:    cfg.Hertz.LogMaxSize,
				MaxBackups: cfg.Hertz.LogMaxBackups,
				MaxAge:     cfg.Hertz.LogMaxAge,
			})
		}
	}

	res, err := dal.Init(cfg)
	if err != nil {
		hlog.Fatalf("dal init error: %v", err)
	}
	defer res.Close()

	sfutil.InitSonyFlake()

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = os.Getenv("AUTH_JWT_SECRET")
	}
	if jwtSecret == "" {
		hlog.Fatalf("jwt secret not configured")
	}
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if tokenTTL <= 0 {
		tokenTTL = 168 * time.Hour
	}

	hub, err := server.NewMarketHub(1024)
	if err != nil {
		hlog.Fatalf("market hub init error: %v", err)
	}
	defer hub.Release()

	gdb := res.DB.Gorm

	authSvc := service.NewAuthService(gdb, jwtSecret, tokenTTL)
	assetSvc := service.NewAssetService(gdb)
	tradeSvc := service.NewTradeService(gdb, assetSvc, res.Events)
	fundingSvc := service.NewFundingService(gdb, res.Events)
	stakeSvc := service.NewStakeService(gdb, res.Events, nil)
	var periods []string
	for _, p := range strings.Split(cfg.Market.CandlePeriods, ",") {
		if p = strings.TrimSpace(p); p != "" {
			periods = append(periods, p)
		}
	}
	priceSvc := service.NewPriceService(gdb, res.Redis, res.Events, hub.Broadcast,
		time.Duration(cfg.Market.QuoteTTLSeconds)*time.Second, periods)
	copySvc := service.NewCopyService(gdb, priceSvc)
	subSvc := service.NewSubscriptionService(gdb)

	audit := pg.NewAuditRepo(gdb)
	hs := &server.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, cfg.Auth.CookieNameOrDefault(), tokenTTL),
		Asset:        handler.NewAssetHandler(assetSvc, audit),
		Trade:        handler.NewTradeHandler(tradeSvc),
		Funding:      handler.NewFundingHandler(fundingSvc),
		Stake:        handler.NewStakeHandler(stakeSvc, cfg.Staking.PayoutConcurrency),
		Copy:         handler.NewCopyHandler(copySvc),
		Subscription: handler.NewSubscriptionHandler(subSvc, audit),
		Market:       handler.NewMarketHandler(priceSvc, tradeSvc),
		Admin:        handler.NewAdminHandler(authSvc, audit),
		Health:       handler.NewHealthHandler(res),
	}

	h := server.NewHTTPServer(cfg, authSvc, hub, hs)

	if len(cfg.Registry.RegistryAddress) > 0 {
		consul, err := service.NewConsulHelperWithAddrs(cfg.Registry.RegistryAddress)
		if err != nil {
			hlog.Fatalf("consul init error: %v", err)
		}
		serviceID := fmt.Sprintf("%s-%d", cfg.Hertz.Service, os.Getpid())
		if err := consul.RegisterService(serviceID, cfg.Hertz.Service, cfg.Hertz.ServicePort); err != nil {
			hlog.Fatalf("consul register error: %v", err)
		}
		h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
			if err := consul.DeregisterService(serviceID); err != nil {
				hlog.Warnf("consul deregister error: %v", err)
			}
		})
	}

	h.Spin()
}
