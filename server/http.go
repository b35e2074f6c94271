package server

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
	"github.com/hertz-contrib/gzip"
	"github.com/hertz-contrib/logger/accesslog"
	"github.com/hertz-contrib/pprof"

	"tradex-hertz/biz/handler"
	"tradex-hertz/biz/service"
	"tradex-hertz/conf"
	"tradex-hertz/middleware"
)

// Handlers HTTP 路由依赖的全部处理器
type Handlers struct {
	Auth         *handler.AuthHandler
	Asset        *handler.AssetHandler
	Trade        *handler.TradeHandler
	Funding      *handler.FundingHandler
	Stake        *handler.StakeHandler
	Copy         *handler.CopyHandler
	Subscription *handler.SubscriptionHandler
	Market       *handler.MarketHandler
	Admin        *handler.AdminHandler
	Health       *handler.HealthHandler
}

// NewHTTPServer 构建 Hertz 服务并注册全部路由
func NewHTTPServer(cfg *conf.Config, auth *service.AuthService, hub *MarketHub, hs *Handlers) *server.Hertz {
	h := server.New(server.WithHostPorts(cfg.Hertz.Address))
	h.NoHijackConnPool = true

	h.Use(cors.Default())
	if cfg.Hertz.EnableGzip {
		h.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	if cfg.Hertz.EnableAccessLog {
		h.Use(accesslog.New())
	}
	if cfg.Hertz.EnablePprof {
		pprof.Register(h)
	}

	h.GET("/healthz", hs.Health.Healthz)
	h.GET("/ws/market", hub.Handler)

	api := h.Group("/api")

	api.POST("/auth/register", hs.Auth.Register)
	api.POST("/auth/login", hs.Auth.Login)
	api.POST("/auth/logout", hs.Auth.Logout)

	api.GET("/assets", hs.Asset.ListAssets)
	api.GET("/assets/:symbol", hs.Asset.GetAsset)
	api.GET("/plans", hs.Subscription.ListPlans)
	api.GET("/market/quote/:symbol", hs.Market.GetQuote)
	api.GET("/market/trades/:symbol", hs.Market.RecentTrades)
	api.GET("/market/klines/:symbol", hs.Market.GetKlines)

	authed := api.Group("", middleware.SessionAuth(auth, cfg.Auth.CookieNameOrDefault()))
	authed.GET("/auth/me", hs.Auth.Me)

	authed.POST("/trades", middleware.RequirePermission(service.PermTrade), hs.Trade.ExecuteTrade)
	authed.GET("/trades", hs.Trade.ListTrades)
	authed.GET("/portfolio", hs.Trade.GetPortfolio)

	authed.POST("/deposits", hs.Funding.SubmitDeposit)
	authed.GET("/deposits", hs.Funding.ListMyDeposits)
	authed.POST("/withdrawals", hs.Funding.SubmitWithdrawal)
	authed.GET("/withdrawals", hs.Funding.ListMyWithdrawals)

	authed.POST("/stakes", middleware.RequirePermission(service.PermStake), hs.Stake.OpenStake)
	authed.GET("/stakes", hs.Stake.ListStakes)

	authed.GET("/posted-trades", hs.Copy.ListPostedTrades)
	authed.POST("/posted-trades", middleware.RequirePermission(service.PermPostTrades), hs.Copy.PostTrade)
	authed.POST("/posted-trades/:id/close", middleware.RequirePermission(service.PermPostTrades), hs.Copy.ClosePostedTrade)
	authed.POST("/posted-trades/:id/copy", middleware.RequirePermission(service.PermCopy), hs.Copy.CopyTrade)
	authed.GET("/copied-trades", hs.Copy.ListCopiedTrades)

	authed.POST("/subscriptions", hs.Subscription.Subscribe)
	authed.GET("/subscriptions", hs.Subscription.MySubscriptions)

	authed.POST("/market/prices", middleware.RequirePermission(service.PermIngestPrices), hs.Market.IngestPrice)

	admin := authed.Group("/admin")
	admin.GET("/users", middleware.RequirePermission(service.PermManageUsers), hs.Admin.ListUsers)
	admin.PUT("/users/:id/role", middleware.RequirePermission(service.PermManageUsers), hs.Admin.ChangeRole)
	admin.GET("/audit", middleware.RequirePermission(service.PermManageUsers), hs.Admin.AuditLog)

	admin.GET("/funding", middleware.RequirePermission(service.PermReviewFunding), hs.Funding.ListPendingFunding)
	admin.POST("/deposits/:id/review", middleware.RequirePermission(service.PermReviewFunding), hs.Funding.ReviewDeposit)
	admin.POST("/withdrawals/:id/review", middleware.RequirePermission(service.PermReviewFunding), hs.Funding.ReviewWithdrawal)

	admin.POST("/assets", middleware.RequirePermission(service.PermManageAssets), hs.Asset.SaveAsset)
	admin.DELETE("/assets/:id", middleware.RequirePermission(service.PermManageAssets), hs.Asset.DeleteAsset)

	admin.POST("/plans", middleware.RequirePermission(service.PermManagePlans), hs.Subscription.SavePlan)
	admin.DELETE("/plans/:id", middleware.RequirePermission(service.PermManagePlans), hs.Subscription.DeletePlan)

	admin.POST("/stakes/payouts", middleware.RequirePermission(service.PermManageAssets), hs.Stake.ProcessPayouts)

	return h
}
