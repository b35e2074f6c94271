package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shopspring/decimal"

	"tradex-hertz/biz/service"
	"tradex-hertz/middleware"
)

type StakeHandler struct {
	stakes      *service.StakeService
	concurrency int
}

func NewStakeHandler(stakes *service.StakeService, concurrency int) *StakeHandler {
	return &StakeHandler{stakes: stakes, concurrency: concurrency}
}

type openStakeRequest struct {
	AssetID uint            `json:"asset_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// OpenStake 开仓质押
func (h *StakeHandler) OpenStake(ctx context.Context, c *app.RequestContext) {
	var req openStakeRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.AssetID == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "asset_id required"})
		return
	}
	stake, err := h.stakes.Open(ctx, middleware.SessionUserID(c), req.AssetID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, stake)
}

// ListStakes 查询当前用户质押记录
func (h *StakeHandler) ListStakes(ctx context.Context, c *app.RequestContext) {
	stakes, err := h.stakes.ListByUser(middleware.SessionUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, stakes)
}

// ProcessPayouts 管理端手动触发到期结算（常规走 stakepayout 批处理）
func (h *StakeHandler) ProcessPayouts(ctx context.Context, c *app.RequestContext) {
	report, err := h.stakes.ProcessMatured(ctx, h.concurrency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{
		"scanned": report.Scanned,
		"paid":    report.Paid,
		"failed":  report.Failed,
	})
}
