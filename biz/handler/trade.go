package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shopspring/decimal"

	"tradex-hertz/biz/service"
	"tradex-hertz/middleware"
)

type TradeHandler struct {
	trades *service.TradeService
}

func NewTradeHandler(trades *service.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

type executeTradeRequest struct {
	AssetID uint            `json:"asset_id"`
	Symbol  string          `json:"symbol"`
	Side    string          `json:"side"`
	Amount  decimal.Decimal `json:"amount"`
	Price   decimal.Decimal `json:"price"`
}

// ExecuteTrade 下单接口：USD 与资产余额原子划转并落成交流水
func (h *TradeHandler) ExecuteTrade(ctx context.Context, c *app.RequestContext) {
	var req executeTradeRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.AssetID == 0 && req.Symbol == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "asset_id or symbol required"})
		return
	}
	trade, err := h.trades.Execute(ctx, middleware.SessionUserID(c), service.ExecuteParams{
		AssetID: req.AssetID,
		Symbol:  req.Symbol,
		Side:    req.Side,
		Amount:  req.Amount,
		Price:   req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true, "trade": trade})
}

// ListTrades 查询当前用户成交记录
func (h *TradeHandler) ListTrades(ctx context.Context, c *app.RequestContext) {
	trades, err := h.trades.ListByUser(middleware.SessionUserID(c),
		queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, trades)
}

// GetPortfolio 查询当前用户资产总览
func (h *TradeHandler) GetPortfolio(ctx context.Context, c *app.RequestContext) {
	view, err := h.trades.GetPortfolio(middleware.SessionUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, view)
}
