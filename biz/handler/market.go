package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shopspring/decimal"

	"tradex-hertz/biz/service"
	"tradex-hertz/biz/util"
)

type MarketHandler struct {
	prices *service.PriceService
	trades *service.TradeService
}

func NewMarketHandler(prices *service.PriceService, trades *service.TradeService) *MarketHandler {
	return &MarketHandler{prices: prices, trades: trades}
}

// GetQuote 查询单个交易对最新报价
func (h *MarketHandler) GetQuote(ctx context.Context, c *app.RequestContext) {
	symbol := util.NormalizeSymbol(c.Param("symbol"))
	price, err := h.prices.Quote(ctx, symbol)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{
		"symbol":    symbol,
		"price":     price,
		"timestamp": time.Now().UnixMilli(),
	})
}

type ingestPriceRequest struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// IngestPrice 行情写入
func (h *MarketHandler) IngestPrice(ctx context.Context, c *app.RequestContext) {
	var req ingestPriceRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Symbol == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "symbol required"})
		return
	}
	if err := h.prices.Ingest(ctx, util.NormalizeSymbol(req.Symbol), req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true})
}

// RecentTrades 某交易对最近成交流水
func (h *MarketHandler) RecentTrades(ctx context.Context, c *app.RequestContext) {
	symbol := util.NormalizeSymbol(c.Param("symbol"))
	rows, err := h.trades.ListBySymbol(symbol, queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}

// GetKlines 查询K线
func (h *MarketHandler) GetKlines(ctx context.Context, c *app.RequestContext) {
	symbol := util.NormalizeSymbol(c.Param("symbol"))
	period := string(c.Query("period"))
	if period == "" {
		period = "1m"
	}
	rows, err := h.prices.Klines(symbol, period, queryInt(c, "limit", 200))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}
