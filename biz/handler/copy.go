package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shopspring/decimal"

	"tradex-hertz/biz/model"
	"tradex-hertz/biz/service"
	"tradex-hertz/middleware"
)

type CopyHandler struct {
	copies *service.CopyService
}

func NewCopyHandler(copies *service.CopyService) *CopyHandler {
	return &CopyHandler{copies: copies}
}

type postTradeRequest struct {
	Symbol        string          `json:"symbol"`
	Side          string          `json:"side"`
	EntryPrice    decimal.Decimal `json:"entry_price"`
	ProfitShare   decimal.Decimal `json:"profit_share"`
	DurationHours int             `json:"duration_hours"`
}

// PostTrade 交易员发布跟单交易
func (h *CopyHandler) PostTrade(ctx context.Context, c *app.RequestContext) {
	var req postTradeRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Symbol == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "symbol required"})
		return
	}
	posted, err := h.copies.Post(middleware.SessionUserID(c), service.PostParams{
		Symbol:        req.Symbol,
		Side:          req.Side,
		EntryPrice:    req.EntryPrice,
		ProfitShare:   req.ProfitShare,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, posted)
}

// ListPostedTrades 查询可跟单交易
func (h *CopyHandler) ListPostedTrades(ctx context.Context, c *app.RequestContext) {
	status := string(c.Query("status"))
	if status == "" {
		status = model.PostedTradeOpen
	}
	rows, err := h.copies.List(0, status, queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}

type copyTradeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CopyTrade 用户跟单结算
func (h *CopyHandler) CopyTrade(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid posted trade id"})
		return
	}
	var req copyTradeRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	copied, err := h.copies.Copy(ctx, middleware.SessionUserID(c), id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true, "copied": copied})
}

// ClosePostedTrade 交易员关闭发布
func (h *CopyHandler) ClosePostedTrade(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid posted trade id"})
		return
	}
	if err := h.copies.Close(middleware.SessionUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true})
}

// ListCopiedTrades 查询当前用户跟单记录
func (h *CopyHandler) ListCopiedTrades(ctx context.Context, c *app.RequestContext) {
	rows, err := h.copies.ListCopied(middleware.SessionUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}
