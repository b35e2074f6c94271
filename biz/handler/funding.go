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

type FundingHandler struct {
	funding *service.FundingService
}

func NewFundingHandler(funding *service.FundingService) *FundingHandler {
	return &FundingHandler{funding: funding}
}

type depositRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
}

// SubmitDeposit 提交充值申请
func (h *FundingHandler) SubmitDeposit(ctx context.Context, c *app.RequestContext) {
	var req depositRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	d, err := h.funding.SubmitDeposit(middleware.SessionUserID(c), req.Amount, req.Method, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, d)
}

type withdrawalRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Address string          `json:"address"`
	Method  string          `json:"method"`
}

// SubmitWithdrawal 提交提现申请
func (h *FundingHandler) SubmitWithdrawal(ctx context.Context, c *app.RequestContext) {
	var req withdrawalRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	w, err := h.funding.SubmitWithdrawal(middleware.SessionUserID(c), req.Amount, req.Address, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, w)
}

// ListMyDeposits 查询当前用户充值申请
func (h *FundingHandler) ListMyDeposits(ctx context.Context, c *app.RequestContext) {
	rows, err := h.funding.ListDeposits(middleware.SessionUserID(c),
		string(c.Query("status")), queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}

// ListMyWithdrawals 查询当前用户提现申请
func (h *FundingHandler) ListMyWithdrawals(ctx context.Context, c *app.RequestContext) {
	rows, err := h.funding.ListWithdrawals(middleware.SessionUserID(c),
		string(c.Query("status")), queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}

// ListPendingFunding 管理端查询待审核出入金
func (h *FundingHandler) ListPendingFunding(ctx context.Context, c *app.RequestContext) {
	status := string(c.Query("status"))
	if status == "" {
		status = model.FundingStatusPending
	}
	deposits, err := h.funding.ListDeposits(0, status, queryInt(c, "limit", 100))
	if err != nil {
		respondError(c, err)
		return
	}
	withdrawals, err := h.funding.ListWithdrawals(0, status, queryInt(c, "limit", 100))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{
		"deposits":    deposits,
		"withdrawals": withdrawals,
	})
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// ReviewDeposit 管理端审核充值
func (h *FundingHandler) ReviewDeposit(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid deposit id"})
		return
	}
	var req reviewRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	d, err := h.funding.ReviewDeposit(ctx, middleware.SessionUserID(c), id, req.Approve, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, d)
}

// ReviewWithdrawal 管理端审核提现
func (h *FundingHandler) ReviewWithdrawal(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid withdrawal id"})
		return
	}
	var req reviewRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	w, err := h.funding.ReviewWithdrawal(ctx, middleware.SessionUserID(c), id, req.Approve, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, w)
}
