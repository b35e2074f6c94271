package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
	"tradex-hertz/biz/service"
	"tradex-hertz/middleware"
)

type SubscriptionHandler struct {
	subs  *service.SubscriptionService
	audit *pg.AuditRepo
}

func NewSubscriptionHandler(subs *service.SubscriptionService, audit *pg.AuditRepo) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, audit: audit}
}

// ListPlans 查询订阅套餐
func (h *SubscriptionHandler) ListPlans(ctx context.Context, c *app.RequestContext) {
	plans, err := h.subs.Plans()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, plans)
}

// SavePlan 管理员创建或更新套餐
func (h *SubscriptionHandler) SavePlan(ctx context.Context, c *app.RequestContext) {
	var plan model.SubscriptionPlan
	if err := c.BindAndValidate(&plan); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if plan.Name == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "name required"})
		return
	}
	if err := h.subs.SavePlan(&plan); err != nil {
		respondError(c, err)
		return
	}
	_ = h.audit.Append(middleware.SessionUserID(c), "plan.save", "plan:"+plan.Name, "")
	c.JSON(consts.StatusOK, plan)
}

// DeletePlan 管理员删除套餐
func (h *SubscriptionHandler) DeletePlan(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid plan id"})
		return
	}
	if err := h.subs.DeletePlan(id); err != nil {
		respondError(c, err)
		return
	}
	_ = h.audit.Append(middleware.SessionUserID(c), "plan.delete", fmt.Sprintf("plan:%d", id), "")
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true})
}

type subscribeRequest struct {
	PlanID uint `json:"plan_id"`
}

// Subscribe 用户订阅套餐
func (h *SubscriptionHandler) Subscribe(ctx context.Context, c *app.RequestContext) {
	var req subscribeRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.PlanID == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "plan_id required"})
		return
	}
	sub, err := h.subs.Subscribe(middleware.SessionUserID(c), req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true, "subscription": sub})
}

// MySubscriptions 查询当前用户订阅
func (h *SubscriptionHandler) MySubscriptions(ctx context.Context, c *app.RequestContext) {
	rows, err := h.subs.ListByUser(middleware.SessionUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}
