package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/service"
	"tradex-hertz/middleware"
)

type AdminHandler struct {
	auth  *service.AuthService
	audit *pg.AuditRepo
}

func NewAdminHandler(auth *service.AuthService, audit *pg.AuditRepo) *AdminHandler {
	return &AdminHandler{auth: auth, audit: audit}
}

// ListUsers 管理员分页查询用户
func (h *AdminHandler) ListUsers(ctx context.Context, c *app.RequestContext) {
	users, err := h.auth.ListUsers(string(c.Query("role")), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, users)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole 管理员调整用户角色
func (h *AdminHandler) ChangeRole(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid user id"})
		return
	}
	var req changeRoleRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if err := h.auth.ChangeRole(id, req.Role); err != nil {
		respondError(c, err)
		return
	}
	_ = h.audit.Append(middleware.SessionUserID(c), "change_role", fmt.Sprintf("user:%d", id), req.Role)
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true})
}

// AuditLog 查询最近管理操作记录
func (h *AdminHandler) AuditLog(ctx context.Context, c *app.RequestContext) {
	rows, err := h.audit.Recent(queryInt(c, "limit", 100))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, rows)
}
