package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tradex-hertz/biz/dal"
)

type HealthHandler struct {
	res *dal.Resources
}

func NewHealthHandler(res *dal.Resources) *HealthHandler {
	return &HealthHandler{res: res}
}

// Healthz 探活,检查数据库与 Redis 连接
func (h *HealthHandler) Healthz(ctx context.Context, c *app.RequestContext) {
	checks := map[string]string{"postgres": "ok"}
	status := consts.StatusOK

	if err := h.res.DB.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		status = consts.StatusServiceUnavailable
	}
	if h.res.Redis != nil {
		checks["redis"] = "ok"
		if err := h.res.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = consts.StatusServiceUnavailable
		}
	}

	overall := "ok"
	if status != consts.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, map[string]interface{}{"status": overall, "checks": checks})
}
