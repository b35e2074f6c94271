package handler

import (
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tradex-hertz/biz/service"
)

// respondError 统一业务错误到 HTTP 状态码的映射
func respondError(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(consts.StatusNotFound, map[string]interface{}{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(consts.StatusUnauthorized, map[string]interface{}{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrNotPending):
		c.JSON(consts.StatusConflict, map[string]interface{}{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInsufficientAssetBalance),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidSide),
		errors.Is(err, service.ErrStakingDisabled),
		errors.Is(err, service.ErrStakeAmountRange),
		errors.Is(err, service.ErrTradeExpired),
		errors.Is(err, service.ErrTradeClosed),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
	default:
		hlog.Errorf("unhandled error: %v", err)
		c.JSON(consts.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
	}
}

// paramUint 解析路径参数为 uint，非法返回 0
func paramUint(c *app.RequestContext, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// queryInt 解析 query 参数为 int
func queryInt(c *app.RequestContext, name string, def int) int {
	if s := string(c.Query(name)); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}
