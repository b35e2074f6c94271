package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tradex-hertz/biz/service"
)

// request context key，存放会话信息
const (
	KeyUserID = "session_uid"
	KeyEmail  = "session_email"
	KeyRole   = "session_role"
)

// SessionAuth 解析会话 token（httpOnly cookie 或 Authorization: Bearer）并注入请求上下文
func SessionAuth(auth *service.AuthService, cookieName string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := string(c.Cookie(cookieName))
		if token == "" {
			header := string(c.GetHeader("Authorization"))
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			c.JSON(consts.StatusUnauthorized, map[string]interface{}{"error": "missing session"})
			c.Abort()
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			c.JSON(consts.StatusUnauthorized, map[string]interface{}{"error": "invalid session"})
			c.Abort()
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next(ctx)
	}
}

// RequirePermission 按角色权限表校验，所有管理/交易路由统一走这里
func RequirePermission(perm string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		role := SessionRole(c)
		if role == "" {
			c.JSON(consts.StatusUnauthorized, map[string]interface{}{"error": "missing session"})
			c.Abort()
			return
		}
		if !service.RoleHas(role, perm) {
			c.JSON(consts.StatusForbidden, map[string]interface{}{"error": "permission denied"})
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// SessionUserID 读取当前会话用户ID，未登录返回 0
func SessionUserID(c *app.RequestContext) uint {
	if v, ok := c.Get(KeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// SessionRole 读取当前会话角色
func SessionRole(c *app.RequestContext) string {
	if v, ok := c.Get(KeyRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
