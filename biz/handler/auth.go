package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tradex-hertz/biz/service"
	"tradex-hertz/middleware"
)

type AuthHandler struct {
	auth       *service.AuthService
	cookieName string
	tokenTTL   time.Duration
}

func NewAuthHandler(auth *service.AuthService, cookieName string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register 注册并直接建立会话
func (h *AuthHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req registerRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Email == "" || len(req.Password) < 6 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "email and password (min 6 chars) required"})
		return
	}
	user, err := h.auth.Register(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(consts.StatusOK, map[string]interface{}{"user": user})
}

// Login 登录，签发 httpOnly 会话 cookie
func (h *AuthHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req registerRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "missing email or password"})
		return
	}
	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(consts.StatusOK, map[string]interface{}{"user": user, "token": token})
}

// Logout 清除会话 cookie
func (h *AuthHandler) Logout(ctx context.Context, c *app.RequestContext) {
	c.SetCookie(h.cookieName, "", -1, "/", "", protocol.CookieSameSiteLaxMode, false, true)
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true})
}

// Me 查询当前会话用户
func (h *AuthHandler) Me(ctx context.Context, c *app.RequestContext) {
	user, err := h.auth.GetUser(middleware.SessionUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *app.RequestContext, token string) {
	maxAge := int(h.tokenTTL / time.Second)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", protocol.CookieSameSiteLaxMode, false, true)
}
