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

type AssetHandler struct {
	assets *service.AssetService
	audit  *pg.AuditRepo
}

func NewAssetHandler(assets *service.AssetService, audit *pg.AuditRepo) *AssetHandler {
	return &AssetHandler{assets: assets, audit: audit}
}

// ListAssets 查询资产列表
func (h *AssetHandler) ListAssets(ctx context.Context, c *app.RequestContext) {
	assets, err := h.assets.List(string(c.Query("kind")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, assets)
}

// GetAsset 按符号查询资产
func (h *AssetHandler) GetAsset(ctx context.Context, c *app.RequestContext) {
	asset, err := h.assets.GetBySymbol(c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(consts.StatusOK, asset)
}

// SaveAsset 管理端新增/更新资产（含质押参数）
func (h *AssetHandler) SaveAsset(ctx context.Context, c *app.RequestContext) {
	var req model.Asset
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Symbol == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "symbol required"})
		return
	}
	if err := h.assets.Save(&req); err != nil {
		respondError(c, err)
		return
	}
	_ = h.audit.Append(middleware.SessionUserID(c), "asset.save", "asset:"+req.Symbol, req.Kind)
	c.JSON(consts.StatusOK, req)
}

// DeleteAsset 管理端删除资产
func (h *AssetHandler) DeleteAsset(ctx context.Context, c *app.RequestContext) {
	id := paramUint(c, "id")
	if id == 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "invalid asset id"})
		return
	}
	if err := h.assets.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	_ = h.audit.Append(middleware.SessionUserID(c), "asset.delete", fmt.Sprintf("asset:%d", id), "")
	c.JSON(consts.StatusOK, map[string]interface{}{"success": true})
}
