package service

import "tradex-hertz/biz/model"

// 权限名，路由中间件按此表校验，不在各 handler 内散落角色判断
const (
	PermTrade         = "trade"
	PermStake         = "stake"
	PermCopy          = "copy"
	PermPostTrades    = "post_trades"
	PermReviewFunding = "review_funding"
	PermManageAssets  = "manage_assets"
	PermManageUsers   = "manage_users"
	PermManagePlans   = "manage_plans"
	PermIngestPrices  = "ingest_prices"
)

// 角色→权限静态映射
var rolePermissions = map[string][]string{
	model.RoleUser: {
		PermTrade, PermStake, PermCopy,
	},
	model.RoleTrader: {
		PermTrade, PermStake, PermCopy, PermPostTrades,
	},
	model.RoleAdmin: {
		PermTrade, PermStake, PermCopy, PermPostTrades,
		PermReviewFunding, PermManageAssets, PermManageUsers,
		PermManagePlans, PermIngestPrices,
	},
}

// RoleHas 判断角色是否具备权限
func RoleHas(role, perm string) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
