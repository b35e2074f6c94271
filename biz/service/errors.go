package service

import "errors"

// 业务错误，handler 层统一翻译为 HTTP 状态码
var (
	ErrNotFound                 = errors.New("not found")
	ErrEmailTaken               = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrInsufficientAssetBalance = errors.New("insufficient asset balance")
	ErrInvalidAmount            = errors.New("amount must be positive")
	ErrInvalidSide              = errors.New("side must be buy or sell")
	ErrStakingDisabled          = errors.New("staking not enabled for asset")
	ErrStakeAmountRange         = errors.New("amount outside stake limits")
	ErrNotPending               = errors.New("request is not pending")
	ErrTradeExpired             = errors.New("posted trade expired")
	ErrTradeClosed              = errors.New("posted trade closed")
	ErrInvalidRole              = errors.New("invalid role")
)
