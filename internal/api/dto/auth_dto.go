package dto

import "time"

// ExchangeTokenDTO 授权码换取令牌请求
type ExchangeTokenDTO struct {
	Code string `json:"code" binding:"required"`
}

// SimulateExchangeDTO 桩路径请求：短效令牌直接换占位长效令牌
type SimulateExchangeDTO struct {
	Token string `json:"token" binding:"required"`
}

// TokenInfoDTO 凭证信息，AccessToken 仅换取成功时回传一次
type TokenInfoDTO struct {
	UserID      int64     `json:"user_id"`
	AccessToken string    `json:"access_token,omitempty"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsActive    bool      `json:"is_active"`
}

// ShortLivedExchangeDTO 桩路径响应，与上游换取接口同构
type ShortLivedExchangeDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// CallbackResultDTO OAuth 回调落地页响应，不回显令牌
type CallbackResultDTO struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}
