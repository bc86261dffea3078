package handler

import (
	"Threadway/internal/api/dto"
	"Threadway/internal/pkg/response"
	"Threadway/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

// ExchangeToken 授权码换取长效令牌
func (s *AuthHandler) ExchangeToken(c *gin.Context) {
	var req dto.ExchangeTokenDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tokenInfo, err := s.authSvc.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokenInfo)
}

// Callback OAuth 回调落地，与 ExchangeToken 共用同一交换逻辑
func (s *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	tokenInfo, err := s.authSvc.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 回调页面不回显令牌
	response.Success(c, dto.CallbackResultDTO{
		Message: "Authentication successful",
		UserID:  tokenInfo.UserID,
	})
}

// SimulateExchange 桩路径：返回占位令牌，不产生任何持久化
func (s *AuthHandler) SimulateExchange(c *gin.Context) {
	var req dto.SimulateExchangeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.authSvc.ExchangeShortLivedToken(c.Request.Context(), req.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ShortLivedExchangeDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	})
}

// GetTokenInfo 查询某用户的凭证状态
func (s *AuthHandler) GetTokenInfo(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tokenInfo, err := s.authSvc.GetTokenInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokenInfo)
}

// Deactivate 注销凭证
func (s *AuthHandler) Deactivate(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.authSvc.Deactivate(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseUserID(c *gin.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return userID, nil
}
