package service

import (
	"Threadway/internal/api/dto"
	"Threadway/internal/pkg/consts"
	"Threadway/internal/pkg/redis"
	"Threadway/internal/pkg/threads"
	"Threadway/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PlaceholderLongLivedToken 桩路径返回的占位令牌，明确标识未接入真实换取
const PlaceholderLongLivedToken = "mock_long_lived_token"

type AuthService interface {
	ExchangeCode(ctx context.Context, code string) (*dto.TokenInfoDTO, error)
	ExchangeShortLivedToken(ctx context.Context, token string) (string, error)
	GetTokenInfo(ctx context.Context, userID int64) (*dto.TokenInfoDTO, error)
	Deactivate(ctx context.Context, userID int64) error
}

type authServiceImpl struct {
	credentialRepo repository.CredentialRepo
	client         threads.Client
}

func NewAuthService(credentialRepo repository.CredentialRepo, client threads.Client) AuthService {
	return &authServiceImpl{
		credentialRepo: credentialRepo,
		client:         client,
	}
}

// ExchangeCode 用授权码换取长效令牌并落库。
// POST 交换接口与 OAuth 回调共用此入口。失败时不产生任何写入。
func (s *authServiceImpl) ExchangeCode(ctx context.Context, code string) (*dto.TokenInfoDTO, error) {
	if code == "" {
		return nil, ErrParamInvalid
	}

	token, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		// 失败明细已在客户端处记录
		return nil, ErrExternalAuth
	}

	// 同一用户的并发换取按 user_id 串行，避免令牌与过期时间交错覆盖
	lockKey := consts.TokenExchangeLock + strconv.FormatInt(token.UserID, 10)
	lockValue := uuid.NewString()
	lock, err := redis.TryLock(ctx, lockKey, lockValue, 10*time.Second, 3)
	if err != nil {
		log.ErrorContext(ctx, "ExchangeCode acquire lock error", "err", err)
		return nil, UnExpectedError
	}
	if !lock {
		return nil, UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	expiresAt := time.Now().Add(consts.TokenValidityDays * 24 * time.Hour)
	cred, err := s.credentialRepo.Upsert(ctx, token.UserID, bson.M{
		"access_token": token.AccessToken,
		"expires_at":   expiresAt,
		"is_active":    true,
	})
	if err != nil {
		log.ErrorContext(ctx, "ExchangeCode upsert credential error", "user_id", token.UserID, "err", err)
		return nil, ErrStore
	}

	_ = redis.DeleteKey(ctx, consts.CredentialCacheKey+strconv.FormatInt(token.UserID, 10))

	log.InfoContext(ctx, "Token exchange success", "user_id", cred.UserID)

	return &dto.TokenInfoDTO{
		UserID:      cred.UserID,
		AccessToken: cred.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   cred.ExpiresAt,
		IsActive:    cred.IsActive,
	}, nil
}

// ExchangeShortLivedToken 简化桩路径：不访问上游、不落库，
// 返回占位令牌供联调使用
func (s *authServiceImpl) ExchangeShortLivedToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrParamInvalid
	}

	log.WarnContext(ctx, "Short-lived token exchange is stubbed, returning placeholder token")
	return PlaceholderLongLivedToken, nil
}

// GetTokenInfo 查询某用户当前凭证状态，令牌本身不回传
func (s *authServiceImpl) GetTokenInfo(ctx context.Context, userID int64) (*dto.TokenInfoDTO, error) {
	cred, err := s.credentialRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "GetTokenInfo query credential error", "user_id", userID, "err", err)
		return nil, ErrStore
	}
	if !cred.Usable() {
		return nil, ErrCredentialNotFound
	}

	return &dto.TokenInfoDTO{
		UserID:    cred.UserID,
		TokenType: "Bearer",
		ExpiresAt: cred.ExpiresAt,
		IsActive:  cred.IsActive,
	}, nil
}

// Deactivate 注销凭证（软删除），之后网关调用一律按不存在处理
func (s *authServiceImpl) Deactivate(ctx context.Context, userID int64) error {
	err := s.credentialRepo.Deactivate(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCredentialNotFound
		}
		log.ErrorContext(ctx, "Deactivate credential error", "user_id", userID, "err", err)
		return ErrStore
	}

	_ = redis.DeleteKey(ctx, consts.CredentialCacheKey+strconv.FormatInt(userID, 10))
	return nil
}
