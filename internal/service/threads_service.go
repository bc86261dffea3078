package service

import (
	"Threadway/internal/api/dto"
	"Threadway/internal/model"
	"Threadway/internal/pkg/consts"
	"Threadway/internal/pkg/redis"
	"Threadway/internal/pkg/threads"
	"Threadway/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
)

type ThreadsService interface {
	GetProfile(ctx context.Context, userID int64) (map[string]any, error)
	CreatePost(ctx context.Context, userID int64, postDTO *dto.CreatePostDTO) (map[string]any, error)
	GetPosts(ctx context.Context, userID int64, limit int) ([]map[string]any, error)
	GetReplies(ctx context.Context, userID int64, threadID string, limit int) ([]map[string]any, error)
	GetInsights(ctx context.Context, userID int64, since, until *time.Time) (map[string]int64, error)
	GetInsightHistory(ctx context.Context, userID int64, limit int) ([]*model.InsightSnapshot, error)
	SyncInsights(ctx context.Context, userID int64) error
}

type threadsServiceImpl struct {
	credentialRepo repository.CredentialRepo
	insightRepo    repository.InsightRepo
	client         threads.Client
	profileHost    string
}

func NewThreadsService(
	credentialRepo repository.CredentialRepo,
	insightRepo repository.InsightRepo,
	client threads.Client,
	profileHost string,
) ThreadsService {
	return &threadsServiceImpl{
		credentialRepo: credentialRepo,
		insightRepo:    insightRepo,
		client:         client,
		profileHost:    profileHost,
	}
}

// loadCredential 读取某用户的可用凭证，缓存优先。
// 凭证缺失或已注销一律视为不存在，此时不会发起任何上游调用。
func (s *threadsServiceImpl) loadCredential(ctx context.Context, userID int64) (*model.Credential, error) {
	cacheKey := consts.CredentialCacheKey + strconv.FormatInt(userID, 10)

	value, err := redis.GetValue(ctx, cacheKey)
	if err == nil && value != "" {
		var cred model.Credential
		if err = json.Unmarshal([]byte(value), &cred); err == nil {
			if !cred.Usable() {
				return nil, ErrCredentialNotFound
			}
			return &cred, nil
		}
		_ = redis.DeleteKey(ctx, cacheKey)
	}

	cred, err := s.credentialRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "loadCredential query error", "user_id", userID, "err", err)
		return nil, ErrStore
	}
	if !cred.Usable() {
		return nil, ErrCredentialNotFound
	}

	if jsonStr, err := json.Marshal(cred); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, string(jsonStr), time.Hour*1)
	}

	return cred, nil
}

func (s *threadsServiceImpl) invalidateCredential(ctx context.Context, userID int64) {
	_ = redis.DeleteKey(ctx, consts.CredentialCacheKey+strconv.FormatInt(userID, 10))
}

// GetProfile 拉取上游资料并机会性回写反范式字段。
// 回写失败只记日志，不影响对调用方返回原始载荷（软失败写、硬失败读）。
func (s *threadsServiceImpl) GetProfile(ctx context.Context, userID int64) (map[string]any, error) {
	cred, err := s.loadCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.client.GetProfile(ctx, cred.AccessToken)
	if err != nil {
		return nil, ErrUpstreamCall
	}

	fields := bson.M{
		"username":            profile.Username,
		"profile_picture_url": profile.ProfilePictureURL,
		"biography":           profile.Biography,
		"profile_url":         fmt.Sprintf("https://%s/@%s", s.profileHost, profile.Username),
	}
	if _, err = s.credentialRepo.Upsert(ctx, userID, fields); err != nil {
		log.ErrorContext(ctx, "GetProfile denormalized write failed", "user_id", userID, "err", err)
	} else {
		s.invalidateCredential(ctx, userID)
	}

	return profile.Raw, nil
}

// CreatePost 代理发帖，上游响应原样返回
func (s *threadsServiceImpl) CreatePost(ctx context.Context, userID int64, postDTO *dto.CreatePostDTO) (map[string]any, error) {
	cred, err := s.loadCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	params := &threads.CreatePostParams{}
	if err = copier.Copy(params, postDTO); err != nil {
		log.ErrorContext(ctx, "CreatePost copy params error", "err", err)
		return nil, UnExpectedError
	}

	body, err := s.client.CreatePost(ctx, cred.AccessToken, params)
	if err != nil {
		return nil, ErrUpstreamCall
	}

	return body, nil
}

// GetPosts 拉取帖子列表，仅透传 data 数组
func (s *threadsServiceImpl) GetPosts(ctx context.Context, userID int64, limit int) ([]map[string]any, error) {
	cred, err := s.loadCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = consts.DefaultListLimit
	}

	posts, err := s.client.ListPosts(ctx, cred.AccessToken, limit)
	if err != nil {
		return nil, ErrUpstreamCall
	}

	return posts, nil
}

// GetReplies 拉取某条帖子的回复列表
func (s *threadsServiceImpl) GetReplies(ctx context.Context, userID int64, threadID string, limit int) ([]map[string]any, error) {
	if threadID == "" {
		return nil, ErrParamInvalid
	}

	cred, err := s.loadCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = consts.DefaultListLimit
	}

	replies, err := s.client.ListReplies(ctx, cred.AccessToken, threadID, limit)
	if err != nil {
		return nil, ErrUpstreamCall
	}

	return replies, nil
}

// GetInsights 拉取账号洞察，归一化后留存一条快照再返回。
// 按需路径不回写凭证上的指标缓存，那是定时同步的职责。
func (s *threadsServiceImpl) GetInsights(ctx context.Context, userID int64, since, until *time.Time) (map[string]int64, error) {
	cred, err := s.loadCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.client.GetInsights(ctx, cred.AccessToken, since, until)
	if err != nil {
		return nil, ErrUpstreamCall
	}

	metrics := threads.NormalizeMetrics(entries)

	snapshot := &model.InsightSnapshot{
		UserID:  userID,
		Metrics: metrics,
		Since:   since,
		Until:   until,
	}
	if err = s.insightRepo.Create(ctx, snapshot); err != nil {
		log.ErrorContext(ctx, "GetInsights snapshot write failed", "user_id", userID, "err", err)
		return nil, ErrStore
	}

	return metrics, nil
}

// GetInsightHistory 返回历史快照，最新在前
func (s *threadsServiceImpl) GetInsightHistory(ctx context.Context, userID int64, limit int) ([]*model.InsightSnapshot, error) {
	if limit <= 0 {
		limit = consts.DefaultListLimit
	}

	snapshots, err := s.insightRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		log.ErrorContext(ctx, "GetInsightHistory query error", "user_id", userID, "err", err)
		return nil, ErrStore
	}

	return snapshots, nil
}

// SyncInsights 定时同步路径：留存近一天窗口的快照，
// 并整体覆盖凭证上的最近指标缓存
func (s *threadsServiceImpl) SyncInsights(ctx context.Context, userID int64) error {
	until := time.Now()
	since := until.AddDate(0, 0, -1)

	metrics, err := s.GetInsights(ctx, userID, &since, &until)
	if err != nil {
		return err
	}

	if _, err = s.credentialRepo.Upsert(ctx, userID, bson.M{"metrics": metrics}); err != nil {
		log.ErrorContext(ctx, "SyncInsights metrics write failed", "user_id", userID, "err", err)
		return ErrStore
	}
	s.invalidateCredential(ctx, userID)

	return nil
}
