package threads

import (
	"Threadway/internal/api/config"
	"Threadway/internal/pkg/consts"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Client Threads 开放平台调用入口，令牌由调用方传入
type Client interface {
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	GetProfile(ctx context.Context, accessToken string) (*ProfileResponse, error)
	CreatePost(ctx context.Context, accessToken string, params *CreatePostParams) (map[string]any, error)
	ListPosts(ctx context.Context, accessToken string, limit int) ([]map[string]any, error)
	ListReplies(ctx context.Context, accessToken string, threadID string, limit int) ([]map[string]any, error)
	GetInsights(ctx context.Context, accessToken string, since, until *time.Time) ([]Metric, error)
}

// TokenResponse 换取令牌接口的响应体
type TokenResponse struct {
	UserID      int64  `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// ProfileResponse 资料接口响应：Raw 原样返回给调用方，具名字段用于回写凭证
type ProfileResponse struct {
	Username          string `json:"username"`
	ProfilePictureURL string `json:"threads_profile_picture_url"`
	Biography         string `json:"threads_biography"`

	Raw map[string]any `json:"-"`
}

// CreatePostParams 发帖参数，全部可选，内容校验交由上游
type CreatePostParams struct {
	Text              string `json:"text,omitempty"`
	MediaType         string `json:"media_type,omitempty"`
	MediaURL          string `json:"media_url,omitempty"`
	AltText           string `json:"alt_text,omitempty"`
	LinkAttachmentURL string `json:"link_attachment_url,omitempty"`
	ReplyControl      string `json:"reply_control,omitempty"`
}

type listEnvelope struct {
	// 仅保留 data，分页游标直接丢弃
	Data []map[string]any `json:"data"`
}

type clientImpl struct {
	http *resty.Client
	cfg  config.ThreadsConfig
}

func NewClient(cfg config.ThreadsConfig) Client {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("X-IG-App-ID", cfg.AppID).
		SetHeader("X-Device-ID", cfg.DeviceID)

	return &clientImpl{
		http: httpClient,
		cfg:  cfg,
	}
}

// ExchangeCode 用授权码换取长效令牌，表单编码 POST
func (s *clientImpl) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     s.cfg.AppID,
			"client_secret": s.cfg.AppSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  s.cfg.RedirectURI,
		}).
		Post(s.cfg.AuthBaseURL + "/oauth/access_token")
	if err != nil {
		return nil, s.failure(ctx, "ExchangeCode", err, nil)
	}
	if resp.IsError() {
		return nil, s.failure(ctx, "ExchangeCode", nil, resp)
	}

	var token TokenResponse
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return nil, s.failure(ctx, "ExchangeCode", err, resp)
	}
	if token.AccessToken == "" || token.UserID == 0 {
		return nil, s.failure(ctx, "ExchangeCode",
			fmt.Errorf("token response missing user_id or access_token"), resp)
	}

	return &token, nil
}

// GetProfile 拉取用户资料，返回体同时解析为具名字段与原始 map
func (s *clientImpl) GetProfile(ctx context.Context, accessToken string) (*ProfileResponse, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       consts.ProfileFields,
			"access_token": accessToken,
		}).
		Get(s.cfg.GraphBaseURL + "/me")
	if err != nil {
		return nil, s.failure(ctx, "GetProfile", err, nil)
	}
	if resp.IsError() {
		return nil, s.failure(ctx, "GetProfile", nil, resp)
	}

	var profile ProfileResponse
	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		return nil, s.failure(ctx, "GetProfile", err, resp)
	}
	if err := json.Unmarshal(resp.Body(), &profile.Raw); err != nil {
		return nil, s.failure(ctx, "GetProfile", err, resp)
	}

	return &profile, nil
}

// CreatePost 发布帖子，响应体原样返回
func (s *clientImpl) CreatePost(ctx context.Context, accessToken string, params *CreatePostParams) (map[string]any, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		Post(s.cfg.GraphBaseURL + "/me/threads")
	if err != nil {
		return nil, s.failure(ctx, "CreatePost", err, nil)
	}
	if resp.IsError() {
		return nil, s.failure(ctx, "CreatePost", nil, resp)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, s.failure(ctx, "CreatePost", err, resp)
	}

	return body, nil
}

// ListPosts 拉取帖子列表，仅返回 data 数组
func (s *clientImpl) ListPosts(ctx context.Context, accessToken string, limit int) ([]map[string]any, error) {
	return s.list(ctx, "ListPosts", s.cfg.GraphBaseURL+"/me/threads", accessToken,
		consts.PostFields, limit)
}

// ListReplies 拉取某条帖子的回复列表，仅返回 data 数组
func (s *clientImpl) ListReplies(ctx context.Context, accessToken string, threadID string, limit int) ([]map[string]any, error) {
	return s.list(ctx, "ListReplies", s.cfg.GraphBaseURL+"/"+threadID+"/replies", accessToken,
		consts.ReplyFields, limit)
}

func (s *clientImpl) list(ctx context.Context, op string, url string, accessToken string, fields string, limit int) ([]map[string]any, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       fields,
			"limit":        strconv.Itoa(limit),
			"access_token": accessToken,
		}).
		Get(url)
	if err != nil {
		return nil, s.failure(ctx, op, err, nil)
	}
	if resp.IsError() {
		return nil, s.failure(ctx, op, nil, resp)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, s.failure(ctx, op, err, resp)
	}

	return envelope.Data, nil
}

// GetInsights 拉取账号洞察，时间窗口可选，按 ISO-8601 传递
func (s *clientImpl) GetInsights(ctx context.Context, accessToken string, since, until *time.Time) ([]Metric, error) {
	params := map[string]string{
		"metric":       consts.InsightMetrics,
		"access_token": accessToken,
	}
	if since != nil {
		params["since"] = since.Format(time.RFC3339)
	}
	if until != nil {
		params["until"] = until.Format(time.RFC3339)
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(s.cfg.GraphBaseURL + "/me/threads_insights")
	if err != nil {
		return nil, s.failure(ctx, "GetInsights", err, nil)
	}
	if resp.IsError() {
		return nil, s.failure(ctx, "GetInsights", nil, resp)
	}

	var envelope insightsEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, s.failure(ctx, "GetInsights", err, resp)
	}

	return envelope.Data, nil
}

// failure 统一记录三类上游失败：网络错误、非 2xx、响应体解析失败
func (s *clientImpl) failure(ctx context.Context, op string, cause error, resp *resty.Response) error {
	fields := []any{log.String("op", op)}

	if resp != nil {
		body := string(resp.Body())
		if len(body) > 1000 {
			body = body[:1000] + "...[truncated]"
		}
		fields = append(fields, log.Int("status", resp.StatusCode()), log.String("res_body", body))
	}

	if cause == nil && resp != nil {
		cause = fmt.Errorf("upstream returned status %d", resp.StatusCode())
	}
	fields = append(fields, log.Any("err", cause))

	log.ErrorContext(ctx, "Threads API Error", fields...)
	return fmt.Errorf("threads %s: %w", op, cause)
}
