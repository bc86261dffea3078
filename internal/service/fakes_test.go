package service

import (
	"Threadway/internal/model"
	"Threadway/internal/pkg/threads"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeCredentialRepo 以单文档整体写入模拟存储层的原子 Upsert
type fakeCredentialRepo struct {
	mu      sync.Mutex
	creds   map[int64]*model.Credential
	gets    int
	upserts int

	failGet    error
	failUpsert error
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{creds: map[int64]*model.Credential{}}
}

func (s *fakeCredentialRepo) GetByUserID(_ context.Context, userID int64) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.failGet != nil {
		return nil, s.failGet
	}
	cred, ok := s.creds[userID]
	if !ok {
		return nil, nil
	}
	copied := *cred
	return &copied, nil
}

func (s *fakeCredentialRepo) Upsert(_ context.Context, userID int64, fields bson.M) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.failUpsert != nil {
		return nil, s.failUpsert
	}

	cred, ok := s.creds[userID]
	if !ok {
		cred = &model.Credential{UserID: userID, CreatedAt: time.Now()}
		s.creds[userID] = cred
	}
	cred.UpdatedAt = time.Now()

	for k, v := range fields {
		switch k {
		case "access_token":
			cred.AccessToken = v.(string)
		case "expires_at":
			cred.ExpiresAt = v.(time.Time)
		case "is_active":
			cred.IsActive = v.(bool)
		case "username":
			cred.Username = v.(string)
		case "profile_picture_url":
			cred.ProfilePictureURL = v.(string)
		case "biography":
			cred.Biography = v.(string)
		case "profile_url":
			cred.ProfileURL = v.(string)
		case "metrics":
			cred.Metrics = v.(map[string]int64)
		}
	}

	copied := *cred
	return &copied, nil
}

func (s *fakeCredentialRepo) ListActive(_ context.Context) ([]*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Credential
	for _, cred := range s.creds {
		if cred.IsActive {
			copied := *cred
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeCredentialRepo) Deactivate(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cred.IsActive = false
	return nil
}

type fakeInsightRepo struct {
	mu        sync.Mutex
	snapshots []*model.InsightSnapshot

	failCreate error
}

func (s *fakeInsightRepo) Create(_ context.Context, snapshot *model.InsightSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func (s *fakeInsightRepo) ListByUserID(_ context.Context, userID int64, limit int) ([]*model.InsightSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.InsightSnapshot
	for i := len(s.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		if s.snapshots[i].UserID == userID {
			out = append(out, s.snapshots[i])
		}
	}
	return out, nil
}

// fakeThreadsClient 可编程的上游客户端桩，记录调用次数
type fakeThreadsClient struct {
	mu    sync.Mutex
	calls map[string]int

	exchangeFn func(code string) (*threads.TokenResponse, error)
	profileFn  func() (*threads.ProfileResponse, error)
	postFn     func(params *threads.CreatePostParams) (map[string]any, error)
	postsFn    func(limit int) ([]map[string]any, error)
	repliesFn  func(threadID string, limit int) ([]map[string]any, error)
	insightsFn func(since, until *time.Time) ([]threads.Metric, error)
}

func newFakeThreadsClient() *fakeThreadsClient {
	return &fakeThreadsClient{calls: map[string]int{}}
}

func (s *fakeThreadsClient) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}

func (s *fakeThreadsClient) callCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *fakeThreadsClient) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *fakeThreadsClient) ExchangeCode(_ context.Context, code string) (*threads.TokenResponse, error) {
	s.record("ExchangeCode")
	return s.exchangeFn(code)
}

func (s *fakeThreadsClient) GetProfile(_ context.Context, _ string) (*threads.ProfileResponse, error) {
	s.record("GetProfile")
	return s.profileFn()
}

func (s *fakeThreadsClient) CreatePost(_ context.Context, _ string, params *threads.CreatePostParams) (map[string]any, error) {
	s.record("CreatePost")
	return s.postFn(params)
}

func (s *fakeThreadsClient) ListPosts(_ context.Context, _ string, limit int) ([]map[string]any, error) {
	s.record("ListPosts")
	return s.postsFn(limit)
}

func (s *fakeThreadsClient) ListReplies(_ context.Context, _ string, threadID string, limit int) ([]map[string]any, error) {
	s.record("ListReplies")
	return s.repliesFn(threadID, limit)
}

func (s *fakeThreadsClient) GetInsights(_ context.Context, _ string, since, until *time.Time) ([]threads.Metric, error) {
	s.record("GetInsights")
	return s.insightsFn(since, until)
}
