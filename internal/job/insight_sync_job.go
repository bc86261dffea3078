package job

import (
	"Threadway/internal/pkg/logger"
	"Threadway/internal/repository"
	"Threadway/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// InsightSyncJob 每日为全部激活凭证留存一份洞察快照，
// 并刷新凭证上的最近指标缓存。单个用户失败不中断其余用户。
type InsightSyncJob struct {
	credentialRepo repository.CredentialRepo
	threadsSvc     service.ThreadsService
}

func NewInsightSyncJob(credentialRepo repository.CredentialRepo, threadsSvc service.ThreadsService) *InsightSyncJob {
	return &InsightSyncJob{
		credentialRepo: credentialRepo,
		threadsSvc:     threadsSvc,
	}
}

func (s *InsightSyncJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	creds, err := s.credentialRepo.ListActive(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list active credentials error", "err", err)
		return
	}

	synced := 0
	for _, cred := range creds {
		if err = s.threadsSvc.SyncInsights(ctx, cred.UserID); err != nil {
			log.ErrorContext(ctx, "sync insights error", "user_id", cred.UserID, "err", err)
			continue
		}
		synced++
	}

	log.InfoContext(ctx, "sync insights finished", "total", len(creds), "synced", synced)
}
