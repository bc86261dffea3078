package wire

import (
	"Threadway/internal/api"
	"Threadway/internal/api/config"
	"Threadway/internal/api/handler"
	"Threadway/internal/job"
	"Threadway/internal/pkg/cron"
	"Threadway/internal/pkg/threads"
	"Threadway/internal/repository"
	"Threadway/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	credentialRepo := repository.NewCredentialRepo(db)
	insightRepo := repository.NewInsightRepo(db)

	threadsClient := threads.NewClient(cfg.Threads)

	authService := service.NewAuthService(credentialRepo, threadsClient)
	threadsService := service.NewThreadsService(credentialRepo, insightRepo, threadsClient, cfg.Threads.ProfileHost)

	handlers := &api.HandlersGroup{
		AuthHandler:    handler.NewAuthHandler(authService),
		ThreadsHandler: handler.NewThreadsHandler(threadsService),
	}

	router := api.SetupRouter(handlers)

	insightSyncJob := job.NewInsightSyncJob(credentialRepo, threadsService)
	cronMgr := cron.NewCronManager(insightSyncJob)

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
