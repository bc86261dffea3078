package api

import (
	"Threadway/internal/api/middleware"
	"Threadway/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/token/exchange", group.AuthHandler.ExchangeToken)
			authGroup.POST("/token/exchange/simulate", group.AuthHandler.SimulateExchange)
			authGroup.GET("/callback", group.AuthHandler.Callback)
			authGroup.GET("/token/:user_id", group.AuthHandler.GetTokenInfo)
			authGroup.DELETE("/token/:user_id", group.AuthHandler.Deactivate)
		}

		threadsGroup := apiGroup.Group("/threads")
		{
			threadsGroup.GET("/:user_id/profile", group.ThreadsHandler.GetProfile)
			threadsGroup.POST("/:user_id/posts", group.ThreadsHandler.CreatePost)
			threadsGroup.GET("/:user_id/posts", group.ThreadsHandler.GetPosts)
			threadsGroup.GET("/:user_id/posts/:thread_id/replies", group.ThreadsHandler.GetReplies)
			threadsGroup.GET("/:user_id/insights", group.ThreadsHandler.GetInsights)
			threadsGroup.GET("/:user_id/insights/history", group.ThreadsHandler.GetInsightHistory)
		}
	}

	return r
}
