package router

import (
	"github.com/blues/cfc/internal/bootstrap"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/handler"
	"github.com/blues/cfc/internal/session"
	"github.com/blues/cfc/internal/store"
	"github.com/blues/cfc/internal/tx"
	"github.com/gin-gonic/gin"
)

func Setup(gw *gateway.Gateway, s *store.Store, orchestrator *tx.Orchestrator,
	sequencer *bootstrap.Sequencer, sessionStore *session.Store) *gin.Engine {

	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-client",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(s, orchestrator)
		contributionHandler := handler.NewContributionHandler(gw, s, orchestrator)
		requestHandler := handler.NewRequestHandler(gw, s, orchestrator)
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:address", projectHandler.GetProject)
			projects.GET("/:address/contributors", contributionHandler.GetContributors)
			projects.POST("/:address/contributions", contributionHandler.Contribute)
			projects.GET("/:address/requests", requestHandler.GetWithdrawRequests)
			projects.POST("/:address/requests", requestHandler.CreateWithdrawRequest)
			projects.POST("/:address/requests/:id/votes", requestHandler.VoteWithdrawRequest)
			projects.POST("/:address/requests/:id/withdrawals", requestHandler.WithdrawAmount)
		}

		// 当前账户的出资汇总
		v1.GET("/contributions", contributionHandler.GetMyContributions)

		// 会话相关路由
		sessionHandler := handler.NewSessionHandler(s, sequencer, sessionStore)
		v1.GET("/account", sessionHandler.GetAccount)
		v1.POST("/session/refresh", sessionHandler.Refresh)
		v1.DELETE("/session", sessionHandler.Logout)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
