package main

import (
	"context"
	"log"
	"time"

	"github.com/blues/cfc/internal/bootstrap"
	"github.com/blues/cfc/internal/config"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/blues/cfc/internal/router"
	"github.com/blues/cfc/internal/scheduler"
	"github.com/blues/cfc/internal/session"
	"github.com/blues/cfc/internal/store"
	"github.com/blues/cfc/internal/tx"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	setupLogger(cfg)
	defer logger.Sync()

	// 打开本地会话库
	sessionStore, err := session.Open(cfg.Session.Path)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	// 初始化链网关
	gw, err := gateway.New(cfg.Chain)
	if err != nil {
		log.Fatalf("Failed to initialize chain gateway: %v", err)
	}

	// 初始化状态容器与编排器
	stateStore := store.New()
	orchestrator := tx.New(gw, stateStore)

	// 执行引导序列
	sequencer := bootstrap.New(gw, stateStore, sessionStore, cfg.Chain.WorkerPoolSize)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := sequencer.Run(ctx); err != nil {
		logger.Error("Bootstrap failed: %v", err)
	}
	cancel()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(gw, stateStore, orchestrator, sequencer, sessionStore)

	// 启动定时任务
	manager := scheduler.Start(gw, sequencer, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupLogger 根据配置初始化默认日志器
func setupLogger(cfg *config.Config) {
	level := logger.ParseLogLevel(cfg.Log.Level)

	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			log.Fatalf("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
