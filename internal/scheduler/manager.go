package scheduler

import (
	"github.com/blues/cfc/internal/bootstrap"
	"github.com/blues/cfc/internal/config"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	gateway   *gateway.Gateway
	sequencer *bootstrap.Sequencer
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(gw *gateway.Gateway, sequencer *bootstrap.Sequencer, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		gateway:   gw,
		sequencer: sequencer,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(gw *gateway.Gateway, sequencer *bootstrap.Sequencer, cfg *config.Config) *Manager {
	manager := NewManager(gw, sequencer, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册项目刷新任务
	m.registerJob(NewProjectRefreshJob(m.sequencer, m.config))
	// 注册链变更探测任务
	m.registerJob(NewChainProbeJob(m.gateway, m.sequencer, m.config))
}

// Job 定时任务
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// registerJob 注册单个任务
func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
