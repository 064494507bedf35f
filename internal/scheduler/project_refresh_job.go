package scheduler

import (
	"context"
	"time"

	"github.com/blues/cfc/internal/bootstrap"
	"github.com/blues/cfc/internal/config"
	"github.com/blues/cfc/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// ProjectRefreshJob 项目刷新任务
// 周期性重新枚举项目详情，让本地镜像跟上链上状态
type ProjectRefreshJob struct {
	sequencer *bootstrap.Sequencer
	config    *config.Config
}

// NewProjectRefreshJob 创建项目刷新任务
func NewProjectRefreshJob(sequencer *bootstrap.Sequencer, cfg *config.Config) *ProjectRefreshJob {
	return &ProjectRefreshJob{
		sequencer: sequencer,
		config:    cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectRefreshJob) GetName() string {
	return "project_refresh"
}

// GetSchedule 获取调度配置
func (j *ProjectRefreshJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectRefreshJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := j.sequencer.Refresh(ctx); err != nil {
		logger.Error("Project refresh failed: %v", err)
	}
}
