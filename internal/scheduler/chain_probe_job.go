package scheduler

import (
	"context"
	"math/big"
	"time"

	"github.com/blues/cfc/internal/bootstrap"
	"github.com/blues/cfc/internal/config"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// ChainProbeJob 链变更探测任务
// 定期核对节点链ID，发现网络切换后触发重新引导
type ChainProbeJob struct {
	gateway   *gateway.Gateway
	sequencer *bootstrap.Sequencer
	config    *config.Config

	lastChainID *big.Int
}

// NewChainProbeJob 创建链变更探测任务
func NewChainProbeJob(gw *gateway.Gateway, sequencer *bootstrap.Sequencer, cfg *config.Config) *ChainProbeJob {
	return &ChainProbeJob{
		gateway:   gw,
		sequencer: sequencer,
		config:    cfg,
	}
}

// GetName 获取任务名称
func (j *ChainProbeJob) GetName() string {
	return "chain_probe"
}

// GetSchedule 获取调度配置
func (j *ChainProbeJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ChainProbeJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chainID, err := j.gateway.ChainID(ctx)
	if err != nil {
		logger.Warn("Chain probe failed: %v", err)
		return
	}

	if j.lastChainID == nil {
		j.lastChainID = chainID
		return
	}
	if j.lastChainID.Cmp(chainID) == 0 {
		return
	}

	logger.Info("Chain id changed from %s to %s, re-running bootstrap", j.lastChainID, chainID)
	j.lastChainID = chainID
	if err := j.sequencer.Rerun(ctx); err != nil {
		logger.Error("Bootstrap rerun failed: %v", err)
	}
}
