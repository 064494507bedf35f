package logic

import (
	"context"

	"github.com/blues/cfc/internal/aggregate"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/blues/cfc/internal/model"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/common"
)

// eventSource 出资视图依赖的网关操作面
type eventSource interface {
	BindProject(ctx context.Context, address common.Address) (*gateway.ContractHandle, error)
	FundingEvents(ctx context.Context, handle *gateway.ContractHandle) ([]model.ContributionEvent, error)
	ContributionEvents(ctx context.Context, root *gateway.ContractHandle, account common.Address) ([]model.ContributionEvent, error)
}

// ContributionLogic 出资视图业务逻辑
// 两个视图都从只追加的事件日志现算，不依赖本地缓存的聚合值
type ContributionLogic struct {
	chain eventSource
	store *store.Store
}

// NewContributionLogic 创建出资业务逻辑
func NewContributionLogic(chain eventSource, s *store.Store) *ContributionLogic {
	return &ContributionLogic{chain: chain, store: s}
}

// GetContributors 获取单个项目的出资人汇总
func (c *ContributionLogic) GetContributors(ctx context.Context, address common.Address) ([]aggregate.ContributorTotal, error) {
	handle := c.store.HandleByAddress(address)
	if handle == nil {
		// 列表里没有的项目按地址现绑
		var err error
		handle, err = c.chain.BindProject(ctx, address)
		if err != nil {
			return nil, err
		}
		if handle == nil {
			return nil, gateway.ErrContractNotDeployed
		}
	}

	events, err := c.chain.FundingEvents(ctx, handle)
	if err != nil {
		return nil, err
	}
	return aggregate.ContributorsByProject(events), nil
}

// GetMyContributions 获取当前账户的跨项目出资汇总
// 未登录或根合约未部署时返回空列表，这不是错误
func (c *ContributionLogic) GetMyContributions(ctx context.Context) ([]aggregate.ProjectTotal, error) {
	account, ok := c.store.Account()
	if !ok {
		logger.Warn("No account available for fetching contributions")
		return []aggregate.ProjectTotal{}, nil
	}
	root := c.store.RootContract()
	if root == nil {
		logger.Warn("Crowdfunding contract not loaded, skipping contribution fetch")
		return []aggregate.ProjectTotal{}, nil
	}

	events, err := c.chain.ContributionEvents(ctx, root, account)
	if err != nil {
		return nil, err
	}
	return aggregate.ContributionsByContributor(events), nil
}
