package logic

import (
	"context"

	"github.com/blues/cfc/internal/format"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/model"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/common"
)

// requestReader 提款请求视图依赖的网关操作面
type requestReader interface {
	BindProject(ctx context.Context, address common.Address) (*gateway.ContractHandle, error)
	WithdrawRequestCount(ctx context.Context, handle *gateway.ContractHandle) (uint64, error)
	WithdrawRequestAt(ctx context.Context, handle *gateway.ContractHandle, id uint64) (format.RawWithdrawRequest, error)
}

// RequestLogic 提款请求视图业务逻辑
// 每次全量轮询：状态和票数必须从合约读新值，不能只信本地乐观追加
type RequestLogic struct {
	chain requestReader
	store *store.Store
}

// NewRequestLogic 创建提款请求业务逻辑
func NewRequestLogic(chain requestReader, s *store.Store) *RequestLogic {
	return &RequestLogic{chain: chain, store: s}
}

// GetWithdrawRequests 获取项目的全部提款请求
// 请求序号从0开始，依次按序号拉取
func (r *RequestLogic) GetWithdrawRequests(ctx context.Context, address common.Address) ([]model.WithdrawRequest, error) {
	handle := r.store.HandleByAddress(address)
	if handle == nil {
		var err error
		handle, err = r.chain.BindProject(ctx, address)
		if err != nil {
			return nil, err
		}
		if handle == nil {
			return nil, gateway.ErrContractNotDeployed
		}
	}

	count, err := r.chain.WithdrawRequestCount(ctx, handle)
	if err != nil {
		return nil, err
	}

	requests := make([]model.WithdrawRequest, 0, count)
	for id := uint64(0); id < count; id++ {
		raw, err := r.chain.WithdrawRequestAt(ctx, handle, id)
		if err != nil {
			return nil, err
		}
		requests = append(requests, format.WithdrawRequest(raw, id))
	}
	return requests, nil
}
