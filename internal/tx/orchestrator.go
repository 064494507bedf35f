package tx

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/blues/cfc/internal/model"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrValidation 客户端前置校验失败，未发起任何网络请求
var ErrValidation = errors.New("validation failed")

// chain 编排器依赖的网关操作面
type chain interface {
	Send(ctx context.Context, handle *gateway.ContractHandle, value *big.Int, method string, args ...interface{}) (*types.Transaction, error)
	WaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	BindProject(ctx context.Context, address common.Address) (*gateway.ContractHandle, error)
}

// Result 交易最终结果，成功和失败共用一个通道，至多投递一次
type Result struct {
	Project *model.Project         // 创建项目时携带
	Request *model.WithdrawRequest // 创建提款请求时携带
	Receipt *types.Receipt
	Err     error
}

// Orchestrator 交易编排器
// 每个操作遵循统一生命周期：提交 → 等待回执 → 提取事件 → 更新状态 → 投递结果
// 提交后立即返回结果通道，确认在后台协程中完成
type Orchestrator struct {
	chain chain
	store *store.Store
}

// New 创建交易编排器
func New(c chain, s *store.Store) *Orchestrator {
	return &Orchestrator{chain: c, store: s}
}

// submit 提交交易并启动后台确认
// 确认使用独立的context：广播出去的交易无法撤销，调用方离开不应中断回执处理
func (o *Orchestrator) submit(ctx context.Context, handle *gateway.ContractHandle, value *big.Int,
	method string, onReceipt func(*types.Receipt) Result, args ...interface{}) (<-chan Result, error) {

	tx, err := o.chain.Send(ctx, handle, value, method, args...)
	if err != nil {
		return nil, err
	}

	results := make(chan Result, 1)
	go func() {
		defer close(results)

		receipt, err := o.chain.WaitReceipt(context.Background(), tx)
		if err != nil {
			logger.Error("Transaction %s failed: %v", tx.Hash().Hex(), err)
			results <- Result{Err: err}
			return
		}

		logger.Info("Transaction %s confirmed in block %d", tx.Hash().Hex(), receipt.BlockNumber.Uint64())
		result := onReceipt(receipt)
		result.Receipt = receipt
		results <- result
	}()

	return results, nil
}

// requireAccount 校验当前会话存在账户
func (o *Orchestrator) requireAccount() error {
	if _, ok := o.store.Account(); !ok {
		return validationError("wallet not connected")
	}
	return nil
}

// validationError 构造带统一哨兵的校验错误
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
