package tx

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/blues/cfc/internal/format"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// CreateProjectArgs 创建项目参数
type CreateProjectArgs struct {
	MinContribution *big.Int
	DeadlineMillis  int64 // unix 毫秒，上链前折算为秒
	TargetAmount    *big.Int
	Title           string
	Description     string
}

// ContributeArgs 出资参数
type ContributeArgs struct {
	ProjectAddress common.Address
	Amount         *big.Int
}

// CreateWithdrawRequestArgs 创建提款请求参数
type CreateWithdrawRequestArgs struct {
	ProjectAddress common.Address
	Description    string
	Amount         *big.Int
	Recipient      common.Address
}

// VoteArgs 投票参数
type VoteArgs struct {
	ProjectAddress common.Address
	RequestID      uint64
}

// WithdrawArgs 执行提款参数
type WithdrawArgs struct {
	ProjectAddress common.Address
	RequestID      uint64
	Amount         *big.Int
}

// CreateProject 发起新项目
// 确认后从回执的 ProjectStarted 事件恢复项目记录并追加到状态容器
func (o *Orchestrator) CreateProject(ctx context.Context, args CreateProjectArgs) (<-chan Result, error) {
	if err := o.requireAccount(); err != nil {
		return nil, err
	}
	root := o.store.RootContract()
	if root == nil {
		return nil, fmt.Errorf("%w: crowdfunding contract not loaded", gateway.ErrContractNotDeployed)
	}
	if args.MinContribution == nil || args.TargetAmount == nil {
		return nil, validationError("contribution amounts are required")
	}
	if args.Title == "" {
		return nil, validationError("project title is required")
	}

	deadline := new(big.Int).SetInt64(args.DeadlineMillis / 1000)

	return o.submit(ctx, root, nil, "createProject", func(receipt *types.Receipt) Result {
		ev, err := root.EventFromReceipt(receipt, "ProjectStarted")
		if err != nil {
			return Result{Err: err}
		}

		address := ev.Address("projectContractAddress")
		raw := format.RawProject{
			Creator:         ev.Address("creator"),
			MinContribution: ev.BigInt("minContribution"),
			Deadline:        ev.BigInt("projectDeadline"),
			TargetAmount:    ev.BigInt("goalAmount"),
			RaisedAmount:    ev.BigInt("currentAmount"),
			Title:           ev.String("title"),
			Description:     ev.String("desc"),
			Balance:         ev.BigInt("balance"),
		}
		project := format.Project(raw, address, time.Now())

		handle, err := o.bindProject(address)
		if err != nil {
			logger.Warn("Failed to bind new project contract %s: %v", address.Hex(), err)
		}
		o.store.AppendProject(project, handle)

		return Result{Project: &project}
	}, args.MinContribution, deadline, args.TargetAmount, args.Title, args.Description)
}

// Contribute 向项目出资
// 低于项目最低出资额的请求在本地直接拒绝，不发起网络请求；合约侧仍会复核
func (o *Orchestrator) Contribute(ctx context.Context, args ContributeArgs) (<-chan Result, error) {
	if err := o.requireAccount(); err != nil {
		return nil, err
	}
	root := o.store.RootContract()
	if root == nil {
		return nil, fmt.Errorf("%w: crowdfunding contract not loaded", gateway.ErrContractNotDeployed)
	}
	if args.Amount == nil || args.Amount.Sign() <= 0 {
		return nil, validationError("contribution amount must be positive")
	}
	if project, ok := o.store.ProjectByAddress(args.ProjectAddress); ok {
		if project.MinContribution != nil && args.Amount.Cmp(project.MinContribution) < 0 {
			return nil, validationError("amount below minimum contribution %s", project.MinContribution.String())
		}
	}

	return o.submit(ctx, root, args.Amount, "contribute", func(receipt *types.Receipt) Result {
		// 调用方已持有乐观的本地金额，只需累加项目累计值
		o.store.RecordContribution(args.ProjectAddress, args.Amount)
		return Result{}
	}, args.ProjectAddress)
}

// CreateWithdrawRequest 为项目创建提款请求
// 确认后从回执的 WithdrawRequestCreated 事件恢复请求记录
func (o *Orchestrator) CreateWithdrawRequest(ctx context.Context, args CreateWithdrawRequestArgs) (<-chan Result, error) {
	if err := o.requireAccount(); err != nil {
		return nil, err
	}
	handle := o.store.HandleByAddress(args.ProjectAddress)
	if handle == nil {
		return nil, validationError("project contract %s not loaded", args.ProjectAddress.Hex())
	}
	if args.Amount == nil || args.Amount.Sign() <= 0 {
		return nil, validationError("withdraw amount must be positive")
	}

	return o.submit(ctx, handle, nil, "createWithdrawRequest", func(receipt *types.Receipt) Result {
		ev, err := handle.EventFromReceipt(receipt, "WithdrawRequestCreated")
		if err != nil {
			return Result{Err: err}
		}

		raw := format.RawWithdrawRequest{
			Description: ev.String("description"),
			Amount:      ev.BigInt("amount"),
			VoteCount:   ev.BigInt("noOfVotes"),
			IsCompleted: ev.Bool("isCompleted"),
			Recipient:   ev.Address("recipient"),
		}
		request := format.WithdrawRequest(raw, ev.BigInt("requestId").Uint64())

		return Result{Request: &request}
	}, args.Description, args.Amount, args.Recipient)
}

// VoteWithdrawRequest 为提款请求投票
func (o *Orchestrator) VoteWithdrawRequest(ctx context.Context, args VoteArgs) (<-chan Result, error) {
	if err := o.requireAccount(); err != nil {
		return nil, err
	}
	handle := o.store.HandleByAddress(args.ProjectAddress)
	if handle == nil {
		return nil, validationError("project contract %s not loaded", args.ProjectAddress.Hex())
	}

	return o.submit(ctx, handle, nil, "voteWithdrawRequest", func(receipt *types.Receipt) Result {
		// 票数以下一次链上轮询为准，调用方自行更新本地列表
		return Result{}
	}, new(big.Int).SetUint64(args.RequestID))
}

// WithdrawAmount 执行已获批的提款请求
// 确认后在状态容器里扣减项目余额
func (o *Orchestrator) WithdrawAmount(ctx context.Context, args WithdrawArgs) (<-chan Result, error) {
	if err := o.requireAccount(); err != nil {
		return nil, err
	}
	handle := o.store.HandleByAddress(args.ProjectAddress)
	if handle == nil {
		return nil, validationError("project contract %s not loaded", args.ProjectAddress.Hex())
	}
	if args.Amount == nil || args.Amount.Sign() <= 0 {
		return nil, validationError("withdraw amount must be positive")
	}

	return o.submit(ctx, handle, nil, "withdrawRequestedAmount", func(receipt *types.Receipt) Result {
		o.store.DebitBalance(args.ProjectAddress, args.Amount)
		return Result{}
	}, new(big.Int).SetUint64(args.RequestID))
}

// bindProject 绑定新建项目的合约，绑定失败不阻塞创建结果投递
func (o *Orchestrator) bindProject(address common.Address) (*gateway.ContractHandle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return o.chain.BindProject(ctx, address)
}
