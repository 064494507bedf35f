package format

import (
	"math/big"
	"time"

	"github.com/blues/cfc/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// RawProject 合约返回的项目原始元组
// 字段顺序与 Project.getProjectDetails 的返回值一致
type RawProject struct {
	Creator         common.Address
	MinContribution *big.Int
	Deadline        *big.Int
	TargetAmount    *big.Int
	RaisedAmount    *big.Int
	Title           string
	Description     string
	Balance         *big.Int
}

// RawWithdrawRequest 合约返回的提款请求原始元组
type RawWithdrawRequest struct {
	Description string
	Amount      *big.Int
	VoteCount   *big.Int
	IsCompleted bool
	Recipient   common.Address
}

// Project 将链上原始元组规整为本地项目记录
// 对畸形输入（缺失字段、nil大数）直接panic，属于编程错误而非运行时条件
func Project(raw RawProject, address common.Address, now time.Time) model.Project {
	return model.Project{
		Address:         address,
		Title:           raw.Title,
		Description:     raw.Description,
		MinContribution: raw.MinContribution,
		TargetAmount:    raw.TargetAmount,
		RaisedAmount:    raw.RaisedAmount,
		Balance:         raw.Balance,
		Deadline:        raw.Deadline.Int64(),
		State:           ProjectStateOf(raw.RaisedAmount, raw.TargetAmount, raw.Deadline.Int64(), now),
		Creator:         raw.Creator,
	}
}

// ProjectStateOf 推导项目生命周期状态
// 判定顺序不可调换：先看是否达标，再看是否过期
// 在截止前达标的项目即使过了截止时间也是 Successful
func ProjectStateOf(raised, target *big.Int, deadline int64, now time.Time) model.ProjectState {
	if raised.Cmp(target) >= 0 {
		return model.StateSuccessful
	}
	if now.Unix() >= deadline {
		return model.StateExpired
	}
	return model.StateFundraising
}

// WithdrawRequest 将链上原始元组规整为本地提款请求记录
// 状态以合约上报为准，客户端不做完成状态推断
func WithdrawRequest(raw RawWithdrawRequest, id uint64) model.WithdrawRequest {
	status := model.RequestPending
	if raw.IsCompleted {
		status = model.RequestCompleted
	}
	return model.WithdrawRequest{
		RequestID:   id,
		Description: raw.Description,
		Amount:      raw.Amount,
		Recipient:   raw.Recipient,
		VoteCount:   raw.VoteCount.Uint64(),
		Status:      status,
	}
}
