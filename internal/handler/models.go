package handler

import (
	"fmt"
	"math/big"

	"github.com/blues/cfc/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 请求模型，金额一律用十进制字符串表达wei值

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	MinimumContribution string `json:"minimumContribution" binding:"required"`
	Deadline            int64  `json:"deadline" binding:"required"` // unix 毫秒
	TargetContribution  string `json:"targetContribution" binding:"required"`
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CreateWithdrawRequestRequest 创建提款请求
type CreateWithdrawRequestRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Recipient   string `json:"recipient" binding:"required"`
}

// WithdrawAmountRequest 执行提款请求
type WithdrawAmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ProjectResponse 项目响应模型
type ProjectResponse struct {
	Address         string `json:"address"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	MinContribution string `json:"minContribution"`
	TargetAmount    string `json:"targetAmount"`
	RaisedAmount    string `json:"raisedAmount"`
	Balance         string `json:"balance"`
	Deadline        int64  `json:"deadline"`
	State           string `json:"state"`
	Creator         string `json:"creator"`
	Progress        int    `json:"progress"`
}

// WithdrawRequestResponse 提款请求响应模型
type WithdrawRequestResponse struct {
	RequestID   uint64 `json:"requestId"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Recipient   string `json:"recipient"`
	VoteCount   uint64 `json:"voteCount"`
	Status      string `json:"status"`
}

// toProjectResponse 转换项目响应模型
func toProjectResponse(p model.Project) ProjectResponse {
	return ProjectResponse{
		Address:         p.Address.Hex(),
		Title:           p.Title,
		Description:     p.Description,
		MinContribution: bigString(p.MinContribution),
		TargetAmount:    bigString(p.TargetAmount),
		RaisedAmount:    bigString(p.RaisedAmount),
		Balance:         bigString(p.Balance),
		Deadline:        p.Deadline,
		State:           string(p.State),
		Creator:         p.Creator.Hex(),
		Progress:        p.Progress(),
	}
}

// toWithdrawRequestResponse 转换提款请求响应模型
func toWithdrawRequestResponse(r model.WithdrawRequest) WithdrawRequestResponse {
	return WithdrawRequestResponse{
		RequestID:   r.RequestID,
		Description: r.Description,
		Amount:      bigString(r.Amount),
		Recipient:   r.Recipient.Hex(),
		VoteCount:   r.VoteCount,
		Status:      string(r.Status),
	}
}

// bigString 大数转十进制字符串
func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// parseAmount 解析十进制wei金额
func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	return amount, nil
}
