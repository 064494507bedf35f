package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// WithdrawRequest 提款请求，项目内按序号唯一
type WithdrawRequest struct {
	RequestID   uint64         `json:"requestId"`
	Description string         `json:"description"`
	Amount      *big.Int       `json:"amount"`
	Recipient   common.Address `json:"recipient"`
	VoteCount   uint64         `json:"voteCount"`
	Status      RequestStatus  `json:"status"`
}

// RequestStatus 提款请求状态，只能从 Pending 单向转换到 Completed
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"   // 待执行
	RequestCompleted RequestStatus = "Completed" // 已完成（终态）
)
