package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Project 链上众筹项目在本地的镜像记录
type Project struct {
	// 合约地址，项目的唯一标识
	Address common.Address `json:"address"`

	// 基本信息
	Title       string `json:"title"`
	Description string `json:"description"`

	// 众筹信息（最小货币单位 wei）
	MinContribution *big.Int `json:"minContribution"`
	TargetAmount    *big.Int `json:"targetAmount"`
	RaisedAmount    *big.Int `json:"raisedAmount"`
	Balance         *big.Int `json:"balance"`

	// 截止时间（unix 秒）
	Deadline int64 `json:"deadline"`

	// 生命周期状态，由 format 包统一推导，绝不单独存储
	State ProjectState `json:"state"`

	// 创建者地址
	Creator common.Address `json:"creator"`
}

// ProjectState 项目生命周期状态
type ProjectState string

const (
	StateFundraising ProjectState = "Fundraising" // 募集中
	StateExpired     ProjectState = "Expired"     // 已过期
	StateSuccessful  ProjectState = "Successful"  // 已达标
)

// Progress 募集进度百分比，限制在 [0,100]
func (p *Project) Progress() int {
	if p.TargetAmount == nil || p.TargetAmount.Sign() <= 0 || p.RaisedAmount == nil {
		return 0
	}
	pct := new(big.Int).Mul(p.RaisedAmount, big.NewInt(100))
	pct.Quo(pct, p.TargetAmount)
	if pct.Sign() < 0 {
		return 0
	}
	if pct.Cmp(big.NewInt(100)) > 0 {
		return 100
	}
	return int(pct.Int64())
}
