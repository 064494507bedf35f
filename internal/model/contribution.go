package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ContributionEvent 出资事件，不可变，是所有出资视图的唯一事实来源
type ContributionEvent struct {
	Contributor    common.Address `json:"contributor"`
	ProjectAddress common.Address `json:"projectAddress"`
	Amount         *big.Int       `json:"amount"`
	BlockNumber    uint64         `json:"blockNumber"`
	TxHash         common.Hash    `json:"txHash"`
	LogIndex       uint           `json:"logIndex"`
}
