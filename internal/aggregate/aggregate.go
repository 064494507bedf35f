package aggregate

import (
	"math/big"

	"github.com/blues/cfc/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// ContributorTotal 单个项目内某出资人的累计出资
type ContributorTotal struct {
	Contributor common.Address `json:"contributor"`
	Amount      *big.Int       `json:"amount"`
}

// ProjectTotal 某出资人在单个项目的累计出资
type ProjectTotal struct {
	ProjectAddress common.Address `json:"projectAddress"`
	Amount         *big.Int       `json:"amount"`
}

// ContributorsByProject 把单个项目的出资日志按出资人归并求和
// 每个出资人输出一行，顺序为首次出现顺序
// 输入由网关层去重，重放同一事件序列得到相同结果
func ContributorsByProject(events []model.ContributionEvent) []ContributorTotal {
	totals := make(map[common.Address]*big.Int)
	order := make([]common.Address, 0, len(events))

	for _, ev := range events {
		if sum, ok := totals[ev.Contributor]; ok {
			totals[ev.Contributor] = new(big.Int).Add(sum, ev.Amount)
			continue
		}
		totals[ev.Contributor] = new(big.Int).Set(ev.Amount)
		order = append(order, ev.Contributor)
	}

	result := make([]ContributorTotal, 0, len(order))
	for _, addr := range order {
		result = append(result, ContributorTotal{Contributor: addr, Amount: totals[addr]})
	}
	return result
}

// ContributionsByContributor 把单个账户的跨项目出资日志按项目归并求和
// 每个出过资的项目输出一行，顺序为首次出现顺序
func ContributionsByContributor(events []model.ContributionEvent) []ProjectTotal {
	totals := make(map[common.Address]*big.Int)
	order := make([]common.Address, 0, len(events))

	for _, ev := range events {
		if sum, ok := totals[ev.ProjectAddress]; ok {
			totals[ev.ProjectAddress] = new(big.Int).Add(sum, ev.Amount)
			continue
		}
		totals[ev.ProjectAddress] = new(big.Int).Set(ev.Amount)
		order = append(order, ev.ProjectAddress)
	}

	result := make([]ProjectTotal, 0, len(order))
	for _, addr := range order {
		result = append(result, ProjectTotal{ProjectAddress: addr, Amount: totals[addr]})
	}
	return result
}
