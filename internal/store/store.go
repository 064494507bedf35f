package store

import (
	"math/big"
	"sync"

	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Generation 引导运行代号，单调递增
// 账户或网络切换触发重新引导时，旧一轮迟到的写入按代号丢弃
type Generation uint64

// Store 进程级状态容器，状态只能通过这里的窄更新操作变更
type Store struct {
	mu sync.RWMutex

	latest Generation // 最近一次 Begin 发出的代号

	provider   *ethclient.Client
	account    common.Address
	hasAccount bool
	root       *gateway.ContractHandle

	projects []model.Project
	handles  []*gateway.ContractHandle
}

// New 创建状态容器
func New() *Store {
	return &Store{}
}

// Begin 开启一轮引导，返回本轮代号
func (s *Store) Begin() Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Current 获取最近一轮引导的代号，不开启新一轮
func (s *Store) Current() Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// stale 判断代号是否已被后续引导取代，调用方需持有锁
func (s *Store) stale(gen Generation) bool {
	return gen < s.latest
}

// SetProvider 替换节点连接
func (s *Store) SetProvider(gen Generation, provider *ethclient.Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(gen) {
		return false
	}
	s.provider = provider
	return true
}

// SetAccount 替换当前账户，ok为false表示清除账户
func (s *Store) SetAccount(gen Generation, account common.Address, ok bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(gen) {
		return false
	}
	s.account = account
	s.hasAccount = ok
	return true
}

// SetRootContract 替换根合约绑定
func (s *Store) SetRootContract(gen Generation, root *gateway.ContractHandle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(gen) {
		return false
	}
	s.root = root
	return true
}

// SetProjects 整体替换项目列表和对应的合约绑定列表，枚举完成后使用
func (s *Store) SetProjects(gen Generation, projects []model.Project, handles []*gateway.ContractHandle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(gen) {
		return false
	}
	s.projects = projects
	s.handles = handles
	return true
}

// AppendProject 追加新建的项目和绑定，避免创建确认后整体重拉
func (s *Store) AppendProject(project model.Project, handle *gateway.ContractHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, project)
	s.handles = append(s.handles, handle)
}

// RecordContribution 在指定项目上累加一笔出资
func (s *Store) RecordContribution(address common.Address, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].Address != address {
			continue
		}
		// 整体替换记录里的金额，读取方永远看不到写了一半的状态
		s.projects[i].RaisedAmount = new(big.Int).Add(s.projects[i].RaisedAmount, amount)
		s.projects[i].Balance = new(big.Int).Add(s.projects[i].Balance, amount)
		return
	}
}

// DebitBalance 在指定项目上扣减一笔提款
func (s *Store) DebitBalance(address common.Address, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].Address != address {
			continue
		}
		s.projects[i].Balance = new(big.Int).Sub(s.projects[i].Balance, amount)
		return
	}
}

// Provider 获取当前节点连接
func (s *Store) Provider() *ethclient.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Account 获取当前账户
func (s *Store) Account() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.hasAccount
}

// RootContract 获取根合约绑定
func (s *Store) RootContract() *gateway.ContractHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Projects 获取项目列表快照
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]model.Project, len(s.projects))
	copy(snapshot, s.projects)
	return snapshot
}

// ProjectByAddress 按地址查找项目
func (s *Store) ProjectByAddress(address common.Address) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.Address == address {
			return p, true
		}
	}
	return model.Project{}, false
}

// HandleByAddress 按地址查找项目合约绑定
func (s *Store) HandleByAddress(address common.Address) *gateway.ContractHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.handles {
		if h != nil && h.Address() == address {
			return h
		}
	}
	return nil
}
