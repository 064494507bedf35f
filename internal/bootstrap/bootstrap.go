package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/blues/cfc/internal/format"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logger"
	"github.com/blues/cfc/internal/model"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/panjf2000/ants/v2"
)

// Chain 引导流程依赖的网关操作面
type Chain interface {
	Connect(ctx context.Context) (*ethclient.Client, error)
	ResolveAccount() (common.Address, bool)
	BindRoot(ctx context.Context) (*gateway.ContractHandle, error)
	BindProject(ctx context.Context, address common.Address) (*gateway.ContractHandle, error)
	ProjectAddresses(ctx context.Context, root *gateway.ContractHandle) ([]common.Address, error)
	ProjectDetails(ctx context.Context, handle *gateway.ContractHandle) (format.RawProject, error)
}

// SessionStore 本地会话存储操作面
type SessionStore interface {
	SaveAddress(address string) error
}

// Sequencer 引导排序器
// 会话启动时执行一次完整序列，账户或网络变更时从解析账户一步重新执行
// 每轮引导持有独立代号，被后续轮次取代的写入由状态容器丢弃
type Sequencer struct {
	chain    Chain
	store    *store.Store
	session  SessionStore // 可为nil
	poolSize int
}

// New 创建引导排序器
func New(chain Chain, s *store.Store, session SessionStore, poolSize int) *Sequencer {
	if poolSize <= 0 {
		poolSize = 8
	}
	return &Sequencer{chain: chain, store: s, session: session, poolSize: poolSize}
}

// Run 执行完整引导序列：连接节点 → 解析账户 → 绑定根合约 → 枚举项目
func (s *Sequencer) Run(ctx context.Context) error {
	gen := s.store.Begin()

	provider, err := s.chain.Connect(ctx)
	if err != nil {
		return err
	}
	s.store.SetProvider(gen, provider)

	return s.resume(ctx, gen)
}

// Rerun 从解析账户一步重新引导，接到账户或网络变更通知时调用
func (s *Sequencer) Rerun(ctx context.Context) error {
	gen := s.store.Begin()
	return s.resume(ctx, gen)
}

// resume 执行解析账户及其后的步骤
func (s *Sequencer) resume(ctx context.Context, gen store.Generation) error {
	// 解析账户，没有账户是正常的未登录终态而非错误
	account, ok := s.chain.ResolveAccount()
	if !ok {
		logger.Info("No authorized account, leaving project list empty")
		s.store.SetAccount(gen, common.Address{}, false)
		s.store.SetProjects(gen, nil, nil)
		return nil
	}
	s.store.SetAccount(gen, account, ok)
	if s.session != nil {
		if err := s.session.SaveAddress(account.Hex()); err != nil {
			logger.Warn("Failed to persist session address: %v", err)
		}
	}

	// 绑定根合约，地址上没有代码说明尚未部署，按空态处理
	root, err := s.chain.BindRoot(ctx)
	if err != nil {
		return err
	}
	if root == nil {
		logger.Warn("No crowdfunding contract deployed, make sure to deploy contracts first")
		s.store.SetRootContract(gen, nil)
		s.store.SetProjects(gen, nil, nil)
		return nil
	}
	s.store.SetRootContract(gen, root)

	return s.enumerate(ctx, gen, root)
}

// Refresh 以当前根合约重新枚举项目，定时刷新任务调用
// 刷新沿用当前代号而不开启新一轮：刷新只更新项目列表，
// 不得取代正在进行的重引导及其账户写入
func (s *Sequencer) Refresh(ctx context.Context) error {
	root := s.store.RootContract()
	if root == nil {
		return nil
	}
	gen := s.store.Current()
	return s.enumerate(ctx, gen, root)
}

// enumerate 枚举全部项目并整体替换状态容器中的列表
// 对每个项目的详情拉取并发展开，单个项目失败只影响自己
func (s *Sequencer) enumerate(ctx context.Context, gen store.Generation, root *gateway.ContractHandle) error {
	addresses, err := s.chain.ProjectAddresses(ctx, root)
	if err != nil {
		return err
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		projects []model.Project
		handles  []*gateway.ContractHandle
	)

	now := time.Now()
	for _, address := range addresses {
		address := address
		wg.Add(1)
		task := func() {
			defer wg.Done()

			handle, err := s.chain.BindProject(ctx, address)
			if err != nil || handle == nil {
				logger.Error("Failed to bind project contract %s: %v", address.Hex(), err)
				return
			}

			raw, err := s.chain.ProjectDetails(ctx, handle)
			if err != nil {
				logger.Error("Failed to load project details for %s: %v", address.Hex(), err)
				return
			}

			project := format.Project(raw, address, now)
			mu.Lock()
			projects = append(projects, project)
			handles = append(handles, handle)
			mu.Unlock()
		}
		if err := pool.Submit(task); err != nil {
			// 池不可用时退化为同步执行
			task()
		}
	}
	wg.Wait()

	if !s.store.SetProjects(gen, projects, handles) {
		logger.Info("Discarding enumeration results from superseded bootstrap run")
		return nil
	}
	logger.Info("Loaded %d of %d projects", len(projects), len(addresses))
	return nil
}
