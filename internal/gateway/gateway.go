package gateway

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/cfc/internal/config"
	"github.com/blues/cfc/internal/format"
	"github.com/blues/cfc/internal/logger"
	"github.com/blues/cfc/internal/model"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Gateway 链网关，系统中唯一与网络节点和合约交互的组件
type Gateway struct {
	cfg        config.ChainConfig
	client     *ethclient.Client
	chainID    *big.Int
	privateKey *ecdsa.PrivateKey // 为空表示未授权访问
	rootAddr   common.Address
	rootABI    abi.ABI
	projABI    abi.ABI
}

// New 创建链网关
func New(cfg config.ChainConfig) (*Gateway, error) {
	rootABI, err := abi.JSON(strings.NewReader(crowdfundingABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse crowdfunding ABI: %w", err)
	}

	projABI, err := abi.JSON(strings.NewReader(projectABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse project ABI: %w", err)
	}

	g := &Gateway{
		cfg:      cfg,
		rootAddr: common.HexToAddress(cfg.ContractAddr),
		rootABI:  rootABI,
		projABI:  projABI,
	}

	// 解析私钥，未配置私钥等同于用户未授权
	if cfg.PrivateKey != "" {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		g.privateKey = privateKey
	}

	return g, nil
}

// Connect 建立节点连接，优先使用配置的节点，失败后回退到本地节点
func (g *Gateway) Connect(ctx context.Context) (*ethclient.Client, error) {
	urls := make([]string, 0, 2)
	if g.cfg.RpcUrl != "" {
		urls = append(urls, g.cfg.RpcUrl)
	}
	if g.cfg.FallbackRpcUrl != "" {
		urls = append(urls, g.cfg.FallbackRpcUrl)
	}

	var lastErr error
	for _, url := range urls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			lastErr = err
			logger.Warn("Failed to dial %s: %v", url, err)
			continue
		}

		// 拨号是惰性的，用ChainID探测连接是否真正可用
		chainID, err := client.ChainID(ctx)
		if err != nil {
			lastErr = err
			logger.Warn("Failed to reach %s: %v", url, err)
			client.Close()
			continue
		}

		logger.Info("Connected to %s (chain id: %d)", url, chainID)
		g.client = client
		g.chainID = chainID
		return client, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}

// ResolveAccount 解析当前授权账户
// 未配置私钥时返回空地址和false，这是正常的未登录状态而非错误
func (g *Gateway) ResolveAccount() (common.Address, bool) {
	if g.privateKey == nil {
		return common.Address{}, false
	}
	return crypto.PubkeyToAddress(g.privateKey.PublicKey), true
}

// ChainID 获取当前链ID
func (g *Gateway) ChainID(ctx context.Context) (*big.Int, error) {
	if g.client == nil {
		return nil, ErrProviderUnavailable
	}
	chainID, err := g.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChainRead, err)
	}
	return chainID, nil
}

// RootABI 获取根合约ABI
func (g *Gateway) RootABI() abi.ABI {
	return g.rootABI
}

// ProjectABI 获取项目合约ABI
func (g *Gateway) ProjectABI() abi.ABI {
	return g.projABI
}

// BindContract 绑定指定地址的合约
// 地址上没有合约代码时返回 (nil, nil)，表示"尚未部署"而非连接故障
func (g *Gateway) BindContract(ctx context.Context, address common.Address, contractABI abi.ABI) (*ContractHandle, error) {
	if g.client == nil {
		return nil, ErrProviderUnavailable
	}

	code, err := g.client.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check code at %s: %v", ErrChainRead, address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, nil
	}

	return NewContractHandle(address, contractABI, g.client), nil
}

// BindRoot 绑定众筹根合约
func (g *Gateway) BindRoot(ctx context.Context) (*ContractHandle, error) {
	return g.BindContract(ctx, g.rootAddr, g.rootABI)
}

// BindProject 绑定单个项目合约
func (g *Gateway) BindProject(ctx context.Context, address common.Address) (*ContractHandle, error) {
	return g.BindContract(ctx, address, g.projABI)
}

// Call 只读调用，无副作用
func (g *Gateway) Call(ctx context.Context, handle *ContractHandle, result *[]interface{}, method string, args ...interface{}) error {
	if err := handle.bound.Call(&bind.CallOpts{Context: ctx}, result, method, args...); err != nil {
		return fmt.Errorf("%w: %s on %s: %v", ErrChainRead, method, handle.address.Hex(), err)
	}
	return nil
}

// Send 提交状态变更交易，广播后立即返回，不等待上链
// value 为随交易发送的金额，可为nil
func (g *Gateway) Send(ctx context.Context, handle *ContractHandle, value *big.Int, method string, args ...interface{}) (*types.Transaction, error) {
	if g.privateKey == nil {
		return nil, fmt.Errorf("%w: no account available for signing", ErrTxRejected)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(g.privateKey, g.chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTxRejected, err)
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := handle.bound.Transact(opts, method, args...)
	if err != nil {
		// 回滚原因原样透出
		return nil, fmt.Errorf("%w: %v", ErrTxRejected, err)
	}

	logger.Info("Submitted transaction %s (%s on %s)", tx.Hash().Hex(), method, handle.address.Hex())
	return tx, nil
}

// WaitReceipt 等待交易上链并返回回执，回执状态为失败时报错
func (g *Gateway) WaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for %s: %v", ErrChainRead, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s reverted", ErrTxRejected, tx.Hash().Hex())
	}
	return receipt, nil
}

// QueryEvents 查询历史事件日志，按区块号和日志序号升序返回
// filter 为可选的首个索引参数过滤值；重复投递的日志在此处去重
func (g *Gateway) QueryEvents(ctx context.Context, handle *ContractHandle, eventName string, fromBlock, toBlock *big.Int, filter ...common.Hash) ([]*Event, error) {
	if g.client == nil {
		return nil, ErrProviderUnavailable
	}

	event, ok := handle.abi.Events[eventName]
	if !ok {
		return nil, fmt.Errorf("event %s not defined in ABI", eventName)
	}

	topics := [][]common.Hash{{event.ID}}
	if len(filter) > 0 {
		topics = append(topics, filter)
	}

	query := ethereum.FilterQuery{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: []common.Address{handle.address},
		Topics:    topics,
	}

	logs, err := g.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s events: %v", ErrChainRead, eventName, err)
	}

	return decodeLogs(handle, eventName, logs), nil
}

// decodeLogs 解码日志并按 (交易哈希, 日志序号) 去重
// 节点重复投递的日志只保留一条，解码失败的日志跳过
func decodeLogs(handle *ContractHandle, eventName string, logs []types.Log) []*Event {
	seen := make(map[string]bool, len(logs))
	events := make([]*Event, 0, len(logs))
	for _, log := range logs {
		key := fmt.Sprintf("%s-%d", log.TxHash.Hex(), log.Index)
		if seen[key] {
			continue
		}
		seen[key] = true

		decoded, err := handle.DecodeLog(log)
		if err != nil {
			logger.Warn("Failed to decode %s log in tx %s: %v", eventName, log.TxHash.Hex(), err)
			continue
		}
		events = append(events, decoded)
	}
	return events
}

// ProjectAddresses 枚举根合约登记的所有项目地址
func (g *Gateway) ProjectAddresses(ctx context.Context, root *ContractHandle) ([]common.Address, error) {
	var out []interface{}
	if err := g.Call(ctx, root, &out, "returnAllProjects"); err != nil {
		return nil, err
	}
	addresses, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected returnAllProjects result type", ErrChainRead)
	}
	return addresses, nil
}

// ProjectDetails 读取单个项目的详情元组
func (g *Gateway) ProjectDetails(ctx context.Context, handle *ContractHandle) (format.RawProject, error) {
	var out []interface{}
	if err := g.Call(ctx, handle, &out, "getProjectDetails"); err != nil {
		return format.RawProject{}, err
	}
	if len(out) != 8 {
		return format.RawProject{}, fmt.Errorf("%w: unexpected getProjectDetails arity %d", ErrChainRead, len(out))
	}
	return format.RawProject{
		Creator:         out[0].(common.Address),
		MinContribution: out[1].(*big.Int),
		Deadline:        out[2].(*big.Int),
		TargetAmount:    out[3].(*big.Int),
		RaisedAmount:    out[4].(*big.Int),
		Title:           out[5].(string),
		Description:     out[6].(string),
		Balance:         out[7].(*big.Int),
	}, nil
}

// WithdrawRequestCount 读取项目的提款请求数量
func (g *Gateway) WithdrawRequestCount(ctx context.Context, handle *ContractHandle) (uint64, error) {
	var out []interface{}
	if err := g.Call(ctx, handle, &out, "numOfWithdrawRequests"); err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

// WithdrawRequestAt 按序号读取单个提款请求
func (g *Gateway) WithdrawRequestAt(ctx context.Context, handle *ContractHandle, id uint64) (format.RawWithdrawRequest, error) {
	var out []interface{}
	if err := g.Call(ctx, handle, &out, "withdrawRequests", new(big.Int).SetUint64(id)); err != nil {
		return format.RawWithdrawRequest{}, err
	}
	if len(out) != 5 {
		return format.RawWithdrawRequest{}, fmt.Errorf("%w: unexpected withdrawRequests arity %d", ErrChainRead, len(out))
	}
	return format.RawWithdrawRequest{
		Description: out[0].(string),
		Amount:      out[1].(*big.Int),
		VoteCount:   out[2].(*big.Int),
		IsCompleted: out[3].(bool),
		Recipient:   out[4].(common.Address),
	}, nil
}

// FundingEvents 查询单个项目的全部出资日志
func (g *Gateway) FundingEvents(ctx context.Context, handle *ContractHandle) ([]model.ContributionEvent, error) {
	events, err := g.QueryEvents(ctx, handle, "FundingReceived", new(big.Int).SetUint64(g.cfg.StartBlock), nil)
	if err != nil {
		return nil, err
	}

	result := make([]model.ContributionEvent, 0, len(events))
	for _, ev := range events {
		result = append(result, model.ContributionEvent{
			Contributor:    ev.Address("contributor"),
			ProjectAddress: handle.Address(),
			Amount:         ev.BigInt("amount"),
			BlockNumber:    ev.BlockNumber,
			TxHash:         ev.TxHash,
			LogIndex:       ev.LogIndex,
		})
	}
	return result, nil
}

// ContributionEvents 查询单个账户在根合约上的跨项目出资日志
func (g *Gateway) ContributionEvents(ctx context.Context, root *ContractHandle, account common.Address) ([]model.ContributionEvent, error) {
	events, err := g.QueryEvents(ctx, root, "ContributionReceived",
		new(big.Int).SetUint64(g.cfg.StartBlock), nil, common.BytesToHash(account.Bytes()))
	if err != nil {
		return nil, err
	}

	result := make([]model.ContributionEvent, 0, len(events))
	for _, ev := range events {
		result = append(result, model.ContributionEvent{
			Contributor:    ev.Address("contributor"),
			ProjectAddress: ev.Address("projectAddress"),
			Amount:         ev.BigInt("contributedAmount"),
			BlockNumber:    ev.BlockNumber,
			TxHash:         ev.TxHash,
			LogIndex:       ev.LogIndex,
		})
	}
	return result, nil
}
