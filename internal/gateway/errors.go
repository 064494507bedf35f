package gateway

import "errors"

var (
	// ErrProviderUnavailable 没有可用的网络连接，引导流程致命错误，可通过重连恢复
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrContractNotDeployed 配置地址上没有合约代码，非致命，界面按空态处理
	ErrContractNotDeployed = errors.New("contract not deployed")

	// ErrChainRead RPC读取失败
	ErrChainRead = errors.New("chain read failed")

	// ErrTxRejected 用户拒绝签名或合约回滚，原始信息原样透出，绝不自动重试
	ErrTxRejected = errors.New("transaction rejected")
)
