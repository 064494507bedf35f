package gateway

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ContractHandle 单个已部署合约的绑定引用
type ContractHandle struct {
	address common.Address      // 合约地址
	abi     abi.ABI             // 合约ABI
	bound   *bind.BoundContract // 绑定实例
}

// NewContractHandle 创建合约绑定
func NewContractHandle(address common.Address, contractABI abi.ABI, backend bind.ContractBackend) *ContractHandle {
	return &ContractHandle{
		address: address,
		abi:     contractABI,
		bound:   bind.NewBoundContract(address, contractABI, backend, backend, backend),
	}
}

// Address 获取合约地址
func (h *ContractHandle) Address() common.Address {
	return h.address
}

// ABI 获取合约ABI
func (h *ContractHandle) ABI() abi.ABI {
	return h.abi
}

// Event 解码后的合约事件
type Event struct {
	Name        string
	Values      map[string]interface{}
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
}

// Address 按名称取地址型参数
func (e *Event) Address(name string) common.Address {
	if v, ok := e.Values[name].(common.Address); ok {
		return v
	}
	return common.Address{}
}

// BigInt 按名称取大数型参数
func (e *Event) BigInt(name string) *big.Int {
	if v, ok := e.Values[name].(*big.Int); ok {
		return v
	}
	return big.NewInt(0)
}

// String 按名称取字符串型参数
func (e *Event) String(name string) string {
	if v, ok := e.Values[name].(string); ok {
		return v
	}
	return ""
}

// Bool 按名称取布尔型参数
func (e *Event) Bool(name string) bool {
	if v, ok := e.Values[name].(bool); ok {
		return v
	}
	return false
}

// DecodeLog 解析事件日志
func (h *ContractHandle) DecodeLog(log types.Log) (*Event, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("log has no topics")
	}

	eventSignature := log.Topics[0]

	// 遍历ABI中的事件
	for name, event := range h.abi.Events {
		if event.ID == eventSignature {
			return h.decodeEvent(name, event, log)
		}
	}

	return nil, fmt.Errorf("unknown event signature: %s", eventSignature.Hex())
}

// decodeEvent 解析单个事件
func (h *ContractHandle) decodeEvent(name string, event abi.Event, log types.Log) (*Event, error) {
	result := &Event{
		Name:        name,
		Values:      make(map[string]interface{}),
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
	}

	// 解析索引参数，topic顺序即索引参数声明顺序
	topicIdx := 1
	for _, input := range event.Inputs {
		if !input.Indexed {
			continue
		}
		if topicIdx >= len(log.Topics) {
			return nil, fmt.Errorf("event %s: insufficient topics", name)
		}
		value, err := parseTopicValue(log.Topics[topicIdx], input.Type)
		if err != nil {
			return nil, fmt.Errorf("event %s: failed to parse indexed parameter %s: %w", name, input.Name, err)
		}
		result.Values[input.Name] = value
		topicIdx++
	}

	// 解析非索引参数
	nonIndexed := event.Inputs.NonIndexed()
	if len(nonIndexed) > 0 {
		values, err := nonIndexed.Unpack(log.Data)
		if err != nil {
			return nil, fmt.Errorf("event %s: failed to unpack data: %w", name, err)
		}
		for i, input := range nonIndexed {
			result.Values[input.Name] = values[i]
		}
	}

	return result, nil
}

// EventFromReceipt 从交易回执中提取指定事件
func (h *ContractHandle) EventFromReceipt(receipt *types.Receipt, eventName string) (*Event, error) {
	event, ok := h.abi.Events[eventName]
	if !ok {
		return nil, fmt.Errorf("event %s not defined in ABI", eventName)
	}

	for _, log := range receipt.Logs {
		if len(log.Topics) == 0 || log.Topics[0] != event.ID {
			continue
		}
		return h.decodeEvent(eventName, event, *log)
	}

	return nil, fmt.Errorf("event %s not found in receipt %s", eventName, receipt.TxHash.Hex())
}

// parseTopicValue 解析主题值
func parseTopicValue(topic common.Hash, t abi.Type) (interface{}, error) {
	switch t.T {
	case abi.UintTy, abi.IntTy:
		return new(big.Int).SetBytes(topic.Bytes()), nil
	case abi.AddressTy:
		return common.BytesToAddress(topic.Bytes()), nil
	case abi.BoolTy:
		return new(big.Int).SetBytes(topic.Bytes()).Sign() > 0, nil
	default:
		return topic, nil
	}
}
