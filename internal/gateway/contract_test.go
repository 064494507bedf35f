package gateway

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func parseABIs(t *testing.T) (abi.ABI, abi.ABI) {
	t.Helper()
	root, err := abi.JSON(strings.NewReader(crowdfundingABI))
	require.NoError(t, err)
	proj, err := abi.JSON(strings.NewReader(projectABI))
	require.NoError(t, err)
	return root, proj
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func TestDecodeProjectStartedLog(t *testing.T) {
	rootABI, _ := parseABIs(t)
	contractAddr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	projectAddr := common.HexToAddress("0x1110000000000000000000000000000000000001")
	creator := common.HexToAddress("0x2220000000000000000000000000000000000002")

	event := rootABI.Events["ProjectStarted"]
	data, err := event.Inputs.NonIndexed().Pack(
		big.NewInt(100),           // minContribution
		big.NewInt(1_800_000_000), // projectDeadline
		big.NewInt(5000),          // goalAmount
		big.NewInt(0),             // currentAmount
		"Solar panels",            // title
		"Community fundraiser",    // desc
		big.NewInt(0),             // balance
	)
	require.NoError(t, err)

	handle := NewContractHandle(contractAddr, rootABI, nil)
	decoded, err := handle.DecodeLog(types.Log{
		Address:     contractAddr,
		Topics:      []common.Hash{event.ID, addressTopic(projectAddr), addressTopic(creator)},
		Data:        data,
		BlockNumber: 12,
		TxHash:      common.HexToHash("0xabc1"),
		Index:       3,
	})
	require.NoError(t, err)

	require.Equal(t, "ProjectStarted", decoded.Name)
	require.Equal(t, projectAddr, decoded.Address("projectContractAddress"))
	require.Equal(t, creator, decoded.Address("creator"))
	require.Equal(t, int64(100), decoded.BigInt("minContribution").Int64())
	require.Equal(t, int64(5000), decoded.BigInt("goalAmount").Int64())
	require.Equal(t, "Solar panels", decoded.String("title"))
	require.Equal(t, "Community fundraiser", decoded.String("desc"))
	require.Equal(t, uint64(12), decoded.BlockNumber)
	require.Equal(t, uint(3), decoded.LogIndex)
}

func TestDecodeFundingReceivedLog(t *testing.T) {
	_, projABI := parseABIs(t)
	contractAddr := common.HexToAddress("0x1110000000000000000000000000000000000001")
	contributor := common.HexToAddress("0x3330000000000000000000000000000000000003")

	event := projABI.Events["FundingReceived"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(250), big.NewInt(1250))
	require.NoError(t, err)

	handle := NewContractHandle(contractAddr, projABI, nil)
	decoded, err := handle.DecodeLog(types.Log{
		Address: contractAddr,
		Topics:  []common.Hash{event.ID, addressTopic(contributor)},
		Data:    data,
	})
	require.NoError(t, err)

	require.Equal(t, contributor, decoded.Address("contributor"))
	require.Equal(t, int64(250), decoded.BigInt("amount").Int64())
	require.Equal(t, int64(1250), decoded.BigInt("currentTotal").Int64())
}

func TestDecodeLogsDropsDuplicateDeliveries(t *testing.T) {
	_, projABI := parseABIs(t)
	contractAddr := common.HexToAddress("0x1110000000000000000000000000000000000001")
	contributor := common.HexToAddress("0x3330000000000000000000000000000000000003")

	event := projABI.Events["FundingReceived"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(250), big.NewInt(1250))
	require.NoError(t, err)

	logAt := func(txHash common.Hash, index uint) types.Log {
		return types.Log{
			Address: contractAddr,
			Topics:  []common.Hash{event.ID, addressTopic(contributor)},
			Data:    data,
			TxHash:  txHash,
			Index:   index,
		}
	}

	first := logAt(common.HexToHash("0xabc1"), 0)
	second := logAt(common.HexToHash("0xabc1"), 1)
	other := logAt(common.HexToHash("0xabc2"), 0)

	handle := NewContractHandle(contractAddr, projABI, nil)

	// 同一条日志被节点重复投递两次，只保留一条
	events := decodeLogs(handle, "FundingReceived", []types.Log{first, first, second, other})
	require.Len(t, events, 3)
	require.Equal(t, uint(0), events[0].LogIndex)
	require.Equal(t, uint(1), events[1].LogIndex)

	// 解码失败的日志跳过，不影响其余日志
	bad := types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}, TxHash: common.HexToHash("0xabc3")}
	events = decodeLogs(handle, "FundingReceived", []types.Log{first, bad, other})
	require.Len(t, events, 2)
}

func TestDecodeLogUnknownSignature(t *testing.T) {
	rootABI, _ := parseABIs(t)
	handle := NewContractHandle(common.Address{}, rootABI, nil)

	_, err := handle.DecodeLog(types.Log{
		Topics: []common.Hash{common.HexToHash("0xdead")},
	})
	require.Error(t, err)
}

func TestEventFromReceipt(t *testing.T) {
	_, projABI := parseABIs(t)
	contractAddr := common.HexToAddress("0x1110000000000000000000000000000000000001")
	recipient := common.HexToAddress("0x4440000000000000000000000000000000000004")

	event := projABI.Events["WithdrawRequestCreated"]
	data, err := event.Inputs.NonIndexed().Pack(
		"Buy materials", big.NewInt(700), big.NewInt(0), false, recipient)
	require.NoError(t, err)

	requestID := common.BigToHash(big.NewInt(2))
	receipt := &types.Receipt{
		TxHash: common.HexToHash("0xabc2"),
		Logs: []*types.Log{
			{Topics: []common.Hash{common.HexToHash("0xother")}},
			{Topics: []common.Hash{event.ID, requestID}, Data: data},
		},
	}

	handle := NewContractHandle(contractAddr, projABI, nil)
	decoded, err := handle.EventFromReceipt(receipt, "WithdrawRequestCreated")
	require.NoError(t, err)

	require.Equal(t, int64(2), decoded.BigInt("requestId").Int64())
	require.Equal(t, "Buy materials", decoded.String("description"))
	require.Equal(t, int64(700), decoded.BigInt("amount").Int64())
	require.False(t, decoded.Bool("isCompleted"))
	require.Equal(t, recipient, decoded.Address("recipient"))
}

func TestEventFromReceiptMissingEvent(t *testing.T) {
	_, projABI := parseABIs(t)
	handle := NewContractHandle(common.Address{}, projABI, nil)

	receipt := &types.Receipt{TxHash: common.HexToHash("0xabc3")}
	_, err := handle.EventFromReceipt(receipt, "WithdrawRequestCreated")
	require.Error(t, err)

	_, err = handle.EventFromReceipt(receipt, "NoSuchEvent")
	require.Error(t, err)
}
