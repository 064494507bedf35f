package logic

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/blues/cfc/internal/format"
	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/model"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	projAddr = common.HexToAddress("0x1110000000000000000000000000000000000001")
	alice    = common.HexToAddress("0xaaa0000000000000000000000000000000000001")
	bob      = common.HexToAddress("0xbbb0000000000000000000000000000000000002")
)

func storeWithHandle(t *testing.T, address common.Address) *store.Store {
	t.Helper()
	s := store.New()
	gen := s.Begin()
	handle := gateway.NewContractHandle(address, abi.ABI{}, nil)
	project := model.Project{Address: address, Title: "p", TargetAmount: big.NewInt(1), RaisedAmount: big.NewInt(0), MinContribution: big.NewInt(1), Balance: big.NewInt(0)}
	require.True(t, s.SetProjects(gen, []model.Project{project}, []*gateway.ContractHandle{handle}))
	return s
}

type fakeRequestReader struct {
	count      uint64
	countErr   error
	itemErr    map[uint64]error
	fetchedIDs []uint64
	bound      *gateway.ContractHandle
	bindErr    error
}

func (f *fakeRequestReader) BindProject(ctx context.Context, address common.Address) (*gateway.ContractHandle, error) {
	return f.bound, f.bindErr
}

func (f *fakeRequestReader) WithdrawRequestCount(ctx context.Context, handle *gateway.ContractHandle) (uint64, error) {
	return f.count, f.countErr
}

func (f *fakeRequestReader) WithdrawRequestAt(ctx context.Context, handle *gateway.ContractHandle, id uint64) (format.RawWithdrawRequest, error) {
	if err, ok := f.itemErr[id]; ok {
		return format.RawWithdrawRequest{}, err
	}
	f.fetchedIDs = append(f.fetchedIDs, id)
	return format.RawWithdrawRequest{
		Description: "r",
		Amount:      big.NewInt(int64(100 * (id + 1))),
		VoteCount:   big.NewInt(int64(id)),
		IsCompleted: false,
		Recipient:   alice,
	}, nil
}

func TestGetWithdrawRequestsFetchesAllByIndex(t *testing.T) {
	s := storeWithHandle(t, projAddr)
	fake := &fakeRequestReader{count: 3}
	l := NewRequestLogic(fake, s)

	requests, err := l.GetWithdrawRequests(context.Background(), projAddr)

	require.NoError(t, err)
	require.Len(t, requests, 3)
	// 序号从0开始按序拉取
	require.Equal(t, []uint64{0, 1, 2}, fake.fetchedIDs)
	require.Equal(t, uint64(0), requests[0].RequestID)
	require.Equal(t, big.NewInt(300), requests[2].Amount)
	require.Equal(t, model.RequestPending, requests[0].Status)
}

func TestGetWithdrawRequestsItemFailureFailsWhole(t *testing.T) {
	s := storeWithHandle(t, projAddr)
	fake := &fakeRequestReader{
		count:   3,
		itemErr: map[uint64]error{1: errors.New("revert")},
	}
	l := NewRequestLogic(fake, s)

	_, err := l.GetWithdrawRequests(context.Background(), projAddr)
	require.Error(t, err)
}

func TestGetWithdrawRequestsBindsUnknownProject(t *testing.T) {
	s := store.New()
	fake := &fakeRequestReader{
		count: 1,
		bound: gateway.NewContractHandle(projAddr, abi.ABI{}, nil),
	}
	l := NewRequestLogic(fake, s)

	requests, err := l.GetWithdrawRequests(context.Background(), projAddr)
	require.NoError(t, err)
	require.Len(t, requests, 1)
}

func TestGetWithdrawRequestsUnknownUndeployedProject(t *testing.T) {
	s := store.New()
	l := NewRequestLogic(&fakeRequestReader{bound: nil}, s)

	_, err := l.GetWithdrawRequests(context.Background(), projAddr)
	require.ErrorIs(t, err, gateway.ErrContractNotDeployed)
}

type fakeEventSource struct {
	funding       []model.ContributionEvent
	contributions []model.ContributionEvent
	bound         *gateway.ContractHandle
}

func (f *fakeEventSource) BindProject(ctx context.Context, address common.Address) (*gateway.ContractHandle, error) {
	return f.bound, nil
}

func (f *fakeEventSource) FundingEvents(ctx context.Context, handle *gateway.ContractHandle) ([]model.ContributionEvent, error) {
	return f.funding, nil
}

func (f *fakeEventSource) ContributionEvents(ctx context.Context, root *gateway.ContractHandle, account common.Address) ([]model.ContributionEvent, error) {
	return f.contributions, nil
}

func TestGetContributorsAggregatesEvents(t *testing.T) {
	s := storeWithHandle(t, projAddr)
	fake := &fakeEventSource{
		funding: []model.ContributionEvent{
			{Contributor: alice, Amount: big.NewInt(100)},
			{Contributor: bob, Amount: big.NewInt(50)},
			{Contributor: alice, Amount: big.NewInt(25)},
		},
	}
	l := NewContributionLogic(fake, s)

	totals, err := l.GetContributors(context.Background(), projAddr)

	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, alice, totals[0].Contributor)
	require.Equal(t, big.NewInt(125), totals[0].Amount)
}

func TestGetMyContributionsWithoutAccountReturnsEmpty(t *testing.T) {
	s := store.New()
	l := NewContributionLogic(&fakeEventSource{}, s)

	totals, err := l.GetMyContributions(context.Background())

	require.NoError(t, err)
	require.Empty(t, totals)
}

func TestGetMyContributionsAggregatesByProject(t *testing.T) {
	other := common.HexToAddress("0x2220000000000000000000000000000000000002")

	s := store.New()
	gen := s.Begin()
	s.SetAccount(gen, alice, true)
	s.SetRootContract(gen, gateway.NewContractHandle(common.Address{}, abi.ABI{}, nil))

	fake := &fakeEventSource{
		contributions: []model.ContributionEvent{
			{Contributor: alice, ProjectAddress: projAddr, Amount: big.NewInt(100)},
			{Contributor: alice, ProjectAddress: other, Amount: big.NewInt(40)},
			{Contributor: alice, ProjectAddress: projAddr, Amount: big.NewInt(60)},
		},
	}
	l := NewContributionLogic(fake, s)

	totals, err := l.GetMyContributions(context.Background())

	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, projAddr, totals[0].ProjectAddress)
	require.Equal(t, big.NewInt(160), totals[0].Amount)
}

func TestGetProjectMissingAddress(t *testing.T) {
	l := NewProjectLogic(store.New())
	_, err := l.GetProject(projAddr)
	require.Error(t, err)
}
