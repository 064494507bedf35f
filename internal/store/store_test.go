package store

import (
	"math/big"
	"testing"

	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/model"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	addr1 = common.HexToAddress("0x1110000000000000000000000000000000000001")
	addr2 = common.HexToAddress("0x2220000000000000000000000000000000000002")
)

func project(address common.Address, raised, balance int64) model.Project {
	return model.Project{
		Address:      address,
		RaisedAmount: big.NewInt(raised),
		Balance:      big.NewInt(balance),
	}
}

func handle(address common.Address) *gateway.ContractHandle {
	return gateway.NewContractHandle(address, abi.ABI{}, nil)
}

func TestSetAccount(t *testing.T) {
	s := New()
	gen := s.Begin()

	if !s.SetAccount(gen, addr1, true) {
		t.Fatal("SetAccount rejected current generation")
	}
	account, ok := s.Account()
	if !ok || account != addr1 {
		t.Errorf("Account() = %v/%v, want %v/true", account, ok, addr1)
	}

	if !s.SetAccount(gen, common.Address{}, false) {
		t.Fatal("clearing account rejected")
	}
	if _, ok := s.Account(); ok {
		t.Error("account still present after clear")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	s := New()

	gen1 := s.Begin()
	gen2 := s.Begin()

	// 新一轮引导先落盘
	if !s.SetProjects(gen2, []model.Project{project(addr2, 7, 7)}, []*gateway.ContractHandle{handle(addr2)}) {
		t.Fatal("current generation write rejected")
	}

	// 旧一轮迟到的写入必须被丢弃
	if s.SetProjects(gen1, []model.Project{project(addr1, 1, 1)}, []*gateway.ContractHandle{handle(addr1)}) {
		t.Fatal("stale generation write accepted")
	}
	if s.SetAccount(gen1, addr1, true) {
		t.Fatal("stale account write accepted")
	}

	projects := s.Projects()
	if len(projects) != 1 || projects[0].Address != addr2 {
		t.Errorf("projects = %v, want single entry for %v", projects, addr2)
	}
}

func TestCurrentDoesNotAdvanceGeneration(t *testing.T) {
	s := New()
	gen := s.Begin()

	// Current 只读取代号，拿它写入不作废进行中的一轮
	if got := s.Current(); got != gen {
		t.Fatalf("Current() = %v, want %v", got, gen)
	}
	if !s.SetProjects(s.Current(), []model.Project{project(addr1, 1, 1)}, []*gateway.ContractHandle{handle(addr1)}) {
		t.Fatal("write under current generation rejected")
	}
	if !s.SetAccount(gen, addr1, true) {
		t.Fatal("write from the round that issued the generation rejected")
	}
}

func TestAppendProject(t *testing.T) {
	s := New()
	gen := s.Begin()
	s.SetProjects(gen, []model.Project{project(addr1, 0, 0)}, []*gateway.ContractHandle{handle(addr1)})

	s.AppendProject(project(addr2, 0, 0), handle(addr2))

	if len(s.Projects()) != 2 {
		t.Fatalf("len = %d, want 2", len(s.Projects()))
	}
	if s.HandleByAddress(addr2) == nil {
		t.Error("handle for appended project not found")
	}
}

func TestRecordContribution(t *testing.T) {
	s := New()
	gen := s.Begin()
	s.SetProjects(gen,
		[]model.Project{project(addr1, 10, 10), project(addr2, 20, 20)},
		[]*gateway.ContractHandle{handle(addr1), handle(addr2)})

	s.RecordContribution(addr1, big.NewInt(5))

	p1, _ := s.ProjectByAddress(addr1)
	if p1.RaisedAmount.Int64() != 15 {
		t.Errorf("raised = %v, want 15", p1.RaisedAmount)
	}
	if p1.Balance.Int64() != 15 {
		t.Errorf("balance = %v, want 15", p1.Balance)
	}

	// 其他项目不受影响
	p2, _ := s.ProjectByAddress(addr2)
	if p2.RaisedAmount.Int64() != 20 {
		t.Errorf("untouched project raised = %v, want 20", p2.RaisedAmount)
	}
}

func TestDebitBalance(t *testing.T) {
	s := New()
	gen := s.Begin()
	s.SetProjects(gen,
		[]model.Project{project(addr1, 100, 100), project(addr2, 50, 50)},
		[]*gateway.ContractHandle{handle(addr1), handle(addr2)})

	s.DebitBalance(addr1, big.NewInt(30))

	p1, _ := s.ProjectByAddress(addr1)
	if p1.Balance.Int64() != 70 {
		t.Errorf("balance = %v, want 70", p1.Balance)
	}
	if p1.RaisedAmount.Int64() != 100 {
		t.Errorf("raised changed by debit: %v", p1.RaisedAmount)
	}
	p2, _ := s.ProjectByAddress(addr2)
	if p2.Balance.Int64() != 50 {
		t.Errorf("untouched project balance = %v, want 50", p2.Balance)
	}
}

func TestProjectsSnapshotIsolation(t *testing.T) {
	s := New()
	gen := s.Begin()
	s.SetProjects(gen, []model.Project{project(addr1, 10, 10)}, []*gateway.ContractHandle{handle(addr1)})

	snapshot := s.Projects()
	s.RecordContribution(addr1, big.NewInt(5))

	if snapshot[0].RaisedAmount.Int64() != 10 {
		t.Errorf("snapshot mutated by later write: %v", snapshot[0].RaisedAmount)
	}
}

func TestProjectByAddressMissing(t *testing.T) {
	s := New()
	if _, ok := s.ProjectByAddress(addr1); ok {
		t.Error("found project in empty store")
	}
	if s.HandleByAddress(addr1) != nil {
		t.Error("found handle in empty store")
	}
}
