package format

import (
	"math/big"
	"testing"
	"time"

	"github.com/blues/cfc/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

func TestProjectStateOf(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	past := now.Unix() - 3600
	future := now.Unix() + 3600

	tests := []struct {
		name     string
		raised   int64
		target   int64
		deadline int64
		want     model.ProjectState
	}{
		{"target met before deadline", 10, 10, future, model.StateSuccessful},
		{"target met after deadline", 10, 10, past, model.StateSuccessful},
		{"target exceeded after deadline", 15, 10, past, model.StateSuccessful},
		{"under target past deadline", 5, 10, past, model.StateExpired},
		{"under target at deadline", 5, 10, now.Unix(), model.StateExpired},
		{"under target before deadline", 5, 10, future, model.StateFundraising},
		{"nothing raised before deadline", 0, 10, future, model.StateFundraising},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectStateOf(big.NewInt(tt.raised), big.NewInt(tt.target), tt.deadline, now)
			if got != tt.want {
				t.Errorf("ProjectStateOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	address := common.HexToAddress("0x1000000000000000000000000000000000000001")
	creator := common.HexToAddress("0x2000000000000000000000000000000000000002")

	raw := RawProject{
		Creator:         creator,
		MinContribution: big.NewInt(100),
		Deadline:        big.NewInt(now.Unix() + 3600),
		TargetAmount:    big.NewInt(5000),
		RaisedAmount:    big.NewInt(1250),
		Title:           "Solar panels",
		Description:     "Panels for the community center",
		Balance:         big.NewInt(1250),
	}

	project := Project(raw, address, now)

	if project.Address != address {
		t.Errorf("Address = %v, want %v", project.Address, address)
	}
	if project.Creator != creator {
		t.Errorf("Creator = %v, want %v", project.Creator, creator)
	}
	if project.Title != "Solar panels" {
		t.Errorf("Title = %q", project.Title)
	}
	if project.State != model.StateFundraising {
		t.Errorf("State = %v, want %v", project.State, model.StateFundraising)
	}
	if project.Deadline != now.Unix()+3600 {
		t.Errorf("Deadline = %d", project.Deadline)
	}
	if project.Progress() != 25 {
		t.Errorf("Progress() = %d, want 25", project.Progress())
	}
}

func TestProjectProgressClamped(t *testing.T) {
	p := model.Project{
		RaisedAmount: big.NewInt(300),
		TargetAmount: big.NewInt(100),
	}
	if p.Progress() != 100 {
		t.Errorf("Progress() = %d, want 100", p.Progress())
	}

	p.TargetAmount = big.NewInt(0)
	if p.Progress() != 0 {
		t.Errorf("Progress() with zero target = %d, want 0", p.Progress())
	}
}

func TestWithdrawRequest(t *testing.T) {
	recipient := common.HexToAddress("0x3000000000000000000000000000000000000003")

	tests := []struct {
		name        string
		isCompleted bool
		want        model.RequestStatus
	}{
		{"pending request", false, model.RequestPending},
		{"completed request", true, model.RequestCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawWithdrawRequest{
				Description: "Buy materials",
				Amount:      big.NewInt(700),
				VoteCount:   big.NewInt(3),
				IsCompleted: tt.isCompleted,
				Recipient:   recipient,
			}
			request := WithdrawRequest(raw, 2)

			if request.RequestID != 2 {
				t.Errorf("RequestID = %d, want 2", request.RequestID)
			}
			if request.VoteCount != 3 {
				t.Errorf("VoteCount = %d, want 3", request.VoteCount)
			}
			if request.Status != tt.want {
				t.Errorf("Status = %v, want %v", request.Status, tt.want)
			}
			if request.Recipient != recipient {
				t.Errorf("Recipient = %v", request.Recipient)
			}
		})
	}
}
