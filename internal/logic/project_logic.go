package logic

import (
	"fmt"

	"github.com/blues/cfc/internal/model"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/common"
)

// ProjectLogic 项目视图业务逻辑，全部读自状态容器
type ProjectLogic struct {
	store *store.Store
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(s *store.Store) *ProjectLogic {
	return &ProjectLogic{store: s}
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects() []model.Project {
	return p.store.Projects()
}

// GetProject 按合约地址获取项目详情
func (p *ProjectLogic) GetProject(address common.Address) (*model.Project, error) {
	project, ok := p.store.ProjectByAddress(address)
	if !ok {
		return nil, fmt.Errorf("project %s not found", address.Hex())
	}
	return &project, nil
}
