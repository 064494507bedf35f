package handler

import (
	"net/http"

	"github.com/blues/cfc/internal/logic"
	"github.com/blues/cfc/internal/store"
	"github.com/blues/cfc/internal/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	orchestrator *tx.Orchestrator
}

func NewProjectHandler(s *store.Store, orchestrator *tx.Orchestrator) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(s),
		orchestrator: orchestrator,
	}
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects := h.projectLogic.GetProjects()

	result := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, toProjectResponse(p))
	}

	SuccessResponse(c, http.StatusOK, "ok", result)
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(address)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", toProjectResponse(*project))
}

// CreateProject 创建项目，阻塞到交易确认或失败
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	minContribution, err := parseAmount(req.MinimumContribution)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	target, err := parseAmount(req.TargetContribution)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.orchestrator.CreateProject(c.Request.Context(), tx.CreateProjectArgs{
		MinContribution: minContribution,
		DeadlineMillis:  req.Deadline,
		TargetAmount:    target,
		Title:           req.Title,
		Description:     req.Description,
	})
	if err != nil {
		ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	result := <-results
	if result.Err != nil {
		ErrorResponse(c, statusFromError(result.Err), result.Err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "project created", toProjectResponse(*result.Project))
}

// parseAddressParam 解析路径里的合约地址参数
func parseAddressParam(c *gin.Context) (common.Address, bool) {
	raw := c.Param("address")
	if !common.IsHexAddress(raw) {
		ErrorResponse(c, http.StatusBadRequest, "invalid contract address")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}
