package handler

import (
	"net/http"

	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logic"
	"github.com/blues/cfc/internal/store"
	"github.com/blues/cfc/internal/tx"
	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
	orchestrator      *tx.Orchestrator
}

func NewContributionHandler(gw *gateway.Gateway, s *store.Store, orchestrator *tx.Orchestrator) *ContributionHandler {
	return &ContributionHandler{
		contributionLogic: logic.NewContributionLogic(gw, s),
		orchestrator:      orchestrator,
	}
}

// Contribute 向项目出资，阻塞到交易确认或失败
func (h *ContributionHandler) Contribute(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.orchestrator.Contribute(c.Request.Context(), tx.ContributeArgs{
		ProjectAddress: address,
		Amount:         amount,
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

	// 出资方已持有乐观的本地金额，确认结果不附带数据
	SuccessResponse(c, http.StatusOK, "contribution confirmed", nil)
}

// GetContributors 获取单个项目的出资人汇总
func (h *ContributionHandler) GetContributors(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	contributors, err := h.contributionLogic.GetContributors(c.Request.Context(), address)
	if err != nil {
		ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", contributors)
}

// GetMyContributions 获取当前账户的出资汇总
func (h *ContributionHandler) GetMyContributions(c *gin.Context) {
	contributions, err := h.contributionLogic.GetMyContributions(c.Request.Context())
	if err != nil {
		ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", contributions)
}
