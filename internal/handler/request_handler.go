package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/logic"
	"github.com/blues/cfc/internal/store"
	"github.com/blues/cfc/internal/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestLogic *logic.RequestLogic
	orchestrator *tx.Orchestrator
}

func NewRequestHandler(gw *gateway.Gateway, s *store.Store, orchestrator *tx.Orchestrator) *RequestHandler {
	return &RequestHandler{
		requestLogic: logic.NewRequestLogic(gw, s),
		orchestrator: orchestrator,
	}
}

// GetWithdrawRequests 获取项目的提款请求列表，每次都从合约读新值
func (h *RequestHandler) GetWithdrawRequests(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	requests, err := h.requestLogic.GetWithdrawRequests(c.Request.Context(), address)
	if err != nil {
		ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	result := make([]WithdrawRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, toWithdrawRequestResponse(r))
	}

	SuccessResponse(c, http.StatusOK, "ok", result)
}

// CreateWithdrawRequest 创建提款请求，阻塞到交易确认或失败
func (h *RequestHandler) CreateWithdrawRequest(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	var req CreateWithdrawRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Recipient) {
		ErrorResponse(c, http.StatusBadRequest, "invalid recipient address")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.orchestrator.CreateWithdrawRequest(c.Request.Context(), tx.CreateWithdrawRequestArgs{
		ProjectAddress: address,
		Description:    req.Description,
		Amount:         amount,
		Recipient:      common.HexToAddress(req.Recipient),
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

	SuccessResponse(c, http.StatusCreated, "withdraw request created", toWithdrawRequestResponse(*result.Request))
}

// VoteWithdrawRequest 为提款请求投票
func (h *RequestHandler) VoteWithdrawRequest(c *gin.Context) {
	address, requestID, ok := parseRequestParams(c)
	if !ok {
		return
	}

	results, err := h.orchestrator.VoteWithdrawRequest(c.Request.Context(), tx.VoteArgs{
		ProjectAddress: address,
		RequestID:      requestID,
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

	SuccessResponse(c, http.StatusOK, "vote recorded", nil)
}

// WithdrawAmount 执行提款
func (h *RequestHandler) WithdrawAmount(c *gin.Context) {
	address, requestID, ok := parseRequestParams(c)
	if !ok {
		return
	}

	var req WithdrawAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.orchestrator.WithdrawAmount(c.Request.Context(), tx.WithdrawArgs{
		ProjectAddress: address,
		RequestID:      requestID,
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

	SuccessResponse(c, http.StatusOK, "withdrawal executed", nil)
}

// parseRequestParams 解析路径里的合约地址和请求序号
func parseRequestParams(c *gin.Context) (common.Address, uint64, bool) {
	address, ok := parseAddressParam(c)
	if !ok {
		return common.Address{}, 0, false
	}
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request id")
		return common.Address{}, 0, false
	}
	return address, requestID, true
}
