package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfc/internal/gateway"
	"github.com/blues/cfc/internal/tx"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// statusFromError 错误分类到HTTP状态码的映射
func statusFromError(err error) int {
	switch {
	case errors.Is(err, tx.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrTxRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, gateway.ErrContractNotDeployed), errors.Is(err, gateway.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, gateway.ErrChainRead):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
