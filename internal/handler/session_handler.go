package handler

import (
	"net/http"

	"github.com/blues/cfc/internal/bootstrap"
	"github.com/blues/cfc/internal/logger"
	"github.com/blues/cfc/internal/session"
	"github.com/blues/cfc/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	store     *store.Store
	sequencer *bootstrap.Sequencer
	session   *session.Store
}

func NewSessionHandler(s *store.Store, sequencer *bootstrap.Sequencer, sessionStore *session.Store) *SessionHandler {
	return &SessionHandler{
		store:     s,
		sequencer: sequencer,
		session:   sessionStore,
	}
}

// GetAccount 获取当前会话账户
func (h *SessionHandler) GetAccount(c *gin.Context) {
	account, ok := h.store.Account()
	if !ok {
		// 账户未连接时给出本地记录的最近地址，仅作提示
		lastAddress := ""
		if h.session != nil {
			if addr, found, err := h.session.LastAddress(); err == nil && found {
				lastAddress = addr
			}
		}
		SuccessResponse(c, http.StatusOK, "ok", gin.H{
			"connected":   false,
			"lastAddress": lastAddress,
		})
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{
		"connected": true,
		"address":   account.Hex(),
	})
}

// Refresh 账户或网络变更通知，从解析账户一步重新引导
func (h *SessionHandler) Refresh(c *gin.Context) {
	if err := h.sequencer.Rerun(c.Request.Context()); err != nil {
		ErrorResponse(c, statusFromError(err), err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "session refreshed", nil)
}

// Logout 显式登出：清空账户与项目列表，并清除本地会话记录
func (h *SessionHandler) Logout(c *gin.Context) {
	gen := h.store.Begin()
	h.store.SetAccount(gen, common.Address{}, false)
	h.store.SetProjects(gen, nil, nil)

	if h.session != nil {
		if err := h.session.Clear(); err != nil {
			logger.Warn("Failed to clear session store: %v", err)
		}
	}

	SuccessResponse(c, http.StatusOK, "logged out", nil)
}
