package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/service/handoff"
)

// HandoffHandler exposes the cross-page payload stash. Entries are redeemed
// exactly once; a second read 404s.
type HandoffHandler struct {
	svc    *handoff.Service
	logger *zap.Logger
}

// NewHandoffHandler constructs the HTTP handler adapter.
func NewHandoffHandler(svc *handoff.Service, logger *zap.Logger) *HandoffHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HandoffHandler{svc: svc, logger: logger}
}

// Stash stores a payload and returns its one-time key.
func (h *HandoffHandler) Stash(c *gin.Context) {
	var req struct {
		Kind    string          `json:"kind" binding:"required"`
		Payload json.RawMessage `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind and payload are required"})
		return
	}

	key, err := h.svc.Stash(c.Request.Context(), req.Kind, req.Payload)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

// Redeem fetches and deletes the entry for a key.
func (h *HandoffHandler) Redeem(c *gin.Context) {
	entry, err := h.svc.Redeem(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
