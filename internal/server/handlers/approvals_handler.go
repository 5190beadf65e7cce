package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
	"github.com/dogarmed/storefront/internal/service/approvals"
)

// ApprovalsHandler serves the owner and admin approval pages.
type ApprovalsHandler struct {
	svc    *approvals.Service
	logger *zap.Logger
}

// NewApprovalsHandler constructs the HTTP handler adapter.
func NewApprovalsHandler(svc *approvals.Service, logger *zap.Logger) *ApprovalsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalsHandler{svc: svc, logger: logger}
}

// Pending returns a scope's queue with its header stats.
func (h *ApprovalsHandler) Pending(scope approvals.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending, err := h.svc.Pending(c.Request.Context(), scope)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"approvals": pending,
			"stats":     approvals.Statistics(pending),
		})
	}
}

// Decide resolves one approval in a scope's queue.
func (h *ApprovalsHandler) Decide(scope approvals.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var decision models.ApprovalDecision
		if err := c.ShouldBindJSON(&decision); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approval payload"})
			return
		}

		if err := h.svc.Decide(c.Request.Context(), scope, decision); err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
