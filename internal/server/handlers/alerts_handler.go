package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
	"github.com/dogarmed/storefront/internal/service/alerts"
)

// AlertsHandler serves the expiry alert and restock prediction pages.
type AlertsHandler struct {
	svc    *alerts.Service
	logger *zap.Logger
}

// NewAlertsHandler constructs the HTTP handler adapter.
func NewAlertsHandler(svc *alerts.Service, logger *zap.Logger) *AlertsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertsHandler{svc: svc, logger: logger}
}

// ExpiryAlerts returns classified expiry alerts, optionally narrowed by a
// window and search query.
func (h *AlertsHandler) ExpiryAlerts(c *gin.Context) {
	filter := alerts.ExpiryFilter{
		Window: c.Query("window"),
		Search: c.Query("q"),
	}

	list, err := h.svc.ExpiryAlerts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// RestockPredictions returns the forecast sorted most-urgent first.
func (h *AlertsHandler) RestockPredictions(c *gin.Context) {
	predictions, err := h.svc.RestockPredictions(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, predictions)
}

// SaveAutoOrder persists selected predictions as an automatic purchase order.
func (h *AlertsHandler) SaveAutoOrder(c *gin.Context) {
	var req struct {
		Predictions []models.RestockPrediction `json:"predictions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid predictions payload"})
		return
	}

	id, err := h.svc.SaveAutoOrder(c.Request.Context(), req.Predictions)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "auto_order_id": id})
}

// StashRestockSelection hands selected predictions to the order page.
func (h *AlertsHandler) StashRestockSelection(c *gin.Context) {
	var req struct {
		Predictions []models.RestockPrediction `json:"predictions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid predictions payload"})
		return
	}

	key, err := h.svc.StashRestockSelection(c.Request.Context(), req.Predictions)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key})
}

// StashExpirySelection hands selected expiry alerts to the order page.
func (h *AlertsHandler) StashExpirySelection(c *gin.Context) {
	var req struct {
		Products []models.ExpiryAlert `json:"products"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid products payload"})
		return
	}

	key, err := h.svc.StashExpirySelection(c.Request.Context(), req.Products)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key})
}
