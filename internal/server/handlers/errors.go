package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/service/alerts"
	"github.com/dogarmed/storefront/internal/service/approvals"
	"github.com/dogarmed/storefront/internal/service/catalog"
	"github.com/dogarmed/storefront/internal/service/checkout"
	"github.com/dogarmed/storefront/internal/service/directory"
	"github.com/dogarmed/storefront/internal/service/handoff"
	"github.com/dogarmed/storefront/internal/service/ledger"
	"github.com/dogarmed/storefront/pkg/clients/backend"
)

// writeError maps service errors onto HTTP responses: local validation to
// 400, upstream-reported failures to their status, missing handoff entries
// to 404, a disabled archive to 503, anything else to 502.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		catalogErr   *catalog.ValidationError
		directoryErr *directory.ValidationError
		approvalErr  *approvals.ValidationError
		alertErr     *alerts.ValidationError
		checkoutErr  *checkout.ValidationError
		apiErr       *backend.APIError
	)

	switch {
	case errors.As(err, &catalogErr),
		errors.As(err, &directoryErr),
		errors.As(err, &approvalErr),
		errors.As(err, &alertErr),
		errors.As(err, &checkoutErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		msg := apiErr.Message
		if msg == "" {
			msg = "backend error"
		}
		c.JSON(status, gin.H{"error": msg})
	case errors.Is(err, handoff.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ledger.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ledger archive is not configured"})
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend request failed"})
	}
}
