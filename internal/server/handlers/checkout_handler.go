package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
	"github.com/dogarmed/storefront/internal/service/checkout"
	"github.com/dogarmed/storefront/internal/service/handoff"
)

// KindPendingOrder labels the cart snapshot a page stashes before the
// payment step.
const KindPendingOrder = "pendingOrder"

// CheckoutHandler serves the order capture endpoints.
type CheckoutHandler struct {
	svc     *checkout.Service
	handoff *handoff.Service
	logger  *zap.Logger
}

// NewCheckoutHandler constructs the HTTP handler adapter.
func NewCheckoutHandler(svc *checkout.Service, hs *handoff.Service, logger *zap.Logger) *CheckoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutHandler{svc: svc, handoff: hs, logger: logger}
}

// SaveOrder captures a cash POS sale.
func (h *CheckoutHandler) SaveOrder(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale payload"})
		return
	}

	result, err := h.svc.SaveSale(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type paymentIntentRequest struct {
	HandoffKey string            `json:"handoff_key"`
	Cart       []models.CartLine `json:"cart"`
	Total      float64           `json:"total"`
}

// CreatePaymentIntent opens a card payment for a pending order. The order
// comes either inline or from a stashed handoff key; a redeemed order is
// echoed back since the stash is read-once.
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment payload"})
		return
	}

	pending := models.PendingOrder{Cart: req.Cart, Total: req.Total}
	if req.HandoffKey != "" {
		entry, err := h.handoff.Redeem(c.Request.Context(), req.HandoffKey)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		if entry.Kind != KindPendingOrder {
			c.JSON(http.StatusBadRequest, gin.H{"error": "handoff entry is not a pending order"})
			return
		}
		if err := json.Unmarshal(entry.Payload, &pending); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "handoff entry is not a pending order"})
			return
		}
	}

	intent, err := h.svc.OpenPaymentIntent(c.Request.Context(), pending)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.PaymentIntentID,
		"order":             pending,
	})
}

type customerOrderRequest struct {
	Cart            []models.CartLine `json:"cart"`
	Total           float64           `json:"total"`
	PaymentIntentID string            `json:"payment_intent_id"`
	CardLastFour    string            `json:"card_last_four"`
}

// SaveCustomerOrder persists a card-paid order after the gateway confirmed
// the payment.
func (h *CheckoutHandler) SaveCustomerOrder(c *gin.Context) {
	var req customerOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	pending := models.PendingOrder{Cart: req.Cart, Total: req.Total}
	result, err := h.svc.CompleteCustomerOrder(c.Request.Context(), pending, req.PaymentIntentID, req.CardLastFour)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SavePharmacyOrder captures a supplier purchase order.
func (h *CheckoutHandler) SavePharmacyOrder(c *gin.Context) {
	var req models.PharmacyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	pdfURL, err := h.svc.SavePharmacyOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pdf_url": pdfURL})
}

// Invoice returns an order header with its sold lines.
func (h *CheckoutHandler) Invoice(c *gin.Context) {
	invoice, err := h.svc.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// ProcessReturn validates and forwards a product return.
func (h *CheckoutHandler) ProcessReturn(c *gin.Context) {
	var req models.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return payload"})
		return
	}

	result, err := h.svc.ProcessReturn(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
