package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
	"github.com/dogarmed/storefront/internal/service/cart"
	"github.com/dogarmed/storefront/internal/service/handoff"
)

// sessionHeader identifies the caller's cart session.
const sessionHeader = "X-Session-ID"

// CartHandler serves the point-of-sale cart endpoints. Each session gets its
// own cart keyed by the X-Session-ID header.
type CartHandler struct {
	store   *cart.Store
	handoff *handoff.Service
	logger  *zap.Logger
}

// NewCartHandler constructs the HTTP handler adapter.
func NewCartHandler(store *cart.Store, hs *handoff.Service, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{store: store, handoff: hs, logger: logger}
}

func (h *CartHandler) session(c *gin.Context) (string, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
		return "", false
	}
	return sessionID, true
}

// View returns the session's cart lines and total.
func (h *CartHandler) View(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.View(sessionID))
}

// AddItem adds one unit of a product, merging with an existing line.
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item payload"})
		return
	}

	c.JSON(http.StatusOK, h.store.Add(sessionID, req.ProductID, req.Name, req.Price))
}

// RemoveItem deletes a product's whole line. Removing an absent product
// leaves the cart unchanged.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	c.JSON(http.StatusOK, h.store.Remove(sessionID, productID))
}

// Clear empties the session's cart.
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}
	h.store.Drop(sessionID)
	c.JSON(http.StatusOK, models.CartView{Lines: []models.CartLine{}})
}

// Billing computes the change due for a tendered amount.
func (h *CartHandler) Billing(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}
	paid, err := strconv.ParseFloat(c.Query("paid"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid amount"})
		return
	}

	c.JSON(http.StatusOK, h.store.Billing(sessionID, paid))
}

// Import merges handed-off lines (a restock or expiry selection) into the
// session's cart.
func (h *CartHandler) Import(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handoff key is required"})
		return
	}

	entry, err := h.handoff.Redeem(c.Request.Context(), req.Key)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var lines []models.CartLine
	if err := json.Unmarshal(entry.Payload, &lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handoff entry is not a cart selection"})
		return
	}

	c.JSON(http.StatusOK, h.store.Merge(sessionID, lines))
}
