package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/server/handlers"
	"github.com/dogarmed/storefront/internal/service/approvals"
)

// Handlers groups the page-facing handler adapters the router mounts.
type Handlers struct {
	Catalog   *handlers.CatalogHandler
	Directory *handlers.DirectoryHandler
	Ledger    *handlers.LedgerHandler
	Approvals *handlers.ApprovalsHandler
	Alerts    *handlers.AlertsHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	Handoff   *handlers.HandoffHandler
}

// New wires the Gin engine with required routes and middlewares. Paths match
// what the pages already call.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	// Catalog
	r.GET("/api/products", h.Catalog.List)
	r.POST("/api/products", h.Catalog.Create)
	r.PUT("/api/products/:id", h.Catalog.Update)
	r.DELETE("/api/products/:id", h.Catalog.Delete)

	// Users, employees, customers
	r.GET("/api/users", h.Directory.ListUsers)
	r.POST("/api/users", h.Directory.CreateUser)
	r.PUT("/api/users/:id", h.Directory.UpdateUser)
	r.DELETE("/api/users/:id", h.Directory.DeleteUser)
	r.GET("/api/employees", h.Directory.ListEmployees)
	r.POST("/employees/add", h.Directory.AddEmployee)
	r.PUT("/api/employees/:id", h.Directory.UpdateEmployee)
	r.DELETE("/api/employees/:id", h.Directory.DeleteEmployee)
	r.GET("/api/customers", h.Directory.ListCustomers)
	r.GET("/api/customer-orders", h.Directory.ListCustomerOrders)
	r.GET("/api/customer-order-details/:id", h.Directory.CustomerOrderDetails)

	// Customer ledger
	r.GET("/api/customer-ledger/:id", h.Ledger.View)
	r.GET("/api/customer-ledger/:id/export", h.Ledger.Export)
	r.POST("/api/customer-ledger/:id/archive", h.Ledger.Archive)

	// Approvals
	r.GET("/api/pending-approvals", h.Approvals.Pending(approvals.ScopeOwner))
	r.POST("/api/handle-approval", h.Approvals.Decide(approvals.ScopeOwner))
	r.GET("/api/admin/pending-approvals", h.Approvals.Pending(approvals.ScopeAdmin))
	r.POST("/api/admin/handle-approval", h.Approvals.Decide(approvals.ScopeAdmin))

	// Alerts
	r.GET("/expiry_alerts", h.Alerts.ExpiryAlerts)
	r.GET("/api/predict_restocks", h.Alerts.RestockPredictions)
	r.POST("/api/save_auto_order", h.Alerts.SaveAutoOrder)
	r.POST("/api/restock-selection", h.Alerts.StashRestockSelection)
	r.POST("/api/expiry-selection", h.Alerts.StashExpirySelection)

	// Session cart
	r.GET("/api/cart", h.Cart.View)
	r.POST("/api/cart/items", h.Cart.AddItem)
	r.DELETE("/api/cart/items/:product_id", h.Cart.RemoveItem)
	r.DELETE("/api/cart", h.Cart.Clear)
	r.GET("/api/cart/billing", h.Cart.Billing)
	r.POST("/api/cart/import", h.Cart.Import)

	// Checkout
	r.POST("/api/save_order", h.Checkout.SaveOrder)
	r.POST("/api/create_payment_intent", h.Checkout.CreatePaymentIntent)
	r.POST("/api/save_customer_order", h.Checkout.SaveCustomerOrder)
	r.POST("/save_pharmacy_order", h.Checkout.SavePharmacyOrder)
	r.GET("/api/invoice/:id", h.Checkout.Invoice)
	r.POST("/api/process_return", h.Checkout.ProcessReturn)

	// Cross-page handoff
	r.POST("/api/handoff", h.Handoff.Stash)
	r.GET("/api/handoff/:key", h.Handoff.Redeem)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
