package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
	"github.com/dogarmed/storefront/internal/service/directory"
)

// DirectoryHandler serves the user, employee and customer admin pages.
type DirectoryHandler struct {
	svc    *directory.Service
	logger *zap.Logger
}

// NewDirectoryHandler constructs the HTTP handler adapter.
func NewDirectoryHandler(svc *directory.Service, logger *zap.Logger) *DirectoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryHandler{svc: svc, logger: logger}
}

// ListUsers returns users with the page's header stats.
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	query := directory.UserQuery{
		Search: c.Query("q"),
		Role:   c.Query("role"),
		SortBy: c.Query("sort"),
	}

	users, err := h.svc.ListUsers(c.Request.Context(), query)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"stats": directory.UserStatistics(users),
	})
}

// CreateUser adds a user account.
func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	if err := h.svc.CreateUser(c.Request.Context(), input); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// UpdateUser edits a user account.
func (h *DirectoryHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	if err := h.svc.UpdateUser(c.Request.Context(), id, input); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUser removes a user account.
func (h *DirectoryHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListEmployees returns employees with the page's header stats.
func (h *DirectoryHandler) ListEmployees(c *gin.Context) {
	query := directory.EmployeeQuery{
		Search: c.Query("q"),
		SortBy: c.Query("sort"),
	}

	employees, err := h.svc.ListEmployees(c.Request.Context(), query)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"stats":     directory.EmployeeStatistics(employees),
	})
}

// AddEmployee registers an employee.
func (h *DirectoryHandler) AddEmployee(c *gin.Context) {
	var input models.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee payload"})
		return
	}

	if err := h.svc.AddEmployee(c.Request.Context(), input); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

// UpdateEmployee edits an employee record.
func (h *DirectoryHandler) UpdateEmployee(c *gin.Context) {
	var input models.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee payload"})
		return
	}

	if err := h.svc.UpdateEmployee(c.Request.Context(), c.Param("id"), input); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteEmployee removes an employee record.
func (h *DirectoryHandler) DeleteEmployee(c *gin.Context) {
	if err := h.svc.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ListCustomers returns the customer directory.
func (h *DirectoryHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// ListCustomerOrders returns every customer order header.
func (h *DirectoryHandler) ListCustomerOrders(c *gin.Context) {
	orders, err := h.svc.ListCustomerOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CustomerOrderDetails returns one customer's order history lines.
func (h *DirectoryHandler) CustomerOrderDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	details, err := h.svc.CustomerOrderDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
