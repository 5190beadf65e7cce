// Package backend wraps the upstream pharmacy backend's JSON API. The
// storefront is a pure consumer of this contract: authentication, persistence,
// receipts, payments and predictions all live behind these calls.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/dogarmed/storefront/internal/config"
	"github.com/dogarmed/storefront/internal/domain/models"
)

// APIError is a backend-reported failure: either a transport-level status or
// a business error body ({"error": ...} or {"success": false, "message": ...}).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("backend error: status=%d, message=%s", e.StatusCode, e.Message)
}

// errorBody covers the two error shapes the backend emits.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// ack is the generic mutation acknowledgement body.
type ack struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (a *ack) ok() bool {
	return a.Success || a.Status == "success"
}

// Client is a resty-backed consumer of the pharmacy backend API.
type Client struct {
	http *resty.Client
}

// NewClient builds a backend client from the configured base URL. Every page
// shares this single client so no page carries its own hard-coded host.
func NewClient(cfg config.BackendConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{http: restyClient}
}

// checked converts a completed resty response into an error when the backend
// signalled failure.
func checked(resp *resty.Response, err error, op string, errBody *errorBody) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode(), Message: errBody.text()}
	}
	return nil
}

// checkedAck additionally inspects the acknowledgement body, since some
// endpoints report business failures with a 200 status.
func checkedAck(resp *resty.Response, err error, op string, body *ack) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	if !body.ok() {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		if msg != "" {
			return &APIError{StatusCode: resp.StatusCode(), Message: msg}
		}
	}
	return nil
}

// --- Catalog ---

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/api/products")
	if err := checked(resp, err, "list products", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, input models.ProductInput) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(input).SetResult(body).SetError(body).Post("/api/products")
	return checkedAck(resp, err, "create product", body)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, input models.ProductInput) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(input).SetResult(body).SetError(body).
		Put(fmt.Sprintf("/api/products/%d", id))
	return checkedAck(resp, err, "update product", body)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetResult(body).SetError(body).
		Delete(fmt.Sprintf("/api/products/%d", id))
	return checkedAck(resp, err, "delete product", body)
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/api/users")
	if err := checked(resp, err, "list users", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, input models.UserInput) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(input).SetResult(body).SetError(body).Post("/api/users")
	return checkedAck(resp, err, "create user", body)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, input models.UserInput) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(input).SetResult(body).SetError(body).
		Put(fmt.Sprintf("/api/users/%d", id))
	return checkedAck(resp, err, "update user", body)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetResult(body).SetError(body).
		Delete(fmt.Sprintf("/api/users/%d", id))
	return checkedAck(resp, err, "delete user", body)
}

// --- Employees ---

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/api/employees")
	if err := checked(resp, err, "list employees", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddEmployee(ctx context.Context, input models.EmployeeInput) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(input).SetResult(body).SetError(body).Post("/employees/add")
	return checkedAck(resp, err, "add employee", body)
}

func (c *Client) UpdateEmployee(ctx context.Context, employeeID string, input models.EmployeeInput) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(input).SetResult(body).SetError(body).
		Put("/api/employees/" + employeeID)
	return checkedAck(resp, err, "update employee", body)
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetResult(body).SetError(body).
		Delete("/api/employees/" + employeeID)
	return checkedAck(resp, err, "delete employee", body)
}

// --- Customers ---

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/api/customers")
	if err := checked(resp, err, "list customers", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCustomerOrders(ctx context.Context) ([]models.CustomerOrder, error) {
	var out []models.CustomerOrder
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/api/customer-orders")
	if err := checked(resp, err, "list customer orders", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CustomerOrderDetails(ctx context.Context, customerID int64) ([]models.CustomerOrderDetail, error) {
	var out []models.CustomerOrderDetail
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).
		Get(fmt.Sprintf("/api/customer-order-details/%d", customerID))
	if err := checked(resp, err, "customer order details", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CustomerLedger(ctx context.Context, customerID int64) (*models.CustomerLedger, error) {
	out := new(models.CustomerLedger)
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(out).SetError(errBody).
		Get(fmt.Sprintf("/api/customer-ledger/%d", customerID))
	if err := checked(resp, err, "customer ledger", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Approvals ---

func (c *Client) OwnerPendingApprovals(ctx context.Context) ([]models.PendingApproval, error) {
	return c.pendingApprovals(ctx, "/api/pending-approvals")
}

func (c *Client) AdminPendingApprovals(ctx context.Context) ([]models.PendingApproval, error) {
	return c.pendingApprovals(ctx, "/api/admin/pending-approvals")
}

func (c *Client) pendingApprovals(ctx context.Context, path string) ([]models.PendingApproval, error) {
	var out []models.PendingApproval
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get(path)
	if err := checked(resp, err, "pending approvals", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HandleOwnerApproval(ctx context.Context, decision models.ApprovalDecision) error {
	return c.handleApproval(ctx, "/api/handle-approval", decision)
}

func (c *Client) HandleAdminApproval(ctx context.Context, decision models.ApprovalDecision) error {
	return c.handleApproval(ctx, "/api/admin/handle-approval", decision)
}

func (c *Client) handleApproval(ctx context.Context, path string, decision models.ApprovalDecision) error {
	body := new(ack)
	resp, err := c.http.R().SetContext(ctx).SetBody(decision).SetResult(body).SetError(body).Post(path)
	return checkedAck(resp, err, "handle approval", body)
}

// --- Alerts ---

func (c *Client) ExpiryAlerts(ctx context.Context) ([]models.ExpiryAlert, error) {
	var out []models.ExpiryAlert
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/expiry_alerts")
	if err := checked(resp, err, "expiry alerts", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PredictRestocks(ctx context.Context) ([]models.RestockPrediction, error) {
	var out []models.RestockPrediction
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(errBody).Get("/api/predict_restocks")
	if err := checked(resp, err, "predict restocks", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

type autoOrderResponse struct {
	Success     bool   `json:"success"`
	AutoOrderID int64  `json:"auto_order_id"`
	Message     string `json:"message"`
}

func (c *Client) SaveAutoOrder(ctx context.Context, lines []models.AutoOrderLine) (int64, error) {
	out := new(autoOrderResponse)
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"predictions": lines}).
		SetResult(out).SetError(errBody).
		Post("/api/save_auto_order")
	if err := checked(resp, err, "save auto order", errBody); err != nil {
		return 0, err
	}
	if !out.Success {
		return 0, &APIError{StatusCode: resp.StatusCode(), Message: out.Message}
	}
	return out.AutoOrderID, nil
}

// --- Checkout ---

type saleResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"order_id"`
	PDFURL  string `json:"pdf_url"`
	Error   string `json:"error"`
}

func (c *Client) SaveOrder(ctx context.Context, req models.SaleRequest) (*models.SaleResult, error) {
	return c.saveSale(ctx, "/api/save_order", req)
}

func (c *Client) SaveCustomerOrder(ctx context.Context, req models.CustomerOrderRequest) (*models.SaleResult, error) {
	return c.saveSale(ctx, "/api/save_customer_order", req)
}

func (c *Client) saveSale(ctx context.Context, path string, payload any) (*models.SaleResult, error) {
	out := new(saleResponse)

	resp, err := c.http.R().SetContext(ctx).SetBody(payload).SetResult(out).SetError(out).Post(path)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest || !out.Success {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: out.Error}
	}
	return &models.SaleResult{Success: true, OrderID: out.OrderID, PDFURL: out.PDFURL}, nil
}

type pharmacyOrderResponse struct {
	PDFURL string `json:"pdf_url"`
	Error  string `json:"error"`
}

func (c *Client) SavePharmacyOrder(ctx context.Context, req models.PharmacyOrderRequest) (string, error) {
	out := new(pharmacyOrderResponse)

	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(out).SetError(out).Post("/save_pharmacy_order")
	if err != nil {
		return "", fmt.Errorf("save pharmacy order: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest || out.PDFURL == "" {
		return "", &APIError{StatusCode: resp.StatusCode(), Message: out.Error}
	}
	return out.PDFURL, nil
}

func (c *Client) Invoice(ctx context.Context, orderID string) (*models.Invoice, error) {
	out := new(models.Invoice)
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetResult(out).SetError(errBody).Get("/api/invoice/" + orderID)
	if err := checked(resp, err, "invoice lookup", errBody); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProcessReturn(ctx context.Context, req models.ReturnRequest) (*models.ReturnResult, error) {
	body := new(ack)

	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(body).SetError(body).Post("/api/process_return")
	if err := checkedAck(resp, err, "process return", body); err != nil {
		return nil, err
	}
	return &models.ReturnResult{Success: true, Message: body.Message}, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	out := new(models.PaymentIntentResponse)
	errBody := new(errorBody)

	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(out).SetError(errBody).Post("/api/create_payment_intent")
	if err := checked(resp, err, "create payment intent", errBody); err != nil {
		return nil, err
	}
	return out, nil
}
