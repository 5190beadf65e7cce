// Package checkout covers order capture: POS cash sales, card-paid customer
// orders, supplier purchase orders, invoice lookups and returns. Payment
// confirmation and receipt rendering stay upstream.
package checkout

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
)

// Defaults applied when a pharmacy order omits them.
const (
	DefaultSupplier = "Default Supplier"
	deliveryLayout  = "2006-01-02"
)

// Card payment constants sent with customer orders.
const (
	paymentMethodCard = "stripe"
	currency          = "pkr"
)

// BackendAPI is the slice of the upstream client the checkout flows need.
type BackendAPI interface {
	SaveOrder(ctx context.Context, req models.SaleRequest) (*models.SaleResult, error)
	SaveCustomerOrder(ctx context.Context, req models.CustomerOrderRequest) (*models.SaleResult, error)
	SavePharmacyOrder(ctx context.Context, req models.PharmacyOrderRequest) (string, error)
	Invoice(ctx context.Context, orderID string) (*models.Invoice, error)
	ProcessReturn(ctx context.Context, req models.ReturnRequest) (*models.ReturnResult, error)
	CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

// ValidationError marks a locally rejected payload; handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service owns the checkout flows.
type Service struct {
	backend BackendAPI
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a checkout service instance.
func NewService(backend BackendAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger, now: time.Now}
}

// CartTotal sums a snapshot of cart lines.
func CartTotal(lines []models.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// SaveSale validates and forwards a cash POS sale. The change amount is
// recomputed here regardless of what the page sent.
func (s *Service) SaveSale(ctx context.Context, req models.SaleRequest) (*models.SaleResult, error) {
	if len(req.Cart) == 0 {
		return nil, &ValidationError{Reason: "cart is empty"}
	}
	if req.PaidAmount <= 0 {
		return nil, &ValidationError{Reason: "paid amount must be greater than zero"}
	}
	total := CartTotal(req.Cart)
	if req.PaidAmount < total {
		return nil, &ValidationError{Reason: fmt.Sprintf("paid amount %.2f is less than total %.2f", req.PaidAmount, total)}
	}
	req.ChangeAmount = req.PaidAmount - total

	result, err := s.backend.SaveOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale saved",
		zap.Int64("order_id", result.OrderID),
		zap.Float64("total", total),
		zap.Float64("change", req.ChangeAmount))
	return result, nil
}

// OpenPaymentIntent starts a card payment for a pending order. The amount is
// the order total in minor units.
func (s *Service) OpenPaymentIntent(ctx context.Context, pending models.PendingOrder) (*models.PaymentIntentResponse, error) {
	if len(pending.Cart) == 0 {
		return nil, &ValidationError{Reason: "pending order has no items"}
	}

	total := pending.Total
	if total <= 0 {
		total = CartTotal(pending.Cart)
	}
	intent, err := s.backend.CreatePaymentIntent(ctx, models.PaymentIntentRequest{
		Amount:   int64(math.Round(total * 100)),
		Currency: currency,
		Cart:     pending.Cart,
	})
	if err != nil {
		return nil, err
	}
	return intent, nil
}

// CompleteCustomerOrder persists a card-paid order after the gateway has
// confirmed the payment.
func (s *Service) CompleteCustomerOrder(ctx context.Context, pending models.PendingOrder, intentID, cardLastFour string) (*models.SaleResult, error) {
	if len(pending.Cart) == 0 {
		return nil, &ValidationError{Reason: "pending order has no items"}
	}
	if intentID == "" {
		return nil, &ValidationError{Reason: "payment intent id is required"}
	}

	total := pending.Total
	if total <= 0 {
		total = CartTotal(pending.Cart)
	}
	result, err := s.backend.SaveCustomerOrder(ctx, models.CustomerOrderRequest{
		Cart:            pending.Cart,
		TotalAmount:     total,
		PaidAmount:      total,
		ChangeAmount:    0,
		PaymentMethod:   paymentMethodCard,
		PaymentIntentID: intentID,
		CardLastFour:    cardLastFour,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer order saved",
		zap.Int64("order_id", result.OrderID),
		zap.String("payment_intent_id", intentID))
	return result, nil
}

// SavePharmacyOrder forwards a supplier purchase order, filling in the
// default supplier and today's date when missing. Returns the receipt URL.
func (s *Service) SavePharmacyOrder(ctx context.Context, req models.PharmacyOrderRequest) (string, error) {
	if len(req.Items) == 0 {
		return "", &ValidationError{Reason: "order has no items"}
	}
	if strings.TrimSpace(req.SupplierName) == "" {
		req.SupplierName = DefaultSupplier
	}
	if strings.TrimSpace(req.ExpectedDeliveryDate) == "" {
		req.ExpectedDeliveryDate = s.now().Format(deliveryLayout)
	} else if _, err := time.Parse(deliveryLayout, req.ExpectedDeliveryDate); err != nil {
		return "", &ValidationError{Reason: "expected delivery date must be YYYY-MM-DD"}
	}

	pdfURL, err := s.backend.SavePharmacyOrder(ctx, req)
	if err != nil {
		return "", err
	}

	s.logger.Info("pharmacy order saved",
		zap.String("supplier", req.SupplierName),
		zap.Int("items", len(req.Items)))
	return pdfURL, nil
}

// Invoice looks up an order and its sold lines.
func (s *Service) Invoice(ctx context.Context, orderID string) (*models.Invoice, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, &ValidationError{Reason: "order id is required"}
	}
	return s.backend.Invoice(ctx, orderID)
}

// ProcessReturn validates a return against the invoice it references, fills
// in the derived fields and forwards it upstream.
func (s *Service) ProcessReturn(ctx context.Context, req models.ReturnRequest) (*models.ReturnResult, error) {
	if req.InvoiceNumber <= 0 {
		return nil, &ValidationError{Reason: "invoice number is required"}
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, &ValidationError{Reason: "product name is required"}
	}

	invoice, err := s.backend.Invoice(ctx, fmt.Sprintf("%d", req.InvoiceNumber))
	if err != nil {
		return nil, fmt.Errorf("load invoice %d: %w", req.InvoiceNumber, err)
	}

	var line *models.InvoiceItem
	for i := range invoice.Items {
		if strings.EqualFold(invoice.Items[i].ProductName, req.ProductName) {
			line = &invoice.Items[i]
			break
		}
	}
	if line == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("product %q is not on invoice %d", req.ProductName, req.InvoiceNumber)}
	}
	if req.ReturnQuantity < 1 {
		return nil, &ValidationError{Reason: "return quantity must be at least 1"}
	}
	if req.ReturnQuantity > line.Quantity {
		return nil, &ValidationError{Reason: fmt.Sprintf("return quantity %d exceeds sold quantity %d", req.ReturnQuantity, line.Quantity)}
	}

	req.ProductName = line.ProductName
	req.OriginalQuantity = line.Quantity
	req.UnitPrice = line.UnitPrice
	req.ReturnAmount = float64(req.ReturnQuantity) * line.UnitPrice
	if req.ReturnID == "" {
		req.ReturnID = fmt.Sprintf("RET%d", s.now().UnixMilli())
	}

	result, err := s.backend.ProcessReturn(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("return processed",
		zap.String("return_id", req.ReturnID),
		zap.Int64("invoice", req.InvoiceNumber),
		zap.Float64("amount", req.ReturnAmount))
	return result, nil
}
