package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogarmed/storefront/internal/domain/models"
)

type fakeCheckoutBackend struct {
	saleReq     *models.SaleRequest
	customerReq *models.CustomerOrderRequest
	pharmacyReq *models.PharmacyOrderRequest
	intentReq   *models.PaymentIntentRequest
	returnReq   *models.ReturnRequest

	invoice *models.Invoice
}

func (f *fakeCheckoutBackend) SaveOrder(_ context.Context, req models.SaleRequest) (*models.SaleResult, error) {
	f.saleReq = &req
	return &models.SaleResult{Success: true, OrderID: 101, PDFURL: "/receipts/101.pdf"}, nil
}

func (f *fakeCheckoutBackend) SaveCustomerOrder(_ context.Context, req models.CustomerOrderRequest) (*models.SaleResult, error) {
	f.customerReq = &req
	return &models.SaleResult{Success: true, OrderID: 202}, nil
}

func (f *fakeCheckoutBackend) SavePharmacyOrder(_ context.Context, req models.PharmacyOrderRequest) (string, error) {
	f.pharmacyReq = &req
	return "/orders/po-7.pdf", nil
}

func (f *fakeCheckoutBackend) Invoice(context.Context, string) (*models.Invoice, error) {
	return f.invoice, nil
}

func (f *fakeCheckoutBackend) ProcessReturn(_ context.Context, req models.ReturnRequest) (*models.ReturnResult, error) {
	f.returnReq = &req
	return &models.ReturnResult{Success: true}, nil
}

func (f *fakeCheckoutBackend) CreatePaymentIntent(_ context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	f.intentReq = &req
	return &models.PaymentIntentResponse{ClientSecret: "cs_test", PaymentIntentID: "pi_test"}, nil
}

func sampleCart() []models.CartLine {
	return []models.CartLine{
		{ProductID: 1, Name: "Panadol", Price: 10, Quantity: 2},
		{ProductID: 2, Name: "Brufen", Price: 5, Quantity: 3},
	}
}

func TestSaveSaleComputesChange(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewService(backend, nil)

	result, err := svc.SaveSale(context.Background(), models.SaleRequest{
		Cart:       sampleCart(),
		PaidAmount: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), result.OrderID)

	require.NotNil(t, backend.saleReq)
	assert.Equal(t, 15.0, backend.saleReq.ChangeAmount)
}

func TestSaveSaleValidation(t *testing.T) {
	svc := NewService(&fakeCheckoutBackend{}, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.SaleRequest
	}{
		{"empty cart", models.SaleRequest{PaidAmount: 50}},
		{"no payment", models.SaleRequest{Cart: sampleCart()}},
		{"underpaid", models.SaleRequest{Cart: sampleCart(), PaidAmount: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var vErr *ValidationError
			_, err := svc.SaveSale(ctx, tc.req)
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestOpenPaymentIntentUsesMinorUnits(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewService(backend, nil)

	intent, err := svc.OpenPaymentIntent(context.Background(), models.PendingOrder{
		Cart:  sampleCart(),
		Total: 35.555,
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test", intent.ClientSecret)

	require.NotNil(t, backend.intentReq)
	assert.Equal(t, int64(3556), backend.intentReq.Amount)
	assert.Equal(t, "pkr", backend.intentReq.Currency)
}

func TestOpenPaymentIntentDerivesMissingTotal(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewService(backend, nil)

	_, err := svc.OpenPaymentIntent(context.Background(), models.PendingOrder{Cart: sampleCart()})
	require.NoError(t, err)
	assert.Equal(t, int64(3500), backend.intentReq.Amount)
}

func TestCompleteCustomerOrderCarriesPaymentMetadata(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewService(backend, nil)

	result, err := svc.CompleteCustomerOrder(context.Background(), models.PendingOrder{
		Cart:  sampleCart(),
		Total: 35,
	}, "pi_abc", "4242")
	require.NoError(t, err)
	assert.Equal(t, int64(202), result.OrderID)

	require.NotNil(t, backend.customerReq)
	assert.Equal(t, "stripe", backend.customerReq.PaymentMethod)
	assert.Equal(t, "pi_abc", backend.customerReq.PaymentIntentID)
	assert.Equal(t, "4242", backend.customerReq.CardLastFour)
	assert.Equal(t, 35.0, backend.customerReq.TotalAmount)
	assert.Equal(t, 0.0, backend.customerReq.ChangeAmount)
}

func TestCompleteCustomerOrderRequiresIntent(t *testing.T) {
	svc := NewService(&fakeCheckoutBackend{}, nil)

	var vErr *ValidationError
	_, err := svc.CompleteCustomerOrder(context.Background(), models.PendingOrder{Cart: sampleCart()}, "", "")
	require.ErrorAs(t, err, &vErr)
}

func TestSavePharmacyOrderDefaults(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewService(backend, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	pdfURL, err := svc.SavePharmacyOrder(context.Background(), models.PharmacyOrderRequest{
		Items: sampleCart(),
	})
	require.NoError(t, err)
	assert.Equal(t, "/orders/po-7.pdf", pdfURL)

	require.NotNil(t, backend.pharmacyReq)
	assert.Equal(t, DefaultSupplier, backend.pharmacyReq.SupplierName)
	assert.Equal(t, "2025-03-10", backend.pharmacyReq.ExpectedDeliveryDate)
}

func TestSavePharmacyOrderRejectsBadDate(t *testing.T) {
	svc := NewService(&fakeCheckoutBackend{}, nil)

	var vErr *ValidationError
	_, err := svc.SavePharmacyOrder(context.Background(), models.PharmacyOrderRequest{
		Items:                sampleCart(),
		ExpectedDeliveryDate: "10/03/2025",
	})
	require.ErrorAs(t, err, &vErr)
}

func returnInvoice() *models.Invoice {
	return &models.Invoice{
		Order: models.InvoiceOrder{OrderID: 55, TotalAmount: 35},
		Items: []models.InvoiceItem{
			{ProductID: 1, ProductName: "Panadol", Quantity: 4, UnitPrice: 10},
		},
	}
}

func TestProcessReturnFillsDerivedFields(t *testing.T) {
	backend := &fakeCheckoutBackend{invoice: returnInvoice()}
	svc := NewService(backend, nil)

	result, err := svc.ProcessReturn(context.Background(), models.ReturnRequest{
		InvoiceNumber:  55,
		ProductName:    "panadol",
		ReturnQuantity: 3,
		ReturnReason:   "damaged",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	require.NotNil(t, backend.returnReq)
	assert.Equal(t, "Panadol", backend.returnReq.ProductName)
	assert.Equal(t, 4, backend.returnReq.OriginalQuantity)
	assert.Equal(t, 30.0, backend.returnReq.ReturnAmount)
	assert.True(t, len(backend.returnReq.ReturnID) > 3 && backend.returnReq.ReturnID[:3] == "RET")
}

func TestProcessReturnValidation(t *testing.T) {
	backend := &fakeCheckoutBackend{invoice: returnInvoice()}
	svc := NewService(backend, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.ReturnRequest
	}{
		{"missing invoice", models.ReturnRequest{ProductName: "Panadol", ReturnQuantity: 1}},
		{"unknown product", models.ReturnRequest{InvoiceNumber: 55, ProductName: "Augmentin", ReturnQuantity: 1}},
		{"zero quantity", models.ReturnRequest{InvoiceNumber: 55, ProductName: "Panadol"}},
		{"over quantity", models.ReturnRequest{InvoiceNumber: 55, ProductName: "Panadol", ReturnQuantity: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var vErr *ValidationError
			_, err := svc.ProcessReturn(ctx, tc.req)
			require.ErrorAs(t, err, &vErr)
		})
	}
}
