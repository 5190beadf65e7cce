package models

// SaleRequest is a point-of-sale checkout: the cart plus cash tendered.
type SaleRequest struct {
	Cart         []CartLine `json:"cart"`
	PaidAmount   float64    `json:"paid_amount"`
	ChangeAmount float64    `json:"change_amount"`
}

// SaleResult reports a saved sale. PDFURL points at the upstream receipt.
type SaleResult struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"order_id"`
	PDFURL  string `json:"pdf_url,omitempty"`
}

// PendingOrder is the payload a customer page stashes before redirecting to
// the payment page: the cart snapshot with its total.
type PendingOrder struct {
	Cart      []CartLine `json:"cart"`
	Total     float64    `json:"total"`
	Timestamp string     `json:"timestamp"`
}

// PaymentIntentRequest asks the backend to open a card payment. Amount is in
// minor currency units.
type PaymentIntentRequest struct {
	Amount   int64      `json:"amount"`
	Currency string     `json:"currency"`
	Cart     []CartLine `json:"cart"`
}

// PaymentIntentResponse carries the gateway handle back to the page.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// CustomerOrderRequest persists a card-paid customer order upstream.
type CustomerOrderRequest struct {
	Cart            []CartLine `json:"cart"`
	TotalAmount     float64    `json:"total_amount"`
	PaidAmount      float64    `json:"paid_amount"`
	ChangeAmount    float64    `json:"change_amount"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentIntentID string     `json:"payment_intent_id"`
	CardLastFour    string     `json:"card_last_four"`
}

// PharmacyOrderRequest is a supplier purchase order assembled from the order
// cart (including lines redeemed from restock/expiry handoffs).
type PharmacyOrderRequest struct {
	SupplierName         string     `json:"supplier_name"`
	ExpectedDeliveryDate string     `json:"expected_delivery_date"`
	Items                []CartLine `json:"items"`
}

// InvoiceOrder is the header block of an invoice lookup.
type InvoiceOrder struct {
	OrderID       int64   `json:"order_id"`
	OrderDate     string  `json:"order_date"`
	TotalAmount   float64 `json:"total_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	ChangeAmount  float64 `json:"change_amount"`
	CustomerID    int64   `json:"customer_id,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// InvoiceItem is one sold line on an invoice.
type InvoiceItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Invoice is the full invoice payload used by the invoice and returns pages.
type Invoice struct {
	Order InvoiceOrder  `json:"order"`
	Items []InvoiceItem `json:"items"`
}

// ReturnRequest is a processed product return against an invoice.
type ReturnRequest struct {
	ReturnID         string  `json:"return_id,omitempty"`
	InvoiceNumber    int64   `json:"invoice_number"`
	ProductName      string  `json:"product_name"`
	OriginalQuantity int     `json:"original_quantity"`
	ReturnQuantity   int     `json:"return_quantity"`
	UnitPrice        float64 `json:"unit_price"`
	ReturnAmount     float64 `json:"return_amount"`
	ReturnReason     string  `json:"return_reason"`
	ReturnNotes      string  `json:"return_notes"`
}

// ReturnResult reports the upstream outcome of a return.
type ReturnResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
