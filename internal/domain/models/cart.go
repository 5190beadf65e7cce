package models

// CartLine is one product entry in a session cart. Price is the unit price
// snapshot taken when the line was added.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartView is the rendered state of a cart: its lines in insertion order plus
// the freshly recomputed total.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

// BillingSummary pairs a cart total with the amount tendered.
type BillingSummary struct {
	Total  float64 `json:"total"`
	Paid   float64 `json:"paid"`
	Change float64 `json:"change"`
}

// AddToCartRequest is the payload for adding one product to a session cart.
type AddToCartRequest struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
}
