package models

// Product mirrors a catalog row as returned by the pharmacy backend.
type Product struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Brand         string  `json:"brand,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity float64 `json:"stock_quantity"`
	Category      string  `json:"category,omitempty"`
	ExpiryDate    string  `json:"expiry_date,omitempty"`
	ImagePath     string  `json:"image_path,omitempty"`
}

// ProductInput carries a create/update payload for a catalog row.
type ProductInput struct {
	ProductName   string  `json:"product_name" binding:"required"`
	Brand         string  `json:"brand"`
	Price         float64 `json:"price"`
	StockQuantity float64 `json:"stock_quantity"`
	Category      string  `json:"category"`
	ExpiryDate    string  `json:"expiry_date"`
	ImagePath     string  `json:"image_path"`
}

// ProductQuery captures the catalog's local filter and sort controls.
type ProductQuery struct {
	Search   string
	Category string
	SortBy   string
}
