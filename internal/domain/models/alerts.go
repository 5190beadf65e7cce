package models

// ExpiryAlert is one product row from the backend's expiry alert feed.
// TimeToExpiry is in days and goes negative once the product has expired.
type ExpiryAlert struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ExpiryDate    string  `json:"expiry_date"`
	TimeToExpiry  float64 `json:"time_to_expiry"`
	StockQuantity float64 `json:"stock_quantity"`
	Demand        string  `json:"demand"`
	PriorityScore float64 `json:"priority_score"`
	ExpiryAlert   string  `json:"expiry_alert"`
	ImageURL      string  `json:"image_url,omitempty"`

	// Derived locally from TimeToExpiry.
	WarningBand string `json:"warning_band,omitempty"`
	ExpiryText  string `json:"expiry_text,omitempty"`
}

// RestockPrediction is one row from the backend's restock forecast.
type RestockPrediction struct {
	ProductID           int64   `json:"product_id"`
	ProductName         string  `json:"product_name"`
	StockQuantity       float64 `json:"stock_quantity"`
	PredictedDays       float64 `json:"predicted_days_until_restock"`
	RecommendedQuantity int     `json:"recommended_quantity"`
	RestockDate         string  `json:"restock_date"`

	// Derived locally from PredictedDays.
	Urgency string `json:"urgency,omitempty"`
}

// AutoOrderLine is the shape the backend expects when persisting restock
// predictions as an automatic purchase order.
type AutoOrderLine struct {
	ProductID           int64   `json:"product_id"`
	PredictionID        int64   `json:"prediction_id"`
	RecommendedQuantity int     `json:"recommended_quantity"`
	EstimatedCost       float64 `json:"estimated_cost"`
}

// AlertDigest summarizes both alert feeds for the scheduled digest log.
type AlertDigest struct {
	ExpiredCount   int `json:"expired_count"`
	DayCount       int `json:"day_count"`
	WeekCount      int `json:"week_count"`
	MonthCount     int `json:"month_count"`
	UrgentRestocks int `json:"urgent_restocks"`
	HighRestocks   int `json:"high_restocks"`
	TotalExpiring  int `json:"total_expiring"`
	TotalPredicted int `json:"total_predicted"`
}
