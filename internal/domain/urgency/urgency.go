// Package urgency classifies day counts into the discrete bands used to
// color-code restock and expiry rows. Both classifiers are total over all
// numeric inputs; ties resolve to the more urgent band.
package urgency

import (
	"fmt"
	"math"
)

// RestockLevel labels how soon a product is predicted to need restocking.
type RestockLevel string

const (
	RestockUrgent RestockLevel = "URGENT"
	RestockHigh   RestockLevel = "HIGH"
	RestockMedium RestockLevel = "MEDIUM"
	RestockLow    RestockLevel = "LOW"
)

// ClassifyRestock maps predicted days-until-restock onto a RestockLevel.
// Breakpoints are inclusive on the urgent side: 7 days is still URGENT,
// 14 still HIGH, 30 still MEDIUM.
func ClassifyRestock(days float64) RestockLevel {
	switch {
	case days <= 7:
		return RestockUrgent
	case days <= 14:
		return RestockHigh
	case days <= 30:
		return RestockMedium
	default:
		return RestockLow
	}
}

// ExpiryBand labels how close a product is to its expiry date. Negative day
// counts mean the stock has already expired.
type ExpiryBand string

const (
	BandExpired   ExpiryBand = "expired"
	BandDay       ExpiryBand = "day"
	BandWeek      ExpiryBand = "week"
	BandMonth     ExpiryBand = "month"
	BandCaution   ExpiryBand = "caution"
	BandWatch     ExpiryBand = "watch"
	BandAttention ExpiryBand = "attention"
	BandSafe      ExpiryBand = "safe"
)

// ClassifyExpiry maps days-until-expiry onto an ExpiryBand.
func ClassifyExpiry(days float64) ExpiryBand {
	switch {
	case days < 0:
		return BandExpired
	case days <= 1:
		return BandDay
	case days <= 7:
		return BandWeek
	case days <= 30:
		return BandMonth
	case days <= 60:
		return BandCaution
	case days <= 90:
		return BandWatch
	case days <= 180:
		return BandAttention
	default:
		return BandSafe
	}
}

// ExpiryText renders the human-facing expiry phrase: elapsed days for expired
// stock, remaining days otherwise.
func ExpiryText(days float64) string {
	if days < 0 {
		return fmt.Sprintf("EXPIRED %d days ago", int(math.Abs(days)))
	}
	return fmt.Sprintf("Expires in %d days", int(days))
}
