package urgency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRestockBoundaries(t *testing.T) {
	cases := []struct {
		days float64
		want RestockLevel
	}{
		{0, RestockUrgent},
		{7, RestockUrgent},
		{8, RestockHigh},
		{14, RestockHigh},
		{15, RestockMedium},
		{30, RestockMedium},
		{31, RestockLow},
		{365, RestockLow},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyRestock(tc.days), "days=%v", tc.days)
	}
}

func TestClassifyExpiryBoundaries(t *testing.T) {
	cases := []struct {
		days float64
		want ExpiryBand
	}{
		{-30, BandExpired},
		{-1, BandExpired},
		{-0.5, BandExpired},
		{0, BandDay},
		{1, BandDay},
		{2, BandWeek},
		{7, BandWeek},
		{8, BandMonth},
		{30, BandMonth},
		{31, BandCaution},
		{60, BandCaution},
		{61, BandWatch},
		{90, BandWatch},
		{91, BandAttention},
		{180, BandAttention},
		{181, BandSafe},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyExpiry(tc.days), "days=%v", tc.days)
	}
}

func TestExpiryTextShowsElapsedDaysForExpiredStock(t *testing.T) {
	assert.Equal(t, "EXPIRED 12 days ago", ExpiryText(-12))
	assert.Equal(t, "EXPIRED 1 days ago", ExpiryText(-1))
	assert.Equal(t, "Expires in 0 days", ExpiryText(0))
	assert.Equal(t, "Expires in 45 days", ExpiryText(45))
}
