package algorithms

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNextRating_Progression(t *testing.T) {
	rating := decimal.Zero
	var got []string
	for i, s := range []int{4, 2, 5} {
		rating = NextRating(rating, int64(i+1), s)
		got = append(got, rating.StringFixed(2))
	}

	assert.Equal(t, []string{"4.00", "3.00", "3.67"}, got)
}

func TestNextRating_FirstReviewIgnoresStoredValue(t *testing.T) {
	rating := NextRating(decimal.RequireFromString("3.50"), 1, 2)
	assert.Equal(t, "2.00", rating.StringFixed(2))
}

func TestNextRating_HalfUp(t *testing.T) {
	// (2.33*3 + 5) / 4 = 2.9975
	assert.Equal(t, "3.00", NextRating(decimal.RequireFromString("2.33"), 4, 5).StringFixed(2))
	// (1.5*1 + 1) / 2 = 1.25 stays exact
	assert.Equal(t, "1.25", NextRating(decimal.RequireFromString("1.5"), 2, 1).StringFixed(2))
	// (4.25*1 + 5) / 2 = 4.625 rounds up
	assert.Equal(t, "4.63", NextRating(decimal.RequireFromString("4.25"), 2, 5).StringFixed(2))
}

func TestNextRating_MatchesMean(t *testing.T) {
	sequences := [][]int{
		{5},
		{1, 5},
		{5, 5, 5, 5},
		{1, 2, 3, 4, 5},
		{3, 3, 4},
		{1, 5, 1, 5},
		{2, 4, 4, 2},
	}

	for _, seq := range sequences {
		rating := decimal.Zero
		for i, s := range seq {
			rating = NextRating(rating, int64(i+1), s)
		}
		assert.Equal(t, Mean(seq).StringFixed(2), rating.StringFixed(2), "sequence %v", seq)
	}
}

func TestMean_Empty(t *testing.T) {
	assert.True(t, Mean(nil).Equal(decimal.Zero))
}
