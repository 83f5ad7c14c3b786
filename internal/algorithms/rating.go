package algorithms

import "github.com/shopspring/decimal"

// RatingPlaces - количество знаков после запятой у рейтинга
const RatingPlaces = 2

// NextRating folds one new star value into a running mean.
// current must be the mean of the previous count-1 starred reviews;
// count includes the review being added.
func NextRating(current decimal.Decimal, count int64, stars int) decimal.Decimal {
	s := decimal.NewFromInt(int64(stars))
	if count <= 1 {
		return RoundHalfUp(s)
	}

	n := decimal.NewFromInt(count)
	total := current.Mul(n.Sub(decimal.NewFromInt(1))).Add(s)
	return RoundHalfUp(total.Div(n))
}

// RoundHalfUp rounds a non-negative value to RatingPlaces, ties away from zero.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatingPlaces)
}

// Mean - точное среднее набора оценок, используется для сверки
func Mean(stars []int) decimal.Decimal {
	if len(stars) == 0 {
		return decimal.Zero
	}
	sum := int64(0)
	for _, s := range stars {
		sum += int64(s)
	}
	return RoundHalfUp(decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(stars)))))
}
