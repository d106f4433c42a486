package calculator

import "github.com/shopspring/decimal"

// ClampPeople keeps the head count of a group split at one or more.
func ClampPeople(people int) int {
	if people < 1 {
		return 1
	}
	return people
}

// PerPersonShare splits total evenly, rounded to cents.
// people below one is treated as one.
func PerPersonShare(total decimal.Decimal, people int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(ClampPeople(people)))).Round(2)
}

// Percent returns part/whole*100, and 0 when whole is not positive.
func Percent(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
