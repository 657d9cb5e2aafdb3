package services

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 làm tròn 2 chữ số thập phân (half away from zero)
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent tính amount × pct / 100, làm tròn 2 chữ số
func Percent(amount, pct float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(hundred).
		Round(2).
		InexactFloat64()
}

// Sum cộng dồn bằng decimal để tránh sai số float
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Sub a − b, làm tròn 2 chữ số
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
