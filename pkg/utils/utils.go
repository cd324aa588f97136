package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCurrency округляет сумму до целой денежной единицы.
// Половина округляется от нуля: 2.5 -> 3, -2.5 -> -3.
func RoundCurrency(value float64) float64 {
	return roundPlaces(value, 0)
}

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return roundPlaces(value, 2)
}

func roundPlaces(value float64, places int32) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// MulInt точно перемножает сумму на целое число периодов
func MulInt(value float64, n int) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Mul(decimal.NewFromInt(int64(n))).InexactFloat64()
}

// SubExact вычитает суммы без накопления двоичной погрешности
func SubExact(a, b float64) float64 {
	if !IsFinite(a) || !IsFinite(b) {
		return a - b
	}
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// AddExact складывает суммы без накопления двоичной погрешности
func AddExact(a, b float64) float64 {
	if !IsFinite(a) || !IsFinite(b) {
		return a + b
	}
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}
