package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol символ валюты по умолчанию
const CurrencySymbol = "₹"

const (
	thousand = 1e3
	lakh     = 1e5
	crore    = 1e7
)

var indianLocale = language.MustParse("en-IN")

// FormatCurrency форматирует сумму с индийской группировкой разрядов (12,34,567)
func FormatCurrency(amount float64, symbol string, decimals int) string {
	if !IsFinite(amount) {
		return symbol + "—"
	}
	rounded := decimal.NewFromFloat(amount).Round(int32(decimals)).InexactFloat64()
	p := message.NewPrinter(indianLocale)
	return symbol + p.Sprint(number.Decimal(rounded,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// FormatLargeNumber сокращает крупные суммы: K (тысячи), L (лакхи), Cr (кроры)
func FormatLargeNumber(num float64) string {
	switch {
	case num >= crore:
		return fmt.Sprintf("%s%sCr", CurrencySymbol, decimal.NewFromFloat(num/crore).StringFixed(2))
	case num >= lakh:
		return fmt.Sprintf("%s%sL", CurrencySymbol, decimal.NewFromFloat(num/lakh).StringFixed(2))
	case num >= thousand:
		return fmt.Sprintf("%s%sK", CurrencySymbol, decimal.NewFromFloat(num/thousand).StringFixed(1))
	}
	return FormatCurrency(num, CurrencySymbol, 0)
}

// FormatTenure переводит срок в месяцах в строку вида "2 years 3 months"
func FormatTenure(months int) string {
	years := months / 12
	rest := months % 12

	switch {
	case years == 0:
		return plural(rest, "month")
	case rest == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(rest, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Percentage возвращает долю value от total в процентах (0 при нулевом total)
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}
