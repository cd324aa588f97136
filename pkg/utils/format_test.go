package utils

import "testing"

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "crore threshold", input: 10000000, want: "₹1.00Cr"},
		{name: "crores", input: 25500000, want: "₹2.55Cr"},
		{name: "lakh threshold", input: 100000, want: "₹1.00L"},
		{name: "lakhs", input: 1160000, want: "₹11.60L"},
		{name: "just below crore", input: 9999999, want: "₹100.00L"},
		{name: "thousand threshold", input: 1000, want: "₹1.0K"},
		{name: "thousands", input: 45250, want: "₹45.3K"},
		{name: "below thousand", input: 999, want: "₹999"},
		{name: "zero", input: 0, want: "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLargeNumber(tt.input); got != tt.want {
				t.Errorf("FormatLargeNumber(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		decimals int
		want     string
	}{
		{name: "small amount", amount: 500, decimals: 0, want: "₹500"},
		{name: "indian grouping", amount: 1234567, decimals: 0, want: "₹12,34,567"},
		{name: "rounded to whole units", amount: 999.5, decimals: 0, want: "₹1,000"},
		{name: "two decimals", amount: 1234.5, decimals: 2, want: "₹1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount, CurrencySymbol, tt.decimals); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatTenure(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{months: 1, want: "1 month"},
		{months: 5, want: "5 months"},
		{months: 12, want: "1 year"},
		{months: 240, want: "20 years"},
		{months: 13, want: "1 year 1 month"},
		{months: 30, want: "2 years 6 months"},
	}

	for _, tt := range tests {
		if got := FormatTenure(tt.months); got != tt.want {
			t.Errorf("FormatTenure(%d) = %q, want %q", tt.months, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(25, 200); got != 12.5 {
		t.Errorf("Percentage(25, 200) = %v, want 12.5", got)
	}
	if got := Percentage(25, 0); got != 0 {
		t.Errorf("Percentage(25, 0) = %v, want 0", got)
	}
}
