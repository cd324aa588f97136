package calculations

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateLumpsum(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		wantError bool
		check     func(*testing.T, LumpsumResult)
	}{
		{
			name:      "five years at 12%",
			principal: 100000,
			rate:      12,
			years:     5,
			check: func(t *testing.T, result LumpsumResult) {
				if result.MaturityValue != 176234 {
					t.Errorf("expected maturity 176234, got %f", result.MaturityValue)
				}
				if result.WealthGained != 76234 {
					t.Errorf("expected wealth gained 76234, got %f", result.WealthGained)
				}
			},
		},
		{
			name:      "fractional years",
			principal: 100000,
			rate:      10,
			years:     0.5,
			check: func(t *testing.T, result LumpsumResult) {
				want := math.Round(100000 * math.Sqrt(1.1))
				if result.MaturityValue != want {
					t.Errorf("expected maturity %f, got %f", want, result.MaturityValue)
				}
			},
		},
		{
			name:      "zero return",
			principal: 25000,
			rate:      0,
			years:     3,
			check: func(t *testing.T, result LumpsumResult) {
				if result.MaturityValue != 25000 || result.WealthGained != 0 {
					t.Errorf("expected unchanged principal, got %+v", result)
				}
			},
		},
		{name: "zero principal", principal: 0, rate: 12, years: 5, wantError: true},
		{name: "zero years", principal: 100000, rate: 12, years: 0, wantError: true},
		{name: "total loss rate", principal: 100000, rate: -100, years: 5, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateLumpsum(tt.principal, tt.rate, tt.years)
			if (err != nil) != tt.wantError {
				t.Errorf("CalculateLumpsum() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if tt.check != nil && err == nil {
				tt.check(t, result)
			}
		})
	}
}

func TestCalculateCAGR(t *testing.T) {
	tests := []struct {
		name      string
		initial   float64
		final     float64
		years     float64
		want      float64
		wantError bool
	}{
		{name: "doubling in one year", initial: 100, final: 200, years: 1, want: 100},
		{name: "no growth", initial: 5000, final: 5000, years: 7, want: 0},
		{name: "total loss", initial: 5000, final: 0, years: 2, want: -100},
		{name: "zero initial", initial: 0, final: 100, years: 1, wantError: true},
		{name: "negative final", initial: 100, final: -1, years: 1, wantError: true},
		{name: "zero years", initial: 100, final: 200, years: 0, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCAGR(tt.initial, tt.final, tt.years)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("CalculateCAGR() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateCAGR() unexpected error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CalculateCAGR() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLumpsumCAGRRoundTrip(t *testing.T) {
	for _, rate := range []float64{4, 8.5, 12, 18} {
		for _, years := range []float64{3, 5, 10} {
			result, err := CalculateLumpsum(100000, rate, years)
			if err != nil {
				t.Fatalf("CalculateLumpsum() error = %v", err)
			}
			cagr, err := CalculateCAGR(100000, result.MaturityValue, years)
			if err != nil {
				t.Fatalf("CalculateCAGR() error = %v", err)
			}
			if math.Abs(cagr-rate) > 1e-3 {
				t.Errorf("round trip for rate %v over %v years gave %v", rate, years, cagr)
			}
		}
	}
}
