package calculations

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		tenureMonths      int
		wantError         error
		checkResult       func(*testing.T, EMIResult)
	}{
		{
			name:              "basic loan",
			principal:         100000,
			annualRatePercent: 10,
			tenureMonths:      12,
			checkResult: func(t *testing.T, result EMIResult) {
				if result.EMI <= 0 {
					t.Error("emi should be positive")
				}
				if result.TotalAmount <= result.EMI {
					t.Error("total amount should be greater than emi")
				}
				if result.TotalInterest <= 0 {
					t.Error("total interest should be positive")
				}
				if result.EMI != 8792 {
					t.Errorf("expected emi 8792, got %f", result.EMI)
				}
				if result.TotalAmount != 105499 {
					t.Errorf("expected total amount 105499, got %f", result.TotalAmount)
				}
				if result.TotalInterest != 5499 {
					t.Errorf("expected total interest 5499, got %f", result.TotalInterest)
				}
			},
		},
		{
			name:              "home loan defaults",
			principal:         1000000,
			annualRatePercent: 8.5,
			tenureMonths:      240,
			checkResult: func(t *testing.T, result EMIResult) {
				if result.EMI != 8678 {
					t.Errorf("expected emi 8678, got %f", result.EMI)
				}
				if result.TotalInterest != result.TotalAmount-1000000 {
					t.Errorf("total interest %f does not match total amount %f", result.TotalInterest, result.TotalAmount)
				}
			},
		},
		{
			name:              "zero rate",
			principal:         100000,
			annualRatePercent: 0,
			tenureMonths:      10,
			checkResult: func(t *testing.T, result EMIResult) {
				if result.EMI != 10000 {
					t.Errorf("expected emi 10000, got %f", result.EMI)
				}
				if result.TotalAmount != 100000 {
					t.Errorf("expected total amount 100000, got %f", result.TotalAmount)
				}
				if result.TotalInterest != 0 {
					t.Errorf("expected total interest 0, got %f", result.TotalInterest)
				}
			},
		},
		{
			name:              "zero principal",
			principal:         0,
			annualRatePercent: 10,
			tenureMonths:      12,
			checkResult: func(t *testing.T, result EMIResult) {
				if result != (EMIResult{}) {
					t.Errorf("expected all zeros, got %+v", result)
				}
			},
		},
		{
			name:              "negative principal",
			principal:         -1,
			annualRatePercent: 10,
			tenureMonths:      12,
			wantError:         ErrInvalidInput,
		},
		{
			name:              "negative rate",
			principal:         100000,
			annualRatePercent: -1,
			tenureMonths:      12,
			wantError:         ErrInvalidInput,
		},
		{
			name:              "zero tenure",
			principal:         100000,
			annualRatePercent: 10,
			tenureMonths:      0,
			wantError:         ErrInvalidInput,
		},
		{
			name:              "NaN rate",
			principal:         100000,
			annualRatePercent: math.NaN(),
			tenureMonths:      12,
			wantError:         ErrInvalidInput,
		},
		{
			name:              "overflowing principal",
			principal:         math.MaxFloat64,
			annualRatePercent: 10,
			tenureMonths:      12,
			wantError:         ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateEMI(tt.principal, tt.annualRatePercent, tt.tenureMonths)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("CalculateEMI() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateEMI() unexpected error = %v", err)
			}
			if tt.checkResult != nil {
				tt.checkResult(t, result)
			}
		})
	}
}

func TestCalculateEMIProperties(t *testing.T) {
	principals := []float64{1000, 50000, 250000, 1000000, 75000000}
	rates := []float64{0, 0.5, 7.25, 12, 24, 50}
	tenures := []int{1, 6, 12, 60, 240, 480}

	for _, p := range principals {
		for _, r := range rates {
			for _, n := range tenures {
				result, err := CalculateEMI(p, r, n)
				if err != nil {
					t.Fatalf("CalculateEMI(%v, %v, %d) error = %v", p, r, n, err)
				}
				if result.EMI <= 0 {
					t.Errorf("CalculateEMI(%v, %v, %d): emi should be positive", p, r, n)
				}
				if result.TotalAmount < p {
					t.Errorf("CalculateEMI(%v, %v, %d): total amount %f below principal", p, r, n, result.TotalAmount)
				}
				if result.TotalInterest < 0 {
					t.Errorf("CalculateEMI(%v, %v, %d): negative interest %f", p, r, n, result.TotalInterest)
				}
				if result.TotalInterest != result.TotalAmount-p {
					t.Errorf("CalculateEMI(%v, %v, %d): interest %f != total %f - principal", p, r, n, result.TotalInterest, result.TotalAmount)
				}
				// total amount отличается от emi*n только на ошибку округления emi
				if diff := math.Abs(result.TotalAmount - result.EMI*float64(n)); diff > 0.5*float64(n)+0.5 {
					t.Errorf("CalculateEMI(%v, %v, %d): total amount %f too far from emi*n", p, r, n, result.TotalAmount)
				}
			}
		}
	}
}

func TestAmortizationSchedule(t *testing.T) {
	emi, err := CalculateEMI(100000, 10, 12)
	if err != nil {
		t.Fatalf("CalculateEMI() error = %v", err)
	}

	schedule, err := AmortizationSchedule(100000, 10, 12, emi.EMI)
	if err != nil {
		t.Fatalf("AmortizationSchedule() error = %v", err)
	}

	if len(schedule) != 12 {
		t.Fatalf("expected 12 months, got %d", len(schedule))
	}

	first := schedule[0]
	if first.Month != 1 || first.EMI != 8792 || first.Interest != 833 || first.Principal != 7959 || first.Balance != 92041 {
		t.Errorf("unexpected first entry: %+v", first)
	}

	last := schedule[len(schedule)-1]
	if last.Balance != 0 {
		t.Errorf("expected remaining balance 0, got %f", last.Balance)
	}
	if last.EMI != 8787 {
		t.Errorf("expected closing payment 8787, got %f", last.EMI)
	}

	sumPrincipal := 0.0
	for i, entry := range schedule {
		if entry.Month != i+1 {
			t.Errorf("entry %d has month %d", i, entry.Month)
		}
		sumPrincipal += entry.Principal
	}
	if sumPrincipal != 100000 {
		t.Errorf("expected principal portions to sum to 100000, got %f", sumPrincipal)
	}
}

func TestAmortizationScheduleInvariants(t *testing.T) {
	loans := []struct {
		principal float64
		rate      float64
		months    int
	}{
		{principal: 1000000, rate: 8.5, months: 240},
		{principal: 500000, rate: 0, months: 36},
		{principal: 75000, rate: 18, months: 7},
		{principal: 10000000, rate: 24, months: 480},
		{principal: 1, rate: 10, months: 1},
	}

	for _, loan := range loans {
		emi, err := CalculateEMI(loan.principal, loan.rate, loan.months)
		if err != nil {
			t.Fatalf("CalculateEMI(%+v) error = %v", loan, err)
		}
		schedule, err := AmortizationSchedule(loan.principal, loan.rate, loan.months, emi.EMI)
		if err != nil {
			t.Fatalf("AmortizationSchedule(%+v) error = %v", loan, err)
		}
		if len(schedule) != loan.months {
			t.Errorf("%+v: expected %d entries, got %d", loan, loan.months, len(schedule))
		}

		prev := loan.principal
		sumPrincipal := 0.0
		for _, entry := range schedule {
			if entry.Balance > prev {
				t.Errorf("%+v: balance increased at month %d: %f > %f", loan, entry.Month, entry.Balance, prev)
			}
			if entry.Balance < 0 {
				t.Errorf("%+v: negative balance at month %d", loan, entry.Month)
			}
			prev = entry.Balance
			sumPrincipal += entry.Principal
		}
		if schedule[len(schedule)-1].Balance != 0 {
			t.Errorf("%+v: final balance %f, want 0", loan, schedule[len(schedule)-1].Balance)
		}
		if drift := math.Abs(sumPrincipal - loan.principal); drift > 0.5*float64(loan.months)+0.5 {
			t.Errorf("%+v: principal portions drift by %f", loan, drift)
		}
	}
}

func TestAmortizationScheduleEdgeCases(t *testing.T) {
	t.Run("emi below first interest", func(t *testing.T) {
		_, err := AmortizationSchedule(100000, 12, 12, 500)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rounded emi equal to first interest", func(t *testing.T) {
		schedule, err := AmortizationSchedule(1000, 48, 480, 40)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if schedule[0].Principal != 0 || schedule[0].Balance != 1000 {
			t.Errorf("expected interest-only first month, got %+v", schedule[0])
		}
		last := schedule[len(schedule)-1]
		if last.EMI != 1040 || last.Balance != 0 {
			t.Errorf("expected closing payment 1040 with zero balance, got %+v", last)
		}
	})

	t.Run("emi within rounding tolerance of interest", func(t *testing.T) {
		schedule, err := AmortizationSchedule(1000, 12, 6, 9.6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if last := schedule[len(schedule)-1]; last.Balance != 0 {
			t.Errorf("expected final balance 0, got %f", last.Balance)
		}
	})

	t.Run("overpaying emi pays off early", func(t *testing.T) {
		schedule, err := AmortizationSchedule(30000, 0, 6, 10000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(schedule) != 6 {
			t.Fatalf("expected 6 entries, got %d", len(schedule))
		}
		if schedule[2].Balance != 0 {
			t.Errorf("expected loan closed in month 3, balance %f", schedule[2].Balance)
		}
		for _, entry := range schedule[3:] {
			if entry.EMI != 0 || entry.Principal != 0 || entry.Balance != 0 {
				t.Errorf("expected empty entry after payoff, got %+v", entry)
			}
		}
	})

	t.Run("zero principal", func(t *testing.T) {
		schedule, err := AmortizationSchedule(0, 10, 3, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, entry := range schedule {
			if entry != (AmortizationEntry{Month: entry.Month}) {
				t.Errorf("expected zero entry, got %+v", entry)
			}
		}
	})

	t.Run("negative emi", func(t *testing.T) {
		if _, err := AmortizationSchedule(1000, 10, 3, -5); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		min, max  float64
	}{
		{name: "long high rate loan", principal: 1000, rate: 48, months: 480, min: 40, max: 40.001},
		{name: "tiny zero rate loan", principal: 100, rate: 0, months: 480, min: 0.2083, max: 0.2084},
		{name: "one rupee loan", principal: 1, rate: 10, months: 3, min: 0.338, max: 0.339},
		{name: "zero principal", principal: 0, rate: 10, months: 12, min: 0, max: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emi, err := MonthlyPayment(tt.principal, tt.rate, tt.months)
			if err != nil {
				t.Fatalf("MonthlyPayment() error = %v", err)
			}
			if emi < tt.min || emi > tt.max {
				t.Errorf("MonthlyPayment() = %f, want in [%f; %f]", emi, tt.min, tt.max)
			}

			schedule, err := AmortizationSchedule(tt.principal, tt.rate, tt.months, emi)
			if err != nil {
				t.Fatalf("AmortizationSchedule() error = %v", err)
			}
			if last := schedule[len(schedule)-1]; last.Balance != 0 {
				t.Errorf("expected final balance 0, got %f", last.Balance)
			}
		})
	}
}

// Округление до целых рублей обнуляет платёж по очень маленьким кредитам.
func TestCalculateEMIRoundsSmallLoanToZero(t *testing.T) {
	result, err := CalculateEMI(1, 0, 3)
	if err != nil {
		t.Fatalf("CalculateEMI() error = %v", err)
	}
	want := EMIResult{EMI: 0, TotalAmount: 1, TotalInterest: 0}
	if result != want {
		t.Errorf("CalculateEMI(1, 0, 3) = %+v, want %+v", result, want)
	}
}
