package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

func pct(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateShares(t *testing.T) {
	tests := []struct {
		name     string
		percents []string
		wantErr  error
	}{
		{"exact 100", []string{"60", "40"}, nil},
		{"single share", []string{"100"}, nil},
		{"three way", []string{"33.3333", "33.3333", "33.3334"}, nil},
		{"just under tolerance", []string{"99.99"}, domain.ErrPercentSum},
		{"over 100", []string{"60.5", "40"}, domain.ErrPercentSum},
		{"empty set", nil, domain.ErrNoShares},
		{"negative percent", []string{"-10", "110"}, domain.ErrInvalidPercent},
		{"percent above 100", []string{"150", "-50"}, domain.ErrInvalidPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shares []domain.AllocationShare
			for _, p := range tt.percents {
				shares = append(shares, domain.AllocationShare{CompanyID: "co", Percent: pct(p)})
			}

			err := domain.ValidateShares(shares)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		percents []string
		want     []string
	}{
		{
			// the worked outflow example: no residual at these percentages
			name:     "negative 60/40",
			base:     "-123.45",
			percents: []string{"60", "40"},
			want:     []string{"-74.07", "-49.38"},
		},
		{
			name:     "rounding drift accepted",
			base:     "100.00",
			percents: []string{"33.33", "33.33", "33.34"},
			want:     []string{"33.33", "33.33", "33.34"},
		},
		{
			name:     "tiny share rounds to zero",
			base:     "0.10",
			percents: []string{"1", "99"},
			want:     []string{"0", "0.1"},
		},
		{
			name:     "half rounds away from zero",
			base:     "0.05",
			percents: []string{"50", "50"},
			want:     []string{"0.03", "0.03"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shares []domain.AllocationShare
			for _, p := range tt.percents {
				shares = append(shares, domain.AllocationShare{Percent: pct(p)})
			}

			amounts := domain.SplitAmount(pct(tt.base), shares)
			if len(amounts) != len(tt.want) {
				t.Fatalf("expected %d amounts, got %d", len(tt.want), len(amounts))
			}
			for i, w := range tt.want {
				if !amounts[i].Equal(pct(w)) {
					t.Errorf("amount[%d]: expected %s, got %s", i, w, amounts[i])
				}
			}
		})
	}
}

func TestSplitAmountDriftBound(t *testing.T) {
	// sum of rounded shares may differ from the base by at most (n-1) cents
	base := pct("100.01")
	shares := []domain.AllocationShare{
		{Percent: pct("33.3333")},
		{Percent: pct("33.3333")},
		{Percent: pct("33.3334")},
	}

	amounts := domain.SplitAmount(base, shares)

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}

	drift := sum.Sub(base).Abs()
	bound := decimal.NewFromFloat(0.02)
	if drift.GreaterThan(bound) {
		t.Fatalf("drift %s exceeds (n-1) cent bound", drift)
	}
}
