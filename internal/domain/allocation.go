package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PercentTolerancePlaces is the precision at which share percentages must sum
// to exactly 100.
const PercentTolerancePlaces = 4

var hundred = decimal.NewFromInt(100)

// AllocationShare is one row of a percentage split: a target company, its
// share of the base amount, and optional per-company overrides. Absent
// overrides are filled in by the resolver.
type AllocationShare struct {
	CompanyID string
	Percent   decimal.Decimal

	SrcExpenseAccountID   string
	SrcIntercoARAccountID string
	SrcJournalID          string

	DstExpenseAccountID   string
	DstIntercoAPAccountID string
	DstJournalID          string
}

// ValidateShares checks the whole share set atomically before any posting is
// attempted. Percentages must sum to exactly 100 at 4 decimal places.
func ValidateShares(shares []AllocationShare) error {
	if len(shares) == 0 {
		return ErrNoShares
	}

	total := decimal.Zero
	for _, share := range shares {
		if share.Percent.IsNegative() || share.Percent.GreaterThan(hundred) {
			return fmt.Errorf("%w: got %s", ErrInvalidPercent, share.Percent)
		}
		total = total.Add(share.Percent)
	}

	if !total.Round(PercentTolerancePlaces).Equal(hundred) {
		return fmt.Errorf("%w: current total %s%%", ErrPercentSum, total)
	}

	return nil
}

// SplitAmount turns one signed base amount into per-share signed amounts,
// each rounded to 2 decimal places (half away from zero). The rounded amounts
// are returned as-is: residual rounding drift is accepted, never
// redistributed. Shares whose rounded amount is zero yield a zero value the
// caller skips.
func SplitAmount(base decimal.Decimal, shares []AllocationShare) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(shares))
	for i, share := range shares {
		amounts[i] = base.Mul(share.Percent).Div(hundred).Round(2)
	}
	return amounts
}
