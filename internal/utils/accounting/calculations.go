package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ratePrecision is the number of decimal places kept for intermediate rate arithmetic.
const ratePrecision int32 = 20

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// RoundMoney rounds an amount half away from zero to the given number of places.
func RoundMoney(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// TruncateMoney drops digits beyond the given number of places.
// Used for per-installment shares so that n-1 shares never exceed the whole.
func TruncateMoney(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Truncate(places)
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
// 6 (percent) becomes 0.005.
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.DivRound(hundred, ratePrecision).DivRound(monthsPerYear, ratePrecision)
}

// CompoundFactor returns (1+rate)^periods, rounding each step to a fixed precision.
func CompoundFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	base := decimal.NewFromInt(1).Add(rate)
	factor := decimal.NewFromInt(1)
	for i := 0; i < periods; i++ {
		factor = factor.Mul(base).Round(ratePrecision)
	}
	return factor
}

// AnnuityPayment computes the constant payment that amortizes principal over the
// given number of periods at the periodic rate. A zero rate degenerates to an even split.
func AnnuityPayment(principal, rate decimal.Decimal, periods int, places int32) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return TruncateMoney(principal.DivRound(n, ratePrecision), places)
	}
	factor := CompoundFactor(rate, periods)
	numerator := principal.Mul(rate).Mul(factor)
	denominator := factor.Sub(decimal.NewFromInt(1))
	return RoundMoney(numerator.DivRound(denominator, ratePrecision), places)
}

// EntryLine is one side of a double-entry posting.
type EntryLine struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// ValidateEntryBalance checks that the lines of a posting balance to zero.
func ValidateEntryBalance(lines []EntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Account == "" {
			return fmt.Errorf("entry line is missing an account code")
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("entry line amounts must not be negative for account %s", line.Account)
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("entry lines do not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}
