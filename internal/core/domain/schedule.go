package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/utils/accounting"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// ScheduleConfig holds the tunables of the schedule engine.
type ScheduleConfig struct {
	MinInterestRate   decimal.Decimal
	MaxInterestRate   decimal.Decimal
	MaxInstallments   int
	CurrencyPrecision int32
	PeriodMonths      map[Frequency]int
}

// DefaultScheduleConfig returns the standard bounds: rates 0..100, up to 999
// installments, cents precision.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		MinInterestRate:   decimal.Zero,
		MaxInterestRate:   decimal.NewFromInt(100),
		MaxInstallments:   999,
		CurrencyPrecision: 2,
		PeriodMonths: map[Frequency]int{
			FrequencyMonthly:   1,
			FrequencyQuarterly: 3,
			FrequencyBiannual:  6,
			FrequencyAnnual:    12,
		},
	}
}

// IsKnownFrequency reports whether f has an entry in the period table.
func (c ScheduleConfig) IsKnownFrequency(f Frequency) bool {
	_, ok := c.PeriodMonths[f]
	return ok
}

func (c ScheduleConfig) periodMonths(f Frequency) int {
	if months, ok := c.PeriodMonths[f]; ok {
		return months
	}
	return 1
}

// DueDate returns the due date of installment n: n periods of the frequency after start.
// An unknown frequency counts as monthly here; callers reject it before reaching this point.
func (c ScheduleConfig) DueDate(start time.Time, f Frequency, n int) time.Time {
	return dates.AddMonths(start, n*c.periodMonths(f))
}

// DueDate is ScheduleConfig.DueDate with the default period table.
func DueDate(start time.Time, f Frequency, n int) time.Time {
	return DefaultScheduleConfig().DueDate(start, f, n)
}

// ScheduleParams are the inputs of the schedule calculator.
type ScheduleParams struct {
	TotalAmount       decimal.Decimal
	TotalInstallments int
	// InterestRate is the annual rate in percent.
	InterestRate decimal.Decimal
	Method       AmortizationMethod
	Frequency    Frequency
	StartDate    time.Time
}

// ScheduleLine is one projected installment.
type ScheduleLine struct {
	Number           int
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
}

// ValidateScheduleParams checks the calculator inputs against the config bounds.
func ValidateScheduleParams(p ScheduleParams, cfg ScheduleConfig) error {
	if p.TotalInstallments < 1 {
		return fmt.Errorf("%w: total_installments must be at least 1", apperrors.ErrInvalidSchedule)
	}
	if cfg.MaxInstallments > 0 && p.TotalInstallments > cfg.MaxInstallments {
		return fmt.Errorf("%w: total_installments must be at most %d", apperrors.ErrInvalidSchedule, cfg.MaxInstallments)
	}
	if !p.TotalAmount.Round(cfg.CurrencyPrecision).IsPositive() {
		return fmt.Errorf("%w: total_amount must be greater than zero at %d decimal places",
			apperrors.ErrInvalidSchedule, cfg.CurrencyPrecision)
	}
	if p.InterestRate.LessThan(cfg.MinInterestRate) || p.InterestRate.GreaterThan(cfg.MaxInterestRate) {
		return fmt.Errorf("%w: interest_rate must be between %s and %s", apperrors.ErrInvalidSchedule, cfg.MinInterestRate, cfg.MaxInterestRate)
	}
	if !p.Method.IsValid() {
		return fmt.Errorf("%w: unknown amortization method %q", apperrors.ErrInvalidSchedule, p.Method)
	}
	if !cfg.IsKnownFrequency(p.Frequency) {
		return fmt.Errorf("%w: unknown frequency %q", apperrors.ErrInvalidSchedule, p.Frequency)
	}
	return nil
}

// GenerateSchedule projects the installment schedule. It is pure: identical inputs
// give identical output. The last line absorbs rounding residue, so principals sum
// to the total amount and the final remaining balance is zero. A french schedule
// whose rounded payment does not exceed the rounded first-period interest repays
// no principal until the last line.
func GenerateSchedule(p ScheduleParams, cfg ScheduleConfig) ([]ScheduleLine, error) {
	if err := ValidateScheduleParams(p, cfg); err != nil {
		return nil, err
	}

	places := cfg.CurrencyPrecision
	total := accounting.RoundMoney(p.TotalAmount, places)
	rate := accounting.MonthlyRate(p.InterestRate)
	n := p.TotalInstallments

	var principalFor func(i int, balance, interest decimal.Decimal) decimal.Decimal
	switch p.Method {
	case MethodLinear, MethodGerman:
		share := accounting.TruncateMoney(total.Div(decimal.NewFromInt(int64(n))), places)
		principalFor = func(int, decimal.Decimal, decimal.Decimal) decimal.Decimal { return share }
	case MethodFrench:
		payment := accounting.AnnuityPayment(total, rate, n, places)
		principalFor = func(_ int, _ decimal.Decimal, interest decimal.Decimal) decimal.Decimal {
			return payment.Sub(interest)
		}
	case MethodDecreasing:
		digits := decimal.NewFromInt(int64(n * (n + 1) / 2))
		principalFor = func(i int, _ decimal.Decimal, _ decimal.Decimal) decimal.Decimal {
			weight := decimal.NewFromInt(int64(n - i + 1))
			return accounting.TruncateMoney(total.Mul(weight).Div(digits), places)
		}
	}

	lines := make([]ScheduleLine, 0, n)
	balance := total
	for i := 1; i <= n; i++ {
		interest := accounting.RoundMoney(balance.Mul(rate), places)

		var principal decimal.Decimal
		if i == n {
			principal = balance
		} else {
			principal = principalFor(i, balance, interest)
			if principal.IsNegative() {
				principal = decimal.Zero
			}
			if principal.GreaterThan(balance) {
				principal = balance
			}
		}

		balance = balance.Sub(principal)
		lines = append(lines, ScheduleLine{
			Number:           i,
			DueDate:          cfg.DueDate(p.StartDate, p.Frequency, i),
			Principal:        principal,
			Interest:         interest,
			Total:            principal.Add(interest),
			RemainingBalance: balance,
		})
	}
	return lines, nil
}
