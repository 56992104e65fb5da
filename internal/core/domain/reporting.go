package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// AmortizationSummary is a read-only rollup over a set of amortizations.
type AmortizationSummary struct {
	CompanyID           string
	AsOf                time.Time
	TotalCount          int
	CountByStatus       map[AmortizationStatus]int
	TotalAmount         decimal.Decimal
	PaidAmount          decimal.Decimal
	PendingAmount       decimal.Decimal
	TotalInterest       decimal.Decimal
	PaidInterest        decimal.Decimal
	OverdueAmount       decimal.Decimal
	OverdueInstallments int
}

// Summarize aggregates amortizations as of today. Statuses are evaluated against
// today without modifying the inputs.
func Summarize(companyID string, items []Amortization, today time.Time) AmortizationSummary {
	summary := AmortizationSummary{
		CompanyID:     companyID,
		AsOf:          dates.Day(today),
		CountByStatus: make(map[AmortizationStatus]int, len(statusDisplay)),
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		TotalInterest: decimal.Zero,
		PaidInterest:  decimal.Zero,
		OverdueAmount: decimal.Zero,
	}
	for status := range statusDisplay {
		summary.CountByStatus[status] = 0
	}

	for i := range items {
		a := &items[i]
		summary.TotalCount++
		summary.CountByStatus[a.StatusAsOf(today)]++
		summary.TotalAmount = summary.TotalAmount.Add(a.TotalAmount)
		summary.PaidAmount = summary.PaidAmount.Add(a.PaidAmount)
		summary.PendingAmount = summary.PendingAmount.Add(a.PendingAmount)
		summary.TotalInterest = summary.TotalInterest.Add(a.TotalInterest)
		summary.PaidInterest = summary.PaidInterest.Add(a.PaidInterest)

		if a.Status == StatusCancelled {
			continue
		}
		for _, inst := range a.Installments {
			if inst.IsPastDue(today) {
				summary.OverdueInstallments++
				summary.OverdueAmount = summary.OverdueAmount.Add(inst.Outstanding())
			}
		}
	}
	return summary
}

// DefaultAgingPeriods are the bucket upper bounds in days past due.
var DefaultAgingPeriods = []int{30, 60, 90, 120}

// AgingBucket holds outstanding amounts whose days past due fall in [MinDays, MaxDays].
// MaxDays is -1 for the open-ended last bucket.
type AgingBucket struct {
	Label            string
	MinDays          int
	MaxDays          int
	Amount           decimal.Decimal
	InstallmentCount int
}

// AgingReport buckets outstanding installment amounts by days past due.
type AgingReport struct {
	CompanyID string
	AsOf      time.Time
	Buckets   []AgingBucket
	Total     decimal.Decimal
}

// BuildAgingReport groups the outstanding amount of every unsettled installment of
// non-cancelled amortizations. Installments not yet due land in "current".
func BuildAgingReport(companyID string, items []Amortization, today time.Time, periods []int) (AgingReport, error) {
	if len(periods) == 0 {
		periods = DefaultAgingPeriods
	}
	prev := 0
	for _, p := range periods {
		if p <= prev {
			return AgingReport{}, fmt.Errorf("%w: aging periods must be positive and strictly increasing", apperrors.ErrValidation)
		}
		prev = p
	}

	buckets := make([]AgingBucket, 0, len(periods)+2)
	buckets = append(buckets, AgingBucket{Label: "current", MinDays: 0, MaxDays: 0, Amount: decimal.Zero})
	lower := 1
	for _, p := range periods {
		buckets = append(buckets, AgingBucket{Label: fmt.Sprintf("%d-%d", lower, p), MinDays: lower, MaxDays: p, Amount: decimal.Zero})
		lower = p + 1
	}
	buckets = append(buckets, AgingBucket{Label: fmt.Sprintf("%d+", periods[len(periods)-1]), MinDays: lower, MaxDays: -1, Amount: decimal.Zero})

	report := AgingReport{CompanyID: companyID, AsOf: dates.Day(today), Total: decimal.Zero}
	for i := range items {
		a := &items[i]
		if a.Status == StatusCancelled {
			continue
		}
		for _, inst := range a.Installments {
			if inst.IsPaid() {
				continue
			}
			outstanding := inst.Outstanding()
			idx := bucketIndex(buckets, inst.DaysOverdue(today))
			buckets[idx].Amount = buckets[idx].Amount.Add(outstanding)
			buckets[idx].InstallmentCount++
			report.Total = report.Total.Add(outstanding)
		}
	}
	report.Buckets = buckets
	return report, nil
}

func bucketIndex(buckets []AgingBucket, days int) int {
	for i, b := range buckets {
		if days >= b.MinDays && (b.MaxDays < 0 || days <= b.MaxDays) {
			return i
		}
	}
	return len(buckets) - 1
}
