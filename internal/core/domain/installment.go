package domain

import (
	"time"

	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// Installment is one scheduled obligation of an amortization.
type Installment struct {
	ID                string
	AmortizationID    string
	Number            int
	DueDate           time.Time
	PrincipalAmount   decimal.Decimal
	InterestAmount    decimal.Decimal
	TotalAmount       decimal.Decimal
	RemainingBalance  decimal.Decimal
	PaidAmount        decimal.Decimal
	PaymentDate       *time.Time
	Status            InstallmentStatus
	LateFee           decimal.Decimal
	Notes             string
	SAPPaymentEntry   *int
	ExternalReference *string
	AuditFields
}

// DeriveInstallmentStatus applies the status rule: fully paid wins, then partial,
// then overdue when nothing was paid and the due date has passed.
func DeriveInstallmentStatus(paid, total decimal.Decimal, due, today time.Time) InstallmentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return InstallmentPaid
	case paid.IsPositive():
		return InstallmentPartial
	case dates.Day(due).Before(dates.Day(today)):
		return InstallmentOverdue
	default:
		return InstallmentPending
	}
}

// RefreshStatus re-evaluates the status against today.
func (i *Installment) RefreshStatus(today time.Time) {
	i.Status = DeriveInstallmentStatus(i.PaidAmount, i.TotalAmount, i.DueDate, today)
}

// Outstanding is what is still owed on the installment, late fee included.
func (i Installment) Outstanding() decimal.Decimal {
	out := i.TotalAmount.Add(i.LateFee).Sub(i.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// IsPaid reports whether the installment is settled.
func (i Installment) IsPaid() bool {
	return i.PaidAmount.GreaterThanOrEqual(i.TotalAmount)
}

// IsPastDue reports whether the installment is unsettled past its due date, partial payments included.
func (i Installment) IsPastDue(today time.Time) bool {
	return !i.IsPaid() && dates.Day(i.DueDate).Before(dates.Day(today))
}

// DaysOverdue is the number of days past due for an unsettled installment, 0 otherwise.
func (i Installment) DaysOverdue(today time.Time) int {
	if !i.IsPastDue(today) {
		return 0
	}
	return dates.DaysBetween(i.DueDate, today)
}

// principalCovered returns how much of the principal a cumulative paid amount covers.
// Cash settles interest first, then principal, then any late fee.
func (i Installment) principalCovered(paid decimal.Decimal) decimal.Decimal {
	afterInterest := paid.Sub(i.InterestAmount)
	if !afterInterest.IsPositive() {
		return decimal.Zero
	}
	if afterInterest.GreaterThan(i.PrincipalAmount) {
		return i.PrincipalAmount
	}
	return afterInterest
}
