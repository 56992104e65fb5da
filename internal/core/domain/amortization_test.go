package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = domain.DefaultScheduleConfig()

func newParams() domain.NewAmortizationParams {
	return domain.NewAmortizationParams{
		CompanyID:         "company-1",
		EntityID:          "entity-1",
		Reference:         "AM-2024-001",
		Description:       "Equipment loan",
		TotalAmount:       d("12000"),
		TotalInstallments: 12,
		InterestRate:      decimal.Zero,
		Method:            domain.MethodLinear,
		Frequency:         domain.FrequencyMonthly,
		StartDate:         date(2024, time.January, 1),
		SendNotifications: true,
		CreatedBy:         "user-1",
		Now:               date(2024, time.January, 1),
	}
}

func mustCreate(t *testing.T, p domain.NewAmortizationParams) *domain.Amortization {
	t.Helper()
	a, err := domain.NewAmortization(p, cfg, true)
	require.NoError(t, err)
	return a
}

func pay(a *domain.Amortization, number int, amount string, now time.Time, opts ...domain.StatusOption) (domain.Installment, error) {
	return a.ApplyPayment(cfg, domain.PaymentInput{
		InstallmentNumber: number,
		Amount:            d(amount),
		PaymentDate:       now,
		UserID:            "user-2",
		Now:               now,
	}, opts...)
}

func assertBalanced(t *testing.T, a *domain.Amortization) {
	t.Helper()
	assert.True(t, a.PaidAmount.Add(a.PendingAmount).Equal(a.TotalAmount),
		"paid %s + pending %s != total %s", a.PaidAmount, a.PendingAmount, a.TotalAmount)
}

func TestNewAmortization_WithSchedule(t *testing.T) {
	a := mustCreate(t, newParams())

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.StatusActive, a.Status)
	assert.True(t, a.IsActive)
	require.Len(t, a.Installments, 12)
	assert.True(t, a.InstallmentAmount.Equal(d("1000")))
	assert.True(t, a.PendingAmount.Equal(d("12000")))
	assert.True(t, a.PaidAmount.IsZero())
	assert.True(t, a.TotalInterest.IsZero())
	assert.Equal(t, 0, a.PaidInstallments)
	assert.Equal(t, date(2025, time.January, 1), a.EndDate)
	require.NotNil(t, a.NextDueDate)
	assert.Equal(t, date(2024, time.February, 1), *a.NextDueDate)
	for i, inst := range a.Installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, a.ID, inst.AmortizationID)
		assert.Equal(t, domain.InstallmentPending, inst.Status)
		assert.NotEmpty(t, inst.ID)
	}
}

func TestNewAmortization_TotalInterestMatchesSchedule(t *testing.T) {
	p := newParams()
	p.TotalAmount = d("10000")
	p.TotalInstallments = 10
	p.InterestRate = d("6")
	p.Method = domain.MethodFrench
	a := mustCreate(t, p)

	sum := decimal.Zero
	for _, inst := range a.Installments {
		sum = sum.Add(inst.InterestAmount)
	}
	assert.True(t, a.TotalInterest.Equal(sum))
	assert.True(t, a.InstallmentAmount.Equal(d("1027.71")))
}

func TestNewAmortization_WithoutSchedule(t *testing.T) {
	p := newParams()
	p.TotalAmount = d("100")
	p.TotalInstallments = 3
	a, err := domain.NewAmortization(p, cfg, false)
	require.NoError(t, err)

	assert.Empty(t, a.Installments)
	assert.True(t, a.InstallmentAmount.Equal(d("33.33")))
	assert.Equal(t, date(2024, time.April, 1), a.EndDate)
	require.NotNil(t, a.NextDueDate)
	assert.Equal(t, date(2024, time.February, 1), *a.NextDueDate)
	assert.True(t, a.PendingAmount.Equal(d("100")))
}

func TestNewAmortization_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.NewAmortizationParams)
		wantErr error
	}{
		{name: "blank reference", mutate: func(p *domain.NewAmortizationParams) { p.Reference = "   " }, wantErr: apperrors.ErrValidation},
		{name: "long reference", mutate: func(p *domain.NewAmortizationParams) { p.Reference = strings.Repeat("r", 101) }, wantErr: apperrors.ErrValidation},
		{name: "long description", mutate: func(p *domain.NewAmortizationParams) { p.Description = strings.Repeat("d", 1001) }, wantErr: apperrors.ErrValidation},
		{name: "long doc type", mutate: func(p *domain.NewAmortizationParams) { p.External.DocType = "INVOICE_LONG" }, wantErr: apperrors.ErrValidation},
		{name: "missing entity", mutate: func(p *domain.NewAmortizationParams) { p.EntityID = "" }, wantErr: apperrors.ErrValidation},
		{name: "zero amount", mutate: func(p *domain.NewAmortizationParams) { p.TotalAmount = decimal.Zero }, wantErr: apperrors.ErrInvalidSchedule},
		{name: "unknown method", mutate: func(p *domain.NewAmortizationParams) { p.Method = "bullet" }, wantErr: apperrors.ErrInvalidSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParams()
			tt.mutate(&p)
			for _, generate := range []bool{true, false} {
				a, err := domain.NewAmortization(p, cfg, generate)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
			}
		})
	}
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	p := newParams()
	p.TotalAmount = d("8000")
	p.TotalInstallments = 10
	a := mustCreate(t, p)
	require.True(t, a.Installments[0].TotalAmount.Equal(d("800")))

	_, err := pay(a, 1, "1000", date(2024, time.February, 1))

	assert.ErrorIs(t, err, apperrors.ErrOverpayment)
	assert.True(t, a.Installments[0].PaidAmount.IsZero())
	assert.True(t, a.PaidAmount.IsZero())
	assert.Nil(t, a.Installments[0].PaymentDate)
}

func TestApplyPayment_InvalidInputs(t *testing.T) {
	a := mustCreate(t, newParams())

	_, err := pay(a, 1, "0", date(2024, time.February, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayment)

	_, err = pay(a, 1, "-10", date(2024, time.February, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayment)

	_, err = pay(a, 13, "10", date(2024, time.February, 1))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	cancelled := domain.StatusCancelled
	require.NoError(t, a.ApplyUpdate(cfg, domain.AmortizationUpdate{Status: &cancelled}, "admin", date(2024, time.January, 2)))
	_, err = pay(a, 1, "10", date(2024, time.February, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayment)
}

func TestApplyPayment_AmountLimits(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		amount  string
		wantErr error
	}{
		{name: "sub-cent amount", amount: "0.001", wantErr: apperrors.ErrInvalidPayment},
		{name: "fractional cent", amount: "10.005", wantErr: apperrors.ErrInvalidPayment},
		{name: "half cent over outstanding", amount: "1000.005", wantErr: apperrors.ErrInvalidPayment},
		{name: "one cent over outstanding", amount: "1000.01", wantErr: apperrors.ErrOverpayment},
		{name: "settled installment", first: "1000", amount: "0.01", wantErr: apperrors.ErrOverpayment},
		{name: "settled installment sub-cent", first: "1000", amount: "0.004", wantErr: apperrors.ErrInvalidPayment},
		{name: "exact outstanding", amount: "1000.00"},
		{name: "trailing zeros", amount: "250.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCreate(t, newParams())
			paidOn := date(2024, time.January, 20)
			if tt.first != "" {
				_, err := pay(a, 1, tt.first, paidOn)
				require.NoError(t, err)
			}
			paidBefore := a.Installments[0].PaidAmount

			_, err := pay(a, 1, tt.amount, paidOn)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, a.Installments[0].PaidAmount.Equal(paidBefore))
				return
			}
			require.NoError(t, err)
			assert.True(t, a.Installments[0].PaidAmount.Equal(d(tt.amount)))
			assertBalanced(t, a)
		})
	}
}

func TestApplyPayment_PartialThenFull(t *testing.T) {
	a := mustCreate(t, newParams())
	paidOn := date(2024, time.January, 20)

	inst, err := pay(a, 1, "400", paidOn)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentPartial, inst.Status)
	require.NotNil(t, inst.PaymentDate)
	assert.Equal(t, paidOn, *inst.PaymentDate)
	assert.Equal(t, 0, a.PaidInstallments)
	assert.True(t, a.PaidAmount.Equal(d("400")))
	assert.Equal(t, date(2024, time.February, 1), *a.NextDueDate)
	assertBalanced(t, a)

	inst, err = pay(a, 1, "600", paidOn)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentPaid, inst.Status)
	assert.Equal(t, 1, a.PaidInstallments)
	assert.Equal(t, date(2024, time.March, 1), *a.NextDueDate)
	assert.Equal(t, domain.StatusActive, a.Status)
	assertBalanced(t, a)

	_, err = pay(a, 1, "0.01", paidOn)
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)
}

func TestApplyPayment_AllocatesInterestBeforePrincipal(t *testing.T) {
	p := newParams()
	p.TotalAmount = d("10000")
	p.TotalInstallments = 10
	p.InterestRate = d("6")
	p.Method = domain.MethodFrench
	a := mustCreate(t, p)

	_, err := pay(a, 1, "30", date(2024, time.January, 10))
	require.NoError(t, err)
	assert.True(t, a.PaidAmount.IsZero())
	assert.True(t, a.PaidInterest.Equal(d("30")))
	assertBalanced(t, a)

	_, err = pay(a, 1, "997.71", date(2024, time.January, 10))
	require.NoError(t, err)
	assert.True(t, a.PaidAmount.Equal(d("977.71")))
	assert.True(t, a.PendingAmount.Equal(d("9022.29")))
	assert.True(t, a.PaidInterest.Equal(d("50")))
	assert.Equal(t, 1, a.PaidInstallments)
	assertBalanced(t, a)
}

func TestApplyPayment_CompletesRegardlessOfOverdue(t *testing.T) {
	a := mustCreate(t, newParams())
	late := date(2025, time.June, 1)

	a.RecomputeStatus(late)
	require.Equal(t, domain.StatusOverdue, a.Status)
	assert.Equal(t, domain.InstallmentOverdue, a.Installments[0].Status)

	for n := 1; n <= 12; n++ {
		_, err := pay(a, n, "1000", late)
		require.NoError(t, err)
		if n < 12 {
			assert.Equal(t, domain.StatusOverdue, a.Status)
		}
	}

	assert.Equal(t, domain.StatusCompleted, a.Status)
	assert.Equal(t, 12, a.PaidInstallments)
	assert.Nil(t, a.NextDueDate)
	assert.True(t, a.PendingAmount.IsZero())
	assertBalanced(t, a)

	_, err := pay(a, 12, "1", late)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayment)
}

func TestRecomputeStatus_OverdueIsReversible(t *testing.T) {
	a := mustCreate(t, newParams())
	today := date(2024, time.February, 10)

	a.RecomputeStatus(today)
	assert.Equal(t, domain.StatusOverdue, a.Status)

	_, err := pay(a, 1, "1000", today)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, a.Status)
}

func TestRecomputeStatus_PartialPastDueIsNotOverdue(t *testing.T) {
	a := mustCreate(t, newParams())

	_, err := pay(a, 1, "10", date(2024, time.January, 15))
	require.NoError(t, err)
	a.RecomputeStatus(date(2024, time.February, 10))

	assert.Equal(t, domain.InstallmentPartial, a.Installments[0].Status)
	assert.Equal(t, domain.StatusActive, a.Status)
	assert.Equal(t, 9, a.Installments[0].DaysOverdue(date(2024, time.February, 10)))
}

func TestRecomputeStatus_SuspendedIsSticky(t *testing.T) {
	p := newParams()
	p.TotalAmount = d("2000")
	p.TotalInstallments = 2
	late := date(2024, time.June, 1)

	a := mustCreate(t, p)
	suspended := domain.StatusSuspended
	require.NoError(t, a.ApplyUpdate(cfg, domain.AmortizationUpdate{Status: &suspended}, "admin", late))

	a.RecomputeStatus(late)
	assert.Equal(t, domain.StatusSuspended, a.Status)

	_, err := pay(a, 1, "1000", late)
	require.NoError(t, err)
	_, err = pay(a, 2, "1000", late)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, a.Status, "completion without release keeps the hold")

	b := mustCreate(t, p)
	require.NoError(t, b.ApplyUpdate(cfg, domain.AmortizationUpdate{Status: &suspended}, "admin", late))
	_, err = pay(b, 1, "1000", late, domain.ReleaseHold())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, b.Status, "release only applies once everything is paid")
	_, err = pay(b, 2, "1000", late, domain.ReleaseHold())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, b.Status)
}

func TestRegenerate(t *testing.T) {
	a := mustCreate(t, newParams())
	originalIDs := []string{a.Installments[0].ID, a.Installments[11].ID}

	require.NoError(t, a.Regenerate(cfg, false, "user-3", date(2024, time.January, 5)))
	assert.NotEqual(t, originalIDs[0], a.Installments[0].ID)
	assert.Equal(t, "user-3", a.LastUpdatedBy)

	_, err := pay(a, 1, "1000", date(2024, time.January, 20))
	require.NoError(t, err)

	err = a.Regenerate(cfg, false, "user-3", date(2024, time.January, 21))
	assert.ErrorIs(t, err, apperrors.ErrScheduleLocked)
	assert.Equal(t, 1, a.PaidInstallments)

	require.NoError(t, a.Regenerate(cfg, true, "user-3", date(2024, time.January, 21)))
	assert.Equal(t, 0, a.PaidInstallments)
	assert.True(t, a.PaidAmount.IsZero())
	assert.True(t, a.PendingAmount.Equal(a.TotalAmount))
	assert.False(t, a.HasPayments())
	assert.Len(t, a.Installments, 12)
	assert.Equal(t, "AM-2024-001", a.Reference)
}

func TestRegenerate_UsesUpdatedRate(t *testing.T) {
	a := mustCreate(t, newParams())
	rate := d("12")
	require.NoError(t, a.ApplyUpdate(cfg, domain.AmortizationUpdate{InterestRate: &rate}, "admin", date(2024, time.January, 2)))
	assert.True(t, a.Installments[0].InterestAmount.IsZero(), "update leaves installments alone")

	require.NoError(t, a.Regenerate(cfg, false, "admin", date(2024, time.January, 2)))
	assert.True(t, a.Installments[0].InterestAmount.Equal(d("120")))
	assert.True(t, a.TotalInterest.IsPositive())
}

func TestApplyUpdate_StatusTransitions(t *testing.T) {
	status := func(s domain.AmortizationStatus) *domain.AmortizationStatus { return &s }
	now := date(2024, time.January, 10)

	tests := []struct {
		name    string
		from    domain.AmortizationStatus
		to      domain.AmortizationStatus
		want    domain.AmortizationStatus
		wantErr bool
	}{
		{name: "active to suspended", from: domain.StatusActive, to: domain.StatusSuspended, want: domain.StatusSuspended},
		{name: "active to cancelled", from: domain.StatusActive, to: domain.StatusCancelled, want: domain.StatusCancelled},
		{name: "suspended back to active", from: domain.StatusSuspended, to: domain.StatusActive, want: domain.StatusActive},
		{name: "overdue to suspended", from: domain.StatusOverdue, to: domain.StatusSuspended, want: domain.StatusSuspended},
		{name: "cannot set completed", from: domain.StatusActive, to: domain.StatusCompleted, wantErr: true},
		{name: "cannot set overdue", from: domain.StatusActive, to: domain.StatusOverdue, wantErr: true},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: domain.StatusActive, wantErr: true},
		{name: "completed is terminal", from: domain.StatusCompleted, to: domain.StatusSuspended, wantErr: true},
		{name: "unknown status", from: domain.StatusActive, to: "archived", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCreate(t, newParams())
			a.Status = tt.from

			err := a.ApplyUpdate(cfg, domain.AmortizationUpdate{Status: status(tt.to)}, "admin", now)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Equal(t, tt.from, a.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Status)
		})
	}
}

func TestApplyUpdate_Fields(t *testing.T) {
	a := mustCreate(t, newParams())
	ref := "  AM-2024-001-B "
	off := false
	badRate := d("101")

	err := a.ApplyUpdate(cfg, domain.AmortizationUpdate{InterestRate: &badRate}, "admin", date(2024, time.January, 3))
	assert.ErrorIs(t, err, apperrors.ErrInvalidSchedule)

	require.NoError(t, a.ApplyUpdate(cfg, domain.AmortizationUpdate{Reference: &ref, SendNotifications: &off}, "admin", date(2024, time.January, 3)))
	assert.Equal(t, "AM-2024-001-B", a.Reference)
	assert.False(t, a.SendNotifications)
	assert.Equal(t, "admin", a.LastUpdatedBy)
	assert.Equal(t, date(2024, time.January, 3), a.LastUpdatedAt)
}

func TestDeriveInstallmentStatus(t *testing.T) {
	due := date(2024, time.March, 1)
	tests := []struct {
		name  string
		paid  string
		today time.Time
		want  domain.InstallmentStatus
	}{
		{name: "pending before due", paid: "0", today: date(2024, time.February, 1), want: domain.InstallmentPending},
		{name: "pending on due date", paid: "0", today: due, want: domain.InstallmentPending},
		{name: "overdue after due", paid: "0", today: date(2024, time.March, 2), want: domain.InstallmentOverdue},
		{name: "partial", paid: "10", today: date(2024, time.March, 2), want: domain.InstallmentPartial},
		{name: "paid", paid: "100", today: date(2024, time.March, 2), want: domain.InstallmentPaid},
		{name: "paid beyond total", paid: "100.004", today: date(2024, time.March, 2), want: domain.InstallmentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeriveInstallmentStatus(d(tt.paid), d("100"), due, tt.today))
		})
	}
}

func TestAmortizationStatus_Display(t *testing.T) {
	assert.Equal(t, "Activo", domain.StatusActive.Display())
	assert.Equal(t, "Vencido", domain.StatusOverdue.Display())
	assert.Equal(t, "archived", domain.AmortizationStatus("archived").Display())
}
