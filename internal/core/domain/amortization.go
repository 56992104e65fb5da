package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/utils/accounting"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxReferenceLen   = 100
	maxDescriptionLen = 1000
	maxDocTypeLen     = 10
	maxBaseRefLen     = 50
	maxNotesLen       = 500
)

// ExternalReference links an amortization to the originating ERP document.
// The values are opaque to this system.
type ExternalReference struct {
	DocEntry *int
	DocType  string
	BaseRef  string
}

// Amortization is the aggregate root: it owns its installments and keeps the
// rollups (paid, pending, counters, next due date, status) consistent with them.
type Amortization struct {
	ID                string
	CompanyID         string
	EntityID          string
	Reference         string
	Description       string
	TotalAmount       decimal.Decimal
	TotalInstallments int
	InstallmentAmount decimal.Decimal
	// InterestRate is the annual rate in percent.
	InterestRate      decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	NextDueDate       *time.Time
	Method            AmortizationMethod
	Frequency         Frequency
	Status            AmortizationStatus
	// PaidAmount and PendingAmount track principal only, so that
	// PaidAmount + PendingAmount == TotalAmount always holds.
	PaidAmount        decimal.Decimal
	PendingAmount     decimal.Decimal
	PaidInstallments  int
	TotalInterest     decimal.Decimal
	// PaidInterest collects the interest and late fee part of payments.
	PaidInterest      decimal.Decimal
	AutoPayment       bool
	SendNotifications bool
	External          ExternalReference
	IsActive          bool
	Installments      []Installment
	AuditFields
}

// NewAmortizationParams carries the validated-by-binding create request.
type NewAmortizationParams struct {
	CompanyID         string
	EntityID          string
	Reference         string
	Description       string
	TotalAmount       decimal.Decimal
	TotalInstallments int
	InterestRate      decimal.Decimal
	Method            AmortizationMethod
	Frequency         Frequency
	StartDate         time.Time
	AutoPayment       bool
	SendNotifications bool
	External          ExternalReference
	CreatedBy         string
	Now               time.Time
}

// NewAmortization builds an active amortization. When generate is true the
// installment schedule is produced as well; otherwise only the derived dates and
// the informational installment amount are filled in.
func NewAmortization(p NewAmortizationParams, cfg ScheduleConfig, generate bool) (*Amortization, error) {
	if err := validateAdministrative(p.Reference, p.Description, p.External); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.CompanyID) == "" || strings.TrimSpace(p.EntityID) == "" {
		return nil, fmt.Errorf("%w: company_id and entity_id are required", apperrors.ErrValidation)
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	params := ScheduleParams{
		TotalAmount:       accounting.RoundMoney(p.TotalAmount, cfg.CurrencyPrecision),
		TotalInstallments: p.TotalInstallments,
		InterestRate:      p.InterestRate,
		Method:            p.Method,
		Frequency:         p.Frequency,
		StartDate:         dates.Day(p.StartDate),
	}
	if err := ValidateScheduleParams(params, cfg); err != nil {
		return nil, err
	}

	a := &Amortization{
		ID:                uuid.NewString(),
		CompanyID:         p.CompanyID,
		EntityID:          p.EntityID,
		Reference:         strings.TrimSpace(p.Reference),
		Description:       p.Description,
		TotalAmount:       params.TotalAmount,
		TotalInstallments: params.TotalInstallments,
		InterestRate:      params.InterestRate,
		StartDate:         params.StartDate,
		Method:            params.Method,
		Frequency:         params.Frequency,
		Status:            StatusActive,
		PaidAmount:        decimal.Zero,
		PendingAmount:     params.TotalAmount,
		TotalInterest:     decimal.Zero,
		PaidInterest:      decimal.Zero,
		AutoPayment:       p.AutoPayment,
		SendNotifications: p.SendNotifications,
		External:          p.External,
		IsActive:          true,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: p.CreatedBy,
		},
	}

	if generate {
		if err := a.buildInstallments(cfg, p.CreatedBy, now); err != nil {
			return nil, err
		}
		return a, nil
	}

	n := decimal.NewFromInt(int64(a.TotalInstallments))
	a.InstallmentAmount = accounting.TruncateMoney(a.TotalAmount.Div(n), cfg.CurrencyPrecision)
	a.EndDate = cfg.DueDate(a.StartDate, a.Frequency, a.TotalInstallments)
	first := cfg.DueDate(a.StartDate, a.Frequency, 1)
	a.NextDueDate = &first
	return a, nil
}

func validateAdministrative(reference, description string, ext ExternalReference) error {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return fmt.Errorf("%w: reference is required", apperrors.ErrValidation)
	}
	if len([]rune(ref)) > maxReferenceLen {
		return fmt.Errorf("%w: reference must be at most %d characters", apperrors.ErrValidation, maxReferenceLen)
	}
	if len([]rune(description)) > maxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", apperrors.ErrValidation, maxDescriptionLen)
	}
	if len(ext.DocType) > maxDocTypeLen {
		return fmt.Errorf("%w: sap_doc_type must be at most %d characters", apperrors.ErrValidation, maxDocTypeLen)
	}
	if len(ext.BaseRef) > maxBaseRefLen {
		return fmt.Errorf("%w: sap_base_ref must be at most %d characters", apperrors.ErrValidation, maxBaseRefLen)
	}
	return nil
}

func (a *Amortization) scheduleParams() ScheduleParams {
	return ScheduleParams{
		TotalAmount:       a.TotalAmount,
		TotalInstallments: a.TotalInstallments,
		InterestRate:      a.InterestRate,
		Method:            a.Method,
		Frequency:         a.Frequency,
		StartDate:         a.StartDate,
	}
}

// buildInstallments replaces the installments with a freshly generated schedule
// and resets the payment rollups.
func (a *Amortization) buildInstallments(cfg ScheduleConfig, userID string, now time.Time) error {
	lines, err := GenerateSchedule(a.scheduleParams(), cfg)
	if err != nil {
		return err
	}

	installments := make([]Installment, 0, len(lines))
	totalInterest := decimal.Zero
	for _, line := range lines {
		totalInterest = totalInterest.Add(line.Interest)
		installments = append(installments, Installment{
			ID:               uuid.NewString(),
			AmortizationID:   a.ID,
			Number:           line.Number,
			DueDate:          line.DueDate,
			PrincipalAmount:  line.Principal,
			InterestAmount:   line.Interest,
			TotalAmount:      line.Total,
			RemainingBalance: line.RemainingBalance,
			PaidAmount:       decimal.Zero,
			Status:           InstallmentPending,
			LateFee:          decimal.Zero,
			AuditFields: AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	a.Installments = installments
	a.InstallmentAmount = lines[0].Total
	a.TotalInterest = totalInterest
	a.EndDate = lines[len(lines)-1].DueDate
	a.PaidAmount = decimal.Zero
	a.PendingAmount = a.TotalAmount
	a.PaidInterest = decimal.Zero
	a.PaidInstallments = 0
	a.refreshNextDueDate()
	return nil
}

// HasPayments reports whether any installment has money applied to it.
func (a *Amortization) HasPayments() bool {
	for _, inst := range a.Installments {
		if inst.PaidAmount.IsPositive() {
			return true
		}
	}
	return false
}

// Regenerate discards the installments and rebuilds the schedule from the current
// terms. A schedule with payment history is only replaced when overwrite is set,
// in which case the payment rollups start over with the new schedule.
func (a *Amortization) Regenerate(cfg ScheduleConfig, overwrite bool, userID string, now time.Time) error {
	if a.Status.IsTerminal() {
		return fmt.Errorf("%w: amortization is %s", apperrors.ErrScheduleLocked, a.Status)
	}
	if a.HasPayments() && !overwrite {
		return fmt.Errorf("%w: regenerate with overwrite to discard them", apperrors.ErrScheduleLocked)
	}
	if err := a.buildInstallments(cfg, userID, now); err != nil {
		return err
	}
	a.RecomputeStatus(now)
	a.touch(userID, now)
	return nil
}

// Installment returns the installment with the given number.
func (a *Amortization) Installment(number int) (*Installment, bool) {
	for i := range a.Installments {
		if a.Installments[i].Number == number {
			return &a.Installments[i], true
		}
	}
	return nil, false
}

// PaymentInput describes cash received against one installment.
type PaymentInput struct {
	InstallmentNumber int
	Amount            decimal.Decimal
	PaymentDate       time.Time
	Notes             string
	UserID            string
	Now               time.Time
}

// ApplyPayment applies cash to an installment and updates the rollups. Amounts
// must be whole units of the currency precision. Amounts above the outstanding
// remainder are rejected, never capped.
func (a *Amortization) ApplyPayment(cfg ScheduleConfig, in PaymentInput, opts ...StatusOption) (Installment, error) {
	if !in.Amount.IsPositive() {
		return Installment{}, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidPayment)
	}
	if !in.Amount.Equal(in.Amount.Round(cfg.CurrencyPrecision)) {
		return Installment{}, fmt.Errorf("%w: amount %s has more than %d decimal places",
			apperrors.ErrInvalidPayment, in.Amount.String(), cfg.CurrencyPrecision)
	}
	if a.Status == StatusCancelled || a.Status == StatusCompleted || !a.IsActive {
		return Installment{}, fmt.Errorf("%w: amortization is %s", apperrors.ErrInvalidPayment, a.Status)
	}
	if len([]rune(in.Notes)) > maxNotesLen {
		return Installment{}, fmt.Errorf("%w: notes must be at most %d characters", apperrors.ErrInvalidPayment, maxNotesLen)
	}

	inst, ok := a.Installment(in.InstallmentNumber)
	if !ok {
		return Installment{}, fmt.Errorf("%w: installment %d of amortization %s", apperrors.ErrNotFound, in.InstallmentNumber, a.ID)
	}

	outstanding := inst.Outstanding()
	if outstanding.IsZero() {
		return Installment{}, fmt.Errorf("%w: installment %d is already settled", apperrors.ErrOverpayment, inst.Number)
	}
	if in.Amount.GreaterThan(outstanding) {
		return Installment{}, fmt.Errorf("%w: installment %d has %s outstanding, got %s",
			apperrors.ErrOverpayment, inst.Number, outstanding.StringFixed(cfg.CurrencyPrecision), in.Amount.String())
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	paymentDate := dates.Day(in.PaymentDate)
	if in.PaymentDate.IsZero() {
		paymentDate = dates.Day(now)
	}

	wasPaid := inst.IsPaid()
	principalBefore := inst.principalCovered(inst.PaidAmount)

	inst.PaidAmount = inst.PaidAmount.Add(in.Amount)
	inst.PaymentDate = &paymentDate
	if in.Notes != "" {
		inst.Notes = in.Notes
	}
	inst.RefreshStatus(now)
	inst.touch(in.UserID, now)

	principalPart := inst.principalCovered(inst.PaidAmount).Sub(principalBefore)
	a.PaidAmount = a.PaidAmount.Add(principalPart)
	a.PendingAmount = a.PendingAmount.Sub(principalPart)
	a.PaidInterest = a.PaidInterest.Add(in.Amount.Sub(principalPart))
	if !wasPaid && inst.IsPaid() {
		a.PaidInstallments++
	}

	a.refreshNextDueDate()
	a.RecomputeStatus(now, opts...)
	a.touch(in.UserID, now)
	return *inst, nil
}

func (a *Amortization) refreshNextDueDate() {
	if len(a.Installments) == 0 {
		return
	}
	sort.Slice(a.Installments, func(i, j int) bool {
		return a.Installments[i].Number < a.Installments[j].Number
	})
	for _, inst := range a.Installments {
		if !inst.IsPaid() {
			due := inst.DueDate
			a.NextDueDate = &due
			return
		}
	}
	a.NextDueDate = nil
}

// DeriveStatus computes completed, overdue or active from the installments alone.
func (a *Amortization) DeriveStatus(today time.Time) AmortizationStatus {
	if a.TotalInstallments > 0 && a.PaidInstallments >= a.TotalInstallments {
		return StatusCompleted
	}
	for _, inst := range a.Installments {
		if DeriveInstallmentStatus(inst.PaidAmount, inst.TotalAmount, inst.DueDate, today) == InstallmentOverdue {
			return StatusOverdue
		}
	}
	return StatusActive
}

// StatusAsOf is the status the amortization would have today without any
// explicit release: administrative holds and completion are kept as they are.
func (a *Amortization) StatusAsOf(today time.Time) AmortizationStatus {
	if a.Status.isHold() || a.Status == StatusCompleted {
		return a.Status
	}
	return a.DeriveStatus(today)
}

type statusOptions struct {
	releaseHold bool
}

// StatusOption adjusts RecomputeStatus.
type StatusOption func(*statusOptions)

// ReleaseHold lets a suspended amortization move to completed when its last
// installment gets paid.
func ReleaseHold() StatusOption {
	return func(o *statusOptions) {
		o.releaseHold = true
	}
}

// RecomputeStatus refreshes installment statuses against today and applies the
// derived amortization status. Suspended and cancelled are kept unless the caller
// passes ReleaseHold and the schedule is complete.
func (a *Amortization) RecomputeStatus(today time.Time, opts ...StatusOption) {
	var o statusOptions
	for _, opt := range opts {
		opt(&o)
	}

	for i := range a.Installments {
		a.Installments[i].RefreshStatus(today)
	}

	derived := a.DeriveStatus(today)
	if a.Status.isHold() {
		if o.releaseHold && a.Status == StatusSuspended && derived == StatusCompleted {
			a.Status = StatusCompleted
		}
		return
	}
	if a.Status == StatusCompleted {
		return
	}
	a.Status = derived
}

// RefreshForRead brings derived fields up to date for presentation.
func (a *Amortization) RefreshForRead(today time.Time) {
	a.refreshNextDueDate()
	a.RecomputeStatus(today)
}

// AmortizationUpdate holds the administrative fields that may change after creation.
// Nil fields are left untouched.
type AmortizationUpdate struct {
	Reference         *string
	Description       *string
	InterestRate      *decimal.Decimal
	Status            *AmortizationStatus
	AutoPayment       *bool
	SendNotifications *bool
}

// ApplyUpdate applies an administrative update. Installments are never touched;
// schedule recalculation is a separate, explicit request.
func (a *Amortization) ApplyUpdate(cfg ScheduleConfig, u AmortizationUpdate, userID string, now time.Time) error {
	reference := a.Reference
	if u.Reference != nil {
		reference = strings.TrimSpace(*u.Reference)
	}
	description := a.Description
	if u.Description != nil {
		description = *u.Description
	}
	if err := validateAdministrative(reference, description, a.External); err != nil {
		return err
	}

	if u.InterestRate != nil {
		if u.InterestRate.LessThan(cfg.MinInterestRate) || u.InterestRate.GreaterThan(cfg.MaxInterestRate) {
			return fmt.Errorf("%w: interest_rate must be between %s and %s", apperrors.ErrInvalidSchedule, cfg.MinInterestRate, cfg.MaxInterestRate)
		}
	}
	if u.Status != nil {
		if err := a.checkTransition(*u.Status); err != nil {
			return err
		}
	}

	a.Reference = reference
	a.Description = description
	if u.InterestRate != nil {
		a.InterestRate = *u.InterestRate
	}
	if u.AutoPayment != nil {
		a.AutoPayment = *u.AutoPayment
	}
	if u.SendNotifications != nil {
		a.SendNotifications = *u.SendNotifications
	}
	if u.Status != nil && *u.Status != a.Status {
		switch *u.Status {
		case StatusActive:
			a.Status = StatusActive
			a.RecomputeStatus(now)
		default:
			a.Status = *u.Status
		}
	}
	a.touch(userID, now)
	return nil
}

func (a *Amortization) checkTransition(target AmortizationStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, target)
	}
	if target == a.Status {
		return nil
	}
	if a.Status.IsTerminal() {
		return fmt.Errorf("%w: amortization is %s and cannot change status", apperrors.ErrValidation, a.Status)
	}
	if target == StatusCompleted || target == StatusOverdue {
		return fmt.Errorf("%w: status %s is derived from payments and cannot be set", apperrors.ErrValidation, target)
	}
	return nil
}

// MarkDeleted soft deletes the amortization.
func (a *Amortization) MarkDeleted(userID string, now time.Time) {
	a.IsActive = false
	a.touch(userID, now)
}
