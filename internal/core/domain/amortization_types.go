package domain

// AmortizationMethod selects how principal is spread across installments.
type AmortizationMethod string

const (
	MethodLinear     AmortizationMethod = "linear"
	MethodFrench     AmortizationMethod = "french"
	MethodGerman     AmortizationMethod = "german"
	MethodDecreasing AmortizationMethod = "decreasing"
)

// IsValid reports whether m is a supported method.
func (m AmortizationMethod) IsValid() bool {
	switch m {
	case MethodLinear, MethodFrench, MethodGerman, MethodDecreasing:
		return true
	}
	return false
}

// Frequency is the spacing between installment due dates.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyBiannual  Frequency = "biannual"
	FrequencyAnnual    Frequency = "annual"
)

// AmortizationStatus is the lifecycle state of an amortization.
type AmortizationStatus string

const (
	StatusActive    AmortizationStatus = "active"
	StatusCompleted AmortizationStatus = "completed"
	StatusOverdue   AmortizationStatus = "overdue"
	StatusSuspended AmortizationStatus = "suspended"
	StatusCancelled AmortizationStatus = "cancelled"
)

var statusDisplay = map[AmortizationStatus]string{
	StatusActive:    "Activo",
	StatusCompleted: "Completado",
	StatusOverdue:   "Vencido",
	StatusSuspended: "Suspendido",
	StatusCancelled: "Cancelado",
}

// IsValid reports whether s is a known status.
func (s AmortizationStatus) IsValid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// Display returns the label shown to end users.
func (s AmortizationStatus) Display() string {
	if label, ok := statusDisplay[s]; ok {
		return label
	}
	return string(s)
}

// isHold reports whether s is an administrative state that automatic recomputation must keep.
func (s AmortizationStatus) isHold() bool {
	return s == StatusSuspended || s == StatusCancelled
}

// IsTerminal reports whether no further administrative transition is allowed.
func (s AmortizationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// InstallmentStatus is derived from paid amount, due date and today.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPartial InstallmentStatus = "partial"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// IsValid reports whether s is a known installment status.
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentPending, InstallmentPartial, InstallmentPaid, InstallmentOverdue:
		return true
	}
	return false
}

// ExternalSyncStatus tells the caller what happened to the ledger posting of a payment.
type ExternalSyncStatus string

const (
	SyncNotRequested ExternalSyncStatus = "not_requested"
	SyncSynced       ExternalSyncStatus = "synced"
	SyncPending      ExternalSyncStatus = "pending"
)
