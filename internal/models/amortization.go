package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amortization mirrors a row of the amortizations table.
type Amortization struct {
	AmortizationID    string          `db:"amortization_id"`
	CompanyID         string          `db:"company_id"`
	EntityID          string          `db:"entity_id"`
	Reference         string          `db:"reference"`
	Description       string          `db:"description"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PendingAmount     decimal.Decimal `db:"pending_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	TotalInstallments int             `db:"total_installments"`
	PaidInstallments  int             `db:"paid_installments"`
	InstallmentAmount decimal.Decimal `db:"installment_amount"`
	InterestRate      decimal.Decimal `db:"interest_rate"`
	TotalInterest     decimal.Decimal `db:"total_interest"`
	PaidInterest      decimal.Decimal `db:"paid_interest"`
	StartDate         time.Time       `db:"start_date"`
	EndDate           time.Time       `db:"end_date"`
	NextDueDate       *time.Time      `db:"next_due_date"` // Nullable
	Status            string          `db:"status"`
	Method            string          `db:"amortization_method"`
	Frequency         string          `db:"frequency"`
	AutoPayment       bool            `db:"auto_payment"`
	SendNotifications bool            `db:"send_notifications"`
	SAPDocEntry       *int            `db:"sap_doc_entry"` // Nullable
	SAPDocType        *string         `db:"sap_doc_type"`  // Nullable
	SAPBaseRef        *string         `db:"sap_base_ref"`  // Nullable
	IsActive          bool            `db:"is_active"`
	AuditFields
}

// Installment mirrors a row of the amortization_installments table.
type Installment struct {
	InstallmentID     string          `db:"installment_id"`
	AmortizationID    string          `db:"amortization_id"`
	InstallmentNumber int             `db:"installment_number"`
	DueDate           time.Time       `db:"due_date"`
	PrincipalAmount   decimal.Decimal `db:"principal_amount"`
	InterestAmount    decimal.Decimal `db:"interest_amount"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	RemainingBalance  decimal.Decimal `db:"remaining_balance"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	PaymentDate       *time.Time      `db:"payment_date"` // Nullable
	Status            string          `db:"status"`
	LateFee           decimal.Decimal `db:"late_fee"`
	Notes             string          `db:"notes"`
	SAPPaymentEntry   *int            `db:"sap_payment_entry"`  // Nullable
	ExternalReference *string         `db:"external_reference"` // Nullable
	AuditFields
}
