package dto

import (
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// CreateAmortizationRequest defines the data needed to create an amortization.
type CreateAmortizationRequest struct {
	CompanyID         string          `json:"company_id" binding:"required,max=64"`
	EntityID          string          `json:"entity_id" binding:"required,max=64"`
	Reference         string          `json:"reference" binding:"required,max=100"`
	Description       string          `json:"description" binding:"max=1000"`
	TotalAmount       decimal.Decimal `json:"total_amount" binding:"decimal_positive"`
	TotalInstallments int             `json:"total_installments" binding:"required,min=1,max=999"`
	InterestRate      decimal.Decimal `json:"interest_rate" binding:"decimal_nonnegative"`
	StartDate         string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	Method            string          `json:"amortization_method" binding:"omitempty,oneof=linear french german decreasing"`
	Frequency         string          `json:"frequency" binding:"omitempty,oneof=monthly quarterly biannual annual"`
	AutoPayment       bool            `json:"auto_payment"`
	SendNotifications *bool           `json:"send_notifications"`
	SAPDocEntry       *int            `json:"sap_doc_entry"`
	SAPDocType        string          `json:"sap_doc_type" binding:"max=10"`
	SAPBaseRef        string          `json:"sap_base_ref" binding:"max=50"`
}

// UpdateAmortizationRequest defines the administrative fields that can be changed.
// Omitted fields are left untouched.
type UpdateAmortizationRequest struct {
	Reference         *string          `json:"reference" binding:"omitempty,min=1,max=100"`
	Description       *string          `json:"description" binding:"omitempty,max=1000"`
	InterestRate      *decimal.Decimal `json:"interest_rate" binding:"omitempty,decimal_nonnegative"`
	Status            *string          `json:"status" binding:"omitempty,oneof=active completed overdue suspended cancelled"`
	AutoPayment       *bool            `json:"auto_payment"`
	SendNotifications *bool            `json:"send_notifications"`
}

// ListAmortizationsParams defines the query parameters for listing amortizations.
type ListAmortizationsParams struct {
	CompanyID       string `form:"company_id"`
	EntityID        string `form:"entity_id"`
	Status          string `form:"status" binding:"omitempty,oneof=active completed overdue suspended cancelled"`
	Method          string `form:"amortization_method" binding:"omitempty,oneof=linear french german decreasing"`
	Frequency       string `form:"frequency" binding:"omitempty,oneof=monthly quarterly biannual annual"`
	DateFrom        string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo          string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	AmountFrom      string `form:"amount_from" binding:"omitempty,numeric"`
	AmountTo        string `form:"amount_to" binding:"omitempty,numeric"`
	OverdueOnly     bool   `form:"overdue_only"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page,default=1" binding:"min=1"`
	PageSize        int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortBy          string `form:"sort_by,default=created_at"`
	SortOrder       string `form:"sort_order,default=desc"`
}

// ListInstallmentsParams defines the query parameters for listing installments.
type ListInstallmentsParams struct {
	Status      string `form:"status" binding:"omitempty,oneof=pending partial paid overdue"`
	OverdueOnly bool   `form:"overdue_only"`
}

// RecordPaymentRequest defines the data for a payment against one installment.
type RecordPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"decimal_positive"`
	PaymentDate    string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Notes          string          `json:"notes" binding:"max=500"`
	CreateSAPEntry bool            `json:"create_sap_entry"`
	// ReleaseHold allows a suspended amortization to complete when this payment settles it.
	ReleaseHold bool `json:"release_hold"`
}

// InstallmentResponse defines the data returned for an installment.
type InstallmentResponse struct {
	ID                string          `json:"id"`
	AmortizationID    string          `json:"amortization_id"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           string          `json:"due_date"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	PaymentDate       *string         `json:"payment_date"`
	Status            string          `json:"status"`
	LateFee           decimal.Decimal `json:"late_fee"`
	Notes             string          `json:"notes,omitempty"`
	IsOverdue         bool            `json:"is_overdue"`
	DaysOverdue       int             `json:"days_overdue"`
	SAPPaymentEntry   *int            `json:"sap_payment_entry,omitempty"`
	ExternalReference *string         `json:"external_reference,omitempty"`
}

// AmortizationResponse defines the data returned for an amortization.
type AmortizationResponse struct {
	ID                string                `json:"id"`
	CompanyID         string                `json:"company_id"`
	EntityID          string                `json:"entity_id"`
	Reference         string                `json:"reference"`
	Description       string                `json:"description"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	PendingAmount     decimal.Decimal       `json:"pending_amount"`
	PaidAmount        decimal.Decimal       `json:"paid_amount"`
	TotalInstallments int                   `json:"total_installments"`
	PaidInstallments  int                   `json:"paid_installments"`
	InstallmentAmount decimal.Decimal       `json:"installment_amount"`
	InterestRate      decimal.Decimal       `json:"interest_rate"`
	TotalInterest     decimal.Decimal       `json:"total_interest"`
	PaidInterest      decimal.Decimal       `json:"paid_interest"`
	StartDate         string                `json:"start_date"`
	EndDate           string                `json:"end_date"`
	NextDueDate       *string               `json:"next_due_date"`
	Status            string                `json:"status"`
	StatusDisplay     string                `json:"status_display"`
	Method            string                `json:"amortization_method"`
	Frequency         string                `json:"frequency"`
	AutoPayment       bool                  `json:"auto_payment"`
	SendNotifications bool                  `json:"send_notifications"`
	SAPDocEntry       *int                  `json:"sap_doc_entry,omitempty"`
	SAPDocType        string                `json:"sap_doc_type,omitempty"`
	SAPBaseRef        string                `json:"sap_base_ref,omitempty"`
	IsActive          bool                  `json:"is_active"`
	Version           int                   `json:"version"`
	CreatedAt         time.Time             `json:"created_at"`
	CreatedBy         string                `json:"created_by"`
	LastUpdatedAt     time.Time             `json:"last_updated_at"`
	LastUpdatedBy     string                `json:"last_updated_by"`
	Installments      []InstallmentResponse `json:"installments,omitempty"`
}

// ListAmortizationsResponse wraps one page of amortizations.
type ListAmortizationsResponse struct {
	Items      []AmortizationResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
	HasNext    bool                   `json:"has_next"`
	HasPrev    bool                   `json:"has_prev"`
}

// PaymentResponse defines the data returned after recording a payment.
type PaymentResponse struct {
	Message            string               `json:"message"`
	Installment        InstallmentResponse  `json:"installment"`
	Amortization       AmortizationResponse `json:"amortization"`
	ExternalSyncStatus string               `json:"external_sync_status"`
	ExternalReference  string               `json:"external_reference,omitempty"`
	Warning            string               `json:"warning,omitempty"`
}

// ToInstallmentResponse converts a domain.Installment to InstallmentResponse DTO.
func ToInstallmentResponse(inst *domain.Installment, today time.Time) InstallmentResponse {
	resp := InstallmentResponse{
		ID:                inst.ID,
		AmortizationID:    inst.AmortizationID,
		InstallmentNumber: inst.Number,
		DueDate:           dates.Format(inst.DueDate),
		PrincipalAmount:   inst.PrincipalAmount,
		InterestAmount:    inst.InterestAmount,
		TotalAmount:       inst.TotalAmount,
		RemainingBalance:  inst.RemainingBalance,
		PaidAmount:        inst.PaidAmount,
		OutstandingAmount: inst.Outstanding(),
		Status:            string(inst.Status),
		LateFee:           inst.LateFee,
		Notes:             inst.Notes,
		IsOverdue:         inst.Status == domain.InstallmentOverdue,
		DaysOverdue:       inst.DaysOverdue(today),
		SAPPaymentEntry:   inst.SAPPaymentEntry,
		ExternalReference: inst.ExternalReference,
	}
	if inst.PaymentDate != nil {
		paid := dates.Format(*inst.PaymentDate)
		resp.PaymentDate = &paid
	}
	return resp
}

// ToInstallmentResponses converts a slice of domain.Installment to []InstallmentResponse.
func ToInstallmentResponses(installments []domain.Installment, today time.Time) []InstallmentResponse {
	responses := make([]InstallmentResponse, len(installments))
	for i := range installments {
		responses[i] = ToInstallmentResponse(&installments[i], today)
	}
	return responses
}

// ToAmortizationResponse converts a domain.Amortization to AmortizationResponse DTO.
// Installments are included only when loaded.
func ToAmortizationResponse(a *domain.Amortization, today time.Time) AmortizationResponse {
	resp := AmortizationResponse{
		ID:                a.ID,
		CompanyID:         a.CompanyID,
		EntityID:          a.EntityID,
		Reference:         a.Reference,
		Description:       a.Description,
		TotalAmount:       a.TotalAmount,
		PendingAmount:     a.PendingAmount,
		PaidAmount:        a.PaidAmount,
		TotalInstallments: a.TotalInstallments,
		PaidInstallments:  a.PaidInstallments,
		InstallmentAmount: a.InstallmentAmount,
		InterestRate:      a.InterestRate,
		TotalInterest:     a.TotalInterest,
		PaidInterest:      a.PaidInterest,
		StartDate:         dates.Format(a.StartDate),
		EndDate:           dates.Format(a.EndDate),
		Status:            string(a.Status),
		StatusDisplay:     a.Status.Display(),
		Method:            string(a.Method),
		Frequency:         string(a.Frequency),
		AutoPayment:       a.AutoPayment,
		SendNotifications: a.SendNotifications,
		SAPDocEntry:       a.External.DocEntry,
		SAPDocType:        a.External.DocType,
		SAPBaseRef:        a.External.BaseRef,
		IsActive:          a.IsActive,
		Version:           a.Version,
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedBy,
		LastUpdatedAt:     a.LastUpdatedAt,
		LastUpdatedBy:     a.LastUpdatedBy,
	}
	if a.NextDueDate != nil {
		next := dates.Format(*a.NextDueDate)
		resp.NextDueDate = &next
	}
	if len(a.Installments) > 0 {
		resp.Installments = ToInstallmentResponses(a.Installments, today)
	}
	return resp
}

// ToAmortizationResponses converts a slice of domain.Amortization to []AmortizationResponse.
func ToAmortizationResponses(items []domain.Amortization, today time.Time) []AmortizationResponse {
	responses := make([]AmortizationResponse, len(items))
	for i := range items {
		responses[i] = ToAmortizationResponse(&items[i], today)
	}
	return responses
}

// ToPaymentResponse converts a domain.PaymentResult to PaymentResponse DTO.
func ToPaymentResponse(result *domain.PaymentResult, today time.Time) PaymentResponse {
	summary := *result.Amortization
	summary.Installments = nil

	resp := PaymentResponse{
		Message:            "Payment recorded",
		Installment:        ToInstallmentResponse(&result.Installment, today),
		Amortization:       ToAmortizationResponse(&summary, today),
		ExternalSyncStatus: string(result.ExternalSyncStatus),
		ExternalReference:  result.ExternalReference,
	}
	if result.Warning != nil {
		resp.Warning = result.Warning.Error()
	}
	if result.ExternalSyncStatus == domain.SyncPending {
		resp.Message = "Payment recorded, external sync pending"
	}
	return resp
}
