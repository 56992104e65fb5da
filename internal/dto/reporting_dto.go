package dto

import (
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// ReportParams defines the query parameters shared by amortization reports.
type ReportParams struct {
	CompanyID string `form:"company_id" binding:"required"`
	EntityID  string `form:"entity_id"`
	Method    string `form:"amortization_method" binding:"omitempty,oneof=linear french german decreasing"`
	DateFrom  string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

// AgingReportParams defines the query parameters for the aging report.
type AgingReportParams struct {
	ReportParams
	// Periods are bucket upper bounds in days, e.g. periods=30&periods=60.
	Periods []int `form:"periods" binding:"omitempty,dive,min=1"`
}

// SummaryResponse defines the data returned by the summary report.
type SummaryResponse struct {
	CompanyID           string          `json:"company_id"`
	AsOf                string          `json:"as_of"`
	TotalAmortizations  int             `json:"total_amortizations"`
	CountByStatus       map[string]int  `json:"count_by_status"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	PaidAmount          decimal.Decimal `json:"paid_amount"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	TotalInterest       decimal.Decimal `json:"total_interest"`
	PaidInterest        decimal.Decimal `json:"paid_interest"`
	OverdueAmount       decimal.Decimal `json:"overdue_amount"`
	OverdueInstallments int             `json:"overdue_installments"`
}

// AgingBucketResponse is one row of the aging report.
type AgingBucketResponse struct {
	Label            string          `json:"label"`
	MinDays          int             `json:"min_days"`
	MaxDays          *int            `json:"max_days"`
	Amount           decimal.Decimal `json:"amount"`
	InstallmentCount int             `json:"installment_count"`
}

// AgingReportResponse defines the data returned by the aging report.
type AgingReportResponse struct {
	CompanyID string                `json:"company_id"`
	AsOf      string                `json:"as_of"`
	Buckets   []AgingBucketResponse `json:"buckets"`
	Total     decimal.Decimal       `json:"total"`
}

// ToSummaryResponse converts a domain.AmortizationSummary to SummaryResponse DTO.
func ToSummaryResponse(s *domain.AmortizationSummary) SummaryResponse {
	counts := make(map[string]int, len(s.CountByStatus))
	for status, n := range s.CountByStatus {
		counts[string(status)] = n
	}
	return SummaryResponse{
		CompanyID:           s.CompanyID,
		AsOf:                dates.Format(s.AsOf),
		TotalAmortizations:  s.TotalCount,
		CountByStatus:       counts,
		TotalAmount:         s.TotalAmount,
		PaidAmount:          s.PaidAmount,
		PendingAmount:       s.PendingAmount,
		TotalInterest:       s.TotalInterest,
		PaidInterest:        s.PaidInterest,
		OverdueAmount:       s.OverdueAmount,
		OverdueInstallments: s.OverdueInstallments,
	}
}

// ToAgingReportResponse converts a domain.AgingReport to AgingReportResponse DTO.
func ToAgingReportResponse(r *domain.AgingReport) AgingReportResponse {
	buckets := make([]AgingBucketResponse, len(r.Buckets))
	for i, b := range r.Buckets {
		buckets[i] = AgingBucketResponse{
			Label:            b.Label,
			MinDays:          b.MinDays,
			Amount:           b.Amount,
			InstallmentCount: b.InstallmentCount,
		}
		if b.MaxDays >= 0 {
			maxDays := b.MaxDays
			buckets[i].MaxDays = &maxDays
		}
	}
	return AgingReportResponse{
		CompanyID: r.CompanyID,
		AsOf:      dates.Format(r.AsOf),
		Buckets:   buckets,
		Total:     r.Total,
	}
}
