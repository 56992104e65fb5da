package services

import (
	"context"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/SscSPs/amortization_manager/internal/dto"
)

// AmortizationReaderSvc defines read operations for amortization data
type AmortizationReaderSvc interface {
	// GetAmortization retrieves an amortization. Installments are loaded only when includeInstallments is set.
	GetAmortization(ctx context.Context, amortizationID string, includeInstallments bool) (*domain.Amortization, error)

	// ListAmortizations retrieves one page of amortizations matching the filters.
	ListAmortizations(ctx context.Context, params dto.ListAmortizationsParams) (*dto.ListAmortizationsResponse, error)

	// ListInstallments retrieves the installments of an amortization, optionally filtered by status.
	ListInstallments(ctx context.Context, amortizationID string, params dto.ListInstallmentsParams) ([]domain.Installment, error)
}

// AmortizationWriterSvc defines write operations for amortization data
type AmortizationWriterSvc interface {
	// CreateAmortization persists a new amortization, generating its schedule when generateInstallments is set.
	CreateAmortization(ctx context.Context, req dto.CreateAmortizationRequest, generateInstallments bool, userID string) (*domain.Amortization, error)

	// UpdateAmortization applies an administrative update, optionally regenerating the schedule afterwards.
	UpdateAmortization(ctx context.Context, amortizationID string, req dto.UpdateAmortizationRequest, recalculate bool, userID string) (*domain.Amortization, error)

	// DeleteAmortization soft deletes an amortization, or removes it physically when force is set.
	DeleteAmortization(ctx context.Context, amortizationID string, force bool, userID string) error

	// GenerateInstallments rebuilds the schedule of an amortization from its current terms.
	GenerateInstallments(ctx context.Context, amortizationID string, overwrite bool, userID string) (*domain.Amortization, error)
}

// PaymentSvc defines payment operations
type PaymentSvc interface {
	// RecordPayment applies a payment to one installment. When a ledger posting is
	// requested and fails, the payment stays committed and the result carries a warning.
	RecordPayment(ctx context.Context, amortizationID string, installmentNumber int, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error)
}

// AmortizationReportingSvc defines portfolio reports
type AmortizationReportingSvc interface {
	// GetSummary aggregates the amortizations of a company.
	GetSummary(ctx context.Context, params dto.ReportParams) (*domain.AmortizationSummary, error)

	// GetAgingReport buckets the outstanding amounts of a company by days past due.
	GetAgingReport(ctx context.Context, params dto.AgingReportParams) (*domain.AgingReport, error)
}

// AmortizationSvcFacade combines all amortization-related service interfaces
type AmortizationSvcFacade interface {
	AmortizationReaderSvc
	AmortizationWriterSvc
	PaymentSvc
	AmortizationReportingSvc
}
