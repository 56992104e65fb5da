package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
)

// AmortizationReader defines read operations for amortization data
type AmortizationReader interface {
	// FindAmortizationByID retrieves an active amortization together with its installments.
	// It returns apperrors.ErrNotFound when the amortization does not exist or was soft deleted.
	FindAmortizationByID(ctx context.Context, amortizationID string) (*domain.Amortization, error)

	// ListAmortizations retrieves one page of amortizations (without installments) and the total match count.
	ListAmortizations(ctx context.Context, filter domain.AmortizationFilter, opts domain.ListOptions) ([]domain.Amortization, int, error)

	// ListAmortizationsForReport retrieves every amortization matching the filter with installments loaded.
	ListAmortizationsForReport(ctx context.Context, filter domain.AmortizationFilter) ([]domain.Amortization, error)
}

// InstallmentReader defines read operations for installment data
type InstallmentReader interface {
	// FindInstallmentsByAmortizationIDs retrieves installments for multiple amortizations, grouped by amortization ID.
	FindInstallmentsByAmortizationIDs(ctx context.Context, amortizationIDs []string) (map[string][]domain.Installment, error)
}

// AmortizationWriter defines write operations for amortization data
type AmortizationWriter interface {
	// SaveAmortization atomically persists the amortization and its installments.
	// A zero Version inserts; otherwise the row is updated only if its stored version
	// still matches, and apperrors.ErrConflict is returned when it does not.
	// On success the aggregate's Version is advanced.
	SaveAmortization(ctx context.Context, amortization *domain.Amortization) error

	// UpdateInstallmentExternalRef stores the reference the external ledger returned for a payment.
	UpdateInstallmentExternalRef(ctx context.Context, installmentID string, externalRef string, updatedBy string, updatedAt time.Time) error

	// DeleteAmortization soft deletes (is_active = false) or physically removes an amortization and its installments.
	DeleteAmortization(ctx context.Context, amortizationID string, soft bool, deletedBy string, deletedAt time.Time) error
}

// AmortizationRepositoryFacade combines all amortization-related repository interfaces
type AmortizationRepositoryFacade interface {
	AmortizationReader
	InstallmentReader
	AmortizationWriter
}

// AmortizationRepositoryWithTx extends AmortizationRepositoryFacade with transaction capabilities
type AmortizationRepositoryWithTx interface {
	AmortizationRepositoryFacade
	TransactionManager
}
