package repositories

import (
	"context"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
)

// EntityReader defines lookups of companies and their counterparties
type EntityReader interface {
	// EntityExists reports whether the entity exists and belongs to the company.
	EntityExists(ctx context.Context, companyID, entityID string) (bool, error)

	// FindCompanyByID retrieves a company.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves companies ordered by id.
	ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error)

	// FindEntityByID retrieves a counterparty of a company.
	FindEntityByID(ctx context.Context, companyID, entityID string) (*domain.Entity, error)

	// ListEntities retrieves the counterparties of a company, optionally of one type.
	ListEntities(ctx context.Context, companyID string, entityType domain.EntityType, includeInactive bool) ([]domain.Entity, error)
}

// EntityWriter defines inserts of companies and counterparties
type EntityWriter interface {
	// CreateCompany inserts a company. An existing id yields ErrDuplicate.
	CreateCompany(ctx context.Context, company *domain.Company) error

	// CreateEntity inserts a counterparty. An existing id within the company yields ErrDuplicate.
	CreateEntity(ctx context.Context, entity *domain.Entity) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
