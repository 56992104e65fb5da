package services

import (
	"context"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/SscSPs/amortization_manager/internal/dto"
)

// CompanySvc defines operations on companies
type CompanySvc interface {
	// CreateCompany registers a company.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)

	// GetCompany retrieves a company.
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves companies, inactive ones only when includeInactive is set.
	ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error)
}

// EntitySvc defines operations on the counterparties of a company
type EntitySvc interface {
	// CreateEntity registers a counterparty under an active company.
	CreateEntity(ctx context.Context, companyID string, req dto.CreateEntityRequest, userID string) (*domain.Entity, error)

	// GetEntity retrieves a counterparty of a company.
	GetEntity(ctx context.Context, companyID, entityID string) (*domain.Entity, error)

	// ListEntities retrieves the counterparties of a company.
	ListEntities(ctx context.Context, companyID string, params dto.ListEntitiesParams) ([]domain.Entity, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanySvc
	EntitySvc
}
