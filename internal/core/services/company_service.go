package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/dto"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	repo  portsrepo.EntityRepositoryFacade
	clock func() time.Time
}

// CompanyOption is a functional option for configuring the company service
type CompanyOption func(*companyService)

// WithCompanyClock overrides the time source.
func WithCompanyClock(clock func() time.Time) CompanyOption {
	return func(s *companyService) {
		s.clock = clock
	}
}

// NewCompanyService creates a new company service with the provided options
func NewCompanyService(repo portsrepo.EntityRepositoryFacade, options ...CompanyOption) portssvc.CompanySvcFacade {
	svc := &companyService{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		opt(svc)
	}
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	company, err := domain.NewCompany(req.CompanyID, req.Name, req.TaxID, userID, s.clock())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to create company", slog.String("company_id", company.CompanyID))
		return nil, err
	}
	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return company, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.repo.FindCompanyByID(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get company", slog.String("company_id", companyID))
		return nil, err
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	companies, err := s.repo.ListCompanies(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, err
	}
	return companies, nil
}

func (s *companyService) CreateEntity(ctx context.Context, companyID string, req dto.CreateEntityRequest, userID string) (*domain.Entity, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	entity, err := domain.NewEntity(company, req.EntityID, req.Name, domain.EntityType(req.EntityType), userID, s.clock())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateEntity(ctx, entity); err != nil {
		s.LogError(ctx, err, "Failed to create entity",
			slog.String("company_id", entity.CompanyID),
			slog.String("entity_id", entity.EntityID))
		return nil, err
	}
	s.LogInfo(ctx, "Entity created",
		slog.String("company_id", entity.CompanyID),
		slog.String("entity_id", entity.EntityID),
		slog.String("entity_type", string(entity.EntityType)))
	return entity, nil
}

func (s *companyService) GetEntity(ctx context.Context, companyID, entityID string) (*domain.Entity, error) {
	entity, err := s.repo.FindEntityByID(ctx, companyID, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get entity",
			slog.String("company_id", companyID),
			slog.String("entity_id", entityID))
		return nil, err
	}
	return entity, nil
}

// ListEntities reports an unknown company as not found rather than as an empty list.
func (s *companyService) ListEntities(ctx context.Context, companyID string, params dto.ListEntitiesParams) ([]domain.Entity, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	entities, err := s.repo.ListEntities(ctx, company.CompanyID, domain.EntityType(params.EntityType), params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities", slog.String("company_id", company.CompanyID))
		return nil, err
	}
	return entities, nil
}
