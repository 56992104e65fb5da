package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/core/services"
	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	repo    *MockEntityRepository
	now     time.Time
	service portssvc.CompanySvcFacade
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.repo = new(MockEntityRepository)
	suite.now = day(2024, time.January, 15)
	suite.service = services.NewCompanyService(suite.repo, services.WithCompanyClock(func() time.Time { return suite.now }))
}

func (suite *CompanyServiceTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
}

func TestCompanyService(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}

func (suite *CompanyServiceTestSuite) company(active bool) *domain.Company {
	return &domain.Company{CompanyID: "company-1", Name: "Acme", IsActive: active}
}

func (suite *CompanyServiceTestSuite) TestCreateCompany() {
	ctx := context.Background()
	suite.repo.On("CreateCompany", ctx, mock.MatchedBy(func(c *domain.Company) bool {
		return c.CompanyID == "company-1" && c.Name == "Acme" && c.TaxID == "B1" && c.IsActive &&
			c.CreatedBy == "user-1" && c.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, dto.CreateCompanyRequest{CompanyID: "company-1", Name: "Acme", TaxID: "B1"}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("company-1", company.CompanyID)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_Duplicate() {
	ctx := context.Background()
	dup := fmt.Errorf("%w: failed to insert company company-1 (companies_pkey)", apperrors.ErrDuplicate)
	suite.repo.On("CreateCompany", ctx, mock.AnythingOfType("*domain.Company")).Return(dup).Once()

	company, err := suite.service.CreateCompany(ctx, dto.CreateCompanyRequest{CompanyID: "company-1", Name: "Acme"}, "user-1")

	suite.Nil(company)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_InvalidID() {
	company, err := suite.service.CreateCompany(context.Background(), dto.CreateCompanyRequest{CompanyID: "bad id", Name: "Acme"}, "user-1")

	suite.Nil(company)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "CreateCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestListCompanies() {
	ctx := context.Background()
	suite.repo.On("ListCompanies", ctx, true).Return([]domain.Company{*suite.company(true), *suite.company(false)}, nil).Once()

	companies, err := suite.service.ListCompanies(ctx, true)

	suite.Require().NoError(err)
	suite.Len(companies, 2)
}

func (suite *CompanyServiceTestSuite) TestCreateEntity() {
	ctx := context.Background()
	suite.repo.On("FindCompanyByID", ctx, "company-1").Return(suite.company(true), nil).Once()
	suite.repo.On("CreateEntity", ctx, mock.MatchedBy(func(e *domain.Entity) bool {
		return e.CompanyID == "company-1" && e.EntityID == "entity-1" && e.EntityType == domain.EntityCustomer
	})).Return(nil).Once()

	entity, err := suite.service.CreateEntity(ctx, "company-1",
		dto.CreateEntityRequest{EntityID: "entity-1", Name: "Customer One", EntityType: "customer"}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("entity-1", entity.EntityID)
	suite.Equal(suite.now, entity.CreatedAt)
}

func (suite *CompanyServiceTestSuite) TestCreateEntity_UnknownCompany() {
	ctx := context.Background()
	suite.repo.On("FindCompanyByID", ctx, "missing").Return(nil, fmt.Errorf("%w: company missing", apperrors.ErrNotFound)).Once()

	entity, err := suite.service.CreateEntity(ctx, "missing",
		dto.CreateEntityRequest{EntityID: "entity-1", Name: "Customer One", EntityType: "customer"}, "user-1")

	suite.Nil(entity)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.repo.AssertNotCalled(suite.T(), "CreateEntity", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestCreateEntity_InactiveCompany() {
	ctx := context.Background()
	suite.repo.On("FindCompanyByID", ctx, "company-1").Return(suite.company(false), nil).Once()

	entity, err := suite.service.CreateEntity(ctx, "company-1",
		dto.CreateEntityRequest{EntityID: "entity-1", Name: "Customer One", EntityType: "supplier"}, "user-1")

	suite.Nil(entity)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "CreateEntity", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestGetEntity_NotFound() {
	ctx := context.Background()
	suite.repo.On("FindEntityByID", ctx, "company-1", "nope").
		Return(nil, fmt.Errorf("%w: entity nope in company company-1", apperrors.ErrNotFound)).Once()

	entity, err := suite.service.GetEntity(ctx, "company-1", "nope")

	suite.Nil(entity)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CompanyServiceTestSuite) TestListEntities() {
	ctx := context.Background()
	suite.repo.On("FindCompanyByID", ctx, "company-1").Return(suite.company(true), nil).Once()
	suite.repo.On("ListEntities", ctx, "company-1", domain.EntitySupplier, false).
		Return([]domain.Entity{{EntityID: "s-1", CompanyID: "company-1", EntityType: domain.EntitySupplier}}, nil).Once()

	entities, err := suite.service.ListEntities(ctx, "company-1", dto.ListEntitiesParams{EntityType: "supplier"})

	suite.Require().NoError(err)
	suite.Len(entities, 1)
}

func (suite *CompanyServiceTestSuite) TestListEntities_UnknownCompany() {
	ctx := context.Background()
	suite.repo.On("FindCompanyByID", ctx, "missing").Return(nil, fmt.Errorf("%w: company missing", apperrors.ErrNotFound)).Once()

	entities, err := suite.service.ListEntities(ctx, "missing", dto.ListEntitiesParams{})

	suite.Nil(entities)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
