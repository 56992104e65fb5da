package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/SscSPs/amortization_manager/internal/handlers"
	"github.com/SscSPs/amortization_manager/internal/platform/config"
	"github.com/SscSPs/amortization_manager/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) CreateEntity(ctx context.Context, companyID string, req dto.CreateEntityRequest, userID string) (*domain.Entity, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockCompanyService) GetEntity(ctx context.Context, companyID, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, companyID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockCompanyService) ListEntities(ctx context.Context, companyID string, params dto.ListEntitiesParams) ([]domain.Entity, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

// --- Test Suite Setup ---
type CompanyHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockCompanyService
	token   string
	userID  string
	company *domain.Company
}

func (suite *CompanyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockSvc = new(MockCompanyService)
	suite.userID = "user-123"
	cfg := &config.Config{JWTSecret: "test-secret", JWTIssuer: "amortization-manager", IsProduction: true}

	token, err := utils.GenerateJWT(suite.userID, cfg.JWTSecret, time.Hour, cfg.JWTIssuer)
	suite.Require().NoError(err)
	suite.token = token

	suite.router = gin.New()
	err = handlers.RegisterRoutes(suite.router, cfg,
		&portssvc.ServiceContainer{Amortization: new(MockAmortizationService), Company: suite.mockSvc},
		handlers.RouteOptions{},
	)
	suite.Require().NoError(err)

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	suite.company, err = domain.NewCompany("company-1", "Acme", "B12345678", suite.userID, now)
	suite.Require().NoError(err)
}

func (suite *CompanyHandlerTestSuite) TearDownTest() {
	suite.mockSvc.AssertExpectations(suite.T())
}

func TestCompanyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyHandlerTestSuite))
}

func (suite *CompanyHandlerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CompanyHandlerTestSuite) TestCreateCompany_Success() {
	suite.mockSvc.On("CreateCompany", mock.Anything,
		dto.CreateCompanyRequest{CompanyID: "company-1", Name: "Acme", TaxID: "B12345678"}, suite.userID).
		Return(suite.company, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/companies", `{"company_id":"company-1","name":"Acme","tax_id":"B12345678"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CompanyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("company-1", resp.ID)
	suite.Equal("B12345678", resp.TaxID)
	suite.True(resp.IsActive)
}

func (suite *CompanyHandlerTestSuite) TestCreateCompany_Duplicate() {
	suite.mockSvc.On("CreateCompany", mock.Anything, mock.AnythingOfType("dto.CreateCompanyRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: company company-1", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/companies", `{"company_id":"company-1","name":"Acme"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *CompanyHandlerTestSuite) TestCreateCompany_MissingName() {
	w := suite.do(http.MethodPost, "/api/v1/companies", `{"company_id":"company-1"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateCompany", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyHandlerTestSuite) TestListCompanies() {
	suite.mockSvc.On("ListCompanies", mock.Anything, true).Return([]domain.Company{*suite.company}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/companies?include_inactive=true", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCompaniesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Total)
	suite.Equal("company-1", resp.Companies[0].ID)
}

func (suite *CompanyHandlerTestSuite) TestGetCompany_NotFound() {
	suite.mockSvc.On("GetCompany", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: company missing", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/companies/missing", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CompanyHandlerTestSuite) TestCreateEntity_Success() {
	entity, err := domain.NewEntity(suite.company, "entity-1", "Customer One", domain.EntityCustomer, suite.userID, suite.company.CreatedAt)
	suite.Require().NoError(err)
	suite.mockSvc.On("CreateEntity", mock.Anything, "company-1",
		dto.CreateEntityRequest{EntityID: "entity-1", Name: "Customer One", EntityType: "customer"}, suite.userID).
		Return(entity, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/companies/company-1/entities",
		`{"entity_id":"entity-1","name":"Customer One","entity_type":"customer"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("entity-1", resp.ID)
	suite.Equal("company-1", resp.CompanyID)
	suite.Equal("customer", resp.EntityType)
}

func (suite *CompanyHandlerTestSuite) TestCreateEntity_RejectsUnknownType() {
	w := suite.do(http.MethodPost, "/api/v1/companies/company-1/entities",
		`{"entity_id":"entity-1","name":"Partner","entity_type":"partner"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyHandlerTestSuite) TestListEntities() {
	suite.mockSvc.On("ListEntities", mock.Anything, "company-1", dto.ListEntitiesParams{EntityType: "supplier"}).
		Return([]domain.Entity{{EntityID: "s-1", CompanyID: "company-1", EntityType: domain.EntitySupplier, IsActive: true}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/companies/company-1/entities?entity_type=supplier", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntitiesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Total)
	suite.Equal("supplier", resp.Entities[0].EntityType)
}

func (suite *CompanyHandlerTestSuite) TestGetEntity_NotFound() {
	suite.mockSvc.On("GetEntity", mock.Anything, "company-1", "nope").
		Return(nil, fmt.Errorf("%w: entity nope", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/companies/company-1/entities/nope", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CompanyHandlerTestSuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}
