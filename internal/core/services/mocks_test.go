package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// MockAmortizationRepository is a mock type for the AmortizationRepositoryFacade interface
type MockAmortizationRepository struct {
	mock.Mock
}

func (m *MockAmortizationRepository) FindAmortizationByID(ctx context.Context, amortizationID string) (*domain.Amortization, error) {
	args := m.Called(ctx, amortizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amortization), args.Error(1)
}

func (m *MockAmortizationRepository) ListAmortizations(ctx context.Context, filter domain.AmortizationFilter, opts domain.ListOptions) ([]domain.Amortization, int, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Amortization), args.Int(1), args.Error(2)
}

func (m *MockAmortizationRepository) ListAmortizationsForReport(ctx context.Context, filter domain.AmortizationFilter) ([]domain.Amortization, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Amortization), args.Error(1)
}

func (m *MockAmortizationRepository) FindInstallmentsByAmortizationIDs(ctx context.Context, amortizationIDs []string) (map[string][]domain.Installment, error) {
	args := m.Called(ctx, amortizationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.Installment), args.Error(1)
}

func (m *MockAmortizationRepository) SaveAmortization(ctx context.Context, amortization *domain.Amortization) error {
	args := m.Called(ctx, amortization)
	return args.Error(0)
}

func (m *MockAmortizationRepository) UpdateInstallmentExternalRef(ctx context.Context, installmentID string, externalRef string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, installmentID, externalRef, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAmortizationRepository) DeleteAmortization(ctx context.Context, amortizationID string, soft bool, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, amortizationID, soft, deletedBy, deletedAt)
	return args.Error(0)
}

var _ portsrepo.AmortizationRepositoryFacade = (*MockAmortizationRepository)(nil)

// MockEntityRepository is a mock type for the EntityRepositoryFacade interface
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) EntityExists(ctx context.Context, companyID, entityID string) (bool, error) {
	args := m.Called(ctx, companyID, entityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntityRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockEntityRepository) ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, companyID, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, companyID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListEntities(ctx context.Context, companyID string, entityType domain.EntityType, includeInactive bool) ([]domain.Entity, error) {
	args := m.Called(ctx, companyID, entityType, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) CreateCompany(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockEntityRepository) CreateEntity(ctx context.Context, entity *domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

var _ portsrepo.EntityRepositoryFacade = (*MockEntityRepository)(nil)

// MockLedgerClient is a mock type for the LedgerClient interface
type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) RecordEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

var _ portssvc.LedgerClient = (*MockLedgerClient)(nil)

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

// MockMetrics is a mock type for the MetricsRecorder interface
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) AmortizationCreated(method string) {
	m.Called(method)
}

func (m *MockMetrics) ScheduleGenerated(method string, installments int) {
	m.Called(method, installments)
}

func (m *MockMetrics) PaymentRecorded(method string, amount float64) {
	m.Called(method, amount)
}

func (m *MockMetrics) LedgerPosted(success bool) {
	m.Called(success)
}

func (m *MockMetrics) ConflictRetried(operation string) {
	m.Called(operation)
}

var _ portssvc.MetricsRecorder = (*MockMetrics)(nil)
