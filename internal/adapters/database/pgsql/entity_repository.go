package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	"github.com/SscSPs/amortization_manager/internal/models"
	"github.com/SscSPs/amortization_manager/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

// EntityExists reports whether an active entity belongs to an active company.
func (r *PgxEntityRepository) EntityExists(ctx context.Context, companyID, entityID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM entities e
			JOIN companies c ON c.company_id = e.company_id
			WHERE e.company_id = $1 AND e.entity_id = $2 AND e.is_active AND c.is_active
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, companyID, entityID).Scan(&exists); err != nil {
		return false, translateError(err, "failed to check entity")
	}
	return exists, nil
}

// FindCompanyByID retrieves a company by ID.
func (r *PgxEntityRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, tax_id, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, translateError(err, "failed to query company")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[models.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return nil, translateError(err, "failed to scan company")
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListCompanies retrieves companies ordered by id.
func (r *PgxEntityRepository) ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	query := `
		SELECT company_id, name, tax_id, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE $1 OR is_active
		ORDER BY company_id;
	`
	rows, err := r.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, translateError(err, "failed to list companies")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Company])
	if err != nil {
		return nil, translateError(err, "failed to scan companies")
	}

	companies := make([]domain.Company, len(ms))
	for i, m := range ms {
		companies[i] = mapping.ToDomainCompany(m)
	}
	return companies, nil
}

// CreateCompany inserts a company.
func (r *PgxEntityRepository) CreateCompany(ctx context.Context, company *domain.Company) error {
	m := mapping.ToModelCompany(*company)
	query := `
		INSERT INTO companies (company_id, name, tax_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.TaxID, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert company "+company.CompanyID)
	}
	return nil
}

// FindEntityByID retrieves a counterparty of a company.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, companyID, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, company_id, name, entity_type, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE company_id = $1 AND entity_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, entityID)
	if err != nil {
		return nil, translateError(err, "failed to query entity")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[models.Entity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entity %s in company %s", apperrors.ErrNotFound, entityID, companyID)
		}
		return nil, translateError(err, "failed to scan entity")
	}
	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}

// ListEntities retrieves the counterparties of a company ordered by id. An empty
// entityType matches every type.
func (r *PgxEntityRepository) ListEntities(ctx context.Context, companyID string, entityType domain.EntityType, includeInactive bool) ([]domain.Entity, error) {
	query := `
		SELECT entity_id, company_id, name, entity_type, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE company_id = $1 AND ($2 = '' OR entity_type = $2) AND ($3 OR is_active)
		ORDER BY entity_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, string(entityType), includeInactive)
	if err != nil {
		return nil, translateError(err, "failed to list entities")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Entity])
	if err != nil {
		return nil, translateError(err, "failed to scan entities")
	}

	entities := make([]domain.Entity, len(ms))
	for i, m := range ms {
		entities[i] = mapping.ToDomainEntity(m)
	}
	return entities, nil
}

// CreateEntity inserts a counterparty.
func (r *PgxEntityRepository) CreateEntity(ctx context.Context, entity *domain.Entity) error {
	m := mapping.ToModelEntity(*entity)
	query := `
		INSERT INTO entities (entity_id, company_id, name, entity_type, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntityID, m.CompanyID, m.Name, m.EntityType, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert entity "+entity.EntityID)
	}
	return nil
}
