package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	"github.com/SscSPs/amortization_manager/internal/models"
	"github.com/SscSPs/amortization_manager/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const amortizationColumns = `a.amortization_id, a.company_id, a.entity_id, a.reference, a.description,
	a.total_amount, a.pending_amount, a.paid_amount, a.total_installments, a.paid_installments,
	a.installment_amount, a.interest_rate, a.total_interest, a.paid_interest,
	a.start_date, a.end_date, a.next_due_date, a.status, a.amortization_method, a.frequency,
	a.auto_payment, a.send_notifications, a.sap_doc_entry, a.sap_doc_type, a.sap_base_ref,
	a.is_active, a.version, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

const installmentColumns = `installment_id, amortization_id, installment_number, due_date,
	principal_amount, interest_amount, total_amount, remaining_balance, paid_amount, payment_date,
	status, late_fee, notes, sap_payment_entry, external_reference,
	created_at, created_by, last_updated_at, last_updated_by`

// sortColumns maps sortable fields to their column; the tie-breaker keeps paging stable.
var sortColumns = map[string]string{
	"created_at":    "a.created_at",
	"start_date":    "a.start_date",
	"end_date":      "a.end_date",
	"next_due_date": "a.next_due_date",
	"total_amount":  "a.total_amount",
	"reference":     "a.reference",
	"status":        "a.status",
}

// pastDueExists matches amortizations holding an unsettled installment due before
// the placeholder date, partially paid ones included.
const pastDueExists = `EXISTS (SELECT 1 FROM amortization_installments i
	WHERE i.amortization_id = a.amortization_id AND i.paid_amount < i.total_amount AND i.due_date < %s)`

// overdueExists matches amortizations holding an installment in overdue status:
// nothing paid and due before the placeholder date. A partial payment keeps the
// installment partial, so the amortization stays active.
const overdueExists = `EXISTS (SELECT 1 FROM amortization_installments i
	WHERE i.amortization_id = a.amortization_id AND i.paid_amount = 0 AND i.due_date < %s)`

type PgxAmortizationRepository struct {
	BaseRepository
}

// newPgxAmortizationRepository creates a new repository for amortization and installment data.
func newPgxAmortizationRepository(pool *pgxpool.Pool) portsrepo.AmortizationRepositoryWithTx {
	return &PgxAmortizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAmortizationRepository implements portsrepo.AmortizationRepositoryWithTx
var _ portsrepo.AmortizationRepositoryWithTx = (*PgxAmortizationRepository)(nil)

// SaveAmortization inserts or updates the amortization row and syncs its installments in one transaction.
func (r *PgxAmortizationRepository) SaveAmortization(ctx context.Context, amortization *domain.Amortization) error {
	m := mapping.ToModelAmortization(*amortization)
	nextVersion := m.Version + 1

	err := r.WithTransaction(ctx, func(tx pgx.Tx) error {
		if m.Version == 0 {
			if err := insertAmortization(ctx, tx, m); err != nil {
				return err
			}
		} else {
			if err := updateAmortization(ctx, tx, m); err != nil {
				return err
			}
		}
		return saveInstallments(ctx, tx, amortization.ID, amortization.Installments)
	})
	if err != nil {
		return err
	}

	amortization.Version = nextVersion
	return nil
}

func insertAmortization(ctx context.Context, tx pgx.Tx, m models.Amortization) error {
	query := `
		INSERT INTO amortizations (
			amortization_id, company_id, entity_id, reference, description,
			total_amount, pending_amount, paid_amount, total_installments, paid_installments,
			installment_amount, interest_rate, total_interest, paid_interest,
			start_date, end_date, next_due_date, status, amortization_method, frequency,
			auto_payment, send_notifications, sap_doc_entry, sap_doc_type, sap_base_ref,
			is_active, version, created_at, created_by, last_updated_at, last_updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, 1, $27, $28, $29, $30
		);
	`
	_, err := tx.Exec(ctx, query,
		m.AmortizationID, m.CompanyID, m.EntityID, m.Reference, m.Description,
		m.TotalAmount, m.PendingAmount, m.PaidAmount, m.TotalInstallments, m.PaidInstallments,
		m.InstallmentAmount, m.InterestRate, m.TotalInterest, m.PaidInterest,
		m.StartDate, m.EndDate, m.NextDueDate, m.Status, m.Method, m.Frequency,
		m.AutoPayment, m.SendNotifications, m.SAPDocEntry, m.SAPDocType, m.SAPBaseRef,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert amortization")
	}
	return nil
}

func updateAmortization(ctx context.Context, tx pgx.Tx, m models.Amortization) error {
	query := `
		UPDATE amortizations SET
			reference = $3, description = $4,
			total_amount = $5, pending_amount = $6, paid_amount = $7,
			total_installments = $8, paid_installments = $9, installment_amount = $10,
			interest_rate = $11, total_interest = $12, paid_interest = $13,
			start_date = $14, end_date = $15, next_due_date = $16,
			status = $17, amortization_method = $18, frequency = $19,
			auto_payment = $20, send_notifications = $21,
			sap_doc_entry = $22, sap_doc_type = $23, sap_base_ref = $24,
			is_active = $25, last_updated_at = $26, last_updated_by = $27,
			version = version + 1
		WHERE amortization_id = $1 AND version = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.AmortizationID, m.Version, m.Reference, m.Description,
		m.TotalAmount, m.PendingAmount, m.PaidAmount,
		m.TotalInstallments, m.PaidInstallments, m.InstallmentAmount,
		m.InterestRate, m.TotalInterest, m.PaidInterest,
		m.StartDate, m.EndDate, m.NextDueDate,
		m.Status, m.Method, m.Frequency,
		m.AutoPayment, m.SendNotifications,
		m.SAPDocEntry, m.SAPDocType, m.SAPBaseRef,
		m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to update amortization")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: amortization %s changed since version %d", apperrors.ErrConflict, m.AmortizationID, m.Version)
	}
	return nil
}

// saveInstallments replaces the stored schedule with the given one. Stale rows are removed
// first so a regenerated schedule can reuse installment numbers.
func saveInstallments(ctx context.Context, tx pgx.Tx, amortizationID string, installments []domain.Installment) error {
	ids := make([]string, len(installments))
	for i, inst := range installments {
		ids[i] = inst.ID
	}

	_, err := tx.Exec(ctx,
		`DELETE FROM amortization_installments WHERE amortization_id = $1 AND NOT (installment_id = ANY($2::uuid[]));`,
		amortizationID, ids,
	)
	if err != nil {
		return translateError(err, "failed to remove stale installments")
	}
	if len(installments) == 0 {
		return nil
	}

	// The ledger reference is written out of band, so never clear it from a stale copy.
	query := `
		INSERT INTO amortization_installments (
			installment_id, amortization_id, installment_number, due_date,
			principal_amount, interest_amount, total_amount, remaining_balance, paid_amount, payment_date,
			status, late_fee, notes, sap_payment_entry, external_reference,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (installment_id) DO UPDATE SET
			installment_number = EXCLUDED.installment_number,
			due_date = EXCLUDED.due_date,
			principal_amount = EXCLUDED.principal_amount,
			interest_amount = EXCLUDED.interest_amount,
			total_amount = EXCLUDED.total_amount,
			remaining_balance = EXCLUDED.remaining_balance,
			paid_amount = EXCLUDED.paid_amount,
			payment_date = EXCLUDED.payment_date,
			status = EXCLUDED.status,
			late_fee = EXCLUDED.late_fee,
			notes = EXCLUDED.notes,
			sap_payment_entry = COALESCE(EXCLUDED.sap_payment_entry, amortization_installments.sap_payment_entry),
			external_reference = COALESCE(EXCLUDED.external_reference, amortization_installments.external_reference),
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	batch := &pgx.Batch{}
	for _, inst := range installments {
		m := mapping.ToModelInstallment(inst)
		batch.Queue(query,
			m.InstallmentID, amortizationID, m.InstallmentNumber, m.DueDate,
			m.PrincipalAmount, m.InterestAmount, m.TotalAmount, m.RemainingBalance, m.PaidAmount, m.PaymentDate,
			m.Status, m.LateFee, m.Notes, m.SAPPaymentEntry, m.ExternalReference,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateError(err, "failed to save installments")
	}
	return nil
}

// FindAmortizationByID retrieves an active amortization with its installments.
func (r *PgxAmortizationRepository) FindAmortizationByID(ctx context.Context, amortizationID string) (*domain.Amortization, error) {
	query := `SELECT ` + amortizationColumns + ` FROM amortizations a WHERE a.amortization_id = $1 AND a.is_active;`

	rows, err := r.Pool.Query(ctx, query, amortizationID)
	if err != nil {
		return nil, translateError(err, "failed to query amortization")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[models.Amortization])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: amortization %s", apperrors.ErrNotFound, amortizationID)
		}
		return nil, translateError(err, "failed to scan amortization")
	}

	amortization := mapping.ToDomainAmortization(m)
	byID, err := r.FindInstallmentsByAmortizationIDs(ctx, []string{amortizationID})
	if err != nil {
		return nil, err
	}
	amortization.Installments = byID[amortizationID]
	return &amortization, nil
}

// ListAmortizations retrieves one page of amortizations matching the filter and the total match count.
func (r *PgxAmortizationRepository) ListAmortizations(ctx context.Context, filter domain.AmortizationFilter, opts domain.ListOptions) ([]domain.Amortization, int, error) {
	where, args := buildAmortizationWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM amortizations a WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateError(err, "failed to count amortizations")
	}
	if total == 0 {
		return []domain.Amortization{}, 0, nil
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`SELECT %s FROM amortizations a WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d;`,
		amortizationColumns, where, orderBy(opts), len(args)-1, len(args))

	amortizations, err := r.queryAmortizations(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return amortizations, total, nil
}

// ListAmortizationsForReport retrieves every matching amortization with installments loaded.
func (r *PgxAmortizationRepository) ListAmortizationsForReport(ctx context.Context, filter domain.AmortizationFilter) ([]domain.Amortization, error) {
	where, args := buildAmortizationWhere(filter)
	query := `SELECT ` + amortizationColumns + ` FROM amortizations a WHERE ` + where + ` ORDER BY a.start_date, a.amortization_id;`

	amortizations, err := r.queryAmortizations(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(amortizations) == 0 {
		return amortizations, nil
	}

	ids := make([]string, len(amortizations))
	for i := range amortizations {
		ids[i] = amortizations[i].ID
	}
	byID, err := r.FindInstallmentsByAmortizationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range amortizations {
		amortizations[i].Installments = byID[amortizations[i].ID]
	}
	return amortizations, nil
}

func (r *PgxAmortizationRepository) queryAmortizations(ctx context.Context, query string, args ...any) ([]domain.Amortization, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list amortizations")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Amortization])
	if err != nil {
		return nil, translateError(err, "failed to scan amortizations")
	}

	amortizations := make([]domain.Amortization, len(ms))
	for i, m := range ms {
		amortizations[i] = mapping.ToDomainAmortization(m)
	}
	return amortizations, nil
}

// FindInstallmentsByAmortizationIDs retrieves installments grouped by amortization, ordered by number.
func (r *PgxAmortizationRepository) FindInstallmentsByAmortizationIDs(ctx context.Context, amortizationIDs []string) (map[string][]domain.Installment, error) {
	result := make(map[string][]domain.Installment, len(amortizationIDs))
	if len(amortizationIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + installmentColumns + ` FROM amortization_installments
		WHERE amortization_id = ANY($1::uuid[])
		ORDER BY amortization_id, installment_number;`

	rows, err := r.Pool.Query(ctx, query, amortizationIDs)
	if err != nil {
		return nil, translateError(err, "failed to query installments")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Installment])
	if err != nil {
		return nil, translateError(err, "failed to scan installments")
	}

	for _, m := range ms {
		result[m.AmortizationID] = append(result[m.AmortizationID], mapping.ToDomainInstallment(m))
	}
	return result, nil
}

// UpdateInstallmentExternalRef stores the ledger reference of a posted payment. Numeric
// references are also kept as the SAP payment entry.
func (r *PgxAmortizationRepository) UpdateInstallmentExternalRef(ctx context.Context, installmentID string, externalRef string, updatedBy string, updatedAt time.Time) error {
	var sapEntry *int
	if n, err := strconv.Atoi(externalRef); err == nil {
		sapEntry = &n
	}

	query := `
		UPDATE amortization_installments
		SET external_reference = $2,
			sap_payment_entry = COALESCE($3, sap_payment_entry),
			last_updated_at = $4,
			last_updated_by = $5
		WHERE installment_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, installmentID, externalRef, sapEntry, updatedAt, updatedBy)
	if err != nil {
		return translateError(err, "failed to update installment external reference")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, installmentID)
	}
	return nil
}

// DeleteAmortization deactivates or removes an amortization. Installments go with it on a hard delete.
func (r *PgxAmortizationRepository) DeleteAmortization(ctx context.Context, amortizationID string, soft bool, deletedBy string, deletedAt time.Time) error {
	var (
		query string
		args  []any
	)
	if soft {
		query = `
			UPDATE amortizations
			SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3, version = version + 1
			WHERE amortization_id = $1 AND is_active;
		`
		args = []any{amortizationID, deletedAt, deletedBy}
	} else {
		query = `DELETE FROM amortizations WHERE amortization_id = $1;`
		args = []any{amortizationID}
	}

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to delete amortization")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: amortization %s", apperrors.ErrNotFound, amortizationID)
	}
	return nil
}

// buildAmortizationWhere renders the filter as a WHERE clause over alias a.
func buildAmortizationWhere(filter domain.AmortizationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !filter.IncludeInactive {
		conds = append(conds, "a.is_active")
	}
	if filter.CompanyID != "" {
		conds = append(conds, "a.company_id = "+arg(filter.CompanyID))
	}
	if filter.EntityID != "" {
		conds = append(conds, "a.entity_id = "+arg(filter.EntityID))
	}
	if filter.Method != "" {
		conds = append(conds, "a.amortization_method = "+arg(string(filter.Method)))
	}
	if filter.Frequency != "" {
		conds = append(conds, "a.frequency = "+arg(string(filter.Frequency)))
	}
	if filter.StartFrom != nil {
		conds = append(conds, "a.start_date >= "+arg(*filter.StartFrom))
	}
	if filter.StartTo != nil {
		conds = append(conds, "a.start_date <= "+arg(*filter.StartTo))
	}
	if filter.AmountFrom != nil {
		conds = append(conds, "a.total_amount >= "+arg(*filter.AmountFrom))
	}
	if filter.AmountTo != nil {
		conds = append(conds, "a.total_amount <= "+arg(*filter.AmountTo))
	}

	// Stored status lags behind the calendar, so active and overdue are told apart
	// by due dates with the same rule DeriveStatus applies.
	switch filter.Status {
	case "":
	case domain.StatusActive:
		conds = append(conds, "a.status IN ('active', 'overdue') AND NOT "+fmt.Sprintf(overdueExists, arg(filter.AsOf)))
	case domain.StatusOverdue:
		conds = append(conds, "a.status IN ('active', 'overdue') AND "+fmt.Sprintf(overdueExists, arg(filter.AsOf)))
	default:
		conds = append(conds, "a.status = "+arg(string(filter.Status)))
	}

	// overdue_only selects anything past due, like the installment list and the aging report.
	if filter.OverdueOnly {
		conds = append(conds, "a.status NOT IN ('cancelled', 'completed') AND "+fmt.Sprintf(pastDueExists, arg(filter.AsOf)))
	}

	if len(conds) == 0 {
		return "TRUE", args
	}
	return strings.Join(conds, " AND "), args
}

func orderBy(opts domain.ListOptions) string {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = sortColumns[domain.DefaultSortField]
	}
	direction := "DESC"
	if opts.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s NULLS LAST, a.amortization_id %s", column, direction, direction)
}
