package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultMaxAttempts   = 3
	defaultLedgerTimeout = 10 * time.Second
)

// amortizationService implements the AmortizationSvcFacade interface
type amortizationService struct {
	BaseService
	repo          portsrepo.AmortizationRepositoryFacade
	entityRepo    portsrepo.EntityReader
	ledger        portssvc.LedgerClient
	publisher     portssvc.EventPublisher
	metrics       portssvc.MetricsRecorder
	schedule      domain.ScheduleConfig
	clock         func() time.Time
	maxAttempts   int
	newBackOff    func() backoff.BackOff
	ledgerTimeout time.Duration
}

// AmortizationOption is a functional option for configuring the amortization service
type AmortizationOption func(*amortizationService)

// WithEntityRepository enables the company/entity existence check on create.
func WithEntityRepository(repo portsrepo.EntityReader) AmortizationOption {
	return func(s *amortizationService) {
		s.entityRepo = repo
	}
}

// WithLedgerClient adds the external ledger used when a payment asks for a posting.
func WithLedgerClient(client portssvc.LedgerClient) AmortizationOption {
	return func(s *amortizationService) {
		s.ledger = client
	}
}

// WithEventPublisher adds the publisher that receives committed domain events.
func WithEventPublisher(publisher portssvc.EventPublisher) AmortizationOption {
	return func(s *amortizationService) {
		s.publisher = publisher
	}
}

// WithMetrics adds business metrics.
func WithMetrics(recorder portssvc.MetricsRecorder) AmortizationOption {
	return func(s *amortizationService) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithScheduleConfig overrides the schedule engine bounds.
func WithScheduleConfig(cfg domain.ScheduleConfig) AmortizationOption {
	return func(s *amortizationService) {
		s.schedule = cfg
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) AmortizationOption {
	return func(s *amortizationService) {
		s.clock = clock
	}
}

// WithMaxAttempts bounds how often a read-modify-write is tried when it hits a concurrent modification.
func WithMaxAttempts(n int) AmortizationOption {
	return func(s *amortizationService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryBackOff overrides the wait policy between attempts.
func WithRetryBackOff(newBackOff func() backoff.BackOff) AmortizationOption {
	return func(s *amortizationService) {
		s.newBackOff = newBackOff
	}
}

// WithLedgerTimeout bounds the external ledger call.
func WithLedgerTimeout(d time.Duration) AmortizationOption {
	return func(s *amortizationService) {
		if d > 0 {
			s.ledgerTimeout = d
		}
	}
}

// NewAmortizationService creates a new amortization service with the provided options
func NewAmortizationService(repo portsrepo.AmortizationRepositoryFacade, options ...AmortizationOption) portssvc.AmortizationSvcFacade {
	svc := &amortizationService{
		repo:          repo,
		metrics:       noopMetrics{},
		schedule:      domain.DefaultScheduleConfig(),
		clock:         func() time.Time { return time.Now().UTC() },
		maxAttempts:   defaultMaxAttempts,
		newBackOff:    defaultBackOff,
		ledgerTimeout: defaultLedgerTimeout,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure amortizationService implements the AmortizationSvcFacade interface
var _ portssvc.AmortizationSvcFacade = (*amortizationService)(nil)

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	return b
}

func (s *amortizationService) now() time.Time {
	return s.clock()
}

// withConflictRetry repeats fn while it fails with a concurrent modification.
// Any other error stops the loop at once.
func (s *amortizationService) withConflictRetry(ctx context.Context, operation string, fn func() error) error {
	retries := uint64(s.maxAttempts - 1)
	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), retries), ctx)

	return backoff.RetryNotify(func() error {
		err := fn()
		if err == nil || apperrors.IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy, func(err error, wait time.Duration) {
		s.metrics.ConflictRetried(operation)
		s.LogDebug(ctx, "Retrying after concurrent modification",
			slog.String("operation", operation),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))
	})
}

func (s *amortizationService) publish(ctx context.Context, events ...domain.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.LogWarn(ctx, err, "Failed to publish amortization events",
			slog.String("event_type", events[0].EventType),
			slog.String("amortization_id", events[0].AggregateID))
	}
}

func (s *amortizationService) CreateAmortization(ctx context.Context, req dto.CreateAmortizationRequest, generateInstallments bool, userID string) (*domain.Amortization, error) {
	startDate, err := dates.Parse(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	if s.entityRepo != nil {
		exists, err := s.entityRepo.EntityExists(ctx, req.CompanyID, req.EntityID)
		if err != nil {
			s.LogError(ctx, err, "Failed to look up entity",
				slog.String("company_id", req.CompanyID),
				slog.String("entity_id", req.EntityID))
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: entity %s in company %s", apperrors.ErrNotFound, req.EntityID, req.CompanyID)
		}
	}

	method := domain.AmortizationMethod(req.Method)
	if method == "" {
		method = domain.MethodFrench
	}
	frequency := domain.Frequency(req.Frequency)
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}
	sendNotifications := true
	if req.SendNotifications != nil {
		sendNotifications = *req.SendNotifications
	}

	now := s.now()
	amortization, err := domain.NewAmortization(domain.NewAmortizationParams{
		CompanyID:         req.CompanyID,
		EntityID:          req.EntityID,
		Reference:         req.Reference,
		Description:       req.Description,
		TotalAmount:       req.TotalAmount,
		TotalInstallments: req.TotalInstallments,
		InterestRate:      req.InterestRate,
		Method:            method,
		Frequency:         frequency,
		StartDate:         startDate,
		AutoPayment:       req.AutoPayment,
		SendNotifications: sendNotifications,
		External: domain.ExternalReference{
			DocEntry: req.SAPDocEntry,
			DocType:  req.SAPDocType,
			BaseRef:  req.SAPBaseRef,
		},
		CreatedBy: userID,
		Now:       now,
	}, s.schedule, generateInstallments)
	if err != nil {
		return nil, err
	}
	amortization.RecomputeStatus(now)

	if err := s.repo.SaveAmortization(ctx, amortization); err != nil {
		s.LogError(ctx, err, "Failed to save amortization",
			slog.String("reference", amortization.Reference),
			slog.String("company_id", amortization.CompanyID))
		return nil, err
	}

	s.metrics.AmortizationCreated(string(amortization.Method))
	if generateInstallments {
		s.metrics.ScheduleGenerated(string(amortization.Method), len(amortization.Installments))
	}
	s.LogInfo(ctx, "Amortization created",
		slog.String("amortization_id", amortization.ID),
		slog.String("reference", amortization.Reference),
		slog.Int("installments", len(amortization.Installments)))
	s.publish(ctx, domain.NewAmortizationEvent(domain.EventAmortizationCreated, amortization, now, map[string]any{
		"reference":          amortization.Reference,
		"entity_id":          amortization.EntityID,
		"total_amount":       amortization.TotalAmount.String(),
		"total_installments": amortization.TotalInstallments,
		"method":             string(amortization.Method),
	}))
	return amortization, nil
}

func (s *amortizationService) GetAmortization(ctx context.Context, amortizationID string, includeInstallments bool) (*domain.Amortization, error) {
	amortization, err := s.repo.FindAmortizationByID(ctx, amortizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get amortization", slog.String("amortization_id", amortizationID))
		}
		return nil, err
	}

	amortization.RefreshForRead(s.now())
	if !includeInstallments {
		amortization.Installments = nil
	}
	return amortization, nil
}

func (s *amortizationService) ListAmortizations(ctx context.Context, params dto.ListAmortizationsParams) (*dto.ListAmortizationsResponse, error) {
	today := s.now()
	filter, err := listFilter(params, today)
	if err != nil {
		return nil, err
	}
	page, opts := listOptions(params)

	items, total, err := s.repo.ListAmortizations(ctx, filter, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list amortizations", slog.String("company_id", params.CompanyID))
		return nil, err
	}

	if len(items) > 0 {
		ids := make([]string, len(items))
		for i := range items {
			ids[i] = items[i].ID
		}
		installments, err := s.repo.FindInstallmentsByAmortizationIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load installments for list", slog.Int("count", len(ids)))
			return nil, err
		}
		for i := range items {
			items[i].Installments = installments[items[i].ID]
			items[i].RefreshForRead(today)
			items[i].Installments = nil
		}
	}

	return &dto.ListAmortizationsResponse{
		Items:      dto.ToAmortizationResponses(items, today),
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
		HasNext:    page.HasNext(total),
		HasPrev:    page.HasPrev(),
	}, nil
}

func (s *amortizationService) ListInstallments(ctx context.Context, amortizationID string, params dto.ListInstallmentsParams) ([]domain.Installment, error) {
	amortization, err := s.GetAmortization(ctx, amortizationID, true)
	if err != nil {
		return nil, err
	}

	today := s.now()
	result := make([]domain.Installment, 0, len(amortization.Installments))
	for _, inst := range amortization.Installments {
		if params.Status != "" && inst.Status != domain.InstallmentStatus(params.Status) {
			continue
		}
		if params.OverdueOnly && !inst.IsPastDue(today) {
			continue
		}
		result = append(result, inst)
	}
	return result, nil
}

func (s *amortizationService) UpdateAmortization(ctx context.Context, amortizationID string, req dto.UpdateAmortizationRequest, recalculate bool, userID string) (*domain.Amortization, error) {
	update := domain.AmortizationUpdate{
		Reference:         req.Reference,
		Description:       req.Description,
		InterestRate:      req.InterestRate,
		AutoPayment:       req.AutoPayment,
		SendNotifications: req.SendNotifications,
	}
	if req.Status != nil {
		status := domain.AmortizationStatus(*req.Status)
		update.Status = &status
	}

	var updated *domain.Amortization
	err := s.withConflictRetry(ctx, "update_amortization", func() error {
		now := s.now()
		amortization, err := s.repo.FindAmortizationByID(ctx, amortizationID)
		if err != nil {
			return err
		}
		amortization.RefreshForRead(now)
		if err := amortization.ApplyUpdate(s.schedule, update, userID, now); err != nil {
			return err
		}
		if recalculate {
			if err := amortization.Regenerate(s.schedule, false, userID, now); err != nil {
				return err
			}
		}
		if err := s.repo.SaveAmortization(ctx, amortization); err != nil {
			return err
		}
		updated = amortization
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update amortization", slog.String("amortization_id", amortizationID))
		return nil, err
	}

	now := s.now()
	events := []domain.DomainEvent{
		domain.NewAmortizationEvent(domain.EventAmortizationUpdated, updated, now, map[string]any{
			"status": string(updated.Status),
		}),
	}
	if recalculate {
		s.metrics.ScheduleGenerated(string(updated.Method), len(updated.Installments))
		events = append(events, domain.NewAmortizationEvent(domain.EventScheduleRegenerated, updated, now, map[string]any{
			"total_installments": len(updated.Installments),
		}))
	}
	s.publish(ctx, events...)
	return updated, nil
}

func (s *amortizationService) DeleteAmortization(ctx context.Context, amortizationID string, force bool, userID string) error {
	amortization, err := s.repo.FindAmortizationByID(ctx, amortizationID)
	if err != nil {
		return err
	}

	now := s.now()
	if !force {
		amortization.MarkDeleted(userID, now)
	}
	if err := s.repo.DeleteAmortization(ctx, amortizationID, !force, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete amortization",
			slog.String("amortization_id", amortizationID),
			slog.Bool("force", force))
		return err
	}

	s.LogInfo(ctx, "Amortization deleted",
		slog.String("amortization_id", amortizationID),
		slog.Bool("force", force))
	s.publish(ctx, domain.NewAmortizationEvent(domain.EventAmortizationDeleted, amortization, now, map[string]any{
		"force": force,
	}))
	return nil
}

func (s *amortizationService) GenerateInstallments(ctx context.Context, amortizationID string, overwrite bool, userID string) (*domain.Amortization, error) {
	var regenerated *domain.Amortization
	err := s.withConflictRetry(ctx, "generate_installments", func() error {
		now := s.now()
		amortization, err := s.repo.FindAmortizationByID(ctx, amortizationID)
		if err != nil {
			return err
		}
		amortization.RefreshForRead(now)
		if err := amortization.Regenerate(s.schedule, overwrite, userID, now); err != nil {
			return err
		}
		if err := s.repo.SaveAmortization(ctx, amortization); err != nil {
			return err
		}
		regenerated = amortization
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate installments",
			slog.String("amortization_id", amortizationID),
			slog.Bool("overwrite", overwrite))
		return nil, err
	}

	s.metrics.ScheduleGenerated(string(regenerated.Method), len(regenerated.Installments))
	s.publish(ctx, domain.NewAmortizationEvent(domain.EventScheduleRegenerated, regenerated, s.now(), map[string]any{
		"total_installments": len(regenerated.Installments),
		"overwrite":          overwrite,
	}))
	return regenerated, nil
}

func (s *amortizationService) RecordPayment(ctx context.Context, amortizationID string, installmentNumber int, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	var paymentDate time.Time
	if req.PaymentDate != "" {
		parsed, err := dates.Parse(req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: payment_date must be YYYY-MM-DD", apperrors.ErrInvalidPayment)
		}
		paymentDate = parsed
	}
	var opts []domain.StatusOption
	if req.ReleaseHold {
		opts = append(opts, domain.ReleaseHold())
	}

	var (
		amortization *domain.Amortization
		installment  domain.Installment
	)
	err := s.withConflictRetry(ctx, "record_payment", func() error {
		now := s.now()
		loaded, err := s.repo.FindAmortizationByID(ctx, amortizationID)
		if err != nil {
			return err
		}
		applied, err := loaded.ApplyPayment(s.schedule, domain.PaymentInput{
			InstallmentNumber: installmentNumber,
			Amount:            req.Amount,
			PaymentDate:       paymentDate,
			Notes:             req.Notes,
			UserID:            userID,
			Now:               now,
		}, opts...)
		if err != nil {
			return err
		}
		if err := s.repo.SaveAmortization(ctx, loaded); err != nil {
			return err
		}
		amortization, installment = loaded, applied
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.String("amortization_id", amortizationID),
			slog.Int("installment_number", installmentNumber),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	result := &domain.PaymentResult{
		Amortization:       amortization,
		Installment:        installment,
		ExternalSyncStatus: domain.SyncNotRequested,
	}

	s.metrics.PaymentRecorded(string(amortization.Method), req.Amount.InexactFloat64())
	s.LogInfo(ctx, "Payment recorded",
		slog.String("amortization_id", amortization.ID),
		slog.Int("installment_number", installment.Number),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(amortization.Status)))
	s.publish(ctx, domain.NewAmortizationEvent(domain.EventPaymentRecorded, amortization, s.now(), map[string]any{
		"installment_number": installment.Number,
		"amount":             req.Amount.String(),
		"installment_status": string(installment.Status),
		"status":             string(amortization.Status),
	}))

	if req.CreateSAPEntry {
		s.postToLedger(ctx, result, req.Amount, userID)
	}
	return result, nil
}

// postToLedger runs after the payment is committed. A failure only downgrades
// the result to a pending sync with a warning.
func (s *amortizationService) postToLedger(ctx context.Context, result *domain.PaymentResult, amount decimal.Decimal, userID string) {
	if s.ledger == nil {
		result.ExternalSyncStatus = domain.SyncPending
		result.Warning = fmt.Errorf("%w: no ledger is configured", apperrors.ErrExternalSystem)
		return
	}

	entry := domain.LedgerEntry{
		AmortizationID:    result.Amortization.ID,
		InstallmentID:     result.Installment.ID,
		InstallmentNumber: result.Installment.Number,
		Reference:         result.Amortization.Reference,
		Amount:            amount,
		Date:              s.now(),
	}
	if result.Installment.PaymentDate != nil {
		entry.Date = *result.Installment.PaymentDate
	}

	ledgerCtx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
	defer cancel()

	ref, err := s.ledger.RecordEntry(ledgerCtx, entry)
	if err != nil {
		s.metrics.LedgerPosted(false)
		if !errors.Is(err, apperrors.ErrExternalSystem) {
			err = fmt.Errorf("%w: %v", apperrors.ErrExternalSystem, err)
		}
		s.LogWarn(ctx, err, "Ledger posting failed, payment kept",
			slog.String("amortization_id", entry.AmortizationID),
			slog.Int("installment_number", entry.InstallmentNumber))
		result.ExternalSyncStatus = domain.SyncPending
		result.Warning = err
		return
	}

	s.metrics.LedgerPosted(true)
	result.ExternalSyncStatus = domain.SyncSynced
	result.ExternalReference = ref

	if err := s.repo.UpdateInstallmentExternalRef(ctx, entry.InstallmentID, ref, userID, s.now()); err != nil {
		s.LogWarn(ctx, err, "Failed to store ledger reference",
			slog.String("installment_id", entry.InstallmentID),
			slog.String("external_reference", ref))
		return
	}
	setExternalRef(&result.Installment, ref)
	if inst, ok := result.Amortization.Installment(entry.InstallmentNumber); ok {
		setExternalRef(inst, ref)
	}
}

func setExternalRef(inst *domain.Installment, ref string) {
	inst.ExternalReference = &ref
	if entry, err := strconv.Atoi(ref); err == nil {
		inst.SAPPaymentEntry = &entry
	}
}

// requireCompany reports an unknown company as not found instead of an empty report.
func (s *amortizationService) requireCompany(ctx context.Context, companyID string) error {
	if s.entityRepo == nil {
		return nil
	}
	if _, err := s.entityRepo.FindCompanyByID(ctx, companyID); err != nil {
		s.LogError(ctx, err, "Failed to look up company", slog.String("company_id", companyID))
		return err
	}
	return nil
}

func (s *amortizationService) GetSummary(ctx context.Context, params dto.ReportParams) (*domain.AmortizationSummary, error) {
	today := s.now()
	filter, err := reportFilter(params, today)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompany(ctx, params.CompanyID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListAmortizationsForReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load amortizations for summary", slog.String("company_id", params.CompanyID))
		return nil, err
	}

	summary := domain.Summarize(params.CompanyID, items, today)
	return &summary, nil
}

func (s *amortizationService) GetAgingReport(ctx context.Context, params dto.AgingReportParams) (*domain.AgingReport, error) {
	today := s.now()
	filter, err := reportFilter(params.ReportParams, today)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompany(ctx, params.CompanyID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListAmortizationsForReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load amortizations for aging report", slog.String("company_id", params.CompanyID))
		return nil, err
	}

	report, err := domain.BuildAgingReport(params.CompanyID, items, today, params.Periods)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

type noopMetrics struct{}

func (noopMetrics) AmortizationCreated(string) {}
func (noopMetrics) ScheduleGenerated(string, int) {}
func (noopMetrics) PaymentRecorded(string, float64) {}
func (noopMetrics) LedgerPosted(bool) {}
func (noopMetrics) ConflictRetried(string) {}
