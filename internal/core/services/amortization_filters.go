package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/SscSPs/amortization_manager/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := dates.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, field)
	}
	return &t, nil
}

func parseOptionalAmount(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", apperrors.ErrValidation, field)
	}
	return &amount, nil
}

func listFilter(params dto.ListAmortizationsParams, today time.Time) (domain.AmortizationFilter, error) {
	filter := domain.AmortizationFilter{
		CompanyID:       params.CompanyID,
		EntityID:        params.EntityID,
		Status:          domain.AmortizationStatus(params.Status),
		Method:          domain.AmortizationMethod(params.Method),
		Frequency:       domain.Frequency(params.Frequency),
		OverdueOnly:     params.OverdueOnly,
		AsOf:            today,
		IncludeInactive: params.IncludeInactive,
	}

	var err error
	if filter.StartFrom, err = parseOptionalDate("date_from", params.DateFrom); err != nil {
		return filter, err
	}
	if filter.StartTo, err = parseOptionalDate("date_to", params.DateTo); err != nil {
		return filter, err
	}
	if filter.AmountFrom, err = parseOptionalAmount("amount_from", params.AmountFrom); err != nil {
		return filter, err
	}
	if filter.AmountTo, err = parseOptionalAmount("amount_to", params.AmountTo); err != nil {
		return filter, err
	}
	return filter, nil
}

// listOptions turns the page request into repository options. Unknown sort
// fields fall back to created_at and anything but "asc" sorts descending.
func listOptions(params dto.ListAmortizationsParams) (pagination.Page, domain.ListOptions) {
	page := pagination.Normalize(params.Page, params.PageSize)

	sortBy := strings.ToLower(strings.TrimSpace(params.SortBy))
	if !domain.IsSortableField(sortBy) {
		sortBy = domain.DefaultSortField
	}
	order := domain.SortDesc
	if strings.EqualFold(params.SortOrder, string(domain.SortAsc)) {
		order = domain.SortAsc
	}

	return page, domain.ListOptions{
		Limit:     page.Limit(),
		Offset:    page.Offset(),
		SortBy:    sortBy,
		SortOrder: order,
	}
}

func reportFilter(params dto.ReportParams, today time.Time) (domain.AmortizationFilter, error) {
	if strings.TrimSpace(params.CompanyID) == "" {
		return domain.AmortizationFilter{}, fmt.Errorf("%w: company_id is required", apperrors.ErrValidation)
	}
	filter := domain.AmortizationFilter{
		CompanyID: params.CompanyID,
		EntityID:  params.EntityID,
		Method:    domain.AmortizationMethod(params.Method),
		AsOf:      today,
	}

	var err error
	if filter.StartFrom, err = parseOptionalDate("date_from", params.DateFrom); err != nil {
		return filter, err
	}
	if filter.StartTo, err = parseOptionalDate("date_to", params.DateTo); err != nil {
		return filter, err
	}
	return filter, nil
}
