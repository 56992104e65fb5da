package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationFilter narrows list and report queries. Zero values mean "any".
type AmortizationFilter struct {
	CompanyID   string
	EntityID    string
	Status      AmortizationStatus
	Method      AmortizationMethod
	Frequency   Frequency
	StartFrom   *time.Time
	StartTo     *time.Time
	AmountFrom  *decimal.Decimal
	AmountTo    *decimal.Decimal
	OverdueOnly bool
	// AsOf is the day overdue_only is evaluated against.
	AsOf            time.Time
	IncludeInactive bool
}

// SortOrder is the direction of a list query.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultSortField is used when the caller asks for nothing or for an unknown field.
const DefaultSortField = "created_at"

var sortableFields = map[string]bool{
	"created_at":    true,
	"start_date":    true,
	"end_date":      true,
	"next_due_date": true,
	"total_amount":  true,
	"reference":     true,
	"status":        true,
}

// IsSortableField reports whether field may be used to order amortization lists.
func IsSortableField(field string) bool {
	return sortableFields[field]
}

// ListOptions controls paging and ordering of a list query.
type ListOptions struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder SortOrder
}
