package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
)

const (
	maxCompanyNameLen = 255
	maxTaxIDLen       = 50
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Company is the tenant that owns amortizations.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	TaxID     string `json:"taxID"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// EntityType tells whether the counterparty owes the company or is owed by it.
type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntitySupplier EntityType = "supplier"
)

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	return t == EntityCustomer || t == EntitySupplier
}

// Entity is a counterparty of a company.
type Entity struct {
	EntityID   string     `json:"entityID"`
	CompanyID  string     `json:"companyID"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"entityType"`
	IsActive   bool       `json:"isActive"`
	AuditFields
}

// NewCompany validates and builds an active company.
func NewCompany(companyID, name, taxID, userID string, now time.Time) (*Company, error) {
	companyID = strings.TrimSpace(companyID)
	if !identifierPattern.MatchString(companyID) {
		return nil, fmt.Errorf("%w: company_id must be 1-64 letters, digits, hyphens or underscores", apperrors.ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxCompanyNameLen {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", apperrors.ErrValidation, maxCompanyNameLen)
	}
	taxID = strings.TrimSpace(taxID)
	if len(taxID) > maxTaxIDLen {
		return nil, fmt.Errorf("%w: tax_id must be at most %d characters", apperrors.ErrValidation, maxTaxIDLen)
	}

	return &Company{
		CompanyID: companyID,
		Name:      name,
		TaxID:     taxID,
		IsActive:  true,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// NewEntity validates and builds an active counterparty of company.
// Inactive companies take no new counterparties.
func NewEntity(company *Company, entityID, name string, entityType EntityType, userID string, now time.Time) (*Entity, error) {
	if !company.IsActive {
		return nil, fmt.Errorf("%w: company %s is inactive", apperrors.ErrValidation, company.CompanyID)
	}
	entityID = strings.TrimSpace(entityID)
	if !identifierPattern.MatchString(entityID) {
		return nil, fmt.Errorf("%w: entity_id must be 1-64 letters, digits, hyphens or underscores", apperrors.ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxCompanyNameLen {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", apperrors.ErrValidation, maxCompanyNameLen)
	}
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: entity_type must be customer or supplier", apperrors.ErrValidation)
	}

	return &Entity{
		EntityID:   entityID,
		CompanyID:  company.CompanyID,
		Name:       name,
		EntityType: entityType,
		IsActive:   true,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}
