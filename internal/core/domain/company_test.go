package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	now := date(2024, time.January, 1)

	c, err := domain.NewCompany(" acme-01 ", " Acme Corp ", "B12345678", "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, "acme-01", c.CompanyID)
	assert.Equal(t, "Acme Corp", c.Name)
	assert.True(t, c.IsActive)
	assert.Equal(t, "user-1", c.CreatedBy)
	assert.Equal(t, now, c.LastUpdatedAt)

	tests := []struct {
		name      string
		companyID string
		company   string
		taxID     string
	}{
		{"empty id", "", "Acme", ""},
		{"id with spaces", "AC ME", "Acme", ""},
		{"id too long", strings.Repeat("A", 65), "Acme", ""},
		{"empty name", "ACME", "  ", ""},
		{"name too long", "ACME", strings.Repeat("x", 256), ""},
		{"tax id too long", "ACME", "Acme", strings.Repeat("9", 51)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := domain.NewCompany(tt.companyID, tt.company, tt.taxID, "user-1", now)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Nil(t, c)
		})
	}
}

func TestNewEntity(t *testing.T) {
	now := date(2024, time.January, 1)
	company, err := domain.NewCompany("ACME", "Acme", "", "user-1", now)
	require.NoError(t, err)

	e, err := domain.NewEntity(company, "C0001", "Customer One", domain.EntityCustomer, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, "ACME", e.CompanyID)
	assert.Equal(t, "C0001", e.EntityID)
	assert.Equal(t, domain.EntityCustomer, e.EntityType)
	assert.True(t, e.IsActive)

	_, err = domain.NewEntity(company, "C0002", "Customer Two", domain.EntityType("partner"), "user-1", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewEntity(company, "C 0002", "Customer Two", domain.EntitySupplier, "user-1", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewEntity(company, "C0002", "", domain.EntitySupplier, "user-1", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	company.IsActive = false
	_, err = domain.NewEntity(company, "C0002", "Customer Two", domain.EntitySupplier, "user-1", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
