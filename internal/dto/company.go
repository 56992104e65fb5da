package dto

import (
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to register a company.
type CreateCompanyRequest struct {
	CompanyID string `json:"company_id" binding:"required,max=64"`
	Name      string `json:"name" binding:"required,max=255"`
	TaxID     string `json:"tax_id" binding:"max=50"`
}

// CreateEntityRequest defines the data needed to register a counterparty.
type CreateEntityRequest struct {
	EntityID   string `json:"entity_id" binding:"required,max=64"`
	Name       string `json:"name" binding:"required,max=255"`
	EntityType string `json:"entity_type" binding:"required,oneof=customer supplier"`
}

// ListEntitiesParams defines the query parameters for listing counterparties.
type ListEntitiesParams struct {
	EntityType      string `form:"entity_type" binding:"omitempty,oneof=customer supplier"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TaxID         string    `json:"tax_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	LastUpdatedBy string    `json:"last_updated_by"`
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int               `json:"total"`
}

// EntityResponse defines the data returned for a counterparty.
type EntityResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	EntityType    string    `json:"entity_type"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	LastUpdatedBy string    `json:"last_updated_by"`
}

// ListEntitiesResponse wraps a list of counterparties.
type ListEntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
	Total    int              `json:"total"`
}

func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.CompanyID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	resp := ListCompaniesResponse{Companies: make([]CompanyResponse, len(companies)), Total: len(companies)}
	for i := range companies {
		resp.Companies[i] = ToCompanyResponse(&companies[i])
	}
	return resp
}

func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		ID:            e.EntityID,
		CompanyID:     e.CompanyID,
		Name:          e.Name,
		EntityType:    string(e.EntityType),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

func ToListEntitiesResponse(entities []domain.Entity) ListEntitiesResponse {
	resp := ListEntitiesResponse{Entities: make([]EntityResponse, len(entities)), Total: len(entities)}
	for i := range entities {
		resp.Entities[i] = ToEntityResponse(&entities[i])
	}
	return resp
}
