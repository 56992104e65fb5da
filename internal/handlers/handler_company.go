package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies and their counterparties.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// registerCompanyRoutes registers routes related to companies.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := &companyHandler{companyService: companyService}

	companies := rg.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.POST("", h.createCompany)
		companies.GET("/:companyID", h.getCompany)
		companies.GET("/:companyID/entities", h.listEntities)
		companies.POST("/:companyID/entities", h.createEntity)
		companies.GET("/:companyID/entities/:entityID", h.getEntity)
	}
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Param include_inactive query bool false "Include inactive companies"
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	includeInactive, err := queryBool(c, "include_inactive", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), includeInactive)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// createCompany godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Company ID already in use"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company"
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listEntities godoc
// @Summary List the counterparties of a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entity_type query string false "Entity type" Enums(customer, supplier)
// @Param include_inactive query bool false "Include inactive entities"
// @Success 200 {object} dto.ListEntitiesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to list entities"
// @Security BearerAuth
// @Router /companies/{companyID}/entities [get]
func (h *companyHandler) listEntities(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	var params dto.ListEntitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entities, err := h.companyService.ListEntities(c.Request.Context(), c.Param("companyID"), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list entities")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntitiesResponse(entities))
}

// createEntity godoc
// @Summary Create a counterparty
// @Description Registers a customer or supplier under an active company
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entity body dto.CreateEntityRequest true "Entity"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input or inactive company"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Entity ID already in use"
// @Failure 500 {object} map[string]string "Failed to create entity"
// @Security BearerAuth
// @Router /companies/{companyID}/entities [post]
func (h *companyHandler) createEntity(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}
	companyID := c.Param("companyID")
	logger = logger.With(slog.String("company_id", companyID))

	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entity, err := h.companyService.CreateEntity(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create entity")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// getEntity godoc
// @Summary Get a counterparty
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entityID path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entity"
// @Security BearerAuth
// @Router /companies/{companyID}/entities/{entityID} [get]
func (h *companyHandler) getEntity(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	entity, err := h.companyService.GetEntity(c.Request.Context(), c.Param("companyID"), c.Param("entityID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve entity")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}
