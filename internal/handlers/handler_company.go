package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/dto"
	"github.com/keiri-app/keiri-backend/internal/middleware"
)

// companyHandler handles HTTP requests related to counter-party companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers both the tenant-nested collection routes and
// the flat per-company routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	tenantCompanies := rg.Group("/tenants/:tenant_id/companies")
	{
		tenantCompanies.POST("", h.createCompany)
		tenantCompanies.GET("", h.listCompanies)
	}

	companies := rg.Group("/companies")
	{
		companies.GET("/:company_id", h.getCompany)
		companies.PUT("/:company_id", h.updateCompany)
		companies.DELETE("/:company_id", h.deleteCompany)
	}
}

// createCompany godoc
// @Summary Register a counter-party company
// @Tags companies
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create company", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company := domain.Company{
		TenantID:        c.Param("tenant_id"),
		Name:            req.Name,
		CorporateNumber: req.CorporateNumber,
		PostalCode:      req.PostalCode,
		Address:         req.Address,
		Phone:           req.Phone,
	}
	created, err := h.companyService.CreateCompany(c.Request.Context(), actor, company)
	if err != nil {
		respondError(c, logger, err, "create company")
		return
	}

	logger.Info("Company registered", slog.String("company_id", created.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(created))
}

// listCompanies godoc
// @Summary List the companies known to a tenant
// @Tags companies
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), actor, c.Param("tenant_id"))
	if err != nil {
		respondError(c, logger, err, "list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), actor, c.Param("company_id"))
	if err != nil {
		respondError(c, logger, err, "get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Company details"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{company_id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update company", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	current, err := h.companyService.GetCompany(c.Request.Context(), actor, c.Param("company_id"))
	if err != nil {
		respondError(c, logger, err, "get company")
		return
	}
	current.Name = req.Name
	current.CorporateNumber = req.CorporateNumber
	current.PostalCode = req.PostalCode
	current.Address = req.Address
	current.Phone = req.Phone

	updated, err := h.companyService.UpdateCompany(c.Request.Context(), actor, *current)
	if err != nil {
		respondError(c, logger, err, "update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(updated))
}

// deleteCompany godoc
// @Summary Delete a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{company_id} [delete]
func (h *companyHandler) deleteCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), actor, c.Param("company_id")); err != nil {
		respondError(c, logger, err, "delete company")
		return
	}

	logger.Info("Company deleted", slog.String("company_id", c.Param("company_id")))
	c.Status(http.StatusNoContent)
}
