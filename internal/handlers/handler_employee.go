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

// employeeHandler handles HTTP requests related to employee accounts.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// registerEmployeeRoutes registers both the tenant-nested collection routes
// and the flat per-employee routes.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	tenantEmployees := rg.Group("/tenants/:tenant_id/employees")
	{
		tenantEmployees.POST("", h.createEmployee)
		tenantEmployees.GET("", h.listEmployees)
	}

	employees := rg.Group("/employees")
	{
		employees.GET("/:employee_id", h.getEmployee)
		employees.PUT("/:employee_id", h.updateEmployee)
		employees.DELETE("/:employee_id", h.deleteEmployee)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Description Creates a non-administrative staff account with optional store assignments.
// @Tags employees
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 409 {object} map[string]string "Login ID taken in tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create employee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employee := domain.Employee{
		TenantID: c.Param("tenant_id"),
		LoginID:  req.LoginID,
		Name:     req.Name,
		Email:    req.Email,
		StoreIDs: req.StoreIDs,
	}
	created, err := h.employeeService.CreateEmployee(c.Request.Context(), actor, employee, req.Password)
	if err != nil {
		respondError(c, logger, err, "create employee")
		return
	}

	logger.Info("Employee created", slog.String("employee_id", created.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(created))
}

// listEmployees godoc
// @Summary List the employees of a tenant
// @Tags employees
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param storeID query string false "Limit to one store"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	var storeID *string
	if params.StoreID != "" {
		storeID = &params.StoreID
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), actor, c.Param("tenant_id"), storeID)
	if err != nil {
		respondError(c, logger, err, "list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// getEmployee godoc
// @Summary Get an employee
// @Description Retrieves one employee. Employees may only fetch their own record.
// @Tags employees
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), actor, c.Param("employee_id"))
	if err != nil {
		respondError(c, logger, err, "get employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Profile and store assignments"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update employee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employee := domain.Employee{
		EmployeeID: c.Param("employee_id"),
		Name:       req.Name,
		Email:      req.Email,
		StoreIDs:   req.StoreIDs,
	}
	updated, err := h.employeeService.UpdateEmployee(c.Request.Context(), actor, employee)
	if err != nil {
		respondError(c, logger, err, "update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(updated))
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Tags employees
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [delete]
func (h *employeeHandler) deleteEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), actor, c.Param("employee_id")); err != nil {
		respondError(c, logger, err, "delete employee")
		return
	}

	logger.Info("Employee deleted", slog.String("employee_id", c.Param("employee_id")))
	c.Status(http.StatusNoContent)
}
