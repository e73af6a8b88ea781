package handlers

import (
	"log/slog"
	"net/http"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests related to the directory and presence.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// registerEmployeeRoutes registers directory and presence routes.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.GET("", h.listEmployees)
		employees.POST("", h.provisionEmployee)
		employees.GET("/me", h.getSelf)
		employees.PUT("/me/presence", h.updatePresence)
		employees.GET("/:employee_id", h.getEmployee)
		employees.PUT("/:employee_id", h.updateEmployee)
	}
}

// listEmployees godoc
// @Summary List employees
// @Description Retrieves a paginated directory listing.
// @Tags employees
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListEmployeesResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// provisionEmployee godoc
// @Summary Provision an employee
// @Description Creates a directory record for a platform user.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.ProvisionEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Already exists"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) provisionEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProvisionEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProvisionEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := callerID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.ProvisionEmployee(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "Failed to provision employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getSelf godoc
// @Summary Get own directory record
// @Tags employees
// @Produce json
// @Success 200 {object} dto.EmployeeResponse
// @Security BearerAuth
// @Router /employees/me [get]
func (h *employeeHandler) getSelf(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to get employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updatePresence godoc
// @Summary Update own presence
// @Description Applies a last-write-wins presence change for the caller.
// @Tags employees
// @Accept json
// @Param presence body dto.UpdatePresenceRequest true "Presence"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /employees/me/presence [put]
func (h *employeeHandler) updatePresence(c *gin.Context) {
	var req dto.UpdatePresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.employeeService.UpdatePresence(c.Request.Context(), employeeID, domain.Presence(req.Presence)); err != nil {
		respondError(c, err, "Failed to update presence")
		return
	}
	c.Status(http.StatusNoContent)
}

// getEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondError(c, err, "Failed to get employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee
// @Description Edits profile fields and status. Deactivation is a status change.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterID, ok := callerID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("employee_id"), req, updaterID)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
