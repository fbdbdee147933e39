package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// schoolHandler handles HTTP requests related to schools and their membership.
type schoolHandler struct {
	schoolService portssvc.SchoolSvcFacade
}

// newSchoolHandler creates a new schoolHandler.
func newSchoolHandler(ss portssvc.SchoolSvcFacade) *schoolHandler {
	return &schoolHandler{schoolService: ss}
}

// registerSchoolRoutes registers school routes plus every school-scoped
// resource underneath /schools/:school_id.
func registerSchoolRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newSchoolHandler(services.School)

	schools := rg.Group("/schools")
	{
		schools.POST("", h.createSchool)
		schools.GET("", h.listSchools)
	}

	school := schools.Group("/:school_id")
	{
		school.GET("", h.getSchool)
		school.PUT("", h.updateSchool)
		school.DELETE("", h.deactivateSchool)
		school.POST("/activate", h.activateSchool)

		members := school.Group("/users")
		{
			members.POST("", h.addUserToSchool)
			members.GET("", h.listSchoolUsers)
			members.PUT("/:user_id", h.updateUserRole)
			members.DELETE("/:user_id", h.removeUserFromSchool)
		}

		registerStudentRoutes(school, services.Student, services.FeeStructure)
		registerFeeStructureRoutes(school, services.FeeStructure)
		registerGenerationRoutes(school, services.Generation)
		registerFeePaymentRoutes(school, services.FeePayment)
		registerReportingRoutes(school, services.Reporting)
		registerAccountRoutes(school, services.Account)
		registerOtherIncomeRoutes(school, services.OtherIncome)
	}
}

// respondSchoolScopedError maps common school-scoped service errors to HTTP
// responses. Returns false when the error was not one of the common cases.
func respondSchoolScopedError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "User does not have permission for this school"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// createSchool godoc
// @Summary Create a new school
// @Description Creates a new school; the creator becomes its admin
// @Tags schools
// @Accept json
// @Produce json
// @Param school body dto.CreateSchoolRequest true "School details"
// @Success 201 {object} dto.SchoolResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create school"
// @Security BearerAuth
// @Router /schools [post]
func (h *schoolHandler) createSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	school, err := h.schoolService.CreateSchool(c.Request.Context(), req.Name, req.Address, creatorUserID)
	if err != nil {
		logger.Error("Failed to create school", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create school"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSchoolResponse(school))
}

// listSchools godoc
// @Summary List schools for the authenticated user
// @Description Retrieves all schools the requesting user belongs to
// @Tags schools
// @Produce json
// @Param include_disabled query bool false "Include deactivated schools" default(false)
// @Success 200 {object} dto.ListSchoolsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list schools"
// @Security BearerAuth
// @Router /schools [get]
func (h *schoolHandler) listSchools(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeDisabled := c.Query("include_disabled") == "true"

	schools, err := h.schoolService.ListUserSchools(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		logger.Error("Failed to list schools", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list schools"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSchoolsResponse(schools))
}

// getSchool godoc
// @Summary Get a school by ID
// @Description Retrieves details for a specific school
// @Tags schools
// @Produce json
// @Param school_id path string true "School ID"
// @Success 200 {object} dto.SchoolResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "School not found"
// @Security BearerAuth
// @Router /schools/{school_id} [get]
func (h *schoolHandler) getSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.schoolService.AuthorizeUserAction(c.Request.Context(), userID, schoolID, domain.RoleReadOnly); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to authorize school access", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve school"})
		}
		return
	}

	school, err := h.schoolService.FindSchoolByID(c.Request.Context(), schoolID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to get school", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve school"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSchoolResponse(school))
}

// updateSchool godoc
// @Summary Update a school
// @Description Updates a school's name or address (admin only)
// @Tags schools
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param school body dto.UpdateSchoolRequest true "Fields to update"
// @Success 200 {object} dto.SchoolResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "School not found"
// @Security BearerAuth
// @Router /schools/{school_id} [put]
func (h *schoolHandler) updateSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	school, err := h.schoolService.UpdateSchool(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to update school", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update school"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSchoolResponse(school))
}

// deactivateSchool godoc
// @Summary Deactivate a school
// @Description Marks a school as inactive (admin only)
// @Tags schools
// @Produce json
// @Param school_id path string true "School ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "School not found"
// @Security BearerAuth
// @Router /schools/{school_id} [delete]
func (h *schoolHandler) deactivateSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.schoolService.DeactivateSchool(c.Request.Context(), schoolID, userID); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to deactivate school", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate school"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// activateSchool godoc
// @Summary Activate a school
// @Description Re-activates a previously deactivated school (admin only)
// @Tags schools
// @Produce json
// @Param school_id path string true "School ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "School not found"
// @Security BearerAuth
// @Router /schools/{school_id}/activate [post]
func (h *schoolHandler) activateSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.schoolService.ActivateSchool(c.Request.Context(), schoolID, userID); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to activate school", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate school"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// addUserToSchool godoc
// @Summary Add a user to a school
// @Description Adds a user to a school with a role (admin only)
// @Tags schools
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param membership body dto.AddUserToSchoolRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "School or user not found"
// @Security BearerAuth
// @Router /schools/{school_id}/users [post]
func (h *schoolHandler) addUserToSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.AddUserToSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.schoolService.AddUserToSchool(c.Request.Context(), addingUserID, req.UserID, schoolID, req.Role); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to add user to school", slog.String("error", err.Error()), slog.String("school_id", schoolID), slog.String("target_user_id", req.UserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to school"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listSchoolUsers godoc
// @Summary List school members
// @Description Retrieves all users of a school with their roles
// @Tags schools
// @Produce json
// @Param school_id path string true "School ID"
// @Success 200 {array} dto.UserSchoolResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/users [get]
func (h *schoolHandler) listSchoolUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	memberships, err := h.schoolService.ListSchoolUsers(c.Request.Context(), schoolID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to list school users", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list school users"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserSchoolResponse(memberships))
}

// updateUserRoleRequest carries the new role for a membership update.
type updateUserRoleRequest struct {
	Role domain.UserSchoolRole `json:"role" binding:"required,oneof=ADMIN STAFF READONLY"`
}

// updateUserRole godoc
// @Summary Update a member's role
// @Description Changes a user's role within a school (admin only)
// @Tags schools
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param user_id path string true "User ID"
// @Param role body updateUserRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Membership not found"
// @Security BearerAuth
// @Router /schools/{school_id}/users/{user_id} [put]
func (h *schoolHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	targetUserID := c.Param("user_id")

	var req updateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.schoolService.UpdateUserSchoolRole(c.Request.Context(), requestingUserID, targetUserID, schoolID, req.Role); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to update user role", slog.String("error", err.Error()), slog.String("school_id", schoolID), slog.String("target_user_id", targetUserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// removeUserFromSchool godoc
// @Summary Remove a user from a school
// @Description Removes a user's membership in a school (admin only)
// @Tags schools
// @Produce json
// @Param school_id path string true "School ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Membership not found"
// @Security BearerAuth
// @Router /schools/{school_id}/users/{user_id} [delete]
func (h *schoolHandler) removeUserFromSchool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.schoolService.RemoveUserFromSchool(c.Request.Context(), requestingUserID, targetUserID, schoolID); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to remove user from school", slog.String("error", err.Error()), slog.String("school_id", schoolID), slog.String("target_user_id", targetUserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from school"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
