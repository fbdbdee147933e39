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

// feeStructureHandler handles HTTP requests for fee structures within a school.
type feeStructureHandler struct {
	feeStructureService portssvc.FeeStructureSvcFacade
}

// newFeeStructureHandler creates a new feeStructureHandler.
func newFeeStructureHandler(fs portssvc.FeeStructureSvcFacade) *feeStructureHandler {
	return &feeStructureHandler{feeStructureService: fs}
}

// registerFeeStructureRoutes registers fee structure routes under a school.
func registerFeeStructureRoutes(rg *gin.RouterGroup, feeStructureService portssvc.FeeStructureSvcFacade) {
	h := newFeeStructureHandler(feeStructureService)

	structures := rg.Group("/fee-structures")
	{
		structures.POST("", h.createStructure)
		structures.GET("", h.listStructures)
		structures.GET("/:structure_id", h.getStructure)
		structures.DELETE("/:structure_id", h.deactivateStructure)
	}
}

// createStructure godoc
// @Summary Create a fee structure
// @Description Creates a fee structure scoped to either a class or a single student. An existing active structure for the same scope and fee type is deactivated and superseded.
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param structure body dto.CreateFeeStructureRequest true "Fee structure details"
// @Success 201 {object} dto.FeeStructureResponse
// @Failure 400 {object} map[string]string "Invalid input (both or neither of classID/studentID set, negative amount)"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Class or student not found"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-structures [post]
func (h *feeStructureHandler) createStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.CreateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	structure, err := h.feeStructureService.CreateStructure(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to create fee structure", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fee structure"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeeStructureResponse(structure))
}

// listStructures godoc
// @Summary List fee structures
// @Description Retrieves active fee structures for the school, optionally filtered by fee type
// @Tags fee-structures
// @Produce json
// @Param school_id path string true "School ID"
// @Param feeType query string false "Filter by fee type" Enums(MONTHLY, ANNUAL, ADMISSION, BOOKS, FINE)
// @Success 200 {array} dto.FeeStructureResponse
// @Failure 400 {object} map[string]string "Invalid fee type"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-structures [get]
func (h *feeStructureHandler) listStructures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var feeType *domain.FeeType
	if raw := c.Query("feeType"); raw != "" {
		ft := domain.FeeType(raw)
		if !ft.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee type: " + raw})
			return
		}
		feeType = &ft
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	structures, err := h.feeStructureService.ListStructures(c.Request.Context(), schoolID, feeType, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to list fee structures", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fee structures"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeeStructureResponse(structures))
}

// getStructure godoc
// @Summary Get a fee structure by ID
// @Description Retrieves details for a specific fee structure
// @Tags fee-structures
// @Produce json
// @Param school_id path string true "School ID"
// @Param structure_id path string true "Structure ID"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-structures/{structure_id} [get]
func (h *feeStructureHandler) getStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	structureID := c.Param("structure_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	structure, err := h.feeStructureService.GetStructureByID(c.Request.Context(), schoolID, structureID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to get fee structure", slog.String("error", err.Error()), slog.String("structure_id", structureID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fee structure"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(structure))
}

// deactivateStructure godoc
// @Summary Deactivate a fee structure
// @Description Marks a fee structure inactive without a replacement. Already-generated ledger records keep their amounts.
// @Tags fee-structures
// @Produce json
// @Param school_id path string true "School ID"
// @Param structure_id path string true "Structure ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-structures/{structure_id} [delete]
func (h *feeStructureHandler) deactivateStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	structureID := c.Param("structure_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.feeStructureService.DeactivateStructure(c.Request.Context(), schoolID, structureID, userID); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to deactivate fee structure", slog.String("error", err.Error()), slog.String("structure_id", structureID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate fee structure"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
