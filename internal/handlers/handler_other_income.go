package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// otherIncomeHandler handles HTTP requests for non-fee income entries.
type otherIncomeHandler struct {
	otherIncomeService portssvc.OtherIncomeSvcFacade
}

// newOtherIncomeHandler creates a new otherIncomeHandler.
func newOtherIncomeHandler(os portssvc.OtherIncomeSvcFacade) *otherIncomeHandler {
	return &otherIncomeHandler{otherIncomeService: os}
}

// registerOtherIncomeRoutes registers non-fee income routes under a school.
func registerOtherIncomeRoutes(rg *gin.RouterGroup, otherIncomeService portssvc.OtherIncomeSvcFacade) {
	h := newOtherIncomeHandler(otherIncomeService)

	income := rg.Group("/other-income")
	{
		income.POST("", h.createIncome)
		income.GET("", h.listIncome)
		income.GET("/:income_id", h.getIncome)
		income.DELETE("/:income_id", h.deleteIncome)
	}
}

// createIncome godoc
// @Summary Record a non-fee income entry
// @Description Records income outside the fee ledger, e.g. donations or hall rent
// @Tags other-income
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param income body dto.CreateOtherIncomeRequest true "Income details"
// @Success 201 {object} dto.OtherIncomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /schools/{school_id}/other-income [post]
func (h *otherIncomeHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.CreateOtherIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	income, err := h.otherIncomeService.CreateIncome(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to create income entry", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create income entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOtherIncomeResponse(income))
}

// listIncome godoc
// @Summary List non-fee income entries
// @Description Retrieves income entries, optionally restricted to a date window
// @Tags other-income
// @Produce json
// @Param school_id path string true "School ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} dto.OtherIncomeResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/other-income [get]
func (h *otherIncomeHandler) listIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var params dto.ListOtherIncomeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	incomes, err := h.otherIncomeService.ListIncome(c.Request.Context(), schoolID, userID, params)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to list income entries", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list income entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListOtherIncomeResponse(incomes))
}

// getIncome godoc
// @Summary Get an income entry by ID
// @Description Retrieves details for a specific income entry
// @Tags other-income
// @Produce json
// @Param school_id path string true "School ID"
// @Param income_id path string true "Income ID"
// @Success 200 {object} dto.OtherIncomeResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Income entry not found"
// @Security BearerAuth
// @Router /schools/{school_id}/other-income/{income_id} [get]
func (h *otherIncomeHandler) getIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	incomeID := c.Param("income_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	income, err := h.otherIncomeService.GetIncomeByID(c.Request.Context(), schoolID, incomeID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to get income entry", slog.String("error", err.Error()), slog.String("income_id", incomeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve income entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOtherIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete an income entry
// @Description Removes a non-fee income entry
// @Tags other-income
// @Produce json
// @Param school_id path string true "School ID"
// @Param income_id path string true "Income ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Income entry not found"
// @Security BearerAuth
// @Router /schools/{school_id}/other-income/{income_id} [delete]
func (h *otherIncomeHandler) deleteIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	incomeID := c.Param("income_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.otherIncomeService.DeleteIncome(c.Request.Context(), schoolID, incomeID, userID); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to delete income entry", slog.String("error", err.Error()), slog.String("income_id", incomeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete income entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
