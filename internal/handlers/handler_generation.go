package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// generationHandler handles bulk fee generation requests within a school.
type generationHandler struct {
	generationService portssvc.GenerationSvcFacade
}

// newGenerationHandler creates a new generationHandler.
func newGenerationHandler(gs portssvc.GenerationSvcFacade) *generationHandler {
	return &generationHandler{generationService: gs}
}

// registerGenerationRoutes registers bulk generation routes under a school.
func registerGenerationRoutes(rg *gin.RouterGroup, generationService portssvc.GenerationSvcFacade) {
	h := newGenerationHandler(generationService)

	generation := rg.Group("/fee-generation")
	{
		generation.POST("/preview", h.previewGeneration)
		generation.POST("", h.generate)
	}
}

// previewGeneration godoc
// @Summary Preview a bulk generation run
// @Description Reports how many ledger records a generation run would create, skip, or leave without a fee structure. Nothing is persisted.
// @Tags fee-generation
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param generation body dto.GenerationRequest true "Generation parameters"
// @Success 200 {object} dto.GenerationPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-generation/preview [post]
func (h *generationHandler) previewGeneration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	preview, err := h.generationService.PreviewGeneration(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to preview fee generation", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview fee generation"})
		}
		return
	}

	c.JSON(http.StatusOK, preview)
}

// generate godoc
// @Summary Run bulk fee generation
// @Description Creates ledger records for all eligible students in the billing period. Students that already have a record for the same key are skipped, so reruns are safe.
// @Tags fee-generation
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param generation body dto.GenerationRequest true "Generation parameters"
// @Success 200 {object} dto.GenerationResultResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-generation [post]
func (h *generationHandler) generate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Fee generation failed", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Fee generation failed"})
		}
		return
	}

	logger.Info("Fee generation completed",
		slog.String("school_id", schoolID),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("no_fee_structure", result.NoFeeStructure))
	c.JSON(http.StatusOK, result)
}
