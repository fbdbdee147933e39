package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// reportingHandler handles report and export requests within a school.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes under a school.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/defaulters", h.getDefaulters)
		reports.GET("/export", h.exportLedger)
	}
}

// getSummary godoc
// @Summary Fee collection summary
// @Description Aggregates a billing period's ledger records into dashboard totals with a per-class breakdown
// @Tags reports
// @Produce json
// @Param school_id path string true "School ID"
// @Param feeType query string true "Fee type" Enums(MONTHLY, ANNUAL, ADMISSION, BOOKS, FINE)
// @Param period query int false "Billing month (1-12), required for MONTHLY"
// @Param year query int true "Year"
// @Param classID query string false "Restrict to one class"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), schoolID, params, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to build summary report", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getDefaulters godoc
// @Summary List defaulters
// @Description Lists students with an outstanding balance for a billing period, largest balance first
// @Tags reports
// @Produce json
// @Param school_id path string true "School ID"
// @Param feeType query string true "Fee type" Enums(MONTHLY, ANNUAL, ADMISSION, BOOKS, FINE)
// @Param period query int false "Billing month (1-12), required for MONTHLY"
// @Param year query int true "Year"
// @Param classID query string false "Restrict to one class"
// @Param minDue query string false "Minimum outstanding balance to include"
// @Success 200 {array} dto.DefaulterResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/reports/defaulters [get]
func (h *reportingHandler) getDefaulters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var params dto.DefaultersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	defaulters, err := h.reportingService.Defaulters(c.Request.Context(), schoolID, params, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to build defaulters report", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build defaulters report"})
		}
		return
	}

	c.JSON(http.StatusOK, defaulters)
}

// exportLedger godoc
// @Summary Export the ledger as CSV
// @Description Streams a billing period's ledger records as a CSV download
// @Tags reports
// @Produce text/csv
// @Param school_id path string true "School ID"
// @Param feeType query string true "Fee type" Enums(MONTHLY, ANNUAL, ADMISSION, BOOKS, FINE)
// @Param period query int false "Billing month (1-12), required for MONTHLY"
// @Param year query int true "Year"
// @Param classID query string false "Restrict to one class"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/reports/export [get]
func (h *reportingHandler) exportLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var params dto.ExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.reportingService.ExportRows(c.Request.Context(), schoolID, params, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to build ledger export", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger export"})
		}
		return
	}

	filename := fmt.Sprintf("fee-ledger-%s-%d-%02d.csv", params.FeeType, params.Year, params.Period)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	header := []string{"Student", "Roll No", "Class", "Fee Type", "Period", "Year", "Monthly Fee", "Previous Balance", "Total Payable", "Paid", "Balance", "Status"}
	if err := w.Write(header); err != nil {
		logger.Error("Failed to write CSV header", slog.String("error", err.Error()))
		return
	}
	for i := range rows {
		r := &rows[i]
		record := []string{
			r.StudentName,
			r.RollNo,
			r.ClassName,
			string(r.FeeType),
			fmt.Sprintf("%d", r.Period),
			fmt.Sprintf("%d", r.Year),
			r.MonthlyFee.StringFixed(2),
			r.PreviousBalance.StringFixed(2),
			r.AmountDue.StringFixed(2),
			r.AmountPaid.StringFixed(2),
			r.Balance.StringFixed(2),
			string(r.Status),
		}
		if err := w.Write(record); err != nil {
			logger.Error("Failed to write CSV row", slog.String("error", err.Error()))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("CSV writer flush failed", slog.String("error", err.Error()))
	}
}
