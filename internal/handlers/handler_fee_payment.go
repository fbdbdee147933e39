package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// feePaymentHandler handles HTTP requests for ledger records within a school.
type feePaymentHandler struct {
	feePaymentService portssvc.FeePaymentSvcFacade
}

// newFeePaymentHandler creates a new feePaymentHandler.
func newFeePaymentHandler(fp portssvc.FeePaymentSvcFacade) *feePaymentHandler {
	return &feePaymentHandler{feePaymentService: fp}
}

// registerFeePaymentRoutes registers ledger record routes under a school.
func registerFeePaymentRoutes(rg *gin.RouterGroup, feePaymentService portssvc.FeePaymentSvcFacade) {
	h := newFeePaymentHandler(feePaymentService)

	payments := rg.Group("/fee-payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPayment)
		payments.PUT("/:payment_id/record", h.recordPayment)
		payments.DELETE("/:payment_id", h.deletePayment)
		payments.POST("/bulk-mark-paid", h.bulkMarkPaid)
		payments.POST("/bulk-delete", h.bulkDelete)
	}
}

// createPayment godoc
// @Summary Create a ledger record manually
// @Description Creates a single ledger record outside of bulk generation. The same student/feeType/period/year uniqueness rules apply; carry-forward from the prior month is computed the same way generation does it.
// @Tags fee-payments
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param payment body dto.CreateFeePaymentRequest true "Ledger record details"
// @Success 201 {object} dto.FeePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 409 {object} map[string]string "Record already exists for this billing key"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments [post]
func (h *feePaymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.CreateFeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.feePaymentService.CreatePayment(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A record already exists for this student, fee type and period"})
			return
		}
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to create ledger record", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ledger record"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeePaymentResponse(payment))
}

// listPayments godoc
// @Summary List ledger records
// @Description Retrieves a filtered, cursor-paginated page of ledger records
// @Tags fee-payments
// @Produce json
// @Param school_id path string true "School ID"
// @Param feeType query string false "Filter by fee type" Enums(MONTHLY, ANNUAL, ADMISSION, BOOKS, FINE)
// @Param period query int false "Filter by billing month (1-12)"
// @Param year query int false "Filter by year"
// @Param classID query string false "Filter by class"
// @Param studentID query string false "Filter by student"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments [get]
func (h *feePaymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := h.feePaymentService.ListPayments(c.Request.Context(), schoolID, userID, params)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to list ledger records", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger records"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// getPayment godoc
// @Summary Get a ledger record by ID
// @Description Retrieves a single ledger record with its derived status and balance
// @Tags fee-payments
// @Produce json
// @Param school_id path string true "School ID"
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.FeePaymentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Record not found"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments/{payment_id} [get]
func (h *feePaymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.feePaymentService.GetPaymentByID(c.Request.Context(), schoolID, paymentID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to get ledger record", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger record"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeePaymentResponse(payment))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Sets the total paid amount and collection details on a ledger record. AmountPaid is the record's new total, not an increment. Overpayment is allowed and classifies the record as ADVANCE.
// @Tags fee-payments
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param payment_id path string true "Payment ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.FeePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input (negative amount, missing account)"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Record or account not found"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments/{payment_id}/record [put]
func (h *feePaymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	paymentID := c.Param("payment_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.feePaymentService.RecordPayment(c.Request.Context(), schoolID, paymentID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to record payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeePaymentResponse(payment))
}

// deletePayment godoc
// @Summary Delete a ledger record
// @Description Removes a ledger record
// @Tags fee-payments
// @Produce json
// @Param school_id path string true "School ID"
// @Param payment_id path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Record not found"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments/{payment_id} [delete]
func (h *feePaymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.feePaymentService.DeletePayment(c.Request.Context(), schoolID, paymentID, userID); err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to delete ledger record", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ledger record"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// bulkMarkPaid godoc
// @Summary Mark records paid in full
// @Description Marks each listed ledger record as paid in full into one account. Best effort: a failure on one record does not roll back the others; per-id outcomes are reported.
// @Tags fee-payments
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param request body dto.BulkMarkPaidRequest true "Record IDs and collection details"
// @Success 200 {object} dto.BulkOperationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments/bulk-mark-paid [post]
func (h *feePaymentHandler) bulkMarkPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.BulkMarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.feePaymentService.BulkMarkPaid(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Bulk mark paid failed", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Bulk mark paid failed"})
		}
		return
	}

	logger.Info("Bulk mark paid completed",
		slog.String("school_id", schoolID),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("not_found", result.NotFound),
		slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}

// bulkDelete godoc
// @Summary Delete records in bulk
// @Description Deletes each listed ledger record, reporting per-id outcomes. Best effort: partial failure does not roll back records already deleted.
// @Tags fee-payments
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param request body dto.BulkDeleteRequest true "Record IDs"
// @Success 200 {object} dto.BulkOperationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/fee-payments/bulk-delete [post]
func (h *feePaymentHandler) bulkDelete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.feePaymentService.BulkDelete(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Bulk delete failed", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Bulk delete failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
