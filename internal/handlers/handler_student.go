package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// studentHandler handles HTTP requests for classes and students within a school.
type studentHandler struct {
	studentService      portssvc.StudentSvcFacade
	feeStructureService portssvc.FeeStructureSvcFacade
}

// newStudentHandler creates a new studentHandler.
func newStudentHandler(ss portssvc.StudentSvcFacade, fs portssvc.FeeStructureSvcFacade) *studentHandler {
	return &studentHandler{studentService: ss, feeStructureService: fs}
}

// registerStudentRoutes registers class and student routes under a school.
func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade, feeStructureService portssvc.FeeStructureSvcFacade) {
	h := newStudentHandler(studentService, feeStructureService)

	classes := rg.Group("/classes")
	{
		classes.POST("", h.createClass)
		classes.GET("", h.listClasses)
		classes.GET("/:class_id", h.getClass)
		classes.PUT("/:class_id", h.updateClass)
	}

	students := rg.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:student_id", h.getStudent)
		students.PUT("/:student_id", h.updateStudent)
		students.GET("/:student_id/resolve-fee", h.resolveStudentFee)
	}
}

// createClass godoc
// @Summary Create a class
// @Description Creates a new class in the school
// @Tags classes
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param class body dto.CreateClassRequest true "Class details"
// @Success 201 {object} dto.ClassResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/classes [post]
func (h *studentHandler) createClass(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	class, err := h.studentService.CreateClass(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to create class", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create class"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToClassResponse(class))
}

// listClasses godoc
// @Summary List classes
// @Description Retrieves all classes in the school
// @Tags classes
// @Produce json
// @Param school_id path string true "School ID"
// @Success 200 {array} dto.ClassResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/classes [get]
func (h *studentHandler) listClasses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classes, err := h.studentService.ListClasses(c.Request.Context(), schoolID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to list classes", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list classes"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListClassResponse(classes))
}

// getClass godoc
// @Summary Get a class by ID
// @Description Retrieves details for a specific class
// @Tags classes
// @Produce json
// @Param school_id path string true "School ID"
// @Param class_id path string true "Class ID"
// @Success 200 {object} dto.ClassResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Class not found"
// @Security BearerAuth
// @Router /schools/{school_id}/classes/{class_id} [get]
func (h *studentHandler) getClass(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	classID := c.Param("class_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	class, err := h.studentService.GetClassByID(c.Request.Context(), schoolID, classID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to get class", slog.String("error", err.Error()), slog.String("class_id", classID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve class"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClassResponse(class))
}

// updateClass godoc
// @Summary Update a class
// @Description Updates class details
// @Tags classes
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param class_id path string true "Class ID"
// @Param class body dto.UpdateClassRequest true "Fields to update"
// @Success 200 {object} dto.ClassResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Class not found"
// @Security BearerAuth
// @Router /schools/{school_id}/classes/{class_id} [put]
func (h *studentHandler) updateClass(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	classID := c.Param("class_id")

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	class, err := h.studentService.UpdateClass(c.Request.Context(), schoolID, classID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to update class", slog.String("error", err.Error()), slog.String("class_id", classID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update class"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClassResponse(class))
}

// createStudent godoc
// @Summary Enroll a student
// @Description Creates a new student in the school
// @Tags students
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Class not found"
// @Security BearerAuth
// @Router /schools/{school_id}/students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), schoolID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to create student", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Description Retrieves students in the school, optionally filtered by class and status
// @Tags students
// @Produce json
// @Param school_id path string true "School ID"
// @Param classID query string false "Filter by class"
// @Param status query string false "Filter by enrollment status" Enums(ACTIVE, LEFT, GRADUATED)
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schools/{school_id}/students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")

	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), schoolID, userID, params)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to list students", slog.String("error", err.Error()), slog.String("school_id", schoolID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list students"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListStudentResponse(students))
}

// getStudent godoc
// @Summary Get a student by ID
// @Description Retrieves details for a specific student
// @Tags students
// @Produce json
// @Param school_id path string true "School ID"
// @Param student_id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /schools/{school_id}/students/{student_id} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	studentID := c.Param("student_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.GetStudentByID(c.Request.Context(), schoolID, studentID, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to get student", slog.String("error", err.Error()), slog.String("student_id", studentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve student"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// updateStudent godoc
// @Summary Update a student
// @Description Updates student details, including class transfer and enrollment status
// @Tags students
// @Accept json
// @Produce json
// @Param school_id path string true "School ID"
// @Param student_id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /schools/{school_id}/students/{student_id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	studentID := c.Param("student_id")

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), schoolID, studentID, req, userID)
	if err != nil {
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to update student", slog.String("error", err.Error()), slog.String("student_id", studentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// resolveStudentFee godoc
// @Summary Resolve a student's fee
// @Description Determines the fee applicable to a student for a fee type at a point in time. A student-level override beats the class default. Amount and source are null when no structure applies.
// @Tags students
// @Produce json
// @Param school_id path string true "School ID"
// @Param student_id path string true "Student ID"
// @Param feeType query string true "Fee type" Enums(MONTHLY, ANNUAL, ADMISSION, BOOKS, FINE)
// @Param asOf query string false "Resolution date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ResolveFeeResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /schools/{school_id}/students/{student_id}/resolve-fee [get]
func (h *studentHandler) resolveStudentFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	schoolID := c.Param("school_id")
	studentID := c.Param("student_id")

	var params dto.ResolveFeeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", params.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resolved, err := h.feeStructureService.ResolveFee(c.Request.Context(), schoolID, studentID, domain.FeeType(params.FeeType), asOf, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoFeeStructure) {
			// Not an error condition for the caller; amount and source stay null.
			c.JSON(http.StatusOK, dto.ResolveFeeResponse{})
			return
		}
		if !respondSchoolScopedError(c, err) {
			logger.Error("Failed to resolve fee", slog.String("error", err.Error()), slog.String("student_id", studentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve fee"})
		}
		return
	}

	var resp dto.ResolveFeeResponse
	if resolved != nil {
		source := string(resolved.Source)
		resp.Amount = &resolved.Amount
		resp.Source = &source
	}
	c.JSON(http.StatusOK, resp)
}
