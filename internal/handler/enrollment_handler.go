package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/response"
	"github.com/stemsi/academia-backend/internal/service"
	"github.com/stemsi/academia-backend/internal/validator"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
	log               zerolog.Logger
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService, log zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		log:               log.With().Str("component", "enrollment_handler").Logger(),
	}
}

func (h *EnrollmentHandler) GetAll(c *gin.Context) {
	enrollments, err := h.enrollmentService.GetAllEnrollments(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

func (h *EnrollmentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.GetEnrollmentByID(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req model.CreateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	h.save(c, req.ToEnrollment())
}

func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req model.UpdateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment := req.ToEnrollment()
	enrollment.ID = req.ID
	h.save(c, enrollment)
}

func (h *EnrollmentHandler) save(c *gin.Context, e *model.Enrollment) {
	saved, err := h.enrollmentService.SaveEnrollment(c.Request.Context(), e)
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": saved})
}

func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.enrollmentService.DeleteEnrollment(c.Request.Context(), id); err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "enrollment deleted successfully"})
}
