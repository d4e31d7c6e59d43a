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

type DepartmentHandler struct {
	departmentService service.DepartmentService
	log               zerolog.Logger
}

func NewDepartmentHandler(departmentService service.DepartmentService, log zerolog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
		log:               log.With().Str("component", "department_handler").Logger(),
	}
}

// GetAll godoc
// GET /api/v1/departments
func (h *DepartmentHandler) GetAll(c *gin.Context) {
	departments, err := h.departmentService.GetAllDepartments(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}

// GetByID godoc
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	department, err := h.departmentService.GetDepartmentByID(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": department})
}

// Create godoc
// POST /api/v1/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.save(c, &model.Department{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		Head:     req.Head,
	})
}

// Update godoc
// PUT /api/v1/departments
func (h *DepartmentHandler) Update(c *gin.Context) {
	var req model.UpdateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.save(c, &model.Department{
		ID:       req.ID,
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		Head:     req.Head,
	})
}

func (h *DepartmentHandler) save(c *gin.Context, d *model.Department) {
	saved, err := h.departmentService.SaveDepartment(c.Request.Context(), d)
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": saved})
}

// Delete godoc
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), id); err != nil {
		failWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "department deleted successfully"})
}
