package handlers

import (
	"net/http"

	"auditorium/services/department"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departments department.DepartmentService
}

func NewDepartmentHandler(departments department.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

type departmentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *DepartmentHandler) CreateDepartmentHandler(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Department name is required", err)
		return
	}

	dept, err := h.departments.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "department creation")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Department added", "department": dept})
}

func (h *DepartmentHandler) ListDepartmentsHandler(c *gin.Context) {
	names, err := h.departments.ListNames(c.Request.Context())
	if err != nil {
		respondError(c, err, "department listing")
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}
