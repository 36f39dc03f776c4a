package departmentRepo

import (
	"context"
	"errors"

	"auditorium/models"
)

// ErrDuplicate is returned when a department with the same name already exists.
var ErrDuplicate = errors.New("department already exists")

// DepartmentRepository defines data access for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	List(ctx context.Context) ([]models.Department, error)
}
