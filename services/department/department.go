package department

import (
	"context"
	"errors"
	"strings"

	departmentRepo "auditorium/database/repository/department"
	"auditorium/models"
	"auditorium/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DepartmentService interface {
	Create(ctx context.Context, name string) (*models.Department, error)
	ListNames(ctx context.Context) ([]string, error)
}

type DefaultDepartmentService struct {
	repo   departmentRepo.DepartmentRepository
	logger *zap.Logger
}

func NewDefaultDepartmentService(repo departmentRepo.DepartmentRepository, logger *zap.Logger) *DefaultDepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDepartmentService{repo: repo, logger: logger.Named("department")}
}

// Create adds a department. Names are trimmed and must be unique.
func (s *DefaultDepartmentService) Create(ctx context.Context, name string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValidationError("department name is required")
	}
	dept := &models.Department{ID: uuid.NewString(), Name: name}
	if err := s.repo.Create(ctx, dept); err != nil {
		if errors.Is(err, departmentRepo.ErrDuplicate) {
			return nil, errs.NewConflictError("department %q already exists", name)
		}
		return nil, errs.NewDependencyError("failed to create department", err)
	}
	s.logger.Info("department created", zap.String("name", name))
	return dept, nil
}

// ListNames returns department names in alphabetical order.
func (s *DefaultDepartmentService) ListNames(ctx context.Context) ([]string, error) {
	depts, err := s.repo.List(ctx)
	if err != nil {
		return nil, errs.NewDependencyError("failed to list departments", err)
	}
	names := make([]string, 0, len(depts))
	for _, d := range depts {
		names = append(names, d.Name)
	}
	return names, nil
}
