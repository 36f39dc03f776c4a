package user

import (
	"context"
	"strings"

	"auditorium/models"
	"auditorium/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exists reports whether any account has been created yet.
func (s *DefaultUserService) Exists(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx, "")
	if err != nil {
		return false, storeError(err, "user")
	}
	return n > 0, nil
}

// RegisterFirstAdmin bootstraps the system with its first admin. It is refused
// once any account exists.
func (s *DefaultUserService) RegisterFirstAdmin(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewAuthorizationError("registration is closed; ask an admin for an account")
	}
	reg.Department = "Admin"
	return s.create(ctx, reg, models.RoleAdmin)
}

// RegisterHOD creates an approved HOD account and emails the credentials.
func (s *DefaultUserService) RegisterHOD(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	reg.Department = strings.TrimSpace(reg.Department)
	if reg.Department == "" {
		return nil, errs.NewValidationError("department is required")
	}
	u, err := s.create(ctx, reg, models.RoleHOD)
	if err != nil {
		return nil, err
	}

	msg, err := renderEmail("hod_credentials", []string{u.Email},
		"Your HOD Account Credentials - Auditorium Booking System",
		struct {
			Name, Department, Username, Password string
		}{u.Name, u.Department, u.Username, reg.Password})
	s.dispatch(ctx, msg, err)
	return u, nil
}

func (s *DefaultUserService) create(ctx context.Context, reg models.UserRegistration, role string) (*models.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Username = normalize(reg.Username)
	reg.Email = normalize(reg.Email)
	if err := s.validate.Struct(reg); err != nil {
		return nil, validationError(err)
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, reg.Username, reg.Email)
	if err != nil {
		return nil, storeError(err, "user")
	}
	if taken {
		return nil, errs.NewConflictError("username or email already in use")
	}

	hash, err := hashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Username:     reg.Username,
		Email:        reg.Email,
		Department:   reg.Department,
		PasswordHash: hash,
		Role:         role,
		Approved:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, storeError(err, "user")
	}
	s.logger.Info("user registered", zap.String("userID", u.ID), zap.String("role", role))
	return u, nil
}
