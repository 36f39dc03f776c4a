package user

import (
	"context"

	"auditorium/models"
	"auditorium/services/errs"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login checks the credentials and issues an access token carrying the user's
// id, role and department. HODs must be approved before they can log in.
func (s *DefaultUserService) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	username = normalize(username)
	if username == "" || password == "" {
		return nil, errs.NewValidationError("username and password are required")
	}

	userRec, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errs.KindOf(storeError(err, "user")) == errs.KindNotFound {
			return nil, errs.NewUnauthenticatedError("invalid username or password")
		}
		s.logger.Error("Login: failed to fetch user", zap.Error(err))
		return nil, storeError(err, "user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, errs.NewUnauthenticatedError("invalid username or password")
	}
	if userRec.Role == models.RoleHOD && !userRec.Approved {
		return nil, errs.NewAuthorizationError("account awaiting admin approval")
	}

	token, err := s.tokens.GenerateToken(userRec.ID, userRec.Role, userRec.Department)
	if err != nil {
		s.logger.Error("Login: failed to sign token", zap.Error(err))
		return nil, errs.NewDependencyError("authentication failed, please try again", err)
	}

	s.logger.Info("user logged in", zap.String("userID", userRec.ID), zap.String("role", userRec.Role))
	return &models.AuthResponse{
		Token:      token,
		Role:       userRec.Role,
		Name:       userRec.Name,
		Department: userRec.Department,
	}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.NewDependencyError("failed to process password", err)
	}
	return string(hash), nil
}
