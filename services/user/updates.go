package user

import (
	"context"

	"auditorium/models"
	"auditorium/services/errs"

	"go.uber.org/zap"
)

// UpdateHOD lets an admin edit a HOD's name, email, username or password.
func (s *DefaultUserService) UpdateHOD(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "HOD")
	}
	if u.Role != models.RoleHOD {
		return nil, errs.NewNotFoundError("HOD not found")
	}
	upd.ProfilePic = ""
	return s.applyUpdate(ctx, u, upd)
}

// ListApprovedHODs returns all HOD accounts that may log in.
func (s *DefaultUserService) ListApprovedHODs(ctx context.Context) ([]models.User, error) {
	hods, err := s.repo.FindByRole(ctx, models.RoleHOD, true)
	if err != nil {
		return nil, storeError(err, "HOD")
	}
	return hods, nil
}

// GetProfile returns the caller's own account.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return u, nil
}

// UpdateProfile applies the caller's own profile edits.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return s.applyUpdate(ctx, u, upd)
}

// applyUpdate copies the non-empty fields of upd onto u, checking that a new
// username or email is still free.
func (s *DefaultUserService) applyUpdate(ctx context.Context, u *models.User, upd models.UserUpdate) (*models.User, error) {
	if name := trim(upd.Name); name != "" {
		u.Name = name
	}
	if username := normalize(upd.Username); username != "" && username != u.Username {
		if err := s.ensureFree(ctx, u.ID, username, ""); err != nil {
			return nil, err
		}
		u.Username = username
	}
	if email := normalize(upd.Email); email != "" && email != u.Email {
		if err := s.validate.Var(email, "email"); err != nil {
			return nil, errs.NewValidationError("email is not a valid address")
		}
		if err := s.ensureFree(ctx, u.ID, "", email); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if pic := trim(upd.ProfilePic); pic != "" {
		u.ProfilePic = pic
	}
	if upd.Password != "" {
		if len(upd.Password) < 6 {
			return nil, errs.NewValidationError("password must be at least 6 characters")
		}
		hash, err := hashPassword(upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, storeError(err, "user")
	}
	s.logger.Info("user updated", zap.String("userID", u.ID))
	return u, nil
}

func (s *DefaultUserService) ensureFree(ctx context.Context, selfID, username, email string) error {
	var (
		other *models.User
		err   error
	)
	if username != "" {
		other, err = s.repo.GetByUsername(ctx, username)
	} else {
		other, err = s.repo.GetByEmail(ctx, email)
	}
	if err != nil {
		if errs.KindOf(storeError(err, "user")) == errs.KindNotFound {
			return nil
		}
		return storeError(err, "user")
	}
	if other.ID != selfID {
		return errs.NewConflictError("username or email already in use")
	}
	return nil
}
