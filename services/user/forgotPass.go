package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"auditorium/models"
	"auditorium/services/errs"
	"auditorium/utils"

	"go.uber.org/zap"
)

const otpLength = 6

// ForgotPassword starts password recovery. Admins receive a one-time code by
// email; for a HOD the admins are asked to reset the password by hand.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, username string) (ResetChannel, error) {
	u, err := s.repo.GetByUsername(ctx, normalize(username))
	if err != nil {
		return "", storeError(err, "user")
	}

	switch u.Role {
	case models.RoleAdmin:
		otp, err := utils.GenerateNumericOTP(otpLength)
		if err != nil {
			return "", errs.NewDependencyError("failed to generate OTP", err)
		}
		if err := s.otps.Save(ctx, u.Username, otp, utils.OTPTTL); err != nil {
			return "", errs.NewDependencyError("failed to store OTP", err)
		}
		msg, err := renderEmail("admin_otp", []string{u.Email}, "Admin Password Reset OTP", struct {
			Name, OTP string
			Minutes   int
		}{u.Name, otp, int(utils.OTPTTL.Minutes())})
		if err := s.send(ctx, msg, err); err != nil {
			return "", errs.NewDependencyError("failed to send OTP email", err)
		}
		s.logger.Info("admin password reset OTP issued", zap.String("userID", u.ID))
		return ResetViaOTP, nil

	case models.RoleHOD:
		admins, err := s.adminRecipients(ctx)
		if err != nil {
			return "", err
		}
		if len(admins) == 0 {
			return "", errs.NewNotFoundError("admin not found")
		}
		msg, err := renderEmail("hod_reset_request", admins, "HOD Password Reset Request", u)
		if err := s.send(ctx, msg, err); err != nil {
			return "", errs.NewDependencyError("failed to notify admin", err)
		}
		s.logger.Info("HOD password reset requested", zap.String("userID", u.ID))
		return ResetViaAdmin, nil
	}
	return "", errs.NewValidationError("unsupported user role %q", u.Role)
}

// AdminResetPassword sets a new admin password after checking the emailed code.
// A code can be used once.
func (s *DefaultUserService) AdminResetPassword(ctx context.Context, username, otp, newPassword string) error {
	username = normalize(username)
	if len(newPassword) < 6 {
		return errs.NewValidationError("password must be at least 6 characters")
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil || u.Role != models.RoleAdmin {
		if err != nil && errs.KindOf(storeError(err, "user")) != errs.KindNotFound {
			return storeError(err, "user")
		}
		return errs.NewValidationError("invalid or expired OTP")
	}

	stored, err := s.otps.Get(ctx, u.Username)
	if err != nil {
		if errors.Is(err, utils.ErrOTPNotFound) {
			return errs.NewValidationError("invalid or expired OTP")
		}
		return errs.NewDependencyError("failed to read OTP", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(otp))) != 1 {
		return errs.NewValidationError("invalid or expired OTP")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	if err := s.repo.Update(ctx, u); err != nil {
		return storeError(err, "user")
	}
	if err := s.otps.Delete(ctx, u.Username); err != nil {
		s.logger.Warn("failed to delete used OTP", zap.String("userID", u.ID), zap.Error(err))
	}
	s.logger.Info("admin password reset", zap.String("userID", u.ID))
	return nil
}

// ResetHODPassword lets an admin set a HOD's password; the HOD is emailed the
// new password.
func (s *DefaultUserService) ResetHODPassword(ctx context.Context, username, newPassword string) error {
	if len(newPassword) < 6 {
		return errs.NewValidationError("password must be at least 6 characters")
	}
	u, err := s.repo.GetByUsername(ctx, normalize(username))
	if err != nil {
		return storeError(err, "HOD")
	}
	if u.Role != models.RoleHOD {
		return errs.NewNotFoundError("HOD not found")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	if err := s.repo.Update(ctx, u); err != nil {
		return storeError(err, "HOD")
	}

	msg, err := renderEmail("hod_new_password", []string{u.Email}, "Your New Password", struct {
		Name, Password string
	}{u.Name, newPassword})
	s.dispatch(ctx, msg, err)
	s.logger.Info("HOD password reset by admin", zap.String("userID", u.ID))
	return nil
}
