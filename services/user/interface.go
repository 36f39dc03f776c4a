package user

import (
	"context"
	"fmt"
	"strings"

	userRepo "auditorium/database/repository/user"
	"auditorium/models"
	"auditorium/services/notification"
	"auditorium/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResetChannel tells the caller how a forgotten password will be recovered.
type ResetChannel string

const (
	// ResetViaOTP: a one-time code was emailed to the admin.
	ResetViaOTP ResetChannel = "otp"
	// ResetViaAdmin: the admins were asked to reset a HOD's password.
	ResetViaAdmin ResetChannel = "admin"
)

type UserService interface {
	// Authentication
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)

	// Registration
	Exists(ctx context.Context) (bool, error)
	RegisterFirstAdmin(ctx context.Context, reg models.UserRegistration) (*models.User, error)
	RegisterHOD(ctx context.Context, reg models.UserRegistration) (*models.User, error)

	// User Management
	UpdateHOD(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	ListApprovedHODs(ctx context.Context) ([]models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error)

	// Password recovery
	ForgotPassword(ctx context.Context, username string) (ResetChannel, error)
	AdminResetPassword(ctx context.Context, username, otp, newPassword string) error
	ResetHODPassword(ctx context.Context, username, newPassword string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	repo       userRepo.UserRepository
	tokens     *utils.TokenManager
	otps       utils.OTPStore
	notifier   notification.Notifier
	adminEmail string
	logger     *zap.Logger
	validate   *validator.Validate
}

func NewDefaultUserService(
	repo userRepo.UserRepository,
	tokens *utils.TokenManager,
	otps utils.OTPStore,
	notifier notification.Notifier,
	adminEmail string,
	logger *zap.Logger,
) (*DefaultUserService, error) {
	if repo == nil || tokens == nil || otps == nil || notifier == nil {
		return nil, fmt.Errorf("user service initialization error: repository, token manager, otp store and notifier are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{
		repo:       repo,
		tokens:     tokens,
		otps:       otps,
		notifier:   notifier,
		adminEmail: normalize(adminEmail),
		logger:     logger.Named("user"),
		validate:   validator.New(),
	}, nil
}

var _ UserService = (*DefaultUserService)(nil)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
