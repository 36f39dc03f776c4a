package booking

import (
	"errors"
	"fmt"
	"strings"

	"auditorium/config"
	bookingRepo "auditorium/database/repository/booking"
	"auditorium/models"
	"auditorium/services/notification"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Dependencies groups everything DefaultBookingService needs.
type Dependencies struct {
	Repo     bookingRepo.BookingRepository
	Users    UserDirectory
	Notifier notification.Notifier
	// Routes is the equipment routing table applied on approval.
	Routes []config.EquipmentRoute
	// AdminEmail is always added to admin notifications.
	AdminEmail string
	Logger     *zap.Logger
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	repo       bookingRepo.BookingRepository
	users      UserDirectory
	notifier   notification.Notifier
	resolver   *ConflictResolver
	router     *EquipmentRouter
	adminEmail string
	logger     *zap.Logger
	validate   *validator.Validate
}

func NewDefaultBookingService(deps Dependencies) (*DefaultBookingService, error) {
	if deps.Repo == nil || deps.Users == nil || deps.Notifier == nil {
		return nil, fmt.Errorf("booking service initialization error: repository, user directory and notifier are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		repo:       deps.Repo,
		users:      deps.Users,
		notifier:   deps.Notifier,
		resolver:   NewConflictResolver(deps.Repo),
		router:     NewEquipmentRouter(deps.Routes),
		adminEmail: strings.ToLower(strings.TrimSpace(deps.AdminEmail)),
		logger:     logger.Named("booking"),
		validate:   validator.New(),
	}, nil
}

// storeError maps repository errors onto the service error taxonomy.
func storeError(err error, bookingID string) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != 0 {
		return err
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return NewNotFoundError("booking %s not found", bookingID)
	}
	return NewDependencyError("booking store failure", err)
}

func conflictError(existing models.Booking) error {
	return NewConflictError("time conflict with approved booking %q (%s - %s)",
		existing.EventName,
		existing.StartTime.Format(emailTimeLayout),
		existing.EndTime.Format(emailTimeLayout),
	)
}

var _ BookingService = (*DefaultBookingService)(nil)
