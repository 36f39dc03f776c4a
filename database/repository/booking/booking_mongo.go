package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"auditorium/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	bookingsCollection = "bookings"
	locksCollection    = "booking_locks"
	approvalLockID     = "approval"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client   *mongo.Client
	coll     *mongo.Collection
	lockColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo. It fails when
// the approval lock document cannot be seeded.
func NewMongoBookingRepo(db *mongo.Database) (BookingRepository, error) {
	repo := &MongoBookingRepo{
		client:   db.Client(),
		coll:     db.Collection(bookingsCollection),
		lockColl: db.Collection(locksCollection),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("booking repo: failed to create indexes", zap.Error(err))
	}
	if err := repo.seedLockDocument(); err != nil {
		return nil, fmt.Errorf("booking repo: %w", err)
	}
	return repo, nil
}

// newContext derives a per-operation timeout from the caller's context.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
