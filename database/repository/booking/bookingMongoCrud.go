package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auditorium/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Requirements == nil {
		booking.Requirements = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of a booking and returns the stored document.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating status of booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update modifies the editable fields of an existing booking document.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"department":   booking.Department,
		"eventName":    booking.EventName,
		"eventType":    booking.EventType,
		"startTime":    booking.StartTime,
		"endTime":      booking.EndTime,
		"sTime":        booking.STime,
		"eTime":        booking.ETime,
		"comments":     booking.Comments,
		"requirements": booking.Requirements,
		"updatedAt":    booking.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": booking.ID}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking record from the database.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
