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

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// Find lists bookings matching the criteria.
func (r *MongoBookingRepo) Find(ctx context.Context, criteria models.BookingCriteria) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(sortFor(criteria.Sort))
	return r.findMany(ctx, filterFor(criteria), opts)
}

// FindApprovedOverlapping lists approved bookings intersecting [start, end).
func (r *MongoBookingRepo) FindApprovedOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.StatusApproved,
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return r.findMany(ctx, filter, opts)
}

// Count returns the total number of bookings.
func (r *MongoBookingRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return n, nil
}

// CountByStatus aggregates booking counts per status.
func (r *MongoBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"total": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status string `bson:"_id"`
		Total  int64  `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding aggregation result: %w", err)
	}
	counts := make(map[string]int64, len(results))
	for _, res := range results {
		counts[res.Status] = res.Total
	}
	return counts, nil
}

func (r *MongoBookingRepo) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

func filterFor(c models.BookingCriteria) bson.M {
	filter := bson.M{}
	if c.Status != "" {
		filter["status"] = c.Status
	}
	if c.RequestedBy != "" {
		filter["requestedBy"] = c.RequestedBy
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		rng := bson.M{}
		if !c.From.IsZero() {
			rng["$gte"] = c.From
		}
		if !c.To.IsZero() {
			rng["$lt"] = c.To
		}
		filter["startTime"] = rng
	}
	return filter
}

func sortFor(order string) bson.D {
	switch order {
	case models.SortStartAsc:
		return bson.D{{Key: "startTime", Value: 1}}
	case models.SortStartDesc:
		return bson.D{{Key: "startTime", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}
