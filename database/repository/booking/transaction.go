package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// errLockNotHeld means the lock update touched no document, so the transaction
// would not conflict with a concurrent approval.
var errLockNotHeld = errors.New("approval lock document was not written")

const lockSeedAttempts = 3

// ensureLockDocument creates the approval lock document outside of any transaction,
// since implicit collection creation is not allowed inside one on older servers.
func (r *MongoBookingRepo) ensureLockDocument() error {
	ctx, cancel := newContext(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.lockColl.UpdateOne(ctx,
		bson.M{"_id": approvalLockID},
		bson.M{"$setOnInsert": bson.M{"seq": int64(0)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert approval lock: %w", err)
	}
	return nil
}

// seedLockDocument retries ensureLockDocument with a linear backoff.
func (r *MongoBookingRepo) seedLockDocument() error {
	var err error
	for attempt := 1; attempt <= lockSeedAttempts; attempt++ {
		if err = r.ensureLockDocument(); err == nil {
			return nil
		}
		if attempt < lockSeedAttempts {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}
	return err
}

// lockUpdate bumps the approval lock document. The upsert recreates the
// document if it was removed, so every approval still writes the same key.
func lockUpdate(now time.Time) (bson.M, bson.M, *options.UpdateOptions) {
	filter := bson.M{"_id": approvalLockID}
	update := bson.M{"$inc": bson.M{"seq": 1}, "$set": bson.M{"heldAt": now.UTC()}}
	return filter, update, options.Update().SetUpsert(true)
}

// lockHeld checks that the lock update actually wrote the lock document.
func lockHeld(res *mongo.UpdateResult) error {
	if res == nil || (res.MatchedCount == 0 && res.UpsertedCount == 0) {
		return errLockNotHeld
	}
	return nil
}

// WithApprovalLock runs fn inside a transaction that first writes the shared
// approval lock document. Two concurrent approvals therefore always touch the same
// document, so one of them hits a write conflict and WithTransaction re-runs it
// against the committed state of the other.
func (r *MongoBookingRepo) WithApprovalLock(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var fnErr error
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		fnErr = nil
		filter, update, opts := lockUpdate(time.Now())
		res, err := r.lockColl.UpdateOne(sc, filter, update, opts)
		if err != nil {
			return nil, fmt.Errorf("acquire approval lock: %w", err)
		}
		if err := lockHeld(res); err != nil {
			return nil, err
		}
		if fnErr = fn(sc); fnErr != nil {
			return nil, fnErr
		}
		return nil, nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("approval transaction failed: %w", err)
	}
	return nil
}
