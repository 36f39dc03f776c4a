package bookingRepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestLockUpdateUpserts(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("IST", 19800))

	filter, update, opts := lockUpdate(now)

	assert.Equal(t, bson.M{"_id": approvalLockID}, filter)
	assert.Equal(t, bson.M{"seq": 1}, update["$inc"])
	assert.Equal(t, bson.M{"heldAt": now.UTC()}, update["$set"])
	require.NotNil(t, opts.Upsert)
	assert.True(t, *opts.Upsert, "a missing lock document must be recreated")
}

func TestLockHeld(t *testing.T) {
	assert.NoError(t, lockHeld(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}))
	assert.NoError(t, lockHeld(&mongo.UpdateResult{UpsertedCount: 1, UpsertedID: approvalLockID}))
	assert.ErrorIs(t, lockHeld(&mongo.UpdateResult{}), errLockNotHeld)
	assert.ErrorIs(t, lockHeld(nil), errLockNotHeld)
}
