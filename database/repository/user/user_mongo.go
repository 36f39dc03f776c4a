package userRepo

import (
	"context"
	"time"

	"auditorium/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("user repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
