package userRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userIndexes lists the user collection indexes. Login and the duplicate check
// look users up by username and email, which the service stores lowercased, so
// plain unique indexes enforce case-insensitive uniqueness. Admin listings filter
// by role and approval.
func userIndexes() []mongo.IndexModel {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_" + field + "_unique"),
		}
	}
	return []mongo.IndexModel{
		unique("id"),
		unique("username"),
		unique("email"),
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "approved", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("users_role_approved_name"),
		},
	}
}

func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, userIndexes()); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}
