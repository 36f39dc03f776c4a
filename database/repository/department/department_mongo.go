package departmentRepo

import (
	"context"
	"fmt"
	"time"

	"auditorium/models"
	"auditorium/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDepartmentRepo implements DepartmentRepository using MongoDB.
type MongoDepartmentRepo struct {
	coll *mongo.Collection
}

func NewMongoDepartmentRepo(db *mongo.Database) DepartmentRepository {
	repo := &MongoDepartmentRepo{coll: db.Collection("departments")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		utils.GetLogger().Warn("department repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

// Create inserts a department; the unique name index rejects duplicates.
func (r *MongoDepartmentRepo) Create(ctx context.Context, dept *models.Department) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dept.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, dept); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

// List returns all departments ordered by name.
func (r *MongoDepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	depts := []models.Department{}
	if err := cursor.All(ctx, &depts); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}
	return depts, nil
}
