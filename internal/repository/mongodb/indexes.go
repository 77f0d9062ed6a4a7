// internal/repository/mongodb/indexes.go
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Uniqueness on
// phone number and email backs the service-level duplicate checks against
// concurrent inserts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	candidateIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_phone_number"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "positionId", Value: 1}},
			Options: options.Index().SetName("idx_position_id"),
		},
		{
			Keys:    bson.D{{Key: "assignedTo", Value: 1}},
			Options: options.Index().SetName("idx_assigned_to"),
		},
	}
	if _, err := db.Collection(candidatesCollection).Indexes().CreateMany(ctx, candidateIndexes); err != nil {
		return fmt.Errorf("create candidate indexes: %w", err)
	}

	positionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_name"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	}
	if _, err := db.Collection(positionsCollection).Indexes().CreateMany(ctx, positionIndexes); err != nil {
		return fmt.Errorf("create position indexes: %w", err)
	}
	return nil
}
