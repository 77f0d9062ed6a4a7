// internal/repository/mongodb/position_repository.go
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"candidate-service/internal/models"
	"candidate-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const positionsCollection = "positions"

// PositionRepository implements repository.PositionRepository over MongoDB.
type PositionRepository struct {
	coll *mongo.Collection
}

func NewPositionRepository(db *mongo.Database) *PositionRepository {
	return &PositionRepository{coll: db.Collection(positionsCollection)}
}

func (r *PositionRepository) FindByID(ctx context.Context, id string) (*models.Position, error) {
	var position models.Position
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&position)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find position by id: %w", err)
	}
	return &position, nil
}

func (r *PositionRepository) FindAll(ctx context.Context) ([]models.Position, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all positions: %w", err)
	}
	return decodePositions(ctx, cursor)
}

func (r *PositionRepository) FindByName(ctx context.Context, name string) ([]models.Position, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"name": name})
	if err != nil {
		return nil, fmt.Errorf("find positions by name: %w", err)
	}
	return decodePositions(ctx, cursor)
}

func (r *PositionRepository) FindByStatus(ctx context.Context, status models.Status) ([]models.Position, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("find positions by status: %w", err)
	}
	return decodePositions(ctx, cursor)
}

func (r *PositionRepository) FindByStatusAndSubStatus(ctx context.Context, status models.Status, subStatus models.SubStatus) ([]models.Position, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": status, "subStatus": subStatus})
	if err != nil {
		return nil, fmt.Errorf("find positions by status and sub-status: %w", err)
	}
	return decodePositions(ctx, cursor)
}

func (r *PositionRepository) FindByStatuses(ctx context.Context, status1, status2 models.Status) ([]models.Position, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"status": status1},
		bson.M{"status": status2},
	}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find positions by statuses: %w", err)
	}
	return decodePositions(ctx, cursor)
}

func (r *PositionRepository) Save(ctx context.Context, position models.Position) (*models.Position, error) {
	if position.ID == "" {
		position.ID = bson.NewObjectID().Hex()
		if _, err := r.coll.InsertOne(ctx, position); err != nil {
			return nil, fmt.Errorf("insert position: %w", err)
		}
		return &position, nil
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": position.ID}, position, opts); err != nil {
		return nil, fmt.Errorf("replace position %s: %w", position.ID, err)
	}
	return &position, nil
}

func decodePositions(ctx context.Context, cursor *mongo.Cursor) ([]models.Position, error) {
	defer cursor.Close(ctx)
	positions := []models.Position{}
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, fmt.Errorf("decode positions: %w", err)
	}
	return positions, nil
}
