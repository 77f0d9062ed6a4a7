// internal/repository/mongodb/candidate_repository.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"candidate-service/internal/models"
	"candidate-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const candidatesCollection = "candidates"

// CandidateRepository implements repository.CandidateRepository over MongoDB.
type CandidateRepository struct {
	coll *mongo.Collection
}

func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{coll: db.Collection(candidatesCollection)}
}

func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&candidate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find candidate by id: %w", err)
	}
	return &candidate, nil
}

func (r *CandidateRepository) FindAll(ctx context.Context) ([]models.Candidate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all candidates: %w", err)
	}
	return decodeCandidates(ctx, cursor)
}

func (r *CandidateRepository) FindByName(ctx context.Context, name string) ([]models.Candidate, error) {
	filter := bson.M{"name": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(name) + "$",
		"$options": "i",
	}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find candidates by name: %w", err)
	}
	return decodeCandidates(ctx, cursor)
}

func (r *CandidateRepository) FindByAssignedTo(ctx context.Context, assignedTo string) ([]models.Candidate, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"assignedTo": assignedTo})
	if err != nil {
		return nil, fmt.Errorf("find candidates by assignee: %w", err)
	}
	return decodeCandidates(ctx, cursor)
}

func (r *CandidateRepository) FindByPositionID(ctx context.Context, positionID string) ([]models.Candidate, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"positionId": positionID})
	if err != nil {
		return nil, fmt.Errorf("find candidates by position: %w", err)
	}
	return decodeCandidates(ctx, cursor)
}

func (r *CandidateRepository) CountByPositionID(ctx context.Context, positionID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"positionId": positionID})
	if err != nil {
		return 0, fmt.Errorf("count candidates by position: %w", err)
	}
	return count, nil
}

func (r *CandidateRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, bson.M{"_id": id})
}

func (r *CandidateRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	return r.exists(ctx, bson.M{"phoneNumber": phoneNumber})
}

func (r *CandidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *CandidateRepository) Save(ctx context.Context, candidate models.Candidate) (*models.Candidate, error) {
	if candidate.ID == "" {
		candidate.ID = bson.NewObjectID().Hex()
		if _, err := r.coll.InsertOne(ctx, candidate); err != nil {
			return nil, fmt.Errorf("insert candidate: %w", err)
		}
		return &candidate, nil
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": candidate.ID}, candidate, opts); err != nil {
		return nil, fmt.Errorf("replace candidate %s: %w", candidate.ID, err)
	}
	return &candidate, nil
}

func (r *CandidateRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete candidate %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return count > 0, nil
}

func decodeCandidates(ctx context.Context, cursor *mongo.Cursor) ([]models.Candidate, error) {
	defer cursor.Close(ctx)
	candidates := []models.Candidate{}
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}
