// Package repository defines the persistence gateway consumed by the services.
// Implementations live in the mongodb subpackage; tests use in-memory fakes.
package repository

import (
	"context"
	"errors"

	"candidate-service/internal/models"
)

// CandidateRepository is the gateway to the candidates collection.
type CandidateRepository interface {
	FindByID(ctx context.Context, id string) (*models.Candidate, error)
	// FindAll returns all candidates sorted by name ascending.
	FindAll(ctx context.Context) ([]models.Candidate, error)
	// FindByName matches the name exactly but case-insensitively.
	FindByName(ctx context.Context, name string) ([]models.Candidate, error)
	FindByAssignedTo(ctx context.Context, assignedTo string) ([]models.Candidate, error)
	FindByPositionID(ctx context.Context, positionID string) ([]models.Candidate, error)
	CountByPositionID(ctx context.Context, positionID string) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserts when the id is empty and replaces otherwise, returning the
	// persisted candidate with its id set.
	Save(ctx context.Context, candidate models.Candidate) (*models.Candidate, error)
	DeleteByID(ctx context.Context, id string) error
}

// PositionRepository is the gateway to the positions collection. Name matches
// are exact and case-sensitive.
type PositionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Position, error)
	FindAll(ctx context.Context) ([]models.Position, error)
	FindByName(ctx context.Context, name string) ([]models.Position, error)
	FindByStatus(ctx context.Context, status models.Status) ([]models.Position, error)
	FindByStatusAndSubStatus(ctx context.Context, status models.Status, subStatus models.SubStatus) ([]models.Position, error)
	// FindByStatuses returns positions whose status matches either argument.
	FindByStatuses(ctx context.Context, status1, status2 models.Status) ([]models.Position, error)
	// Save inserts when the id is empty and replaces otherwise, returning the
	// persisted position with its id set.
	Save(ctx context.Context, position models.Position) (*models.Position, error)
}

// ErrNotFound is returned by FindByID when no document matches; the services
// translate it into their domain error taxonomy.
var ErrNotFound = errors.New("document not found")
