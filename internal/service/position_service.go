// internal/service/position_service.go
package service

import (
	"context"
	stderrors "errors"

	"candidate-service/internal/common/errors"
	"candidate-service/internal/common/logger"
	"candidate-service/internal/models"
	"candidate-service/internal/repository"
)

// PositionService drives the position lifecycle: positions open on creation
// and close exactly once, either cancelled or filled.
type PositionService struct {
	positions  repository.PositionRepository
	candidates repository.CandidateRepository
	logger     logger.Logger
}

func NewPositionService(positions repository.PositionRepository, candidates repository.CandidateRepository, log logger.Logger) *PositionService {
	return &PositionService{
		positions:  positions,
		candidates: candidates,
		logger:     log.WithFields(map[string]interface{}{"service": "position"}),
	}
}

// Add creates a new open position. The name must not be carried by any
// position that is still open; status and sub-status from the request body
// are ignored.
func (s *PositionService) Add(ctx context.Context, position models.Position) (*models.Position, error) {
	existing, err := s.positions.FindByName(ctx, position.Name)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	for _, p := range existing {
		if p.Status != models.StatusClosed {
			return nil, errors.NewPositionAlreadyExistsError(position.Name)
		}
	}

	position.ID = ""
	position.Status = models.StatusOpen
	position.SubStatus = models.SubStatusNone
	position.HiredCandidateID = ""

	saved, err := s.positions.Save(ctx, position)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	s.logger.Info("position created", map[string]interface{}{
		"positionId": saved.ID,
		"name":       saved.Name,
	})
	return saved, nil
}

// Update replaces name and status of an existing position. The sub-status is
// taken from the input only when the new status is CLOSED; an open position
// never carries one.
func (s *PositionService) Update(ctx context.Context, id string, position models.Position) (*models.Position, error) {
	current, err := s.positions.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewPositionNotFoundError(id)
		}
		return nil, errors.NewInternalError(err)
	}

	current.Name = position.Name
	current.Status = position.Status
	if position.Status == models.StatusClosed {
		current.SubStatus = position.SubStatus
	} else {
		current.SubStatus = models.SubStatusNone
	}

	saved, err := s.positions.Save(ctx, *current)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return saved, nil
}

// Cancel closes an open position that no candidate references. Cancelling an
// already closed position is an error, not a no-op.
func (s *PositionService) Cancel(ctx context.Context, id string) (*models.Position, error) {
	position, err := s.positions.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewPositionNotFoundError(id)
		}
		return nil, errors.NewInternalError(err)
	}
	if position.Status == models.StatusClosed {
		return nil, errors.NewPositionAlreadyDeactivatedError(id)
	}

	linked, err := s.candidates.CountByPositionID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if linked > 0 {
		return nil, errors.NewDeactivationNotAllowedError(id)
	}

	position.Status = models.StatusClosed
	position.SubStatus = models.SubStatusCancelled

	saved, err := s.positions.Save(ctx, *position)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	s.logger.Info("position cancelled", map[string]interface{}{"positionId": id})
	return saved, nil
}

// Fill closes an open position as filled by the given candidate, then marks
// the candidate hired and clears its assignee. The two writes hit different
// collections without a transaction; a crash in between leaves the position
// closed with the candidate unmarked.
func (s *PositionService) Fill(ctx context.Context, id, hiredCandidateID string) (*models.Position, error) {
	position, err := s.positions.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewPositionNotFoundError(id)
		}
		return nil, errors.NewInternalError(err)
	}
	if position.Status == models.StatusClosed {
		return nil, errors.NewPositionAlreadyDeactivatedError(id)
	}

	candidate, err := s.candidates.FindByID(ctx, hiredCandidateID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewCandidateNotFoundError(hiredCandidateID)
		}
		return nil, errors.NewInternalError(err)
	}

	position.Status = models.StatusClosed
	position.SubStatus = models.SubStatusFilled
	position.HiredCandidateID = hiredCandidateID

	saved, err := s.positions.Save(ctx, *position)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	candidate.Hired = true
	candidate.AssignedTo = ""
	if _, err := s.candidates.Save(ctx, *candidate); err != nil {
		s.logger.Error("position closed but candidate not marked hired", map[string]interface{}{
			"positionId":  id,
			"candidateId": hiredCandidateID,
			"error":       err.Error(),
		})
		return nil, errors.NewInternalError(err)
	}

	s.logger.Info("position filled", map[string]interface{}{
		"positionId":  id,
		"candidateId": hiredCandidateID,
	})
	return saved, nil
}

func (s *PositionService) GetAll(ctx context.Context) ([]models.Position, error) {
	positions, err := s.positions.FindAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return positions, nil
}

func (s *PositionService) GetByID(ctx context.Context, id string) (*models.Position, error) {
	position, err := s.positions.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewPositionNotFoundError(id)
		}
		return nil, errors.NewInternalError(err)
	}
	return position, nil
}

func (s *PositionService) GetByName(ctx context.Context, name string) ([]models.Position, error) {
	positions, err := s.positions.FindByName(ctx, name)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return positions, nil
}

func (s *PositionService) GetByStatus(ctx context.Context, status models.Status) ([]models.Position, error) {
	positions, err := s.positions.FindByStatus(ctx, status)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return positions, nil
}

func (s *PositionService) GetByStatusAndSubStatus(ctx context.Context, status models.Status, subStatus models.SubStatus) ([]models.Position, error) {
	positions, err := s.positions.FindByStatusAndSubStatus(ctx, status, subStatus)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return positions, nil
}

func (s *PositionService) GetByStatuses(ctx context.Context, status1, status2 models.Status) ([]models.Position, error) {
	positions, err := s.positions.FindByStatuses(ctx, status1, status2)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return positions, nil
}
