package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

const goalsStateKey = "goals"

// GoalService manages the personal goal tracker.
type GoalService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGoalService constructs the service.
func NewGoalService(store stateStore, validate *validator.Validate, logger *zap.Logger) *GoalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{store: store, validator: validate, logger: logger}
}

// GoalRequest carries a goal payload.
type GoalRequest struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required"`
	TargetDate  string `json:"target_date" validate:"required"`
}

// List returns goals grouped stable by target date, pending first.
func (s *GoalService) List(ctx context.Context, goalType string) ([]models.Goal, error) {
	goals, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Goal, 0, len(goals))
	for _, g := range goals {
		if goalType != "" && g.Type != models.GoalType(goalType) {
			continue
		}
		filtered = append(filtered, g)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Status != filtered[j].Status {
			return filtered[i].Status == models.GoalPending
		}
		return filtered[i].TargetDate < filtered[j].TargetDate
	})
	return filtered, nil
}

// Add creates a pending goal.
func (s *GoalService) Add(ctx context.Context, req GoalRequest) (*models.Goal, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	goals, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	goal := models.Goal{
		ID:          uuid.NewString(),
		Type:        models.GoalType(req.Type),
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Status:      models.GoalPending,
	}
	goals = append(goals, goal)
	s.save(ctx, goals)
	return &goal, nil
}

// Update rewrites a goal's fields, keeping its status.
func (s *GoalService) Update(ctx context.Context, id string, req GoalRequest) (*models.Goal, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	goals, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		goals[i].Type = models.GoalType(req.Type)
		goals[i].Description = req.Description
		goals[i].TargetDate = req.TargetDate
		s.save(ctx, goals)
		return &goals[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
}

// SetStatus toggles completion.
func (s *GoalService) SetStatus(ctx context.Context, id string, status models.GoalStatus) (*models.Goal, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown goal status")
	}
	goals, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		goals[i].Status = status
		s.save(ctx, goals)
		return &goals[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	goals, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == id {
			goals = append(goals[:i], goals[i+1:]...)
			s.save(ctx, goals)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "goal not found")
}

func (s *GoalService) validate(req GoalRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !models.GoalType(req.Type).Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "type must be Daily, Weekly or Monthly")
	}
	if _, err := schedule.ParseDate(req.TargetDate); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "target_date must be YYYY-MM-DD")
	}
	return nil
}

func (s *GoalService) load(ctx context.Context) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.store.Get(ctx, goalsStateKey, &goals)
	if err != nil && err != repository.ErrKeyNotFound {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load goals")
	}
	return goals, nil
}

// save writes the goals back on a best-effort basis. A failed write is
// logged and the caller still returns the in-memory result.
func (s *GoalService) save(ctx context.Context, goals []models.Goal) {
	if err := s.store.Set(ctx, goalsStateKey, goals); err != nil {
		s.logger.Sugar().Warnw("failed to persist goals", "error", err)
	}
}
