package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, today, weekStart, weekEnd time.Time) (*models.EventStats, error)
}

// EventService manages the event calendar and its scheduling rules.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: validate, logger: logger}
}

// EventListRequest describes listing filters.
type EventListRequest struct {
	Date     *time.Time `json:"date"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Status   string     `json:"status"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// CreateEventRequest describes the create payload.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Person      string    `json:"person"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required"`
	EndTime     string    `json:"end_time" validate:"required"`
}

// UpdateEventRequest describes the update payload. Status changes
// (complete, cancel) go through here; rescheduling has its own path.
type UpdateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Person      string    `json:"person"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required"`
	EndTime     string    `json:"end_time" validate:"required"`
	Status      string    `json:"status" validate:"required"`
}

// RescheduleRequest moves an event to a new slot.
type RescheduleRequest struct {
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
}

// ConflictCheckRequest probes a candidate slot without writing.
type ConflictCheckRequest struct {
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
	ExcludeID string    `json:"exclude_id"`
}

// List returns events and paging metadata.
func (s *EventService) List(ctx context.Context, req EventListRequest) ([]models.Event, *models.Pagination, error) {
	filter := models.EventFilter{
		Date:     req.Date,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := models.EventStatus(req.Status)
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown event status")
		}
		filter.Status = &status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return events, pagination, nil
}

// Get returns an event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get event")
	}
	return event, nil
}

// Create schedules a new event. Events may only be created on weekdays
// and must not collide with another active event on the same day.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, []models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, end, err := s.parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}
	if !schedule.IsWeekday(req.Date) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "events can only be scheduled on weekdays")
	}
	conflicts, err := s.conflictsFor(ctx, "", req.Date, start, end)
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflicts, appErrors.Clone(appErrors.ErrConflict, "time slot conflicts with an existing event")
	}
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Person:      req.Person,
		Location:    req.Location,
		Notes:       req.Notes,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.EventStatusScheduled,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	return event, nil, nil
}

// Update modifies event fields and status in place. Time changes are
// conflict-checked against the target day.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest) (*models.Event, []models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	status := models.EventStatus(req.Status)
	if !status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown event status")
	}
	start, end, err := s.parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if status != models.EventStatusCancelled {
		conflicts, err := s.conflictsFor(ctx, id, req.Date, start, end)
		if err != nil {
			return nil, nil, err
		}
		if len(conflicts) > 0 {
			return nil, conflicts, appErrors.Clone(appErrors.ErrConflict, "time slot conflicts with an existing event")
		}
	}
	event.Title = req.Title
	event.Description = req.Description
	event.Person = req.Person
	event.Location = req.Location
	event.Notes = req.Notes
	event.Date = req.Date
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Status = status
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	return event, nil, nil
}

// Reschedule moves an event to a new slot. The move keeps the lineage
// pointer to the first event in the chain and resets the status to
// scheduled, so a completed or cancelled event becomes active again.
func (s *EventService) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*models.Event, []models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, end, err := s.parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	conflicts, err := s.conflictsFor(ctx, id, req.Date, start, end)
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflicts, appErrors.Clone(appErrors.ErrConflict, "new time slot conflicts with an existing event")
	}
	if event.OriginalEventID == nil {
		origin := event.ID
		event.OriginalEventID = &origin
	}
	event.Date = req.Date
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Status = models.EventStatusScheduled
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reschedule event")
	}
	return event, nil, nil
}

// CheckConflicts returns the events colliding with a candidate slot.
func (s *EventService) CheckConflicts(ctx context.Context, req ConflictCheckRequest) ([]models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, end, err := s.parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	return s.conflictsFor(ctx, req.ExcludeID, req.Date, start, end)
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	return nil
}

// Stats returns the dashboard counters relative to now.
func (s *EventService) Stats(ctx context.Context, now time.Time) (*models.EventStats, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := schedule.WeekStart(now)
	weekStartUTC := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	weekEnd := weekStartUTC.AddDate(0, 0, 6)
	stats, err := s.repo.Stats(ctx, today, weekStartUTC, weekEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event stats")
	}
	return stats, nil
}

func (s *EventService) parseRange(startTime, endTime string) (int, int, error) {
	start, err := schedule.ParseClock(startTime)
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM")
	}
	end, err := schedule.ParseClock(endTime)
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM")
	}
	if start >= end {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	return start, end, nil
}

func (s *EventService) conflictsFor(ctx context.Context, excludeID string, date time.Time, start, end int) ([]models.Event, error) {
	dayEvents, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events for conflict check")
	}
	return schedule.FindConflicts(dayEvents, excludeID, date, start, end), nil
}
