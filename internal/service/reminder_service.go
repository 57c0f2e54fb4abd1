package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

const remindersStateKey = "reminders"

// dueWindow is how far back a poll looks for reminders that fired
// between two ticks.
const dueWindow = time.Minute

// ReminderService manages dated alerts and the poll that fires them.
// Fired reminder ids are remembered in memory so a reminder alerts at
// most once per process lifetime.
type ReminderService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger

	mu      sync.Mutex
	alerted map[string]bool
}

// NewReminderService constructs the service.
func NewReminderService(store stateStore, validate *validator.Validate, logger *zap.Logger) *ReminderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		store:     store,
		validator: validate,
		logger:    logger,
		alerted:   map[string]bool{},
	}
}

// ReminderRequest carries a reminder payload.
type ReminderRequest struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required"`
	Time  string `json:"time" validate:"required"`
}

// List returns reminders ordered by date then time.
func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].Date != reminders[j].Date {
			return reminders[i].Date < reminders[j].Date
		}
		return reminders[i].Time < reminders[j].Time
	})
	return reminders, nil
}

// Add creates a reminder.
func (s *ReminderService) Add(ctx context.Context, req ReminderRequest) (*models.Reminder, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	reminder := models.Reminder{
		ID:    uuid.NewString(),
		Title: req.Title,
		Date:  req.Date,
		Time:  req.Time,
	}
	reminders = append(reminders, reminder)
	s.save(ctx, reminders)
	return &reminder, nil
}

// Update rewrites a reminder and clears its fired marker so the new
// slot can alert again.
func (s *ReminderService) Update(ctx context.Context, id string, req ReminderRequest) (*models.Reminder, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reminders {
		if reminders[i].ID != id {
			continue
		}
		reminders[i].Title = req.Title
		reminders[i].Date = req.Date
		reminders[i].Time = req.Time
		s.save(ctx, reminders)
		s.mu.Lock()
		delete(s.alerted, id)
		s.mu.Unlock()
		return &reminders[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "reminder not found")
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	reminders, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range reminders {
		if reminders[i].ID == id {
			reminders = append(reminders[:i], reminders[i+1:]...)
			s.save(ctx, reminders)
			s.mu.Lock()
			delete(s.alerted, id)
			s.mu.Unlock()
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "reminder not found")
}

// Scan returns the reminders whose moment fell inside (now-window, now]
// and that have not fired yet, marking them fired. The poller calls
// this on every tick.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []models.Reminder
	for _, r := range reminders {
		if s.alerted[r.ID] {
			continue
		}
		at, err := reminderMoment(r)
		if err != nil {
			continue
		}
		if at.After(now) || now.Sub(at) > dueWindow {
			continue
		}
		s.alerted[r.ID] = true
		due = append(due, r)
	}
	return due, nil
}

// DueNow lists today's reminders whose time has passed, fired or not.
// The dashboard banner reads from this.
func (s *ReminderService) DueNow(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := schedule.FormatDate(now)
	var due []models.Reminder
	for _, r := range reminders {
		if r.Date != today {
			continue
		}
		at, err := reminderMoment(r)
		if err != nil {
			continue
		}
		if !at.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func reminderMoment(r models.Reminder) (time.Time, error) {
	day, err := schedule.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := schedule.ParseClock(r.Time)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

func (s *ReminderService) validate(req ReminderRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if _, err := schedule.ParseDate(req.Date); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if _, err := schedule.ParseClock(req.Time); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "time must be HH:MM")
	}
	return nil
}

func (s *ReminderService) load(ctx context.Context) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	err := s.store.Get(ctx, remindersStateKey, &reminders)
	if err != nil && err != repository.ErrKeyNotFound {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminders")
	}
	return reminders, nil
}

// save writes the list back on a best-effort basis. A failed write is
// logged and the caller still returns the in-memory result.
func (s *ReminderService) save(ctx context.Context, reminders []models.Reminder) {
	if err := s.store.Set(ctx, remindersStateKey, reminders); err != nil {
		s.logger.Sugar().Warnw("failed to persist reminders", "error", err)
	}
}
