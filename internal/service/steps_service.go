package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

const stepsStateKey = "steps"

// StepsService tracks daily step counts, one entry per calendar date.
type StepsService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStepsService constructs the service.
func NewStepsService(store stateStore, validate *validator.Validate, logger *zap.Logger) *StepsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StepsService{store: store, validator: validate, logger: logger, now: time.Now}
}

// StepRequest records a day's count.
type StepRequest struct {
	Date  string `json:"date" validate:"required"`
	Steps int    `json:"steps" validate:"gte=0"`
}

// List returns all records, newest date first.
func (s *StepsService) List(ctx context.Context) ([]models.StepRecord, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return sortedRecords(records), nil
}

// Add creates a record for a date that has none.
func (s *StepsService) Add(ctx context.Context, req StepRequest) (*models.StepRecord, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := records[req.Date]; exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "a step entry already exists for this date")
	}
	records[req.Date] = req.Steps
	s.save(ctx, records)
	return &models.StepRecord{Date: req.Date, Steps: req.Steps}, nil
}

// Update rewrites an existing record. Moving an entry onto a date that
// already has one is rejected the same way Add rejects it.
func (s *StepsService) Update(ctx context.Context, date string, req StepRequest) (*models.StepRecord, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := records[date]; !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no step entry for date")
	}
	if req.Date != date {
		if _, exists := records[req.Date]; exists {
			return nil, appErrors.Clone(appErrors.ErrDuplicate, "a step entry already exists for this date")
		}
		delete(records, date)
	}
	records[req.Date] = req.Steps
	s.save(ctx, records)
	return &models.StepRecord{Date: req.Date, Steps: req.Steps}, nil
}

// Delete removes the record for a date.
func (s *StepsService) Delete(ctx context.Context, date string) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, exists := records[date]; !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "no step entry for date")
	}
	delete(records, date)
	s.save(ctx, records)
	return nil
}

// Trend aggregates records into the requested window relative to today.
// Week buckets per day, month buckets per week of the month, year
// buckets per month. Dates without records count zero.
func (s *StepsService) Trend(ctx context.Context, period models.StepTrendPeriod) (*models.StepTrend, error) {
	if !period.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period must be week, month or year")
	}
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	trend := &models.StepTrend{Period: period}
	switch period {
	case models.StepTrendWeek:
		start := schedule.WeekStart(now)
		for _, date := range schedule.WeekDates(start) {
			steps := records[date]
			trend.Buckets = append(trend.Buckets, models.StepBucket{Label: date, Steps: steps})
			trend.Cumulative += steps
		}
	case models.StepTrendMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		weekTotals := map[int]int{}
		maxWeek := 0
		for day := monthStart; day.Month() == now.Month(); day = day.AddDate(0, 0, 1) {
			week := (day.Day()-1)/7 + 1
			if week > maxWeek {
				maxWeek = week
			}
			weekTotals[week] += records[schedule.FormatDate(day)]
		}
		for week := 1; week <= maxWeek; week++ {
			trend.Buckets = append(trend.Buckets, models.StepBucket{Label: fmt.Sprintf("Week %d", week), Steps: weekTotals[week]})
			trend.Cumulative += weekTotals[week]
		}
	case models.StepTrendYear:
		monthTotals := map[time.Month]int{}
		for date, steps := range records {
			t, err := schedule.ParseDate(date)
			if err != nil {
				continue
			}
			if t.Year() == now.Year() {
				monthTotals[t.Month()] += steps
			}
		}
		for m := time.January; m <= time.December; m++ {
			trend.Buckets = append(trend.Buckets, models.StepBucket{Label: m.String()[:3], Steps: monthTotals[m]})
			trend.Cumulative += monthTotals[m]
		}
	}
	return trend, nil
}

func (s *StepsService) validate(req StepRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	day, err := schedule.ParseDate(req.Date)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if day.After(s.now()) {
		return appErrors.Clone(appErrors.ErrValidation, "cannot record steps for a future date")
	}
	return nil
}

func (s *StepsService) load(ctx context.Context) (map[string]int, error) {
	records := map[string]int{}
	err := s.store.Get(ctx, stepsStateKey, &records)
	if err != nil && err != repository.ErrKeyNotFound {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load steps")
	}
	return records, nil
}

// save writes the document back on a best-effort basis. A failed write
// is logged and the caller still returns the in-memory result.
func (s *StepsService) save(ctx context.Context, records map[string]int) {
	if err := s.store.Set(ctx, stepsStateKey, records); err != nil {
		s.logger.Sugar().Warnw("failed to persist steps", "error", err)
	}
}

func sortedRecords(records map[string]int) []models.StepRecord {
	out := make([]models.StepRecord, 0, len(records))
	for date, steps := range records {
		out = append(out, models.StepRecord{Date: date, Steps: steps})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
