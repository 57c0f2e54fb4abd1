package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

const attendanceStateKey = "attendance"

type stateStore interface {
	Get(ctx context.Context, name string, dest interface{}) error
	Set(ctx context.Context, name string, value interface{}) error
	Remove(ctx context.Context, name string) error
}

// AttendanceService tracks daily check-in/out records. Records live in
// a single document keyed by date; each write replaces the document.
type AttendanceService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(store stateStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, validator: validate, logger: logger, now: time.Now}
}

// MarkAttendanceRequest records one day's entry.
type MarkAttendanceRequest struct {
	Date     string `json:"date" validate:"required"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Status   string `json:"status" validate:"required"`
}

// Mark records a day. One record per date; total time is always derived
// from the check times, never taken from the caller. Absent days carry
// no check times.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	day, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if day.After(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot mark attendance for a future date")
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	if status == models.AttendanceAbsent {
		req.CheckIn = ""
		req.CheckOut = ""
	}
	if req.CheckIn != "" {
		if _, err := schedule.ParseClock(req.CheckIn); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "check_in must be HH:MM")
		}
	}
	if req.CheckOut != "" {
		if _, err := schedule.ParseClock(req.CheckOut); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "check_out must be HH:MM")
		}
	}

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := records[req.Date]; exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "attendance already marked for this date")
	}
	record := models.AttendanceRecord{
		Date:      req.Date,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		TotalTime: schedule.Elapsed(req.CheckIn, req.CheckOut),
		Status:    status,
	}
	records[req.Date] = record
	s.save(ctx, records)
	return &record, nil
}

// List returns records matching the filter, newest date first, plus the
// rollup of the filtered set.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, *models.AttendanceSummary, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	filtered := make([]models.AttendanceRecord, 0, len(records))
	durations := make([]string, 0, len(records))
	for _, record := range records {
		if filter.Month != "" && !strings.HasPrefix(record.Date, filter.Month) {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		filtered = append(filtered, record)
		durations = append(durations, record.TotalTime)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date > filtered[j].Date })
	summary := &models.AttendanceSummary{
		Records:   len(filtered),
		TotalTime: schedule.SumDurations(durations),
	}
	return filtered, summary, nil
}

// WeekPage returns the fixed seven-day grid for one week of history.
// Weeks run Sunday through Saturday; index 0 is the most recent week
// containing a record.
func (s *AttendanceService) WeekPage(ctx context.Context, weekIndex int) (*models.AttendanceWeekPage, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	weekStarts := weekStartsOf(records)
	if len(weekStarts) == 0 {
		today := schedule.WeekStart(time.Now())
		return &models.AttendanceWeekPage{
			WeekStart:  schedule.FormatDate(today),
			Days:       emptyWeek(today),
			TotalWeeks: 0,
			WeekIndex:  0,
		}, nil
	}
	if weekIndex < 0 || weekIndex >= len(weekStarts) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week index out of range")
	}
	start := weekStarts[weekIndex]
	days := make([]models.AttendanceDay, 0, 7)
	for _, date := range schedule.WeekDates(start) {
		day := models.AttendanceDay{Date: date}
		if record, ok := records[date]; ok {
			r := record
			day.Record = &r
		}
		days = append(days, day)
	}
	return &models.AttendanceWeekPage{
		WeekStart:  schedule.FormatDate(start),
		Days:       days,
		TotalWeeks: len(weekStarts),
		WeekIndex:  weekIndex,
	}, nil
}

// Delete removes the record for a date.
func (s *AttendanceService) Delete(ctx context.Context, date string) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := records[date]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "no attendance record for date")
	}
	delete(records, date)
	s.save(ctx, records)
	return nil
}

func (s *AttendanceService) load(ctx context.Context) (map[string]models.AttendanceRecord, error) {
	records := map[string]models.AttendanceRecord{}
	err := s.store.Get(ctx, attendanceStateKey, &records)
	if err != nil && err != repository.ErrKeyNotFound {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	return records, nil
}

// save writes the document back on a best-effort basis. A failed write
// is logged and the caller still returns the in-memory result.
func (s *AttendanceService) save(ctx context.Context, records map[string]models.AttendanceRecord) {
	if err := s.store.Set(ctx, attendanceStateKey, records); err != nil {
		s.logger.Sugar().Warnw("failed to persist attendance", "error", err)
	}
}

// weekStartsOf lists the distinct Sunday week starts covering the
// recorded dates, most recent first.
func weekStartsOf(records map[string]models.AttendanceRecord) []time.Time {
	seen := map[string]time.Time{}
	for date := range records {
		t, err := schedule.ParseDate(date)
		if err != nil {
			continue
		}
		start := schedule.WeekStart(t)
		seen[schedule.FormatDate(start)] = start
	}
	starts := make([]time.Time, 0, len(seen))
	for _, t := range seen {
		starts = append(starts, t)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].After(starts[j]) })
	return starts
}

func emptyWeek(start time.Time) []models.AttendanceDay {
	days := make([]models.AttendanceDay, 0, 7)
	for _, date := range schedule.WeekDates(start) {
		days = append(days, models.AttendanceDay{Date: date})
	}
	return days
}
