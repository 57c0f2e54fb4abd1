package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/models"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

func TestAttendanceMarkDerivesTotalTime(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		Date:     "2025-03-10",
		CheckIn:  "09:15",
		CheckOut: "17:45",
		Status:   "Present",
	})
	require.NoError(t, err)
	assert.Equal(t, "8h 30m", record.TotalTime)
}

func TestAttendanceMarkNightShiftWrapsMidnight(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		Date:     "2025-03-10",
		CheckIn:  "22:00",
		CheckOut: "06:00",
		Status:   "Present",
	})
	require.NoError(t, err)
	assert.Equal(t, "8h 0m", record.TotalTime)
}

func TestAttendanceMarkWithoutCheckOut(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		Date:    "2025-03-10",
		CheckIn: "09:00",
		Status:  "WFH",
	})
	require.NoError(t, err)
	assert.Equal(t, "", record.TotalTime)
}

func TestAttendanceMarkRejectsSecondRecordForDate(t *testing.T) {
	store := newStateStoreStub()
	svc := NewAttendanceService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.Mark(ctx, MarkAttendanceRequest{Date: "2025-03-10", CheckIn: "09:00", CheckOut: "17:00", Status: "Present"})
	require.NoError(t, err)
	_, err = svc.Mark(ctx, MarkAttendanceRequest{Date: "2025-03-10", CheckIn: "10:00", CheckOut: "18:00", Status: "WFH"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)

	records, summary, err := svc.List(ctx, models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendancePresent, records[0].Status)
	assert.Equal(t, "8h 0m", summary.TotalTime)
}

func TestAttendanceMarkAbsentClearsCheckTimes(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		Date:     "2025-03-10",
		CheckIn:  "09:00",
		CheckOut: "17:00",
		Status:   "Absent",
	})
	require.NoError(t, err)
	assert.Equal(t, "", record.CheckIn)
	assert.Equal(t, "", record.CheckOut)
	assert.Equal(t, "", record.TotalTime)
}

func TestAttendanceMarkSucceedsWhenStoreWriteFails(t *testing.T) {
	store := &readOnlyStateStore{stateStoreStub: newStateStoreStub()}
	svc := NewAttendanceService(store, nil, nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		Date:     "2025-03-10",
		CheckIn:  "09:00",
		CheckOut: "17:00",
		Status:   "Present",
	})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "8h 0m", record.TotalTime)
}

func TestAttendanceMarkRejectsFutureDate(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local) }

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{Date: "2025-03-11", Status: "Present"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceListSumsFilteredDurations(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	_, err := svc.Mark(ctx, MarkAttendanceRequest{Date: "2025-03-10", CheckIn: "09:00", CheckOut: "17:30", Status: "Present"})
	require.NoError(t, err)
	_, err = svc.Mark(ctx, MarkAttendanceRequest{Date: "2025-03-11", CheckIn: "09:00", CheckOut: "11:00", Status: "Present"})
	require.NoError(t, err)
	_, err = svc.Mark(ctx, MarkAttendanceRequest{Date: "2025-04-01", CheckIn: "09:00", CheckOut: "10:00", Status: "Present"})
	require.NoError(t, err)

	records, summary, err := svc.List(ctx, models.AttendanceFilter{Month: "2025-03"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "10h 30m", summary.TotalTime)
	assert.Equal(t, "2025-03-11", records[0].Date)
}

func TestAttendanceWeekPageIsAlwaysSevenDays(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	// Wednesday of the week starting Sunday 2025-03-09.
	_, err := svc.Mark(ctx, MarkAttendanceRequest{Date: "2025-03-12", CheckIn: "09:00", CheckOut: "17:00", Status: "Present"})
	require.NoError(t, err)

	page, err := svc.WeekPage(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", page.WeekStart)
	require.Len(t, page.Days, 7)
	assert.Nil(t, page.Days[0].Record)
	require.NotNil(t, page.Days[3].Record)
	assert.Equal(t, "2025-03-12", page.Days[3].Record.Date)
	assert.Equal(t, 1, page.TotalWeeks)
}

func TestAttendanceDeleteMissingDate(t *testing.T) {
	svc := NewAttendanceService(newStateStoreStub(), nil, nil)

	err := svc.Delete(context.Background(), "2025-03-10")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
