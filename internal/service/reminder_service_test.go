package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

func TestReminderScanFiresOnce(t *testing.T) {
	svc := NewReminderService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	day, err := schedule.ParseDate("2025-03-10")
	require.NoError(t, err)
	now := day.Add(9*time.Hour + 30*time.Second)

	_, err = svc.Add(ctx, ReminderRequest{Title: "Call vendor", Date: "2025-03-10", Time: "09:00"})
	require.NoError(t, err)

	due, err := svc.Scan(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Call vendor", due[0].Title)

	// Same tick window, already fired.
	due, err = svc.Scan(ctx, now.Add(10*time.Second))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReminderScanSkipsOutsideWindow(t *testing.T) {
	svc := NewReminderService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	day, err := schedule.ParseDate("2025-03-10")
	require.NoError(t, err)

	_, err = svc.Add(ctx, ReminderRequest{Title: "Old reminder", Date: "2025-03-10", Time: "09:00"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, ReminderRequest{Title: "Future reminder", Date: "2025-03-10", Time: "15:00"})
	require.NoError(t, err)

	// Ten o'clock: the nine o'clock slot fell out of the window and
	// three o'clock has not arrived.
	due, err := svc.Scan(ctx, day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReminderUpdateRearms(t *testing.T) {
	svc := NewReminderService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	day, err := schedule.ParseDate("2025-03-10")
	require.NoError(t, err)

	reminder, err := svc.Add(ctx, ReminderRequest{Title: "Standup", Date: "2025-03-10", Time: "09:00"})
	require.NoError(t, err)

	due, err := svc.Scan(ctx, day.Add(9*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)

	_, err = svc.Update(ctx, reminder.ID, ReminderRequest{Title: "Standup", Date: "2025-03-10", Time: "11:00"})
	require.NoError(t, err)

	due, err = svc.Scan(ctx, day.Add(11*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "11:00", due[0].Time)
}

func TestReminderDueNowListsPastTodayOnly(t *testing.T) {
	svc := NewReminderService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	day, err := schedule.ParseDate("2025-03-10")
	require.NoError(t, err)
	now := day.Add(12 * time.Hour)

	_, err = svc.Add(ctx, ReminderRequest{Title: "Morning", Date: "2025-03-10", Time: "09:00"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, ReminderRequest{Title: "Evening", Date: "2025-03-10", Time: "18:00"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, ReminderRequest{Title: "Tomorrow", Date: "2025-03-11", Time: "09:00"})
	require.NoError(t, err)

	due, err := svc.DueNow(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Morning", due[0].Title)
}

func TestReminderAddRejectsBadTime(t *testing.T) {
	svc := NewReminderService(newStateStoreStub(), nil, nil)

	_, err := svc.Add(context.Background(), ReminderRequest{Title: "Bad", Date: "2025-03-10", Time: "25:99"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
