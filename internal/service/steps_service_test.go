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

func TestStepsAddRejectsDuplicateDate(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, StepRequest{Date: "2025-03-10", Steps: 8000})
	require.NoError(t, err)
	_, err = svc.Add(ctx, StepRequest{Date: "2025-03-10", Steps: 9000})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestStepsAddRejectsFutureDate(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local) }

	_, err := svc.Add(context.Background(), StepRequest{Date: "2025-03-11", Steps: 5000})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStepsUpdateRejectsMoveOntoOccupiedDate(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, StepRequest{Date: "2025-03-10", Steps: 8000})
	require.NoError(t, err)
	_, err = svc.Add(ctx, StepRequest{Date: "2025-03-11", Steps: 6000})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "2025-03-11", StepRequest{Date: "2025-03-10", Steps: 6000})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestStepsUpdateInPlace(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, StepRequest{Date: "2025-03-10", Steps: 8000})
	require.NoError(t, err)
	record, err := svc.Update(ctx, "2025-03-10", StepRequest{Date: "2025-03-10", Steps: 12000})
	require.NoError(t, err)
	assert.Equal(t, 12000, record.Steps)

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestStepsTrendWeekBucketsPerDay(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local) }
	ctx := context.Background()

	_, err := svc.Add(ctx, StepRequest{Date: "2025-03-09", Steps: 5000})
	require.NoError(t, err)
	_, err = svc.Add(ctx, StepRequest{Date: "2025-03-12", Steps: 7000})
	require.NoError(t, err)
	// Outside the current week, must not count.
	_, err = svc.Add(ctx, StepRequest{Date: "2025-03-01", Steps: 9999})
	require.NoError(t, err)

	trend, err := svc.Trend(ctx, models.StepTrendWeek)
	require.NoError(t, err)
	require.Len(t, trend.Buckets, 7)
	assert.Equal(t, "2025-03-09", trend.Buckets[0].Label)
	assert.Equal(t, 5000, trend.Buckets[0].Steps)
	assert.Equal(t, 7000, trend.Buckets[3].Steps)
	assert.Equal(t, 12000, trend.Cumulative)
}

func TestStepsTrendYearBucketsPerMonth(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local) }
	ctx := context.Background()

	_, err := svc.Add(ctx, StepRequest{Date: "2025-01-10", Steps: 3000})
	require.NoError(t, err)
	_, err = svc.Add(ctx, StepRequest{Date: "2025-01-20", Steps: 2000})
	require.NoError(t, err)
	_, err = svc.Add(ctx, StepRequest{Date: "2024-01-10", Steps: 8888})
	require.NoError(t, err)

	trend, err := svc.Trend(ctx, models.StepTrendYear)
	require.NoError(t, err)
	require.Len(t, trend.Buckets, 12)
	assert.Equal(t, "Jan", trend.Buckets[0].Label)
	assert.Equal(t, 5000, trend.Buckets[0].Steps)
	assert.Equal(t, 5000, trend.Cumulative)
}

func TestStepsTrendRejectsUnknownPeriod(t *testing.T) {
	svc := NewStepsService(newStateStoreStub(), nil, nil)

	_, err := svc.Trend(context.Background(), models.StepTrendPeriod("decade"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
