package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/models"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

func TestGoalAddAndToggleStatus(t *testing.T) {
	svc := NewGoalService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	goal, err := svc.Add(ctx, GoalRequest{Type: "Weekly", Description: "Read two chapters", TargetDate: "2025-03-15"})
	require.NoError(t, err)
	assert.Equal(t, models.GoalPending, goal.Status)

	updated, err := svc.SetStatus(ctx, goal.ID, models.GoalCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, updated.Status)
}

func TestGoalListPendingFirst(t *testing.T) {
	svc := NewGoalService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	done, err := svc.Add(ctx, GoalRequest{Type: "Daily", Description: "Walk", TargetDate: "2025-03-10"})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, done.ID, models.GoalCompleted)
	require.NoError(t, err)
	_, err = svc.Add(ctx, GoalRequest{Type: "Daily", Description: "Stretch", TargetDate: "2025-03-11"})
	require.NoError(t, err)

	goals, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Stretch", goals[0].Description)
	assert.Equal(t, models.GoalCompleted, goals[1].Status)
}

func TestGoalListFiltersByType(t *testing.T) {
	svc := NewGoalService(newStateStoreStub(), nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, GoalRequest{Type: "Daily", Description: "Walk", TargetDate: "2025-03-10"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, GoalRequest{Type: "Monthly", Description: "Budget review", TargetDate: "2025-03-31"})
	require.NoError(t, err)

	goals, err := svc.List(ctx, "Monthly")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Budget review", goals[0].Description)
}

func TestGoalAddRejectsUnknownType(t *testing.T) {
	svc := NewGoalService(newStateStoreStub(), nil, nil)

	_, err := svc.Add(context.Background(), GoalRequest{Type: "Yearly", Description: "X", TargetDate: "2025-03-10"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGoalDeleteMissing(t *testing.T) {
	svc := NewGoalService(newStateStoreStub(), nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
