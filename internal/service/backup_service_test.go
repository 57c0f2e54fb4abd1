package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupSnapshotCollectsAllDocuments(t *testing.T) {
	store := newStateStoreStub()
	ctx := context.Background()

	stepsSvc := NewStepsService(store, nil, nil)
	_, err := stepsSvc.Add(ctx, StepRequest{Date: "2025-03-10", Steps: 8000})
	require.NoError(t, err)

	goalSvc := NewGoalService(store, nil, nil)
	_, err = goalSvc.Add(ctx, GoalRequest{Type: "Daily", Description: "Walk", TargetDate: "2025-03-11"})
	require.NoError(t, err)

	svc := NewBackupService(store, nil)
	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Documents, 2)
	assert.Contains(t, snapshot.Documents, "steps")
	assert.Contains(t, snapshot.Documents, "goals")
	assert.JSONEq(t, `{"2025-03-10":8000}`, string(snapshot.Documents["steps"]))
	assert.False(t, snapshot.TakenAt.IsZero())
}

func TestBackupSnapshotEmptyNamespace(t *testing.T) {
	svc := NewBackupService(newStateStoreStub(), nil)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Documents)
}
