package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "person", "location", "notes",
		"date", "start_time", "end_time", "status", "original_event_id",
		"created_at", "updated_at",
	})
}

func TestEventRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := eventRows().
		AddRow("ev-1", "Standup", "", "Team", "Room 2", "", day, "09:00", "09:30", "scheduled", nil, time.Now(), time.Now()).
		AddRow("ev-2", "Review", "", "Anil", "Room 1", "", day, "10:00", "11:00", "scheduled", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, title").
		WithArgs(day).
		WillReturnRows(rows)

	events, err := repo.ListByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Equal(t, "ev-2", events[1].ID)
}

func TestEventRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	status := models.EventStatusCompleted
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := eventRows().
		AddRow("ev-3", "Retro", "", "Team", "", "", day, "16:00", "17:00", "completed", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, title").
		WithArgs("completed").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	events, total, err := repo.List(context.Background(), models.EventFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventStatusCompleted, events[0].Status)
}

func TestEventRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.Event{
		Title:     "Planning",
		Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    models.EventStatusScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestEventRepositoryStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT").
		WithArgs(today, weekStart, weekEnd).
		WillReturnRows(sqlmock.NewRows([]string{"today", "this_week", "scheduled", "completed"}).
			AddRow(3, 12, 8, 4))

	stats, err := repo.Stats(context.Background(), today, weekStart, weekEnd)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Today)
	assert.Equal(t, 12, stats.ThisWeek)
	assert.Equal(t, 8, stats.Scheduled)
	assert.Equal(t, 4, stats.Completed)
}
