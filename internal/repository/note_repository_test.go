package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/models"
)

func noteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "date", "content", "action_item", "status", "created_at", "updated_at",
	})
}

func TestNoteRepositoryListDefaultsPageSize(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	rows := noteRows().
		AddRow("note-1", "2025-03-10", "<p>Budget review</p>", "Send minutes", "open", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, date").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	notes, total, err := repo.List(context.Background(), models.NoteFilter{})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NoteOpen, notes[0].Status)
}

func TestNoteRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	rows := noteRows().
		AddRow("note-1", "2025-03-10", "<p>Standup</p>", "", "open", time.Now(), time.Now()).
		AddRow("note-2", "2025-03-10", "<p>Budget review</p>", "Send minutes", "open", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, date").
		WithArgs("2025-03-10").
		WillReturnRows(rows)

	notes, err := repo.ListByDate(context.Background(), "2025-03-10")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "note-1", notes[0].ID)
}

func TestNoteRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	mock.ExpectExec("INSERT INTO meeting_notes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	note := &models.MeetingNote{
		Date:    "2025-03-10",
		Content: "<p>Discussed vendor onboarding</p>",
		Status:  models.NoteOpen,
	}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.NotEmpty(t, note.ID)
}

func TestNoteRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	mock.ExpectExec("UPDATE meeting_notes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	note := &models.MeetingNote{
		ID:      "note-1",
		Date:    "2025-03-10",
		Content: "<p>Updated</p>",
		Status:  models.NoteCompleted,
	}
	require.NoError(t, repo.Update(context.Background(), note))
	assert.False(t, note.UpdatedAt.IsZero())
}
