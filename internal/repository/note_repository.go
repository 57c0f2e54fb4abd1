package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prakasam-dev/daybook-api/internal/models"
)

const noteColumns = "id, date, content, action_item, status, created_at, updated_at"

// NoteRepository persists minutes-of-meeting notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs a note repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// List returns notes newest first with paging metadata.
func (r *NoteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.MeetingNote, int, error) {
	base := "FROM meeting_notes"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 5
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
%s WHERE %s ORDER BY date DESC, created_at DESC LIMIT %d OFFSET %d`, noteColumns, base, whereClause, size, offset)
	var notes []models.MeetingNote
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}
	return notes, total, nil
}

// ListByDate returns every note recorded for one calendar day.
func (r *NoteRepository) ListByDate(ctx context.Context, date string) ([]models.MeetingNote, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_notes WHERE date = $1 ORDER BY created_at ASC", noteColumns)
	var notes []models.MeetingNote
	if err := r.db.SelectContext(ctx, &notes, query, date); err != nil {
		return nil, fmt.Errorf("list notes by date: %w", err)
	}
	return notes, nil
}

// GetByID fetches a single note.
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*models.MeetingNote, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_notes WHERE id = $1", noteColumns)
	var note models.MeetingNote
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create inserts a note.
func (r *NoteRepository) Create(ctx context.Context, note *models.MeetingNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now
	query := `INSERT INTO meeting_notes (id, date, content, action_item, status, created_at, updated_at)
VALUES (:id, :date, :content, :action_item, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Update modifies a note.
func (r *NoteRepository) Update(ctx context.Context, note *models.MeetingNote) error {
	note.UpdatedAt = time.Now().UTC()
	query := `UPDATE meeting_notes SET date = :date, content = :content, action_item = :action_item, status = :status, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

// Delete removes a note.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM meeting_notes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
