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

const eventColumns = "id, title, description, person, location, notes, date, start_time, end_time, status, original_event_id, created_at, updated_at"

// EventRepository persists calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching the filter, newest date first.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	base := "FROM events"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Date != nil {
		where = append(where, fmt.Sprintf("date = $%d", len(args)+1))
		args = append(args, *filter.Date)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
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
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
%s WHERE %s ORDER BY date DESC, start_time ASC, created_at ASC LIMIT %d OFFSET %d`, eventColumns, base, whereClause, size, offset)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// ListByDate returns every event on a calendar day in insertion order.
// Conflict checks run over this slice.
func (r *EventRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE date = $1 ORDER BY created_at ASC", eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, date); err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	return events, nil
}

// GetByID fetches a single event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	query := `INSERT INTO events (id, title, description, person, location, notes, date, start_time, end_time, status, original_event_id, created_at, updated_at)
VALUES (:id, :title, :description, :person, :location, :notes, :date, :start_time, :end_time, :status, :original_event_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	query := `UPDATE events SET title = :title, description = :description, person = :person, location = :location, notes = :notes,
date = :date, start_time = :start_time, end_time = :end_time, status = :status, original_event_id = :original_event_id, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Stats aggregates dashboard counters for the given day and week window.
func (r *EventRepository) Stats(ctx context.Context, today, weekStart, weekEnd time.Time) (*models.EventStats, error) {
	const query = `SELECT
COUNT(*) FILTER (WHERE date = $1) AS today,
COUNT(*) FILTER (WHERE date >= $2 AND date <= $3) AS this_week,
COUNT(*) FILTER (WHERE status = 'scheduled') AS scheduled,
COUNT(*) FILTER (WHERE status = 'completed') AS completed
FROM events`
	var stats models.EventStats
	row := r.db.QueryRowxContext(ctx, query, today, weekStart, weekEnd)
	if err := row.Scan(&stats.Today, &stats.ThisWeek, &stats.Scheduled, &stats.Completed); err != nil {
		return nil, fmt.Errorf("event stats: %w", err)
	}
	return &stats, nil
}
