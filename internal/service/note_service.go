package service

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

type noteRepository interface {
	List(ctx context.Context, filter models.NoteFilter) ([]models.MeetingNote, int, error)
	ListByDate(ctx context.Context, date string) ([]models.MeetingNote, error)
	GetByID(ctx context.Context, id string) (*models.MeetingNote, error)
	Create(ctx context.Context, note *models.MeetingNote) error
	Update(ctx context.Context, note *models.MeetingNote) error
	Delete(ctx context.Context, id string) error
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// NoteService manages minutes-of-meeting notes. Content is rich text;
// emptiness is judged on the tag-stripped plain text so "<p></p>" does
// not count as content.
type NoteService struct {
	repo      noteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs the service.
func NewNoteService(repo noteRepository, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, validator: validate, logger: logger}
}

// NoteRequest carries a note payload.
type NoteRequest struct {
	Date       string `json:"date" validate:"required"`
	Content    string `json:"content" validate:"required"`
	ActionItem string `json:"action_item" validate:"required"`
	Status     string `json:"status" validate:"required"`
}

// NoteListRequest scopes listing.
type NoteListRequest struct {
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// List returns notes newest first, five per page by default.
func (s *NoteService) List(ctx context.Context, req NoteListRequest) ([]models.MeetingNote, *models.Pagination, error) {
	filter := models.NoteFilter{Page: req.Page, PageSize: req.PageSize}
	if req.Status != "" {
		status := models.NoteStatus(req.Status)
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown note status")
		}
		filter.Status = &status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 5
	}
	notes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return notes, pagination, nil
}

// Get returns a note by id.
func (s *NoteService) Get(ctx context.Context, id string) (*models.MeetingNote, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get note")
	}
	return note, nil
}

// Create stores a new note.
func (s *NoteService) Create(ctx context.Context, req NoteRequest) (*models.MeetingNote, error) {
	status, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, req, ""); err != nil {
		return nil, err
	}
	note := &models.MeetingNote{
		Date:       req.Date,
		Content:    req.Content,
		ActionItem: req.ActionItem,
		Status:     status,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note")
	}
	return note, nil
}

// Update rewrites a note.
func (s *NoteService) Update(ctx context.Context, id string, req NoteRequest) (*models.MeetingNote, error) {
	status, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, req, id); err != nil {
		return nil, err
	}
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Date = req.Date
	note.Content = req.Content
	note.ActionItem = req.ActionItem
	note.Status = status
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update note")
	}
	return note, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note")
	}
	return nil
}

// checkDuplicate rejects a note whose plain text matches another note
// on the same day. excludeID skips the note being edited.
func (s *NoteService) checkDuplicate(ctx context.Context, req NoteRequest, excludeID string) error {
	sameDay, err := s.repo.ListByDate(ctx, req.Date)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check notes for date")
	}
	plain := StripHTML(req.Content)
	for _, existing := range sameDay {
		if existing.ID == excludeID {
			continue
		}
		if StripHTML(existing.Content) == plain {
			return appErrors.Clone(appErrors.ErrDuplicate, "an identical note already exists for this date")
		}
	}
	return nil
}

func (s *NoteService) validate(req NoteRequest) (models.NoteStatus, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if _, err := schedule.ParseDate(req.Date); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if StripHTML(req.Content) == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "content must not be empty")
	}
	if strings.TrimSpace(req.ActionItem) == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "action_item must not be empty")
	}
	status := models.NoteStatus(req.Status)
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown note status")
	}
	return status, nil
}

// StripHTML removes markup tags and collapses whitespace, leaving the
// plain text of a rich-text fragment.
func StripHTML(content string) string {
	text := htmlTagPattern.ReplaceAllString(content, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
