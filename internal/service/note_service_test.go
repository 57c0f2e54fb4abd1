package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/models"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

type noteRepoStub struct {
	notes   []models.MeetingNote
	byID    map[string]*models.MeetingNote
	created *models.MeetingNote
	updated *models.MeetingNote
}

func (s *noteRepoStub) List(ctx context.Context, filter models.NoteFilter) ([]models.MeetingNote, int, error) {
	return s.notes, len(s.notes), nil
}

func (s *noteRepoStub) ListByDate(ctx context.Context, date string) ([]models.MeetingNote, error) {
	var out []models.MeetingNote
	for _, n := range s.notes {
		if n.Date == date {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *noteRepoStub) GetByID(ctx context.Context, id string) (*models.MeetingNote, error) {
	if n, ok := s.byID[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *noteRepoStub) Create(ctx context.Context, note *models.MeetingNote) error {
	note.ID = "note-1"
	s.created = note
	return nil
}

func (s *noteRepoStub) Update(ctx context.Context, note *models.MeetingNote) error {
	s.updated = note
	return nil
}

func (s *noteRepoStub) Delete(ctx context.Context, id string) error { return nil }

func TestNoteCreateRejectsMarkupOnlyContent(t *testing.T) {
	svc := NewNoteService(&noteRepoStub{}, nil, nil)

	_, err := svc.Create(context.Background(), NoteRequest{
		Date:       "2025-03-10",
		Content:    "<p>   </p><br/>",
		ActionItem: "Follow up",
		Status:     "open",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNoteCreateRequiresActionItem(t *testing.T) {
	svc := NewNoteService(&noteRepoStub{}, nil, nil)

	for _, actionItem := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), NoteRequest{
			Date:       "2025-03-10",
			Content:    "<p>Reviewed budget</p>",
			ActionItem: actionItem,
			Status:     "open",
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestNoteCreateKeepsMarkup(t *testing.T) {
	repo := &noteRepoStub{}
	svc := NewNoteService(repo, nil, nil)

	note, err := svc.Create(context.Background(), NoteRequest{
		Date:       "2025-03-10",
		Content:    "<p>Reviewed <b>budget</b></p>",
		ActionItem: "Share numbers",
		Status:     "open",
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Reviewed <b>budget</b></p>", note.Content)
	assert.Equal(t, models.NoteOpen, note.Status)
}

func TestNoteCreateRejectsDuplicateContentSameDay(t *testing.T) {
	repo := &noteRepoStub{notes: []models.MeetingNote{
		{ID: "note-1", Date: "2025-03-10", Content: "<p>Reviewed budget</p>", Status: models.NoteOpen},
	}}
	svc := NewNoteService(repo, nil, nil)

	_, err := svc.Create(context.Background(), NoteRequest{
		Date:       "2025-03-10",
		Content:    "<div>Reviewed <i>budget</i></div>",
		ActionItem: "Share numbers",
		Status:     "open",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestNoteUpdateUnknownStatus(t *testing.T) {
	repo := &noteRepoStub{byID: map[string]*models.MeetingNote{
		"note-1": {ID: "note-1", Date: "2025-03-10", Content: "<p>x</p>", Status: models.NoteOpen},
	}}
	svc := NewNoteService(repo, nil, nil)

	_, err := svc.Update(context.Background(), "note-1", NoteRequest{
		Date:       "2025-03-10",
		Content:    "<p>x</p>",
		ActionItem: "Check",
		Status:     "archived",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNoteGetMissing(t *testing.T) {
	svc := NewNoteService(&noteRepoStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Reviewed budget", StripHTML("<p>Reviewed&nbsp;<b>budget</b></p>"))
	assert.Equal(t, "", StripHTML("<div><span> </span></div>"))
}
