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

type storageStub struct {
	files map[string][]byte
}

func newStorageStub() *storageStub {
	return &storageStub{files: map[string][]byte{}}
}

func (s *storageStub) Save(relPath string, content []byte) (string, error) {
	s.files[relPath] = content
	return relPath, nil
}

func (s *storageStub) Path(relPath string) (string, error) {
	return "/tmp/" + relPath, nil
}

type signerStub struct{}

func (signerStub) Generate(relPath string, now time.Time) string { return "token-" + relPath }

func (signerStub) Parse(token string, now time.Time) (string, error) {
	return token[len("token-"):], nil
}

func (signerStub) TTL() time.Duration { return 15 * time.Minute }

func newSheetServiceForTest(events []models.Event) (*SheetService, *storageStub) {
	storage := newStorageStub()
	repo := &eventRepoStub{events: events}
	return NewSheetService(storage, signerStub{}, repo, nil), storage
}

const sampleCSV = "Name,Amount,Status\nVenkat,1200,Paid\nArun,800,Pending\n"

func TestSheetImportCSV(t *testing.T) {
	svc, _ := newSheetServiceForTest(nil)

	sheet, err := svc.Import(context.Background(), "Expenses", "csv", []byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount", "Status"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Venkat", sheet.Rows[0][0])
	assert.Empty(t, sheet.Modified)
}

func TestSheetEditCellTracksModification(t *testing.T) {
	svc, _ := newSheetServiceForTest(nil)
	ctx := context.Background()

	sheet, err := svc.Import(ctx, "Expenses", "csv", []byte(sampleCSV))
	require.NoError(t, err)

	edited, err := svc.EditCell(ctx, sheet.ID, 1, 2, "Paid")
	require.NoError(t, err)
	assert.Equal(t, "Paid", edited.Rows[1][2])
	assert.True(t, edited.Modified["1:2"])
}

func TestSheetEditCellOutOfRange(t *testing.T) {
	svc, _ := newSheetServiceForTest(nil)
	ctx := context.Background()

	sheet, err := svc.Import(ctx, "Expenses", "csv", []byte(sampleCSV))
	require.NoError(t, err)

	_, err = svc.EditCell(ctx, sheet.ID, 5, 0, "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSheetAddRowMatchesHeaderWidth(t *testing.T) {
	svc, _ := newSheetServiceForTest(nil)
	ctx := context.Background()

	sheet, err := svc.Import(ctx, "Expenses", "csv", []byte(sampleCSV))
	require.NoError(t, err)

	grown, err := svc.AddRow(ctx, sheet.ID)
	require.NoError(t, err)
	require.Len(t, grown.Rows, 3)
	assert.Len(t, grown.Rows[2], 3)
}

func TestSheetExportCSVProducesSignedLink(t *testing.T) {
	svc, storage := newSheetServiceForTest(nil)
	ctx := context.Background()

	sheet, err := svc.Import(ctx, "Expenses", "csv", []byte(sampleCSV))
	require.NoError(t, err)

	result, err := svc.Export(ctx, sheet.ID, "csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", result.Format)
	assert.Contains(t, result.DownloadURL, "/api/v1/downloads/token-exports/")
	assert.NotEmpty(t, storage.files["exports/"+sheet.ID+".csv"])
}

func TestSheetPrintScheduleRendersPDF(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		{ID: "ev-1", Title: "Standup", Date: day, StartTime: "09:00", EndTime: "09:30", Status: models.EventStatusScheduled},
	}
	svc, storage := newSheetServiceForTest(events)

	result, err := svc.PrintSchedule(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "pdf", result.Format)
	content := storage.files["exports/schedule-2025-03-10.pdf"]
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestSheetImportRejectsUnknownFormat(t *testing.T) {
	svc, _ := newSheetServiceForTest(nil)

	_, err := svc.Import(context.Background(), "x", "ods", []byte("data"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
