package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/export"
)

type exportStorage interface {
	Save(relPath string, content []byte) (string, error)
	Path(relPath string) (string, error)
}

type urlSigner interface {
	Generate(relPath string, now time.Time) string
	Parse(token string, now time.Time) (string, error)
	TTL() time.Duration
}

type dayEventLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.Event, error)
}

// SheetService holds imported spreadsheets in memory for editing and
// renders downloads through the export storage. Sheets do not survive
// a restart; exports on disk do.
type SheetService struct {
	storage exportStorage
	signer  urlSigner
	events  dayEventLister
	csv     *export.CSVExporter
	xlsx    *export.XLSXExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger

	mu     sync.RWMutex
	sheets map[string]*models.Sheet
}

// NewSheetService constructs the service.
func NewSheetService(storage exportStorage, signer urlSigner, events dayEventLister, logger *zap.Logger) *SheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetService{
		storage: storage,
		signer:  signer,
		events:  events,
		csv:     export.NewCSVExporter(),
		xlsx:    export.NewXLSXExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		sheets:  map[string]*models.Sheet{},
	}
}

// Import parses an uploaded csv or xlsx file into an editable sheet.
func (s *SheetService) Import(ctx context.Context, name, format string, data []byte) (*models.Sheet, error) {
	var grid export.Grid
	var err error
	switch strings.ToLower(format) {
	case "csv":
		grid, err = export.ParseCSV(data)
	case "xlsx":
		grid, err = export.ParseXLSX(data)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or xlsx")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not parse uploaded file")
	}
	sheet := &models.Sheet{
		ID:         uuid.NewString(),
		Name:       name,
		Headers:    grid.Headers,
		Rows:       grid.Rows,
		Modified:   map[string]bool{},
		ImportedAt: time.Now().UTC(),
	}
	if sheet.Name == "" {
		sheet.Name = "Imported " + sheet.ImportedAt.Format("2006-01-02 15:04")
	}
	s.mu.Lock()
	s.sheets[sheet.ID] = sheet
	s.mu.Unlock()
	s.logger.Sugar().Infow("imported sheet", "sheet_id", sheet.ID, "rows", len(sheet.Rows))
	return sheet, nil
}

// List returns imported sheets, newest import first.
func (s *SheetService) List(ctx context.Context) []models.Sheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sheet, 0, len(s.sheets))
	for _, sheet := range s.sheets {
		out = append(out, *sheet)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ImportedAt.After(out[j].ImportedAt) })
	return out
}

// Get returns a sheet by id.
func (s *SheetService) Get(ctx context.Context, id string) (*models.Sheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "sheet not found")
	}
	copied := *sheet
	return &copied, nil
}

// EditCell sets one cell and marks it modified.
func (s *SheetService) EditCell(ctx context.Context, id string, row, col int, value string) (*models.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "sheet not found")
	}
	if row < 0 || row >= len(sheet.Rows) || col < 0 || col >= len(sheet.Headers) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cell out of range")
	}
	sheet.Rows[row][col] = value
	sheet.Modified[fmt.Sprintf("%d:%d", row, col)] = true
	copied := *sheet
	return &copied, nil
}

// AddRow appends an empty row.
func (s *SheetService) AddRow(ctx context.Context, id string) (*models.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "sheet not found")
	}
	sheet.Rows = append(sheet.Rows, make([]string, len(sheet.Headers)))
	copied := *sheet
	return &copied, nil
}

// Delete discards a sheet.
func (s *SheetService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "sheet not found")
	}
	delete(s.sheets, id)
	return nil
}

// Export renders a sheet to csv or xlsx, saves the file and returns a
// signed download link.
func (s *SheetService) Export(ctx context.Context, id, format string) (*models.SheetExport, error) {
	sheet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	grid := export.Grid{Headers: sheet.Headers, Rows: sheet.Rows}

	var content []byte
	switch strings.ToLower(format) {
	case "csv":
		content, err = s.csv.Render(grid)
	case "xlsx":
		content, err = s.xlsx.Render(grid)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or xlsx")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	fileName := fmt.Sprintf("%s.%s", sheet.ID, strings.ToLower(format))
	return s.publish(ctx, fileName, strings.ToLower(format), content)
}

// PrintSchedule renders the events of one day as a PDF download.
func (s *SheetService) PrintSchedule(ctx context.Context, date time.Time) (*models.SheetExport, error) {
	events, err := s.events.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events for print")
	}
	schedule.SortByStart(events)
	grid := export.Grid{Headers: []string{"Time", "Title", "Person", "Location", "Status"}}
	for _, e := range events {
		grid.Rows = append(grid.Rows, []string{
			e.StartTime + " - " + e.EndTime,
			e.Title,
			e.Person,
			e.Location,
			string(e.Status),
		})
	}
	title := "Schedule for " + schedule.FormatDate(date)
	content, err := s.pdf.Render(grid, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule pdf")
	}
	fileName := fmt.Sprintf("schedule-%s.pdf", schedule.FormatDate(date))
	return s.publish(ctx, fileName, "pdf", content)
}

// ResolveDownload validates a signed token and returns the on-disk path.
func (s *SheetService) ResolveDownload(token string) (string, error) {
	relPath, err := s.signer.Parse(token, time.Now())
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "download link is invalid or expired")
	}
	path, err := s.storage.Path(relPath)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	return path, nil
}

func (s *SheetService) publish(ctx context.Context, fileName, format string, content []byte) (*models.SheetExport, error) {
	relPath := "exports/" + fileName
	if _, err := s.storage.Save(relPath, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	now := time.Now()
	token := s.signer.Generate(relPath, now)
	return &models.SheetExport{
		FileName:    fileName,
		Format:      format,
		DownloadURL: "/api/v1/downloads/" + token,
		ExpiresAt:   now.Add(s.signer.TTL()),
	}, nil
}
