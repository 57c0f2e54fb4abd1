package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

const (
	csrStateKey = "csr"

	// csrSchemaVersion guards the stored document shape. Documents
	// written before versioning lack the field and get migrated on
	// first load.
	csrSchemaVersion = 2
)

// csrDocument is the stored registry shape.
type csrDocument struct {
	Version int               `json:"version"`
	Events  []models.CSREvent `json:"events"`
}

// CSRService manages the CSR project registry.
type CSRService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCSRService constructs the service.
func NewCSRService(store stateStore, validate *validator.Validate, logger *zap.Logger) *CSRService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSRService{store: store, validator: validate, logger: logger}
}

// CSREventRequest carries a full registry record.
type CSREventRequest struct {
	FinancialYear    string  `json:"financial_year" validate:"required"`
	NGOName          string  `json:"ngo_name" validate:"required"`
	Phase            string  `json:"phase" validate:"required"`
	Project          string  `json:"project" validate:"required"`
	Location         string  `json:"location"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	InaugurationDate string  `json:"inauguration_date"`
	Participants     int     `json:"participants" validate:"gte=0"`
	TotalCost        float64 `json:"total_cost" validate:"gte=0"`
	GoogleLocation   string  `json:"google_location"`
	Status           string  `json:"status" validate:"required"`
}

// List returns registry records matching the filter, in stored order.
func (s *CSRService) List(ctx context.Context, filter models.CSRFilter) ([]models.CSREvent, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.CSREvent, 0, len(doc.Events))
	for _, e := range doc.Events {
		if filter.FinancialYear != "" && e.FinancialYear != filter.FinancialYear {
			continue
		}
		if filter.NGOName != "" && e.NGOName != filter.NGOName {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// Add appends a record to the registry.
func (s *CSRService) Add(ctx context.Context, req CSREventRequest) (*models.CSREvent, error) {
	event, err := s.toEvent(req)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Events = append(doc.Events, *event)
	s.save(ctx, doc)
	return event, nil
}

// Update replaces the record at the given position.
func (s *CSRService) Update(ctx context.Context, index int, req CSREventRequest) (*models.CSREvent, error) {
	event, err := s.toEvent(req)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(doc.Events) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no CSR record at index")
	}
	doc.Events[index] = *event
	s.save(ctx, doc)
	return event, nil
}

// Delete removes the record at the given position.
func (s *CSRService) Delete(ctx context.Context, index int) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(doc.Events) {
		return appErrors.Clone(appErrors.ErrNotFound, "no CSR record at index")
	}
	doc.Events = append(doc.Events[:index], doc.Events[index+1:]...)
	s.save(ctx, doc)
	return nil
}

// Options exposes the fixed dropdown values of the registry form.
func (s *CSRService) Options() map[string][]string {
	return map[string][]string{
		"financial_years": models.CSRFinancialYears,
		"ngo_names":       models.CSRNGONames,
		"phases":          models.CSRPhases,
		"projects":        models.CSRProjects,
		"statuses":        models.CSRStatuses,
	}
}

func (s *CSRService) toEvent(req CSREventRequest) (*models.CSREvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !contains(models.CSRFinancialYears, req.FinancialYear) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown financial year")
	}
	if !contains(models.CSRNGONames, req.NGOName) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown NGO name")
	}
	if !contains(models.CSRPhases, req.Phase) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown phase")
	}
	if !contains(models.CSRProjects, req.Project) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown project")
	}
	if !contains(models.CSRStatuses, req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status")
	}
	return &models.CSREvent{
		FinancialYear:    req.FinancialYear,
		NGOName:          req.NGOName,
		Phase:            req.Phase,
		Project:          req.Project,
		Location:         req.Location,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		InaugurationDate: req.InaugurationDate,
		Participants:     req.Participants,
		TotalCost:        req.TotalCost,
		GoogleLocation:   req.GoogleLocation,
		Status:           req.Status,
	}, nil
}

// load reads the registry, migrating pre-versioned documents. Legacy
// records written before the status and phase fields existed get
// defaults so the rest of the code can assume a full record.
func (s *CSRService) load(ctx context.Context) (*csrDocument, error) {
	doc := &csrDocument{}
	err := s.store.Get(ctx, csrStateKey, doc)
	if err == repository.ErrKeyNotFound {
		return &csrDocument{Version: csrSchemaVersion}, nil
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load CSR registry")
	}
	if doc.Version < csrSchemaVersion {
		s.migrate(doc)
		s.save(ctx, doc)
	}
	return doc, nil
}

func (s *CSRService) migrate(doc *csrDocument) {
	for i := range doc.Events {
		if doc.Events[i].Status == "" {
			doc.Events[i].Status = models.CSRStatuses[0]
		}
		if doc.Events[i].Phase == "" {
			doc.Events[i].Phase = models.CSRPhases[0]
		}
	}
	s.logger.Sugar().Infow("migrated CSR registry", "from_version", doc.Version, "to_version", csrSchemaVersion, "records", len(doc.Events))
	doc.Version = csrSchemaVersion
}

// save writes the registry back on a best-effort basis. A failed write
// is logged and the caller still returns the in-memory result.
func (s *CSRService) save(ctx context.Context, doc *csrDocument) {
	doc.Version = csrSchemaVersion
	if err := s.store.Set(ctx, csrStateKey, doc); err != nil {
		s.logger.Sugar().Warnw("failed to persist CSR registry", "error", err)
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
