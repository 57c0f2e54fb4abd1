package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
)

type stateInventory interface {
	Get(ctx context.Context, name string, dest interface{}) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// BackupService snapshots every state document so the dashboard's
// Redis-backed data can be pulled off the box in one request.
type BackupService struct {
	store  stateInventory
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService constructs the service.
func NewBackupService(store stateInventory, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{store: store, logger: logger, now: time.Now}
}

// Snapshot collects all documents in the namespace, raw. A document
// deleted between listing and reading is skipped.
func (s *BackupService) Snapshot(ctx context.Context) (*models.StateSnapshot, error) {
	names, err := s.store.Keys(ctx, "*")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list state documents")
	}
	snapshot := &models.StateSnapshot{
		TakenAt:   s.now().UTC(),
		Documents: map[string]json.RawMessage{},
	}
	for _, name := range names {
		var doc json.RawMessage
		if err := s.store.Get(ctx, name, &doc); err != nil {
			if err == repository.ErrKeyNotFound {
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read state document")
		}
		snapshot.Documents[name] = doc
	}
	s.logger.Sugar().Infow("state snapshot taken", "documents", len(snapshot.Documents))
	return snapshot, nil
}
