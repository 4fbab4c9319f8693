package importapp

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/erp/bulkimport/internal/domain/shared"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 20

// ImportHistoryService exposes committed import records
type ImportHistoryService struct {
	historyRepo bulk.ImportHistoryRepository
}

// NewImportHistoryService creates a new ImportHistoryService
func NewImportHistoryService(historyRepo bulk.ImportHistoryRepository) *ImportHistoryService {
	return &ImportHistoryService{
		historyRepo: historyRepo,
	}
}

// GetHistory retrieves a specific import history by ID
func (s *ImportHistoryService) GetHistory(ctx context.Context, historyID uuid.UUID) (*bulk.ImportHistory, error) {
	return s.historyRepo.FindByID(ctx, historyID)
}

// ListRecent returns the latest imports of an entity type, newest first.
// An empty entity type lists every type.
func (s *ImportHistoryService) ListRecent(ctx context.Context, entityType bulk.EntityType, limit int) ([]*bulk.ImportHistory, error) {
	if entityType != "" && !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", fmt.Sprintf("Invalid entity type: %s", entityType))
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.historyRepo.FindRecent(ctx, entityType, limit)
}

// GetErrorsCSV renders the failed keys of an import as CSV for download.
// It returns the content and a suggested file name.
func (s *ImportHistoryService) GetErrorsCSV(ctx context.Context, historyID uuid.UUID) (string, string, error) {
	history, err := s.historyRepo.FindByID(ctx, historyID)
	if err != nil {
		return "", "", err
	}

	if len(history.ErrorDetails) == 0 {
		return "", "", shared.NewDomainError("NO_ERRORS", "No errors to export")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Key", "Error"})
	for _, e := range history.ErrorDetails {
		_ = w.Write([]string{e.Key, e.Error})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", fmt.Errorf("failed to render errors: %w", err)
	}

	fileName := fmt.Sprintf("import_errors_%s_%s.csv",
		history.EntityType,
		history.ID.String()[:8],
	)

	return buf.String(), fileName, nil
}
