package bulk

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/erp/bulkimport/internal/domain/shared"
)

// ImportStatus represents the status of an import operation
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// IsTerminal returns true if this is a terminal state
func (s ImportStatus) IsTerminal() bool {
	return s == ImportStatusCompleted || s == ImportStatusFailed
}

// ImportHistory records what a commit did: how many parents were written,
// how many failed and why.
type ImportHistory struct {
	shared.BaseEntity
	EntityType       EntityType    `json:"entity_type"`
	FileName         string        `json:"file_name"`
	TotalRows        int           `json:"total_rows"`
	TotalEntities    int           `json:"total_entities"`
	ImportedCount    int           `json:"imported_count"`
	ErrorCount       int           `json:"error_count"`
	DiagnosticsCount int           `json:"diagnostics_count"`
	Status           ImportStatus  `json:"status"`
	ErrorDetails     []ErrorDetail `json:"error_details,omitempty"`
	StartedAt        *time.Time    `json:"started_at,omitempty"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
}

// NewImportHistory creates a pending import history record
func NewImportHistory(entityType EntityType, fileName string) (*ImportHistory, error) {
	if !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", fmt.Sprintf("Invalid entity type: %s", entityType))
	}
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	return &ImportHistory{
		BaseEntity:   shared.NewBaseEntity(),
		EntityType:   entityType,
		FileName:     fileName,
		Status:       ImportStatusPending,
		ErrorDetails: make([]ErrorDetail, 0),
	}, nil
}

// StartProcessing marks the import as started
func (h *ImportHistory) StartProcessing(summary Summary, diagnostics int) error {
	if h.Status != ImportStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start processing from state: %s", h.Status))
	}
	now := time.Now()
	h.Status = ImportStatusProcessing
	h.TotalRows = summary.TotalRows
	h.TotalEntities = summary.ParentsFound
	h.DiagnosticsCount = diagnostics
	h.StartedAt = &now
	h.UpdatedAt = now
	return nil
}

// Complete stores the commit result. An import where nothing was written
// but something failed is marked failed; partial success is completed.
func (h *ImportHistory) Complete(result *CommitResult) error {
	if h.Status != ImportStatusProcessing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete from state: %s", h.Status))
	}
	status := ImportStatusCompleted
	if result.ErrorCount > 0 && result.ImportedCount == 0 {
		status = ImportStatusFailed
	}
	now := time.Now()
	h.Status = status
	h.ImportedCount = result.ImportedCount
	h.ErrorCount = result.ErrorCount
	h.ErrorDetails = result.ErrorDetails
	h.CompletedAt = &now
	h.UpdatedAt = now
	return nil
}

// ErrorDetailsJSON returns the error details as a JSON string
func (h *ImportHistory) ErrorDetailsJSON() (string, error) {
	if len(h.ErrorDetails) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(h.ErrorDetails)
	if err != nil {
		return "", fmt.Errorf("failed to marshal error details: %w", err)
	}
	return string(data), nil
}

// SetErrorDetailsFromJSON parses error details from a JSON string
func (h *ImportHistory) SetErrorDetailsFromJSON(jsonStr string) error {
	if jsonStr == "" || jsonStr == "[]" {
		h.ErrorDetails = make([]ErrorDetail, 0)
		return nil
	}
	var details []ErrorDetail
	if err := json.Unmarshal([]byte(jsonStr), &details); err != nil {
		return fmt.Errorf("failed to unmarshal error details: %w", err)
	}
	h.ErrorDetails = details
	return nil
}

// SuccessRate returns the share of parents written, as a percentage (0-100)
func (h *ImportHistory) SuccessRate() float64 {
	if h.TotalEntities == 0 {
		return 0
	}
	return float64(h.ImportedCount) / float64(h.TotalEntities) * 100
}
