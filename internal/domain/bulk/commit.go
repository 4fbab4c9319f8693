package bulk

import (
	"context"

	"github.com/erp/bulkimport/internal/domain/shared"
)

// EntityType is the kind of parent an import produces
type EntityType string

const (
	EntityCatalog EntityType = "products"
	EntityOrders  EntityType = "orders"
)

// IsValid checks if the entity type is valid
func (e EntityType) IsValid() bool {
	switch e {
	case EntityCatalog, EntityOrders:
		return true
	}
	return false
}

// CatalogWriter persists one reconciled catalog item per call
type CatalogWriter interface {
	SaveCatalogItem(ctx context.Context, item *CatalogItem) error
}

// OrderWriter persists one reconciled order per call
type OrderWriter interface {
	SaveOrder(ctx context.Context, order *CommerceOrder) error
}

// ErrorDetail names the parent that failed to persist and why
type ErrorDetail struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// CommitResult is the per-parent outcome of a commit
type CommitResult struct {
	ImportedCount int           `json:"importedCount"`
	ErrorCount    int           `json:"errorCount"`
	ErrorDetails  []ErrorDetail `json:"errorDetails"`
}

// CommitResultFromBatch converts a batch result into the commit response shape
func CommitResultFromBatch(batch *shared.BatchResult) *CommitResult {
	result := &CommitResult{
		ImportedCount: batch.Succeeded,
		ErrorCount:    batch.Failed,
		ErrorDetails:  make([]ErrorDetail, 0, batch.Failed),
	}
	for _, f := range batch.Failures() {
		result.ErrorDetails = append(result.ErrorDetails, ErrorDetail{Key: f.Key, Error: f.Error})
	}
	return result
}
