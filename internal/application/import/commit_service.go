package importapp

import (
	"context"
	"fmt"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/erp/bulkimport/internal/domain/shared"
	"go.uber.org/zap"
)

// CommitService persists reconciled parents one at a time. There is no
// transaction across parents: a failed write is recorded against its key
// and the remaining parents are still written.
type CommitService struct {
	preview     *PreviewService
	catalog     bulk.CatalogWriter
	orders      bulk.OrderWriter
	historyRepo bulk.ImportHistoryRepository
	logger      *zap.Logger
}

// NewCommitService creates a new CommitService. historyRepo may be nil.
func NewCommitService(
	preview *PreviewService,
	catalog bulk.CatalogWriter,
	orders bulk.OrderWriter,
	historyRepo bulk.ImportHistoryRepository,
	logger *zap.Logger,
) *CommitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommitService{
		preview:     preview,
		catalog:     catalog,
		orders:      orders,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// CommitCatalog reconciles a catalog file and writes every item
func (s *CommitService) CommitCatalog(ctx context.Context, data []byte, fileName string) (*bulk.CommitResult, error) {
	if s.catalog == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "No catalog writer configured")
	}
	items, diags, summary := s.preview.ReconcileCatalogFile(ctx, data, fileName)

	history, err := s.startHistory(ctx, bulk.EntityCatalog, fileName, summary, len(diags))
	if err != nil {
		return nil, err
	}

	batch := shared.NewBatchResult(len(items))
	for i := 0; i < len(items); i++ {
		err := s.catalog.SaveCatalogItem(ctx, items[i])
		if err != nil {
			s.logger.Warn("Failed to save catalog item",
				zap.String("handle", items[i].Handle),
				zap.Error(err),
			)
		}
		batch.Record(items[i].Handle, err)
	}

	return s.finish(ctx, history, batch), nil
}

// CommitOrders reconciles an order file and writes every order
func (s *CommitService) CommitOrders(ctx context.Context, data []byte, fileName string) (*bulk.CommitResult, error) {
	if s.orders == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "No order writer configured")
	}
	orders, diags, summary, _ := s.preview.ReconcileOrderFile(ctx, data, fileName, 0)

	history, err := s.startHistory(ctx, bulk.EntityOrders, fileName, summary, len(diags))
	if err != nil {
		return nil, err
	}

	batch := shared.NewBatchResult(len(orders))
	for i := 0; i < len(orders); i++ {
		err := s.orders.SaveOrder(ctx, orders[i])
		if err != nil {
			s.logger.Warn("Failed to save order",
				zap.String("order", orders[i].Name),
				zap.Error(err),
			)
		}
		batch.Record(orders[i].Name, err)
	}

	return s.finish(ctx, history, batch), nil
}

// Commit dispatches on entity type
func (s *CommitService) Commit(ctx context.Context, entityType bulk.EntityType, data []byte, fileName string) (*bulk.CommitResult, error) {
	switch entityType {
	case bulk.EntityCatalog:
		return s.CommitCatalog(ctx, data, fileName)
	case bulk.EntityOrders:
		return s.CommitOrders(ctx, data, fileName)
	}
	return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", fmt.Sprintf("Invalid entity type: %s", entityType))
}

func (s *CommitService) startHistory(
	ctx context.Context,
	entityType bulk.EntityType,
	fileName string,
	summary bulk.Summary,
	diagnostics int,
) (*bulk.ImportHistory, error) {
	history, err := bulk.NewImportHistory(entityType, fileName)
	if err != nil {
		return nil, err
	}
	if err := history.StartProcessing(summary, diagnostics); err != nil {
		return nil, err
	}
	if s.historyRepo != nil {
		if err := s.historyRepo.Save(ctx, history); err != nil {
			return nil, fmt.Errorf("failed to save import history: %w", err)
		}
	}
	return history, nil
}

// finish converts the batch and closes the history record. History failures
// are logged only since every write has already happened.
func (s *CommitService) finish(ctx context.Context, history *bulk.ImportHistory, batch *shared.BatchResult) *bulk.CommitResult {
	result := bulk.CommitResultFromBatch(batch)

	if err := history.Complete(result); err != nil {
		s.logger.Error("Failed to complete import history", zap.String("history_id", history.ID.String()), zap.Error(err))
		return result
	}
	if s.historyRepo != nil {
		if err := s.historyRepo.Save(ctx, history); err != nil {
			s.logger.Error("Failed to save import history", zap.String("history_id", history.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("Import committed",
		zap.String("entity_type", string(history.EntityType)),
		zap.String("file", history.FileName),
		zap.Int("imported", result.ImportedCount),
		zap.Int("errors", result.ErrorCount),
	)
	return result
}
