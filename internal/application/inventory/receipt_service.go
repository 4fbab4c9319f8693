package inventoryapp

import (
	"context"
	"fmt"

	"github.com/erp/bulkimport/internal/domain/inventory"
	"github.com/erp/bulkimport/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptRequest is a supplier receipt submitted for booking
type ReceiptRequest struct {
	inventory.ReceiptReference
	Entries []inventory.ReceiptEntry `json:"entries" validate:"required,min=1,dive"`
}

// ReceiptResponse reports the receipt totals and how each movement fared.
// Totals cover every emitted instruction, applied or not.
type ReceiptResponse struct {
	TotalUnits int64                `json:"totalUnits"`
	TotalValue decimal.Decimal      `json:"totalValue"`
	Succeeded  int                  `json:"succeeded"`
	Failed     int                  `json:"failed"`
	Outcomes   []shared.ItemOutcome `json:"outcomes"`
}

// ReceiptService books supplier receipts as inward stock movements
type ReceiptService struct {
	writer    inventory.StockMovementWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(writer inventory.StockMovementWriter, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{
		writer:    writer,
		validator: newValidator(),
		logger:    logger,
	}
}

// Receive validates the request, expands it and applies each instruction
// through the writer. Movements are independent: a failure is recorded
// against its instruction and the rest are still applied.
func (s *ReceiptService) Receive(ctx context.Context, req ReceiptRequest) (*ReceiptResponse, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	agg := AggregateReceipt(req.ReceiptReference, req.Entries)
	batch := shared.NewBatchResult(len(agg.Instructions))

	for _, instr := range agg.Instructions {
		key := InstructionKey(instr)
		err := s.writer.ApplyMovement(ctx, instr)
		if err != nil {
			s.logger.Warn("Failed to apply stock movement",
				zap.String("key", key),
				zap.String("dedup_key", instr.DedupKey()),
				zap.Error(err),
			)
		}
		batch.Record(key, err)
	}

	s.logger.Info("Receipt booked",
		zap.String("supplier_id", req.SupplierID),
		zap.String("invoice_number", req.InvoiceNumber),
		zap.Int("movements", len(agg.Instructions)),
		zap.Int("failed", batch.Failed),
		zap.Int64("total_units", agg.TotalQuantity),
		zap.String("total_value", agg.TotalCost.String()),
	)

	return &ReceiptResponse{
		TotalUnits: agg.TotalQuantity,
		TotalValue: agg.TotalCost,
		Succeeded:  batch.Succeeded,
		Failed:     batch.Failed,
		Outcomes:   batch.Outcomes,
	}, nil
}

// InstructionKey names an instruction in outcomes as product/variant
func InstructionKey(instr inventory.StockMovementInstruction) string {
	return fmt.Sprintf("%s/%s", instr.ProductID, instr.VariantID)
}
