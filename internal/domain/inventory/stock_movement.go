package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	// MovementTypeInward represents stock coming into inventory (supplier receipt)
	MovementTypeInward MovementType = "inward"
	// MovementTypeOutward represents stock leaving inventory
	MovementTypeOutward MovementType = "outward"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementTypeInward || t == MovementTypeOutward
}

// Sign returns +1 for inward and -1 for outward movements
func (t MovementType) Sign() int64 {
	if t == MovementTypeOutward {
		return -1
	}
	return 1
}

// StockMovementInstruction is one quantity change for a single variant, the
// unit of work handed to persistence. It carries the invoice reference and
// its position in the receipt so a writer can recognise a re-issued
// instruction.
type StockMovementInstruction struct {
	// EntryIndex and VariantIndex locate the source quantity in the receipt
	EntryIndex    int             `json:"entryIndex"`
	VariantIndex  int             `json:"variantIndex"`
	ProductID     string          `json:"productId"`
	VariantID     string          `json:"variantId"`
	Type          MovementType    `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	SupplierID    string          `json:"supplierId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
}

// TotalCost is quantity times unit cost
func (i StockMovementInstruction) TotalCost() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.Quantity))
}

// DedupKey identifies the instruction for idempotent writes. Quantities of one
// variant at different receipt positions get distinct keys.
func (i StockMovementInstruction) DedupKey() string {
	return fmt.Sprintf("%s|%s|%d.%d|%s|%s|%s",
		i.SupplierID, i.InvoiceNumber, i.EntryIndex, i.VariantIndex, i.ProductID, i.VariantID, i.Type)
}

// StockMovementWriter applies one instruction per call. Implementations
// must make re-applying the same instruction a no-op.
type StockMovementWriter interface {
	ApplyMovement(ctx context.Context, instruction StockMovementInstruction) error
}
