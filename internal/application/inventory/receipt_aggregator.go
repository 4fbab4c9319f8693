// Package inventoryapp turns a supplier receipt into stock movements.
package inventoryapp

import (
	"strings"

	"github.com/erp/bulkimport/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ReceiptAggregate is the expansion of a receipt into movement instructions
type ReceiptAggregate struct {
	Instructions  []inventory.StockMovementInstruction `json:"instructions"`
	TotalQuantity int64                                `json:"totalQuantity"`
	TotalCost     decimal.Decimal                      `json:"totalCost"`
}

// AggregateReceipt emits one inward instruction per variant quantity above
// zero, in entry then variant order. Zero quantities are dropped from the
// instructions and both totals. A cost that is blank, malformed or negative
// counts as 0 for its entry only.
func AggregateReceipt(ref inventory.ReceiptReference, entries []inventory.ReceiptEntry) *ReceiptAggregate {
	agg := &ReceiptAggregate{
		Instructions: make([]inventory.StockMovementInstruction, 0),
		TotalCost:    decimal.Zero,
	}

	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		cost := parseUnitCost(entry.UnitCost)

		for j := 0; j < len(entry.VariantQuantities); j++ {
			vq := entry.VariantQuantities[j]
			if vq.Quantity <= 0 {
				continue
			}
			instr := inventory.StockMovementInstruction{
				EntryIndex:    i,
				VariantIndex:  j,
				ProductID:     entry.ProductID,
				VariantID:     vq.VariantID,
				Type:          inventory.MovementTypeInward,
				Quantity:      vq.Quantity,
				UnitCost:      cost,
				SupplierID:    ref.SupplierID,
				InvoiceNumber: ref.InvoiceNumber,
				InvoiceDate:   ref.InvoiceDate,
			}
			agg.Instructions = append(agg.Instructions, instr)
			agg.TotalQuantity += instr.Quantity
			agg.TotalCost = agg.TotalCost.Add(instr.TotalCost())
		}
	}
	return agg
}

func parseUnitCost(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
