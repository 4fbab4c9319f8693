package models

import (
	"time"

	"github.com/erp/bulkimport/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockMovementModel is one applied stock movement. DedupKey is unique so a
// re-issued instruction is stored at most once.
type StockMovementModel struct {
	BaseModel
	DedupKey      string                 `gorm:"type:varchar(512);not null;uniqueIndex"`
	EntryIndex    int                    `gorm:"not null"`
	VariantIndex  int                    `gorm:"not null"`
	ProductID     string                 `gorm:"type:varchar(100);not null;index"`
	VariantID     string                 `gorm:"type:varchar(100);not null;index"`
	Type          inventory.MovementType `gorm:"type:varchar(20);not null"`
	Quantity      int64                  `gorm:"not null"`
	UnitCost      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	TotalCost     decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	SupplierID    string                 `gorm:"type:varchar(100);not null"`
	InvoiceNumber string                 `gorm:"type:varchar(100);not null"`
	InvoiceDate   time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// StockMovementModelFromDomain creates a persistence model from an instruction
func StockMovementModelFromDomain(instr inventory.StockMovementInstruction) *StockMovementModel {
	return &StockMovementModel{
		BaseModel:     NewBaseModel(),
		DedupKey:      instr.DedupKey(),
		EntryIndex:    instr.EntryIndex,
		VariantIndex:  instr.VariantIndex,
		ProductID:     instr.ProductID,
		VariantID:     instr.VariantID,
		Type:          instr.Type,
		Quantity:      instr.Quantity,
		UnitCost:      instr.UnitCost,
		TotalCost:     instr.TotalCost(),
		SupplierID:    instr.SupplierID,
		InvoiceNumber: instr.InvoiceNumber,
		InvoiceDate:   instr.InvoiceDate,
	}
}

// ToDomain converts the persistence model back into an instruction
func (m *StockMovementModel) ToDomain() inventory.StockMovementInstruction {
	return inventory.StockMovementInstruction{
		EntryIndex:    m.EntryIndex,
		VariantIndex:  m.VariantIndex,
		ProductID:     m.ProductID,
		VariantID:     m.VariantID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		SupplierID:    m.SupplierID,
		InvoiceNumber: m.InvoiceNumber,
		InvoiceDate:   m.InvoiceDate,
	}
}

// VariantStockModel is the running stock level of one variant
type VariantStockModel struct {
	VariantID string    `gorm:"type:varchar(100);primaryKey"`
	ProductID string    `gorm:"type:varchar(100);not null;index"`
	Quantity  int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VariantStockModel) TableName() string {
	return "variant_stocks"
}
