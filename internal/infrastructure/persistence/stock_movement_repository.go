package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/bulkimport/internal/domain/inventory"
	"github.com/erp/bulkimport/internal/domain/shared"
	"github.com/erp/bulkimport/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockMovementRepository records stock movements and keeps per-variant
// stock levels. A movement is stored once per dedup key; only a newly
// stored movement changes the stock level.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// ApplyMovement implements inventory.StockMovementWriter
func (r *GormStockMovementRepository) ApplyMovement(ctx context.Context, instr inventory.StockMovementInstruction) error {
	if instr.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	if !instr.Type.IsValid() {
		return shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type: "+string(instr.Type))
	}
	if instr.VariantID == "" {
		return shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movement := models.StockMovementModelFromDomain(instr)
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedup_key"}},
			DoNothing: true,
		}).Create(movement)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Already applied
			return nil
		}

		now := time.Now()
		delta := instr.Type.Sign() * instr.Quantity
		stock := models.VariantStockModel{
			VariantID: instr.VariantID,
			ProductID: instr.ProductID,
			Quantity:  delta,
			UpdatedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "variant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("variant_stocks.quantity + ?", delta),
				"updated_at": now,
			}),
		}).Create(&stock).Error
	})
}

// StockLevel returns the recorded stock of a variant, 0 when it has none
func (r *GormStockMovementRepository) StockLevel(ctx context.Context, variantID string) (int64, error) {
	var stock models.VariantStockModel
	err := r.db.WithContext(ctx).Where("variant_id = ?", variantID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// FindMovements lists the movements of a variant, oldest first
func (r *GormStockMovementRepository) FindMovements(ctx context.Context, variantID string) ([]inventory.StockMovementInstruction, error) {
	var rows []models.StockMovementModel
	if err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.StockMovementInstruction, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}
