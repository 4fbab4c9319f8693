package persistence

import (
	"context"
	"errors"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/erp/bulkimport/internal/domain/shared"
	"github.com/erp/bulkimport/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormImportHistoryRepository implements ImportHistoryRepository using GORM
type GormImportHistoryRepository struct {
	db *gorm.DB
}

// NewGormImportHistoryRepository creates a new GormImportHistoryRepository
func NewGormImportHistoryRepository(db *gorm.DB) *GormImportHistoryRepository {
	return &GormImportHistoryRepository{db: db}
}

// FindByID finds an import history by ID
func (r *GormImportHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.ImportHistory, error) {
	var model models.ImportHistoryModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent returns the latest histories, newest first. An empty entity
// type matches every type.
func (r *GormImportHistoryRepository) FindRecent(ctx context.Context, entityType bulk.EntityType, limit int) ([]*bulk.ImportHistory, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportHistoryModel{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var historyModels []models.ImportHistoryModel
	if err := query.Order("created_at DESC").Find(&historyModels).Error; err != nil {
		return nil, err
	}

	// Convert to domain entities
	histories := make([]*bulk.ImportHistory, len(historyModels))
	for i := range historyModels {
		histories[i] = historyModels[i].ToDomain()
	}
	return histories, nil
}

// Save saves an import history (create or update)
func (r *GormImportHistoryRepository) Save(ctx context.Context, history *bulk.ImportHistory) error {
	model := models.ImportHistoryModelFromDomain(history)
	return r.db.WithContext(ctx).Save(model).Error
}
