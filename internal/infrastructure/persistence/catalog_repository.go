package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/erp/bulkimport/internal/domain/shared"
	"github.com/erp/bulkimport/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrDuplicateSKU is returned when a child SKU is already stored
var ErrDuplicateSKU = shared.NewDomainError("DUPLICATE_SKU", "Variant SKU already exists")

// GormCatalogRepository writes reconciled catalog items and orders. Each
// parent is written in its own transaction together with its children.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// SaveCatalogItem implements bulk.CatalogWriter
func (r *GormCatalogRepository) SaveCatalogItem(ctx context.Context, item *bulk.CatalogItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CatalogItemModel{}).
			Where("handle = ?", item.Handle).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("handle %s: %w", item.Handle, shared.ErrAlreadyExists)
		}

		model := models.CatalogItemModelFromDomain(item)
		if err := tx.Omit("Variants").Create(model).Error; err != nil {
			return translateWriteError(err, shared.ErrAlreadyExists)
		}
		if len(model.Variants) == 0 {
			return nil
		}
		if err := tx.Create(&model.Variants).Error; err != nil {
			return translateWriteError(err, ErrDuplicateSKU)
		}
		return nil
	})
}

// SaveOrder implements bulk.OrderWriter
func (r *GormCatalogRepository) SaveOrder(ctx context.Context, order *bulk.CommerceOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.OrderModel{}).
			Where("name = ?", order.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("order %s: %w", order.Name, shared.ErrAlreadyExists)
		}

		model := models.OrderModelFromDomain(order)
		if err := tx.Omit("LineItems").Create(model).Error; err != nil {
			return translateWriteError(err, shared.ErrAlreadyExists)
		}
		if len(model.LineItems) == 0 {
			return nil
		}
		return tx.Create(&model.LineItems).Error
	})
}

// FindCatalogItem loads a catalog item with its variants in import order
func (r *GormCatalogRepository) FindCatalogItem(ctx context.Context, handle string) (*bulk.CatalogItem, error) {
	var model models.CatalogItemModel
	if err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("handle = ?", handle).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrder loads an order with its line items in import order
func (r *GormCatalogRepository) FindOrder(ctx context.Context, name string) (*bulk.CommerceOrder, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// translateWriteError maps a unique constraint violation onto a domain error.
// It relies on gorm.Config.TranslateError.
func translateWriteError(err error, duplicate *shared.DomainError) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicate
	}
	return err
}
