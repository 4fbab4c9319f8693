package models

import (
	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItemModel is the persistence model for a reconciled catalog item
type CatalogItemModel struct {
	BaseModel
	Handle      string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(255)"`
	Vendor      string         `gorm:"type:varchar(255)"`
	Variants    []VariantModel `gorm:"foreignKey:CatalogItemID;references:ID"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// VariantModel is the persistence model for a catalog variant
type VariantModel struct {
	BaseModel
	CatalogItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position      int             `gorm:"not null"`
	SKU           string          `gorm:"column:sku;type:varchar(100);not null;uniqueIndex"`
	Color         string          `gorm:"type:varchar(100)"`
	Size          string          `gorm:"type:varchar(100)"`
	Cost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockQuantity int64           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VariantModel) TableName() string {
	return "catalog_variants"
}

// CatalogItemModelFromDomain creates a persistence model, variants included
func CatalogItemModelFromDomain(item *bulk.CatalogItem) *CatalogItemModel {
	m := &CatalogItemModel{
		BaseModel:   NewBaseModel(),
		Handle:      item.Handle,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Vendor:      item.Vendor,
		Variants:    make([]VariantModel, len(item.Variants)),
	}
	for i, v := range item.Variants {
		m.Variants[i] = VariantModel{
			BaseModel:     NewBaseModel(),
			CatalogItemID: m.ID,
			Position:      i,
			SKU:           v.SKU,
			Color:         v.Color,
			Size:          v.Size,
			Cost:          v.Cost,
			SellingPrice:  v.SellingPrice,
			StockQuantity: v.StockQuantity,
		}
	}
	return m
}

// ToDomain converts the persistence model to a domain CatalogItem.
// Variants must be preloaded in position order.
func (m *CatalogItemModel) ToDomain() *bulk.CatalogItem {
	item := bulk.NewCatalogItem(m.Handle, m.Title)
	item.Description = m.Description
	item.Category = m.Category
	item.Vendor = m.Vendor
	for _, v := range m.Variants {
		item.AddVariant(bulk.Variant{
			SKU:           v.SKU,
			Color:         v.Color,
			Size:          v.Size,
			Cost:          v.Cost,
			SellingPrice:  v.SellingPrice,
			StockQuantity: v.StockQuantity,
		})
	}
	return item
}
