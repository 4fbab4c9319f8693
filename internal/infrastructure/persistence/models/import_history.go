package models

import (
	"time"

	"github.com/erp/bulkimport/internal/domain/bulk"
)

// ImportHistoryModel is the persistence model for the ImportHistory domain entity.
type ImportHistoryModel struct {
	BaseModel
	EntityType       bulk.EntityType   `gorm:"type:varchar(20);not null;index"`
	FileName         string            `gorm:"type:varchar(255);not null"`
	TotalRows        int               `gorm:"not null;default:0"`
	TotalEntities    int               `gorm:"not null;default:0"`
	ImportedCount    int               `gorm:"not null;default:0"`
	ErrorCount       int               `gorm:"not null;default:0"`
	DiagnosticsCount int               `gorm:"not null;default:0"`
	Status           bulk.ImportStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ErrorDetails     string            `gorm:"type:text;not null;default:'[]'"`
	StartedAt        *time.Time
	CompletedAt      *time.Time
}

// TableName returns the table name for GORM
func (ImportHistoryModel) TableName() string {
	return "import_histories"
}

// ToDomain converts the persistence model to a domain ImportHistory entity.
func (m *ImportHistoryModel) ToDomain() *bulk.ImportHistory {
	history := &bulk.ImportHistory{
		BaseEntity:       m.BaseModel.ToDomain(),
		EntityType:       m.EntityType,
		FileName:         m.FileName,
		TotalRows:        m.TotalRows,
		TotalEntities:    m.TotalEntities,
		ImportedCount:    m.ImportedCount,
		ErrorCount:       m.ErrorCount,
		DiagnosticsCount: m.DiagnosticsCount,
		Status:           m.Status,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
	}

	// Parse error details JSON
	if err := history.SetErrorDetailsFromJSON(m.ErrorDetails); err != nil {
		history.ErrorDetails = make([]bulk.ErrorDetail, 0)
	}

	return history
}

// FromDomain populates the persistence model from a domain ImportHistory entity.
func (m *ImportHistoryModel) FromDomain(h *bulk.ImportHistory) {
	m.FromDomainBaseEntity(h.BaseEntity)
	m.EntityType = h.EntityType
	m.FileName = h.FileName
	m.TotalRows = h.TotalRows
	m.TotalEntities = h.TotalEntities
	m.ImportedCount = h.ImportedCount
	m.ErrorCount = h.ErrorCount
	m.DiagnosticsCount = h.DiagnosticsCount
	m.Status = h.Status
	m.StartedAt = h.StartedAt
	m.CompletedAt = h.CompletedAt

	// Serialize error details to JSON
	if errorJSON, err := h.ErrorDetailsJSON(); err == nil {
		m.ErrorDetails = errorJSON
	} else {
		m.ErrorDetails = "[]"
	}
}

// ImportHistoryModelFromDomain creates a new persistence model from a domain ImportHistory entity.
func ImportHistoryModelFromDomain(h *bulk.ImportHistory) *ImportHistoryModel {
	m := &ImportHistoryModel{}
	m.FromDomain(h)
	return m
}
