// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by every table
// - catalog.go: catalog items and their variants
// - order.go: commerce orders and line items
// - stock.go: stock movements and per-variant stock levels
// - import_history.go: committed import records
package models
