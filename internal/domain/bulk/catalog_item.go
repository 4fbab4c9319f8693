package bulk

import "github.com/shopspring/decimal"

// Variant is one sellable variant of a catalog item
type Variant struct {
	SKU           string          `json:"sku"`
	Color         string          `json:"color,omitempty"`
	Size          string          `json:"size,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int64           `json:"stockQuantity"`
}

// CatalogItem is a product reconstructed from variant rows grouped by handle.
// Scalars come from the first row that introduced the handle.
type CatalogItem struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	Variants    []Variant `json:"variants"`
}

// NewCatalogItem creates a catalog item with no variants yet
func NewCatalogItem(handle, title string) *CatalogItem {
	return &CatalogItem{
		Handle:   handle,
		Title:    title,
		Variants: make([]Variant, 0),
	}
}

// AddVariant appends a variant; variants are never merged
func (c *CatalogItem) AddVariant(v Variant) {
	c.Variants = append(c.Variants, v)
}

// NaturalKey implements Aggregate
func (c *CatalogItem) NaturalKey() string { return c.Handle }

// DisplayName implements Aggregate
func (c *CatalogItem) DisplayName() string { return c.Title }

// ChildCount implements Aggregate
func (c *CatalogItem) ChildCount() int { return len(c.Variants) }

// ChildSKUs implements Aggregate
func (c *CatalogItem) ChildSKUs() []string {
	skus := make([]string, len(c.Variants))
	for i, v := range c.Variants {
		skus[i] = v.SKU
	}
	return skus
}

// TotalStock sums the stock quantity of all variants
func (c *CatalogItem) TotalStock() int64 {
	var total int64
	for _, v := range c.Variants {
		total += v.StockQuantity
	}
	return total
}
