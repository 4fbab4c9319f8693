// Package importapp reconstructs catalog items and orders from flat
// spreadsheet rows and previews or commits the result.
package importapp

import (
	"fmt"
	"strings"

	"github.com/erp/bulkimport/internal/domain/bulk"
	csvimport "github.com/erp/bulkimport/internal/infrastructure/import"
	"golang.org/x/text/cases"
)

// Catalog export columns
const (
	ColHandle         = "Handle"
	ColTitle          = "Title"
	ColBody           = "Body"
	ColType           = "Type"
	ColVendor         = "Vendor"
	ColVariantSKU     = "Variant SKU"
	ColVariantPrice   = "Variant Price"
	ColCostPerItem    = "Cost per item"
	ColVariantStock   = "Variant Inventory Qty"
	maxOptionColumns  = 3
	optionNameFormat  = "Option%d Name"
	optionValueFormat = "Option%d Value"
)

// Order export columns
const (
	ColName                 = "Name"
	ColEmail                = "Email"
	ColFinancialStatus      = "Financial Status"
	ColShippingName         = "Shipping Name"
	ColShippingAddress1     = "Shipping Address1"
	ColShippingAddress2     = "Shipping Address2"
	ColShippingStreet       = "Shipping Street"
	ColShippingCity         = "Shipping City"
	ColShippingZip          = "Shipping Zip"
	ColShippingProvince     = "Shipping Province"
	ColShippingCountry      = "Shipping Country"
	ColShippingPhone        = "Shipping Phone"
	ColBillingName          = "Billing Name"
	ColBillingPhone         = "Billing Phone"
	ColSubtotal             = "Subtotal"
	ColShipping             = "Shipping"
	ColTaxes                = "Taxes"
	ColTotal                = "Total"
	ColDiscountAmount       = "Discount Amount"
	ColNotes                = "Notes"
	ColCreatedAt            = "Created at"
	ColLineitemName         = "Lineitem name"
	ColLineitemSKU          = "Lineitem sku"
	ColLineitemQuantity     = "Lineitem quantity"
	ColLineitemPrice        = "Lineitem price"
	ColLineitemComparePrice = "Lineitem compare at price"
)

// VariantRow is one catalog export row with every known column resolved.
// Absent columns are "".
type VariantRow struct {
	Line         int
	Handle       string
	Title        string
	Body         string
	Type         string
	Vendor       string
	Color        string
	Size         string
	SKU          string
	Price        string
	CostPerItem  string
	InventoryQty string
}

// LineItemRow is one order export row with every known column resolved.
// Payment fields are already derived from the financial status.
type LineItemRow struct {
	Line             int
	Name             string
	Email            string
	FinancialStatus  string
	PaymentMethod    bulk.PaymentMethod
	PaymentStatus    bulk.PaymentStatus
	ShippingName     string
	ShippingAddress1 string
	ShippingAddress2 string
	ShippingStreet   string
	ShippingCity     string
	ShippingZip      string
	ShippingProvince string
	ShippingCountry  string
	ShippingPhone    string
	BillingName      string
	BillingPhone     string
	Subtotal         string
	Shipping         string
	Taxes            string
	Total            string
	DiscountAmount   string
	Notes            string
	CreatedAt        string
	ItemName         string
	ItemSKU          string
	ItemQuantity     string
	ItemPrice        string
	ItemCompareAt    string
}

// Attribute is a variant attribute an option column can fill
type Attribute int

const (
	AttributeNone Attribute = iota
	AttributeColor
	AttributeSize
)

// OptionMatcher decides which variant attribute an option name describes.
// Matching is best effort: names it does not recognize are ignored and no
// diagnostic is produced for them.
type OptionMatcher interface {
	Match(optionName string) Attribute
}

// KeywordOptionMatcher matches option names by case-insensitive substring
type KeywordOptionMatcher struct {
	Color []string
	Size  []string
}

// DefaultOptionMatcher recognizes English color and size option names
func DefaultOptionMatcher() *KeywordOptionMatcher {
	return &KeywordOptionMatcher{
		Color: []string{"color", "colour"},
		Size:  []string{"size"},
	}
}

// Match implements OptionMatcher
func (m *KeywordOptionMatcher) Match(optionName string) Attribute {
	name := cases.Fold().String(optionName)
	if containsAny(name, m.Color) {
		return AttributeColor
	}
	if containsAny(name, m.Size) {
		return AttributeSize
	}
	return AttributeNone
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, cases.Fold().String(k)) {
			return true
		}
	}
	return false
}

// NormalizeVariantRow resolves a flat row into a VariantRow. Option pairs
// are scanned in order, so a later pair matching the same attribute wins.
func NormalizeVariantRow(row *csvimport.Row, matcher OptionMatcher) VariantRow {
	if matcher == nil {
		matcher = DefaultOptionMatcher()
	}
	v := VariantRow{
		Line:         row.LineNumber,
		Handle:       row.Get(ColHandle),
		Title:        row.Get(ColTitle),
		Body:         row.Get(ColBody),
		Type:         row.Get(ColType),
		Vendor:       row.Get(ColVendor),
		SKU:          row.Get(ColVariantSKU),
		Price:        row.Get(ColVariantPrice),
		CostPerItem:  row.Get(ColCostPerItem),
		InventoryQty: row.Get(ColVariantStock),
	}
	for i := 1; i <= maxOptionColumns; i++ {
		name := row.Get(optionColumn(optionNameFormat, i))
		if name == "" {
			continue
		}
		value := row.Get(optionColumn(optionValueFormat, i))
		switch matcher.Match(name) {
		case AttributeColor:
			v.Color = value
		case AttributeSize:
			v.Size = value
		}
	}
	return v
}

func optionColumn(format string, i int) string {
	return fmt.Sprintf(format, i)
}

// NormalizeLineItemRow resolves a flat row into a LineItemRow
func NormalizeLineItemRow(row *csvimport.Row) LineItemRow {
	l := LineItemRow{
		Line:             row.LineNumber,
		Name:             row.Get(ColName),
		Email:            row.Get(ColEmail),
		FinancialStatus:  row.Get(ColFinancialStatus),
		ShippingName:     row.Get(ColShippingName),
		ShippingAddress1: row.Get(ColShippingAddress1),
		ShippingAddress2: row.Get(ColShippingAddress2),
		ShippingStreet:   row.Get(ColShippingStreet),
		ShippingCity:     row.Get(ColShippingCity),
		ShippingZip:      row.Get(ColShippingZip),
		ShippingProvince: row.Get(ColShippingProvince),
		ShippingCountry:  row.Get(ColShippingCountry),
		ShippingPhone:    row.Get(ColShippingPhone),
		BillingName:      row.Get(ColBillingName),
		BillingPhone:     row.Get(ColBillingPhone),
		Subtotal:         row.Get(ColSubtotal),
		Shipping:         row.Get(ColShipping),
		Taxes:            row.Get(ColTaxes),
		Total:            row.Get(ColTotal),
		DiscountAmount:   row.Get(ColDiscountAmount),
		Notes:            row.Get(ColNotes),
		CreatedAt:        row.Get(ColCreatedAt),
		ItemName:         row.Get(ColLineitemName),
		ItemSKU:          row.Get(ColLineitemSKU),
		ItemQuantity:     row.Get(ColLineitemQuantity),
		ItemPrice:        row.Get(ColLineitemPrice),
		ItemCompareAt:    row.Get(ColLineitemComparePrice),
	}
	l.PaymentMethod, l.PaymentStatus = bulk.DerivePayment(l.FinancialStatus)
	return l
}

// NormalizeVariantRows normalizes every row in order
func NormalizeVariantRows(rows []*csvimport.Row, matcher OptionMatcher) []VariantRow {
	out := make([]VariantRow, len(rows))
	for i := 0; i < len(rows); i++ {
		out[i] = NormalizeVariantRow(rows[i], matcher)
	}
	return out
}

// NormalizeLineItemRows normalizes every row in order
func NormalizeLineItemRows(rows []*csvimport.Row) []LineItemRow {
	out := make([]LineItemRow, len(rows))
	for i := 0; i < len(rows); i++ {
		out[i] = NormalizeLineItemRow(rows[i])
	}
	return out
}
