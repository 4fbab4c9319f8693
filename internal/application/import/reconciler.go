package importapp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/shopspring/decimal"
)

// SyntheticSKUPrefix prefixes the SKU given to line items exported without one
const SyntheticSKUPrefix = "NOSKU-"

// ReconcileCatalog groups variant rows by handle. The first row of a handle
// must carry a title and supplies every scalar of the item; later rows only
// contribute variants. Items are returned in first-seen order.
func ReconcileCatalog(rows []VariantRow) ([]*bulk.CatalogItem, []bulk.Diagnostic) {
	items := make([]*bulk.CatalogItem, 0)
	index := make(map[string]int)
	var diags []bulk.Diagnostic

	for i := 0; i < len(rows); i++ {
		r := rows[i]
		handle := strings.TrimSpace(r.Handle)
		if handle == "" {
			diags = append(diags, bulk.RowDiagnostic(r.Line, "Missing Handle"))
			continue
		}

		pos, ok := index[handle]
		if !ok {
			if strings.TrimSpace(r.Title) == "" {
				diags = append(diags, bulk.RowDiagnostic(r.Line, "Missing Title"))
				continue
			}
			item := bulk.NewCatalogItem(handle, r.Title)
			item.Description = r.Body
			item.Category = r.Type
			item.Vendor = r.Vendor
			items = append(items, item)
			pos = len(items) - 1
			index[handle] = pos
		}

		sku := strings.TrimSpace(r.SKU)
		if sku == "" {
			continue
		}
		items[pos].AddVariant(bulk.Variant{
			SKU:           sku,
			Color:         r.Color,
			Size:          r.Size,
			Cost:          parseDecimal(r.CostPerItem),
			SellingPrice:  parseDecimal(r.Price),
			StockQuantity: parseQuantity(r.InventoryQty),
		})
	}
	return items, diags
}

// ReconcileOrders groups line-item rows by order name. seq is the running
// line-item count carried across calls; the advanced value is returned so a
// caller reconciling several files keeps synthetic SKUs unique.
func ReconcileOrders(rows []LineItemRow, seq int) ([]*bulk.CommerceOrder, []bulk.Diagnostic, int) {
	orders := make([]*bulk.CommerceOrder, 0)
	index := make(map[string]int)
	var diags []bulk.Diagnostic

	for i := 0; i < len(rows); i++ {
		r := rows[i]
		name := strings.TrimSpace(r.Name)
		if name == "" {
			diags = append(diags, bulk.RowDiagnostic(r.Line, "Missing Order Name"))
			continue
		}

		pos, ok := index[name]
		if !ok {
			orders = append(orders, newOrderFromRow(name, r))
			pos = len(orders) - 1
			index[name] = pos
		}

		itemName := strings.TrimSpace(r.ItemName)
		qty := parseQuantity(r.ItemQuantity)
		if itemName == "" || qty <= 0 {
			continue
		}
		seq++
		sku := strings.TrimSpace(r.ItemSKU)
		if sku == "" {
			sku = fmt.Sprintf("%s%d", SyntheticSKUPrefix, seq)
		}
		orders[pos].AddLineItem(bulk.LineItem{
			SKU:            sku,
			Name:           itemName,
			Quantity:       qty,
			Price:          parseDecimal(r.ItemPrice),
			CompareAtPrice: parseDecimal(r.ItemCompareAt),
		})
	}
	return orders, diags, seq
}

func newOrderFromRow(name string, r LineItemRow) *bulk.CommerceOrder {
	o := bulk.NewCommerceOrder(name)
	o.Email = r.Email
	o.CustomerName = firstNonBlank(r.ShippingName, r.BillingName)
	o.Phone = firstNonBlank(r.ShippingPhone, r.BillingPhone)
	o.ShippingAddress = bulk.Address{
		Line1:    r.ShippingAddress1,
		Line2:    r.ShippingAddress2,
		Street:   r.ShippingStreet,
		City:     r.ShippingCity,
		Zip:      r.ShippingZip,
		Province: r.ShippingProvince,
		Country:  r.ShippingCountry,
	}
	o.BillingName = r.BillingName
	o.BillingPhone = r.BillingPhone
	o.PaymentMethod = r.PaymentMethod
	o.PaymentStatus = r.PaymentStatus
	o.Subtotal = parseDecimal(r.Subtotal)
	o.ShippingFee = parseDecimal(r.Shipping)
	o.Taxes = parseDecimal(r.Taxes)
	o.Discount = parseDecimal(r.DiscountAmount)
	o.Total = parseDecimal(r.Total)
	o.Notes = r.Notes
	o.PlacedAt = r.CreatedAt
	return o
}

// parseDecimal reads a money cell, treating blank or malformed values as zero
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseQuantity reads a count cell. Spreadsheets often render integers as
// "2.0", so integral decimals are accepted too.
func parseQuantity(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0
	}
	return d.IntPart()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
