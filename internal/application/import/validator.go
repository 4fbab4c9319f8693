package importapp

import (
	"strings"

	"github.com/erp/bulkimport/internal/domain/bulk"
)

// ValidateCatalog reports cross-item defects of reconciled catalog items.
// It reads its input only.
func ValidateCatalog(items []*bulk.CatalogItem) []bulk.Diagnostic {
	diags := validateParents(items, "Handle", "Missing Title", "No variants found")

	seenSKUs := make(map[string]struct{})
	for i := 0; i < len(items); i++ {
		if items[i] == nil {
			continue
		}
		skus := items[i].ChildSKUs()
		for j := 0; j < len(skus); j++ {
			if _, dup := seenSKUs[skus[j]]; dup {
				diags = append(diags, bulk.NewDiagnostic("Duplicate SKU: %s", skus[j]))
				continue
			}
			seenSKUs[skus[j]] = struct{}{}
		}
	}
	return diags
}

// ValidateOrders reports cross-order defects of reconciled orders
func ValidateOrders(orders []*bulk.CommerceOrder) []bulk.Diagnostic {
	return validateParents(orders, "Order Name", "Missing Order Name", "No line items found")
}

func validateParents[P bulk.Aggregate](parents []P, keyLabel, missingName, noChildren string) []bulk.Diagnostic {
	var diags []bulk.Diagnostic
	seenKeys := make(map[string]struct{})

	for i := 0; i < len(parents); i++ {
		p := parents[i]
		if isNilAggregate(p) {
			continue
		}
		key := p.NaturalKey()
		if _, dup := seenKeys[key]; dup {
			diags = append(diags, bulk.NewDiagnostic("Duplicate %s: %s", keyLabel, key))
		} else {
			seenKeys[key] = struct{}{}
		}

		name := p.DisplayName()
		if strings.TrimSpace(name) == "" {
			diags = append(diags, bulk.NewDiagnostic("%q: %s", key, missingName))
			name = key
		}
		if p.ChildCount() == 0 {
			diags = append(diags, bulk.NewDiagnostic("%q: %s", name, noChildren))
		}
	}
	return diags
}

func isNilAggregate(p bulk.Aggregate) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *bulk.CatalogItem:
		return v == nil
	case *bulk.CommerceOrder:
		return v == nil
	}
	return false
}
