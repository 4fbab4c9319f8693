package importapp

import (
	"testing"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/stretchr/testify/assert"
)

func catalogItem(handle, title string, skus ...string) *bulk.CatalogItem {
	item := bulk.NewCatalogItem(handle, title)
	for _, s := range skus {
		item.AddVariant(bulk.Variant{SKU: s})
	}
	return item
}

func TestValidateCatalog(t *testing.T) {
	t.Run("clean input", func(t *testing.T) {
		diags := ValidateCatalog([]*bulk.CatalogItem{catalogItem("a", "A", "1"), catalogItem("b", "B", "2")})
		assert.Empty(t, diags)
	})

	t.Run("duplicate SKU across items is reported once", func(t *testing.T) {
		diags := ValidateCatalog([]*bulk.CatalogItem{
			catalogItem("shirt", "Shirt", "SKU-1"),
			catalogItem("hat", "Hat", "SKU-1"),
		})

		assert.Equal(t, []string{"Duplicate SKU: SKU-1"}, bulk.Messages(diags))
	})

	t.Run("duplicate SKU within an item", func(t *testing.T) {
		diags := ValidateCatalog([]*bulk.CatalogItem{catalogItem("shirt", "Shirt", "SKU-1", "SKU-1", "SKU-1")})

		assert.Equal(t, []string{"Duplicate SKU: SKU-1", "Duplicate SKU: SKU-1"}, bulk.Messages(diags))
	})

	t.Run("duplicate handle, missing title and no variants", func(t *testing.T) {
		items := []*bulk.CatalogItem{
			catalogItem("shirt", "Shirt", "1"),
			catalogItem("shirt", "Shirt again", "2"),
			catalogItem("blank", " ", "3"),
			catalogItem("empty", "Empty"),
		}

		diags := ValidateCatalog(items)

		assert.Equal(t, []string{
			"Duplicate Handle: shirt",
			`"blank": Missing Title`,
			`"Empty": No variants found`,
		}, bulk.Messages(diags))
	})

	t.Run("does not mutate input and tolerates nil", func(t *testing.T) {
		items := []*bulk.CatalogItem{nil, catalogItem("a", "A", "1")}

		assert.NotPanics(t, func() { ValidateCatalog(items) })
		assert.Nil(t, items[0])
		assert.Len(t, items[1].Variants, 1)
	})
}

func TestValidateOrders(t *testing.T) {
	o1 := bulk.NewCommerceOrder("#1")
	o1.AddLineItem(bulk.LineItem{SKU: "A", Name: "A", Quantity: 1})
	o2 := bulk.NewCommerceOrder("#1")
	o2.AddLineItem(bulk.LineItem{SKU: "A", Name: "A", Quantity: 1})
	o3 := bulk.NewCommerceOrder("#2")

	diags := ValidateOrders([]*bulk.CommerceOrder{o1, o2, o3})

	assert.Equal(t, []string{
		"Duplicate Order Name: #1",
		`"#2": No line items found`,
	}, bulk.Messages(diags), "orders are not checked for SKU collisions")
}
