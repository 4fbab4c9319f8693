package importapp

import (
	"testing"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("counts parents and children", func(t *testing.T) {
		items := []*bulk.CatalogItem{
			catalogItem("shirt", "Shirt", "S-1", "S-2"),
			catalogItem("hat", "Hat"),
		}

		assert.Equal(t, bulk.Summary{TotalRows: 5, ParentsFound: 2, ChildrenFound: 2}, Summarize(5, items))

		items = append(items, catalogItem("sock", "Sock", "K-1"))
		assert.Equal(t, bulk.Summary{TotalRows: 7, ParentsFound: 3, ChildrenFound: 3}, Summarize(7, items))
	})

	t.Run("orders", func(t *testing.T) {
		order := bulk.NewCommerceOrder("#1")
		order.AddLineItem(bulk.LineItem{SKU: "A", Quantity: 1})
		order.AddLineItem(bulk.LineItem{SKU: "B", Quantity: 2})

		s := Summarize(3, []*bulk.CommerceOrder{order})
		assert.Equal(t, 1, s.ParentsFound)
		assert.Equal(t, 2, s.ChildrenFound)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, bulk.Summary{}, Summarize[*bulk.CatalogItem](0, nil))
		assert.Equal(t, bulk.Summary{}, Summarize[*bulk.CommerceOrder](0, nil))
	})
}
