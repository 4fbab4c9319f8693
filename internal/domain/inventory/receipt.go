package inventory

import "time"

// VariantQuantity is the received quantity for one variant
type VariantQuantity struct {
	VariantID string `json:"variantId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=0"`
}

// ReceiptEntry is a user-composed (product, per-variant quantities, unit
// cost) tuple. UnitCost is kept as entered; the aggregator parses it.
type ReceiptEntry struct {
	ProductID         string            `json:"productId" validate:"required"`
	VariantQuantities []VariantQuantity `json:"variantQuantities" validate:"dive"`
	UnitCost          string            `json:"unitCost"`
}

// ReceiptReference is the supplier invoice a receipt is booked against
type ReceiptReference struct {
	SupplierID    string    `json:"supplierId" validate:"required"`
	InvoiceNumber string    `json:"invoiceNumber" validate:"required"`
	InvoiceDate   time.Time `json:"invoiceDate" validate:"required"`
}
