package bulk

import "github.com/shopspring/decimal"

// OrderStatus is the workflow status of an order
type OrderStatus string

// OrderStatusNew is assigned to every imported order. The source
// fulfillment status is deliberately not consulted.
const OrderStatusNew OrderStatus = "new"

// Address is a postal shipping address
type Address struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
}

// LineItem is one ordered product line
type LineItem struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Quantity       int64           `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	CompareAtPrice decimal.Decimal `json:"compareAtPrice"`
}

// Total is quantity times unit price
func (l LineItem) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// CommerceOrder is an order reconstructed from line-item rows grouped by
// order name.
type CommerceOrder struct {
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	ShippingAddress Address         `json:"shippingAddress"`
	BillingName     string          `json:"billingName,omitempty"`
	BillingPhone    string          `json:"billingPhone,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          OrderStatus     `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	Taxes           decimal.Decimal `json:"taxes"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	PlacedAt        string          `json:"placedAt,omitempty"`
	LineItems       []LineItem      `json:"lineItems"`
}

// NewCommerceOrder creates an order in the fixed initial status
func NewCommerceOrder(name string) *CommerceOrder {
	return &CommerceOrder{
		Name:      name,
		Status:    OrderStatusNew,
		LineItems: make([]LineItem, 0),
	}
}

// AddLineItem appends a line item; line items are never merged
func (o *CommerceOrder) AddLineItem(item LineItem) {
	o.LineItems = append(o.LineItems, item)
}

// NaturalKey implements Aggregate
func (o *CommerceOrder) NaturalKey() string { return o.Name }

// DisplayName implements Aggregate
func (o *CommerceOrder) DisplayName() string { return o.Name }

// ChildCount implements Aggregate
func (o *CommerceOrder) ChildCount() int { return len(o.LineItems) }

// ChildSKUs implements Aggregate
func (o *CommerceOrder) ChildSKUs() []string {
	skus := make([]string, len(o.LineItems))
	for i, l := range o.LineItems {
		skus[i] = l.SKU
	}
	return skus
}

// Units sums line item quantities
func (o *CommerceOrder) Units() int64 {
	var units int64
	for _, l := range o.LineItems {
		units += l.Quantity
	}
	return units
}
