package models

import (
	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for a reconciled commerce order
type OrderModel struct {
	BaseModel
	Name             string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email            string             `gorm:"type:varchar(255)"`
	CustomerName     string             `gorm:"type:varchar(255)"`
	Phone            string             `gorm:"type:varchar(50)"`
	ShippingLine1    string             `gorm:"type:varchar(255)"`
	ShippingLine2    string             `gorm:"type:varchar(255)"`
	ShippingStreet   string             `gorm:"type:varchar(255)"`
	ShippingCity     string             `gorm:"type:varchar(100)"`
	ShippingZip      string             `gorm:"type:varchar(20)"`
	ShippingProvince string             `gorm:"type:varchar(100)"`
	ShippingCountry  string             `gorm:"type:varchar(100)"`
	BillingName      string             `gorm:"type:varchar(255)"`
	BillingPhone     string             `gorm:"type:varchar(50)"`
	PaymentMethod    bulk.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentStatus    bulk.PaymentStatus `gorm:"type:varchar(20);not null"`
	Status           bulk.OrderStatus   `gorm:"type:varchar(20);not null"`
	Subtotal         decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	ShippingFee      decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Taxes            decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Discount         decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Total            decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Notes            string             `gorm:"type:text"`
	PlacedAt         string             `gorm:"type:varchar(50)"`
	LineItems        []LineItemModel    `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "commerce_orders"
}

// LineItemModel is the persistence model for an order line
type LineItemModel struct {
	BaseModel
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position       int             `gorm:"not null"`
	SKU            string          `gorm:"column:sku;type:varchar(100);not null"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Quantity       int64           `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CompareAtPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "commerce_order_lines"
}

// OrderModelFromDomain creates a persistence model, line items included
func OrderModelFromDomain(o *bulk.CommerceOrder) *OrderModel {
	m := &OrderModel{
		BaseModel:        NewBaseModel(),
		Name:             o.Name,
		Email:            o.Email,
		CustomerName:     o.CustomerName,
		Phone:            o.Phone,
		ShippingLine1:    o.ShippingAddress.Line1,
		ShippingLine2:    o.ShippingAddress.Line2,
		ShippingStreet:   o.ShippingAddress.Street,
		ShippingCity:     o.ShippingAddress.City,
		ShippingZip:      o.ShippingAddress.Zip,
		ShippingProvince: o.ShippingAddress.Province,
		ShippingCountry:  o.ShippingAddress.Country,
		BillingName:      o.BillingName,
		BillingPhone:     o.BillingPhone,
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    o.PaymentStatus,
		Status:           o.Status,
		Subtotal:         o.Subtotal,
		ShippingFee:      o.ShippingFee,
		Taxes:            o.Taxes,
		Discount:         o.Discount,
		Total:            o.Total,
		Notes:            o.Notes,
		PlacedAt:         o.PlacedAt,
		LineItems:        make([]LineItemModel, len(o.LineItems)),
	}
	for i, l := range o.LineItems {
		m.LineItems[i] = LineItemModel{
			BaseModel:      NewBaseModel(),
			OrderID:        m.ID,
			Position:       i,
			SKU:            l.SKU,
			Name:           l.Name,
			Quantity:       l.Quantity,
			Price:          l.Price,
			CompareAtPrice: l.CompareAtPrice,
		}
	}
	return m
}

// ToDomain converts the persistence model to a domain CommerceOrder.
// Line items must be preloaded in position order.
func (m *OrderModel) ToDomain() *bulk.CommerceOrder {
	o := bulk.NewCommerceOrder(m.Name)
	o.Email = m.Email
	o.CustomerName = m.CustomerName
	o.Phone = m.Phone
	o.ShippingAddress = bulk.Address{
		Line1:    m.ShippingLine1,
		Line2:    m.ShippingLine2,
		Street:   m.ShippingStreet,
		City:     m.ShippingCity,
		Zip:      m.ShippingZip,
		Province: m.ShippingProvince,
		Country:  m.ShippingCountry,
	}
	o.BillingName = m.BillingName
	o.BillingPhone = m.BillingPhone
	o.PaymentMethod = m.PaymentMethod
	o.PaymentStatus = m.PaymentStatus
	o.Status = m.Status
	o.Subtotal = m.Subtotal
	o.ShippingFee = m.ShippingFee
	o.Taxes = m.Taxes
	o.Discount = m.Discount
	o.Total = m.Total
	o.Notes = m.Notes
	o.PlacedAt = m.PlacedAt
	for _, l := range m.LineItems {
		o.AddLineItem(bulk.LineItem{
			SKU:            l.SKU,
			Name:           l.Name,
			Quantity:       l.Quantity,
			Price:          l.Price,
			CompareAtPrice: l.CompareAtPrice,
		})
	}
	return o
}
