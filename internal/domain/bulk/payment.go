package bulk

import (
	"strings"

	"golang.org/x/text/cases"
)

// PaymentMethod is how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodPrepaid PaymentMethod = "prepaid"
)

// PaymentStatus is whether an order has been paid
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

// DerivePayment maps a source financial status onto payment method and
// status. "pending" and "unpaid" mean cash on delivery, everything else
// (empty included) is prepaid; only "paid" counts as paid.
func DerivePayment(financialStatus string) (PaymentMethod, PaymentStatus) {
	status := cases.Fold().String(strings.TrimSpace(financialStatus))

	method := PaymentMethodPrepaid
	if status == "pending" || status == "unpaid" {
		method = PaymentMethodCOD
	}

	paid := PaymentStatusPending
	if status == "paid" {
		paid = PaymentStatusPaid
	}
	return method, paid
}
