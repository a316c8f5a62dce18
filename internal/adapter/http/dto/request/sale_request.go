package request

import "time"

// SaleItemRequest is one product line. The line total is computed
// server-side from quantity and unit price, never accepted from the wire.

type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
}

// FirstInstallmentRequest optionally records an opening payment at sale
// creation. PaidAt defaults to the current time.

type FirstInstallmentRequest struct {
	Amount string     `json:"amount" binding:"required"`
	PaidAt *time.Time `json:"paid_at"`
	Notes  string     `json:"notes"`
}

// CreateSaleRequest creates a sale with at least one item.

type CreateSaleRequest struct {
	ClientID                       string                   `json:"client_id" binding:"required"`
	SaleDate                       *time.Time               `json:"sale_date"`
	Notes                          string                   `json:"notes"`
	AgreedMonthlyInstallmentAmount string                   `json:"agreed_monthly_installment_amount"`
	Items                          []SaleItemRequest        `json:"items" binding:"required"`
	FirstInstallment               *FirstInstallmentRequest `json:"first_installment"`
}

// RecordInstallmentRequest records one payment against the sale total.

type RecordInstallmentRequest struct {
	Amount string     `json:"amount" binding:"required"`
	PaidAt *time.Time `json:"paid_at"`
	Notes  string     `json:"notes"`
}

// RequestExtensionRequest flags a requested payment-date extension.

type RequestExtensionRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

func resolveTime(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Time{}
}

func (r CreateSaleRequest) ResolveSaleDate() time.Time      { return resolveTime(r.SaleDate) }
func (r FirstInstallmentRequest) ResolvePaidAt() time.Time  { return resolveTime(r.PaidAt) }
func (r RecordInstallmentRequest) ResolvePaidAt() time.Time { return resolveTime(r.PaidAt) }
